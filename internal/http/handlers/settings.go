package handlers

import (
	"net/http"

	"hotelbook/internal/http/middleware"
	"hotelbook/internal/services"
	"hotelbook/internal/utils"

	"github.com/gin-gonic/gin"
)

func (a *API) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, a.Settings.Get())
}

func (a *API) UpdateSettings(c *gin.Context) {
	var patch services.SettingsPatch
	if !BindJSONOrError(c, &patch) {
		return
	}
	s, err := a.Settings.Update(patch)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(requestID(c), "settings", "update", "updated by "+middleware.GetAdminSubject(c))
	c.JSON(http.StatusOK, s)
}

func (a *API) ResetSettings(c *gin.Context) {
	s := a.Settings.Reset()
	utils.LogEvent(requestID(c), "settings", "reset", "reset by "+middleware.GetAdminSubject(c))
	c.JSON(http.StatusOK, s)
}

func (a *API) ThemeCSS(c *gin.Context) {
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "text/css; charset=utf-8", []byte(a.Settings.Theme()))
}
