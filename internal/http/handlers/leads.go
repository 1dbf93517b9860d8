package handlers

import (
	"net/http"

	"hotelbook/internal/domain/models"

	"github.com/gin-gonic/gin"
)

func (a *API) SubmitB2BLead(c *gin.Context) {
	var lead models.Lead
	if !BindJSONOrError(c, &lead) {
		return
	}
	receipt, err := a.Leads.SubmitB2B(c.Request.Context(), lead)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, receipt)
}

func (a *API) SubmitContactLead(c *gin.Context) {
	var lead models.Lead
	if !BindJSONOrError(c, &lead) {
		return
	}
	receipt, err := a.Leads.SubmitContact(c.Request.Context(), lead)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, receipt)
}
