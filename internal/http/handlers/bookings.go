package handlers

import (
	"net/http"

	"hotelbook/internal/services"

	"github.com/gin-gonic/gin"
)

// SearchBookings lists a guest's bookings grouped into tabs.
func (a *API) SearchBookings(c *gin.Context) {
	p, total, err := a.Bookings.SearchByPhone(c.Request.Context(), c.Query("phone"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	resp := gin.H{
		"total":        total,
		"upcoming":     p.Upcoming,
		"past":         p.Past,
		"cancelled":    p.Cancelled,
		"unclassified": p.Unclassified,
	}
	if total == 0 {
		resp["message"] = services.MsgNoBookings
	}
	c.JSON(http.StatusOK, resp)
}
