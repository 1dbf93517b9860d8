package handlers

import (
	"net/http"

	"hotelbook/internal/http/middleware"
	"hotelbook/internal/services"

	"github.com/gin-gonic/gin"
)

// API holds the services behind the public routes.
type API struct {
	Catalog    *services.CatalogService
	Selections *services.SelectionService
	Checkout   *services.CheckoutService
	Payments   *services.PaymentService
	Bookings   *services.BookingLookupService
	Leads      *services.LeadService
	Settings   *services.SettingsService
	Docs       services.DocsService
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "request body is required", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid request body", err.Error())
		return false
	}
	return true
}

func owner(c *gin.Context) string {
	return middleware.GetSessionID(c)
}
