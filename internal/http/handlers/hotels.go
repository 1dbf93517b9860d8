package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) ListHotels(c *gin.Context) {
	hotels, err := a.Catalog.ListHotels(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hotels": hotels, "total": len(hotels)})
}

// GetHotel returns the hotel page. With checkIn and checkOut it also carries
// the room search result.
func (a *API) GetHotel(c *gin.Context) {
	d, err := a.Catalog.Details(c.Request.Context(), c.Param("id"), c.Query("checkIn"), c.Query("checkOut"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (a *API) GetHotelRooms(c *gin.Context) {
	rooms, err := a.Catalog.Availability(c.Request.Context(), c.Param("id"), c.Query("checkIn"), c.Query("checkOut"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"hotelId":  c.Param("id"),
		"checkIn":  c.Query("checkIn"),
		"checkOut": c.Query("checkOut"),
		"rooms":    rooms,
	})
}
