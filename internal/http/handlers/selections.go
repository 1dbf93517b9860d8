package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type createSelectionRequest struct {
	HotelID  string `json:"hotelId"`
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
}

type adjustRoomRequest struct {
	Delta int `json:"delta"`
}

type setRoomRequest struct {
	Quantity *int `json:"quantity"`
}

func (a *API) CreateSelection(c *gin.Context) {
	var req createSelectionRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	sel, err := a.Selections.Create(c.Request.Context(), owner(c), req.HotelID, req.CheckIn, req.CheckOut)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sel.Summary())
}

func (a *API) GetSelection(c *gin.Context) {
	sel, err := a.Selections.Get(c.Request.Context(), owner(c), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, sel.Summary())
}

func (a *API) AdjustSelectionRoom(c *gin.Context) {
	var req adjustRoomRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	sel, err := a.Selections.Adjust(c.Request.Context(), owner(c), c.Param("id"), c.Param("roomId"), req.Delta)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, sel.Summary())
}

func (a *API) SetSelectionRoom(c *gin.Context) {
	var req setRoomRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.Quantity == nil {
		respondError(c, http.StatusBadRequest, "validation_error", "quantity is required", nil)
		return
	}
	sel, err := a.Selections.Set(c.Request.Context(), owner(c), c.Param("id"), c.Param("roomId"), *req.Quantity)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, sel.Summary())
}

func (a *API) RemoveSelectionRoom(c *gin.Context) {
	sel, err := a.Selections.Remove(c.Request.Context(), owner(c), c.Param("id"), c.Param("roomId"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, sel.Summary())
}
