package handlers

import (
	"net/http"
	"strconv"

	"hotelbook/internal/domain"
	"hotelbook/internal/services"

	"github.com/gin-gonic/gin"
)

type startCheckoutRequest struct {
	SelectionID string `json:"selectionId"`
}

func (a *API) StartCheckout(c *gin.Context) {
	var req startCheckoutRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	co, err := a.Checkout.Start(c.Request.Context(), owner(c), req.SelectionID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, co)
}

func (a *API) GetCheckout(c *gin.Context) {
	co, err := a.Checkout.Get(c.Request.Context(), owner(c), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, co)
}

// SubmitCheckout answers with the checkout state in both outcomes so the
// client can render the message next to the form.
func (a *API) SubmitCheckout(c *gin.Context) {
	var guest services.GuestDetails
	if !BindJSONOrError(c, &guest) {
		return
	}
	co, err := a.Checkout.Submit(c.Request.Context(), owner(c), c.Param("id"), guest)
	if err == nil {
		c.JSON(http.StatusOK, co)
		return
	}
	if co.ID == "" {
		RespondDomainError(c, err)
		return
	}
	status := http.StatusUnprocessableEntity
	switch {
	case domain.IsValidation(err):
		status = http.StatusBadRequest
	case domain.IsConflict(err):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"checkout": co, "message": err.Error(), "request_id": requestID(c)})
}

// RedirectCheckout returns the payment URL, or redirects to it with follow=true.
func (a *API) RedirectCheckout(c *gin.Context) {
	url, err := a.Checkout.Redirect(c.Request.Context(), owner(c), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if follow, _ := strconv.ParseBool(c.Query("follow")); follow {
		c.Redirect(http.StatusFound, url)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
