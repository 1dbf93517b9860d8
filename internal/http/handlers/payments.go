package handlers

import (
	"net/http"
	"strconv"

	"hotelbook/internal/services"

	"github.com/gin-gonic/gin"
)

// ValidatePayment always answers 200; the outcome is in the body.
func (a *API) ValidatePayment(c *gin.Context) {
	c.JSON(http.StatusOK, a.Payments.ValidatePayment(c.Request.Context(), c.Param("txn")))
}

// GetPaymentStatus looks the booking status up once, or polls while it is
// pending with wait=true. Failures collapse into the error panel.
func (a *API) GetPaymentStatus(c *gin.Context) {
	txn := c.Param("txn")
	var (
		receipt services.Receipt
		err     error
	)
	if wait, _ := strconv.ParseBool(c.Query("wait")); wait {
		receipt, err = a.Payments.AwaitStatus(c.Request.Context(), txn)
	} else {
		receipt, err = a.Payments.Receipt(c.Request.Context(), txn)
	}
	if err != nil {
		_ = c.Error(err)
		c.JSON(panelStatus(err), gin.H{
			"error":      services.ReceiptErrorPanel(txn, err),
			"request_id": requestID(c),
		})
		return
	}
	c.JSON(http.StatusOK, receipt)
}
