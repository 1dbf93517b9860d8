package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetReceiptPDF returns the booking receipt of a paid transaction (inline).
func (a *API) GetReceiptPDF(c *gin.Context) {
	pdfBytes, filename, err := a.Docs.GenerateReceipt(c.Request.Context(), c.Param("txn"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
