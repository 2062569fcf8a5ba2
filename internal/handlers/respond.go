package handler

import (
	"errors"
	"net/http"

	"courier-billing-backend/internal/billingerr"

	"github.com/gin-gonic/gin"
)

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// respondError maps the billing error taxonomy onto HTTP statuses:
// 400 validation, 404 not found, 409 conflict, 500 everything else with the
// underlying message preserved for diagnostics.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, billingerr.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, billingerr.ErrRateNotFound),
		errors.Is(err, billingerr.ErrNoApplicableSetting),
		errors.Is(err, billingerr.ErrShipmentNotFound),
		errors.Is(err, billingerr.ErrAccountNotFound),
		errors.Is(err, billingerr.ErrInvoiceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, billingerr.ErrAlreadyApplied),
		errors.Is(err, billingerr.ErrClubbingLocked),
		errors.Is(err, billingerr.ErrInvoiceNotVoidable),
		errors.Is(err, billingerr.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal error", "error": err.Error()})
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": message})
}
