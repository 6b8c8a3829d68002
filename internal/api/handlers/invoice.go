package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rhenando/gopay-api/internal/domain"
	"github.com/rhenando/gopay-api/internal/service"
	"github.com/rhenando/gopay-api/pkg/errors"
)

// InvoiceCreator is the slice of the invoice orchestrator the handler needs
type InvoiceCreator interface {
	CreateInvoice(ctx context.Context, req service.CreateInvoiceRequest) (*domain.InvoiceResult, error)
}

// CreateInvoiceResponse represents the response to the storefront
type CreateInvoiceResponse struct {
	Success     bool    `json:"success"`
	BillNumber  string  `json:"billNumber"`
	RedirectURL *string `json:"redirectUrl"`
}

// HandleCreateInvoice handles POST /api/create-invoice
func HandleCreateInvoice(svc InvoiceCreator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.CreateInvoiceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid request body",
				"details": err.Error(),
			})
			return
		}

		result, err := svc.CreateInvoice(c.Request.Context(), req)
		if err != nil {
			RespondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, CreateInvoiceResponse{
			Success:     true,
			BillNumber:  result.BillNumber,
			RedirectURL: result.RedirectURL,
		})
	}
}

// RespondError maps the error taxonomy onto HTTP responses. Gateway errors
// echo the upstream status and body; persistence errors stay generic so the
// caller only gets a retry signal.
func RespondError(c *gin.Context, logger *zap.Logger, err error) {
	switch e := err.(type) {
	case *errors.ErrValidation:
		resp := gin.H{"error": e.Error()}
		if len(e.Fields) > 0 {
			resp["details"] = e.Fields
		}
		c.JSON(http.StatusBadRequest, resp)
	case *errors.ErrGateway:
		status := e.Status
		if status < 400 || status > 599 {
			status = http.StatusInternalServerError
		}
		resp := gin.H{"error": e.Error()}
		if e.Body != "" {
			resp["gateway"] = e.Body
		}
		c.JSON(status, resp)
	case *errors.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": e.Error()})
	case *errors.ErrPersistence:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	default:
		logger.Error("Unhandled error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
