package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rhenando/gopay-api/internal/repository"
)

// HandleGetPaymentStatus handles GET /api/payment-status/:billNumber.
// Reads back whatever the gateway's callbacks have accumulated for the bill.
func HandleGetPaymentStatus(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		billNumber := c.Param("billNumber")
		if billNumber == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "billNumber required"})
			return
		}

		record, err := repos.Payment.GetByBillNumber(c.Request.Context(), billNumber)
		if err != nil {
			RespondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, record)
	}
}

// HandleGetSettlementStatus handles GET /api/settlement-status/:billNumber
func HandleGetSettlementStatus(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		billNumber := c.Param("billNumber")
		if billNumber == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "billNumber required"})
			return
		}

		record, err := repos.Settlement.GetByBillNumber(c.Request.Context(), billNumber)
		if err != nil {
			RespondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, record)
	}
}
