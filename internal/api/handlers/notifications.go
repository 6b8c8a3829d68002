package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rhenando/gopay-api/internal/service"
)

// NotificationRecorder is the slice of the callback ingestion service the
// webhook handlers need
type NotificationRecorder interface {
	RecordPayment(ctx context.Context, req service.PaymentNotificationRequest) error
	RecordSettlement(ctx context.Context, req service.SettlementNotificationRequest) error
}

// HandlePaymentNotification handles POST /api/payment-notification.
// The gateway retries on non-2xx, so the 200 ack means "received and stored",
// not "payment succeeded".
func HandlePaymentNotification(svc NotificationRecorder, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.PaymentNotificationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid request body",
				"details": err.Error(),
			})
			return
		}

		if err := svc.RecordPayment(c.Request.Context(), req); err != nil {
			RespondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  http.StatusOK,
			"message": "payment notification received",
		})
	}
}

// HandleSettlementNotification handles POST /api/settlement-notification
func HandleSettlementNotification(svc NotificationRecorder, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.SettlementNotificationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid request body",
				"details": err.Error(),
			})
			return
		}

		if err := svc.RecordSettlement(c.Request.Context(), req); err != nil {
			RespondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  http.StatusOK,
			"message": "settlement notification received",
		})
	}
}
