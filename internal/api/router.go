package api

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rhenando/gopay-api/internal/api/handlers"
	"github.com/rhenando/gopay-api/internal/api/middleware"
	"github.com/rhenando/gopay-api/internal/config"
	"github.com/rhenando/gopay-api/internal/repository"
	"github.com/rhenando/gopay-api/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, repos *repository.Repositories, gw service.GatewayClient, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(middleware.RequestID())
	router.Use(loggingMiddleware(logger))
	router.Use(cors.Default())

	// Root: plain-text liveness answer for load balancers and smoke checks
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "gopay relay is running")
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	invoiceSvc := service.NewInvoiceService(gw, cfg.Gateway.EntityActivityID, logger)
	notificationSvc := service.NewNotificationService(repos, logger)

	api := router.Group("/api")
	{
		api.POST("/create-invoice", handlers.HandleCreateInvoice(invoiceSvc, logger))

		// Gateway callbacks (payment, then bank settlement)
		api.POST("/payment-notification", handlers.HandlePaymentNotification(notificationSvc, logger))
		api.POST("/settlement-notification", handlers.HandleSettlementNotification(notificationSvc, logger))

		// Read-back of persisted callback records
		api.GET("/payment-status/:billNumber", handlers.HandleGetPaymentStatus(repos, logger))
		api.GET("/settlement-status/:billNumber", handlers.HandleGetSettlementStatus(repos, logger))
	}

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": fmt.Sprintf("%v", recovered),
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.String("request_id", c.GetString("request_id")),
		)
	}
}
