package router

import (
	"github.com/gin-gonic/gin"

	"gstbill/internal/handler"
	"gstbill/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	invoiceH *handler.InvoiceHandler,
	profileH *handler.ProfileHandler,
	transportH *handler.TransportHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS())

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Invoice routes
	invoices := v1.Group("/invoices")
	invoices.POST("", invoiceH.Generate)
	invoices.POST("/preview", invoiceH.Preview)
	invoices.GET("", invoiceH.List)
	invoices.GET("/next-number", invoiceH.NextNumber)
	invoices.GET("/:filename", invoiceH.Load)
	invoices.GET("/:filename/download", invoiceH.Download)

	// Buyer profile routes
	profiles := v1.Group("/profiles")
	profiles.GET("", profileH.List)
	profiles.POST("", profileH.Create)
	profiles.POST("/cleanup", profileH.Cleanup)
	profiles.GET("/:id", profileH.Get)
	profiles.PUT("/:id", profileH.Update)
	profiles.DELETE("/:id", profileH.Delete)

	// Transport mode routes
	modes := v1.Group("/transport-modes")
	modes.GET("", transportH.List)
	modes.POST("", transportH.Create)

	return r
}
