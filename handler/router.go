package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewRouter builds the gin engine with all invoice routes.
func NewRouter(h *InvoiceHandler, log logrus.FieldLogger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(log))

	// Configure max multipart memory (32 MB)
	router.MaxMultipartMemory = 32 << 20

	router.GET("/health", h.Health)

	api := router.Group("/api/v1")
	{
		api.POST("/invoices/line-items", h.ExtractDocument)

		items := api.Group("/line-items")
		{
			items.POST("/extract", h.ExtractText)
			items.POST("/reconcile", h.Reconcile)
			items.POST("/export", h.Export)
		}
	}

	return router
}
