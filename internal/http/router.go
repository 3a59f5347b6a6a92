package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("http")

	router := gin.New()
	router.Use(RequestContextMiddleware(log))
	router.Use(RequestLoggerMiddleware(log))
	router.Use(gin.Recovery())
	router.Use(SecurityHeadersMiddleware())
	if cfg.HSTSMaxAge > 0 {
		router.Use(StrictTransportSecurityMiddleware(cfg.HSTSMaxAge))
	}
	router.Use(NewReadOnlyMiddleware(cfg.ReadOnly).Handler())

	health := NewHealthController(cfg.Database, cfg.TaskQueue, cfg.Version)

	// Health endpoints
	router.GET("/", rootHandler(cfg.Version))
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Book endpoints run inside a store session
	booksController := NewBooksController(cfg.Validator, cfg.AuditService)
	bookRoutes := router.Group("/books", SessionMiddleware(cfg.Database))
	bookRoutes.POST("/", booksController.CreateBook)
	bookRoutes.GET("/", booksController.ListBooks)
	bookRoutes.GET("/search/", booksController.SearchBooks)
	bookRoutes.GET("/:id", booksController.GetBook)
	bookRoutes.PUT("/:id", booksController.UpdateBook)
	bookRoutes.DELETE("/:id", booksController.DeleteBook)

	// Audit endpoints
	if cfg.AuditService != nil {
		auditController := NewAuditController(cfg.AuditService)
		router.GET("/audit/", auditController.GetAuditEvents)
	}

	return router
}
