package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/orderrelay/internal/metrics"
	"github.com/polkiloo/orderrelay/internal/server/http/handlers"
	"github.com/polkiloo/orderrelay/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.OrderRelayFacade, verifier middleware.APIKeyVerifier, reg *metrics.Registry, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest(middleware.MaxRequestBody))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	quoteHandler := handlers.NewQuoteHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	menuHandler := handlers.NewMenuHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	if reg != nil {
		engine.GET("/metrics", gin.WrapH(reg.Handler()))
	}

	api := engine.Group("/api")
	api.GET("/health", healthHandler.Health)

	secured := api.Group("")
	secured.Use(middleware.APIKeyRequired(verifier))
	secured.GET("/stores/:storeID/menu", menuHandler.Menu)
	secured.POST("/quotes", quoteHandler.Create)
	secured.GET("/quotes/:token", quoteHandler.Get)
	secured.DELETE("/quotes/:token", quoteHandler.Cancel)
	secured.POST("/orders", orderHandler.Place)

	return engine
}
