package handlers

import (
	"sundial/internal/config"
	"sundial/internal/logger"
	"sundial/internal/service"

	"github.com/gin-gonic/gin"
)

// Handler wires the HTTP layer to services, config and logging.
type Handler struct {
	services *service.Service
	cfg      *config.Config
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, cfg *config.Config, log *logger.Logger) *Handler {
	return &Handler{services: services, cfg: cfg, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)

	// Health endpoint
	router.GET("/health", h.health)

	// Versioned API endpoints
	h.registerAPIRoutes(router)

	// Minimal WebSocket connection (HTTP upgrade) on the same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		h.registerDisplayRoutes(api)
		h.registerLogRoutes(api)
	}
}

func (h *Handler) registerDisplayRoutes(api *gin.RouterGroup) {
	display := api.Group("/display")
	{
		display.GET("/status", h.getStatus)
		display.GET("/now", h.getNow)
		display.GET("/config", h.getConfig)
		display.POST("/pause", h.pauseDisplay)
		display.POST("/resume", h.resumeDisplay)
		// Body example: {"temperature":3500}
		display.POST("/override", h.setOverride)
	}
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	logs := api.Group("/logs")
	{
		logs.GET("/", h.getLogs)
	}
}
