package handlers

import (
	"context"
	"net/http"

	"filament_dryer/internal/dashboard"
	"filament_dryer/internal/logger"
	"filament_dryer/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// ViewSource is the read side of the dashboard controller.
type ViewSource interface {
	View() dashboard.View
	Subscribe(ctx context.Context) <-chan dashboard.View
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	views    ViewSource
	metrics  http.Handler
	log      *logger.Logger
}

// NewHandler constructs the HTTP handler. metrics may be nil.
func NewHandler(services *service.Service, views ViewSource, metrics http.Handler, log *logger.Logger) *Handler {
	return &Handler{services: services, views: views, metrics: metrics, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	// profile names such as "ABS/ASA" arrive escaped in the path
	router.UseRawPath = true

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)
	if h.metrics != nil {
		router.GET("/metrics", gin.WrapH(h.metrics))
	}

	h.registerAPIRoutes(router)

	// browser view stream
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		api.GET("/view", h.getView)
		h.registerProfileRoutes(api)
		api.POST("/temperature", h.setTemperature)
		api.POST("/stop", h.stopDrying)
		api.GET("/logs", h.getLogs)
	}
}

func (h *Handler) registerProfileRoutes(api *gin.RouterGroup) {
	profiles := api.Group("/profiles")
	{
		profiles.GET("", h.listProfiles)
		profiles.POST("/reload", h.reloadProfiles)
		profiles.POST("/:name/start", h.startProfile)
	}
}
