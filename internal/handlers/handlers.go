// Package handlers implements the HTTP API: availability lookups,
// recommendations and service endpoints.
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/amaumene/gostreamfinder/internal/config"
	"github.com/amaumene/gostreamfinder/internal/services"
)

// MetricsPath is where Prometheus metrics are served.
const MetricsPath = "/metrics"

// Handler handles HTTP requests for the API.
type Handler struct {
	services *services.Container
	config   *config.Config
}

// New creates a new Handler with the provided services and configuration.
func New(services *services.Container, config *config.Config) *Handler {
	return &Handler{
		services: services,
		config:   config,
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.handleHome)
	r.GET("/health", h.handleHealth)
	r.GET(MetricsPath, gin.WrapH(promhttp.Handler()))

	r.GET("/countries", h.handleCountries)
	r.POST("/availability", h.handleAvailability)
	r.POST("/recommend", h.handleRecommend)
}
