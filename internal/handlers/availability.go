package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amaumene/gostreamfinder/internal/constants"
	"github.com/amaumene/gostreamfinder/internal/middleware"
	"github.com/amaumene/gostreamfinder/internal/models"
)

// handleAvailability resolves a free-text query. Upstream failures are part of
// the 200 response body; only an unreadable body is a client error.
func (h *Handler) handleAvailability(c *gin.Context) {
	var req models.AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": constants.MsgInvalidBody, "details": err.Error()})
		return
	}

	result := h.services.Resolver.Resolve(c.Request.Context(), req.Query)

	h.services.Logger.Infof("[Availability] %q: %d results (request %s)",
		req.Query, result.TotalFound, middleware.GetRequestID(c))

	c.JSON(http.StatusOK, result)
}
