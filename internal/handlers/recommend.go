package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amaumene/gostreamfinder/internal/constants"
	"github.com/amaumene/gostreamfinder/internal/middleware"
	"github.com/amaumene/gostreamfinder/internal/models"
)

func (h *Handler) handleRecommend(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": constants.MsgInvalidBody, "details": err.Error()})
		return
	}

	if h.services.Recommender == nil {
		c.JSON(http.StatusOK, models.ChatResponse{
			Recommendations: []models.Recommendation{},
			Error:           constants.MsgRecommendationOff,
		})
		return
	}

	resp := h.services.Recommender.Recommend(c.Request.Context(), req)

	h.services.Logger.Infof("[Recommend] %d recommendations for location %q (request %s)",
		len(resp.Recommendations), req.Location, middleware.GetRequestID(c))

	c.JSON(http.StatusOK, resp)
}
