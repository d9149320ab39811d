package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amaumene/gostreamfinder/internal/constants"
)

func (h *Handler) handleHome(c *gin.Context) {
	c.String(http.StatusOK, "Welcome to %s! POST /availability or /recommend to get started.", constants.ServiceName)
}

// handleHealth always answers 200 while the process is serving. A vector index
// that cannot be read is reported as degraded.
func (h *Handler) handleHealth(c *gin.Context) {
	body := gin.H{
		"status":          "ok",
		"service":         constants.ServiceName,
		"version":         constants.ServiceVersion,
		"recommendations": h.services.Recommender != nil,
	}

	if db := h.services.DB; db != nil {
		count, err := db.Count()
		if err != nil {
			h.services.Logger.Warnf("[Health] failed to count indexed documents: %v", err)
			body["status"] = "degraded"
		} else {
			body["indexed_documents"] = count
		}
	}

	c.JSON(http.StatusOK, body)
}

func (h *Handler) handleCountries(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"countries": h.services.Regions})
}
