package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tally/internal/monitoring"
)

type chatRequest struct {
	Message string `json:"message"`
}

// GetSmartAlerts returns the priority-ordered alert list for the
// dashboard and publishes the bucket totals as metrics.
func (s *Server) GetSmartAlerts(c *gin.Context) {
	alerts, err := s.planner.SmartAlerts(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	critical, lowStock, reorder := 0, 0, 0
	for _, alert := range alerts {
		switch alert.Priority {
		case 1:
			critical++
		case 2:
			lowStock++
		case 3:
			reorder++
		}
	}
	monitoring.SetAlertCounts(critical, lowStock, reorder)

	c.JSON(http.StatusOK, gin.H{"alerts": alerts, "count": len(alerts)})
}

// GetInventoryAnalysis returns the bucketed inventory health report.
func (s *Server) GetInventoryAnalysis(c *gin.Context) {
	report, err := s.planner.AnalyzeInventoryHealth(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

// ChatWithAssistant forwards a procurement question to the language
// model with inventory context. The response text is always valid: a
// provider failure degrades inside the assistant instead of becoming a
// server error.
func (s *Server) ChatWithAssistant(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	response := s.assistant.ProcurementInsights(c.Request.Context(), req.Message)
	c.JSON(http.StatusOK, gin.H{
		"response":  response,
		"timestamp": time.Now().Format(time.RFC3339),
		"query":     req.Message,
	})
}
