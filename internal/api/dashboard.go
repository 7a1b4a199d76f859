package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tally/internal/models"
)

// GetDashboard aggregates the counts the overview page renders in one
// round trip: catalog sizes, order pipeline by status, queue fulfillment
// and open shortage volume.
func (s *Server) GetDashboard(c *gin.Context) {
	var materialCount, productCount, orderCount, queueCount, shortageCount, blockedQueueCount int64
	s.db.Model(&models.Material{}).Count(&materialCount)
	s.db.Model(&models.Product{}).Count(&productCount)
	s.db.Model(&models.Order{}).Count(&orderCount)
	s.db.Model(&models.QueueEntry{}).Count(&queueCount)
	s.db.Model(&models.Shortage{}).Count(&shortageCount)
	s.db.Model(&models.QueueEntry{}).Where("can_fulfill = ?", false).Count(&blockedQueueCount)

	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	var ordersByStatus []statusCount
	s.db.Model(&models.Order{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&ordersByStatus)
	if ordersByStatus == nil {
		ordersByStatus = []statusCount{}
	}

	report, err := s.planner.AnalyzeInventoryHealth(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_materials":         materialCount,
		"total_products":          productCount,
		"total_orders":            orderCount,
		"orders_by_status":        ordersByStatus,
		"queue_size":              queueCount,
		"queue_blocked":           blockedQueueCount,
		"open_shortages":          shortageCount,
		"critical_alerts":         len(report.CriticalAlerts),
		"low_stock_alerts":        len(report.LowStockAlerts),
		"reorder_recommendations": len(report.ReorderRecommendations),
		"timestamp":               time.Now().Format(time.RFC3339),
	})
}
