package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tally/internal/models"
)

type queueEntryRequest struct {
	ID               string     `json:"id"`
	Customer         string     `json:"customer" binding:"required"`
	Email            string     `json:"email" binding:"required"`
	Status           string     `json:"status"`
	ExpectedDelivery *time.Time `json:"expected_delivery"`
	Total            float64    `json:"total"`
	CanFulfill       *bool      `json:"can_fulfill"`
	ShortageReason   *string    `json:"shortage_reason"`
}

type queueEntryUpdateRequest struct {
	Status         *string `json:"status"`
	CanFulfill     *bool   `json:"can_fulfill"`
	ShortageReason *string `json:"shortage_reason"`
}

// ListQueueEntries returns pending orders with skip/limit pagination.
func (s *Server) ListQueueEntries(c *gin.Context) {
	offset, limit := pagination(c)
	var entries []models.QueueEntry
	if err := s.db.Order("id").Offset(offset).Limit(limit).Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// CreateQueueEntry adds a pending order. CanFulfill and ShortageReason
// are stored as given; they are snapshots, not recomputed live.
func (s *Server) CreateQueueEntry(c *gin.Context) {
	var req queueEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry := models.QueueEntry{
		ID:               req.ID,
		Customer:         req.Customer,
		Email:            req.Email,
		Status:           req.Status,
		OrderDate:        time.Now(),
		ExpectedDelivery: req.ExpectedDelivery,
		Total:            req.Total,
		CanFulfill:       true,
		ShortageReason:   req.ShortageReason,
	}
	if entry.ID == "" {
		entry.ID = s.nextOrderID()
	}
	if entry.Status == "" {
		entry.Status = string(models.OrderStatusQueued)
	}
	if req.CanFulfill != nil {
		entry.CanFulfill = *req.CanFulfill
	}

	if err := s.db.Create(&entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// UpdateQueueEntry mutates the snapshot fields of a pending order.
func (s *Server) UpdateQueueEntry(c *gin.Context) {
	var entry models.QueueEntry
	if err := s.db.Where("id = ?", c.Param("id")).First(&entry).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	var req queueEntryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Status != nil {
		entry.Status = *req.Status
	}
	if req.CanFulfill != nil {
		entry.CanFulfill = *req.CanFulfill
	}
	if req.ShortageReason != nil {
		entry.ShortageReason = req.ShortageReason
	}

	if err := s.db.Save(&entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entry)
}
