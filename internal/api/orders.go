package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tally/internal/models"
)

type orderItemRequest struct {
	ProductID   uint    `json:"product_id" binding:"required"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity" binding:"required"`
	Price       float64 `json:"price"`
}

type orderRequest struct {
	ID               string             `json:"id"`
	Customer         string             `json:"customer" binding:"required"`
	Email            string             `json:"email" binding:"required"`
	Status           string             `json:"status"`
	ExpectedDelivery *time.Time         `json:"expected_delivery"`
	Total            float64            `json:"total"`
	TrackingNumber   string             `json:"tracking_number"`
	ShippingAddress  string             `json:"shipping_address" binding:"required"`
	Items            []orderItemRequest `json:"items"`
}

type orderUpdateRequest struct {
	Status          *string `json:"status"`
	TrackingNumber  *string `json:"tracking_number"`
	ShippingAddress *string `json:"shipping_address"`
}

// ListOrders returns orders with their items, skip/limit paginated.
func (s *Server) ListOrders(c *gin.Context) {
	offset, limit := pagination(c)
	var orders []models.Order
	if err := s.db.Preload("Items").Order("id").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrder returns one order with its items.
func (s *Server) GetOrder(c *gin.Context) {
	var order models.Order
	if err := s.db.Preload("Items").Where("id = ?", c.Param("id")).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// CreateOrder accepts a new order with its line items. Item names and
// prices missing from the request are snapshotted from the catalog; the
// total is computed from the items when not supplied. Items are fixed
// once created.
func (s *Server) CreateOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	for _, item := range req.Items {
		if item.Quantity < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "item quantity must be at least 1"})
			return
		}
	}

	order := models.Order{
		ID:               req.ID,
		Customer:         req.Customer,
		Email:            req.Email,
		Status:           req.Status,
		OrderDate:        time.Now(),
		ExpectedDelivery: req.ExpectedDelivery,
		Total:            req.Total,
		TrackingNumber:   req.TrackingNumber,
		ShippingAddress:  req.ShippingAddress,
	}
	if order.ID == "" {
		order.ID = s.nextOrderID()
	}
	if order.Status == "" {
		order.Status = string(models.OrderStatusQueued)
	}

	if err := s.db.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	total := 0.0
	for _, item := range req.Items {
		record := models.OrderItem{
			OrderID:     order.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		}
		if record.ProductName == "" || record.Price == 0 {
			var product models.Product
			if err := s.db.First(&product, item.ProductID).Error; err == nil {
				if record.ProductName == "" {
					record.ProductName = product.Name
				}
				if record.Price == 0 {
					record.Price = product.Price
				}
			}
		}
		if err := s.db.Create(&record).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		order.Items = append(order.Items, record)
		total += float64(record.Quantity) * record.Price
	}

	if order.Total == 0 && total > 0 {
		order.Total = total
		if err := s.db.Save(&order).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusCreated, order)
}

// UpdateOrder mutates the order header only: status, tracking number and
// shipping address. Items are immutable after creation.
func (s *Server) UpdateOrder(c *gin.Context) {
	var order models.Order
	if err := s.db.Preload("Items").Where("id = ?", c.Param("id")).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	var req orderUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Status != nil {
		order.Status = *req.Status
	}
	if req.TrackingNumber != nil {
		order.TrackingNumber = *req.TrackingNumber
	}
	if req.ShippingAddress != nil {
		order.ShippingAddress = *req.ShippingAddress
	}

	if err := s.db.Save(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, order)
}

// DeleteOrder removes an order and its items.
func (s *Server) DeleteOrder(c *gin.Context) {
	var order models.Order
	if err := s.db.Where("id = ?", c.Param("id")).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if err := s.db.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := s.db.Delete(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}

// GetOrderShortages runs shortage detection for the order against
// current stock and replaces the order's recorded shortages with the
// fresh result.
func (s *Server) GetOrderShortages(c *gin.Context) {
	orderID := c.Param("id")

	shortages, err := s.planner.DetectShortages(orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if err := s.db.Where("order_id = ?", orderID).Delete(&models.Shortage{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	for i := range shortages {
		if err := s.db.Create(&shortages[i]).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}
	if shortages == nil {
		shortages = []models.Shortage{}
	}

	c.JSON(http.StatusOK, gin.H{"shortages": shortages, "count": len(shortages)})
}

// nextOrderID allocates a sequential human-readable identifier across
// both the orders and queue tables, which share the ORD- namespace.
func (s *Server) nextOrderID() string {
	var orderCount, queueCount int64
	s.db.Model(&models.Order{}).Count(&orderCount)
	s.db.Model(&models.QueueEntry{}).Count(&queueCount)
	return fmt.Sprintf("ORD-%03d", orderCount+queueCount+1)
}
