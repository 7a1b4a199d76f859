package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tally/internal/models"
)

type integrationRequest struct {
	Name        string `json:"name" binding:"required"`
	DisplayName string `json:"display_name" binding:"required"`
	Enabled     bool   `json:"enabled"`
	APIKey      string `json:"api_key"`
	WebhookURL  string `json:"webhook_url"`
	Settings    string `json:"settings"`
}

type integrationUpdateRequest struct {
	Enabled    *bool   `json:"enabled"`
	APIKey     *string `json:"api_key"`
	WebhookURL *string `json:"webhook_url"`
	Settings   *string `json:"settings"`
}

// ListIntegrations returns integrations with skip/limit pagination.
func (s *Server) ListIntegrations(c *gin.Context) {
	offset, limit := pagination(c)
	var integrations []models.Integration
	if err := s.db.Order("id").Offset(offset).Limit(limit).Find(&integrations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, integrations)
}

// GetIntegration returns a single integration by id.
func (s *Server) GetIntegration(c *gin.Context) {
	var integration models.Integration
	if err := s.db.First(&integration, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Integration not found"})
		return
	}
	c.JSON(http.StatusOK, integration)
}

// CreateIntegration registers a third-party connection.
func (s *Server) CreateIntegration(c *gin.Context) {
	var req integrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	integration := models.Integration{
		Name:        req.Name,
		DisplayName: req.DisplayName,
		Enabled:     req.Enabled,
		APIKey:      req.APIKey,
		WebhookURL:  req.WebhookURL,
		Settings:    req.Settings,
	}
	if err := s.db.Create(&integration).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, integration)
}

// UpdateIntegration applies a partial update to connection settings.
func (s *Server) UpdateIntegration(c *gin.Context) {
	var integration models.Integration
	if err := s.db.First(&integration, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Integration not found"})
		return
	}

	var req integrationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Enabled != nil {
		integration.Enabled = *req.Enabled
	}
	if req.APIKey != nil {
		integration.APIKey = *req.APIKey
	}
	if req.WebhookURL != nil {
		integration.WebhookURL = *req.WebhookURL
	}
	if req.Settings != nil {
		integration.Settings = *req.Settings
	}

	if err := s.db.Save(&integration).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, integration)
}

// DeleteIntegration removes a third-party connection.
func (s *Server) DeleteIntegration(c *gin.Context) {
	var integration models.Integration
	if err := s.db.First(&integration, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Integration not found"})
		return
	}

	if err := s.db.Delete(&integration).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Integration deleted successfully"})
}

// ToggleIntegration flips the enabled flag.
func (s *Server) ToggleIntegration(c *gin.Context) {
	var integration models.Integration
	if err := s.db.First(&integration, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Integration not found"})
		return
	}

	integration.Enabled = !integration.Enabled
	if err := s.db.Save(&integration).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, integration)
}
