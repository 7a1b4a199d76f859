package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tally/internal/models"
)

type materialRequest struct {
	Name     string `json:"name" binding:"required"`
	Color    string `json:"color" binding:"required"`
	Quantity *int   `json:"quantity"`
	Unit     string `json:"unit" binding:"required"`
	Required int    `json:"required"`
}

type materialUpdateRequest struct {
	Name     *string `json:"name"`
	Color    *string `json:"color"`
	Quantity *int    `json:"quantity"`
	Unit     *string `json:"unit"`
	Required *int    `json:"required"`
}

// ListMaterials returns materials with skip/limit pagination.
func (s *Server) ListMaterials(c *gin.Context) {
	offset, limit := pagination(c)
	var materials []models.Material
	if err := s.db.Order("id").Offset(offset).Limit(limit).Find(&materials).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, materials)
}

// GetMaterial returns a single material by id.
func (s *Server) GetMaterial(c *gin.Context) {
	var material models.Material
	if err := s.db.First(&material, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Material not found"})
		return
	}
	c.JSON(http.StatusOK, material)
}

// CreateMaterial adds a material to stock. An omitted quantity is
// stored as 0, never null.
func (s *Server) CreateMaterial(c *gin.Context) {
	var req materialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	material := models.Material{
		Name:     req.Name,
		Color:    req.Color,
		Unit:     req.Unit,
		Required: req.Required,
	}
	if req.Quantity != nil {
		material.Quantity = *req.Quantity
	}
	if material.Quantity < 0 || material.Required < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity and required must be non-negative"})
		return
	}

	if err := s.db.Create(&material).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, material)
}

// UpdateMaterial applies a partial update. A stock change invalidates
// every cached buildability figure, since any product may consume the
// material.
func (s *Server) UpdateMaterial(c *gin.Context) {
	var material models.Material
	if err := s.db.First(&material, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Material not found"})
		return
	}

	var req materialUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		material.Name = *req.Name
	}
	if req.Color != nil {
		material.Color = *req.Color
	}
	if req.Unit != nil {
		material.Unit = *req.Unit
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be non-negative"})
			return
		}
		material.Quantity = *req.Quantity
	}
	if req.Required != nil {
		if *req.Required < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "required must be non-negative"})
			return
		}
		material.Required = *req.Required
	}

	if err := s.db.Save(&material).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.planner.InvalidateAll()
	c.JSON(http.StatusOK, material)
}

// DeleteMaterial removes a material. BOM links referencing it are not
// cleaned up; buildability recomputation for an affected product reports
// the dangling link until its BOM is edited.
func (s *Server) DeleteMaterial(c *gin.Context) {
	var material models.Material
	if err := s.db.First(&material, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Material not found"})
		return
	}

	if err := s.db.Delete(&material).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.planner.InvalidateAll()
	c.JSON(http.StatusOK, gin.H{"message": "Material deleted successfully"})
}
