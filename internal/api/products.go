package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tally/internal/models"
)

type productRequest struct {
	Name  string  `json:"name" binding:"required"`
	SKU   string  `json:"sku" binding:"required"`
	Color string  `json:"color" binding:"required"`
	Price float64 `json:"price" binding:"required"`
}

type productUpdateRequest struct {
	Name  *string  `json:"name"`
	SKU   *string  `json:"sku"`
	Color *string  `json:"color"`
	Price *float64 `json:"price"`
}

type bomUpdateRequest struct {
	Items []struct {
		MaterialID uint `json:"material_id" binding:"required"`
		Quantity   int  `json:"quantity" binding:"required"`
	} `json:"items"`
}

// ListProducts returns products with skip/limit pagination. CanBuild is
// the last persisted figure and may be stale; POST can-build refreshes it.
func (s *Server) ListProducts(c *gin.Context) {
	offset, limit := pagination(c)
	var products []models.Product
	if err := s.db.Order("id").Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct returns a single product by id.
func (s *Server) GetProduct(c *gin.Context) {
	var product models.Product
	if err := s.db.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct adds a product to the catalog. New products start with
// no BOM links and therefore a can-build of 0.
func (s *Server) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := models.Product{
		Name:  req.Name,
		SKU:   req.SKU,
		Color: req.Color,
		Price: req.Price,
	}
	if err := s.db.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, product)
}

// UpdateProduct applies a partial update to catalog fields.
func (s *Server) UpdateProduct(c *gin.Context) {
	var product models.Product
	if err := s.db.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var req productUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.SKU != nil {
		product.SKU = *req.SKU
	}
	if req.Color != nil {
		product.Color = *req.Color
	}
	if req.Price != nil {
		product.Price = *req.Price
	}

	if err := s.db.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a product and its BOM links.
func (s *Server) DeleteProduct(c *gin.Context) {
	var product models.Product
	if err := s.db.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if err := s.db.Delete(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := s.db.Where("product_id = ?", product.ID).Delete(&models.BOMLink{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.planner.Invalidate(product.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// GetProductBOM returns the product's bill of materials with material
// names resolved.
func (s *Server) GetProductBOM(c *gin.Context) {
	var product models.Product
	if err := s.db.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var links []models.BOMLink
	if err := s.db.Where("product_id = ?", product.ID).Order("material_id").Find(&links).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	items := make([]models.BOMItem, 0, len(links))
	for _, link := range links {
		var material models.Material
		name := ""
		if err := s.db.First(&material, link.MaterialID).Error; err == nil {
			name = material.Name
		}
		items = append(items, models.BOMItem{
			MaterialID:   link.MaterialID,
			MaterialName: name,
			Quantity:     link.Quantity,
		})
	}
	c.JSON(http.StatusOK, items)
}

// UpdateProductBOM replaces the product's BOM links. Every referenced
// material must exist and every quantity must be at least 1; the cached
// buildability is recomputed and persisted on success.
func (s *Server) UpdateProductBOM(c *gin.Context) {
	var product models.Product
	if err := s.db.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var req bomUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	seen := make(map[uint]bool, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "BOM quantity per unit must be at least 1"})
			return
		}
		if seen[item.MaterialID] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "duplicate material in BOM"})
			return
		}
		seen[item.MaterialID] = true

		var material models.Material
		if err := s.db.First(&material, item.MaterialID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Material not found"})
			return
		}
	}

	if err := s.db.Where("product_id = ?", product.ID).Delete(&models.BOMLink{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	for _, item := range req.Items {
		link := models.BOMLink{ProductID: product.ID, MaterialID: item.MaterialID, Quantity: item.Quantity}
		if err := s.db.Create(&link).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	s.planner.Invalidate(product.ID)
	s.persistCanBuild(&product)
	c.JSON(http.StatusOK, product)
}

// RecomputeCanBuild recalculates buildability from current stock and
// persists it onto the product's cached field.
func (s *Server) RecomputeCanBuild(c *gin.Context) {
	var product models.Product
	if err := s.db.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	units, err := s.planner.CanBuild(product.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product.CanBuild = units
	if err := s.db.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, product)
}

// persistCanBuild refreshes the cached field, logging nothing on
// failure; the stored value is advisory.
func (s *Server) persistCanBuild(product *models.Product) {
	units, err := s.planner.CanBuild(product.ID)
	if err != nil {
		return
	}
	product.CanBuild = units
	s.db.Save(product)
}
