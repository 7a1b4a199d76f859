package models

import "github.com/jinzhu/gorm"

// Product represents a finished good that can be manufactured from raw
// materials. CanBuild caches the last computed buildable unit count; it is
// advisory only and must be recomputed after any material or BOM change.
type Product struct {
	gorm.Model
	Name     string  `gorm:"index;not null" json:"name"`
	SKU      string  `gorm:"unique_index;not null" json:"sku"`
	Color    string  `gorm:"not null" json:"color"`
	Price    float64 `gorm:"not null" json:"price"`
	CanBuild int     `gorm:"default:0" json:"can_build"`
}

// BOMLink relates a product to one of the materials it consumes.
// Quantity is the number of material units consumed per product unit and
// must be at least 1. At most one link exists per (product, material) pair.
type BOMLink struct {
	ProductID  uint `gorm:"primary_key;auto_increment:false" json:"product_id"`
	MaterialID uint `gorm:"primary_key;auto_increment:false" json:"material_id"`
	Quantity   int  `gorm:"not null" json:"quantity"`
}

// TableName keeps the association table name used by the schema.
func (BOMLink) TableName() string {
	return "product_materials"
}

// BOMItem is the API view of a BOM link with the material name resolved.
type BOMItem struct {
	MaterialID   uint   `json:"material_id"`
	MaterialName string `json:"material_name"`
	Quantity     int    `json:"quantity"`
}
