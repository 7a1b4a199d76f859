package models

import "github.com/jinzhu/gorm"

// Material represents a raw material held in stock, such as a blank
// T-shirt in a specific color and size. Quantity is the current on-hand
// stock; Required is the reorder threshold configured for the material.
type Material struct {
	gorm.Model
	Name     string `gorm:"index;not null" json:"name"`
	Color    string `gorm:"not null" json:"color"`
	Quantity int    `gorm:"default:0" json:"quantity"`
	Unit     string `gorm:"not null" json:"unit"`
	Required int    `gorm:"default:0" json:"required"`
}
