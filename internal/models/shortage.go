package models

import "github.com/jinzhu/gorm"

// Shortage records a material deficit detected for an order. Short is
// always needed minus available and is only recorded when positive.
type Shortage struct {
	gorm.Model
	OrderID      string `gorm:"index;not null" json:"order_id"`
	MaterialID   uint   `gorm:"not null" json:"material_id"`
	MaterialName string `gorm:"not null" json:"material_name"`
	Needed       int    `gorm:"not null" json:"needed"`
	Available    int    `gorm:"not null" json:"available"`
	Short        int    `gorm:"not null" json:"short"`
}
