package database

import (
	"log"
	"time"

	"github.com/jinzhu/gorm"

	"tally/internal/models"
)

// Seed populates an empty database with the sample T-shirt shop catalog:
// blank shirt stock, printable products with their BOM links, a few
// in-flight orders and queue entries, and the integration registry.
// Tables that already hold rows are left untouched.
func Seed(db *gorm.DB) {
	seedMaterialsAndProducts(db)
	seedOrders(db)
	seedQueue(db)
	seedIntegrations(db)
}

func seedMaterialsAndProducts(db *gorm.DB) {
	var materialCount int64
	db.Model(&models.Material{}).Count(&materialCount)
	if materialCount > 0 {
		return
	}

	materials := []models.Material{
		{Name: "Gildan T-Shirt - Red / M", Color: "red", Quantity: 13, Unit: "24 PCS", Required: 24},
		{Name: "Gildan T-Shirt - Red / L", Color: "red", Quantity: 46, Unit: "24 PCS", Required: 24},
		{Name: "Gildan T-Shirt - Black / S", Color: "black", Quantity: 21, Unit: "24 PCS", Required: 24},
		{Name: "Gildan T-Shirt - Black / M", Color: "black", Quantity: 34, Unit: "24 PCS", Required: 24},
		{Name: "Gildan T-Shirt - Black / L", Color: "black", Quantity: 27, Unit: "24 PCS", Required: 24},
		{Name: "Gildan T-Shirt - White / S", Color: "white", Quantity: 34, Unit: "24 PCS", Required: 24},
		{Name: "Gildan T-Shirt - White / M", Color: "white", Quantity: 51, Unit: "24 PCS", Required: 24},
		{Name: "Gildan T-Shirt - White / L", Color: "white", Quantity: 29, Unit: "24 PCS", Required: 24},
		{Name: "Custom Print Design", Color: "blue", Quantity: 100, Unit: "1 PCS", Required: 1},
	}
	for i := range materials {
		if err := db.Create(&materials[i]).Error; err != nil {
			log.Printf("Failed to seed material %q: %v", materials[i].Name, err)
			return
		}
	}

	products := []models.Product{
		{Name: "Custom T-Shirt - Red / M", SKU: "TSH-RED-M-001", Color: "red", Price: 25.99},
		{Name: "Custom T-Shirt - Black / L", SKU: "TSH-BLK-L-002", Color: "black", Price: 25.99},
		{Name: "Custom T-Shirt - White / S", SKU: "TSH-WHT-S-003", Color: "white", Price: 25.99},
	}
	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			log.Printf("Failed to seed product %q: %v", products[i].SKU, err)
			return
		}
	}

	// Each shirt consumes one blank in its color/size plus one print run.
	links := []models.BOMLink{
		{ProductID: products[0].ID, MaterialID: materials[0].ID, Quantity: 1},
		{ProductID: products[0].ID, MaterialID: materials[8].ID, Quantity: 1},
		{ProductID: products[1].ID, MaterialID: materials[4].ID, Quantity: 1},
		{ProductID: products[1].ID, MaterialID: materials[8].ID, Quantity: 1},
		{ProductID: products[2].ID, MaterialID: materials[5].ID, Quantity: 1},
		{ProductID: products[2].ID, MaterialID: materials[8].ID, Quantity: 1},
	}
	for i := range links {
		if err := db.Create(&links[i]).Error; err != nil {
			log.Printf("Failed to seed BOM link %d/%d: %v", links[i].ProductID, links[i].MaterialID, err)
			return
		}
	}
}

func seedOrders(db *gorm.DB) {
	var orderCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	if orderCount > 0 {
		return
	}

	now := time.Now()
	inProgress := models.Order{
		ID:              "ORD-004",
		Customer:        "Alice Brown",
		Email:           "alice@example.com",
		Status:          string(models.OrderStatusInProgress),
		OrderDate:       now.AddDate(0, 0, -3),
		Total:           77.97,
		ShippingAddress: "123 Main St, City, State 12345",
	}
	delivery := now.AddDate(0, 0, 2)
	inProgress.ExpectedDelivery = &delivery

	shippedDelivery := now.AddDate(0, 0, -1)
	shipped := models.Order{
		ID:               "ORD-005",
		Customer:         "Bob Davis",
		Email:            "bob@example.com",
		Status:           string(models.OrderStatusShipped),
		OrderDate:        now.AddDate(0, 0, -5),
		ExpectedDelivery: &shippedDelivery,
		Total:            25.99,
		TrackingNumber:   "1Z999AA1234567890",
		ShippingAddress:  "456 Oak Ave, City, State 12345",
	}

	for _, order := range []models.Order{inProgress, shipped} {
		if err := db.Create(&order).Error; err != nil {
			log.Printf("Failed to seed order %s: %v", order.ID, err)
			return
		}
	}

	items := []models.OrderItem{
		{OrderID: "ORD-004", ProductID: 1, ProductName: "Custom T-Shirt - Red / M", Quantity: 2, Price: 25.99},
		{OrderID: "ORD-004", ProductID: 2, ProductName: "Custom T-Shirt - Black / L", Quantity: 1, Price: 25.99},
		{OrderID: "ORD-005", ProductID: 1, ProductName: "Custom T-Shirt - Red / M", Quantity: 1, Price: 25.99},
	}
	for i := range items {
		if err := db.Create(&items[i]).Error; err != nil {
			log.Printf("Failed to seed order item for %s: %v", items[i].OrderID, err)
			return
		}
	}
}

func seedQueue(db *gorm.DB) {
	var queueCount int64
	db.Model(&models.QueueEntry{}).Count(&queueCount)
	if queueCount > 0 {
		return
	}

	now := time.Now()
	shortageReason := "Insufficient Red / M inventory"
	deliveries := []time.Time{
		now.AddDate(0, 0, 3),
		now.AddDate(0, 0, 4),
		now.AddDate(0, 0, 5),
	}

	entries := []models.QueueEntry{
		{
			ID:               "ORD-001",
			Customer:         "John Smith",
			Email:            "john@example.com",
			Status:           string(models.OrderStatusQueued),
			OrderDate:        now.AddDate(0, 0, -2),
			ExpectedDelivery: &deliveries[0],
			Total:            77.97,
			CanFulfill:       true,
		},
		{
			ID:               "ORD-002",
			Customer:         "Sarah Johnson",
			Email:            "sarah@example.com",
			Status:           string(models.OrderStatusReserved),
			OrderDate:        now.AddDate(0, 0, -1),
			ExpectedDelivery: &deliveries[1],
			Total:            77.97,
			CanFulfill:       true,
		},
		{
			ID:               "ORD-003",
			Customer:         "Mike Wilson",
			Email:            "mike@example.com",
			Status:           string(models.OrderStatusQueued),
			OrderDate:        now,
			ExpectedDelivery: &deliveries[2],
			Total:            129.95,
			CanFulfill:       false,
			ShortageReason:   &shortageReason,
		},
	}
	for i := range entries {
		if err := db.Create(&entries[i]).Error; err != nil {
			log.Printf("Failed to seed queue entry %s: %v", entries[i].ID, err)
			return
		}
	}
}

func seedIntegrations(db *gorm.DB) {
	var integrationCount int64
	db.Model(&models.Integration{}).Count(&integrationCount)
	if integrationCount > 0 {
		return
	}

	integrations := []models.Integration{
		{Name: "email", DisplayName: "Email", Enabled: true},
		{Name: "shopify", DisplayName: "Shopify", Enabled: false},
		{Name: "woocommerce", DisplayName: "WooCommerce", Enabled: false},
		{Name: "slack", DisplayName: "Slack", Enabled: true},
		{Name: "webhooks", DisplayName: "Webhooks", Enabled: false},
	}
	for i := range integrations {
		if err := db.Create(&integrations[i]).Error; err != nil {
			log.Printf("Failed to seed integration %q: %v", integrations[i].Name, err)
			return
		}
	}
}
