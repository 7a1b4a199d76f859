package models

import "time"

// Order represents a confirmed customer order in fulfillment. Orders use
// human-readable string identifiers such as "ORD-004". The header fields
// (status, tracking, address) are mutable; items are fixed at creation.
type Order struct {
	ID               string     `gorm:"primary_key" json:"id"`
	Customer         string     `gorm:"not null" json:"customer"`
	Email            string     `gorm:"not null" json:"email"`
	Status           string     `gorm:"default:'Queued'" json:"status"`
	OrderDate        time.Time  `json:"order_date"`
	ExpectedDelivery *time.Time `json:"expected_delivery"`
	Total            float64    `gorm:"default:0" json:"total"`
	TrackingNumber   string     `json:"tracking_number"`
	ShippingAddress  string     `gorm:"not null" json:"shipping_address"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	Items            []OrderItem `gorm:"foreignkey:OrderID" json:"items"`
}

// OrderItem is a single line of an order. ProductName and Price are
// snapshots taken at order time so later catalog edits do not rewrite
// historical orders.
type OrderItem struct {
	ID          uint    `gorm:"primary_key" json:"id"`
	OrderID     string  `gorm:"index;not null" json:"order_id"`
	ProductID   uint    `gorm:"not null" json:"product_id"`
	ProductName string  `gorm:"not null" json:"product_name"`
	Quantity    int     `gorm:"not null" json:"quantity"`
	Price       float64 `gorm:"not null" json:"price"`
}

// OrderStatus values form an open string enum; the API accepts statuses
// beyond this list.
type OrderStatus string

const (
	OrderStatusQueued     OrderStatus = "Queued"
	OrderStatusReserved   OrderStatus = "Reserved"
	OrderStatusInProgress OrderStatus = "In Progress"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusCompleted  OrderStatus = "Completed"
)
