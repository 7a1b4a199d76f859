package models

import "time"

// QueueEntry is a pending order awaiting confirmation. It is a parallel
// record, not linked to order items; CanFulfill and ShortageReason are
// snapshots taken when the entry was last evaluated, not live values.
type QueueEntry struct {
	ID               string     `gorm:"primary_key" json:"id"`
	Customer         string     `gorm:"not null" json:"customer"`
	Email            string     `gorm:"not null" json:"email"`
	Status           string     `gorm:"default:'Queued'" json:"status"`
	OrderDate        time.Time  `json:"order_date"`
	ExpectedDelivery *time.Time `json:"expected_delivery"`
	Total            float64    `gorm:"default:0" json:"total"`
	CanFulfill       bool       `gorm:"default:true" json:"can_fulfill"`
	ShortageReason   *string    `json:"shortage_reason"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// TableName keeps the queue table name used by the schema.
func (QueueEntry) TableName() string {
	return "order_queue"
}
