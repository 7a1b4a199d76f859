package models

import "github.com/jinzhu/gorm"

// Integration is a third-party service connection (Shopify, Slack, ...).
// Settings holds provider-specific options as a JSON string.
type Integration struct {
	gorm.Model
	Name        string `gorm:"unique;not null" json:"name"`
	DisplayName string `gorm:"not null" json:"display_name"`
	Enabled     bool   `gorm:"default:false" json:"enabled"`
	APIKey      string `json:"api_key"`
	WebhookURL  string `json:"webhook_url"`
	Settings    string `json:"settings"`
}
