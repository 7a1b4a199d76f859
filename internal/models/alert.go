package models

import "time"

// AlertType classifies an inventory alert by urgency.
type AlertType string

const (
	AlertCritical AlertType = "CRITICAL"
	AlertLowStock AlertType = "LOW_STOCK"
	AlertReorder  AlertType = "REORDER"
)

// Alert is an advisory record surfaced on the dashboard. Alerts are
// ordered by priority, 1 being the most urgent. A material that is
// critical also receives a reorder alert; the overlap is intentional.
type Alert struct {
	ID                  string    `json:"id"`
	Type                AlertType `json:"type"`
	Title               string    `json:"title"`
	Message             string    `json:"message"`
	MaterialID          uint      `json:"material_id"`
	MaterialName        string    `json:"material_name"`
	CurrentQuantity     int       `json:"current_quantity"`
	DaysRemaining       int       `json:"days_remaining"`
	RecommendedQuantity int       `json:"recommended_quantity,omitempty"`
	Priority            int       `json:"priority"`
	Timestamp           time.Time `json:"timestamp"`
}

// StockAssessment describes one material's stock situation inside a
// health report bucket.
type StockAssessment struct {
	MaterialID        uint   `json:"material_id"`
	MaterialName      string `json:"material_name"`
	CurrentQuantity   int    `json:"current_quantity"`
	DaysRemaining     int    `json:"days_remaining"`
	Urgency           string `json:"urgency"`
	RecommendedAction string `json:"recommended_action"`
}

// ReorderRecommendation suggests a purchase quantity for a material that
// is inside the reorder window.
type ReorderRecommendation struct {
	MaterialID          uint   `json:"material_id"`
	MaterialName        string `json:"material_name"`
	CurrentStock        int    `json:"current_stock"`
	RecommendedQuantity int    `json:"recommended_quantity"`
	DaysRemaining       int    `json:"days_remaining"`
	Reasoning           string `json:"reasoning"`
}

// HealthReport is the aggregate inventory analysis returned by the
// analysis endpoint and consumed by the insight prompt builder.
type HealthReport struct {
	CriticalAlerts         []StockAssessment       `json:"critical_alerts"`
	LowStockAlerts         []StockAssessment       `json:"low_stock_alerts"`
	ReorderRecommendations []ReorderRecommendation `json:"reorder_recommendations"`
	TotalMaterials         int                     `json:"total_materials"`
	AnalysisTimestamp      time.Time               `json:"analysis_timestamp"`
}
