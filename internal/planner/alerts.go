package planner

import (
	"fmt"
	"sort"
	"time"

	"tally/internal/models"
)

// Days-remaining thresholds for the alert buckets. The reorder window
// overlaps the critical and low ranges on purpose: a critical material
// also receives a reorder recommendation.
const (
	criticalThresholdDays = 7
	lowStockThresholdDays = 14
	reorderThresholdDays  = 21
)

// AnalyzeInventoryHealth classifies every material by estimated days of
// stock remaining and returns the bucketed report used by the analysis
// endpoint and the insight prompt builder.
func (p *Planner) AnalyzeInventoryHealth(now time.Time) (*models.HealthReport, error) {
	materials, err := p.repo.ListMaterials()
	if err != nil {
		return nil, err
	}
	orders, err := p.repo.ListOrders(nil)
	if err != nil {
		return nil, err
	}
	entries, err := p.repo.ListQueueEntries(nil)
	if err != nil {
		return nil, err
	}

	report := &models.HealthReport{
		CriticalAlerts:         []models.StockAssessment{},
		LowStockAlerts:         []models.StockAssessment{},
		ReorderRecommendations: []models.ReorderRecommendation{},
		TotalMaterials:         len(materials),
		AnalysisTimestamp:      now,
	}

	for i := range materials {
		material := &materials[i]
		days := DaysRemaining(material, orders, entries, now)

		switch {
		case days <= criticalThresholdDays:
			report.CriticalAlerts = append(report.CriticalAlerts, models.StockAssessment{
				MaterialID:        material.ID,
				MaterialName:      material.Name,
				CurrentQuantity:   material.Quantity,
				DaysRemaining:     days,
				Urgency:           string(models.AlertCritical),
				RecommendedAction: fmt.Sprintf("Order immediately - will run out in %d days", days),
			})
		case days <= lowStockThresholdDays:
			report.LowStockAlerts = append(report.LowStockAlerts, models.StockAssessment{
				MaterialID:        material.ID,
				MaterialName:      material.Name,
				CurrentQuantity:   material.Quantity,
				DaysRemaining:     days,
				Urgency:           string(models.AlertLowStock),
				RecommendedAction: fmt.Sprintf("Order soon - will run out in %d days", days),
			})
		}

		if days <= reorderThresholdDays {
			recommended := ReorderQuantity(material, orders, now)
			report.ReorderRecommendations = append(report.ReorderRecommendations, models.ReorderRecommendation{
				MaterialID:          material.ID,
				MaterialName:        material.Name,
				CurrentStock:        material.Quantity,
				RecommendedQuantity: recommended,
				DaysRemaining:       days,
				Reasoning:           fmt.Sprintf("Based on consumption rate, order %d units to maintain 30-day buffer", recommended),
			})
		}
	}

	return report, nil
}

// SmartAlerts converts the health report into a flat, priority-ordered
// alert list for the dashboard: critical first, then low stock, then
// reorder recommendations. The sort is stable so per-bucket material
// order is preserved on ties.
func (p *Planner) SmartAlerts(now time.Time) ([]models.Alert, error) {
	report, err := p.AnalyzeInventoryHealth(now)
	if err != nil {
		return nil, err
	}

	alerts := make([]models.Alert, 0,
		len(report.CriticalAlerts)+len(report.LowStockAlerts)+len(report.ReorderRecommendations))

	for _, item := range report.CriticalAlerts {
		alerts = append(alerts, models.Alert{
			ID:              fmt.Sprintf("critical_%d", item.MaterialID),
			Type:            models.AlertCritical,
			Title:           fmt.Sprintf("Critical Stock Alert: %s", item.MaterialName),
			Message:         fmt.Sprintf("Only %d days of stock remaining! %s", item.DaysRemaining, item.RecommendedAction),
			MaterialID:      item.MaterialID,
			MaterialName:    item.MaterialName,
			CurrentQuantity: item.CurrentQuantity,
			DaysRemaining:   item.DaysRemaining,
			Priority:        1,
			Timestamp:       now,
		})
	}

	for _, item := range report.LowStockAlerts {
		alerts = append(alerts, models.Alert{
			ID:              fmt.Sprintf("low_%d", item.MaterialID),
			Type:            models.AlertLowStock,
			Title:           fmt.Sprintf("Low Stock Alert: %s", item.MaterialName),
			Message:         fmt.Sprintf("Stock running low - %d days remaining. %s", item.DaysRemaining, item.RecommendedAction),
			MaterialID:      item.MaterialID,
			MaterialName:    item.MaterialName,
			CurrentQuantity: item.CurrentQuantity,
			DaysRemaining:   item.DaysRemaining,
			Priority:        2,
			Timestamp:       now,
		})
	}

	for _, rec := range report.ReorderRecommendations {
		alerts = append(alerts, models.Alert{
			ID:                  fmt.Sprintf("reorder_%d", rec.MaterialID),
			Type:                models.AlertReorder,
			Title:               fmt.Sprintf("Reorder Recommendation: %s", rec.MaterialName),
			Message:             fmt.Sprintf("Consider ordering %d units. %s", rec.RecommendedQuantity, rec.Reasoning),
			MaterialID:          rec.MaterialID,
			MaterialName:        rec.MaterialName,
			CurrentQuantity:     rec.CurrentStock,
			DaysRemaining:       rec.DaysRemaining,
			RecommendedQuantity: rec.RecommendedQuantity,
			Priority:            3,
			Timestamp:           now,
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Priority < alerts[j].Priority
	})
	return alerts, nil
}
