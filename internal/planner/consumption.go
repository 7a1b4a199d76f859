package planner

import (
	"time"

	"tally/internal/models"
)

const (
	consumptionWindowDays = 30

	// Flat consumption estimates. The heuristic is keyed to order counts,
	// not to actual BOM usage, so every material sees the same aggregate
	// demand signal. This is a known weakness carried over deliberately;
	// fixing it to trace real per-material consumption changes behavior.
	unitsPerOrderItem  = 2
	unitsPerQueueEntry = 1

	// Returned when the window holds no consumption at all. Kept integral
	// instead of unbounded so the field stays a plain number on the wire.
	noConsumptionSentinel = 999
)

// recentOrderConsumption sums the estimated units consumed by order line
// items dated within the trailing window.
func recentOrderConsumption(orders []models.Order, now time.Time) int {
	cutoff := now.AddDate(0, 0, -consumptionWindowDays)
	total := 0
	for _, order := range orders {
		if !order.OrderDate.Before(cutoff) {
			total += len(order.Items) * unitsPerOrderItem
		}
	}
	return total
}

// DaysRemaining estimates how many days of stock remain for the material
// given recent order and queue activity. With zero consumption in the
// window the estimate is the sentinel 999 regardless of stock level.
func DaysRemaining(material *models.Material, orders []models.Order, entries []models.QueueEntry, now time.Time) int {
	total := recentOrderConsumption(orders, now)

	cutoff := now.AddDate(0, 0, -consumptionWindowDays)
	for _, entry := range entries {
		if !entry.OrderDate.Before(cutoff) {
			total += unitsPerQueueEntry
		}
	}

	if total == 0 {
		return noConsumptionSentinel
	}

	daily := float64(total) / consumptionWindowDays
	return int(float64(material.Quantity) / daily)
}

// ReorderQuantity recommends a purchase quantity that maintains a 30-day
// buffer at the recent consumption rate, never below the material's
// configured minimum. Queue entries do not count here; only fulfilled
// order history drives the rate, with a floor of one unit per day.
func ReorderQuantity(material *models.Material, orders []models.Order, now time.Time) int {
	total := recentOrderConsumption(orders, now)

	daily := 1.0
	if total > 0 {
		daily = float64(total) / consumptionWindowDays
	}

	recommended := int(daily * consumptionWindowDays)
	if recommended < material.Required {
		recommended = material.Required
	}
	return recommended
}
