package planner

import (
	"errors"
	"fmt"

	"tally/internal/models"
)

// DetectShortages computes per-material shortfalls for an order against
// current stock. For each item, each BOM link of the item's product is
// checked: needed = item quantity x quantity per unit. A Shortage is
// emitted only when needed exceeds available stock. Items whose product
// cannot be resolved, or whose product has no BOM links, contribute
// nothing. Stock already promised to other pending orders is not
// reserved; every item is compared against the same snapshot.
//
// Output order is stable: items in order sequence, links in material-id
// order within an item.
func (p *Planner) DetectShortages(orderID string) ([]models.Shortage, error) {
	order, err := p.repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}

	var shortages []models.Shortage
	for _, item := range order.Items {
		if _, err := p.repo.GetProduct(item.ProductID); err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("order %s item %d: %w", orderID, item.ID, err)
		}

		links, err := p.repo.ListBOMLinks(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("order %s item %d: %w", orderID, item.ID, err)
		}

		for _, link := range links {
			material, err := p.repo.GetMaterial(link.MaterialID)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					continue
				}
				return nil, fmt.Errorf("order %s material %d: %w", orderID, link.MaterialID, err)
			}

			needed := item.Quantity * link.Quantity
			if needed > material.Quantity {
				shortages = append(shortages, models.Shortage{
					OrderID:      order.ID,
					MaterialID:   material.ID,
					MaterialName: material.Name,
					Needed:       needed,
					Available:    material.Quantity,
					Short:        needed - material.Quantity,
				})
			}
		}
	}
	return shortages, nil
}
