package planner

import (
	"errors"
	"time"

	"tally/internal/models"
)

// ErrNotFound is returned when a looked-up entity does not exist.
var ErrNotFound = errors.New("not found")

// Repository is the persistence collaborator the planner reads from.
// All reads are point-in-time snapshots; the planner performs no writes.
type Repository interface {
	GetMaterial(id uint) (*models.Material, error)
	ListMaterials() ([]models.Material, error)
	GetProduct(id uint) (*models.Product, error)
	ListProducts() ([]models.Product, error)
	// ListBOMLinks returns the product's BOM links in material-id order.
	// An unknown product yields an empty slice, not an error.
	ListBOMLinks(productID uint) ([]models.BOMLink, error)
	GetOrder(id string) (*models.Order, error)
	ListOrders(since *time.Time) ([]models.Order, error)
	ListQueueEntries(since *time.Time) ([]models.QueueEntry, error)
}
