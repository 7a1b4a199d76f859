package database

import (
	"time"

	"github.com/jinzhu/gorm"

	"tally/internal/models"
	"tally/internal/planner"
)

// Repository is the gorm-backed persistence collaborator the planner
// reads from. Association traversal is explicit: BOM links are loaded as
// rows from the join table, never through lazy relationship loading.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a repository over the given connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Verify interface compliance
var _ planner.Repository = (*Repository)(nil)

func (r *Repository) GetMaterial(id uint) (*models.Material, error) {
	var m models.Material
	if err := r.db.First(&m, id).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, planner.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *Repository) ListMaterials() ([]models.Material, error) {
	var materials []models.Material
	if err := r.db.Order("id").Find(&materials).Error; err != nil {
		return nil, err
	}
	return materials, nil
}

func (r *Repository) GetProduct(id uint) (*models.Product, error) {
	var p models.Product
	if err := r.db.First(&p, id).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, planner.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repository) ListProducts() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("id").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *Repository) ListBOMLinks(productID uint) ([]models.BOMLink, error) {
	var links []models.BOMLink
	if err := r.db.Where("product_id = ?", productID).Order("material_id").Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

func (r *Repository) GetOrder(id string) (*models.Order, error) {
	var o models.Order
	if err := r.db.Preload("Items").Where("id = ?", id).First(&o).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, planner.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *Repository) ListOrders(since *time.Time) ([]models.Order, error) {
	query := r.db.Preload("Items").Order("id")
	if since != nil {
		query = query.Where("order_date >= ?", *since)
	}
	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *Repository) ListQueueEntries(since *time.Time) ([]models.QueueEntry, error) {
	query := r.db.Order("id")
	if since != nil {
		query = query.Where("order_date >= ?", *since)
	}
	var entries []models.QueueEntry
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
