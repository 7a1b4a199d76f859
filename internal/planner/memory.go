package planner

import (
	"sort"
	"sync"
	"time"

	"tally/internal/models"
)

// MemoryRepository provides in-memory storage satisfying Repository.
// It backs tests and tooling that need planner behavior without a
// database.
type MemoryRepository struct {
	mu        sync.RWMutex
	materials map[uint]models.Material
	products  map[uint]models.Product
	bom       map[uint][]models.BOMLink
	orders    map[string]models.Order
	queue     map[string]models.QueueEntry
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		materials: make(map[uint]models.Material),
		products:  make(map[uint]models.Product),
		bom:       make(map[uint][]models.BOMLink),
		orders:    make(map[string]models.Order),
		queue:     make(map[string]models.QueueEntry),
	}
}

// Verify interface compliance
var _ Repository = (*MemoryRepository)(nil)

// AddMaterial stores or replaces a material.
func (r *MemoryRepository) AddMaterial(m models.Material) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.materials[m.ID] = m
}

// AddProduct stores or replaces a product.
func (r *MemoryRepository) AddProduct(p models.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = p
}

// SetBOM replaces the product's BOM links.
func (r *MemoryRepository) SetBOM(productID uint, links []models.BOMLink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := make([]models.BOMLink, len(links))
	copy(copied, links)
	sort.Slice(copied, func(i, j int) bool { return copied[i].MaterialID < copied[j].MaterialID })
	r.bom[productID] = copied
}

// AddOrder stores or replaces an order.
func (r *MemoryRepository) AddOrder(o models.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID] = o
}

// AddQueueEntry stores or replaces a queue entry.
func (r *MemoryRepository) AddQueueEntry(e models.QueueEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queue[e.ID] = e
}

func (r *MemoryRepository) GetMaterial(id uint) (*models.Material, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.materials[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &m, nil
}

func (r *MemoryRepository) ListMaterials() ([]models.Material, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Material, 0, len(r.materials))
	for _, m := range r.materials {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepository) GetProduct(id uint) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *MemoryRepository) ListProducts() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepository) ListBOMLinks(productID uint) ([]models.BOMLink, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	links := r.bom[productID]
	out := make([]models.BOMLink, len(links))
	copy(out, links)
	return out, nil
}

func (r *MemoryRepository) GetOrder(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &o, nil
}

func (r *MemoryRepository) ListOrders(since *time.Time) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		if since != nil && o.OrderDate.Before(*since) {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepository) ListQueueEntries(since *time.Time) ([]models.QueueEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.QueueEntry, 0, len(r.queue))
	for _, e := range r.queue {
		if since != nil && e.OrderDate.Before(*since) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
