package planner

import (
	"fmt"
	"time"
)

// Planner computes buildability, shortages and stock alerts from a
// repository snapshot. All computations are pure and synchronous; the
// only internal state is the can-build cache, which is advisory and
// guarded separately.
type Planner struct {
	repo  Repository
	cache *buildCache
}

// New creates a planner over the given repository.
func New(repo Repository) *Planner {
	return &Planner{
		repo:  repo,
		cache: newBuildCache(),
	}
}

// CanBuild returns the number of whole units of the product that can be
// built from current stock: the minimum over all BOM links of
// floor(material stock / quantity per unit). A product with no BOM links
// cannot be built and yields 0. A link quantity below 1 is invalid input.
// The result is stored in the can-build cache as a side effect.
func (p *Planner) CanBuild(productID uint) (int, error) {
	if _, err := p.repo.GetProduct(productID); err != nil {
		return 0, err
	}

	links, err := p.repo.ListBOMLinks(productID)
	if err != nil {
		return 0, err
	}
	if len(links) == 0 {
		// No recipe means nothing can be built, not "unconstrained".
		p.cache.put(productID, 0)
		return 0, nil
	}

	units := -1
	for _, link := range links {
		if link.Quantity < 1 {
			return 0, fmt.Errorf("bom link product %d material %d: quantity per unit %d, must be at least 1",
				link.ProductID, link.MaterialID, link.Quantity)
		}
		material, err := p.repo.GetMaterial(link.MaterialID)
		if err != nil {
			return 0, fmt.Errorf("bom link product %d: material %d: %w", link.ProductID, link.MaterialID, err)
		}
		n := material.Quantity / link.Quantity
		if units < 0 || n < units {
			units = n
		}
	}

	p.cache.put(productID, units)
	return units, nil
}

// CanBuildAll computes buildability for every product against one stock
// snapshot. Products whose BOM is invalid are reported in the error after
// the remaining products have been computed.
func (p *Planner) CanBuildAll() (map[uint]int, error) {
	products, err := p.repo.ListProducts()
	if err != nil {
		return nil, err
	}

	results := make(map[uint]int, len(products))
	var firstErr error
	for _, product := range products {
		n, err := p.CanBuild(product.ID)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		results[product.ID] = n
	}
	return results, firstErr
}

// CachedCanBuild returns the last computed buildability for the product
// together with the time it was computed. The value may be stale; callers
// that need a current figure must call CanBuild.
func (p *Planner) CachedCanBuild(productID uint) (int, time.Time, bool) {
	return p.cache.get(productID)
}

// Invalidate drops the cached buildability for one product. Call it after
// the product's BOM changes.
func (p *Planner) Invalidate(productID uint) {
	p.cache.invalidate(productID)
}

// InvalidateAll drops every cached buildability. Call it after a material
// stock change, since any product may consume the changed material.
func (p *Planner) InvalidateAll() {
	p.cache.invalidateAll()
}
