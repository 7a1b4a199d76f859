package planner

import (
	"errors"
	"testing"

	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/models"
)

func material(id uint, name string, quantity, required int) models.Material {
	return models.Material{
		Model:    gorm.Model{ID: id},
		Name:     name,
		Color:    "red",
		Quantity: quantity,
		Unit:     "24 PCS",
		Required: required,
	}
}

func product(id uint, name, sku string) models.Product {
	return models.Product{
		Model: gorm.Model{ID: id},
		Name:  name,
		SKU:   sku,
		Color: "red",
		Price: 25.99,
	}
}

func TestCanBuildMinOverLinks(t *testing.T) {
	repo := NewMemoryRepository()
	repo.AddMaterial(material(1, "Gildan T-Shirt - Red / M", 13, 24))
	repo.AddMaterial(material(2, "Custom Print Design", 100, 1))
	repo.AddProduct(product(1, "Custom T-Shirt - Red / M", "TSH-RED-M-001"))
	repo.SetBOM(1, []models.BOMLink{
		{ProductID: 1, MaterialID: 1, Quantity: 1},
		{ProductID: 1, MaterialID: 2, Quantity: 1},
	})

	p := New(repo)
	units, err := p.CanBuild(1)
	require.NoError(t, err)
	assert.Equal(t, 13, units)
}

func TestCanBuildFloorsPerLink(t *testing.T) {
	repo := NewMemoryRepository()
	repo.AddMaterial(material(1, "Fabric", 25, 0))
	repo.AddMaterial(material(2, "Thread", 9, 0))
	repo.AddProduct(product(1, "Shirt", "TSH-001"))
	repo.SetBOM(1, []models.BOMLink{
		{ProductID: 1, MaterialID: 1, Quantity: 3}, // floor(25/3) = 8
		{ProductID: 1, MaterialID: 2, Quantity: 2}, // floor(9/2) = 4
	})

	p := New(repo)
	units, err := p.CanBuild(1)
	require.NoError(t, err)
	assert.Equal(t, 4, units)
}

func TestCanBuildNoRecipeIsZero(t *testing.T) {
	repo := NewMemoryRepository()
	repo.AddProduct(product(1, "Mystery Shirt", "TSH-MYS-001"))

	p := New(repo)
	units, err := p.CanBuild(1)
	require.NoError(t, err)
	assert.Equal(t, 0, units)
}

func TestCanBuildZeroQuantityLinkIsError(t *testing.T) {
	repo := NewMemoryRepository()
	repo.AddMaterial(material(1, "Fabric", 50, 0))
	repo.AddProduct(product(1, "Shirt", "TSH-001"))
	repo.SetBOM(1, []models.BOMLink{
		{ProductID: 1, MaterialID: 1, Quantity: 0},
	})

	p := New(repo)
	_, err := p.CanBuild(1)
	assert.Error(t, err)
}

func TestCanBuildUnknownProduct(t *testing.T) {
	p := New(NewMemoryRepository())
	_, err := p.CanBuild(42)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCanBuildIdempotent(t *testing.T) {
	repo := NewMemoryRepository()
	repo.AddMaterial(material(1, "Fabric", 34, 0))
	repo.AddProduct(product(1, "Shirt", "TSH-001"))
	repo.SetBOM(1, []models.BOMLink{
		{ProductID: 1, MaterialID: 1, Quantity: 2},
	})

	p := New(repo)
	first, err := p.CanBuild(1)
	require.NoError(t, err)
	second, err := p.CanBuild(1)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCanBuildAll(t *testing.T) {
	repo := NewMemoryRepository()
	repo.AddMaterial(material(1, "Red / M", 13, 24))
	repo.AddMaterial(material(2, "Black / L", 27, 24))
	repo.AddMaterial(material(3, "Print Design", 100, 1))
	repo.AddProduct(product(1, "Red Shirt", "TSH-RED-M-001"))
	repo.AddProduct(product(2, "Black Shirt", "TSH-BLK-L-002"))
	repo.AddProduct(product(3, "No Recipe", "TSH-NONE-003"))
	repo.SetBOM(1, []models.BOMLink{
		{ProductID: 1, MaterialID: 1, Quantity: 1},
		{ProductID: 1, MaterialID: 3, Quantity: 1},
	})
	repo.SetBOM(2, []models.BOMLink{
		{ProductID: 2, MaterialID: 2, Quantity: 1},
		{ProductID: 2, MaterialID: 3, Quantity: 1},
	})

	p := New(repo)
	results, err := p.CanBuildAll()
	require.NoError(t, err)
	assert.Equal(t, map[uint]int{1: 13, 2: 27, 3: 0}, results)
}

func TestBuildCacheLifecycle(t *testing.T) {
	repo := NewMemoryRepository()
	repo.AddMaterial(material(1, "Fabric", 10, 0))
	repo.AddProduct(product(1, "Shirt", "TSH-001"))
	repo.SetBOM(1, []models.BOMLink{
		{ProductID: 1, MaterialID: 1, Quantity: 1},
	})

	p := New(repo)
	_, _, ok := p.CachedCanBuild(1)
	assert.False(t, ok, "cache should start empty")

	units, err := p.CanBuild(1)
	require.NoError(t, err)

	cached, computedAt, ok := p.CachedCanBuild(1)
	require.True(t, ok)
	assert.Equal(t, units, cached)
	assert.False(t, computedAt.IsZero())

	// A stock write invalidates every product's cached value.
	p.InvalidateAll()
	_, _, ok = p.CachedCanBuild(1)
	assert.False(t, ok)

	// A BOM write invalidates just that product.
	_, err = p.CanBuild(1)
	require.NoError(t, err)
	p.Invalidate(1)
	_, _, ok = p.CachedCanBuild(1)
	assert.False(t, ok)
}
