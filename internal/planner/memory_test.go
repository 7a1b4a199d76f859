package planner

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/models"
)

func TestMemoryRepositoryNotFound(t *testing.T) {
	repo := NewMemoryRepository()

	_, err := repo.GetMaterial(1)
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = repo.GetProduct(1)
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = repo.GetOrder("ORD-001")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemoryRepositoryListOrdering(t *testing.T) {
	repo := NewMemoryRepository()
	repo.AddMaterial(material(3, "C", 1, 0))
	repo.AddMaterial(material(1, "A", 1, 0))
	repo.AddMaterial(material(2, "B", 1, 0))

	materials, err := repo.ListMaterials()
	require.NoError(t, err)
	require.Len(t, materials, 3)
	assert.Equal(t, uint(1), materials[0].ID)
	assert.Equal(t, uint(2), materials[1].ID)
	assert.Equal(t, uint(3), materials[2].ID)
}

func TestMemoryRepositoryBOMLinksSorted(t *testing.T) {
	repo := NewMemoryRepository()
	repo.SetBOM(1, []models.BOMLink{
		{ProductID: 1, MaterialID: 9, Quantity: 1},
		{ProductID: 1, MaterialID: 2, Quantity: 1},
	})

	links, err := repo.ListBOMLinks(1)
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, uint(2), links[0].MaterialID)
	assert.Equal(t, uint(9), links[1].MaterialID)

	// Unknown product yields an empty slice, not an error.
	links, err = repo.ListBOMLinks(42)
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestMemoryRepositorySinceFilter(t *testing.T) {
	repo := NewMemoryRepository()
	now := time.Now()
	repo.AddOrder(datedOrder("ORD-001", 40, 1, now))
	repo.AddOrder(datedOrder("ORD-002", 5, 1, now))
	repo.AddQueueEntry(datedQueueEntry("ORD-003", 40, now))
	repo.AddQueueEntry(datedQueueEntry("ORD-004", 5, now))

	cutoff := now.AddDate(0, 0, -30)
	orders, err := repo.ListOrders(&cutoff)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "ORD-002", orders[0].ID)

	entries, err := repo.ListQueueEntries(&cutoff)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ORD-004", entries[0].ID)
}
