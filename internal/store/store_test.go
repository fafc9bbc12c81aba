package store

import (
	"testing"
	"time"

	"catalog-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProduct(id, sku string) *models.Product {
	now := time.Now()
	return &models.Product{
		ID:            id,
		Name:          "Product " + id,
		Category:      "test",
		Price:         10,
		Currency:      "USD",
		StockQuantity: 1,
		SKU:           sku,
		Status:        models.StatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestInsertAndGet(t *testing.T) {
	s := NewStore()

	require.NoError(t, s.Insert(newProduct("p1", "SKU-1")))

	got, err := s.Get("p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", got.ID)
	assert.Equal(t, "SKU-1", got.SKU)
}

func TestInsertDuplicateID(t *testing.T) {
	s := NewStore()

	require.NoError(t, s.Insert(newProduct("p1", "SKU-1")))
	err := s.Insert(newProduct("p1", "SKU-2"))
	assert.ErrorIs(t, err, ErrConflict)
}

func TestGetMissing(t *testing.T) {
	s := NewStore()

	_, err := s.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPutRequiresExisting(t *testing.T) {
	s := NewStore()

	err := s.Put("p1", newProduct("p1", "SKU-1"))
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Insert(newProduct("p1", "SKU-1")))

	updated := newProduct("p1", "SKU-1")
	updated.Name = "Renamed"
	require.NoError(t, s.Put("p1", updated))

	got, err := s.Get("p1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
}

func TestDelete(t *testing.T) {
	s := NewStore()

	require.NoError(t, s.Insert(newProduct("p1", "SKU-1")))
	require.NoError(t, s.Delete("p1"))

	_, err := s.Get("p1")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Delete("p1"), ErrNotFound)
}

func TestAllPreservesInsertionOrder(t *testing.T) {
	s := NewStore()

	ids := []string{"c", "a", "b"}
	for i, id := range ids {
		require.NoError(t, s.Insert(newProduct(id, "SKU-"+id)))
		assert.Equal(t, i+1, s.Len())
	}

	all := s.All()
	require.Len(t, all, 3)
	for i, id := range ids {
		assert.Equal(t, id, all[i].ID)
	}
}

func TestAllSnapshotIsolation(t *testing.T) {
	s := NewStore()

	require.NoError(t, s.Insert(newProduct("p1", "SKU-1")))
	snapshot := s.All()

	// Mutations after the snapshot must not leak into it.
	require.NoError(t, s.Delete("p1"))
	require.NoError(t, s.Insert(newProduct("p2", "SKU-2")))

	require.Len(t, snapshot, 1)
	assert.Equal(t, "p1", snapshot[0].ID)

	// Mutating a returned copy must not touch the stored record.
	require.NoError(t, s.Insert(newProduct("p3", "SKU-3")))
	got, err := s.Get("p3")
	require.NoError(t, err)
	got.Name = "mutated copy"
	again, err := s.Get("p3")
	require.NoError(t, err)
	assert.Equal(t, "Product p3", again.Name)
}

func TestSeed(t *testing.T) {
	s := NewStore()

	require.NoError(t, s.Seed())
	assert.Equal(t, 4, s.Len())

	// Seeding twice must not duplicate the catalog.
	require.NoError(t, s.Seed())
	assert.Equal(t, 4, s.Len())

	got, err := s.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "IPHONE-15-PRO-128", got.SKU)
	assert.Equal(t, models.StatusActive, got.Status)
}
