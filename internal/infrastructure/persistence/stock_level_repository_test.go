package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockcraft/backend/internal/domain/shared"
	"github.com/stockcraft/backend/internal/domain/warehousing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupStockLevelTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&warehousing.StockLevel{})
	require.NoError(t, err)

	return db
}

func TestGormStockLevelRepository_GetOrCreate(t *testing.T) {
	db := setupStockLevelTestDB(t)
	repo := NewGormStockLevelRepository(db)
	ctx := context.Background()

	itemID := uuid.New()
	warehouseID := uuid.New()

	t.Run("creates a zero level when none exists", func(t *testing.T) {
		level, err := repo.GetOrCreate(ctx, itemID, warehouseID, nil)
		require.NoError(t, err)
		require.NotNil(t, level)

		assert.Equal(t, itemID, level.ItemID)
		assert.Equal(t, warehouseID, level.WarehouseID)
		assert.Nil(t, level.LocationID)
		assert.True(t, level.OnHand.IsZero())
		assert.True(t, level.Reserved.IsZero())
	})

	t.Run("returns the existing level on a second call", func(t *testing.T) {
		first, err := repo.GetOrCreate(ctx, itemID, warehouseID, nil)
		require.NoError(t, err)

		require.NoError(t, first.Receive(decimal.NewFromInt(10)))
		require.NoError(t, repo.SaveWithLock(ctx, first))

		second, err := repo.GetOrCreate(ctx, itemID, warehouseID, nil)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.True(t, second.OnHand.Equal(decimal.NewFromInt(10)))
	})

	t.Run("location-scoped key is a separate row", func(t *testing.T) {
		locationID := uuid.New()
		scoped, err := repo.GetOrCreate(ctx, itemID, warehouseID, &locationID)
		require.NoError(t, err)

		unscoped, err := repo.GetOrCreate(ctx, itemID, warehouseID, nil)
		require.NoError(t, err)

		assert.NotEqual(t, unscoped.ID, scoped.ID)
		require.NotNil(t, scoped.LocationID)
		assert.Equal(t, locationID, *scoped.LocationID)
	})
}

func TestGormStockLevelRepository_FindByKey(t *testing.T) {
	db := setupStockLevelTestDB(t)
	repo := NewGormStockLevelRepository(db)
	ctx := context.Background()

	itemID := uuid.New()
	warehouseID := uuid.New()
	locationID := uuid.New()

	_, err := repo.GetOrCreate(ctx, itemID, warehouseID, nil)
	require.NoError(t, err)
	_, err = repo.GetOrCreate(ctx, itemID, warehouseID, &locationID)
	require.NoError(t, err)

	t.Run("nil location matches only the location-less row", func(t *testing.T) {
		level, err := repo.FindByKey(ctx, itemID, warehouseID, nil)
		require.NoError(t, err)
		assert.Nil(t, level.LocationID)
	})

	t.Run("location key matches the scoped row", func(t *testing.T) {
		level, err := repo.FindByKey(ctx, itemID, warehouseID, &locationID)
		require.NoError(t, err)
		require.NotNil(t, level.LocationID)
		assert.Equal(t, locationID, *level.LocationID)
	})

	t.Run("returns not found for an unknown key", func(t *testing.T) {
		_, err := repo.FindByKey(ctx, uuid.New(), warehouseID, nil)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormStockLevelRepository_SaveWithLock(t *testing.T) {
	db := setupStockLevelTestDB(t)
	repo := NewGormStockLevelRepository(db)
	ctx := context.Background()

	t.Run("persists changes when the version matches", func(t *testing.T) {
		level, err := repo.GetOrCreate(ctx, uuid.New(), uuid.New(), nil)
		require.NoError(t, err)

		require.NoError(t, level.Receive(decimal.NewFromInt(25)))
		require.NoError(t, repo.SaveWithLock(ctx, level))

		reloaded, err := repo.FindByID(ctx, level.ID)
		require.NoError(t, err)
		assert.True(t, reloaded.OnHand.Equal(decimal.NewFromInt(25)))
		assert.Equal(t, level.Version, reloaded.Version)
	})

	t.Run("rejects a stale write", func(t *testing.T) {
		level, err := repo.GetOrCreate(ctx, uuid.New(), uuid.New(), nil)
		require.NoError(t, err)

		fresh, err := repo.FindByID(ctx, level.ID)
		require.NoError(t, err)
		stale, err := repo.FindByID(ctx, level.ID)
		require.NoError(t, err)

		require.NoError(t, fresh.Receive(decimal.NewFromInt(5)))
		require.NoError(t, repo.SaveWithLock(ctx, fresh))

		require.NoError(t, stale.Receive(decimal.NewFromInt(7)))
		err = repo.SaveWithLock(ctx, stale)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}

func TestGormStockLevelRepository_SumOnHandByItem(t *testing.T) {
	db := setupStockLevelTestDB(t)
	repo := NewGormStockLevelRepository(db)
	ctx := context.Background()

	itemID := uuid.New()

	for _, qty := range []int64{10, 15} {
		level, err := repo.GetOrCreate(ctx, itemID, uuid.New(), nil)
		require.NoError(t, err)
		require.NoError(t, level.Receive(decimal.NewFromInt(qty)))
		require.NoError(t, repo.SaveWithLock(ctx, level))
	}

	total, err := repo.SumOnHandByItem(ctx, itemID)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(25)))

	t.Run("unknown item sums to zero", func(t *testing.T) {
		total, err := repo.SumOnHandByItem(ctx, uuid.New())
		require.NoError(t, err)
		assert.True(t, total.IsZero())
	})
}

func TestGormStockLevelRepository_FindBelowMinimum(t *testing.T) {
	db := setupStockLevelTestDB(t)
	repo := NewGormStockLevelRepository(db)
	ctx := context.Background()

	low, err := repo.GetOrCreate(ctx, uuid.New(), uuid.New(), nil)
	require.NoError(t, err)
	require.NoError(t, low.Receive(decimal.NewFromInt(3)))
	require.NoError(t, low.SetThresholds(decimal.NewFromInt(10), decimal.Zero))
	require.NoError(t, repo.SaveWithLock(ctx, low))

	healthy, err := repo.GetOrCreate(ctx, uuid.New(), uuid.New(), nil)
	require.NoError(t, err)
	require.NoError(t, healthy.Receive(decimal.NewFromInt(50)))
	require.NoError(t, healthy.SetThresholds(decimal.NewFromInt(10), decimal.Zero))
	require.NoError(t, repo.SaveWithLock(ctx, healthy))

	levels, err := repo.FindBelowMinimum(ctx, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, levels, 1)
	assert.Equal(t, low.ID, levels[0].ID)
}
