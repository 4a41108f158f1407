package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockcraft/backend/internal/domain/warehousing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupStockLotTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&warehousing.StockLot{})
	require.NoError(t, err)

	return db
}

func createTestLot(t *testing.T, repo *GormStockLotRepository, itemID, warehouseID uuid.UUID, qty, cost float64, acquiredAt time.Time) *warehousing.StockLot {
	t.Helper()
	lot, err := warehousing.NewStockLot(
		itemID, warehouseID, nil, "",
		decimal.NewFromFloat(qty), decimal.NewFromFloat(cost), acquiredAt,
	)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), lot))
	return lot
}

func TestGormStockLotRepository_FindOpenByItemAndWarehouse(t *testing.T) {
	db := setupStockLotTestDB(t)
	repo := NewGormStockLotRepository(db)
	ctx := context.Background()

	itemID := uuid.New()
	warehouseID := uuid.New()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	newer := createTestLot(t, repo, itemID, warehouseID, 5, 7, base.Add(24*time.Hour))
	older := createTestLot(t, repo, itemID, warehouseID, 10, 5, base)

	t.Run("returns open lots oldest first", func(t *testing.T) {
		lots, err := repo.FindOpenByItemAndWarehouse(ctx, itemID, warehouseID)
		require.NoError(t, err)
		require.Len(t, lots, 2)
		assert.Equal(t, older.ID, lots[0].ID)
		assert.Equal(t, newer.ID, lots[1].ID)
	})

	t.Run("excludes exhausted lots", func(t *testing.T) {
		older.Consume(decimal.NewFromInt(10))
		require.True(t, older.Exhausted)
		require.NoError(t, repo.Save(ctx, older))

		lots, err := repo.FindOpenByItemAndWarehouse(ctx, itemID, warehouseID)
		require.NoError(t, err)
		require.Len(t, lots, 1)
		assert.Equal(t, newer.ID, lots[0].ID)
	})

	t.Run("other warehouses are not included", func(t *testing.T) {
		lots, err := repo.FindOpenByItemAndWarehouse(ctx, itemID, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, lots)
	})
}

func TestGormStockLotRepository_FindRecentByItem(t *testing.T) {
	db := setupStockLotTestDB(t)
	repo := NewGormStockLotRepository(db)
	ctx := context.Background()

	itemID := uuid.New()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// Lots spread across two warehouses
	var lots []*warehousing.StockLot
	for i := 0; i < 4; i++ {
		warehouseID := uuid.New()
		lots = append(lots, createTestLot(t, repo, itemID, warehouseID, 10, float64(i+1), base.Add(time.Duration(i)*time.Hour)))
	}

	t.Run("returns newest lots across warehouses", func(t *testing.T) {
		recent, err := repo.FindRecentByItem(ctx, itemID, 2)
		require.NoError(t, err)
		require.Len(t, recent, 2)
		assert.Equal(t, lots[3].ID, recent[0].ID)
		assert.Equal(t, lots[2].ID, recent[1].ID)
	})

	t.Run("includes exhausted lots", func(t *testing.T) {
		lots[3].Consume(decimal.NewFromInt(10))
		require.NoError(t, repo.Save(ctx, lots[3]))

		recent, err := repo.FindRecentByItem(ctx, itemID, 1)
		require.NoError(t, err)
		require.Len(t, recent, 1)
		assert.Equal(t, lots[3].ID, recent[0].ID)
	})

	t.Run("non-positive limit returns nothing", func(t *testing.T) {
		recent, err := repo.FindRecentByItem(ctx, itemID, 0)
		require.NoError(t, err)
		assert.Empty(t, recent)
	})
}

func TestGormStockLotRepository_SaveAll(t *testing.T) {
	db := setupStockLotTestDB(t)
	repo := NewGormStockLotRepository(db)
	ctx := context.Background()

	itemID := uuid.New()
	warehouseID := uuid.New()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first := createTestLot(t, repo, itemID, warehouseID, 10, 5, base)
	second := createTestLot(t, repo, itemID, warehouseID, 5, 7, base.Add(time.Hour))

	first.Consume(decimal.NewFromInt(10))
	second.Consume(decimal.NewFromInt(2))

	require.NoError(t, repo.SaveAll(ctx, []*warehousing.StockLot{first, second}))

	reloaded, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Exhausted)
	assert.True(t, reloaded.RemainingQuantity.IsZero())

	reloaded, err = repo.FindByID(ctx, second.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.RemainingQuantity.Equal(decimal.NewFromInt(3)))
}

func TestGormStockLotRepository_SumRemainingByItemAndWarehouse(t *testing.T) {
	db := setupStockLotTestDB(t)
	repo := NewGormStockLotRepository(db)
	ctx := context.Background()

	itemID := uuid.New()
	warehouseID := uuid.New()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	createTestLot(t, repo, itemID, warehouseID, 10, 5, base)
	createTestLot(t, repo, itemID, warehouseID, 5, 7, base.Add(time.Hour))
	createTestLot(t, repo, itemID, uuid.New(), 99, 1, base)

	total, err := repo.SumRemainingByItemAndWarehouse(ctx, itemID, warehouseID)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(15)))
}
