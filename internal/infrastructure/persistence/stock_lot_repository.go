package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockcraft/backend/internal/domain/shared"
	"github.com/stockcraft/backend/internal/domain/warehousing"
	"gorm.io/gorm"
)

// GormStockLotRepository implements StockLotRepository using GORM
type GormStockLotRepository struct {
	db *gorm.DB
}

// NewGormStockLotRepository creates a new GormStockLotRepository
func NewGormStockLotRepository(db *gorm.DB) *GormStockLotRepository {
	return &GormStockLotRepository{db: db}
}

// FindByID finds a lot by its ID
func (r *GormStockLotRepository) FindByID(ctx context.Context, id uuid.UUID) (*warehousing.StockLot, error) {
	var lot warehousing.StockLot
	if err := r.db.WithContext(ctx).First(&lot, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &lot, nil
}

// FindOpenByItemAndWarehouse finds non-exhausted lots for an item in a
// warehouse. Ordered oldest first; costing strategies re-sort as needed.
func (r *GormStockLotRepository) FindOpenByItemAndWarehouse(ctx context.Context, itemID, warehouseID uuid.UUID) ([]warehousing.StockLot, error) {
	var lots []warehousing.StockLot
	if err := r.db.WithContext(ctx).
		Where("item_id = ? AND warehouse_id = ? AND exhausted = ?", itemID, warehouseID, false).
		Order("acquired_at ASC, created_at ASC").
		Find(&lots).Error; err != nil {
		return nil, err
	}
	return lots, nil
}

// FindByItemAndWarehouse finds all lots, exhausted included
func (r *GormStockLotRepository) FindByItemAndWarehouse(ctx context.Context, itemID, warehouseID uuid.UUID, filter shared.Filter) ([]warehousing.StockLot, error) {
	var lots []warehousing.StockLot
	query := r.db.WithContext(ctx).
		Where("item_id = ? AND warehouse_id = ?", itemID, warehouseID).
		Order("acquired_at DESC")

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Find(&lots).Error; err != nil {
		return nil, err
	}
	return lots, nil
}

// FindRecentByItem finds the most recently acquired lots for an item across
// all warehouses, newest first
func (r *GormStockLotRepository) FindRecentByItem(ctx context.Context, itemID uuid.UUID, limit int) ([]warehousing.StockLot, error) {
	if limit <= 0 {
		return []warehousing.StockLot{}, nil
	}
	var lots []warehousing.StockLot
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("acquired_at DESC, created_at DESC").
		Limit(limit).
		Find(&lots).Error; err != nil {
		return nil, err
	}
	return lots, nil
}

// Create appends a new lot to the ledger
func (r *GormStockLotRepository) Create(ctx context.Context, lot *warehousing.StockLot) error {
	return r.db.WithContext(ctx).Create(lot).Error
}

// Save persists remaining-quantity changes to an existing lot
func (r *GormStockLotRepository) Save(ctx context.Context, lot *warehousing.StockLot) error {
	return r.db.WithContext(ctx).Save(lot).Error
}

// SaveAll persists remaining-quantity changes to multiple lots
func (r *GormStockLotRepository) SaveAll(ctx context.Context, lots []*warehousing.StockLot) error {
	if len(lots) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, lot := range lots {
			if err := tx.Save(lot).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SumRemainingByItemAndWarehouse sums open lot quantity for an item in a warehouse
func (r *GormStockLotRepository) SumRemainingByItemAndWarehouse(ctx context.Context, itemID, warehouseID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&warehousing.StockLot{}).
		Select("COALESCE(SUM(remaining_quantity), 0) as total").
		Where("item_id = ? AND warehouse_id = ? AND exhausted = ?", itemID, warehouseID, false).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// Ensure GormStockLotRepository implements StockLotRepository
var _ warehousing.StockLotRepository = (*GormStockLotRepository)(nil)
