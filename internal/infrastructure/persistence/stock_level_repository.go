package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockcraft/backend/internal/domain/shared"
	"github.com/stockcraft/backend/internal/domain/warehousing"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockLevelRepository implements StockLevelRepository using GORM
type GormStockLevelRepository struct {
	db *gorm.DB
}

// NewGormStockLevelRepository creates a new GormStockLevelRepository
func NewGormStockLevelRepository(db *gorm.DB) *GormStockLevelRepository {
	return &GormStockLevelRepository{db: db}
}

// FindByID finds a stock level by its ID
func (r *GormStockLevelRepository) FindByID(ctx context.Context, id uuid.UUID) (*warehousing.StockLevel, error) {
	var level warehousing.StockLevel
	if err := r.db.WithContext(ctx).First(&level, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &level, nil
}

// FindByKey finds the stock level for an item-warehouse-location key
func (r *GormStockLevelRepository) FindByKey(ctx context.Context, itemID, warehouseID uuid.UUID, locationID *uuid.UUID) (*warehousing.StockLevel, error) {
	var level warehousing.StockLevel
	query := r.db.WithContext(ctx).Where("item_id = ? AND warehouse_id = ?", itemID, warehouseID)
	if locationID != nil {
		query = query.Where("location_id = ?", *locationID)
	} else {
		query = query.Where("location_id IS NULL")
	}
	if err := query.First(&level).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &level, nil
}

// FindByItemAndWarehouse finds all level rows for an item in a warehouse
func (r *GormStockLevelRepository) FindByItemAndWarehouse(ctx context.Context, itemID, warehouseID uuid.UUID) ([]warehousing.StockLevel, error) {
	var levels []warehousing.StockLevel
	if err := r.db.WithContext(ctx).
		Where("item_id = ? AND warehouse_id = ?", itemID, warehouseID).
		Find(&levels).Error; err != nil {
		return nil, err
	}
	return levels, nil
}

// FindByWarehouse finds all stock levels in a warehouse
func (r *GormStockLevelRepository) FindByWarehouse(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) ([]warehousing.StockLevel, error) {
	var levels []warehousing.StockLevel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&warehousing.StockLevel{}).
			Where("warehouse_id = ?", warehouseID),
		filter,
	)

	if err := query.Find(&levels).Error; err != nil {
		return nil, err
	}
	return levels, nil
}

// FindBelowMinimum finds stock levels under their minimum threshold
func (r *GormStockLevelRepository) FindBelowMinimum(ctx context.Context, filter shared.Filter) ([]warehousing.StockLevel, error) {
	var levels []warehousing.StockLevel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&warehousing.StockLevel{}).
			Where("min_quantity > 0 AND on_hand < min_quantity"),
		filter,
	)

	if err := query.Find(&levels).Error; err != nil {
		return nil, err
	}
	return levels, nil
}

// Save creates or updates a stock level
func (r *GormStockLevelRepository) Save(ctx context.Context, level *warehousing.StockLevel) error {
	return r.db.WithContext(ctx).Save(level).Error
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormStockLevelRepository) SaveWithLock(ctx context.Context, level *warehousing.StockLevel) error {
	result := r.db.WithContext(ctx).
		Model(level).
		Where("id = ? AND version = ?", level.ID, level.Version-1).
		Updates(map[string]interface{}{
			"on_hand":      level.OnHand,
			"reserved":     level.Reserved,
			"min_quantity": level.MinQuantity,
			"max_quantity": level.MaxQuantity,
			"version":      level.Version,
			"updated_at":   level.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// GetOrCreate gets the existing stock level for a key or creates a zero one
func (r *GormStockLevelRepository) GetOrCreate(ctx context.Context, itemID, warehouseID uuid.UUID, locationID *uuid.UUID) (*warehousing.StockLevel, error) {
	level, err := r.FindByKey(ctx, itemID, warehouseID, locationID)
	if err == nil {
		return level, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	level, err = warehousing.NewStockLevel(itemID, warehouseID, locationID)
	if err != nil {
		return nil, err
	}

	// ON CONFLICT guards the unique key against a concurrent create
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "item_id"}, {Name: "warehouse_id"}, {Name: "location_id"}},
			DoNothing: true,
		}).
		Create(level).Error; err != nil {
		return nil, err
	}

	if level.ID == uuid.Nil {
		return r.FindByKey(ctx, itemID, warehouseID, locationID)
	}
	return level, nil
}

// SumOnHandByItem sums on-hand quantity for an item across all warehouses
func (r *GormStockLevelRepository) SumOnHandByItem(ctx context.Context, itemID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&warehousing.StockLevel{}).
		Select("COALESCE(SUM(on_hand), 0) as total").
		Where("item_id = ?", itemID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// CountByWarehouse counts stock levels in a warehouse
func (r *GormStockLevelRepository) CountByWarehouse(ctx context.Context, warehouseID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&warehousing.StockLevel{}).
		Where("warehouse_id = ?", warehouseID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormStockLevelRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "item_id":
			query = query.Where("item_id = ?", value)
		case "warehouse_id":
			query = query.Where("warehouse_id = ?", value)
		case "below_minimum":
			if value == true {
				query = query.Where("min_quantity > 0 AND on_hand < min_quantity")
			}
		case "has_stock":
			if value == true {
				query = query.Where("on_hand > 0")
			}
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, StockLevelSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))
}

// Ensure GormStockLevelRepository implements StockLevelRepository
var _ warehousing.StockLevelRepository = (*GormStockLevelRepository)(nil)
