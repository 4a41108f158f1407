package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/stockcraft/backend/internal/domain/shared"
	"github.com/stockcraft/backend/internal/domain/warehousing"
	"gorm.io/gorm"
)

// GormStockReservationRepository implements StockReservationRepository using GORM
type GormStockReservationRepository struct {
	db *gorm.DB
}

// NewGormStockReservationRepository creates a new GormStockReservationRepository
func NewGormStockReservationRepository(db *gorm.DB) *GormStockReservationRepository {
	return &GormStockReservationRepository{db: db}
}

// FindByID finds a reservation by its ID
func (r *GormStockReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*warehousing.StockReservation, error) {
	var reservation warehousing.StockReservation
	if err := r.db.WithContext(ctx).First(&reservation, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &reservation, nil
}

// FindActiveByItemAndWarehouse finds active reservations for an item in a warehouse
func (r *GormStockReservationRepository) FindActiveByItemAndWarehouse(ctx context.Context, itemID, warehouseID uuid.UUID) ([]warehousing.StockReservation, error) {
	var reservations []warehousing.StockReservation
	if err := r.db.WithContext(ctx).
		Where("item_id = ? AND warehouse_id = ? AND state = ?", itemID, warehouseID, warehousing.ReservationStateActive).
		Order("created_at ASC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// FindByReference finds reservations for a referenced document
func (r *GormStockReservationRepository) FindByReference(ctx context.Context, kind warehousing.ReferenceKind, refID uuid.UUID) ([]warehousing.StockReservation, error) {
	query := r.db.WithContext(ctx)
	switch kind {
	case warehousing.ReferenceKindSalesOrder:
		query = query.Where("order_id = ?", refID)
	case warehousing.ReferenceKindPurchaseOrder:
		query = query.Where("purchase_order_id = ?", refID)
	default:
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Unsupported reservation reference kind: "+string(kind))
	}

	var reservations []warehousing.StockReservation
	if err := query.Order("created_at ASC").Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// FindAll finds reservations matching the filter
func (r *GormStockReservationRepository) FindAll(ctx context.Context, filter warehousing.ReservationFilter) ([]warehousing.StockReservation, error) {
	var reservations []warehousing.StockReservation
	query := r.applyFilter(r.db.WithContext(ctx), filter)
	if err := query.Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// Save creates or updates a reservation
func (r *GormStockReservationRepository) Save(ctx context.Context, reservation *warehousing.StockReservation) error {
	return r.db.WithContext(ctx).Save(reservation).Error
}

// Delete removes a reservation row
func (r *GormStockReservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&warehousing.StockReservation{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts reservations matching the filter
func (r *GormStockReservationRepository) Count(ctx context.Context, filter warehousing.ReservationFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&warehousing.StockReservation{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormStockReservationRepository) applyFilter(query *gorm.DB, filter warehousing.ReservationFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, StockReservationSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))
}

func (r *GormStockReservationRepository) applyFilterWithoutPagination(query *gorm.DB, filter warehousing.ReservationFilter) *gorm.DB {
	if filter.ItemID != nil {
		query = query.Where("item_id = ?", *filter.ItemID)
	}
	if filter.WarehouseID != nil {
		query = query.Where("warehouse_id = ?", *filter.WarehouseID)
	}
	if filter.State != nil {
		query = query.Where("state = ?", *filter.State)
	}
	return query
}

// Ensure GormStockReservationRepository implements StockReservationRepository
var _ warehousing.StockReservationRepository = (*GormStockReservationRepository)(nil)
