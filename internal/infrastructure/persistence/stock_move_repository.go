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

// GormStockMoveRepository implements StockMoveRepository using GORM.
// Moves are append-only; there is no update or delete path.
type GormStockMoveRepository struct {
	db *gorm.DB
}

// NewGormStockMoveRepository creates a new GormStockMoveRepository
func NewGormStockMoveRepository(db *gorm.DB) *GormStockMoveRepository {
	return &GormStockMoveRepository{db: db}
}

// FindByID finds a move by its ID
func (r *GormStockMoveRepository) FindByID(ctx context.Context, id uuid.UUID) (*warehousing.StockMove, error) {
	var move warehousing.StockMove
	if err := r.db.WithContext(ctx).First(&move, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &move, nil
}

// FindAll finds moves matching the filter, newest first
func (r *GormStockMoveRepository) FindAll(ctx context.Context, filter warehousing.MoveFilter) ([]warehousing.StockMove, error) {
	var moves []warehousing.StockMove
	query := r.applyFilter(r.db.WithContext(ctx), filter)
	if err := query.Find(&moves).Error; err != nil {
		return nil, err
	}
	return moves, nil
}

// FindByReference finds moves for a referenced document
func (r *GormStockMoveRepository) FindByReference(ctx context.Context, kind warehousing.ReferenceKind, refID uuid.UUID) ([]warehousing.StockMove, error) {
	var moves []warehousing.StockMove
	if err := r.db.WithContext(ctx).
		Where("ref_kind = ? AND ref_id = ?", kind, refID).
		Order("moved_at DESC, created_at DESC").
		Find(&moves).Error; err != nil {
		return nil, err
	}
	return moves, nil
}

// Create appends a new move to the ledger
func (r *GormStockMoveRepository) Create(ctx context.Context, move *warehousing.StockMove) error {
	return r.db.WithContext(ctx).Create(move).Error
}

// CreateBatch appends multiple moves
func (r *GormStockMoveRepository) CreateBatch(ctx context.Context, moves []*warehousing.StockMove) error {
	if len(moves) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(moves).Error
}

// Count counts moves matching the filter
func (r *GormStockMoveRepository) Count(ctx context.Context, filter warehousing.MoveFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&warehousing.StockMove{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormStockMoveRepository) applyFilter(query *gorm.DB, filter warehousing.MoveFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, StockMoveSortFields, "moved_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))
}

func (r *GormStockMoveRepository) applyFilterWithoutPagination(query *gorm.DB, filter warehousing.MoveFilter) *gorm.DB {
	if filter.ItemID != nil {
		query = query.Where("item_id = ?", *filter.ItemID)
	}
	if filter.WarehouseID != nil {
		query = query.Where("warehouse_id = ?", *filter.WarehouseID)
	}
	if filter.MoveType != nil {
		query = query.Where("move_type = ?", *filter.MoveType)
	}
	if filter.RefKind != nil {
		query = query.Where("ref_kind = ?", *filter.RefKind)
	}
	if filter.StartDate != nil {
		query = query.Where("moved_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("moved_at <= ?", *filter.EndDate)
	}
	return query
}

// Ensure GormStockMoveRepository implements StockMoveRepository
var _ warehousing.StockMoveRepository = (*GormStockMoveRepository)(nil)
