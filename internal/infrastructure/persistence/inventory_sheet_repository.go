package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stockcraft/backend/internal/domain/shared"
	"github.com/stockcraft/backend/internal/domain/warehousing"
	"github.com/stockcraft/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormInventorySheetRepository implements InventorySheetRepository using GORM
type GormInventorySheetRepository struct {
	db *gorm.DB
}

// NewGormInventorySheetRepository creates a new GormInventorySheetRepository
func NewGormInventorySheetRepository(db *gorm.DB) *GormInventorySheetRepository {
	return &GormInventorySheetRepository{db: db}
}

// FindByID finds a sheet by its ID, rows included
func (r *GormInventorySheetRepository) FindByID(ctx context.Context, id uuid.UUID) (*warehousing.InventorySheet, error) {
	var model models.InventorySheetModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySheetNumber finds a sheet by its number
func (r *GormInventorySheetRepository) FindBySheetNumber(ctx context.Context, sheetNumber string) (*warehousing.InventorySheet, error) {
	var model models.InventorySheetModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("sheet_number = ?", sheetNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByWarehouse finds sheets for a warehouse
func (r *GormInventorySheetRepository) FindByWarehouse(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) ([]warehousing.InventorySheet, error) {
	var sheetModels []models.InventorySheetModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.InventorySheetModel{}).
			Where("warehouse_id = ?", warehouseID),
		filter,
	)

	if err := query.Find(&sheetModels).Error; err != nil {
		return nil, err
	}
	return toDomainSheets(sheetModels), nil
}

// FindByStatus finds sheets with a specific status
func (r *GormInventorySheetRepository) FindByStatus(ctx context.Context, status warehousing.SheetStatus, filter shared.Filter) ([]warehousing.InventorySheet, error) {
	var sheetModels []models.InventorySheetModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.InventorySheetModel{}).
			Where("status = ?", status),
		filter,
	)

	if err := query.Find(&sheetModels).Error; err != nil {
		return nil, err
	}
	return toDomainSheets(sheetModels), nil
}

// FindAll finds sheets matching the filter
func (r *GormInventorySheetRepository) FindAll(ctx context.Context, filter shared.Filter) ([]warehousing.InventorySheet, error) {
	var sheetModels []models.InventorySheetModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.InventorySheetModel{}),
		filter,
	)

	if err := query.Find(&sheetModels).Error; err != nil {
		return nil, err
	}
	return toDomainSheets(sheetModels), nil
}

// Save creates or updates a sheet together with its rows
func (r *GormInventorySheetRepository) Save(ctx context.Context, sheet *warehousing.InventorySheet) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.InventorySheetModelFromDomain(sheet)
		rows := model.Items
		model.Items = nil
		if err := tx.Save(model).Error; err != nil {
			return err
		}

		// Drop rows removed from the sheet
		var keptRowIDs []uuid.UUID
		for _, row := range rows {
			keptRowIDs = append(keptRowIDs, row.ID)
		}
		if len(keptRowIDs) > 0 {
			if err := tx.Where("sheet_id = ? AND id NOT IN ?", sheet.ID, keptRowIDs).
				Delete(&models.InventorySheetItemModel{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("sheet_id = ?", sheet.ID).
				Delete(&models.InventorySheetItemModel{}).Error; err != nil {
				return err
			}
		}

		for i := range rows {
			rows[i].SheetID = sheet.ID
			if err := tx.Save(&rows[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete deletes a sheet and its rows
func (r *GormInventorySheetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sheet_id = ?", id).Delete(&models.InventorySheetItemModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.InventorySheetModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts sheets matching the filter
func (r *GormInventorySheetRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&models.InventorySheetModel{}),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsBySheetNumber checks if a sheet number exists
func (r *GormInventorySheetRepository) ExistsBySheetNumber(ctx context.Context, sheetNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.InventorySheetModel{}).
		Where("sheet_number = ?", sheetNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GenerateSheetNumber generates a new unique sheet number
func (r *GormInventorySheetRepository) GenerateSheetNumber(ctx context.Context) (string, error) {
	// Format: CNT-YYYY-XXXX
	year := time.Now().Format("2006")
	prefix := fmt.Sprintf("CNT-%s-", year)

	// Find the max sequence number for the year
	var maxNumber string
	err := r.db.WithContext(ctx).Model(&models.InventorySheetModel{}).
		Select("sheet_number").
		Where("sheet_number LIKE ?", prefix+"%").
		Order("sheet_number DESC").
		Limit(1).
		Pluck("sheet_number", &maxNumber).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var seq int
	if maxNumber != "" {
		parts := strings.Split(maxNumber, "-")
		if len(parts) >= 3 {
			_, err := fmt.Sscanf(parts[len(parts)-1], "%04d", &seq)
			if err == nil {
				seq++
			}
		}
	}
	if seq == 0 {
		seq = 1
	}

	return fmt.Sprintf("%s%04d", prefix, seq), nil
}

// applyFilter applies common filter options to a query
func (r *GormInventorySheetRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, InventorySheetSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))
}

// applyFilterWithoutPagination applies search and field filters only
func (r *GormInventorySheetRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(sheet_number) LIKE ?", searchPattern)
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	return query
}

func toDomainSheets(sheetModels []models.InventorySheetModel) []warehousing.InventorySheet {
	sheets := make([]warehousing.InventorySheet, len(sheetModels))
	for i, model := range sheetModels {
		sheets[i] = *model.ToDomain()
	}
	return sheets
}

// Ensure GormInventorySheetRepository implements InventorySheetRepository
var _ warehousing.InventorySheetRepository = (*GormInventorySheetRepository)(nil)
