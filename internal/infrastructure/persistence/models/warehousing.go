package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockcraft/backend/internal/domain/shared"
	"github.com/stockcraft/backend/internal/domain/warehousing"
)

// InventorySheetModel is the persistence model for the InventorySheet
// aggregate root. The other warehousing aggregates are persisted directly;
// the sheet goes through a model because its rows live in a child table.
type InventorySheetModel struct {
	AggregateModel
	SheetNumber  string                    `gorm:"type:varchar(50);not null;uniqueIndex"`
	WarehouseID  uuid.UUID                 `gorm:"type:uuid;not null;index"`
	Status       warehousing.SheetStatus   `gorm:"type:varchar(20);not null;default:'OPEN';index"`
	StartedAt    *time.Time                `gorm:""`
	CompletedAt  *time.Time                `gorm:""`
	ApprovedAt   *time.Time                `gorm:""`
	ApprovedByID *uuid.UUID                `gorm:"type:uuid"`
	ClosedAt     *time.Time                `gorm:""`
	TotalItems   int                       `gorm:"not null;default:0"`
	CountedItems int                       `gorm:"not null;default:0"`
	Notes        string                    `gorm:"type:text"`
	Items        []InventorySheetItemModel `gorm:"foreignKey:SheetID;references:ID"`
}

// TableName returns the table name for GORM
func (InventorySheetModel) TableName() string {
	return "inventory_sheets"
}

// ToDomain converts the persistence model to a domain InventorySheet
func (m *InventorySheetModel) ToDomain() *warehousing.InventorySheet {
	sheet := &warehousing.InventorySheet{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		SheetNumber:  m.SheetNumber,
		WarehouseID:  m.WarehouseID,
		Status:       m.Status,
		StartedAt:    m.StartedAt,
		CompletedAt:  m.CompletedAt,
		ApprovedAt:   m.ApprovedAt,
		ApprovedByID: m.ApprovedByID,
		ClosedAt:     m.ClosedAt,
		TotalItems:   m.TotalItems,
		CountedItems: m.CountedItems,
		Notes:        m.Notes,
		Items:        make([]warehousing.InventorySheetItem, len(m.Items)),
	}
	for i, item := range m.Items {
		sheet.Items[i] = *item.ToDomain()
	}
	return sheet
}

// FromDomain populates the persistence model from a domain InventorySheet
func (m *InventorySheetModel) FromDomain(sheet *warehousing.InventorySheet) {
	m.FromDomainAggregateRoot(sheet.BaseAggregateRoot)
	m.SheetNumber = sheet.SheetNumber
	m.WarehouseID = sheet.WarehouseID
	m.Status = sheet.Status
	m.StartedAt = sheet.StartedAt
	m.CompletedAt = sheet.CompletedAt
	m.ApprovedAt = sheet.ApprovedAt
	m.ApprovedByID = sheet.ApprovedByID
	m.ClosedAt = sheet.ClosedAt
	m.TotalItems = sheet.TotalItems
	m.CountedItems = sheet.CountedItems
	m.Notes = sheet.Notes
	m.Items = make([]InventorySheetItemModel, len(sheet.Items))
	for i := range sheet.Items {
		m.Items[i] = *InventorySheetItemModelFromDomain(&sheet.Items[i])
	}
}

// InventorySheetModelFromDomain creates a persistence model from a domain InventorySheet
func InventorySheetModelFromDomain(sheet *warehousing.InventorySheet) *InventorySheetModel {
	m := &InventorySheetModel{}
	m.FromDomain(sheet)
	return m
}

// InventorySheetItemModel is the persistence model for one count sheet row
type InventorySheetItemModel struct {
	ID              uuid.UUID        `gorm:"type:uuid;primary_key"`
	SheetID         uuid.UUID        `gorm:"type:uuid;not null;index"`
	ItemID          uuid.UUID        `gorm:"type:uuid;not null"`
	LocationID      *uuid.UUID       `gorm:"type:uuid"`
	BookQuantity    decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	CountedQuantity *decimal.Decimal `gorm:"type:decimal(18,4)"`
	Difference      decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	Counted         bool             `gorm:"not null;default:false"`
	Note            string           `gorm:"type:varchar(500)"`
	CreatedAt       time.Time        `gorm:"not null"`
	UpdatedAt       time.Time        `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InventorySheetItemModel) TableName() string {
	return "inventory_sheet_items"
}

// ToDomain converts the persistence model to a domain InventorySheetItem
func (m *InventorySheetItemModel) ToDomain() *warehousing.InventorySheetItem {
	return &warehousing.InventorySheetItem{
		ID:              m.ID,
		SheetID:         m.SheetID,
		ItemID:          m.ItemID,
		LocationID:      m.LocationID,
		BookQuantity:    m.BookQuantity,
		CountedQuantity: m.CountedQuantity,
		Difference:      m.Difference,
		Counted:         m.Counted,
		Note:            m.Note,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// InventorySheetItemModelFromDomain creates a persistence model from a domain row
func InventorySheetItemModelFromDomain(item *warehousing.InventorySheetItem) *InventorySheetItemModel {
	return &InventorySheetItemModel{
		ID:              item.ID,
		SheetID:         item.SheetID,
		ItemID:          item.ItemID,
		LocationID:      item.LocationID,
		BookQuantity:    item.BookQuantity,
		CountedQuantity: item.CountedQuantity,
		Difference:      item.Difference,
		Counted:         item.Counted,
		Note:            item.Note,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}
