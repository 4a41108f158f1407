package warehousing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockcraft/backend/internal/domain/shared"
)

// MoveType represents the type of stock move
type MoveType string

const (
	// MoveTypeReceipt represents stock coming into a warehouse
	MoveTypeReceipt MoveType = "RECEIPT"
	// MoveTypeShipment represents stock leaving a warehouse
	MoveTypeShipment MoveType = "SHIPMENT"
	// MoveTypeReservation represents quantity being held
	MoveTypeReservation MoveType = "RESERVATION"
	// MoveTypeRelease represents a held quantity being given back
	MoveTypeRelease MoveType = "RELEASE"
	// MoveTypeCountCorrection represents an approved count difference
	MoveTypeCountCorrection MoveType = "COUNT_CORRECTION"
	// MoveTypeAdjustment represents a manual adjustment
	MoveTypeAdjustment MoveType = "ADJUSTMENT"
)

// String returns the string representation of MoveType
func (t MoveType) String() string {
	return string(t)
}

// IsValid returns true if the move type is valid
func (t MoveType) IsValid() bool {
	switch t {
	case MoveTypeReceipt,
		MoveTypeShipment,
		MoveTypeReservation,
		MoveTypeRelease,
		MoveTypeCountCorrection,
		MoveTypeAdjustment:
		return true
	}
	return false
}

// ReferenceKind identifies the document a stock move points at. Moves carry
// only the reference ID, never a loaded association, so the ledger stays
// free of cross-aggregate cycles.
type ReferenceKind string

const (
	ReferenceKindSalesOrder     ReferenceKind = "SALES_ORDER"
	ReferenceKindPurchaseOrder  ReferenceKind = "PURCHASE_ORDER"
	ReferenceKindInventorySheet ReferenceKind = "INVENTORY_SHEET"
	ReferenceKindManual         ReferenceKind = "MANUAL"
)

// String returns the string representation of ReferenceKind
func (k ReferenceKind) String() string {
	return string(k)
}

// IsValid returns true if the reference kind is valid
func (k ReferenceKind) IsValid() bool {
	switch k {
	case ReferenceKindSalesOrder,
		ReferenceKindPurchaseOrder,
		ReferenceKindInventorySheet,
		ReferenceKindManual:
		return true
	}
	return false
}

// StockMove is an immutable ledger row for one stock movement. Quantity is
// signed: positive for inbound, negative for outbound. Corrections are made
// with new compensating moves, never by editing existing rows.
type StockMove struct {
	shared.BaseEntity
	ItemID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_move_item"`
	WarehouseID uuid.UUID       `gorm:"type:uuid;not null;index:idx_move_warehouse"`
	LocationID  *uuid.UUID      `gorm:"type:uuid"`
	MoveType    MoveType        `gorm:"type:varchar(30);not null;index:idx_move_type"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCost    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	RefKind     ReferenceKind   `gorm:"type:varchar(30);not null;index:idx_move_ref"`
	RefID       *uuid.UUID      `gorm:"type:uuid;index:idx_move_ref"`
	Note        string          `gorm:"type:varchar(255)"`
	MovedAt     time.Time       `gorm:"type:timestamptz;not null;index"`
}

// TableName returns the table name for GORM
func (StockMove) TableName() string {
	return "stock_moves"
}

// NewStockMove creates a new stock move
func NewStockMove(
	itemID, warehouseID uuid.UUID,
	locationID *uuid.UUID,
	moveType MoveType,
	quantity, unitCost decimal.Decimal,
	refKind ReferenceKind,
	refID *uuid.UUID,
	note string,
) (*StockMove, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	if !moveType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVE_TYPE", "Unknown stock move type")
	}
	if !refKind.IsValid() {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Unknown stock move reference kind")
	}
	if quantity.IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Move quantity cannot be zero")
	}

	return &StockMove{
		BaseEntity:  shared.NewBaseEntity(),
		ItemID:      itemID,
		WarehouseID: warehouseID,
		LocationID:  locationID,
		MoveType:    moveType,
		Quantity:    quantity,
		UnitCost:    unitCost,
		RefKind:     refKind,
		RefID:       refID,
		Note:        note,
		MovedAt:     time.Now(),
	}, nil
}

// IsInbound returns true for moves that increase on-hand quantity
func (m *StockMove) IsInbound() bool {
	return m.Quantity.GreaterThan(decimal.Zero)
}

// TotalCost returns the absolute cost of the moved quantity
func (m *StockMove) TotalCost() decimal.Decimal {
	return m.Quantity.Abs().Mul(m.UnitCost)
}
