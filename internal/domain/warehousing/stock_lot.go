package warehousing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockcraft/backend/internal/domain/shared"
)

// StockLot records a batch of stock acquired at a specific cost.
// Lots are append-only: remaining quantity only ever decreases, and
// exhausted lots are kept for audit and historical costing.
type StockLot struct {
	shared.BaseEntity
	ItemID            uuid.UUID       `gorm:"type:uuid;not null;index:idx_lot_item_warehouse"`
	WarehouseID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_lot_item_warehouse"`
	LocationID        *uuid.UUID      `gorm:"type:uuid;index"`
	BatchNumber       string          `gorm:"type:varchar(100)"`
	RemainingQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCost          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	AcquiredAt        time.Time       `gorm:"not null;index"`
	Exhausted         bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (StockLot) TableName() string {
	return "stock_lots"
}

// NewStockLot creates a new stock lot
func NewStockLot(
	itemID, warehouseID uuid.UUID,
	locationID *uuid.UUID,
	batchNumber string,
	quantity, unitCost decimal.Decimal,
	acquiredAt time.Time,
) (*StockLot, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Lot quantity must be positive")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}
	if acquiredAt.IsZero() {
		acquiredAt = time.Now()
	}

	return &StockLot{
		BaseEntity:        shared.NewBaseEntity(),
		ItemID:            itemID,
		WarehouseID:       warehouseID,
		LocationID:        locationID,
		BatchNumber:       batchNumber,
		RemainingQuantity: quantity,
		UnitCost:          unitCost,
		AcquiredAt:        acquiredAt,
		Exhausted:         false,
	}, nil
}

// Consume reduces the remaining quantity.
// Returns the actual quantity consumed, which may be less than requested
// when the lot holds less than asked for.
func (l *StockLot) Consume(quantity decimal.Decimal) decimal.Decimal {
	if quantity.GreaterThan(l.RemainingQuantity) {
		consumed := l.RemainingQuantity
		l.RemainingQuantity = decimal.Zero
		l.Exhausted = true
		l.UpdatedAt = time.Now()
		return consumed
	}

	l.RemainingQuantity = l.RemainingQuantity.Sub(quantity)
	if l.RemainingQuantity.IsZero() {
		l.Exhausted = true
	}
	l.UpdatedAt = time.Now()
	return quantity
}

// HasStock returns true if the lot still holds quantity
func (l *StockLot) HasStock() bool {
	return l.RemainingQuantity.GreaterThan(decimal.Zero) && !l.Exhausted
}

// TotalValue returns the value of the remaining quantity at acquisition cost
func (l *StockLot) TotalValue() decimal.Decimal {
	return l.RemainingQuantity.Mul(l.UnitCost)
}
