package warehousing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockcraft/backend/internal/domain/shared"
)

// StockLevel tracks on-hand and reserved quantity for an item at a warehouse,
// optionally narrowed to a location. It is the aggregate root for stock
// movements; Version backs the optimistic version check on every write.
// Invariant: reserved never exceeds on-hand and never goes negative.
type StockLevel struct {
	shared.BaseAggregateRoot
	ItemID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_level_key,priority:1"`
	WarehouseID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_level_key,priority:2"`
	LocationID  *uuid.UUID      `gorm:"type:uuid;uniqueIndex:idx_stock_level_key,priority:3"`
	OnHand      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Reserved    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MinQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MaxQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (StockLevel) TableName() string {
	return "stock_levels"
}

// NewStockLevel creates a new stock level for an item-warehouse-location key
func NewStockLevel(itemID, warehouseID uuid.UUID, locationID *uuid.UUID) (*StockLevel, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}

	return &StockLevel{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ItemID:            itemID,
		WarehouseID:       warehouseID,
		LocationID:        locationID,
		OnHand:            decimal.Zero,
		Reserved:          decimal.Zero,
		MinQuantity:       decimal.Zero,
		MaxQuantity:       decimal.Zero,
	}, nil
}

// Available returns the unreserved quantity, never negative
func (s *StockLevel) Available() decimal.Decimal {
	available := s.OnHand.Sub(s.Reserved)
	if available.IsNegative() {
		return decimal.Zero
	}
	return available
}

// Receive increases the on-hand quantity
func (s *StockLevel) Receive(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Receive quantity must be positive")
	}

	s.OnHand = s.OnHand.Add(quantity)
	s.touch()

	return nil
}

// Reserve holds quantity against the unreserved balance
func (s *StockLevel) Reserve(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Reserve quantity must be positive")
	}
	if s.Available().LessThan(quantity) {
		return newInsufficientAvailableStockError(quantity, s.Available())
	}

	s.Reserved = s.Reserved.Add(quantity)
	s.touch()

	return nil
}

// ResizeReservation replaces a hold of oldQuantity with newQuantity.
// Availability is checked with the old hold added back, so shrinking a
// reservation always succeeds.
func (s *StockLevel) ResizeReservation(oldQuantity, newQuantity decimal.Decimal) error {
	if newQuantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Reservation quantity must be positive")
	}

	availableWithOwnHold := s.Available().Add(oldQuantity)
	if availableWithOwnHold.LessThan(newQuantity) {
		return newInsufficientAvailableStockError(newQuantity, availableWithOwnHold)
	}

	s.Reserved = s.Reserved.Sub(oldQuantity).Add(newQuantity)
	if s.Reserved.IsNegative() {
		s.Reserved = decimal.Zero
	}
	s.touch()

	return nil
}

// ReleaseReserved gives back held quantity, clamping at zero so that a
// release never drives the reserved balance negative.
func (s *StockLevel) ReleaseReserved(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Release quantity must be positive")
	}

	s.Reserved = s.Reserved.Sub(quantity)
	if s.Reserved.IsNegative() {
		s.Reserved = decimal.Zero
	}
	s.touch()

	return nil
}

// Ship fulfils a reservation: both on-hand and reserved drop by quantity
func (s *StockLevel) Ship(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Ship quantity must be positive")
	}
	if s.OnHand.LessThan(quantity) {
		return newInsufficientStockError(quantity, s.OnHand)
	}

	s.OnHand = s.OnHand.Sub(quantity)
	s.Reserved = s.Reserved.Sub(quantity)
	if s.Reserved.IsNegative() {
		s.Reserved = decimal.Zero
	}
	s.touch()

	if s.IsBelowMinimum() {
		s.AddDomainEvent(NewStockBelowThresholdEvent(s))
	}

	return nil
}

// SetOnHand overwrites the on-hand quantity from a physical count.
// Rejected when the new quantity would undercut outstanding reservations.
func (s *StockLevel) SetOnHand(quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "On-hand quantity cannot be negative")
	}
	if quantity.LessThan(s.Reserved) {
		return shared.NewDomainError("INVALID_STATE", "Counted quantity is below outstanding reservations")
	}

	s.OnHand = quantity
	s.touch()

	if s.IsBelowMinimum() {
		s.AddDomainEvent(NewStockBelowThresholdEvent(s))
	}

	return nil
}

// SetThresholds updates the min/max stock thresholds
func (s *StockLevel) SetThresholds(minQuantity, maxQuantity decimal.Decimal) error {
	if minQuantity.IsNegative() || maxQuantity.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Thresholds cannot be negative")
	}
	if maxQuantity.GreaterThan(decimal.Zero) && minQuantity.GreaterThan(maxQuantity) {
		return shared.NewDomainError("INVALID_QUANTITY", "Minimum threshold cannot exceed maximum")
	}

	s.MinQuantity = minQuantity
	s.MaxQuantity = maxQuantity
	s.touch()

	return nil
}

// IsBelowMinimum returns true when a minimum threshold is set and breached
func (s *StockLevel) IsBelowMinimum() bool {
	return s.MinQuantity.GreaterThan(decimal.Zero) && s.OnHand.LessThan(s.MinQuantity)
}

// IsAboveMaximum returns true when a maximum threshold is set and exceeded
func (s *StockLevel) IsAboveMaximum() bool {
	return s.MaxQuantity.GreaterThan(decimal.Zero) && s.OnHand.GreaterThan(s.MaxQuantity)
}

func (s *StockLevel) touch() {
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}
