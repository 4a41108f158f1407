package warehousing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockcraft/backend/internal/domain/shared"
)

// ReservationState represents the lifecycle state of a stock reservation
type ReservationState string

const (
	ReservationStateActive    ReservationState = "ACTIVE"
	ReservationStateShipped   ReservationState = "SHIPPED"
	ReservationStateCancelled ReservationState = "CANCELLED"
)

// IsValid checks if the state is a valid ReservationState
func (s ReservationState) IsValid() bool {
	switch s {
	case ReservationStateActive, ReservationStateShipped, ReservationStateCancelled:
		return true
	}
	return false
}

// String returns the string representation of ReservationState
func (s ReservationState) String() string {
	return string(s)
}

// IsTerminal returns true for states that permit no further transition
func (s ReservationState) IsTerminal() bool {
	return s == ReservationStateShipped || s == ReservationStateCancelled
}

// CanTransitionTo checks if the state can transition to the target state
func (s ReservationState) CanTransitionTo(target ReservationState) bool {
	if s != ReservationStateActive {
		return false
	}
	return target == ReservationStateShipped || target == ReservationStateCancelled
}

// StockReservation holds quantity for exactly one outbound document, either
// a sales order or a purchase order, never both.
type StockReservation struct {
	shared.BaseAggregateRoot
	ItemID          uuid.UUID        `gorm:"type:uuid;not null;index:idx_reservation_item_warehouse"`
	WarehouseID     uuid.UUID        `gorm:"type:uuid;not null;index:idx_reservation_item_warehouse"`
	LocationID      *uuid.UUID       `gorm:"type:uuid"`
	Quantity        decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	State           ReservationState `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	OrderID         *uuid.UUID       `gorm:"type:uuid;index"`
	PurchaseOrderID *uuid.UUID       `gorm:"type:uuid;index"`
	Note            string           `gorm:"type:text"`
	ClosedAt        *time.Time       `gorm:"type:timestamp"`
}

// TableName returns the table name for GORM
func (StockReservation) TableName() string {
	return "stock_reservations"
}

// NewStockReservation creates a new active reservation
func NewStockReservation(
	itemID, warehouseID uuid.UUID,
	locationID *uuid.UUID,
	quantity decimal.Decimal,
	orderID, purchaseOrderID *uuid.UUID,
	note string,
) (*StockReservation, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Reservation quantity must be positive")
	}
	if err := validateReservationReference(orderID, purchaseOrderID); err != nil {
		return nil, err
	}

	r := &StockReservation{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ItemID:            itemID,
		WarehouseID:       warehouseID,
		LocationID:        locationID,
		Quantity:          quantity,
		State:             ReservationStateActive,
		OrderID:           orderID,
		PurchaseOrderID:   purchaseOrderID,
		Note:              note,
	}

	r.AddDomainEvent(NewStockReservedEvent(r))

	return r, nil
}

// IsActive returns true while the reservation still holds stock
func (r *StockReservation) IsActive() bool {
	return r.State == ReservationStateActive
}

// UpdateQuantity changes the held quantity of an active reservation
func (r *StockReservation) UpdateQuantity(quantity decimal.Decimal) error {
	if !r.IsActive() {
		return shared.NewDomainError("INVALID_STATE", "Can only change quantity of an active reservation")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Reservation quantity must be positive")
	}

	previous := r.Quantity
	r.Quantity = quantity
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewReservationQuantityChangedEvent(r, previous))

	return nil
}

// MarkShipped transitions the reservation to SHIPPED
func (r *StockReservation) MarkShipped() error {
	if !r.State.CanTransitionTo(ReservationStateShipped) {
		return newInvalidTransitionError(r.State.String(), ReservationStateShipped.String())
	}

	now := time.Now()
	r.State = ReservationStateShipped
	r.ClosedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewReservationShippedEvent(r))

	return nil
}

// MarkCancelled transitions the reservation to CANCELLED
func (r *StockReservation) MarkCancelled() error {
	if !r.State.CanTransitionTo(ReservationStateCancelled) {
		return newInvalidTransitionError(r.State.String(), ReservationStateCancelled.String())
	}

	now := time.Now()
	r.State = ReservationStateCancelled
	r.ClosedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewReservationCancelledEvent(r))

	return nil
}

// ReferenceKindOf returns the document kind this reservation was taken for
func (r *StockReservation) ReferenceKindOf() ReferenceKind {
	if r.OrderID != nil {
		return ReferenceKindSalesOrder
	}
	return ReferenceKindPurchaseOrder
}

// ReferenceID returns the ID of the referenced document
func (r *StockReservation) ReferenceID() uuid.UUID {
	if r.OrderID != nil {
		return *r.OrderID
	}
	if r.PurchaseOrderID != nil {
		return *r.PurchaseOrderID
	}
	return uuid.Nil
}

func validateReservationReference(orderID, purchaseOrderID *uuid.UUID) error {
	hasOrder := orderID != nil && *orderID != uuid.Nil
	hasPurchaseOrder := purchaseOrderID != nil && *purchaseOrderID != uuid.Nil

	if hasOrder == hasPurchaseOrder {
		return shared.NewDomainError("VALIDATION_ERROR", "Reservation requires exactly one of order ID or purchase order ID")
	}
	return nil
}
