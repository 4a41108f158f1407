package warehousing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockcraft/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeWarehouse        = "Warehouse"
	AggregateTypeStockLevel       = "StockLevel"
	AggregateTypeStockReservation = "StockReservation"
	AggregateTypeInventorySheet   = "InventorySheet"
)

// Event type constants
const (
	EventTypeWarehouseCreated           = "WarehouseCreated"
	EventTypeValuationMethodChanged     = "ValuationMethodChanged"
	EventTypeStockReceived              = "StockReceived"
	EventTypeStockReserved              = "StockReserved"
	EventTypeReservationQuantityChanged = "ReservationQuantityChanged"
	EventTypeReservationShipped         = "ReservationShipped"
	EventTypeReservationCancelled       = "ReservationCancelled"
	EventTypeStockBelowThreshold        = "StockBelowThreshold"
	EventTypeStockCountCorrected        = "StockCountCorrected"
	EventTypeSheetCreated               = "InventorySheetCreated"
	EventTypeSheetCompleted             = "InventorySheetCompleted"
	EventTypeSheetApproved              = "InventorySheetApproved"
	EventTypeSheetApprovalReverted      = "InventorySheetApprovalReverted"
	EventTypeSheetClosed                = "InventorySheetClosed"
)

// WarehouseCreatedEvent is raised when a warehouse is created
type WarehouseCreatedEvent struct {
	shared.BaseDomainEvent
	WarehouseID     uuid.UUID       `json:"warehouse_id"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	ValuationMethod ValuationMethod `json:"valuation_method"`
}

// NewWarehouseCreatedEvent creates a new WarehouseCreatedEvent
func NewWarehouseCreatedEvent(w *Warehouse) *WarehouseCreatedEvent {
	return &WarehouseCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeWarehouseCreated, AggregateTypeWarehouse, w.ID),
		WarehouseID:     w.ID,
		Code:            w.Code,
		Name:            w.Name,
		ValuationMethod: w.ValuationMethod,
	}
}

// ValuationMethodChangedEvent is raised when a warehouse switches costing method
type ValuationMethodChangedEvent struct {
	shared.BaseDomainEvent
	WarehouseID    uuid.UUID       `json:"warehouse_id"`
	PreviousMethod ValuationMethod `json:"previous_method"`
	NewMethod      ValuationMethod `json:"new_method"`
}

// NewValuationMethodChangedEvent creates a new ValuationMethodChangedEvent
func NewValuationMethodChangedEvent(w *Warehouse, previous ValuationMethod) *ValuationMethodChangedEvent {
	return &ValuationMethodChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeValuationMethodChanged, AggregateTypeWarehouse, w.ID),
		WarehouseID:     w.ID,
		PreviousMethod:  previous,
		NewMethod:       w.ValuationMethod,
	}
}

// StockReceivedEvent is raised when stock is received into a warehouse
type StockReceivedEvent struct {
	shared.BaseDomainEvent
	StockLevelID uuid.UUID       `json:"stock_level_id"`
	ItemID       uuid.UUID       `json:"item_id"`
	WarehouseID  uuid.UUID       `json:"warehouse_id"`
	LotID        uuid.UUID       `json:"lot_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	BatchNumber  string          `json:"batch_number,omitempty"`
}

// NewStockReceivedEvent creates a new StockReceivedEvent
func NewStockReceivedEvent(level *StockLevel, lot *StockLot) *StockReceivedEvent {
	return &StockReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockReceived, AggregateTypeStockLevel, level.ID),
		StockLevelID:    level.ID,
		ItemID:          level.ItemID,
		WarehouseID:     level.WarehouseID,
		LotID:           lot.ID,
		Quantity:        lot.RemainingQuantity,
		UnitCost:        lot.UnitCost,
		BatchNumber:     lot.BatchNumber,
	}
}

// StockReservedEvent is raised when quantity is held for an outbound document
type StockReservedEvent struct {
	shared.BaseDomainEvent
	ReservationID uuid.UUID       `json:"reservation_id"`
	ItemID        uuid.UUID       `json:"item_id"`
	WarehouseID   uuid.UUID       `json:"warehouse_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	RefKind       ReferenceKind   `json:"reference_kind"`
	RefID         uuid.UUID       `json:"reference_id"`
}

// NewStockReservedEvent creates a new StockReservedEvent
func NewStockReservedEvent(r *StockReservation) *StockReservedEvent {
	return &StockReservedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockReserved, AggregateTypeStockReservation, r.ID),
		ReservationID:   r.ID,
		ItemID:          r.ItemID,
		WarehouseID:     r.WarehouseID,
		Quantity:        r.Quantity,
		RefKind:         r.ReferenceKindOf(),
		RefID:           r.ReferenceID(),
	}
}

// ReservationQuantityChangedEvent is raised when an active hold is resized
type ReservationQuantityChangedEvent struct {
	shared.BaseDomainEvent
	ReservationID    uuid.UUID       `json:"reservation_id"`
	ItemID           uuid.UUID       `json:"item_id"`
	WarehouseID      uuid.UUID       `json:"warehouse_id"`
	PreviousQuantity decimal.Decimal `json:"previous_quantity"`
	NewQuantity      decimal.Decimal `json:"new_quantity"`
}

// NewReservationQuantityChangedEvent creates a new ReservationQuantityChangedEvent
func NewReservationQuantityChangedEvent(r *StockReservation, previous decimal.Decimal) *ReservationQuantityChangedEvent {
	return &ReservationQuantityChangedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeReservationQuantityChanged, AggregateTypeStockReservation, r.ID),
		ReservationID:    r.ID,
		ItemID:           r.ItemID,
		WarehouseID:      r.WarehouseID,
		PreviousQuantity: previous,
		NewQuantity:      r.Quantity,
	}
}

// ReservationShippedEvent is raised when a reservation is fulfilled
type ReservationShippedEvent struct {
	shared.BaseDomainEvent
	ReservationID uuid.UUID       `json:"reservation_id"`
	ItemID        uuid.UUID       `json:"item_id"`
	WarehouseID   uuid.UUID       `json:"warehouse_id"`
	Quantity      decimal.Decimal `json:"quantity"`
}

// NewReservationShippedEvent creates a new ReservationShippedEvent
func NewReservationShippedEvent(r *StockReservation) *ReservationShippedEvent {
	return &ReservationShippedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReservationShipped, AggregateTypeStockReservation, r.ID),
		ReservationID:   r.ID,
		ItemID:          r.ItemID,
		WarehouseID:     r.WarehouseID,
		Quantity:        r.Quantity,
	}
}

// ReservationCancelledEvent is raised when a reservation is cancelled
type ReservationCancelledEvent struct {
	shared.BaseDomainEvent
	ReservationID uuid.UUID       `json:"reservation_id"`
	ItemID        uuid.UUID       `json:"item_id"`
	WarehouseID   uuid.UUID       `json:"warehouse_id"`
	Quantity      decimal.Decimal `json:"quantity"`
}

// NewReservationCancelledEvent creates a new ReservationCancelledEvent
func NewReservationCancelledEvent(r *StockReservation) *ReservationCancelledEvent {
	return &ReservationCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReservationCancelled, AggregateTypeStockReservation, r.ID),
		ReservationID:   r.ID,
		ItemID:          r.ItemID,
		WarehouseID:     r.WarehouseID,
		Quantity:        r.Quantity,
	}
}

// StockBelowThresholdEvent is raised when on-hand drops under the minimum
type StockBelowThresholdEvent struct {
	shared.BaseDomainEvent
	StockLevelID uuid.UUID       `json:"stock_level_id"`
	ItemID       uuid.UUID       `json:"item_id"`
	WarehouseID  uuid.UUID       `json:"warehouse_id"`
	OnHand       decimal.Decimal `json:"on_hand"`
	MinQuantity  decimal.Decimal `json:"min_quantity"`
}

// NewStockBelowThresholdEvent creates a new StockBelowThresholdEvent
func NewStockBelowThresholdEvent(level *StockLevel) *StockBelowThresholdEvent {
	return &StockBelowThresholdEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockBelowThreshold, AggregateTypeStockLevel, level.ID),
		StockLevelID:    level.ID,
		ItemID:          level.ItemID,
		WarehouseID:     level.WarehouseID,
		OnHand:          level.OnHand,
		MinQuantity:     level.MinQuantity,
	}
}

// StockCountCorrectedEvent is raised when an approved count difference is applied
type StockCountCorrectedEvent struct {
	shared.BaseDomainEvent
	StockLevelID uuid.UUID       `json:"stock_level_id"`
	ItemID       uuid.UUID       `json:"item_id"`
	WarehouseID  uuid.UUID       `json:"warehouse_id"`
	SheetID      uuid.UUID       `json:"sheet_id"`
	Difference   decimal.Decimal `json:"difference"`
}

// NewStockCountCorrectedEvent creates a new StockCountCorrectedEvent
func NewStockCountCorrectedEvent(level *StockLevel, sheetID uuid.UUID, difference decimal.Decimal) *StockCountCorrectedEvent {
	return &StockCountCorrectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockCountCorrected, AggregateTypeStockLevel, level.ID),
		StockLevelID:    level.ID,
		ItemID:          level.ItemID,
		WarehouseID:     level.WarehouseID,
		SheetID:         sheetID,
		Difference:      difference,
	}
}

// SheetCreatedEvent is raised when a count sheet is opened
type SheetCreatedEvent struct {
	shared.BaseDomainEvent
	SheetID     uuid.UUID `json:"sheet_id"`
	SheetNumber string    `json:"sheet_number"`
	WarehouseID uuid.UUID `json:"warehouse_id"`
}

// NewSheetCreatedEvent creates a new SheetCreatedEvent
func NewSheetCreatedEvent(sh *InventorySheet) *SheetCreatedEvent {
	return &SheetCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSheetCreated, AggregateTypeInventorySheet, sh.ID),
		SheetID:         sh.ID,
		SheetNumber:     sh.SheetNumber,
		WarehouseID:     sh.WarehouseID,
	}
}

// SheetCompletedEvent is raised when counting finishes
type SheetCompletedEvent struct {
	shared.BaseDomainEvent
	SheetID      uuid.UUID `json:"sheet_id"`
	WarehouseID  uuid.UUID `json:"warehouse_id"`
	CountedItems int       `json:"counted_items"`
	TotalItems   int       `json:"total_items"`
}

// NewSheetCompletedEvent creates a new SheetCompletedEvent
func NewSheetCompletedEvent(sh *InventorySheet) *SheetCompletedEvent {
	return &SheetCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSheetCompleted, AggregateTypeInventorySheet, sh.ID),
		SheetID:         sh.ID,
		WarehouseID:     sh.WarehouseID,
		CountedItems:    sh.CountedItems,
		TotalItems:      sh.TotalItems,
	}
}

// SheetApprovedEvent is raised when a sheet's differences are applied
type SheetApprovedEvent struct {
	shared.BaseDomainEvent
	SheetID      uuid.UUID  `json:"sheet_id"`
	WarehouseID  uuid.UUID  `json:"warehouse_id"`
	ApprovedByID *uuid.UUID `json:"approved_by_id"`
}

// NewSheetApprovedEvent creates a new SheetApprovedEvent
func NewSheetApprovedEvent(sh *InventorySheet) *SheetApprovedEvent {
	return &SheetApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSheetApproved, AggregateTypeInventorySheet, sh.ID),
		SheetID:         sh.ID,
		WarehouseID:     sh.WarehouseID,
		ApprovedByID:    sh.ApprovedByID,
	}
}

// SheetApprovalRevertedEvent is raised when an approval is rolled back
type SheetApprovalRevertedEvent struct {
	shared.BaseDomainEvent
	SheetID     uuid.UUID `json:"sheet_id"`
	WarehouseID uuid.UUID `json:"warehouse_id"`
}

// NewSheetApprovalRevertedEvent creates a new SheetApprovalRevertedEvent
func NewSheetApprovalRevertedEvent(sh *InventorySheet) *SheetApprovalRevertedEvent {
	return &SheetApprovalRevertedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSheetApprovalReverted, AggregateTypeInventorySheet, sh.ID),
		SheetID:         sh.ID,
		WarehouseID:     sh.WarehouseID,
	}
}

// SheetClosedEvent is raised when an approved sheet is frozen
type SheetClosedEvent struct {
	shared.BaseDomainEvent
	SheetID     uuid.UUID `json:"sheet_id"`
	WarehouseID uuid.UUID `json:"warehouse_id"`
}

// NewSheetClosedEvent creates a new SheetClosedEvent
func NewSheetClosedEvent(sh *InventorySheet) *SheetClosedEvent {
	return &SheetClosedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSheetClosed, AggregateTypeInventorySheet, sh.ID),
		SheetID:         sh.ID,
		WarehouseID:     sh.WarehouseID,
	}
}
