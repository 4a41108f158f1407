package warehousing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockcraft/backend/internal/domain/shared"
)

// WarehouseRepository defines the interface for warehouse persistence
type WarehouseRepository interface {
	// FindByID finds a warehouse by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Warehouse, error)

	// FindByCode finds a warehouse by its code
	FindByCode(ctx context.Context, code string) (*Warehouse, error)

	// FindAll finds warehouses matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Warehouse, error)

	// Save creates or updates a warehouse
	Save(ctx context.Context, warehouse *Warehouse) error

	// Delete deletes a warehouse
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts warehouses matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByCode checks if a warehouse code is taken
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

// StockLevelRepository defines the interface for stock level persistence
type StockLevelRepository interface {
	// FindByID finds a stock level by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockLevel, error)

	// FindByKey finds the stock level for an item-warehouse-location key
	FindByKey(ctx context.Context, itemID, warehouseID uuid.UUID, locationID *uuid.UUID) (*StockLevel, error)

	// FindByItemAndWarehouse finds all stock levels for an item in a warehouse
	// (one per location, plus the location-less row if present)
	FindByItemAndWarehouse(ctx context.Context, itemID, warehouseID uuid.UUID) ([]StockLevel, error)

	// FindByWarehouse finds all stock levels in a warehouse
	FindByWarehouse(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) ([]StockLevel, error)

	// FindBelowMinimum finds stock levels under their minimum threshold
	FindBelowMinimum(ctx context.Context, filter shared.Filter) ([]StockLevel, error)

	// Save creates or updates a stock level
	Save(ctx context.Context, level *StockLevel) error

	// SaveWithLock saves with optimistic locking (checks version)
	SaveWithLock(ctx context.Context, level *StockLevel) error

	// GetOrCreate gets the existing stock level for a key or creates a zero one
	GetOrCreate(ctx context.Context, itemID, warehouseID uuid.UUID, locationID *uuid.UUID) (*StockLevel, error)

	// SumOnHandByItem sums on-hand quantity for an item across all warehouses
	SumOnHandByItem(ctx context.Context, itemID uuid.UUID) (decimal.Decimal, error)

	// Count counts stock levels in a warehouse
	CountByWarehouse(ctx context.Context, warehouseID uuid.UUID) (int64, error)
}

// StockLotRepository defines the interface for stock lot persistence.
// Lots are modified through the costing flow: the application computes a
// consumption plan and persists the touched lots explicitly. There is no
// delete; exhausted lots stay on the ledger.
type StockLotRepository interface {
	// FindByID finds a lot by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockLot, error)

	// FindOpenByItemAndWarehouse finds non-exhausted lots for an item in a warehouse
	FindOpenByItemAndWarehouse(ctx context.Context, itemID, warehouseID uuid.UUID) ([]StockLot, error)

	// FindByItemAndWarehouse finds all lots, exhausted included
	FindByItemAndWarehouse(ctx context.Context, itemID, warehouseID uuid.UUID, filter shared.Filter) ([]StockLot, error)

	// FindRecentByItem finds the most recently acquired lots for an item
	// across all warehouses, newest first
	FindRecentByItem(ctx context.Context, itemID uuid.UUID, limit int) ([]StockLot, error)

	// Create appends a new lot to the ledger
	Create(ctx context.Context, lot *StockLot) error

	// Save persists remaining-quantity changes to an existing lot
	Save(ctx context.Context, lot *StockLot) error

	// SaveAll persists remaining-quantity changes to multiple lots
	SaveAll(ctx context.Context, lots []*StockLot) error

	// SumRemainingByItemAndWarehouse sums open lot quantity for an item in a warehouse
	SumRemainingByItemAndWarehouse(ctx context.Context, itemID, warehouseID uuid.UUID) (decimal.Decimal, error)
}

// StockReservationRepository defines the interface for reservation persistence
type StockReservationRepository interface {
	// FindByID finds a reservation by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockReservation, error)

	// FindActiveByItemAndWarehouse finds active reservations for an item in a warehouse
	FindActiveByItemAndWarehouse(ctx context.Context, itemID, warehouseID uuid.UUID) ([]StockReservation, error)

	// FindByReference finds reservations for a referenced document
	FindByReference(ctx context.Context, kind ReferenceKind, refID uuid.UUID) ([]StockReservation, error)

	// FindAll finds reservations matching the filter
	FindAll(ctx context.Context, filter ReservationFilter) ([]StockReservation, error)

	// Save creates or updates a reservation
	Save(ctx context.Context, reservation *StockReservation) error

	// Delete removes a reservation row (release)
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts reservations matching the filter
	Count(ctx context.Context, filter ReservationFilter) (int64, error)
}

// StockMoveRepository defines the interface for the stock move ledger.
// The ledger is append-only: no update, no delete.
type StockMoveRepository interface {
	// FindByID finds a move by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockMove, error)

	// FindAll finds moves matching the filter, newest first
	FindAll(ctx context.Context, filter MoveFilter) ([]StockMove, error)

	// FindByReference finds moves for a referenced document
	FindByReference(ctx context.Context, kind ReferenceKind, refID uuid.UUID) ([]StockMove, error)

	// Create appends a new move to the ledger
	Create(ctx context.Context, move *StockMove) error

	// CreateBatch appends multiple moves
	CreateBatch(ctx context.Context, moves []*StockMove) error

	// Count counts moves matching the filter
	Count(ctx context.Context, filter MoveFilter) (int64, error)
}

// InventorySheetRepository defines the interface for count sheet persistence
type InventorySheetRepository interface {
	// FindByID finds a sheet by its ID, rows included
	FindByID(ctx context.Context, id uuid.UUID) (*InventorySheet, error)

	// FindBySheetNumber finds a sheet by its number
	FindBySheetNumber(ctx context.Context, sheetNumber string) (*InventorySheet, error)

	// FindByWarehouse finds sheets for a warehouse
	FindByWarehouse(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) ([]InventorySheet, error)

	// FindByStatus finds sheets with a specific status
	FindByStatus(ctx context.Context, status SheetStatus, filter shared.Filter) ([]InventorySheet, error)

	// FindAll finds sheets matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]InventorySheet, error)

	// Save creates or updates a sheet together with its rows
	Save(ctx context.Context, sheet *InventorySheet) error

	// Delete deletes a sheet
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts sheets matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsBySheetNumber checks if a sheet number is taken
	ExistsBySheetNumber(ctx context.Context, sheetNumber string) (bool, error)

	// GenerateSheetNumber generates a new unique sheet number
	GenerateSheetNumber(ctx context.Context) (string, error)
}

// ReservationFilter extends shared.Filter with reservation-specific filters
type ReservationFilter struct {
	shared.Filter
	ItemID      *uuid.UUID
	WarehouseID *uuid.UUID
	State       *ReservationState
}

// MoveFilter extends shared.Filter with move-specific filters
type MoveFilter struct {
	shared.Filter
	ItemID      *uuid.UUID
	WarehouseID *uuid.UUID
	MoveType    *MoveType
	RefKind     *ReferenceKind
	StartDate   *time.Time
	EndDate     *time.Time
}
