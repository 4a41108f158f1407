package warehousing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockcraft/backend/internal/domain/shared"
)

// SheetStatus represents the status of an inventory count sheet
type SheetStatus string

const (
	SheetStatusOpen       SheetStatus = "OPEN"
	SheetStatusInProgress SheetStatus = "IN_PROGRESS"
	SheetStatusCompleted  SheetStatus = "COMPLETED"
	SheetStatusApproved   SheetStatus = "APPROVED"
	SheetStatusClosed     SheetStatus = "CLOSED"
)

// IsValid checks if the status is a valid SheetStatus
func (s SheetStatus) IsValid() bool {
	switch s {
	case SheetStatusOpen, SheetStatusInProgress, SheetStatusCompleted,
		SheetStatusApproved, SheetStatusClosed:
		return true
	}
	return false
}

// String returns the string representation of SheetStatus
func (s SheetStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// APPROVED may go back to COMPLETED so that a wrongly approved sheet can be
// corrected before it is closed.
func (s SheetStatus) CanTransitionTo(target SheetStatus) bool {
	switch s {
	case SheetStatusOpen:
		return target == SheetStatusInProgress
	case SheetStatusInProgress:
		return target == SheetStatusCompleted
	case SheetStatusCompleted:
		return target == SheetStatusApproved
	case SheetStatusApproved:
		return target == SheetStatusClosed || target == SheetStatusCompleted
	case SheetStatusClosed:
		return false
	}
	return false
}

// InventorySheetItem is one row of a count sheet. BookQuantity is frozen at
// sheet creation; the live stock level may drift while counting is underway.
type InventorySheetItem struct {
	ID              uuid.UUID
	SheetID         uuid.UUID
	ItemID          uuid.UUID
	LocationID      *uuid.UUID
	BookQuantity    decimal.Decimal
	CountedQuantity *decimal.Decimal
	Difference      decimal.Decimal // Counted - Book, zero until counted
	Counted         bool
	Note            string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewInventorySheetItem creates a new sheet row snapshotting the book quantity
func NewInventorySheetItem(sheetID, itemID uuid.UUID, locationID *uuid.UUID, bookQty decimal.Decimal) *InventorySheetItem {
	now := time.Now()
	return &InventorySheetItem{
		ID:           uuid.New(),
		SheetID:      sheetID,
		ItemID:       itemID,
		LocationID:   locationID,
		BookQuantity: bookQty,
		Counted:      false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// RecordCount records the physical count for this row
func (i *InventorySheetItem) RecordCount(countedQty decimal.Decimal, note string) error {
	if countedQty.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Counted quantity cannot be negative")
	}

	i.CountedQuantity = &countedQty
	i.Difference = countedQty.Sub(i.BookQuantity)
	i.Counted = true
	i.Note = note
	i.UpdatedAt = time.Now()

	return nil
}

// HasDifference returns true if the count deviates from the book quantity
func (i *InventorySheetItem) HasDifference() bool {
	return i.Counted && !i.Difference.IsZero()
}

// InventorySheet is the aggregate root for a physical inventory count.
// Approving a sheet applies counted differences to the live stock levels;
// the approval can be reverted with compensating corrections until the
// sheet is closed.
type InventorySheet struct {
	shared.BaseAggregateRoot
	SheetNumber  string
	WarehouseID  uuid.UUID
	Status       SheetStatus
	StartedAt    *time.Time // When the first count was recorded
	CompletedAt  *time.Time // When counting finished
	ApprovedAt   *time.Time // When the sheet was approved
	ApprovedByID *uuid.UUID // User who approved
	ClosedAt     *time.Time // When the sheet was closed
	TotalItems   int
	CountedItems int
	Notes        string
	Items        []InventorySheetItem
}

// NewInventorySheet creates a new count sheet in OPEN status
func NewInventorySheet(warehouseID uuid.UUID, sheetNumber, notes string) (*InventorySheet, error) {
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	if sheetNumber == "" {
		return nil, shared.NewDomainError("INVALID_SHEET_NUMBER", "Sheet number cannot be empty")
	}

	sheet := &InventorySheet{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SheetNumber:       sheetNumber,
		WarehouseID:       warehouseID,
		Status:            SheetStatusOpen,
		Notes:             notes,
		Items:             make([]InventorySheetItem, 0),
	}

	sheet.AddDomainEvent(NewSheetCreatedEvent(sheet))

	return sheet, nil
}

// AddSnapshotItem freezes the book quantity of a stock level into the sheet
func (sh *InventorySheet) AddSnapshotItem(itemID uuid.UUID, locationID *uuid.UUID, bookQty decimal.Decimal) error {
	if sh.Status != SheetStatusOpen {
		return shared.NewDomainError("INVALID_STATE", "Can only add rows to an open sheet")
	}
	if itemID == uuid.Nil {
		return shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}

	for _, item := range sh.Items {
		if item.ItemID == itemID && uuidPtrEqual(item.LocationID, locationID) {
			return shared.NewDomainError("ALREADY_EXISTS", "Item already present on the sheet")
		}
	}

	row := NewInventorySheetItem(sh.ID, itemID, locationID, bookQty)
	sh.Items = append(sh.Items, *row)
	sh.TotalItems++
	sh.UpdatedAt = time.Now()

	return nil
}

// RecordItemCount records the physical count for the row holding the given
// item (and location, when the sheet tracks locations). The first recorded
// count moves the sheet from OPEN to IN_PROGRESS.
func (sh *InventorySheet) RecordItemCount(itemID uuid.UUID, locationID *uuid.UUID, countedQty decimal.Decimal, note string) error {
	if sh.Status != SheetStatusOpen && sh.Status != SheetStatusInProgress {
		return shared.NewDomainError("INVALID_STATE", "Can only record counts on an open or in-progress sheet")
	}

	for i := range sh.Items {
		if sh.Items[i].ItemID != itemID || !uuidPtrEqual(sh.Items[i].LocationID, locationID) {
			continue
		}

		wasCounted := sh.Items[i].Counted
		if err := sh.Items[i].RecordCount(countedQty, note); err != nil {
			return err
		}
		if !wasCounted {
			sh.CountedItems++
		}

		if sh.Status == SheetStatusOpen {
			now := time.Now()
			sh.Status = SheetStatusInProgress
			sh.StartedAt = &now
		}

		sh.UpdatedAt = time.Now()
		sh.IncrementVersion()
		return nil
	}

	return shared.NewDomainError("NOT_FOUND", "Sheet row not found")
}

// Complete closes the counting phase. Uncounted rows are allowed; approval
// only applies rows that were actually counted.
func (sh *InventorySheet) Complete() error {
	if !sh.Status.CanTransitionTo(SheetStatusCompleted) {
		return newInvalidTransitionError(sh.Status.String(), SheetStatusCompleted.String())
	}

	now := time.Now()
	sh.Status = SheetStatusCompleted
	sh.CompletedAt = &now
	sh.UpdatedAt = now
	sh.IncrementVersion()

	sh.AddDomainEvent(NewSheetCompletedEvent(sh))

	return nil
}

// Approve marks the sheet approved. The caller is responsible for applying
// the counted differences to the affected stock levels in the same unit of
// work.
func (sh *InventorySheet) Approve(approverID uuid.UUID) error {
	if !sh.Status.CanTransitionTo(SheetStatusApproved) {
		return newInvalidTransitionError(sh.Status.String(), SheetStatusApproved.String())
	}
	if approverID == uuid.Nil {
		return shared.NewDomainError("INVALID_APPROVER", "Approver ID cannot be empty")
	}

	now := time.Now()
	sh.Status = SheetStatusApproved
	sh.ApprovedAt = &now
	sh.ApprovedByID = &approverID
	sh.UpdatedAt = now
	sh.IncrementVersion()

	sh.AddDomainEvent(NewSheetApprovedEvent(sh))

	return nil
}

// RevertApproval rolls the sheet back to COMPLETED. The caller must undo the
// applied differences with compensating corrections in the same unit of work.
func (sh *InventorySheet) RevertApproval() error {
	if sh.Status != SheetStatusApproved {
		return newInvalidTransitionError(sh.Status.String(), SheetStatusCompleted.String())
	}

	sh.Status = SheetStatusCompleted
	sh.ApprovedAt = nil
	sh.ApprovedByID = nil
	sh.UpdatedAt = time.Now()
	sh.IncrementVersion()

	sh.AddDomainEvent(NewSheetApprovalRevertedEvent(sh))

	return nil
}

// Close freezes an approved sheet permanently
func (sh *InventorySheet) Close() error {
	if !sh.Status.CanTransitionTo(SheetStatusClosed) {
		return newInvalidTransitionError(sh.Status.String(), SheetStatusClosed.String())
	}

	now := time.Now()
	sh.Status = SheetStatusClosed
	sh.ClosedAt = &now
	sh.UpdatedAt = now
	sh.IncrementVersion()

	sh.AddDomainEvent(NewSheetClosedEvent(sh))

	return nil
}

// CountedDifferences returns the rows whose count deviates from the book
func (sh *InventorySheet) CountedDifferences() []InventorySheetItem {
	result := make([]InventorySheetItem, 0)
	for _, item := range sh.Items {
		if item.HasDifference() {
			result = append(result, item)
		}
	}
	return result
}

// UncountedItems returns rows that have not been counted yet
func (sh *InventorySheet) UncountedItems() []InventorySheetItem {
	result := make([]InventorySheetItem, 0)
	for _, item := range sh.Items {
		if !item.Counted {
			result = append(result, item)
		}
	}
	return result
}

func uuidPtrEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
