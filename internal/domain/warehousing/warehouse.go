package warehousing

import (
	"strings"
	"time"

	"github.com/stockcraft/backend/internal/domain/shared"
)

// WarehouseStatus represents the status of a warehouse
type WarehouseStatus string

const (
	WarehouseStatusActive   WarehouseStatus = "active"
	WarehouseStatusInactive WarehouseStatus = "inactive"
)

// Warehouse is the aggregate root for warehouse operations.
// The valuation method controls how outbound cost is computed against the
// warehouse's lots; changing it never re-costs lots already on the ledger.
type Warehouse struct {
	shared.BaseAggregateRoot
	Code            string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name            string          `gorm:"type:varchar(200);not null"`
	Address         string          `gorm:"type:text"`
	Status          WarehouseStatus `gorm:"type:varchar(20);not null;default:'active'"`
	ValuationMethod ValuationMethod `gorm:"type:varchar(10);not null;default:'FIFO'"`
	Notes           string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Warehouse) TableName() string {
	return "warehouses"
}

// NewWarehouse creates a new warehouse with required fields
func NewWarehouse(code, name string, method ValuationMethod) (*Warehouse, error) {
	if err := validateWarehouseCode(code); err != nil {
		return nil, err
	}
	if err := validateWarehouseName(name); err != nil {
		return nil, err
	}
	if !method.IsValid() {
		return nil, newInvalidMethodError(method.String())
	}

	warehouse := &Warehouse{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Status:            WarehouseStatusActive,
		ValuationMethod:   method,
	}

	warehouse.AddDomainEvent(NewWarehouseCreatedEvent(warehouse))

	return warehouse, nil
}

// Update updates the warehouse's basic information
func (w *Warehouse) Update(name, address, notes string) error {
	if err := validateWarehouseName(name); err != nil {
		return err
	}

	w.Name = name
	w.Address = address
	w.Notes = notes
	w.UpdatedAt = time.Now()
	w.IncrementVersion()

	return nil
}

// ChangeValuationMethod switches the costing method for future outbound
// operations. Existing lots keep their recorded acquisition cost.
func (w *Warehouse) ChangeValuationMethod(method ValuationMethod) error {
	if !method.IsValid() {
		return newInvalidMethodError(method.String())
	}
	if method == w.ValuationMethod {
		return nil
	}

	previous := w.ValuationMethod
	w.ValuationMethod = method
	w.UpdatedAt = time.Now()
	w.IncrementVersion()

	w.AddDomainEvent(NewValuationMethodChangedEvent(w, previous))

	return nil
}

// Enable activates the warehouse
func (w *Warehouse) Enable() {
	if w.Status == WarehouseStatusActive {
		return
	}
	w.Status = WarehouseStatusActive
	w.UpdatedAt = time.Now()
	w.IncrementVersion()
}

// Disable deactivates the warehouse
func (w *Warehouse) Disable() {
	if w.Status == WarehouseStatusInactive {
		return
	}
	w.Status = WarehouseStatusInactive
	w.UpdatedAt = time.Now()
	w.IncrementVersion()
}

// IsActive returns true if the warehouse is active
func (w *Warehouse) IsActive() bool {
	return w.Status == WarehouseStatusActive
}

func validateWarehouseCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Warehouse code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Warehouse code cannot exceed 50 characters")
	}
	return nil
}

func validateWarehouseName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Warehouse name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Warehouse name cannot exceed 200 characters")
	}
	return nil
}
