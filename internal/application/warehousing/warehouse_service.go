package warehousing

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockcraft/backend/internal/domain/shared"
	"github.com/stockcraft/backend/internal/domain/warehousing"
)

// WarehouseService handles warehouse management use cases
type WarehouseService struct {
	warehouseRepo  warehousing.WarehouseRepository
	levelRepo      warehousing.StockLevelRepository
	eventPublisher shared.EventPublisher
}

// NewWarehouseService creates a new warehouse service
func NewWarehouseService(
	warehouseRepo warehousing.WarehouseRepository,
	levelRepo warehousing.StockLevelRepository,
) *WarehouseService {
	return &WarehouseService{
		warehouseRepo: warehouseRepo,
		levelRepo:     levelRepo,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *WarehouseService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// publishDomainEvents publishes and clears the aggregate's pending events
func (s *WarehouseService) publishDomainEvents(ctx context.Context, w *warehousing.Warehouse) {
	if s.eventPublisher == nil {
		return
	}
	events := w.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	w.ClearDomainEvents()
}

// Create creates a new warehouse
func (s *WarehouseService) Create(ctx context.Context, req CreateWarehouseRequest) (*WarehouseResponse, error) {
	method := warehousing.ValuationMethodFIFO
	if req.ValuationMethod != "" {
		parsed, err := warehousing.ParseValuationMethod(req.ValuationMethod)
		if err != nil {
			return nil, err
		}
		method = parsed
	}

	exists, err := s.warehouseRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Warehouse code is already in use")
	}

	warehouse, err := warehousing.NewWarehouse(req.Code, req.Name, method)
	if err != nil {
		return nil, err
	}
	warehouse.Address = req.Address
	warehouse.Notes = req.Notes

	if err := s.warehouseRepo.Save(ctx, warehouse); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, warehouse)

	resp := ToWarehouseResponse(warehouse)
	return &resp, nil
}

// GetByID retrieves a warehouse by its ID
func (s *WarehouseService) GetByID(ctx context.Context, id uuid.UUID) (*WarehouseResponse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToWarehouseResponse(warehouse)
	return &resp, nil
}

// GetByCode retrieves a warehouse by its code
func (s *WarehouseService) GetByCode(ctx context.Context, code string) (*WarehouseResponse, error) {
	warehouse, err := s.warehouseRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	resp := ToWarehouseResponse(warehouse)
	return &resp, nil
}

// List retrieves warehouses matching the filter
func (s *WarehouseService) List(ctx context.Context, filter WarehouseListFilter) ([]WarehouseResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.Search = filter.Search
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	warehouses, err := s.warehouseRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.warehouseRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]WarehouseResponse, 0, len(warehouses))
	for i := range warehouses {
		responses = append(responses, ToWarehouseResponse(&warehouses[i]))
	}
	return responses, total, nil
}

// Update updates a warehouse's details
func (s *WarehouseService) Update(ctx context.Context, id uuid.UUID, req UpdateWarehouseRequest) (*WarehouseResponse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := warehouse.Update(req.Name, req.Address, req.Notes); err != nil {
		return nil, err
	}

	if err := s.warehouseRepo.Save(ctx, warehouse); err != nil {
		return nil, err
	}

	resp := ToWarehouseResponse(warehouse)
	return &resp, nil
}

// UpdateValuationMethod switches the costing method for a warehouse.
// Open lots are untouched; the new method only governs future computations.
func (s *WarehouseService) UpdateValuationMethod(ctx context.Context, id uuid.UUID, req UpdateValuationMethodRequest) (*WarehouseResponse, error) {
	method, err := warehousing.ParseValuationMethod(req.ValuationMethod)
	if err != nil {
		return nil, err
	}

	warehouse, err := s.warehouseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := warehouse.ChangeValuationMethod(method); err != nil {
		return nil, err
	}

	if err := s.warehouseRepo.Save(ctx, warehouse); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, warehouse)

	resp := ToWarehouseResponse(warehouse)
	return &resp, nil
}

// Enable re-activates a warehouse
func (s *WarehouseService) Enable(ctx context.Context, id uuid.UUID) (*WarehouseResponse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	warehouse.Enable()

	if err := s.warehouseRepo.Save(ctx, warehouse); err != nil {
		return nil, err
	}

	resp := ToWarehouseResponse(warehouse)
	return &resp, nil
}

// Disable deactivates a warehouse. Stock already in the warehouse stays
// readable; new receipts and reservations are rejected at the service level.
func (s *WarehouseService) Disable(ctx context.Context, id uuid.UUID) (*WarehouseResponse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	warehouse.Disable()

	if err := s.warehouseRepo.Save(ctx, warehouse); err != nil {
		return nil, err
	}

	resp := ToWarehouseResponse(warehouse)
	return &resp, nil
}

// Delete deletes a warehouse that holds no stock levels
func (s *WarehouseService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.warehouseRepo.FindByID(ctx, id); err != nil {
		return err
	}

	count, err := s.levelRepo.CountByWarehouse(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("INVALID_STATE", "Warehouse still holds stock levels")
	}

	return s.warehouseRepo.Delete(ctx, id)
}
