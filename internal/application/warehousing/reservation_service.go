package warehousing

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockcraft/backend/internal/domain/shared"
	"github.com/stockcraft/backend/internal/domain/warehousing"
)

// ReservationService handles the reservation lifecycle: holding available
// stock for an order, resizing the hold, and closing it by shipping or
// cancelling. Every mutation runs in one transaction with the stock level
// saved under optimistic locking.
type ReservationService struct {
	txScope         TransactionScope
	warehouseRepo   warehousing.WarehouseRepository
	reservationRepo warehousing.StockReservationRepository
	levelRepo       warehousing.StockLevelRepository
	factory         *warehousing.CostingStrategyFactory
	eventPublisher  shared.EventPublisher
}

// NewReservationService creates a new reservation service
func NewReservationService(
	txScope TransactionScope,
	warehouseRepo warehousing.WarehouseRepository,
	reservationRepo warehousing.StockReservationRepository,
	levelRepo warehousing.StockLevelRepository,
) *ReservationService {
	return &ReservationService{
		txScope:         txScope,
		warehouseRepo:   warehouseRepo,
		reservationRepo: reservationRepo,
		levelRepo:       levelRepo,
		factory:         warehousing.NewCostingStrategyFactory(),
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *ReservationService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *ReservationService) publishEvents(ctx context.Context, events ...shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
}

func collectEvents(aggregates ...interface {
	GetDomainEvents() []shared.DomainEvent
	ClearDomainEvents()
}) []shared.DomainEvent {
	var events []shared.DomainEvent
	for _, a := range aggregates {
		events = append(events, a.GetDomainEvents()...)
		a.ClearDomainEvents()
	}
	return events
}

// Reserve holds available stock for a sales order or purchase order.
// The hold fails when the unreserved quantity is smaller than requested.
func (s *ReservationService) Reserve(ctx context.Context, req ReserveStockRequest) (*ReservationResponse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, req.WarehouseID)
	if err != nil {
		return nil, err
	}
	if !warehouse.IsActive() {
		return nil, shared.NewDomainError("INVALID_STATE", "Warehouse is not active")
	}

	var reservation *warehousing.StockReservation
	var level *warehousing.StockLevel
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var txErr error
		level, txErr = repos.LevelRepo().FindByKey(ctx, req.ItemID, req.WarehouseID, req.LocationID)
		if txErr != nil {
			return txErr
		}

		if txErr = level.Reserve(req.Quantity); txErr != nil {
			return txErr
		}

		reservation, txErr = warehousing.NewStockReservation(
			req.ItemID, req.WarehouseID, req.LocationID,
			req.Quantity, req.OrderID, req.PurchaseOrderID, req.Note,
		)
		if txErr != nil {
			return txErr
		}

		move, txErr := warehousing.NewStockMove(
			req.ItemID, req.WarehouseID, req.LocationID,
			warehousing.MoveTypeReservation, req.Quantity.Neg(), decimal.Zero,
			reservation.ReferenceKindOf(), refIDPtr(reservation), req.Note,
		)
		if txErr != nil {
			return txErr
		}

		if txErr = repos.LevelRepo().SaveWithLock(ctx, level); txErr != nil {
			return txErr
		}
		if txErr = repos.ReservationRepo().Save(ctx, reservation); txErr != nil {
			return txErr
		}
		return repos.MoveRepo().Create(ctx, move)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, collectEvents(reservation, level)...)

	resp := ToReservationResponse(reservation)
	return &resp, nil
}

// GetByID retrieves a reservation by its ID
func (s *ReservationService) GetByID(ctx context.Context, id uuid.UUID) (*ReservationResponse, error) {
	reservation, err := s.reservationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToReservationResponse(reservation)
	return &resp, nil
}

// List retrieves reservations matching the filter
func (s *ReservationService) List(ctx context.Context, filter ReservationListFilter) ([]ReservationResponse, int64, error) {
	domainFilter := warehousing.ReservationFilter{
		Filter:      shared.DefaultFilter(),
		ItemID:      filter.ItemID,
		WarehouseID: filter.WarehouseID,
	}
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
	if filter.State != "" {
		state := warehousing.ReservationState(filter.State)
		if !state.IsValid() {
			return nil, 0, shared.NewDomainError("VALIDATION_ERROR", "Unknown reservation state")
		}
		domainFilter.State = &state
	}

	reservations, err := s.reservationRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.reservationRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ReservationResponse, 0, len(reservations))
	for i := range reservations {
		responses = append(responses, ToReservationResponse(&reservations[i]))
	}
	return responses, total, nil
}

// ListByReference retrieves reservations for a referenced document
func (s *ReservationService) ListByReference(ctx context.Context, refKind string, refID uuid.UUID) ([]ReservationResponse, error) {
	kind := warehousing.ReferenceKind(refKind)
	if kind != warehousing.ReferenceKindSalesOrder && kind != warehousing.ReferenceKindPurchaseOrder {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Reservations reference sales orders or purchase orders")
	}

	reservations, err := s.reservationRepo.FindByReference(ctx, kind, refID)
	if err != nil {
		return nil, err
	}

	responses := make([]ReservationResponse, 0, len(reservations))
	for i := range reservations {
		responses = append(responses, ToReservationResponse(&reservations[i]))
	}
	return responses, nil
}

// UpdateQuantity resizes an active reservation. The delta is checked against
// availability: growing the hold needs unreserved stock, shrinking always
// succeeds.
func (s *ReservationService) UpdateQuantity(ctx context.Context, id uuid.UUID, req UpdateReservationQuantityRequest) (*ReservationResponse, error) {
	var reservation *warehousing.StockReservation
	var level *warehousing.StockLevel
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var txErr error
		reservation, txErr = repos.ReservationRepo().FindByID(ctx, id)
		if txErr != nil {
			return txErr
		}

		level, txErr = repos.LevelRepo().FindByKey(ctx, reservation.ItemID, reservation.WarehouseID, reservation.LocationID)
		if txErr != nil {
			return txErr
		}

		previous := reservation.Quantity
		if txErr = reservation.UpdateQuantity(req.Quantity); txErr != nil {
			return txErr
		}
		if txErr = level.ResizeReservation(previous, req.Quantity); txErr != nil {
			return txErr
		}

		if txErr = repos.LevelRepo().SaveWithLock(ctx, level); txErr != nil {
			return txErr
		}
		return repos.ReservationRepo().Save(ctx, reservation)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, collectEvents(reservation, level)...)

	resp := ToReservationResponse(reservation)
	return &resp, nil
}

// Ship closes an active reservation by shipping the held quantity. Lots are
// consumed under the warehouse's valuation method, the on-hand and reserved
// quantities drop together and a SHIPMENT move records the cost of goods.
func (s *ReservationService) Ship(ctx context.Context, id uuid.UUID) (*ReservationResponse, error) {
	var reservation *warehousing.StockReservation
	var level *warehousing.StockLevel
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var txErr error
		reservation, txErr = repos.ReservationRepo().FindByID(ctx, id)
		if txErr != nil {
			return txErr
		}

		warehouse, txErr := repos.WarehouseRepo().FindByID(ctx, reservation.WarehouseID)
		if txErr != nil {
			return txErr
		}
		strategy, txErr := s.factory.GetStrategy(warehouse.ValuationMethod)
		if txErr != nil {
			return txErr
		}

		level, txErr = repos.LevelRepo().FindByKey(ctx, reservation.ItemID, reservation.WarehouseID, reservation.LocationID)
		if txErr != nil {
			return txErr
		}

		lots, txErr := repos.LotRepo().FindOpenByItemAndWarehouse(ctx, reservation.ItemID, reservation.WarehouseID)
		if txErr != nil {
			return txErr
		}

		// The state check runs before the costing so a shipped reservation
		// reports INVALID_STATE rather than INSUFFICIENT_STOCK.
		if txErr = reservation.MarkShipped(); txErr != nil {
			return txErr
		}

		result, txErr := strategy.SelectLots(reservation.Quantity, lots)
		if txErr != nil {
			return txErr
		}

		lotPtrs := make([]*warehousing.StockLot, len(lots))
		for i := range lots {
			lotPtrs[i] = &lots[i]
		}
		if txErr = warehousing.ApplyLotConsumptions(lotPtrs, result); txErr != nil {
			return txErr
		}

		if txErr = level.Ship(reservation.Quantity); txErr != nil {
			return txErr
		}

		move, txErr := warehousing.NewStockMove(
			reservation.ItemID, reservation.WarehouseID, reservation.LocationID,
			warehousing.MoveTypeShipment, reservation.Quantity.Neg(), result.AverageUnitCost,
			reservation.ReferenceKindOf(), refIDPtr(reservation), reservation.Note,
		)
		if txErr != nil {
			return txErr
		}

		if txErr = repos.LotRepo().SaveAll(ctx, touchedLots(lotPtrs, result)); txErr != nil {
			return txErr
		}
		if txErr = repos.LevelRepo().SaveWithLock(ctx, level); txErr != nil {
			return txErr
		}
		if txErr = repos.ReservationRepo().Save(ctx, reservation); txErr != nil {
			return txErr
		}
		return repos.MoveRepo().Create(ctx, move)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, collectEvents(reservation, level)...)

	resp := ToReservationResponse(reservation)
	return &resp, nil
}

// Cancel closes an active reservation and gives the held quantity back to
// the available pool. On-hand stock is untouched.
func (s *ReservationService) Cancel(ctx context.Context, id uuid.UUID) (*ReservationResponse, error) {
	var reservation *warehousing.StockReservation
	var level *warehousing.StockLevel
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var txErr error
		reservation, txErr = repos.ReservationRepo().FindByID(ctx, id)
		if txErr != nil {
			return txErr
		}

		level, txErr = repos.LevelRepo().FindByKey(ctx, reservation.ItemID, reservation.WarehouseID, reservation.LocationID)
		if txErr != nil {
			return txErr
		}

		if txErr = reservation.MarkCancelled(); txErr != nil {
			return txErr
		}
		if txErr = level.ReleaseReserved(reservation.Quantity); txErr != nil {
			return txErr
		}

		move, txErr := warehousing.NewStockMove(
			reservation.ItemID, reservation.WarehouseID, reservation.LocationID,
			warehousing.MoveTypeRelease, reservation.Quantity, decimal.Zero,
			reservation.ReferenceKindOf(), refIDPtr(reservation), reservation.Note,
		)
		if txErr != nil {
			return txErr
		}

		if txErr = repos.LevelRepo().SaveWithLock(ctx, level); txErr != nil {
			return txErr
		}
		if txErr = repos.ReservationRepo().Save(ctx, reservation); txErr != nil {
			return txErr
		}
		return repos.MoveRepo().Create(ctx, move)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, collectEvents(reservation, level)...)

	resp := ToReservationResponse(reservation)
	return &resp, nil
}

// Release removes a reservation row entirely. An active hold is released
// back to the available pool first, exactly as Cancel does; a reservation
// already shipped or cancelled has no held quantity left, so the row is
// removed as-is.
func (s *ReservationService) Release(ctx context.Context, id uuid.UUID) error {
	var reservation *warehousing.StockReservation
	var level *warehousing.StockLevel
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var txErr error
		reservation, txErr = repos.ReservationRepo().FindByID(ctx, id)
		if txErr != nil {
			return txErr
		}

		if reservation.IsActive() {
			level, txErr = repos.LevelRepo().FindByKey(ctx, reservation.ItemID, reservation.WarehouseID, reservation.LocationID)
			if txErr != nil {
				return txErr
			}
			if txErr = level.ReleaseReserved(reservation.Quantity); txErr != nil {
				return txErr
			}

			move, moveErr := warehousing.NewStockMove(
				reservation.ItemID, reservation.WarehouseID, reservation.LocationID,
				warehousing.MoveTypeRelease, reservation.Quantity, decimal.Zero,
				reservation.ReferenceKindOf(), refIDPtr(reservation), reservation.Note,
			)
			if moveErr != nil {
				return moveErr
			}

			if txErr = repos.LevelRepo().SaveWithLock(ctx, level); txErr != nil {
				return txErr
			}
			if txErr = repos.MoveRepo().Create(ctx, move); txErr != nil {
				return txErr
			}
		}

		return repos.ReservationRepo().Delete(ctx, reservation.ID)
	})
	if err != nil {
		return err
	}

	if level != nil {
		s.publishEvents(ctx, collectEvents(level)...)
	}
	return nil
}

// AvailableStock reports the stock position for an item-warehouse-location
// key: total on-hand, reserved and the unreserved remainder. A missing
// stock level row reads as all zeros.
func (s *ReservationService) AvailableStock(ctx context.Context, itemID, warehouseID uuid.UUID, locationID *uuid.UUID) (*AvailableStockResponse, error) {
	resp := &AvailableStockResponse{
		ItemID:         itemID,
		WarehouseID:    warehouseID,
		LocationID:     locationID,
		TotalStock:     decimal.Zero,
		ReservedStock:  decimal.Zero,
		AvailableStock: decimal.Zero,
	}

	level, err := s.levelRepo.FindByKey(ctx, itemID, warehouseID, locationID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return resp, nil
		}
		return nil, err
	}

	resp.TotalStock = level.OnHand
	resp.ReservedStock = level.Reserved
	resp.AvailableStock = level.Available()
	return resp, nil
}

// refIDPtr returns the reservation's document reference as a pointer for moves
func refIDPtr(r *warehousing.StockReservation) *uuid.UUID {
	id := r.ReferenceID()
	if id == uuid.Nil {
		return nil
	}
	return &id
}

// touchedLots filters the loaded lots down to the ones the consumption plan touched
func touchedLots(lots []*warehousing.StockLot, result *warehousing.CostOfGoodsResult) []*warehousing.StockLot {
	touched := make(map[uuid.UUID]bool, len(result.Consumptions))
	for _, c := range result.Consumptions {
		if c.Quantity.IsPositive() {
			touched[c.LotID] = true
		}
	}
	out := make([]*warehousing.StockLot, 0, len(touched))
	for _, lot := range lots {
		if touched[lot.ID] {
			out = append(out, lot)
		}
	}
	return out
}
