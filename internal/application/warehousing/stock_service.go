package warehousing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockcraft/backend/internal/domain/shared"
	"github.com/stockcraft/backend/internal/domain/warehousing"
)

// StockService handles stock receipt, threshold and ledger query use cases
type StockService struct {
	txScope        TransactionScope
	warehouseRepo  warehousing.WarehouseRepository
	levelRepo      warehousing.StockLevelRepository
	lotRepo        warehousing.StockLotRepository
	moveRepo       warehousing.StockMoveRepository
	eventPublisher shared.EventPublisher
}

// NewStockService creates a new stock service
func NewStockService(
	txScope TransactionScope,
	warehouseRepo warehousing.WarehouseRepository,
	levelRepo warehousing.StockLevelRepository,
	lotRepo warehousing.StockLotRepository,
	moveRepo warehousing.StockMoveRepository,
) *StockService {
	return &StockService{
		txScope:       txScope,
		warehouseRepo: warehouseRepo,
		levelRepo:     levelRepo,
		lotRepo:       lotRepo,
		moveRepo:      moveRepo,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *StockService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *StockService) publishEvents(ctx context.Context, events ...shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
}

// ReceiveStock receives a quantity into a warehouse: a new lot is appended to
// the ledger, the stock level is increased and a RECEIPT move is recorded.
// All three writes happen in one transaction.
func (s *StockService) ReceiveStock(ctx context.Context, req ReceiveStockRequest) (*StockLevelResponse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, req.WarehouseID)
	if err != nil {
		return nil, err
	}
	if !warehouse.IsActive() {
		return nil, shared.NewDomainError("INVALID_STATE", "Warehouse is not active")
	}

	refKind := warehousing.ReferenceKindManual
	if req.RefKind != "" {
		refKind = warehousing.ReferenceKind(req.RefKind)
	}

	acquiredAt := time.Now()
	if req.AcquiredAt != nil {
		acquiredAt = *req.AcquiredAt
	}

	var level *warehousing.StockLevel
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var txErr error
		level, txErr = repos.LevelRepo().GetOrCreate(ctx, req.ItemID, req.WarehouseID, req.LocationID)
		if txErr != nil {
			return txErr
		}

		lot, txErr := warehousing.NewStockLot(
			req.ItemID, req.WarehouseID, req.LocationID,
			req.BatchNumber, req.Quantity, req.UnitCost, acquiredAt,
		)
		if txErr != nil {
			return txErr
		}

		if txErr = level.Receive(req.Quantity); txErr != nil {
			return txErr
		}
		level.AddDomainEvent(warehousing.NewStockReceivedEvent(level, lot))

		move, txErr := warehousing.NewStockMove(
			req.ItemID, req.WarehouseID, req.LocationID,
			warehousing.MoveTypeReceipt, req.Quantity, req.UnitCost,
			refKind, req.RefID, req.Note,
		)
		if txErr != nil {
			return txErr
		}

		if txErr = repos.LotRepo().Create(ctx, lot); txErr != nil {
			return txErr
		}
		if txErr = repos.LevelRepo().SaveWithLock(ctx, level); txErr != nil {
			return txErr
		}
		return repos.MoveRepo().Create(ctx, move)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, level.GetDomainEvents()...)
	level.ClearDomainEvents()

	resp := ToStockLevelResponse(level)
	return &resp, nil
}

// GetStockLevel retrieves the stock level for an item-warehouse-location key
func (s *StockService) GetStockLevel(ctx context.Context, itemID, warehouseID uuid.UUID, locationID *uuid.UUID) (*StockLevelResponse, error) {
	level, err := s.levelRepo.FindByKey(ctx, itemID, warehouseID, locationID)
	if err != nil {
		return nil, err
	}
	resp := ToStockLevelResponse(level)
	return &resp, nil
}

// ListStockLevels retrieves stock levels in a warehouse
func (s *StockService) ListStockLevels(ctx context.Context, warehouseID uuid.UUID, filter StockLevelListFilter) ([]StockLevelResponse, error) {
	domainFilter := shared.DefaultFilter()
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
	if filter.ItemID != nil {
		domainFilter.Filters["item_id"] = *filter.ItemID
	}

	levels, err := s.levelRepo.FindByWarehouse(ctx, warehouseID, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]StockLevelResponse, 0, len(levels))
	for i := range levels {
		responses = append(responses, ToStockLevelResponse(&levels[i]))
	}
	return responses, nil
}

// ListBelowMinimum retrieves stock levels under their minimum threshold
func (s *StockService) ListBelowMinimum(ctx context.Context, filter StockLevelListFilter) ([]StockLevelResponse, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.WarehouseID != nil {
		domainFilter.Filters["warehouse_id"] = *filter.WarehouseID
	}

	levels, err := s.levelRepo.FindBelowMinimum(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]StockLevelResponse, 0, len(levels))
	for i := range levels {
		responses = append(responses, ToStockLevelResponse(&levels[i]))
	}
	return responses, nil
}

// SetThresholds sets the min/max quantity thresholds for a stock level key
func (s *StockService) SetThresholds(ctx context.Context, req SetThresholdsRequest) (*StockLevelResponse, error) {
	level, err := s.levelRepo.GetOrCreate(ctx, req.ItemID, req.WarehouseID, req.LocationID)
	if err != nil {
		return nil, err
	}

	if err := level.SetThresholds(req.MinQuantity, req.MaxQuantity); err != nil {
		return nil, err
	}

	if err := s.levelRepo.SaveWithLock(ctx, level); err != nil {
		return nil, err
	}

	resp := ToStockLevelResponse(level)
	return &resp, nil
}

// TotalOnHandByItem sums the on-hand quantity for an item across all warehouses
func (s *StockService) TotalOnHandByItem(ctx context.Context, itemID uuid.UUID) (decimal.Decimal, error) {
	return s.levelRepo.SumOnHandByItem(ctx, itemID)
}

// ListLots retrieves the lot ledger for an item in a warehouse
func (s *StockService) ListLots(ctx context.Context, itemID, warehouseID uuid.UUID, openOnly bool) ([]StockLotResponse, error) {
	var lots []warehousing.StockLot
	var err error
	if openOnly {
		lots, err = s.lotRepo.FindOpenByItemAndWarehouse(ctx, itemID, warehouseID)
	} else {
		lots, err = s.lotRepo.FindByItemAndWarehouse(ctx, itemID, warehouseID, shared.DefaultFilter())
	}
	if err != nil {
		return nil, err
	}

	responses := make([]StockLotResponse, 0, len(lots))
	for i := range lots {
		responses = append(responses, ToStockLotResponse(&lots[i]))
	}
	return responses, nil
}

// ListMoves retrieves stock moves matching the filter, newest first
func (s *StockService) ListMoves(ctx context.Context, filter MoveListFilter) ([]StockMoveResponse, int64, error) {
	domainFilter := warehousing.MoveFilter{
		Filter:      shared.DefaultFilter(),
		ItemID:      filter.ItemID,
		WarehouseID: filter.WarehouseID,
		StartDate:   filter.StartDate,
		EndDate:     filter.EndDate,
	}
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.MoveType != "" {
		moveType := warehousing.MoveType(filter.MoveType)
		if !moveType.IsValid() {
			return nil, 0, shared.NewDomainError("VALIDATION_ERROR", "Unknown stock move type")
		}
		domainFilter.MoveType = &moveType
	}
	if filter.RefKind != "" {
		refKind := warehousing.ReferenceKind(filter.RefKind)
		if !refKind.IsValid() {
			return nil, 0, shared.NewDomainError("VALIDATION_ERROR", "Unknown stock move reference kind")
		}
		domainFilter.RefKind = &refKind
	}

	moves, err := s.moveRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.moveRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]StockMoveResponse, 0, len(moves))
	for i := range moves {
		responses = append(responses, ToStockMoveResponse(&moves[i]))
	}
	return responses, total, nil
}

// ListMovesByReference retrieves moves recorded for a referenced document
func (s *StockService) ListMovesByReference(ctx context.Context, refKind string, refID uuid.UUID) ([]StockMoveResponse, error) {
	kind := warehousing.ReferenceKind(refKind)
	if !kind.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Unknown stock move reference kind")
	}

	moves, err := s.moveRepo.FindByReference(ctx, kind, refID)
	if err != nil {
		return nil, err
	}

	responses := make([]StockMoveResponse, 0, len(moves))
	for i := range moves {
		responses = append(responses, ToStockMoveResponse(&moves[i]))
	}
	return responses, nil
}
