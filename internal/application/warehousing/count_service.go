package warehousing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockcraft/backend/internal/domain/shared"
	"github.com/stockcraft/backend/internal/domain/warehousing"
)

// CountService handles the inventory count lifecycle: opening a sheet with a
// snapshot of book quantities, recording counts, and reconciling approved
// differences into stock levels and the move ledger.
type CountService struct {
	txScope        TransactionScope
	warehouseRepo  warehousing.WarehouseRepository
	sheetRepo      warehousing.InventorySheetRepository
	levelRepo      warehousing.StockLevelRepository
	eventPublisher shared.EventPublisher
}

// NewCountService creates a new count service
func NewCountService(
	txScope TransactionScope,
	warehouseRepo warehousing.WarehouseRepository,
	sheetRepo warehousing.InventorySheetRepository,
	levelRepo warehousing.StockLevelRepository,
) *CountService {
	return &CountService{
		txScope:       txScope,
		warehouseRepo: warehouseRepo,
		sheetRepo:     sheetRepo,
		levelRepo:     levelRepo,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *CountService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *CountService) publishEvents(ctx context.Context, events ...shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
}

// CreateSheet opens a new count sheet. Every stock level row in the warehouse
// is snapshotted as a sheet row with its current on-hand as the book quantity.
func (s *CountService) CreateSheet(ctx context.Context, req CreateSheetRequest) (*SheetResponse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, req.WarehouseID)
	if err != nil {
		return nil, err
	}

	sheetNumber := req.SheetNumber
	if sheetNumber == "" {
		sheetNumber, err = s.sheetRepo.GenerateSheetNumber(ctx)
		if err != nil {
			return nil, err
		}
	} else {
		exists, err := s.sheetRepo.ExistsBySheetNumber(ctx, sheetNumber)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Sheet number is already in use")
		}
	}

	sheet, err := warehousing.NewInventorySheet(warehouse.ID, sheetNumber, req.Notes)
	if err != nil {
		return nil, err
	}

	// Snapshot all level rows in a single pass, page by page.
	filter := shared.DefaultFilter()
	filter.PageSize = 500
	for {
		levels, err := s.levelRepo.FindByWarehouse(ctx, warehouse.ID, filter)
		if err != nil {
			return nil, err
		}
		for i := range levels {
			if err := sheet.AddSnapshotItem(levels[i].ItemID, levels[i].LocationID, levels[i].OnHand); err != nil {
				return nil, err
			}
		}
		if len(levels) < filter.PageSize {
			break
		}
		filter.Page++
	}

	if err := s.sheetRepo.Save(ctx, sheet); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, collectEvents(sheet)...)

	resp := ToSheetResponse(sheet)
	return &resp, nil
}

// GetByID retrieves a sheet with its rows
func (s *CountService) GetByID(ctx context.Context, id uuid.UUID) (*SheetResponse, error) {
	sheet, err := s.sheetRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToSheetResponse(sheet)
	return &resp, nil
}

// List retrieves sheets matching the filter, without rows
func (s *CountService) List(ctx context.Context, filter SheetListFilter) ([]SheetResponse, int64, error) {
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

	var sheets []warehousing.InventorySheet
	var err error
	switch {
	case filter.WarehouseID != nil:
		if filter.Status != "" {
			domainFilter.Filters["status"] = filter.Status
		}
		sheets, err = s.sheetRepo.FindByWarehouse(ctx, *filter.WarehouseID, domainFilter)
	case filter.Status != "":
		sheets, err = s.sheetRepo.FindByStatus(ctx, warehousing.SheetStatus(filter.Status), domainFilter)
	default:
		sheets, err = s.sheetRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.sheetRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]SheetResponse, 0, len(sheets))
	for i := range sheets {
		responses = append(responses, ToSheetListResponse(&sheets[i]))
	}
	return responses, total, nil
}

// RecordCount records a counted quantity against one sheet row. The first
// count moves the sheet from OPEN to IN_PROGRESS; recounting a row before
// completion just overwrites the previous count.
func (s *CountService) RecordCount(ctx context.Context, sheetID uuid.UUID, req RecordCountRequest) (*SheetResponse, error) {
	sheet, err := s.sheetRepo.FindByID(ctx, sheetID)
	if err != nil {
		return nil, err
	}

	if err := sheet.RecordItemCount(req.ItemID, req.LocationID, req.CountedQuantity, req.Note); err != nil {
		return nil, err
	}

	if err := s.sheetRepo.Save(ctx, sheet); err != nil {
		return nil, err
	}

	resp := ToSheetResponse(sheet)
	return &resp, nil
}

// Complete marks counting as finished. Uncounted rows are allowed; they are
// treated as matching the book quantity and produce no correction.
func (s *CountService) Complete(ctx context.Context, sheetID uuid.UUID) (*SheetResponse, error) {
	sheet, err := s.sheetRepo.FindByID(ctx, sheetID)
	if err != nil {
		return nil, err
	}

	if err := sheet.Complete(); err != nil {
		return nil, err
	}

	if err := s.sheetRepo.Save(ctx, sheet); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, collectEvents(sheet)...)

	resp := ToSheetResponse(sheet)
	return &resp, nil
}

// Approve approves a completed sheet and reconciles every counted difference:
// each affected stock level is set to the counted quantity and a
// COUNT_CORRECTION move records the difference. Everything commits in one
// transaction, so a failing level (counted below its reserved quantity, or a
// concurrent write) rolls the whole approval back.
func (s *CountService) Approve(ctx context.Context, sheetID uuid.UUID, req ApproveSheetRequest) (*SheetResponse, error) {
	var sheet *warehousing.InventorySheet
	var levels []*warehousing.StockLevel
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var txErr error
		sheet, txErr = repos.SheetRepo().FindByID(ctx, sheetID)
		if txErr != nil {
			return txErr
		}

		if txErr = sheet.Approve(req.ApproverID); txErr != nil {
			return txErr
		}

		levels, txErr = s.applyDifferences(ctx, repos, sheet, false)
		if txErr != nil {
			return txErr
		}

		return repos.SheetRepo().Save(ctx, sheet)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, collectEvents(sheet)...)
	for _, level := range levels {
		s.publishEvents(ctx, collectEvents(level)...)
	}

	resp := ToSheetResponse(sheet)
	return &resp, nil
}

// RevertApproval undoes an approval before the sheet is closed. Every
// correction applied by Approve is compensated with an opposite
// COUNT_CORRECTION move and the sheet returns to COMPLETED, ready to be
// re-approved or amended.
func (s *CountService) RevertApproval(ctx context.Context, sheetID uuid.UUID) (*SheetResponse, error) {
	var sheet *warehousing.InventorySheet
	var levels []*warehousing.StockLevel
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var txErr error
		sheet, txErr = repos.SheetRepo().FindByID(ctx, sheetID)
		if txErr != nil {
			return txErr
		}

		if txErr = sheet.RevertApproval(); txErr != nil {
			return txErr
		}

		levels, txErr = s.applyDifferences(ctx, repos, sheet, true)
		if txErr != nil {
			return txErr
		}

		return repos.SheetRepo().Save(ctx, sheet)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, collectEvents(sheet)...)
	for _, level := range levels {
		s.publishEvents(ctx, collectEvents(level)...)
	}

	resp := ToSheetResponse(sheet)
	return &resp, nil
}

// Close closes an approved sheet, freezing it permanently
func (s *CountService) Close(ctx context.Context, sheetID uuid.UUID) (*SheetResponse, error) {
	sheet, err := s.sheetRepo.FindByID(ctx, sheetID)
	if err != nil {
		return nil, err
	}

	if err := sheet.Close(); err != nil {
		return nil, err
	}

	if err := s.sheetRepo.Save(ctx, sheet); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, collectEvents(sheet)...)

	resp := ToSheetResponse(sheet)
	return &resp, nil
}

// Delete deletes a sheet that has not started reconciling. Approved and
// closed sheets are part of the audit trail and cannot be removed.
func (s *CountService) Delete(ctx context.Context, sheetID uuid.UUID) error {
	sheet, err := s.sheetRepo.FindByID(ctx, sheetID)
	if err != nil {
		return err
	}

	switch sheet.Status {
	case warehousing.SheetStatusOpen, warehousing.SheetStatusInProgress, warehousing.SheetStatusCompleted:
		return s.sheetRepo.Delete(ctx, sheetID)
	default:
		return shared.NewDomainError("INVALID_STATE", "Approved or closed sheets cannot be deleted")
	}
}

// applyDifferences walks the sheet's counted differences and mutates the
// matching stock levels. Forward sets the level to the counted quantity;
// revert subtracts the difference again. Each direction writes symmetric
// COUNT_CORRECTION moves.
func (s *CountService) applyDifferences(
	ctx context.Context,
	repos TransactionalRepositories,
	sheet *warehousing.InventorySheet,
	revert bool,
) ([]*warehousing.StockLevel, error) {
	differences := sheet.CountedDifferences()
	if len(differences) == 0 {
		return nil, nil
	}

	sheetID := sheet.ID
	levels := make([]*warehousing.StockLevel, 0, len(differences))
	moves := make([]*warehousing.StockMove, 0, len(differences))

	for i := range differences {
		item := &differences[i]

		level, err := repos.LevelRepo().GetOrCreate(ctx, item.ItemID, sheet.WarehouseID, item.LocationID)
		if err != nil {
			return nil, err
		}

		target := *item.CountedQuantity
		moveQty := item.Difference
		if revert {
			target = level.OnHand.Sub(item.Difference)
			moveQty = item.Difference.Neg()
		}

		if err := level.SetOnHand(target); err != nil {
			return nil, err
		}
		level.AddDomainEvent(warehousing.NewStockCountCorrectedEvent(level, sheetID, moveQty))

		move, err := warehousing.NewStockMove(
			item.ItemID, sheet.WarehouseID, item.LocationID,
			warehousing.MoveTypeCountCorrection, moveQty, decimal.Zero,
			warehousing.ReferenceKindInventorySheet, &sheetID, item.Note,
		)
		if err != nil {
			return nil, err
		}

		if err := repos.LevelRepo().SaveWithLock(ctx, level); err != nil {
			return nil, err
		}

		levels = append(levels, level)
		moves = append(moves, move)
	}

	if err := repos.MoveRepo().CreateBatch(ctx, moves); err != nil {
		return nil, err
	}
	return levels, nil
}
