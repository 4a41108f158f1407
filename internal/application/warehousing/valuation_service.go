package warehousing

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockcraft/backend/internal/domain/shared"
	"github.com/stockcraft/backend/internal/domain/warehousing"
)

// recentLotFallbackLimit caps how many lots the cross-warehouse cost
// estimate looks at when the target warehouse has no open lots left.
const recentLotFallbackLimit = 10

// ValuationService computes on-hand valuations and cost-of-goods figures.
// All operations are read-only; lots are consumed by the shipping flow, not
// by valuation queries.
type ValuationService struct {
	warehouseRepo warehousing.WarehouseRepository
	levelRepo     warehousing.StockLevelRepository
	lotRepo       warehousing.StockLotRepository
	factory       *warehousing.CostingStrategyFactory
}

// NewValuationService creates a new valuation service
func NewValuationService(
	warehouseRepo warehousing.WarehouseRepository,
	levelRepo warehousing.StockLevelRepository,
	lotRepo warehousing.StockLotRepository,
) *ValuationService {
	return &ValuationService{
		warehouseRepo: warehouseRepo,
		levelRepo:     levelRepo,
		lotRepo:       lotRepo,
		factory:       warehousing.NewCostingStrategyFactory(),
	}
}

// resolveMethod validates the requested method, falling back to the
// warehouse's configured method when none is given.
func (s *ValuationService) resolveMethod(ctx context.Context, warehouseID uuid.UUID, raw string) (warehousing.ValuationMethod, error) {
	if raw != "" {
		return warehousing.ParseValuationMethod(raw)
	}
	warehouse, err := s.warehouseRepo.FindByID(ctx, warehouseID)
	if err != nil {
		return "", err
	}
	return warehouse.ValuationMethod, nil
}

// ValueOnHand values the open lots for an item in a warehouse at acquisition
// cost. When stock is on hand but the lot ledger for the warehouse is empty
// (stock predating lot tracking, or data imported without lots), the value is
// estimated from the average cost of the most recent lots for the item across
// all warehouses.
func (s *ValuationService) ValueOnHand(ctx context.Context, itemID, warehouseID uuid.UUID, method string) (*ValueOnHandResponse, error) {
	resolved, err := s.resolveMethod(ctx, warehouseID, method)
	if err != nil {
		// An unknown stock point values as zero; only an explicitly
		// malformed method is an error.
		if method == "" && errors.Is(err, shared.ErrNotFound) {
			resolved = warehousing.ValuationMethodFIFO
		} else {
			return nil, err
		}
	}

	lots, err := s.lotRepo.FindOpenByItemAndWarehouse(ctx, itemID, warehouseID)
	if err != nil {
		return nil, err
	}

	if len(lots) > 0 {
		result := warehousing.ValueLots(lots)
		resp := ToValueOnHandResponse(itemID, warehouseID, resolved, result, false)
		return &resp, nil
	}

	onHand, err := s.onHandQuantity(ctx, itemID, warehouseID)
	if err != nil {
		return nil, err
	}
	if onHand.LessThanOrEqual(decimal.Zero) {
		resp := ToValueOnHandResponse(itemID, warehouseID, resolved, warehousing.ValueLots(nil), false)
		return &resp, nil
	}

	estimate, err := s.estimateFromRecentLots(ctx, itemID, onHand)
	if err != nil {
		return nil, err
	}
	resp := ToValueOnHandResponse(itemID, warehouseID, resolved, estimate, true)
	return &resp, nil
}

// CostOfGoods computes what shipping the requested quantity would cost under
// the given method, without consuming any lot.
func (s *ValuationService) CostOfGoods(ctx context.Context, req CostOfGoodsRequest) (*CostOfGoodsResponse, error) {
	resolved, err := s.resolveMethod(ctx, req.WarehouseID, req.Method)
	if err != nil {
		return nil, err
	}

	strategy, err := s.factory.GetStrategy(resolved)
	if err != nil {
		return nil, err
	}

	lots, err := s.lotRepo.FindOpenByItemAndWarehouse(ctx, req.ItemID, req.WarehouseID)
	if err != nil {
		return nil, err
	}

	result, err := strategy.SelectLots(req.Quantity, lots)
	if err != nil {
		return nil, err
	}

	resp := ToCostOfGoodsResponse(req.ItemID, req.WarehouseID, resolved, result)
	return &resp, nil
}

// onHandQuantity sums the on-hand quantity for an item across the warehouse's
// stock level rows (one per location, plus the location-less row).
func (s *ValuationService) onHandQuantity(ctx context.Context, itemID, warehouseID uuid.UUID) (decimal.Decimal, error) {
	levels, err := s.levelRepo.FindByItemAndWarehouse(ctx, itemID, warehouseID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for i := range levels {
		total = total.Add(levels[i].OnHand)
	}
	return total, nil
}

// estimateFromRecentLots prices the on-hand quantity at the weighted average
// unit cost of the item's most recent lots, regardless of warehouse or
// exhaustion. The result carries no lot breakdown.
func (s *ValuationService) estimateFromRecentLots(ctx context.Context, itemID uuid.UUID, onHand decimal.Decimal) (*warehousing.ValueOnHandResult, error) {
	recent, err := s.lotRepo.FindRecentByItem(ctx, itemID, recentLotFallbackLimit)
	if err != nil {
		return nil, err
	}

	if len(recent) == 0 {
		// No cost history anywhere: quantity is known, value is not.
		return &warehousing.ValueOnHandResult{
			Quantity:        onHand,
			TotalValue:      decimal.Zero,
			AverageUnitCost: decimal.Zero,
			Lots:            []warehousing.LotValuation{},
		}, nil
	}

	totalQty := decimal.Zero
	totalCost := decimal.Zero
	for i := range recent {
		// Original acquisition quantities are not retained, so weight by
		// remaining quantity and fall back to a simple average when every
		// recent lot is exhausted.
		totalQty = totalQty.Add(recent[i].RemainingQuantity)
		totalCost = totalCost.Add(recent[i].RemainingQuantity.Mul(recent[i].UnitCost))
	}

	var avgCost decimal.Decimal
	if totalQty.IsPositive() {
		avgCost = totalCost.Div(totalQty).Round(4)
	} else {
		sum := decimal.Zero
		for i := range recent {
			sum = sum.Add(recent[i].UnitCost)
		}
		avgCost = sum.Div(decimal.NewFromInt(int64(len(recent)))).Round(4)
	}

	return &warehousing.ValueOnHandResult{
		Quantity:        onHand,
		TotalValue:      onHand.Mul(avgCost),
		AverageUnitCost: avgCost,
		Lots:            []warehousing.LotValuation{},
	}, nil
}
