package warehousing

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockcraft/backend/internal/domain/shared"
	"github.com/stockcraft/backend/internal/domain/shared/strategy"
)

// LotValuation is the per-lot breakdown of an on-hand valuation
type LotValuation struct {
	LotID       uuid.UUID       // ID of the lot
	BatchNumber string          // Batch number for display
	Quantity    decimal.Decimal // Remaining quantity in the lot
	UnitCost    decimal.Decimal // Acquisition cost per unit
	Value       decimal.Decimal // Quantity * UnitCost
	AcquiredAt  time.Time       // When the lot was acquired
}

// ValueOnHandResult is the valuation of all open lots for an item
type ValueOnHandResult struct {
	Quantity        decimal.Decimal // Total remaining quantity across lots
	TotalValue      decimal.Decimal // Total value at acquisition cost
	AverageUnitCost decimal.Decimal // TotalValue / Quantity, zero when empty
	Lots            []LotValuation  // Per-lot breakdown
}

// LotConsumption is the result of costing against a single lot
type LotConsumption struct {
	LotID          uuid.UUID       // ID of the lot
	BatchNumber    string          // Batch number for display
	Quantity       decimal.Decimal // Quantity costed against this lot
	UnitCost       decimal.Decimal // Cost per unit applied
	Cost           decimal.Decimal // Quantity * UnitCost
	RemainingInLot decimal.Decimal // Remaining quantity after consumption
	Exhausted      bool            // True if the lot would be fully consumed
}

// CostOfGoodsResult is the complete result of a cost-of-goods computation
type CostOfGoodsResult struct {
	Quantity        decimal.Decimal  // Requested quantity
	TotalCost       decimal.Decimal  // Total cost of the requested quantity
	AverageUnitCost decimal.Decimal  // Weighted average cost per unit
	Consumptions    []LotConsumption // Per-lot consumption plan
	LotsExhausted   []uuid.UUID      // Lots that would be fully consumed
	LotsPartial     []uuid.UUID      // Lots that would be partially consumed
}

// CostingStrategy computes the cost of an outbound quantity against open
// lots. Strategies never mutate the lots they are given; callers apply the
// returned consumption plan explicitly when stock actually leaves.
type CostingStrategy interface {
	strategy.Strategy
	// Method returns the valuation method this strategy implements
	Method() ValuationMethod
	// SelectLots computes the per-lot consumption plan for the requested quantity
	SelectLots(requestedQuantity decimal.Decimal, lots []StockLot) (*CostOfGoodsResult, error)
}

// FIFOCostingStrategy costs outbound stock against the oldest lots first
type FIFOCostingStrategy struct {
	strategy.BaseStrategy
}

// NewFIFOCostingStrategy creates a new FIFO costing strategy
func NewFIFOCostingStrategy() *FIFOCostingStrategy {
	return &FIFOCostingStrategy{
		BaseStrategy: strategy.NewBaseStrategy(
			"fifo_costing",
			strategy.StrategyTypeCost,
			"FIFO costing - consumes the oldest lots first by acquisition time",
		),
	}
}

// Method returns the valuation method
func (s *FIFOCostingStrategy) Method() ValuationMethod {
	return ValuationMethodFIFO
}

// SelectLots walks lots oldest-first and consumes until the request is met
func (s *FIFOCostingStrategy) SelectLots(requestedQuantity decimal.Decimal, lots []StockLot) (*CostOfGoodsResult, error) {
	open, err := openLotsFor(requestedQuantity, lots)
	if err != nil {
		return nil, err
	}
	sortLotsByAcquisition(open, false)
	return walkLots(requestedQuantity, open), nil
}

// LIFOCostingStrategy costs outbound stock against the newest lots first
type LIFOCostingStrategy struct {
	strategy.BaseStrategy
}

// NewLIFOCostingStrategy creates a new LIFO costing strategy
func NewLIFOCostingStrategy() *LIFOCostingStrategy {
	return &LIFOCostingStrategy{
		BaseStrategy: strategy.NewBaseStrategy(
			"lifo_costing",
			strategy.StrategyTypeCost,
			"LIFO costing - consumes the newest lots first by acquisition time",
		),
	}
}

// Method returns the valuation method
func (s *LIFOCostingStrategy) Method() ValuationMethod {
	return ValuationMethodLIFO
}

// SelectLots walks lots newest-first and consumes until the request is met
func (s *LIFOCostingStrategy) SelectLots(requestedQuantity decimal.Decimal, lots []StockLot) (*CostOfGoodsResult, error) {
	open, err := openLotsFor(requestedQuantity, lots)
	if err != nil {
		return nil, err
	}
	sortLotsByAcquisition(open, true)
	return walkLots(requestedQuantity, open), nil
}

// AVGCostingStrategy costs outbound stock at the weighted average across all
// open lots. The requested quantity is spread over the lots proportionally to
// each lot's share of the total remaining quantity, so the result does not
// depend on lot order.
type AVGCostingStrategy struct {
	strategy.BaseStrategy
}

// NewAVGCostingStrategy creates a new weighted-average costing strategy
func NewAVGCostingStrategy() *AVGCostingStrategy {
	return &AVGCostingStrategy{
		BaseStrategy: strategy.NewBaseStrategy(
			"avg_costing",
			strategy.StrategyTypeCost,
			"Weighted-average costing - spreads consumption across lots proportionally",
		),
	}
}

// Method returns the valuation method
func (s *AVGCostingStrategy) Method() ValuationMethod {
	return ValuationMethodAVG
}

// SelectLots apportions the requested quantity across all open lots
func (s *AVGCostingStrategy) SelectLots(requestedQuantity decimal.Decimal, lots []StockLot) (*CostOfGoodsResult, error) {
	open, err := openLotsFor(requestedQuantity, lots)
	if err != nil {
		return nil, err
	}
	// Deterministic ordering so that the rounding residual always lands on
	// the same (last) lot.
	sortLotsByAcquisition(open, false)

	totalRemaining := decimal.Zero
	for _, lot := range open {
		totalRemaining = totalRemaining.Add(lot.RemainingQuantity)
	}

	consumptions := make([]LotConsumption, 0, len(open))
	lotsExhausted := make([]uuid.UUID, 0)
	lotsPartial := make([]uuid.UUID, 0)
	totalCost := decimal.Zero
	allocated := decimal.Zero

	for i, lot := range open {
		var share decimal.Decimal
		if i == len(open)-1 {
			share = requestedQuantity.Sub(allocated)
		} else {
			share = requestedQuantity.Mul(lot.RemainingQuantity).Div(totalRemaining).Round(4)
		}
		if share.IsNegative() {
			share = decimal.Zero
		}
		if share.GreaterThan(lot.RemainingQuantity) {
			share = lot.RemainingQuantity
		}

		remainingInLot := lot.RemainingQuantity.Sub(share)
		exhausted := remainingInLot.IsZero()
		cost := share.Mul(lot.UnitCost)

		consumptions = append(consumptions, LotConsumption{
			LotID:          lot.ID,
			BatchNumber:    lot.BatchNumber,
			Quantity:       share,
			UnitCost:       lot.UnitCost,
			Cost:           cost,
			RemainingInLot: remainingInLot,
			Exhausted:      exhausted,
		})

		totalCost = totalCost.Add(cost)
		allocated = allocated.Add(share)

		if exhausted {
			lotsExhausted = append(lotsExhausted, lot.ID)
		} else {
			lotsPartial = append(lotsPartial, lot.ID)
		}
	}

	var avgCost decimal.Decimal
	if requestedQuantity.GreaterThan(decimal.Zero) {
		avgCost = totalCost.Div(requestedQuantity).Round(4)
	}

	return &CostOfGoodsResult{
		Quantity:        requestedQuantity,
		TotalCost:       totalCost,
		AverageUnitCost: avgCost,
		Consumptions:    consumptions,
		LotsExhausted:   lotsExhausted,
		LotsPartial:     lotsPartial,
	}, nil
}

// openLotsFor filters out exhausted lots and verifies sufficiency
func openLotsFor(requestedQuantity decimal.Decimal, lots []StockLot) ([]StockLot, error) {
	if requestedQuantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Requested quantity must be positive")
	}

	open := make([]StockLot, 0, len(lots))
	totalRemaining := decimal.Zero
	for _, lot := range lots {
		if lot.HasStock() {
			open = append(open, lot)
			totalRemaining = totalRemaining.Add(lot.RemainingQuantity)
		}
	}

	if totalRemaining.LessThan(requestedQuantity) {
		return nil, newInsufficientStockError(requestedQuantity, totalRemaining)
	}

	return open, nil
}

// sortLotsByAcquisition orders lots by acquisition time, creation time as
// tiebreak. Newest-first when desc is true.
func sortLotsByAcquisition(lots []StockLot, desc bool) {
	sort.Slice(lots, func(i, j int) bool {
		if !lots[i].AcquiredAt.Equal(lots[j].AcquiredAt) {
			if desc {
				return lots[i].AcquiredAt.After(lots[j].AcquiredAt)
			}
			return lots[i].AcquiredAt.Before(lots[j].AcquiredAt)
		}
		if desc {
			return lots[i].CreatedAt.After(lots[j].CreatedAt)
		}
		return lots[i].CreatedAt.Before(lots[j].CreatedAt)
	})
}

// walkLots consumes sorted lots in order until the request is met
func walkLots(requestedQuantity decimal.Decimal, sortedLots []StockLot) *CostOfGoodsResult {
	consumptions := make([]LotConsumption, 0)
	lotsExhausted := make([]uuid.UUID, 0)
	lotsPartial := make([]uuid.UUID, 0)
	remaining := requestedQuantity
	totalCost := decimal.Zero

	for _, lot := range sortedLots {
		if remaining.IsZero() {
			break
		}

		take := decimal.Min(remaining, lot.RemainingQuantity)
		remainingInLot := lot.RemainingQuantity.Sub(take)
		exhausted := remainingInLot.IsZero()
		cost := take.Mul(lot.UnitCost)

		consumptions = append(consumptions, LotConsumption{
			LotID:          lot.ID,
			BatchNumber:    lot.BatchNumber,
			Quantity:       take,
			UnitCost:       lot.UnitCost,
			Cost:           cost,
			RemainingInLot: remainingInLot,
			Exhausted:      exhausted,
		})

		totalCost = totalCost.Add(cost)
		remaining = remaining.Sub(take)

		if exhausted {
			lotsExhausted = append(lotsExhausted, lot.ID)
		} else {
			lotsPartial = append(lotsPartial, lot.ID)
		}
	}

	var avgCost decimal.Decimal
	if requestedQuantity.GreaterThan(decimal.Zero) {
		avgCost = totalCost.Div(requestedQuantity).Round(4)
	}

	return &CostOfGoodsResult{
		Quantity:        requestedQuantity,
		TotalCost:       totalCost,
		AverageUnitCost: avgCost,
		Consumptions:    consumptions,
		LotsExhausted:   lotsExhausted,
		LotsPartial:     lotsPartial,
	}
}

// ValueLots values all open lots at their acquisition cost. The total does
// not depend on the valuation method; the method only matters when costing
// outbound quantity.
func ValueLots(lots []StockLot) *ValueOnHandResult {
	valuations := make([]LotValuation, 0, len(lots))
	totalQuantity := decimal.Zero
	totalValue := decimal.Zero

	for _, lot := range lots {
		if !lot.HasStock() {
			continue
		}
		value := lot.TotalValue()
		valuations = append(valuations, LotValuation{
			LotID:       lot.ID,
			BatchNumber: lot.BatchNumber,
			Quantity:    lot.RemainingQuantity,
			UnitCost:    lot.UnitCost,
			Value:       value,
			AcquiredAt:  lot.AcquiredAt,
		})
		totalQuantity = totalQuantity.Add(lot.RemainingQuantity)
		totalValue = totalValue.Add(value)
	}

	var avgCost decimal.Decimal
	if totalQuantity.GreaterThan(decimal.Zero) {
		avgCost = totalValue.Div(totalQuantity).Round(4)
	}

	return &ValueOnHandResult{
		Quantity:        totalQuantity,
		TotalValue:      totalValue,
		AverageUnitCost: avgCost,
		Lots:            valuations,
	}
}

// CostingStrategyFactory creates costing strategies
type CostingStrategyFactory struct{}

// NewCostingStrategyFactory creates a new factory
func NewCostingStrategyFactory() *CostingStrategyFactory {
	return &CostingStrategyFactory{}
}

// GetStrategy returns a strategy for the given valuation method
func (f *CostingStrategyFactory) GetStrategy(method ValuationMethod) (CostingStrategy, error) {
	switch method {
	case ValuationMethodFIFO:
		return NewFIFOCostingStrategy(), nil
	case ValuationMethodLIFO:
		return NewLIFOCostingStrategy(), nil
	case ValuationMethodAVG:
		return NewAVGCostingStrategy(), nil
	default:
		return nil, newInvalidMethodError(method.String())
	}
}

// GetDefaultStrategy returns the default strategy (FIFO)
func (f *CostingStrategyFactory) GetDefaultStrategy() CostingStrategy {
	return NewFIFOCostingStrategy()
}

// ApplyLotConsumptions executes a consumption plan against real lot entities
func ApplyLotConsumptions(lots []*StockLot, result *CostOfGoodsResult) error {
	if result == nil {
		return shared.NewDomainError("INVALID_RESULT", "Cost of goods result cannot be nil")
	}

	lotMap := make(map[uuid.UUID]*StockLot)
	for _, lot := range lots {
		lotMap[lot.ID] = lot
	}

	for _, c := range result.Consumptions {
		if c.Quantity.IsZero() {
			continue
		}
		lot, exists := lotMap[c.LotID]
		if !exists {
			return shared.NewDomainError("LOT_NOT_FOUND", "Lot not found: "+c.LotID.String())
		}

		consumed := lot.Consume(c.Quantity)
		if !consumed.Equal(c.Quantity) {
			return shared.NewDomainError("CONSUMPTION_MISMATCH", "Lot consumption amount mismatch")
		}
	}

	return nil
}
