package warehousing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockcraft/backend/internal/domain/warehousing"
)

// WarehouseResponse represents a warehouse in API responses
type WarehouseResponse struct {
	ID              uuid.UUID `json:"id"`
	Code            string    `json:"code"`
	Name            string    `json:"name"`
	Address         string    `json:"address"`
	Status          string    `json:"status"`
	ValuationMethod string    `json:"valuation_method"`
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Version         int       `json:"version"`
}

// WarehouseListFilter represents filter options for the warehouse list
type WarehouseListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CreateWarehouseRequest represents a request to create a warehouse
type CreateWarehouseRequest struct {
	Code            string `json:"code" binding:"required,max=50"`
	Name            string `json:"name" binding:"required,max=200"`
	Address         string `json:"address"`
	ValuationMethod string `json:"valuation_method" binding:"omitempty,oneof=FIFO LIFO AVG"`
	Notes           string `json:"notes"`
}

// UpdateWarehouseRequest represents a request to update warehouse details
type UpdateWarehouseRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// UpdateValuationMethodRequest represents a request to switch the costing method
type UpdateValuationMethodRequest struct {
	ValuationMethod string `json:"valuation_method" binding:"required"`
}

// StockLevelResponse represents a stock level in API responses
type StockLevelResponse struct {
	ID             uuid.UUID       `json:"id"`
	ItemID         uuid.UUID       `json:"item_id"`
	WarehouseID    uuid.UUID       `json:"warehouse_id"`
	LocationID     *uuid.UUID      `json:"location_id,omitempty"`
	OnHand         decimal.Decimal `json:"on_hand"`
	Reserved       decimal.Decimal `json:"reserved"`
	Available      decimal.Decimal `json:"available"`
	MinQuantity    decimal.Decimal `json:"min_quantity"`
	MaxQuantity    decimal.Decimal `json:"max_quantity"`
	IsBelowMinimum bool            `json:"is_below_minimum"`
	IsAboveMaximum bool            `json:"is_above_maximum"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Version        int             `json:"version"`
}

// AvailableStockResponse reports the full stock position at one stock point
type AvailableStockResponse struct {
	ItemID         uuid.UUID       `json:"item_id"`
	WarehouseID    uuid.UUID       `json:"warehouse_id"`
	LocationID     *uuid.UUID      `json:"location_id,omitempty"`
	TotalStock     decimal.Decimal `json:"total_stock"`
	ReservedStock  decimal.Decimal `json:"reserved_stock"`
	AvailableStock decimal.Decimal `json:"available_stock"`
}

// StockLevelListFilter represents filter options for stock level lists
type StockLevelListFilter struct {
	ItemID       *uuid.UUID `form:"item_id"`
	WarehouseID  *uuid.UUID `form:"warehouse_id"`
	BelowMinimum *bool      `form:"below_minimum"`
	Page         int        `form:"page" binding:"omitempty,min=1"`
	PageSize     int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy      string     `form:"order_by"`
	OrderDir     string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ReceiveStockRequest represents a request to receive stock into a warehouse
type ReceiveStockRequest struct {
	ItemID      uuid.UUID       `json:"item_id" binding:"required"`
	WarehouseID uuid.UUID       `json:"warehouse_id" binding:"required"`
	LocationID  *uuid.UUID      `json:"location_id"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	BatchNumber string          `json:"batch_number"`
	AcquiredAt  *time.Time      `json:"acquired_at"`
	RefKind     string          `json:"ref_kind" binding:"omitempty,oneof=PURCHASE_ORDER MANUAL"`
	RefID       *uuid.UUID      `json:"ref_id"`
	Note        string          `json:"note"`
}

// SetThresholdsRequest represents a request to set min/max stock thresholds
type SetThresholdsRequest struct {
	ItemID      uuid.UUID       `json:"item_id" binding:"required"`
	WarehouseID uuid.UUID       `json:"warehouse_id" binding:"required"`
	LocationID  *uuid.UUID      `json:"location_id"`
	MinQuantity decimal.Decimal `json:"min_quantity"`
	MaxQuantity decimal.Decimal `json:"max_quantity"`
}

// StockLotResponse represents a stock lot in API responses
type StockLotResponse struct {
	ID                uuid.UUID       `json:"id"`
	ItemID            uuid.UUID       `json:"item_id"`
	WarehouseID       uuid.UUID       `json:"warehouse_id"`
	LocationID        *uuid.UUID      `json:"location_id,omitempty"`
	BatchNumber       string          `json:"batch_number"`
	RemainingQuantity decimal.Decimal `json:"remaining_quantity"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	TotalValue        decimal.Decimal `json:"total_value"`
	AcquiredAt        time.Time       `json:"acquired_at"`
	Exhausted         bool            `json:"exhausted"`
}

// StockMoveResponse represents a stock move in API responses
type StockMoveResponse struct {
	ID          uuid.UUID       `json:"id"`
	ItemID      uuid.UUID       `json:"item_id"`
	WarehouseID uuid.UUID       `json:"warehouse_id"`
	LocationID  *uuid.UUID      `json:"location_id,omitempty"`
	MoveType    string          `json:"move_type"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	RefKind     string          `json:"ref_kind"`
	RefID       *uuid.UUID      `json:"ref_id,omitempty"`
	Note        string          `json:"note"`
	MovedAt     time.Time       `json:"moved_at"`
}

// MoveListFilter represents filter options for the stock move ledger
type MoveListFilter struct {
	ItemID      *uuid.UUID `form:"item_id"`
	WarehouseID *uuid.UUID `form:"warehouse_id"`
	MoveType    string     `form:"move_type"`
	RefKind     string     `form:"ref_kind"`
	StartDate   *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate     *time.Time `form:"end_date" time_format:"2006-01-02"`
	Page        int        `form:"page" binding:"omitempty,min=1"`
	PageSize    int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ReserveStockRequest represents a request to reserve stock.
// Exactly one of OrderID and PurchaseOrderID must be set.
type ReserveStockRequest struct {
	ItemID          uuid.UUID       `json:"item_id" binding:"required"`
	WarehouseID     uuid.UUID       `json:"warehouse_id" binding:"required"`
	LocationID      *uuid.UUID      `json:"location_id"`
	Quantity        decimal.Decimal `json:"quantity" binding:"required"`
	OrderID         *uuid.UUID      `json:"order_id"`
	PurchaseOrderID *uuid.UUID      `json:"purchase_order_id"`
	Note            string          `json:"note"`
}

// UpdateReservationQuantityRequest represents a request to resize a reservation
type UpdateReservationQuantityRequest struct {
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
}

// ReservationResponse represents a reservation in API responses
type ReservationResponse struct {
	ID              uuid.UUID       `json:"id"`
	ItemID          uuid.UUID       `json:"item_id"`
	WarehouseID     uuid.UUID       `json:"warehouse_id"`
	LocationID      *uuid.UUID      `json:"location_id,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	State           string          `json:"state"`
	OrderID         *uuid.UUID      `json:"order_id,omitempty"`
	PurchaseOrderID *uuid.UUID      `json:"purchase_order_id,omitempty"`
	Note            string          `json:"note"`
	ClosedAt        *time.Time      `json:"closed_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Version         int             `json:"version"`
}

// ReservationListFilter represents filter options for the reservation list
type ReservationListFilter struct {
	ItemID      *uuid.UUID `form:"item_id"`
	WarehouseID *uuid.UUID `form:"warehouse_id"`
	State       string     `form:"state" binding:"omitempty,oneof=ACTIVE SHIPPED CANCELLED"`
	Page        int        `form:"page" binding:"omitempty,min=1"`
	PageSize    int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy     string     `form:"order_by"`
	OrderDir    string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// LotValuationResponse is the per-lot breakdown of an on-hand valuation
type LotValuationResponse struct {
	LotID       uuid.UUID       `json:"lot_id"`
	BatchNumber string          `json:"batch_number"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Value       decimal.Decimal `json:"value"`
	AcquiredAt  time.Time       `json:"acquired_at"`
}

// ValueOnHandResponse represents the valuation of on-hand stock
type ValueOnHandResponse struct {
	ItemID          uuid.UUID              `json:"item_id"`
	WarehouseID     uuid.UUID              `json:"warehouse_id"`
	ValuationMethod string                 `json:"valuation_method"`
	Quantity        decimal.Decimal        `json:"quantity"`
	TotalValue      decimal.Decimal        `json:"total_value"`
	AverageUnitCost decimal.Decimal        `json:"average_unit_cost"`
	Estimated       bool                   `json:"estimated"`
	Lots            []LotValuationResponse `json:"lots"`
}

// LotConsumptionResponse is the per-lot breakdown of a cost-of-goods computation
type LotConsumptionResponse struct {
	LotID          uuid.UUID       `json:"lot_id"`
	BatchNumber    string          `json:"batch_number"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	Cost           decimal.Decimal `json:"cost"`
	RemainingInLot decimal.Decimal `json:"remaining_in_lot"`
	Exhausted      bool            `json:"exhausted"`
}

// CostOfGoodsResponse represents the outcome of a cost-of-goods computation
type CostOfGoodsResponse struct {
	ItemID          uuid.UUID                `json:"item_id"`
	WarehouseID     uuid.UUID                `json:"warehouse_id"`
	ValuationMethod string                   `json:"valuation_method"`
	Quantity        decimal.Decimal          `json:"quantity"`
	TotalCost       decimal.Decimal          `json:"total_cost"`
	AverageUnitCost decimal.Decimal          `json:"average_unit_cost"`
	Consumptions    []LotConsumptionResponse `json:"consumptions"`
}

// CostOfGoodsRequest represents a request to cost an outbound quantity.
// The computation is read-only; no lot is consumed.
type CostOfGoodsRequest struct {
	ItemID      uuid.UUID       `json:"item_id" binding:"required"`
	WarehouseID uuid.UUID       `json:"warehouse_id" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	Method      string          `json:"method" binding:"omitempty,oneof=FIFO LIFO AVG"`
}

// CreateSheetRequest represents a request to open an inventory count sheet
type CreateSheetRequest struct {
	WarehouseID uuid.UUID `json:"warehouse_id" binding:"required"`
	SheetNumber string    `json:"sheet_number" binding:"omitempty,max=50"`
	Notes       string    `json:"notes"`
}

// RecordCountRequest represents a request to record a counted quantity,
// keyed by the counted item (plus location on location-tracked sheets)
type RecordCountRequest struct {
	ItemID          uuid.UUID       `json:"item_id" binding:"required"`
	LocationID      *uuid.UUID      `json:"location_id"`
	CountedQuantity decimal.Decimal `json:"counted_quantity"`
	Note            string          `json:"note"`
}

// ApproveSheetRequest represents a request to approve a completed sheet
type ApproveSheetRequest struct {
	ApproverID uuid.UUID `json:"approver_id" binding:"required"`
}

// SheetItemResponse represents a count sheet row in API responses
type SheetItemResponse struct {
	ID              uuid.UUID        `json:"id"`
	ItemID          uuid.UUID        `json:"item_id"`
	LocationID      *uuid.UUID       `json:"location_id,omitempty"`
	BookQuantity    decimal.Decimal  `json:"book_quantity"`
	CountedQuantity *decimal.Decimal `json:"counted_quantity,omitempty"`
	Difference      decimal.Decimal  `json:"difference"`
	Counted         bool             `json:"counted"`
	Note            string           `json:"note"`
}

// SheetResponse represents an inventory count sheet in API responses
type SheetResponse struct {
	ID           uuid.UUID           `json:"id"`
	SheetNumber  string              `json:"sheet_number"`
	WarehouseID  uuid.UUID           `json:"warehouse_id"`
	Status       string              `json:"status"`
	StartedAt    *time.Time          `json:"started_at,omitempty"`
	CompletedAt  *time.Time          `json:"completed_at,omitempty"`
	ApprovedAt   *time.Time          `json:"approved_at,omitempty"`
	ApprovedByID *uuid.UUID          `json:"approved_by_id,omitempty"`
	ClosedAt     *time.Time          `json:"closed_at,omitempty"`
	TotalItems   int                 `json:"total_items"`
	CountedItems int                 `json:"counted_items"`
	Notes        string              `json:"notes"`
	Items        []SheetItemResponse `json:"items,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	Version      int                 `json:"version"`
}

// SheetListFilter represents filter options for the sheet list
type SheetListFilter struct {
	WarehouseID *uuid.UUID `form:"warehouse_id"`
	Status      string     `form:"status" binding:"omitempty,oneof=OPEN IN_PROGRESS COMPLETED APPROVED CLOSED"`
	Page        int        `form:"page" binding:"omitempty,min=1"`
	PageSize    int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy     string     `form:"order_by"`
	OrderDir    string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToWarehouseResponse converts a warehouse to its response representation
func ToWarehouseResponse(w *warehousing.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		ID:              w.ID,
		Code:            w.Code,
		Name:            w.Name,
		Address:         w.Address,
		Status:          string(w.Status),
		ValuationMethod: string(w.ValuationMethod),
		Notes:           w.Notes,
		CreatedAt:       w.CreatedAt,
		UpdatedAt:       w.UpdatedAt,
		Version:         w.Version,
	}
}

// ToStockLevelResponse converts a stock level to its response representation
func ToStockLevelResponse(l *warehousing.StockLevel) StockLevelResponse {
	return StockLevelResponse{
		ID:             l.ID,
		ItemID:         l.ItemID,
		WarehouseID:    l.WarehouseID,
		LocationID:     l.LocationID,
		OnHand:         l.OnHand,
		Reserved:       l.Reserved,
		Available:      l.Available(),
		MinQuantity:    l.MinQuantity,
		MaxQuantity:    l.MaxQuantity,
		IsBelowMinimum: l.IsBelowMinimum(),
		IsAboveMaximum: l.IsAboveMaximum(),
		UpdatedAt:      l.UpdatedAt,
		Version:        l.Version,
	}
}

// ToStockLotResponse converts a stock lot to its response representation
func ToStockLotResponse(l *warehousing.StockLot) StockLotResponse {
	return StockLotResponse{
		ID:                l.ID,
		ItemID:            l.ItemID,
		WarehouseID:       l.WarehouseID,
		LocationID:        l.LocationID,
		BatchNumber:       l.BatchNumber,
		RemainingQuantity: l.RemainingQuantity,
		UnitCost:          l.UnitCost,
		TotalValue:        l.TotalValue(),
		AcquiredAt:        l.AcquiredAt,
		Exhausted:         l.Exhausted,
	}
}

// ToStockMoveResponse converts a stock move to its response representation
func ToStockMoveResponse(m *warehousing.StockMove) StockMoveResponse {
	return StockMoveResponse{
		ID:          m.ID,
		ItemID:      m.ItemID,
		WarehouseID: m.WarehouseID,
		LocationID:  m.LocationID,
		MoveType:    string(m.MoveType),
		Quantity:    m.Quantity,
		UnitCost:    m.UnitCost,
		RefKind:     string(m.RefKind),
		RefID:       m.RefID,
		Note:        m.Note,
		MovedAt:     m.MovedAt,
	}
}

// ToReservationResponse converts a reservation to its response representation
func ToReservationResponse(r *warehousing.StockReservation) ReservationResponse {
	return ReservationResponse{
		ID:              r.ID,
		ItemID:          r.ItemID,
		WarehouseID:     r.WarehouseID,
		LocationID:      r.LocationID,
		Quantity:        r.Quantity,
		State:           string(r.State),
		OrderID:         r.OrderID,
		PurchaseOrderID: r.PurchaseOrderID,
		Note:            r.Note,
		ClosedAt:        r.ClosedAt,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
		Version:         r.Version,
	}
}

// ToSheetItemResponse converts a sheet row to its response representation
func ToSheetItemResponse(i *warehousing.InventorySheetItem) SheetItemResponse {
	return SheetItemResponse{
		ID:              i.ID,
		ItemID:          i.ItemID,
		LocationID:      i.LocationID,
		BookQuantity:    i.BookQuantity,
		CountedQuantity: i.CountedQuantity,
		Difference:      i.Difference,
		Counted:         i.Counted,
		Note:            i.Note,
	}
}

// ToSheetResponse converts a sheet to its response representation, rows included
func ToSheetResponse(sh *warehousing.InventorySheet) SheetResponse {
	items := make([]SheetItemResponse, 0, len(sh.Items))
	for idx := range sh.Items {
		items = append(items, ToSheetItemResponse(&sh.Items[idx]))
	}
	return SheetResponse{
		ID:           sh.ID,
		SheetNumber:  sh.SheetNumber,
		WarehouseID:  sh.WarehouseID,
		Status:       string(sh.Status),
		StartedAt:    sh.StartedAt,
		CompletedAt:  sh.CompletedAt,
		ApprovedAt:   sh.ApprovedAt,
		ApprovedByID: sh.ApprovedByID,
		ClosedAt:     sh.ClosedAt,
		TotalItems:   sh.TotalItems,
		CountedItems: sh.CountedItems,
		Notes:        sh.Notes,
		Items:        items,
		CreatedAt:    sh.CreatedAt,
		UpdatedAt:    sh.UpdatedAt,
		Version:      sh.Version,
	}
}

// ToSheetListResponse converts a sheet to its response representation without rows
func ToSheetListResponse(sh *warehousing.InventorySheet) SheetResponse {
	resp := ToSheetResponse(sh)
	resp.Items = nil
	return resp
}

// ToValueOnHandResponse converts a valuation result to its response representation
func ToValueOnHandResponse(itemID, warehouseID uuid.UUID, method warehousing.ValuationMethod, result *warehousing.ValueOnHandResult, estimated bool) ValueOnHandResponse {
	lots := make([]LotValuationResponse, 0, len(result.Lots))
	for _, lv := range result.Lots {
		lots = append(lots, LotValuationResponse{
			LotID:       lv.LotID,
			BatchNumber: lv.BatchNumber,
			Quantity:    lv.Quantity,
			UnitCost:    lv.UnitCost,
			Value:       lv.Value,
			AcquiredAt:  lv.AcquiredAt,
		})
	}
	return ValueOnHandResponse{
		ItemID:          itemID,
		WarehouseID:     warehouseID,
		ValuationMethod: string(method),
		Quantity:        result.Quantity,
		TotalValue:      result.TotalValue,
		AverageUnitCost: result.AverageUnitCost,
		Estimated:       estimated,
		Lots:            lots,
	}
}

// ToCostOfGoodsResponse converts a costing result to its response representation
func ToCostOfGoodsResponse(itemID, warehouseID uuid.UUID, method warehousing.ValuationMethod, result *warehousing.CostOfGoodsResult) CostOfGoodsResponse {
	consumptions := make([]LotConsumptionResponse, 0, len(result.Consumptions))
	for _, c := range result.Consumptions {
		consumptions = append(consumptions, LotConsumptionResponse{
			LotID:          c.LotID,
			BatchNumber:    c.BatchNumber,
			Quantity:       c.Quantity,
			UnitCost:       c.UnitCost,
			Cost:           c.Cost,
			RemainingInLot: c.RemainingInLot,
			Exhausted:      c.Exhausted,
		})
	}
	return CostOfGoodsResponse{
		ItemID:          itemID,
		WarehouseID:     warehouseID,
		ValuationMethod: string(method),
		Quantity:        result.Quantity,
		TotalCost:       result.TotalCost,
		AverageUnitCost: result.AverageUnitCost,
		Consumptions:    consumptions,
	}
}
