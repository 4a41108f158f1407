package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	warehousingapp "github.com/stockcraft/backend/internal/application/warehousing"
)

// StockHandler handles stock level, lot and move API endpoints
type StockHandler struct {
	BaseHandler
	stockService *warehousingapp.StockService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stockService *warehousingapp.StockService) *StockHandler {
	return &StockHandler{
		stockService: stockService,
	}
}

// Receive handles POST /stock/receive
func (h *StockHandler) Receive(c *gin.Context) {
	var req warehousingapp.ReceiveStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	level, err := h.stockService.ReceiveStock(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, level)
}

// Lookup handles GET /stock/levels/lookup
func (h *StockHandler) Lookup(c *gin.Context) {
	itemID, err := uuid.Parse(c.Query("item_id"))
	if err != nil {
		h.BadRequest(c, "Invalid or missing item_id")
		return
	}
	warehouseID, err := uuid.Parse(c.Query("warehouse_id"))
	if err != nil {
		h.BadRequest(c, "Invalid or missing warehouse_id")
		return
	}

	var locationID *uuid.UUID
	if raw := c.Query("location_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid location_id")
			return
		}
		locationID = &parsed
	}

	level, err := h.stockService.GetStockLevel(c.Request.Context(), itemID, warehouseID, locationID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, level)
}

// ListByWarehouse handles GET /stock/warehouses/:warehouse_id/levels
func (h *StockHandler) ListByWarehouse(c *gin.Context) {
	warehouseID, err := uuid.Parse(c.Param("warehouse_id"))
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID format")
		return
	}

	var filter warehousingapp.StockLevelListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	levels, err := h.stockService.ListStockLevels(c.Request.Context(), warehouseID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, levels)
}

// ListBelowMinimum handles GET /stock/levels/alerts/low-stock
func (h *StockHandler) ListBelowMinimum(c *gin.Context) {
	var filter warehousingapp.StockLevelListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	levels, err := h.stockService.ListBelowMinimum(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, levels)
}

// SetThresholds handles PUT /stock/thresholds
func (h *StockHandler) SetThresholds(c *gin.Context) {
	var req warehousingapp.SetThresholdsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	level, err := h.stockService.SetThresholds(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, level)
}

// TotalOnHandResponse carries the summed on-hand quantity of an item
type TotalOnHandResponse struct {
	ItemID uuid.UUID `json:"item_id"`
	Total  string    `json:"total"`
}

// TotalOnHand handles GET /stock/items/:item_id/total
func (h *StockHandler) TotalOnHand(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	total, err := h.stockService.TotalOnHandByItem(c.Request.Context(), itemID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, TotalOnHandResponse{ItemID: itemID, Total: total.String()})
}

// ListLots handles GET /stock/lots
func (h *StockHandler) ListLots(c *gin.Context) {
	itemID, err := uuid.Parse(c.Query("item_id"))
	if err != nil {
		h.BadRequest(c, "Invalid or missing item_id")
		return
	}
	warehouseID, err := uuid.Parse(c.Query("warehouse_id"))
	if err != nil {
		h.BadRequest(c, "Invalid or missing warehouse_id")
		return
	}

	openOnly := false
	if raw := c.Query("open_only"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			h.BadRequest(c, "Invalid open_only value")
			return
		}
		openOnly = parsed
	}

	lots, err := h.stockService.ListLots(c.Request.Context(), itemID, warehouseID, openOnly)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, lots)
}

// ListMoves handles GET /stock/moves
func (h *StockHandler) ListMoves(c *gin.Context) {
	var filter warehousingapp.MoveListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	moves, total, err := h.stockService.ListMoves(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, moves, total, filter.Page, filter.PageSize)
}

// ListMovesByReference handles GET /stock/moves/reference/:ref_kind/:ref_id
func (h *StockHandler) ListMovesByReference(c *gin.Context) {
	refID, err := uuid.Parse(c.Param("ref_id"))
	if err != nil {
		h.BadRequest(c, "Invalid reference ID format")
		return
	}

	moves, err := h.stockService.ListMovesByReference(c.Request.Context(), c.Param("ref_kind"), refID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, moves)
}
