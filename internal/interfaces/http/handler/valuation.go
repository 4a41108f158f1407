package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	warehousingapp "github.com/stockcraft/backend/internal/application/warehousing"
)

// ValuationHandler handles inventory valuation API endpoints
type ValuationHandler struct {
	BaseHandler
	valuationService *warehousingapp.ValuationService
}

// NewValuationHandler creates a new ValuationHandler
func NewValuationHandler(valuationService *warehousingapp.ValuationService) *ValuationHandler {
	return &ValuationHandler{
		valuationService: valuationService,
	}
}

// ValueOnHand handles GET /valuation/on-hand
//
// The method query parameter overrides the warehouse default for this
// request only.
func (h *ValuationHandler) ValueOnHand(c *gin.Context) {
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

	result, err := h.valuationService.ValueOnHand(c.Request.Context(), itemID, warehouseID, c.Query("method"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// CostOfGoods handles POST /valuation/cost-of-goods
func (h *ValuationHandler) CostOfGoods(c *gin.Context) {
	var req warehousingapp.CostOfGoodsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.valuationService.CostOfGoods(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}
