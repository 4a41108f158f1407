package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	warehousingapp "github.com/stockcraft/backend/internal/application/warehousing"
)

// ReservationHandler handles stock reservation API endpoints
type ReservationHandler struct {
	BaseHandler
	reservationService *warehousingapp.ReservationService
}

// NewReservationHandler creates a new ReservationHandler
func NewReservationHandler(reservationService *warehousingapp.ReservationService) *ReservationHandler {
	return &ReservationHandler{
		reservationService: reservationService,
	}
}

// Reserve handles POST /reservations
func (h *ReservationHandler) Reserve(c *gin.Context) {
	var req warehousingapp.ReserveStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	reservation, err := h.reservationService.Reserve(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, reservation)
}

// GetByID handles GET /reservations/:id
func (h *ReservationHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid reservation ID format")
		return
	}

	reservation, err := h.reservationService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, reservation)
}

// List handles GET /reservations
func (h *ReservationHandler) List(c *gin.Context) {
	var filter warehousingapp.ReservationListFilter
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

	reservations, total, err := h.reservationService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, reservations, total, filter.Page, filter.PageSize)
}

// ListByReference handles GET /reservations/reference/:ref_kind/:ref_id
func (h *ReservationHandler) ListByReference(c *gin.Context) {
	refID, err := uuid.Parse(c.Param("ref_id"))
	if err != nil {
		h.BadRequest(c, "Invalid reference ID format")
		return
	}

	reservations, err := h.reservationService.ListByReference(c.Request.Context(), c.Param("ref_kind"), refID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, reservations)
}

// UpdateQuantity handles PUT /reservations/:id/quantity
func (h *ReservationHandler) UpdateQuantity(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid reservation ID format")
		return
	}

	var req warehousingapp.UpdateReservationQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	reservation, err := h.reservationService.UpdateQuantity(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, reservation)
}

// Ship handles POST /reservations/:id/ship
func (h *ReservationHandler) Ship(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid reservation ID format")
		return
	}

	reservation, err := h.reservationService.Ship(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, reservation)
}

// Cancel handles POST /reservations/:id/cancel
func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid reservation ID format")
		return
	}

	reservation, err := h.reservationService.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, reservation)
}

// Release handles DELETE /reservations/:id
func (h *ReservationHandler) Release(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid reservation ID format")
		return
	}

	if err := h.reservationService.Release(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Available handles GET /reservations/available
func (h *ReservationHandler) Available(c *gin.Context) {
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

	available, err := h.reservationService.AvailableStock(c.Request.Context(), itemID, warehouseID, locationID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, available)
}
