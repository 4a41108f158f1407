package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	warehousingapp "github.com/stockcraft/backend/internal/application/warehousing"
)

// SheetHandler handles inventory count sheet API endpoints
type SheetHandler struct {
	BaseHandler
	countService *warehousingapp.CountService
}

// NewSheetHandler creates a new SheetHandler
func NewSheetHandler(countService *warehousingapp.CountService) *SheetHandler {
	return &SheetHandler{
		countService: countService,
	}
}

// Create handles POST /sheets
func (h *SheetHandler) Create(c *gin.Context) {
	var req warehousingapp.CreateSheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sheet, err := h.countService.CreateSheet(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, sheet)
}

// GetByID handles GET /sheets/:id
func (h *SheetHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sheet ID format")
		return
	}

	sheet, err := h.countService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sheet)
}

// List handles GET /sheets
func (h *SheetHandler) List(c *gin.Context) {
	var filter warehousingapp.SheetListFilter
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

	sheets, total, err := h.countService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, sheets, total, filter.Page, filter.PageSize)
}

// RecordCount handles POST /sheets/:id/counts
func (h *SheetHandler) RecordCount(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sheet ID format")
		return
	}

	var req warehousingapp.RecordCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sheet, err := h.countService.RecordCount(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sheet)
}

// Complete handles POST /sheets/:id/complete
func (h *SheetHandler) Complete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sheet ID format")
		return
	}

	sheet, err := h.countService.Complete(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sheet)
}

// Approve handles POST /sheets/:id/approve
func (h *SheetHandler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sheet ID format")
		return
	}

	var req warehousingapp.ApproveSheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sheet, err := h.countService.Approve(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sheet)
}

// RevertApproval handles POST /sheets/:id/revert-approval
func (h *SheetHandler) RevertApproval(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sheet ID format")
		return
	}

	sheet, err := h.countService.RevertApproval(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sheet)
}

// Close handles POST /sheets/:id/close
func (h *SheetHandler) Close(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sheet ID format")
		return
	}

	sheet, err := h.countService.Close(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sheet)
}

// Delete handles DELETE /sheets/:id
func (h *SheetHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sheet ID format")
		return
	}

	if err := h.countService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
