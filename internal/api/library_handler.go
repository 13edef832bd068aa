package api

import (
	"coachplus/coachlog/internal/domain"
	"coachplus/coachlog/internal/service"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// LibraryHandler serves the saved block library and the monthly focus.
type LibraryHandler struct {
	cal    domain.Calendar
	blocks service.BlockService
	focus  service.FocusService
}

func NewLibraryHandler(cal domain.Calendar, blocks service.BlockService, focus service.FocusService) *LibraryHandler {
	return &LibraryHandler{cal: cal, blocks: blocks, focus: focus}
}

type SaveBlockRequest struct {
	Title   string `json:"title"`
	Content string `json:"content" binding:"required"`
}

type SaveFocusRequest struct {
	Month string `json:"month" binding:"required"` // YYYY-MM
	Goals string `json:"goals"`
	Focus string `json:"focus"`
}

type FocusResponse struct {
	ID    string `json:"id"`
	Month string `json:"month"`
	Goals string `json:"goals"`
	Focus string `json:"focus"`
}

func MapFocusToResponse(f domain.MonthlyFocus) FocusResponse {
	return FocusResponse{
		ID:    f.ID,
		Month: time.Date(f.Year, f.Month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01"),
		Goals: f.Goals,
		Focus: f.Focus,
	}
}

func (h *LibraryHandler) ListBlocks(c *gin.Context) {
	c.JSON(http.StatusOK, h.blocks.List(c.Request.Context()))
}

func (h *LibraryHandler) SaveBlock(c *gin.Context) {
	var req SaveBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	block, err := h.blocks.Save(c.Request.Context(), req.Title, req.Content)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, block)
}

func (h *LibraryHandler) DeleteBlock(c *gin.Context) {
	if err := h.blocks.Delete(c.Request.Context(), c.Param("id")); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetFocus returns the focus for the :month path parameter (YYYY-MM).
func (h *LibraryHandler) GetFocus(c *gin.Context) {
	month, err := h.cal.ParseMonth(c.Param("month"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	focus, ok := h.focus.ForMonth(c.Request.Context(), month)
	if !ok {
		abortWithError(c, http.StatusNotFound, "No focus set for that month")
		return
	}
	c.JSON(http.StatusOK, MapFocusToResponse(focus))
}

func (h *LibraryHandler) SaveFocus(c *gin.Context) {
	var req SaveFocusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	month, err := h.cal.ParseMonth(req.Month)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	focus, err := h.focus.Save(c.Request.Context(), month, req.Goals, req.Focus)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapFocusToResponse(focus))
}
