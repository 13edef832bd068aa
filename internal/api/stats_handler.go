package api

import (
	"coachplus/coachlog/internal/domain"
	"coachplus/coachlog/internal/service"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	cal   domain.Calendar
	stats service.StatsService
	focus service.FocusService
}

func NewStatsHandler(cal domain.Calendar, stats service.StatsService, focus service.FocusService) *StatsHandler {
	return &StatsHandler{cal: cal, stats: stats, focus: focus}
}

type WeekStatsResponse struct {
	Anchor    string        `json:"anchor"`
	Year      int           `json:"year"`
	Week      int           `json:"week"`
	WeekStart string        `json:"weekStart"`
	Stats     service.Stats `json:"stats"`
}

type MonthStatsResponse struct {
	Anchor string         `json:"anchor"`
	Month  string         `json:"month"`
	Stats  service.Stats  `json:"stats"`
	Focus  *FocusResponse `json:"focus,omitempty"`
}

// anchor reads ?anchor=YYYY-MM-DD, defaulting to today.
func (h *StatsHandler) anchor(c *gin.Context) (time.Time, bool) {
	raw := c.Query("anchor")
	if raw == "" {
		return h.cal.StartOfDay(time.Now()), true
	}
	anchor, err := h.cal.ParseDay(raw)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return time.Time{}, false
	}
	return anchor, true
}

func (h *StatsHandler) Week(c *gin.Context) {
	anchor, ok := h.anchor(c)
	if !ok {
		return
	}
	year, week := h.cal.WeekOfYear(anchor)
	c.JSON(http.StatusOK, WeekStatsResponse{
		Anchor:    h.cal.DayKey(anchor),
		Year:      year,
		Week:      week,
		WeekStart: h.cal.DayKey(h.cal.StartOfWeek(anchor)),
		Stats:     h.stats.Week(c.Request.Context(), anchor),
	})
}

// Month includes the month's focus when one is set.
func (h *StatsHandler) Month(c *gin.Context) {
	anchor, ok := h.anchor(c)
	if !ok {
		return
	}
	resp := MonthStatsResponse{
		Anchor: h.cal.DayKey(anchor),
		Month:  h.cal.In(anchor).Format("2006-01"),
		Stats:  h.stats.Month(c.Request.Context(), anchor),
	}
	if focus, found := h.focus.ForMonth(c.Request.Context(), anchor); found {
		f := MapFocusToResponse(focus)
		resp.Focus = &f
	}
	c.JSON(http.StatusOK, resp)
}
