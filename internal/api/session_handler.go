package api

import (
	"coachplus/coachlog/internal/domain"
	"coachplus/coachlog/internal/service"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// SessionHandler serves the per-day log entries.
type SessionHandler struct {
	cal       domain.Calendar
	sessions  service.SessionManager
	search    service.SearchService
	templates service.TemplateService
}

func NewSessionHandler(cal domain.Calendar, sessions service.SessionManager, search service.SearchService, templates service.TemplateService) *SessionHandler {
	return &SessionHandler{cal: cal, sessions: sessions, search: search, templates: templates}
}

// --- DTOs ---

type CompetitionRequest struct {
	Name    string `json:"name" binding:"required"`
	Results string `json:"results"`
}

// SessionContentRequest is the content shared by single and recurring creation.
type SessionContentRequest struct {
	Time                   string              `json:"time" binding:"omitempty"` // HH:MM, configured default when empty
	Kind                   string              `json:"kind" binding:"required"`
	Sections               []string            `json:"sections"`
	Intensity              float64             `json:"intensity" binding:"min=0,max=1"`
	LiveMinutes            int                 `json:"liveMinutes" binding:"min=0"`
	IncludesResistanceWork bool                `json:"includesResistanceWork"`
	Competition            *CompetitionRequest `json:"competition"`
}

type CreateSessionRequest struct {
	Day string `json:"day" binding:"required"` // YYYY-MM-DD
	SessionContentRequest
}

type CreateRecurringRequest struct {
	StartDay string `json:"startDay" binding:"required"`
	EndDay   string `json:"endDay" binding:"required"`
	Pattern  string `json:"pattern"`
	SessionContentRequest
}

type FromTemplateRequest struct {
	TemplateID string `json:"templateId" binding:"required"`
	Day        string `json:"day" binding:"required"`
}

// SessionResponse is a Session plus its display strings.
type SessionResponse struct {
	ID                     string                  `json:"id"`
	Day                    string                  `json:"day"`
	Time                   string                  `json:"time"`
	Date                   time.Time               `json:"date"`
	Kind                   domain.Kind             `json:"kind"`
	Sections               []string                `json:"sections"`
	Intensity              float64                 `json:"intensity"`
	IsFromTemplate         bool                    `json:"isFromTemplate"`
	IncludesResistanceWork bool                    `json:"includesResistanceWork"`
	LiveMinutes            int                     `json:"liveMinutes"`
	Competition            *domain.CompetitionInfo `json:"competition,omitempty"`
	Title                  string                  `json:"title"`
	Summary                string                  `json:"summary"`
	DisplayIntensity       string                  `json:"displayIntensity,omitempty"`
	Details                string                  `json:"details,omitempty"`
}

type RecurrenceResponse struct {
	Created      []SessionResponse `json:"created"`
	Failed       []string          `json:"failed,omitempty"`
	NotAttempted []string          `json:"notAttempted,omitempty"`
}

func MapSessionToResponse(cal domain.Calendar, s domain.Session) SessionResponse {
	return SessionResponse{
		ID:                     s.ID,
		Day:                    cal.DayKey(s.Date),
		Time:                   domain.TimeOfDayOf(cal.In(s.Date)).String(),
		Date:                   s.Date,
		Kind:                   s.Kind,
		Sections:               s.Sections,
		Intensity:              s.Intensity,
		IsFromTemplate:         s.IsFromTemplate,
		IncludesResistanceWork: s.IncludesResistanceWork,
		LiveMinutes:            s.LiveMinutes,
		Competition:            s.Competition,
		Title:                  s.DisplayTitle(),
		Summary:                s.DisplaySummary(),
		DisplayIntensity:       s.DisplayIntensity(),
		Details:                s.DisplayDetails(),
	}
}

func MapSessionsToResponse(cal domain.Calendar, sessions []domain.Session) []SessionResponse {
	responses := make([]SessionResponse, len(sessions))
	for i, s := range sessions {
		responses[i] = MapSessionToResponse(cal, s)
	}
	return responses
}

func (h *SessionHandler) mapReport(r service.RecurrenceReport) RecurrenceResponse {
	resp := RecurrenceResponse{Created: MapSessionsToResponse(h.cal, r.Created)}
	for _, d := range r.Failed {
		resp.Failed = append(resp.Failed, h.cal.DayKey(d))
	}
	for _, d := range r.NotAttempted {
		resp.NotAttempted = append(resp.NotAttempted, h.cal.DayKey(d))
	}
	return resp
}

// content converts the shared request fields. The returned time is zero when
// no time was given.
func (h *SessionHandler) content(day time.Time, req SessionContentRequest) (service.CreateSessionInput, error) {
	kind, err := domain.ParseKind(req.Kind)
	if err != nil {
		return service.CreateSessionInput{}, err
	}
	in := service.CreateSessionInput{
		Day:                    day,
		Kind:                   kind,
		Sections:               req.Sections,
		Intensity:              req.Intensity,
		IncludesResistanceWork: req.IncludesResistanceWork,
		LiveMinutes:            req.LiveMinutes,
	}
	if req.Time != "" {
		tod, err := domain.ParseTimeOfDay(req.Time)
		if err != nil {
			return service.CreateSessionInput{}, err
		}
		in.Time = h.cal.MergeTimeOfDay(day, tod)
	}
	if req.Competition != nil {
		in.Competition = &domain.CompetitionInfo{Name: req.Competition.Name, Results: req.Competition.Results}
	}
	return in, nil
}

// --- Handler Methods ---

// CreateSession godoc
// @Summary Log a session for one day
// @Description Replaces whatever was logged for the same day.
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param session body CreateSessionRequest true "Session details"
// @Success 201 {object} SessionResponse
// @Failure 400 {object} gin.H "Empty sections, bad kind or bad date"
// @Failure 403 {object} gin.H "Role may not write"
// @Failure 500 {object} gin.H "Storage error"
// @Router /sessions [post]
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	day, err := h.cal.ParseDay(req.Day)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	in, err := h.content(day, req.SessionContentRequest)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.sessions.CreateSession(c.Request.Context(), in)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapSessionToResponse(h.cal, session))
}

// CreateRecurring godoc
// @Summary Log the same session on a series of days
// @Description Stops at the first storage failure; the response lists created, failed and skipped days.
// @Tags Sessions
// @Router /sessions/recurring [post]
func (h *SessionHandler) CreateRecurring(c *gin.Context) {
	var req CreateRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	start, err := h.cal.ParseDay(req.StartDay)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	end, err := h.cal.ParseDay(req.EndDay)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	pattern, err := domain.ParseRecurrencePattern(req.Pattern)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	in, err := h.content(start, req.SessionContentRequest)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.sessions.CreateRecurringSessions(c.Request.Context(), service.RecurringInput{
		Start:                  start,
		End:                    end,
		Pattern:                pattern,
		Time:                   in.Time,
		Kind:                   in.Kind,
		Sections:               in.Sections,
		Intensity:              in.Intensity,
		IncludesResistanceWork: in.IncludesResistanceWork,
		LiveMinutes:            in.LiveMinutes,
		Competition:            in.Competition,
	})
	if err != nil {
		code := statusFor(err)
		if code == http.StatusBadRequest {
			abortWithError(c, code, err.Error())
			return
		}
		c.AbortWithStatusJSON(code, gin.H{"error": "Recurring batch stopped early", "report": h.mapReport(report)})
		return
	}
	c.JSON(http.StatusCreated, h.mapReport(report))
}

// CreateFromTemplate logs a practice from a saved template.
func (h *SessionHandler) CreateFromTemplate(c *gin.Context) {
	var req FromTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	day, err := h.cal.ParseDay(req.Day)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	tpl, err := h.templates.Get(c.Request.Context(), req.TemplateID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	session, err := h.sessions.CreateFromTemplate(c.Request.Context(), tpl, day)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapSessionToResponse(h.cal, session))
}

// GetSession returns the entry for the :day path parameter.
func (h *SessionHandler) GetSession(c *gin.Context) {
	day, err := h.cal.ParseDay(c.Param("day"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	session, ok := h.sessions.SessionForDay(c.Request.Context(), day)
	if !ok {
		abortWithServiceError(c, service.ErrSessionNotFound)
		return
	}
	c.JSON(http.StatusOK, MapSessionToResponse(h.cal, session))
}

func (h *SessionHandler) ListSessions(c *gin.Context) {
	c.JSON(http.StatusOK, MapSessionsToResponse(h.cal, h.sessions.ListSessions(c.Request.Context())))
}

// DeleteSession removes the entry for :day. Deleting an empty day succeeds.
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	day, err := h.cal.ParseDay(c.Param("day"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.sessions.DeleteSession(c.Request.Context(), day); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Search filters by ?q=, ?kind= and ?minPerformance=, newest first.
func (h *SessionHandler) Search(c *gin.Context) {
	q := service.SearchQuery{Text: c.Query("q")}
	if kind := c.Query("kind"); kind != "" {
		k, err := domain.ParseKind(kind)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		q.Kind = k
	}
	if raw := c.Query("minPerformance"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || v > 1 {
			abortWithError(c, http.StatusBadRequest, "minPerformance must be a number between 0 and 1")
			return
		}
		q.MinPerformance = v
	}
	c.JSON(http.StatusOK, MapSessionsToResponse(h.cal, h.search.Search(c.Request.Context(), q)))
}
