package api

import (
	"coachplus/coachlog/internal/domain"
	"coachplus/coachlog/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type TemplateHandler struct {
	templates service.TemplateService
}

func NewTemplateHandler(templates service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

// TemplateRequest is used for both create and full replace.
type TemplateRequest struct {
	Name                   string   `json:"name" binding:"required"`
	Sections               []string `json:"sections"`
	Intensity              float64  `json:"intensity" binding:"min=0,max=1"`
	LiveMinutes            int      `json:"liveMinutes" binding:"min=0"`
	IncludesResistanceWork bool     `json:"includesResistanceWork"`
	DefaultTime            string   `json:"defaultTime"` // HH:MM
}

func (r TemplateRequest) toDomain() (domain.Template, error) {
	tpl := domain.Template{
		Name:                   r.Name,
		Sections:               r.Sections,
		Intensity:              r.Intensity,
		LiveMinutes:            r.LiveMinutes,
		IncludesResistanceWork: r.IncludesResistanceWork,
	}
	if r.DefaultTime != "" {
		tod, err := domain.ParseTimeOfDay(r.DefaultTime)
		if err != nil {
			return domain.Template{}, err
		}
		tpl.DefaultTime = tod
	}
	return tpl, nil
}

func (h *TemplateHandler) bind(c *gin.Context) (domain.Template, bool) {
	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return domain.Template{}, false
	}
	tpl, err := req.toDomain()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return domain.Template{}, false
	}
	return tpl, true
}

func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, h.templates.List(c.Request.Context()))
}

// CreateTemplate godoc
// @Summary Save a reusable session template
// @Tags Templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param template body TemplateRequest true "Template"
// @Success 201 {object} domain.Template
// @Failure 400 {object} gin.H "Missing name or sections"
// @Router /templates [post]
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	tpl, ok := h.bind(c)
	if !ok {
		return
	}
	created, err := h.templates.Create(c.Request.Context(), tpl)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ReplaceTemplate swaps the whole template stored under :id.
func (h *TemplateHandler) ReplaceTemplate(c *gin.Context) {
	tpl, ok := h.bind(c)
	if !ok {
		return
	}
	replaced, err := h.templates.Replace(c.Request.Context(), c.Param("id"), tpl)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, replaced)
}

func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	if err := h.templates.Delete(c.Request.Context(), c.Param("id")); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
