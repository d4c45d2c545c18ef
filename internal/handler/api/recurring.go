package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	reqdto "padel-club-api/internal/handler/dto/request"
	resdto "padel-club-api/internal/handler/dto/response"
	"padel-club-api/internal/handler/httperr"
	"padel-club-api/internal/pkg/clock"
	"padel-club-api/internal/pkg/errs"
	"padel-club-api/internal/usecase/commands"
	"padel-club-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RecurringHandler struct {
	recurringCommands commands.RecurringCommands
	recurringQueries  queries.RecurringQueries
	horizonDays       int
	loc               *time.Location
	clock             clock.Clock
}

func NewRecurringHandler(
	recurringCommands commands.RecurringCommands,
	recurringQueries queries.RecurringQueries,
	horizonDays int,
	loc *time.Location,
	clk clock.Clock,
) *RecurringHandler {
	return &RecurringHandler{
		recurringCommands: recurringCommands,
		recurringQueries:  recurringQueries,
		horizonDays:       horizonDays,
		loc:               loc,
		clock:             clk,
	}
}

// @Summary Create recurring booking
// @Description Register a weekly fixed booking template
// @Tags recurring
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateTemplateRequest true "Template"
// @Success 201 {object} map[string]string
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /recurring [post]
func (h *RecurringHandler) CreateTemplate(c *gin.Context) {
	var req reqdto.CreateTemplateRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	id, err := h.recurringCommands.CreateTemplate(c.Request.Context(), req.ToCommand())
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrCourtNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Court not found", nil)
		case errors.Is(err, errs.ErrTemplateConflict):
			httperr.AbortWithError(c, http.StatusConflict, err, "An active template already covers this slot", nil)
		case errors.Is(err, errs.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Validation failed", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to create template", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id.String()})
}

// @Summary Update recurring booking
// @Description Replace a weekly template's definition; already materialized bookings are not touched
// @Tags recurring
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Param request body reqdto.CreateTemplateRequest true "Template"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /recurring/{id} [put]
func (h *RecurringHandler) UpdateTemplate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid template ID format", nil)
		return
	}

	var req reqdto.CreateTemplateRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	if err := h.recurringCommands.UpdateTemplate(c.Request.Context(), id, req.ToCommand()); err != nil {
		switch {
		case errors.Is(err, errs.ErrTemplateNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Template not found", nil)
		case errors.Is(err, errs.ErrCourtNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Court not found", nil)
		case errors.Is(err, errs.ErrTemplateConflict):
			httperr.AbortWithError(c, http.StatusConflict, err, "An active template already covers this slot", nil)
		case errors.Is(err, errs.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Validation failed", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to update template", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary List recurring bookings
// @Description List weekly templates, optionally including deactivated ones
// @Tags recurring
// @Produce json
// @Security BearerAuth
// @Param include_inactive query bool false "Include deactivated templates"
// @Success 200 {array} resdto.TemplateResponse
// @Router /recurring [get]
func (h *RecurringHandler) ListTemplates(c *gin.Context) {
	includeInactive, _ := strconv.ParseBool(c.Query("include_inactive"))

	views, err := h.recurringQueries.List(c.Request.Context(), includeInactive)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list templates", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromTemplateViews(views))
}

// @Summary Get recurring booking
// @Description Get a weekly template by ID
// @Tags recurring
// @Produce json
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Success 200 {object} resdto.TemplateResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /recurring/{id} [get]
func (h *RecurringHandler) GetTemplate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid template ID format", nil)
		return
	}

	view, err := h.recurringQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, errs.ErrTemplateNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Template not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load template", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromTemplateView(view))
}

// @Summary Deactivate recurring booking
// @Description Deactivate a weekly template; bookings already materialized are kept
// @Tags recurring
// @Produce json
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /recurring/{id} [delete]
func (h *RecurringHandler) DeactivateTemplate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid template ID format", nil)
		return
	}

	if err := h.recurringCommands.DeactivateTemplate(c.Request.Context(), id); err != nil {
		if errors.Is(err, errs.ErrTemplateNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Template not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to deactivate template", nil)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Expand recurring bookings
// @Description Materialize templates for the horizon date; normally run by the scheduler, exposed for manual re-runs
// @Tags recurring
// @Produce json
// @Security BearerAuth
// @Param date query string false "Override as-of date (YYYY-MM-DD, defaults to now)"
// @Success 200 {object} resdto.ExpandResponse
// @Failure 400 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /recurring/expand [post]
func (h *RecurringHandler) Expand(c *gin.Context) {
	asOf := h.clock.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		// The override is a club-local calendar date, not a UTC one.
		parsed, err := time.ParseInLocation("2006-01-02", dateStr, h.loc)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date format, expected YYYY-MM-DD", nil)
			return
		}
		asOf = parsed
	}

	result, err := h.recurringCommands.Expand(c.Request.Context(), asOf, h.horizonDays)
	if err != nil {
		if errors.Is(err, errs.ErrDomainValidation) {
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "As-of date cannot be in the past", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to expand templates", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromExpandResult(result))
}
