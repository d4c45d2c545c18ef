package api

import (
	"errors"
	"net/http"

	"padel-club-api/internal/domain/cashbox"
	reqdto "padel-club-api/internal/handler/dto/request"
	resdto "padel-club-api/internal/handler/dto/response"
	"padel-club-api/internal/handler/httperr"
	"padel-club-api/internal/pkg/errs"
	"padel-club-api/internal/usecase/commands"
	"padel-club-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CashboxHandler struct {
	cashboxCommands commands.CashboxCommands
	cashboxQueries  queries.CashboxQueries
}

func NewCashboxHandler(cashboxCommands commands.CashboxCommands, cashboxQueries queries.CashboxQueries) *CashboxHandler {
	return &CashboxHandler{
		cashboxCommands: cashboxCommands,
		cashboxQueries:  cashboxQueries,
	}
}

// @Summary Open cashbox session
// @Description Open the cash drawer with a counted starting float; only one session may be open
// @Tags cashbox
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.StartSessionRequest true "Opening float"
// @Success 201 {object} resdto.CashboxSessionResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /cashbox/sessions [post]
func (h *CashboxHandler) StartSession(c *gin.Context) {
	var req reqdto.StartSessionRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	session, err := h.cashboxCommands.StartSession(c.Request.Context(), req.StartAmountCents)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrSessionAlready):
			httperr.AbortWithError(c, http.StatusConflict, err, "A cashbox session is already open", nil)
		case errors.Is(err, errs.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Validation failed", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to open session", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromCashboxSession(session))
}

// @Summary Close cashbox session
// @Description Close the open session with the counted end amount; the cash summary is frozen at this point
// @Tags cashbox
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CloseSessionRequest true "Counted cash"
// @Success 200 {object} resdto.CashboxSessionResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /cashbox/sessions/close [post]
func (h *CashboxHandler) CloseSession(c *gin.Context) {
	var req reqdto.CloseSessionRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	session, err := h.cashboxCommands.CloseSession(c.Request.Context(), req.EndAmountCents, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrNoOpenSession):
			httperr.AbortWithError(c, http.StatusConflict, err, "No open cashbox session", nil)
		case errors.Is(err, errs.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Validation failed", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to close session", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromCashboxSession(session))
}

// @Summary Register cash movement
// @Description Record a manual cash in/out against the open session
// @Tags cashbox
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateMovementRequest true "Movement"
// @Success 201 {object} resdto.CashboxMovementResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /cashbox/movements [post]
func (h *CashboxHandler) RegisterMovement(c *gin.Context) {
	var req reqdto.CreateMovementRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	movement, err := h.cashboxCommands.RegisterMovement(
		c.Request.Context(), cashbox.MovementType(req.Type), req.AmountCents, req.Concept)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrNoOpenSession):
			httperr.AbortWithError(c, http.StatusConflict, err, "No open cashbox session", nil)
		case errors.Is(err, errs.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Validation failed", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to register movement", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromCashboxMovement(movement))
}

// @Summary Current cashbox session
// @Description Get the open session, if any
// @Tags cashbox
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.CashboxSessionResponse
// @Failure 404 {object} httperr.Response
// @Router /cashbox/sessions/current [get]
func (h *CashboxHandler) GetCurrentSession(c *gin.Context) {
	view, err := h.cashboxQueries.GetCurrent(c.Request.Context())
	if err != nil {
		if errors.Is(err, errs.ErrNoOpenSession) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "No open cashbox session", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load session", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromCashboxSessionView(view))
}

// @Summary Last closed cashbox session
// @Description Get the most recently closed session with its frozen summary
// @Tags cashbox
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.CashboxSessionResponse
// @Failure 404 {object} httperr.Response
// @Router /cashbox/sessions/last [get]
func (h *CashboxHandler) GetLastClosedSession(c *gin.Context) {
	view, err := h.cashboxQueries.GetLastClosed(c.Request.Context())
	if err != nil {
		if errors.Is(err, errs.ErrNoOpenSession) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "No closed session yet", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load session", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromCashboxSessionView(view))
}

// @Summary List session movements
// @Description List manual cash movements for a session
// @Tags cashbox
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {array} resdto.CashboxMovementResponse
// @Failure 400 {object} httperr.Response
// @Router /cashbox/sessions/{id}/movements [get]
func (h *CashboxHandler) ListMovements(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid session ID format", nil)
		return
	}

	views, err := h.cashboxQueries.ListMovements(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list movements", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromCashboxMovementViews(views))
}
