package api

import (
	"errors"
	"log/slog"
	"net/http"

	reqdto "padel-club-api/internal/handler/dto/request"
	resdto "padel-club-api/internal/handler/dto/response"
	"padel-club-api/internal/handler/httperr"
	"padel-club-api/internal/pkg/errs"
	"padel-club-api/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentCommands commands.PaymentCommands
}

func NewPaymentHandler(paymentCommands commands.PaymentCommands) *PaymentHandler {
	return &PaymentHandler{paymentCommands: paymentCommands}
}

// @Summary Payment webhook
// @Description Reconcile a payment provider notification. Acknowledges with
// @Description 200 for every resolvable outcome so the provider stops retrying;
// @Description only transient storage failures return 5xx.
// @Tags payments
// @Accept json
// @Produce json
// @Param request body reqdto.WebhookNotification true "Provider notification"
// @Success 200 {object} resdto.WebhookAckResponse
// @Failure 500 {object} httperr.Response
// @Router /payments/webhook [post]
func (h *PaymentHandler) Webhook(c *gin.Context) {
	var req reqdto.WebhookNotification
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		slog.Warn("unparseable payment webhook payload", "error", bindErr)
		c.JSON(http.StatusOK, resdto.WebhookAckResponse{Status: commands.OutcomeIgnored})
		return
	}

	result, err := h.paymentCommands.Reconcile(c.Request.Context(), req.ToCommand())
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrPendingNotFound),
			errors.Is(err, errs.ErrSlotConflict),
			errors.Is(err, errs.ErrStockShortfall),
			errors.Is(err, errs.ErrCourtNotFound),
			errors.Is(err, errs.ErrDomainValidation):
			// Unresolvable notifications are acked so the provider does not
			// retry them forever. The details stay in the logs.
			slog.Warn("payment notification not applied",
				"payment_id", req.PaymentID,
				"reference_id", req.ReferenceID,
				"error", err)
			c.JSON(http.StatusOK, resdto.WebhookAckResponse{Status: commands.OutcomeIgnored})
		case errors.Is(err, errs.ErrDuplicateNotification):
			c.JSON(http.StatusOK, resdto.WebhookAckResponse{Status: commands.OutcomeDuplicate})
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to process notification", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.WebhookAckResponse{Status: result.Outcome})
}

// @Summary Create pending payment
// @Description Register a checkout intent for court slots before redirecting to the payment provider
// @Tags payments
// @Accept json
// @Produce json
// @Param request body reqdto.CreatePendingPaymentRequest true "Pending payment request"
// @Success 201 {object} resdto.PendingCreatedResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /payments/pending [post]
func (h *PaymentHandler) CreatePendingPayment(c *gin.Context) {
	var req reqdto.CreatePendingPaymentRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	id, err := h.paymentCommands.CreatePendingPayment(c.Request.Context(), req.ToCommand())
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrCourtNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Court not found", nil)
		case errors.Is(err, errs.ErrCourtInactive):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Court is not active", nil)
		case errors.Is(err, errs.ErrSlotConflict):
			httperr.AbortWithError(c, http.StatusConflict, err, "One or more slots are already taken", conflictDetail(err))
		case errors.Is(err, errs.ErrInvalidTimeSlot):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid time slot", nil)
		case errors.Is(err, errs.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Validation failed", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to create pending payment", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.PendingCreatedResponse{ReferenceID: req.ReferenceID, ID: id})
}

// @Summary Create pending sale
// @Description Register a kiosk sale intent before redirecting to the payment provider
// @Tags payments
// @Accept json
// @Produce json
// @Param request body reqdto.CreatePendingSaleRequest true "Pending sale request"
// @Success 201 {object} resdto.PendingCreatedResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /sales/pending [post]
func (h *PaymentHandler) CreatePendingSale(c *gin.Context) {
	var req reqdto.CreatePendingSaleRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	id, err := h.paymentCommands.CreatePendingSale(c.Request.Context(), req.ToCommand())
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrProductNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Product not found", nil)
		case errors.Is(err, errs.ErrStockShortfall):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Insufficient stock", nil)
		case errors.Is(err, errs.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Validation failed", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to create pending sale", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.PendingCreatedResponse{ReferenceID: req.ReferenceID, ID: id})
}
