package api

import (
	"errors"
	"net/http"
	"time"

	reqdto "padel-club-api/internal/handler/dto/request"
	resdto "padel-club-api/internal/handler/dto/response"
	"padel-club-api/internal/handler/httperr"
	"padel-club-api/internal/pkg/errs"
	"padel-club-api/internal/usecase/commands"
	"padel-club-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
	loc             *time.Location
}

func NewBookingHandler(
	bookingCommands commands.BookingCommands,
	bookingQueries queries.BookingQueries,
	loc *time.Location,
) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
		loc:             loc,
	}
}

// @Summary Create bookings
// @Description Create one or more bookings for a court; all slots succeed or none do
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingsRequest true "Booking request"
// @Success 201 {object} resdto.CreateBookingsResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) CreateBookings(c *gin.Context) {
	var req reqdto.CreateBookingsRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	result, err := h.bookingCommands.CreateBookings(c.Request.Context(), req.ToCommand())
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrCourtNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Court not found", nil)
		case errors.Is(err, errs.ErrCourtInactive):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Court is not active", nil)
		case errors.Is(err, errs.ErrInvalidTimeSlot):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid time slot", nil)
		case errors.Is(err, errs.ErrSlotConflict):
			httperr.AbortWithError(c, http.StatusConflict, err, "One or more slots are already taken", conflictDetail(err))
		case errors.Is(err, errs.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Validation failed", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to create bookings", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.CreateBookingsResponse{BookingIDs: result.BookingIDs})
}

// @Summary Get booking
// @Description Get booking by ID
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, errs.ErrBookingNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load booking", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List bookings
// @Description List bookings overlapping a club-local date range
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param from query string true "Range start date (YYYY-MM-DD)"
// @Param to query string false "Range end date, exclusive (YYYY-MM-DD, defaults to from+1d)"
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Router /bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	from, err := time.ParseInLocation("2006-01-02", c.Query("from"), h.loc)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid from date, expected YYYY-MM-DD", nil)
		return
	}

	to := from.AddDate(0, 0, 1)
	if toStr := c.Query("to"); toStr != "" {
		to, err = time.ParseInLocation("2006-01-02", toStr, h.loc)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid to date, expected YYYY-MM-DD", nil)
			return
		}
	}
	if !to.After(from) {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.ErrDomainValidation, "to must be after from", nil)
		return
	}

	views, err := h.bookingQueries.ListByRange(c.Request.Context(), from.UTC(), to.UTC())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list bookings", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingViews(views))
}

// @Summary Cancel booking
// @Description Cancel a booking; cancelling twice is a no-op
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [delete]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	if err := h.bookingCommands.CancelBooking(c.Request.Context(), id); err != nil {
		if errors.Is(err, errs.ErrBookingNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to cancel booking", nil)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary List courts
// @Description List all courts with pricing
// @Tags courts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.CourtResponse
// @Router /courts [get]
func (h *BookingHandler) ListCourts(c *gin.Context) {
	views, err := h.bookingQueries.ListCourts(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list courts", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromCourtViews(views))
}

// conflictDetail pulls the unavailable slots out of a conflict error so
// the response names exactly which requested slots were taken.
func conflictDetail(err error) any {
	var conflict *errs.SlotConflictError
	if errors.As(err, &conflict) {
		return gin.H{"unavailableSlots": conflict.Slots}
	}
	return nil
}
