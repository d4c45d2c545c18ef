package api

import (
	"net/http"
	"time"

	resdto "padel-club-api/internal/handler/dto/response"
	"padel-club-api/internal/handler/httperr"
	"padel-club-api/internal/pkg/clock"
	"padel-club-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	availabilityQueries queries.AvailabilityQueries
	loc                 *time.Location
	clock               clock.Clock
}

func NewAvailabilityHandler(availabilityQueries queries.AvailabilityQueries, loc *time.Location, clk clock.Clock) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityQueries: availabilityQueries,
		loc:                 loc,
		clock:               clk,
	}
}

// @Summary Get availability
// @Description Per-slot count of free courts for one club-local date
// @Tags availability
// @Produce json
// @Param date query string false "Date in YYYY-MM-DD (defaults to today, club time)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Router /availability [get]
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		dateStr = h.clock.Now().In(h.loc).Format("2006-01-02")
	}

	date, err := time.ParseInLocation("2006-01-02", dateStr, h.loc)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date format, expected YYYY-MM-DD", nil)
		return
	}

	slots, err := h.availabilityQueries.ForDate(c.Request.Context(), date.Year(), date.Month(), date.Day())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load availability", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromAvailability(dateStr, slots))
}
