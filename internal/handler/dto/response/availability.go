package response

import (
	"time"

	"padel-club-api/internal/usecase/queries"
)

type AvailabilitySlotResponse struct {
	Slot            time.Time `json:"slot"`
	AvailableCourts int       `json:"availableCourts"`
}

type AvailabilityResponse struct {
	Date  string                      `json:"date"`
	Slots []*AvailabilitySlotResponse `json:"slots"`
}

func FromAvailability(date string, views []*queries.AvailabilitySlotView) *AvailabilityResponse {
	slots := make([]*AvailabilitySlotResponse, 0, len(views))
	for _, v := range views {
		slots = append(slots, &AvailabilitySlotResponse{Slot: v.Slot, AvailableCourts: v.AvailableCourts})
	}
	return &AvailabilityResponse{Date: date, Slots: slots}
}
