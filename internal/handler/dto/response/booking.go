package response

import (
	"time"

	"padel-club-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID                uuid.UUID  `json:"id"`
	CourtID           uuid.UUID  `json:"courtId"`
	CourtName         string     `json:"courtName"`
	CustomerName      string     `json:"customerName"`
	CustomerPhone     string     `json:"customerPhone"`
	StartTime         time.Time  `json:"startTime"`
	EndTime           time.Time  `json:"endTime"`
	PriceCents        int64      `json:"priceCents"`
	Status            string     `json:"status"`
	IsPaid            bool       `json:"isPaid"`
	PaidAt            *time.Time `json:"paidAt,omitempty"`
	PaymentMethod     string     `json:"paymentMethod"`
	ExternalPaymentID *string    `json:"externalPaymentId,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

type CourtResponse struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	CourtType         string    `json:"courtType"`
	PricePerHourCents int64     `json:"pricePerHourCents"`
	IsActive          bool      `json:"isActive"`
}

type CreateBookingsResponse struct {
	BookingIDs []uuid.UUID `json:"bookingIds"`
}

func FromBookingView(view *queries.BookingView) *BookingResponse {
	var resp BookingResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromBookingViews(views []*queries.BookingView) []*BookingResponse {
	resps := make([]*BookingResponse, 0, len(views))
	for _, v := range views {
		resps = append(resps, FromBookingView(v))
	}
	return resps
}

func FromCourtView(view *queries.CourtView) *CourtResponse {
	var resp CourtResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromCourtViews(views []*queries.CourtView) []*CourtResponse {
	resps := make([]*CourtResponse, 0, len(views))
	for _, v := range views {
		resps = append(resps, FromCourtView(v))
	}
	return resps
}
