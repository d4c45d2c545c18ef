package response

import (
	"time"

	"padel-club-api/internal/usecase/commands"
	"padel-club-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type TemplateResponse struct {
	ID            uuid.UUID  `json:"id"`
	CourtID       uuid.UUID  `json:"courtId"`
	CourtName     string     `json:"courtName"`
	CustomerName  string     `json:"customerName"`
	CustomerPhone string     `json:"customerPhone"`
	DayOfWeek     int        `json:"dayOfWeek"`
	StartTime     string     `json:"startTime"`
	DurationMin   int        `json:"durationMinutes"`
	PriceCents    int64      `json:"priceCents"`
	PaymentMethod string     `json:"paymentMethod"`
	IsPaid        bool       `json:"isPaid"`
	IsActive      bool       `json:"isActive"`
	ValidFrom     time.Time  `json:"validFrom"`
	ValidTo       *time.Time `json:"validTo,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

type ExpandResponse struct {
	TargetDate string `json:"targetDate"`
	Created    int    `json:"created"`
	Skipped    int    `json:"skipped"`
}

func FromTemplateView(view *queries.TemplateView) *TemplateResponse {
	var resp TemplateResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromTemplateViews(views []*queries.TemplateView) []*TemplateResponse {
	resps := make([]*TemplateResponse, 0, len(views))
	for _, v := range views {
		resps = append(resps, FromTemplateView(v))
	}
	return resps
}

func FromExpandResult(result *commands.ExpandResult) *ExpandResponse {
	return &ExpandResponse{
		TargetDate: result.TargetDate.Format("2006-01-02"),
		Created:    len(result.Created),
		Skipped:    result.Skipped,
	}
}
