package response

import (
	"time"

	"padel-club-api/internal/domain/cashbox"
	"padel-club-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type CashboxSummaryResponse struct {
	CashSalesCents    int64 `json:"cashSalesCents"`
	CashBookingsCents int64 `json:"cashBookingsCents"`
	MovementsInCents  int64 `json:"movementsInCents"`
	MovementsOutCents int64 `json:"movementsOutCents"`
	ExpectedCents     int64 `json:"expectedCents"`
	DifferenceCents   int64 `json:"differenceCents"`
}

type CashboxSessionResponse struct {
	ID               uuid.UUID               `json:"id"`
	Status           string                  `json:"status"`
	StartAmountCents int64                   `json:"startAmountCents"`
	EndAmountCents   *int64                  `json:"endAmountCents,omitempty"`
	OpenedAt         time.Time               `json:"openedAt"`
	ClosedAt         *time.Time              `json:"closedAt,omitempty"`
	Notes            string                  `json:"notes,omitempty"`
	Summary          *CashboxSummaryResponse `json:"summary,omitempty"`
}

type CashboxMovementResponse struct {
	ID          uuid.UUID `json:"id"`
	SessionID   uuid.UUID `json:"sessionId"`
	Type        string    `json:"type"`
	AmountCents int64     `json:"amountCents"`
	Concept     string    `json:"concept"`
	CreatedAt   time.Time `json:"createdAt"`
}

func FromCashboxSession(s *cashbox.Session) *CashboxSessionResponse {
	resp := &CashboxSessionResponse{
		ID:               s.ID(),
		Status:           string(s.Status()),
		StartAmountCents: s.StartAmountCents(),
		EndAmountCents:   s.EndAmountCents(),
		OpenedAt:         s.OpenedAt(),
		ClosedAt:         s.ClosedAt(),
		Notes:            s.Notes(),
	}
	if sum := s.Summary(); sum != nil {
		resp.Summary = &CashboxSummaryResponse{
			CashSalesCents:    sum.CashSalesCents,
			CashBookingsCents: sum.CashBookingsCents,
			MovementsInCents:  sum.MovementsInCents,
			MovementsOutCents: sum.MovementsOutCents,
			ExpectedCents:     sum.ExpectedCents,
			DifferenceCents:   sum.DifferenceCents,
		}
	}
	return resp
}

func FromCashboxMovement(m *cashbox.Movement) *CashboxMovementResponse {
	return &CashboxMovementResponse{
		ID:          m.ID(),
		SessionID:   m.SessionID(),
		Type:        string(m.Kind()),
		AmountCents: m.AmountCents(),
		Concept:     m.Concept(),
		CreatedAt:   m.CreatedAt(),
	}
}

func FromCashboxSessionView(view *queries.CashboxSessionView) *CashboxSessionResponse {
	var resp CashboxSessionResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromCashboxMovementViews(views []*queries.CashboxMovementView) []*CashboxMovementResponse {
	resps := make([]*CashboxMovementResponse, 0, len(views))
	for _, v := range views {
		var resp CashboxMovementResponse
		_ = copier.Copy(&resp, v)
		resps = append(resps, &resp)
	}
	return resps
}
