package request

type StartSessionRequest struct {
	StartAmountCents int64 `json:"start_amount_cents" binding:"min=0"`
}

type CloseSessionRequest struct {
	EndAmountCents int64  `json:"end_amount_cents" binding:"min=0"`
	Notes          string `json:"notes,omitempty"`
}

type CreateMovementRequest struct {
	Type        string `json:"type" binding:"required,oneof=in out"`
	AmountCents int64  `json:"amount_cents" binding:"required,min=1"`
	Concept     string `json:"concept" binding:"required"`
}
