package response

import (
	"github.com/google/uuid"
)

type WebhookAckResponse struct {
	Status string `json:"status"`
}

type PendingCreatedResponse struct {
	ReferenceID string    `json:"referenceId"`
	ID          uuid.UUID `json:"id"`
}
