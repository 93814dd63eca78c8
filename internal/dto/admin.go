package dto

import (
	"time"

	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ResetBalanceRequestDTO struct {
	Reason string `json:"reason" example:"test account cleanup"`
}

type BalanceAdjustmentResponseDTO struct {
	UserID          uuid.UUID       `json:"user_id"`
	ActorID         uuid.UUID       `json:"actor_id"`
	PreviousBalance decimal.Decimal `json:"previous_balance" swaggertype:"string" example:"120.00"`
	NewBalance      decimal.Decimal `json:"new_balance" swaggertype:"string" example:"0"`
	Reason          string          `json:"reason"`
	CreatedAt       string          `json:"created_at" example:"2024-05-01T16:09:57Z"`
}

func NewBalanceAdjustmentResponse(adj *domain.BalanceAdjustment) BalanceAdjustmentResponseDTO {
	return BalanceAdjustmentResponseDTO{
		UserID:          adj.UserID,
		ActorID:         adj.ActorID,
		PreviousBalance: adj.PreviousBalance,
		NewBalance:      adj.NewBalance,
		Reason:          adj.Reason,
		CreatedAt:       adj.CreatedAt.Format(time.RFC3339),
	}
}
