package dto

import (
	"time"

	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequestDTO is phrased from the caller's side: with
// request=false the caller pays the counterpart, with request=true the
// caller asks the counterpart for money.
type CreateTransactionRequestDTO struct {
	CounterpartID    uuid.UUID       `json:"counterpart_id" example:"4f1c2d8e-6a7b-4c3d-9e0f-1a2b3c4d5e6f"`
	Amount           decimal.Decimal `json:"amount" swaggertype:"string" example:"25.50"`
	Currency         string          `json:"currency,omitempty" example:"MXN"`
	Description      string          `json:"description,omitempty" example:"Tacos"`
	Category         string          `json:"category,omitempty" example:"food"`
	Request          bool            `json:"request"`
	Status           string          `json:"status,omitempty" example:"complete"`
	ActorClabe       string          `json:"actor_clabe,omitempty"`
	CounterpartClabe string          `json:"counterpart_clabe,omitempty"`
}

type TransitionStatusRequestDTO struct {
	Status string `json:"status" example:"complete"`
}

type TransactionResponseDTO struct {
	ID                uuid.UUID       `json:"transaction_id"`
	OriginUserID      uuid.UUID       `json:"origin_user_id"`
	DestinationUserID uuid.UUID       `json:"destination_user_id"`
	Amount            decimal.Decimal `json:"amount" swaggertype:"string" example:"25.50"`
	Currency          string          `json:"currency" example:"MXN"`
	Description       string          `json:"description,omitempty"`
	Category          string          `json:"category" example:"transportation"`
	Request           bool            `json:"request"`
	Direction         string          `json:"direction" example:"outbound"`
	Status            string          `json:"status" example:"pending"`
	CreatedAt         string          `json:"transaction_datetime" example:"2024-05-01T16:09:57Z"`
}

func NewTransactionResponse(tx domain.Transaction) TransactionResponseDTO {
	return TransactionResponseDTO{
		ID:                tx.ID,
		OriginUserID:      tx.OriginUserID,
		DestinationUserID: tx.DestinationUserID,
		Amount:            tx.Amount,
		Currency:          tx.Currency,
		Description:       tx.Description,
		Category:          tx.Category,
		Request:           tx.Request,
		Direction:         string(tx.Direction),
		Status:            string(tx.Status),
		CreatedAt:         tx.CreatedAt.Format(time.RFC3339),
	}
}

func NewTransactionsResponse(txs []domain.Transaction) []TransactionResponseDTO {
	response := make([]TransactionResponseDTO, 0, len(txs))
	for _, tx := range txs {
		response = append(response, NewTransactionResponse(tx))
	}
	return response
}
