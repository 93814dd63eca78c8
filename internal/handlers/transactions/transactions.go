package transactions

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/GlebRadaev/payledger/internal/dto"
	"github.com/GlebRadaev/payledger/internal/handlers/respond"
	"github.com/GlebRadaev/payledger/internal/service/transactionservice"
	"github.com/GlebRadaev/payledger/pkg/utils"
	"github.com/google/uuid"
)

type Service interface {
	CreateTransaction(ctx context.Context, req transactionservice.CreateRequest) (*domain.Transaction, error)
	TransitionStatus(ctx context.Context, actorID, transactionID uuid.UUID, status domain.TransactionStatus) (*domain.Transaction, error)
	GetTransaction(ctx context.Context, userID, transactionID uuid.UUID) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, userID uuid.UUID) ([]domain.Transaction, error)
}

type TransactionHandler struct {
	transactionService Service
}

func New(transactionService Service) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// CreateTransaction godoc
//
//	@Summary		Pay or request money
//	@Description	With request=false the caller pays the counterpart and balances move at once.
//	@Description	With request=true a pending transaction is created and the counterpart is notified.
//	@Tags			Transactions
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		dto.CreateTransactionRequestDTO	true	"Transaction"
//	@Success		201		{object}	dto.TransactionResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid transaction"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		404		{object}	utils.Response	"Counterpart not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/transactions [post]
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.UserID(w, r)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tx, err := h.transactionService.CreateTransaction(r.Context(), transactionservice.CreateRequest{
		ActorID:          userID,
		CounterpartID:    req.CounterpartID,
		ActorClabe:       req.ActorClabe,
		CounterpartClabe: req.CounterpartClabe,
		Amount:           req.Amount,
		Currency:         req.Currency,
		Description:      req.Description,
		Category:         req.Category,
		IsRequest:        req.Request,
		Status:           domain.TransactionStatus(req.Status),
	})
	if err != nil {
		respond.Error(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.NewTransactionResponse(*tx))
}

// TransitionStatus godoc
//
//	@Summary		Resolve a pending transaction
//	@Description	Only the payer may move a pending transaction to complete or rejected.
//	@Description	Repeating the current terminal status is a no-op.
//	@Tags			Transactions
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string							true	"Transaction id"
//	@Param			request	body		dto.TransitionStatusRequestDTO	true	"Target status"
//	@Success		200		{object}	dto.TransactionResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid status"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		403		{object}	utils.Response	"Caller is not the payer"
//	@Failure		404		{object}	utils.Response	"Transaction not found"
//	@Failure		409		{object}	utils.Response	"Transaction already resolved differently"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/transactions/{id}/status [patch]
func (h *TransactionHandler) TransitionStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.UserID(w, r)
	if !ok {
		return
	}
	transactionID, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.TransitionStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tx, err := h.transactionService.TransitionStatus(r.Context(), userID, transactionID, domain.TransactionStatus(req.Status))
	if err != nil {
		respond.Error(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewTransactionResponse(*tx))
}

// GetTransaction godoc
//
//	@Summary	Get a transaction
//	@Tags		Transactions
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Transaction id"
//	@Success	200	{object}	dto.TransactionResponseDTO
//	@Failure	401	{object}	utils.Response	"User not authorized"
//	@Failure	404	{object}	utils.Response	"Transaction not found"
//	@Failure	500	{object}	utils.Response	"Internal server error"
//	@Router		/api/transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.UserID(w, r)
	if !ok {
		return
	}
	transactionID, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}

	tx, err := h.transactionService.GetTransaction(r.Context(), userID, transactionID)
	if err != nil {
		respond.Error(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewTransactionResponse(*tx))
}

// ListTransactions godoc
//
//	@Summary		List transactions
//	@Description	Transactions the caller takes part in, newest first, with direction relative to the caller
//	@Tags			Transactions
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		dto.TransactionResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/transactions [get]
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.UserID(w, r)
	if !ok {
		return
	}

	txs, err := h.transactionService.ListTransactions(r.Context(), userID)
	if err != nil {
		respond.Error(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewTransactionsResponse(txs))
}
