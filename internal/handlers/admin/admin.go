package admin

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/GlebRadaev/payledger/internal/dto"
	"github.com/GlebRadaev/payledger/internal/handlers/respond"
	"github.com/GlebRadaev/payledger/pkg/utils"
	"github.com/google/uuid"
)

type Service interface {
	ResetBalance(ctx context.Context, actorID, userID uuid.UUID, reason string) (*domain.BalanceAdjustment, error)
}

type AdminHandler struct {
	ledgerService Service
}

func New(ledgerService Service) *AdminHandler {
	return &AdminHandler{
		ledgerService: ledgerService,
	}
}

// ResetBalance godoc
//
//	@Summary		Reset a user's balance to zero
//	@Description	Administrative correction outside the ledger. The previous balance is kept in an audit row.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string						true	"User id"
//	@Param			request	body		dto.ResetBalanceRequestDTO	false	"Reason"
//	@Success		200		{object}	dto.BalanceAdjustmentResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		403		{object}	utils.Response	"Admin role required"
//	@Failure		404		{object}	utils.Response	"User not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/users/{id}/balance/reset [post]
func (h *AdminHandler) ResetBalance(w http.ResponseWriter, r *http.Request) {
	actorID, ok := respond.UserID(w, r)
	if !ok {
		return
	}
	userID, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.ResetBalanceRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	adj, err := h.ledgerService.ResetBalance(r.Context(), actorID, userID, req.Reason)
	if err != nil {
		respond.Error(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewBalanceAdjustmentResponse(adj))
}
