package friends

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/GlebRadaev/payledger/internal/dto"
	"github.com/GlebRadaev/payledger/internal/handlers/respond"
	"github.com/GlebRadaev/payledger/internal/service/friendservice"
	"github.com/GlebRadaev/payledger/pkg/utils"
	"github.com/google/uuid"
)

type Service interface {
	SendFriendRequest(ctx context.Context, currentUserID uuid.UUID, handle string) (*friendservice.FriendRequestResult, error)
	AcceptFriendRequest(ctx context.Context, requestID, senderID, receiverID uuid.UUID) error
	RejectFriendRequest(ctx context.Context, receiverID, requestID uuid.UUID) error
	ListFriends(ctx context.Context, userID uuid.UUID) ([]domain.Friend, error)
}

type FriendHandler struct {
	friendService Service
}

func New(friendService Service) *FriendHandler {
	return &FriendHandler{
		friendService: friendService,
	}
}

// SendFriendRequest godoc
//
//	@Summary		Send a friend request
//	@Description	Refusals (unknown handle, already friends, request pending) come back as success=false with a message.
//	@Tags			Friends
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		dto.SendFriendRequestDTO	true	"Receiver handle"
//	@Success		200		{object}	friendservice.FriendRequestResult
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/friends/requests [post]
func (h *FriendHandler) SendFriendRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.UserID(w, r)
	if !ok {
		return
	}

	var req dto.SendFriendRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.friendService.SendFriendRequest(r.Context(), userID, req.Handle)
	if err != nil {
		respond.Error(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, result)
}

// AcceptFriendRequest godoc
//
//	@Summary		Accept a friend request
//	@Description	Only the receiver may accept. Both friendship edges are created atomically.
//	@Tags			Friends
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path	string						true	"Friend request id"
//	@Param			request	body	dto.AcceptFriendRequestDTO	true	"Sender of the request"
//	@Success		204
//	@Failure		400	{object}	utils.Response	"Sender does not match"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Caller is not the receiver"
//	@Failure		404	{object}	utils.Response	"Friend request not found"
//	@Failure		409	{object}	utils.Response	"Friend request already answered"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/friends/requests/{id}/accept [post]
func (h *FriendHandler) AcceptFriendRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.UserID(w, r)
	if !ok {
		return
	}
	requestID, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.AcceptFriendRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.friendService.AcceptFriendRequest(r.Context(), requestID, req.SenderID, userID); err != nil {
		respond.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RejectFriendRequest godoc
//
//	@Summary	Reject a friend request
//	@Tags		Friends
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Friend request id"
//	@Success	204
//	@Failure	401	{object}	utils.Response	"User not authorized"
//	@Failure	403	{object}	utils.Response	"Caller is not the receiver"
//	@Failure	404	{object}	utils.Response	"Friend request not found"
//	@Failure	409	{object}	utils.Response	"Friend request already answered"
//	@Failure	500	{object}	utils.Response	"Internal server error"
//	@Router		/api/friends/requests/{id}/reject [post]
func (h *FriendHandler) RejectFriendRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.UserID(w, r)
	if !ok {
		return
	}
	requestID, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.friendService.RejectFriendRequest(r.Context(), userID, requestID); err != nil {
		respond.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListFriends godoc
//
//	@Summary	List friends
//	@Tags		Friends
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}		dto.FriendResponseDTO
//	@Failure	401	{object}	utils.Response	"User not authorized"
//	@Failure	500	{object}	utils.Response	"Internal server error"
//	@Router		/api/friends [get]
func (h *FriendHandler) ListFriends(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.UserID(w, r)
	if !ok {
		return
	}

	friends, err := h.friendService.ListFriends(r.Context(), userID)
	if err != nil {
		respond.Error(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewFriendsResponse(friends))
}
