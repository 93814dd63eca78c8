package notifications

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/GlebRadaev/payledger/internal/dto"
	"github.com/GlebRadaev/payledger/internal/handlers/respond"
	"github.com/GlebRadaev/payledger/pkg/utils"
	"github.com/google/uuid"
)

type Service interface {
	ListNotifications(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, userID, notificationID uuid.UUID) error
}

type Responder interface {
	RespondToRequest(ctx context.Context, userID, notificationID uuid.UUID, response domain.Response) (*domain.Notification, error)
}

type NotificationHandler struct {
	notificationService Service
	responder           Responder
}

func New(notificationService Service, responder Responder) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		responder:           responder,
	}
}

// ListNotifications godoc
//
//	@Summary	List notifications
//	@Tags		Notifications
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}		dto.NotificationResponseDTO
//	@Failure	401	{object}	utils.Response	"User not authorized"
//	@Failure	500	{object}	utils.Response	"Internal server error"
//	@Router		/api/notifications [get]
func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.UserID(w, r)
	if !ok {
		return
	}

	ns, err := h.notificationService.ListNotifications(r.Context(), userID)
	if err != nil {
		respond.Error(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewNotificationsResponse(ns))
}

// MarkAsRead godoc
//
//	@Summary	Mark a notification as read
//	@Tags		Notifications
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Notification id"
//	@Success	204
//	@Failure	401	{object}	utils.Response	"User not authorized"
//	@Failure	403	{object}	utils.Response	"Notification belongs to another user"
//	@Failure	404	{object}	utils.Response	"Notification not found"
//	@Failure	500	{object}	utils.Response	"Internal server error"
//	@Router		/api/notifications/{id}/read [post]
func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.UserID(w, r)
	if !ok {
		return
	}
	notificationID, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.notificationService.MarkAsRead(r.Context(), userID, notificationID); err != nil {
		respond.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RespondToRequest godoc
//
//	@Summary		Answer a payment or friend request
//	@Description	Routes accept or reject to the request the notification refers to, then marks it read.
//	@Tags			Notifications
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string					true	"Notification id"
//	@Param			request	body		dto.RespondRequestDTO	true	"accept or reject"
//	@Success		200		{object}	dto.NotificationResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid response or metadata"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		403		{object}	utils.Response	"Notification belongs to another user"
//	@Failure		404		{object}	utils.Response	"Notification not found"
//	@Failure		409		{object}	utils.Response	"Notification already answered"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/notifications/{id}/respond [post]
func (h *NotificationHandler) RespondToRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.UserID(w, r)
	if !ok {
		return
	}
	notificationID, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.RespondRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	n, err := h.responder.RespondToRequest(r.Context(), userID, notificationID, domain.Response(req.Response))
	if err != nil {
		respond.Error(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewNotificationResponse(*n))
}
