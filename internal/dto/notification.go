package dto

import (
	"time"

	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/google/uuid"
)

type RespondRequestDTO struct {
	Response string `json:"response" example:"accept"`
}

type NotificationResponseDTO struct {
	ID        uuid.UUID      `json:"notification_id"`
	SenderID  *uuid.UUID     `json:"sender_id,omitempty"`
	Text      string         `json:"notification_text" example:"You have a new friend request from @ana"`
	Type      string         `json:"notification_type" example:"friend_request"`
	Status    string         `json:"notification_status" example:"unread"`
	Metadata  map[string]any `json:"notification_metadata,omitempty"`
	CreatedAt string         `json:"notification_datetime" example:"2024-05-01T16:09:57Z"`
}

func NewNotificationResponse(n domain.Notification) NotificationResponseDTO {
	resp := NotificationResponseDTO{
		ID:        n.ID,
		Text:      n.Text,
		Type:      string(n.Type),
		Status:    string(n.Status),
		Metadata:  n.Metadata,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
	if n.SenderID.Valid {
		sender := n.SenderID.UUID
		resp.SenderID = &sender
	}
	return resp
}

func NewNotificationsResponse(ns []domain.Notification) []NotificationResponseDTO {
	response := make([]NotificationResponseDTO, 0, len(ns))
	for _, n := range ns {
		response = append(response, NewNotificationResponse(n))
	}
	return response
}
