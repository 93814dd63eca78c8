package dto

import (
	"time"

	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/google/uuid"
)

type SendFriendRequestDTO struct {
	Handle string `json:"handle" example:"@beto"`
}

type AcceptFriendRequestDTO struct {
	SenderID uuid.UUID `json:"sender_id"`
}

type FriendResponseDTO struct {
	UserID     uuid.UUID `json:"user_id"`
	Name       string    `json:"name" example:"Beto Ruiz"`
	Handle     string    `json:"handle" example:"beto"`
	FriendedAt string    `json:"friended_at" example:"2024-05-01T16:09:57Z"`
}

func NewFriendsResponse(friends []domain.Friend) []FriendResponseDTO {
	response := make([]FriendResponseDTO, 0, len(friends))
	for _, f := range friends {
		response = append(response, FriendResponseDTO{
			UserID:     f.UserID,
			Name:       f.Name,
			Handle:     f.Handle,
			FriendedAt: f.FriendedAt.Format(time.RFC3339),
		})
	}
	return response
}
