package dto

import "github.com/google/uuid"

type RegisterRequestDTO struct {
	Handle   string `json:"handle" example:"ana"`
	Name     string `json:"name" example:"Ana Lopez"`
	Phone    string `json:"phone" example:"+525512345678"`
	Password string `json:"password" example:"s3cret-pass"`
}

type RegisterResponseDTO struct {
	Message string    `json:"message"`
	UserID  uuid.UUID `json:"user_id"`
}

type LoginRequestDTO struct {
	Handle   string `json:"handle" example:"ana"`
	Password string `json:"password" example:"s3cret-pass"`
}

type LoginResponseDTO struct {
	Message string `json:"message"`
}
