package dto

import (
	"github.com/google/uuid"
)

/* ===================== Requests ===================== */

type RegisterRequest struct {
	ManagerName     string `json:"manager_name" validate:"required,min=2"`
	ManagerEmail    string `json:"manager_email" validate:"required,email"`
	ManagerPhone    string `json:"manager_phone" validate:"required"`
	ManagerPassword string `json:"manager_password" validate:"required,min=8"`
}

type LoginRequest struct {
	ManagerEmail    string `json:"manager_email" validate:"required,email"`
	ManagerPassword string `json:"manager_password" validate:"required"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

/* ===================== Responses ===================== */

type ManagerResponse struct {
	ManagerID     uuid.UUID `json:"manager_id"`
	ManagerName   string    `json:"manager_name"`
	ManagerEmail  string    `json:"manager_email"`
	ManagerPhone  string    `json:"manager_phone"`
	ManagerStatus string    `json:"manager_status"`
}

type TokenResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	Manager      ManagerResponse `json:"manager"`
}
