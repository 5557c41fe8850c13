package dto

import "time"

// ProvisionUserRequest entrada opcional de POST /api/users.
type ProvisionUserRequest struct {
	FullName string `json:"fullName"`
	Name     string `json:"name"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID             string    `json:"id"`
	ExternalID     string    `json:"externalId"`
	OrganizationID string    `json:"organizationId"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	IsActive       bool      `json:"isActive"`
	JoinDate       string    `json:"joinDate"` // YYYY-MM-DD
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// UpdateUserStatusRequest entrada de PATCH /api/admin/users/:id/status.
type UpdateUserStatusRequest struct {
	IsActive *bool `json:"isActive"`
}

// DeleteUserResponse confirmación del servidor tras eliminar un usuario.
type DeleteUserResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

// LoginRequest entrada del emisor local de tokens.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token firmado + usuario.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
