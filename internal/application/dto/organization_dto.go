package dto

import "time"

// UpdateOrganizationRequest entrada de PUT /api/organization. Campos nil no se modifican.
type UpdateOrganizationRequest struct {
	Name        *string `json:"name"`
	Address     *string `json:"address"`
	Industry    *string `json:"industry"`
	Description *string `json:"description"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Website     *string `json:"website"`
}

// OrganizationResponse salida de una organización.
type OrganizationResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Industry    string    `json:"industry"`
	Description string    `json:"description"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Website     string    `json:"website"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
