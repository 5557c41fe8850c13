package entity

import "time"

// InvitedEmail autorización pendiente para que un email se una a una Organization.
// Email es único; IsUsed pasa a true cuando la persona completa el registro.
type InvitedEmail struct {
	ID             string
	OrganizationID string
	Email          string
	InvitedBy      string // ExternalID del admin que invitó
	IsUsed         bool
	UsedAt         *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
