package dto

import "time"

// InviteRequest entrada de POST /api/admin/invite.
type InviteRequest struct {
	Email string `json:"email"`
}

// SignupRequest entrada de POST /api/auth/signup.
type SignupRequest struct {
	Email string `json:"email"`
}

// InvitedEmailResponse registro de invitación persistido.
type InvitedEmailResponse struct {
	ID             string     `json:"id"`
	OrganizationID string     `json:"organizationId"`
	Email          string     `json:"email"`
	InvitedBy      string     `json:"invitedBy"`
	IsUsed         bool       `json:"isUsed"`
	UsedAt         *time.Time `json:"usedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// InvitationResult lo que devolvió el canal de entrega (IdP o SMTP).
type InvitationResult struct {
	ID           string `json:"id,omitempty"`
	Provider     string `json:"provider"` // "idp" | "smtp"
	EmailAddress string `json:"emailAddress"`
	Status       string `json:"status"`
	URL          string `json:"url,omitempty"`
}

// InviteResponse salida de POST /api/admin/invite.
type InviteResponse struct {
	Success    bool                 `json:"success"`
	Invite     InvitedEmailResponse `json:"invite"`
	Invitation *InvitationResult    `json:"invitation"`
}

// InviteListResponse envoltorio {invites}.
type InviteListResponse struct {
	Invites []InvitedEmailResponse `json:"invites"`
}
