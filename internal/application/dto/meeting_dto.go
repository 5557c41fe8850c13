package dto

import "time"

// CreateMeetingRequest entrada de POST /api/meetings.
type CreateMeetingRequest struct {
	Title           string `json:"title"`
	ClientName      string `json:"clientName"`
	Date            string `json:"date"` // YYYY-MM-DD
	Time            string `json:"time"` // HH:MM
	Type            string `json:"type"`
	Priority        string `json:"priority"`
	DurationMinutes int    `json:"durationMinutes"`
	Notes           string `json:"notes"`
}

// UpdateMeetingStatusRequest entrada de PATCH /api/meetings/:id/status.
type UpdateMeetingStatusRequest struct {
	Status string `json:"status"`
}

// MeetingResponse salida de una reunión.
type MeetingResponse struct {
	ID              string    `json:"id"`
	OrganizationID  string    `json:"organizationId"`
	UserID          string    `json:"userId"`
	Title           string    `json:"title"`
	ClientName      string    `json:"clientName"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	Type            string    `json:"type,omitempty"`
	Priority        string    `json:"priority,omitempty"`
	DurationMinutes int       `json:"durationMinutes"`
	Notes           string    `json:"notes,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// MeetingListResponse envoltorio {meetings}.
type MeetingListResponse struct {
	Meetings []MeetingResponse `json:"meetings"`
}
