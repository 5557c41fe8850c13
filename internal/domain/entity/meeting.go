package entity

import "time"

// Estados de reunión. Scheduled -> {Success, Failed}; los dos últimos son terminales.
const (
	MeetingStatusScheduled = "Scheduled"
	MeetingStatusSuccess   = "Success"
	MeetingStatusFailed    = "Failed"
)

// Tipos, prioridades y duraciones ofrecidos al agendar.
var (
	MeetingTypes      = []string{"demo", "discovery", "proposal", "followup", "negotiation", "closing", "other"}
	MeetingPriorities = []string{"high", "medium", "low"}
	MeetingDurations  = []int{30, 45, 60, 90, 120}
)

// DefaultMeetingDuration duración en minutos cuando no se indica.
const DefaultMeetingDuration = 60

// Meeting es una reunión comercial agendada por un usuario.
type Meeting struct {
	ID              string
	OrganizationID  string
	UserID          string // ExternalID del usuario dueño
	Title           string
	ClientName      string
	Date            time.Time
	Time            string // HH:MM
	Type            string
	Priority        string
	DurationMinutes int
	Notes           string
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CanTransitionTo informa si el estado actual admite pasar a next.
func (m *Meeting) CanTransitionTo(next string) bool {
	if m.Status != MeetingStatusScheduled {
		return false
	}
	return next == MeetingStatusSuccess || next == MeetingStatusFailed
}
