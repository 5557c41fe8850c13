package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/salesflow-api/internal/application/dto"
	"github.com/jhoicas/salesflow-api/internal/domain"
	"github.com/jhoicas/salesflow-api/internal/domain/entity"
	"github.com/jhoicas/salesflow-api/internal/domain/repository"
)

// MeetingUseCase agenda de reuniones y registro de su resultado.
type MeetingUseCase struct {
	repo repository.MeetingRepository
}

// NewMeetingUseCase construye el caso de uso.
func NewMeetingUseCase(repo repository.MeetingRepository) *MeetingUseCase {
	return &MeetingUseCase{repo: repo}
}

// Create agenda una reunión en estado Scheduled.
func (uc *MeetingUseCase) Create(ctx context.Context, p dto.Principal, in dto.CreateMeetingRequest) (*dto.MeetingResponse, error) {
	if p.ExternalID == "" || p.OrganizationID == "" {
		return nil, domain.ErrUnauthorized
	}
	title, err := requireText("title", in.Title)
	if err != nil {
		return nil, err
	}
	clientName, err := requireText("clientName", in.ClientName)
	if err != nil {
		return nil, err
	}
	date, err := parseDate("date", in.Date)
	if err != nil {
		return nil, err
	}
	clock, err := parseClock("time", in.Time)
	if err != nil {
		return nil, err
	}
	meetingType, err := optionalOneOf("type", in.Type, "", entity.MeetingTypes)
	if err != nil {
		return nil, err
	}
	priority, err := optionalOneOf("priority", in.Priority, "medium", entity.MeetingPriorities)
	if err != nil {
		return nil, err
	}
	duration := in.DurationMinutes
	if duration == 0 {
		duration = entity.DefaultMeetingDuration
	}
	if !validDuration(duration) {
		return nil, domain.NewValidationError("durationMinutes", "valores permitidos: 30, 45, 60, 90, 120")
	}

	now := time.Now().UTC()
	m := &entity.Meeting{
		ID:              uuid.New().String(),
		OrganizationID:  p.OrganizationID,
		UserID:          p.ExternalID,
		Title:           title,
		ClientName:      clientName,
		Date:            date,
		Time:            clock,
		Type:            meetingType,
		Priority:        priority,
		DurationMinutes: duration,
		Notes:           in.Notes,
		Status:          entity.MeetingStatusScheduled,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("crear reunión: %w", err)
	}
	out := ToMeetingResponse(m)
	return &out, nil
}

// ListOrganization reuniones del tenant.
func (uc *MeetingUseCase) ListOrganization(ctx context.Context, p dto.Principal) ([]dto.MeetingResponse, error) {
	list, err := uc.repo.ListByOrganization(ctx, p.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("listar reuniones: %w", err)
	}
	return ToMeetingResponses(list), nil
}

// ListMine reuniones del llamante.
func (uc *MeetingUseCase) ListMine(ctx context.Context, p dto.Principal) ([]dto.MeetingResponse, error) {
	list, err := uc.repo.ListByUser(ctx, p.OrganizationID, p.ExternalID)
	if err != nil {
		return nil, fmt.Errorf("listar mis reuniones: %w", err)
	}
	return ToMeetingResponses(list), nil
}

// UpdateStatus registra el resultado de una reunión: Scheduled → Success | Failed.
// Solo el dueño o un admin. Cualquier otra transición devuelve domain.ErrInvalidTransition.
func (uc *MeetingUseCase) UpdateStatus(ctx context.Context, p dto.Principal, id string, in dto.UpdateMeetingStatusRequest) (*dto.MeetingResponse, error) {
	next, err := requireText("status", in.Status)
	if err != nil {
		return nil, err
	}
	next = titleStatus(next)
	if next != entity.MeetingStatusSuccess && next != entity.MeetingStatusFailed && next != entity.MeetingStatusScheduled {
		return nil, domain.NewValidationError("status", "valores permitidos: Success, Failed")
	}

	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	m, err := uc.repo.GetByID(ctx, p.OrganizationID, id)
	if err != nil {
		return nil, fmt.Errorf("obtener reunión: %w", err)
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	if m.UserID != p.ExternalID && !p.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if !m.CanTransitionTo(next) {
		return nil, domain.ErrInvalidTransition
	}
	if err := uc.repo.UpdateStatus(ctx, p.OrganizationID, id, m.Status, next); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.ErrInvalidTransition
		}
		return nil, fmt.Errorf("actualizar reunión: %w", err)
	}
	m.Status = next
	m.UpdatedAt = time.Now().UTC()
	out := ToMeetingResponse(m)
	return &out, nil
}

func validDuration(minutes int) bool {
	for _, d := range entity.MeetingDurations {
		if d == minutes {
			return true
		}
	}
	return false
}
