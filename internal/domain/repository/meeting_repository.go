package repository

import (
	"context"

	"github.com/jhoicas/salesflow-api/internal/domain/entity"
)

// MeetingRepository define el puerto de persistencia para Meeting.
type MeetingRepository interface {
	Create(ctx context.Context, meeting *entity.Meeting) error
	GetByID(ctx context.Context, organizationID, id string) (*entity.Meeting, error)
	// UpdateStatus cambia el estado solo si el estado actual es expected.
	// Devuelve domain.ErrConflict si otra petición lo cambió antes.
	UpdateStatus(ctx context.Context, organizationID, id, expected, next string) error
	ListByOrganization(ctx context.Context, organizationID string) ([]*entity.Meeting, error)
	ListByUser(ctx context.Context, organizationID, userID string) ([]*entity.Meeting, error)
}
