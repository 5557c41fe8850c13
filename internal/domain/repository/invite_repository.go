package repository

import (
	"context"

	"github.com/jhoicas/salesflow-api/internal/domain/entity"
)

// InviteRepository define el puerto de persistencia para InvitedEmail.
type InviteRepository interface {
	// Create persiste la invitación; devuelve domain.ErrAlreadyInvited si el email ya existe.
	Create(ctx context.Context, invite *entity.InvitedEmail) error
	GetByEmail(ctx context.Context, email string) (*entity.InvitedEmail, error)
	// Rearm vuelve a dejar pendiente una invitación ya usada.
	// domain.ErrNotInvited si no hay fila; domain.ErrAlreadyInvited si sigue pendiente.
	Rearm(ctx context.Context, invite *entity.InvitedEmail) error
	// MarkUsed marca la invitación como usada; domain.ErrNotInvited si no existe pendiente.
	MarkUsed(ctx context.Context, email string) error
	ListPending(ctx context.Context, organizationID string) ([]*entity.InvitedEmail, error)
}
