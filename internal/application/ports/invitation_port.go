package ports

import (
	"context"

	"github.com/jhoicas/salesflow-api/internal/application/dto"
)

// InvitationSender puerto de salida hacia el canal que entrega la invitación
// (API del proveedor de identidad o correo SMTP).
// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
type InvitationSender interface {
	SendInvitation(ctx context.Context, email string) (*dto.InvitationResult, error)
}
