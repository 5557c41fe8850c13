package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/salesflow-api/internal/application/dto"
	"github.com/jhoicas/salesflow-api/internal/application/ports"
	"github.com/jhoicas/salesflow-api/internal/application/usecase"
	"github.com/jhoicas/salesflow-api/internal/domain"
	"github.com/jhoicas/salesflow-api/internal/domain/entity"
	"github.com/jhoicas/salesflow-api/internal/domain/repository"
	"github.com/jhoicas/salesflow-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens locales.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// InviteTxRunner ejecuta fn en una transacción con el repositorio de invitaciones.
// Si fn devuelve error se hace rollback.
type InviteTxRunner interface {
	RunInvite(ctx context.Context, fn func(invites repository.InviteRepository) error) error
}

// AuthUseCase invitaciones, registro por invitación y emisión local de tokens.
type AuthUseCase struct {
	userRepo   repository.UserRepository
	inviteRepo repository.InviteRepository
	tx         InviteTxRunner
	sender     ports.InvitationSender
	jwtCfg     JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	inviteRepo repository.InviteRepository,
	tx InviteTxRunner,
	sender ports.InvitationSender,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, inviteRepo: inviteRepo, tx: tx, sender: sender, jwtCfg: jwtCfg}
}

// Invite autoriza un email para unirse a la organización del admin y dispara la invitación.
//
// La escritura y el envío van en la misma transacción: si el canal de entrega falla,
// la invitación no queda persistida y se devuelve domain.ErrInvitationFailed.
func (uc *AuthUseCase) Invite(ctx context.Context, admin dto.Principal, in dto.InviteRequest) (*dto.InviteResponse, error) {
	email := usecase.NormalizeEmail(in.Email)
	if err := usecase.ValidateEmail("email", email); err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}
	// Un miembro desactivado se reactiva desde el roster, no con una invitación:
	// Signup rechaza cualquier email que ya tenga usuario.
	if user != nil {
		return nil, domain.ErrUserExists
	}
	existing, err := uc.inviteRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("buscar invitación: %w", err)
	}
	if existing != nil && !existing.IsUsed {
		return nil, domain.ErrAlreadyInvited
	}

	now := time.Now().UTC()
	invite := &entity.InvitedEmail{
		ID:             uuid.New().String(),
		OrganizationID: admin.OrganizationID,
		Email:          email,
		InvitedBy:      admin.ExternalID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	var result *dto.InvitationResult
	err = uc.tx.RunInvite(ctx, func(invites repository.InviteRepository) error {
		if existing != nil {
			// Invitación ya usada por alguien que ya no está en el roster: se rearma.
			invite.ID = existing.ID
			invite.CreatedAt = existing.CreatedAt
			if err := invites.Rearm(ctx, invite); err != nil {
				return err
			}
		} else if err := invites.Create(ctx, invite); err != nil {
			return err
		}
		res, err := uc.sender.SendInvitation(ctx, email)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvitationFailed, err)
		}
		result = res
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyInvited) || errors.Is(err, domain.ErrInvitationFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("registrar invitación: %w", err)
	}

	return &dto.InviteResponse{
		Success:    true,
		Invite:     usecase.ToInvitedEmailResponse(invite),
		Invitation: result,
	}, nil
}

// ListPendingInvites invitaciones no usadas del tenant.
func (uc *AuthUseCase) ListPendingInvites(ctx context.Context, admin dto.Principal) ([]dto.InvitedEmailResponse, error) {
	list, err := uc.inviteRepo.ListPending(ctx, admin.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("listar invitaciones: %w", err)
	}
	out := make([]dto.InvitedEmailResponse, 0, len(list))
	for _, i := range list {
		if i != nil {
			out = append(out, usecase.ToInvitedEmailResponse(i))
		}
	}
	return out, nil
}

// Signup comprueba que el email esté invitado y consume la invitación.
// domain.ErrUserExists si ya hay un usuario con ese email; domain.ErrNotInvited si no hay invitación pendiente.
func (uc *AuthUseCase) Signup(ctx context.Context, in dto.SignupRequest) (*dto.MessageResponse, error) {
	email := usecase.NormalizeEmail(in.Email)
	if err := usecase.ValidateEmail("email", email); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}
	if user != nil {
		return nil, domain.ErrUserExists
	}
	invite, err := uc.inviteRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("buscar invitación: %w", err)
	}
	if invite == nil || invite.IsUsed {
		return nil, domain.ErrNotInvited
	}
	// MarkUsed es condicional: de dos registros concurrentes solo uno consume la invitación.
	if err := uc.inviteRepo.MarkUsed(ctx, email); err != nil {
		if errors.Is(err, domain.ErrNotInvited) {
			return nil, err
		}
		return nil, fmt.Errorf("consumir invitación: %w", err)
	}
	return &dto.MessageResponse{Message: "Email invitado, registro permitido"}, nil
}

// Login verifica email/password de una cuenta local y emite un JWT.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := usecase.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.NewValidationError("email", "email y password son requeridos")
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}
	if user == nil || user.PasswordHash == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes, jwt.Identity{
		Subject:        user.ExternalID,
		OrganizationID: user.OrganizationID,
		Role:           user.Role,
		Email:          user.Email,
		Name:           user.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("generar token: %w", err)
	}
	return &dto.LoginResponse{Token: token, User: *usecase.ToUserResponse(user)}, nil
}
