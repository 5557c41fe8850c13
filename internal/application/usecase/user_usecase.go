package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/salesflow-api/internal/application/dto"
	"github.com/jhoicas/salesflow-api/internal/domain"
	"github.com/jhoicas/salesflow-api/internal/domain/entity"
	"github.com/jhoicas/salesflow-api/internal/domain/repository"
)

// UserUseCase perfil propio, alta en primer login y administración del roster.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// GetCurrent devuelve el User del llamante o domain.ErrUserNotFound.
func (uc *UserUseCase) GetCurrent(ctx context.Context, p dto.Principal) (*dto.UserResponse, error) {
	u, err := uc.current(ctx, p)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(u), nil
}

func (uc *UserUseCase) current(ctx context.Context, p dto.Principal) (*entity.User, error) {
	u, err := uc.repo.GetByExternalID(ctx, p.ExternalID)
	if err != nil {
		return nil, fmt.Errorf("obtener usuario: %w", err)
	}
	if u == nil || u.OrganizationID != p.OrganizationID {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

// Provision crea el User del llamante si no existe (idempotente).
// Nombre: fullName, name, claim name del token, email. El rol sale del token.
// Si ya existe con nombre vacío y llega un nombre, se completa.
func (uc *UserUseCase) Provision(ctx context.Context, p dto.Principal, in dto.ProvisionUserRequest) (*dto.UserResponse, error) {
	if p.ExternalID == "" || p.OrganizationID == "" {
		return nil, domain.ErrUnauthorized
	}
	supplied := firstNonEmpty(in.FullName, in.Name)

	existing, err := uc.repo.GetByExternalID(ctx, p.ExternalID)
	if err != nil {
		return nil, fmt.Errorf("obtener usuario: %w", err)
	}
	if existing != nil {
		if existing.OrganizationID != p.OrganizationID {
			return nil, domain.ErrForbidden
		}
		if strings.TrimSpace(existing.Name) == "" && supplied != "" {
			existing.Name = supplied
			existing.UpdatedAt = time.Now().UTC()
			if err := uc.repo.Update(ctx, existing); err != nil {
				return nil, fmt.Errorf("actualizar usuario: %w", err)
			}
		}
		return ToUserResponse(existing), nil
	}

	email := NormalizeEmail(p.Email)
	if err := ValidateEmail("email", email); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	u := &entity.User{
		ID:             uuid.New().String(),
		OrganizationID: p.OrganizationID,
		ExternalID:     p.ExternalID,
		Email:          email,
		Name:           firstNonEmpty(supplied, p.Name, email),
		Role:           entity.NormalizeRole(p.Role),
		IsActive:       true,
		JoinDate:       time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		// Dos primeros logins concurrentes: el segundo lee el que ganó.
		if errors.Is(err, domain.ErrDuplicate) {
			if again, gerr := uc.repo.GetByExternalID(ctx, p.ExternalID); gerr == nil && again != nil {
				return ToUserResponse(again), nil
			}
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("crear usuario: %w", err)
	}
	return ToUserResponse(u), nil
}

// List roster del tenant.
func (uc *UserUseCase) List(ctx context.Context, p dto.Principal) ([]dto.UserResponse, error) {
	list, err := uc.repo.ListByOrganization(ctx, p.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("listar usuarios: %w", err)
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		if u != nil {
			out = append(out, *ToUserResponse(u))
		}
	}
	return out, nil
}

// SetActive activa o desactiva un miembro y devuelve el estado confirmado.
func (uc *UserUseCase) SetActive(ctx context.Context, p dto.Principal, id string, in dto.UpdateUserStatusRequest) (*dto.UserResponse, error) {
	if in.IsActive == nil {
		return nil, domain.NewValidationError("isActive", "es requerido")
	}
	u, err := uc.target(ctx, p, id)
	if err != nil {
		return nil, err
	}
	u.IsActive = *in.IsActive
	u.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("actualizar usuario: %w", err)
	}
	return ToUserResponse(u), nil
}

// Delete elimina un miembro del roster. Sus ventas y reuniones se conservan.
func (uc *UserUseCase) Delete(ctx context.Context, p dto.Principal, id string) (*dto.DeleteUserResponse, error) {
	u, err := uc.target(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Delete(ctx, p.OrganizationID, u.ID); err != nil {
		return nil, fmt.Errorf("eliminar usuario: %w", err)
	}
	return &dto.DeleteUserResponse{Success: true, ID: u.ID}, nil
}

// target carga el miembro a administrar; un admin no puede operar sobre sí mismo.
func (uc *UserUseCase) target(ctx context.Context, p dto.Principal, id string) (*entity.User, error) {
	if !validID(id) {
		return nil, domain.ErrUserNotFound
	}
	u, err := uc.repo.GetByID(ctx, p.OrganizationID, id)
	if err != nil {
		return nil, fmt.Errorf("obtener usuario: %w", err)
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if u.ExternalID == p.ExternalID {
		return nil, fmt.Errorf("%w: un administrador no puede modificarse a sí mismo", domain.ErrConflict)
	}
	return u, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// IsActiveMember informa si el llamante puede operar. Un usuario aún no
// aprovisionado se considera activo: todavía no hay registro que desactivar.
func (uc *UserUseCase) IsActiveMember(ctx context.Context, p dto.Principal) (bool, error) {
	u, err := uc.repo.GetByExternalID(ctx, p.ExternalID)
	if err != nil {
		return false, fmt.Errorf("obtener usuario: %w", err)
	}
	if u == nil || u.OrganizationID != p.OrganizationID {
		return true, nil
	}
	return u.IsActive, nil
}
