package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/salesflow-api/internal/application/dto"
	"github.com/jhoicas/salesflow-api/internal/domain"
	"github.com/jhoicas/salesflow-api/internal/domain/repository"
)

// OrganizationUseCase datos del tenant.
type OrganizationUseCase struct {
	repo repository.OrganizationRepository
}

// NewOrganizationUseCase construye el caso de uso con el puerto de persistencia.
func NewOrganizationUseCase(repo repository.OrganizationRepository) *OrganizationUseCase {
	return &OrganizationUseCase{repo: repo}
}

// Get organización del llamante.
func (uc *OrganizationUseCase) Get(ctx context.Context, p dto.Principal) (*dto.OrganizationResponse, error) {
	org, err := uc.repo.GetByID(ctx, p.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("obtener organización: %w", err)
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}
	return ToOrganizationResponse(org), nil
}

// Update aplica los campos presentes. El nombre no puede quedar vacío.
func (uc *OrganizationUseCase) Update(ctx context.Context, p dto.Principal, in dto.UpdateOrganizationRequest) (*dto.OrganizationResponse, error) {
	if !p.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	org, err := uc.repo.GetByID(ctx, p.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("obtener organización: %w", err)
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidationError("name", "no puede estar vacío")
		}
		org.Name = name
	}
	if in.Email != nil {
		email := NormalizeEmail(*in.Email)
		if email != "" {
			if err := ValidateEmail("email", email); err != nil {
				return nil, err
			}
		}
		org.Email = email
	}
	assign(&org.Address, in.Address)
	assign(&org.Industry, in.Industry)
	assign(&org.Description, in.Description)
	assign(&org.Phone, in.Phone)
	assign(&org.Website, in.Website)
	org.UpdatedAt = time.Now().UTC()

	if err := uc.repo.Update(ctx, org); err != nil {
		return nil, fmt.Errorf("actualizar organización: %w", err)
	}
	return ToOrganizationResponse(org), nil
}

func assign(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
