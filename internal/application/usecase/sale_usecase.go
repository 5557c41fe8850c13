package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/salesflow-api/internal/application/dto"
	"github.com/jhoicas/salesflow-api/internal/domain"
	"github.com/jhoicas/salesflow-api/internal/domain/entity"
	"github.com/jhoicas/salesflow-api/internal/domain/repository"
)

// SaleUseCase registro y consulta de ventas.
type SaleUseCase struct {
	repo repository.SaleRepository
}

// NewSaleUseCase construye el caso de uso con el puerto de persistencia.
func NewSaleUseCase(repo repository.SaleRepository) *SaleUseCase {
	return &SaleUseCase{repo: repo}
}

// Create valida la entrada y persiste la venta a nombre del llamante.
func (uc *SaleUseCase) Create(ctx context.Context, p dto.Principal, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if p.ExternalID == "" || p.OrganizationID == "" {
		return nil, domain.ErrUnauthorized
	}
	client, err := requireText("client", in.Client)
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount(in.Amount)
	if err != nil {
		return nil, err
	}
	date, err := parseDate("date", in.Date)
	if err != nil {
		return nil, err
	}
	status, err := requireText("status", in.Status)
	if err != nil {
		return nil, err
	}
	status = titleStatus(status)
	if !contains(entity.SaleStatuses, status) {
		return nil, domain.NewValidationError("status", "valor no permitido")
	}
	category, err := optionalOneOf("category", in.Category, "", entity.SaleCategories)
	if err != nil {
		return nil, err
	}

	sale := &entity.Sale{
		ID:             uuid.New().String(),
		OrganizationID: p.OrganizationID,
		UserID:         p.ExternalID,
		Client:         client,
		Amount:         amount,
		Status:         status,
		Category:       category,
		Details:        in.Details,
		Date:           date,
		CreatedAt:      time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, sale); err != nil {
		return nil, fmt.Errorf("crear venta: %w", err)
	}
	out := ToSaleResponse(sale)
	return &out, nil
}

// ListOrganization todas las ventas del tenant del llamante, más recientes primero.
func (uc *SaleUseCase) ListOrganization(ctx context.Context, p dto.Principal) ([]dto.SaleResponse, error) {
	list, err := uc.repo.ListByOrganization(ctx, p.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("listar ventas: %w", err)
	}
	return ToSaleResponses(list), nil
}

// ListMine ventas del llamante, más recientes primero.
func (uc *SaleUseCase) ListMine(ctx context.Context, p dto.Principal) ([]dto.SaleResponse, error) {
	list, err := uc.repo.ListByUser(ctx, p.OrganizationID, p.ExternalID)
	if err != nil {
		return nil, fmt.Errorf("listar mis ventas: %w", err)
	}
	return ToSaleResponses(list), nil
}
