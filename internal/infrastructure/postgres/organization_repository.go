package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/salesflow-api/internal/domain"
	"github.com/jhoicas/salesflow-api/internal/domain/entity"
	"github.com/jhoicas/salesflow-api/internal/domain/repository"
)

var _ repository.OrganizationRepository = (*OrganizationRepo)(nil)

// OrganizationRepo implementación del puerto OrganizationRepository sobre PostgreSQL.
type OrganizationRepo struct {
	db Querier
}

// NewOrganizationRepository construye el adaptador de persistencia para organizaciones.
func NewOrganizationRepository(db Querier) *OrganizationRepo {
	return &OrganizationRepo{db: db}
}

// Create persiste una organización.
func (r *OrganizationRepo) Create(ctx context.Context, o *entity.Organization) error {
	query := `
		INSERT INTO organizations (id, name, address, industry, description, phone, email, website, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.Exec(ctx, query,
		o.ID, o.Name, o.Address, o.Industry, o.Description, o.Phone, o.Email, o.Website, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert organization: %w", err)
	}
	return nil
}

// GetByID obtiene una organización por ID.
func (r *OrganizationRepo) GetByID(ctx context.Context, id string) (*entity.Organization, error) {
	query := `
		SELECT id, name, address, industry, description, phone, email, website, created_at, updated_at
		FROM organizations WHERE id = $1`
	var o entity.Organization
	err := r.db.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.Name, &o.Address, &o.Industry, &o.Description, &o.Phone, &o.Email, &o.Website,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get organization: %w", err)
	}
	return &o, nil
}

// Update actualiza los datos de contacto y descripción.
func (r *OrganizationRepo) Update(ctx context.Context, o *entity.Organization) error {
	query := `
		UPDATE organizations
		SET name = $1, address = $2, industry = $3, description = $4, phone = $5, email = $6, website = $7, updated_at = $8
		WHERE id = $9`
	tag, err := r.db.Exec(ctx, query, o.Name, o.Address, o.Industry, o.Description, o.Phone, o.Email, o.Website, o.UpdatedAt, o.ID)
	if err != nil {
		return fmt.Errorf("update organization: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
