package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/salesflow-api/internal/domain"
	"github.com/jhoicas/salesflow-api/internal/domain/entity"
	"github.com/jhoicas/salesflow-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL.
type SaleRepo struct {
	db Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas.
func NewSaleRepository(db Querier) *SaleRepo {
	return &SaleRepo{db: db}
}

const saleColumns = `id, organization_id, user_id, client, amount, status, category, details, date, created_at`

// Create persiste una venta. amount es NUMERIC(14,2) mapeado a decimal.Decimal.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.Exec(ctx, query,
		s.ID, s.OrganizationID, s.UserID, s.Client, s.Amount, s.Status, s.Category, s.Details,
		nullableDate(s.Date), s.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// ListByOrganization ventas del tenant, fecha de negocio descendente (sin fecha al final).
func (r *SaleRepo) ListByOrganization(ctx context.Context, organizationID string) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales
		WHERE organization_id = $1
		ORDER BY date DESC NULLS LAST, created_at DESC`
	return r.list(ctx, query, organizationID)
}

// ListByUser ventas de un usuario, created_at descendente.
func (r *SaleRepo) ListByUser(ctx context.Context, organizationID, userID string) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales
		WHERE organization_id = $1 AND user_id = $2
		ORDER BY created_at DESC`
	return r.list(ctx, query, organizationID, userID)
}

func (r *SaleRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Sale, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Sale, 0)
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var date *time.Time
	err := row.Scan(
		&s.ID, &s.OrganizationID, &s.UserID, &s.Client, &s.Amount, &s.Status, &s.Category, &s.Details,
		&date, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Date = derefTime(date)
	return &s, nil
}
