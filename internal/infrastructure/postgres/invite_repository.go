package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/salesflow-api/internal/domain"
	"github.com/jhoicas/salesflow-api/internal/domain/entity"
	"github.com/jhoicas/salesflow-api/internal/domain/repository"
)

var _ repository.InviteRepository = (*InviteRepo)(nil)

// InviteRepo implementación del puerto InviteRepository sobre PostgreSQL.
type InviteRepo struct {
	db Querier
}

// NewInviteRepository construye el adaptador; db puede ser el pool o una tx.
func NewInviteRepository(db Querier) *InviteRepo {
	return &InviteRepo{db: db}
}

const inviteColumns = `id, organization_id, email, invited_by, is_used, used_at, created_at, updated_at`

// Create inserta la invitación; el índice único sobre lower(email) resuelve invitaciones concurrentes.
func (r *InviteRepo) Create(ctx context.Context, inv *entity.InvitedEmail) error {
	query := `
		INSERT INTO invited_emails (` + inviteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query,
		inv.ID, inv.OrganizationID, inv.Email, inv.InvitedBy, inv.IsUsed, inv.UsedAt, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyInvited
		}
		return fmt.Errorf("insert invite: %w", err)
	}
	return nil
}

func (r *InviteRepo) GetByEmail(ctx context.Context, email string) (*entity.InvitedEmail, error) {
	query := `SELECT ` + inviteColumns + ` FROM invited_emails WHERE lower(email) = lower($1)`
	inv, err := scanInvite(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invite: %w", err)
	}
	return inv, nil
}

// Rearm deja pendiente una invitación ya usada (nueva organización e invitador).
func (r *InviteRepo) Rearm(ctx context.Context, inv *entity.InvitedEmail) error {
	query := `
		UPDATE invited_emails
		SET organization_id = $1, invited_by = $2, is_used = FALSE, used_at = NULL, updated_at = $3
		WHERE lower(email) = lower($4) AND is_used = TRUE`
	tag, err := r.db.Exec(ctx, query, inv.OrganizationID, inv.InvitedBy, inv.UpdatedAt, inv.Email)
	if err != nil {
		return fmt.Errorf("rearm invite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		cur, err := r.GetByEmail(ctx, inv.Email)
		if err != nil {
			return fmt.Errorf("rearm invite: %w", err)
		}
		if cur == nil {
			return domain.ErrNotInvited
		}
		return domain.ErrAlreadyInvited
	}
	return nil
}

// MarkUsed consume la invitación solo si sigue pendiente.
func (r *InviteRepo) MarkUsed(ctx context.Context, email string) error {
	now := time.Now().UTC()
	query := `
		UPDATE invited_emails SET is_used = TRUE, used_at = $1, updated_at = $1
		WHERE lower(email) = lower($2) AND is_used = FALSE`
	tag, err := r.db.Exec(ctx, query, now, email)
	if err != nil {
		return fmt.Errorf("mark invite used: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotInvited
	}
	return nil
}

func (r *InviteRepo) ListPending(ctx context.Context, organizationID string) ([]*entity.InvitedEmail, error) {
	query := `SELECT ` + inviteColumns + ` FROM invited_emails
		WHERE organization_id = $1 AND is_used = FALSE ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("list invites: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.InvitedEmail, 0)
	for rows.Next() {
		inv, err := scanInvite(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invite: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

func scanInvite(row pgx.Row) (*entity.InvitedEmail, error) {
	var inv entity.InvitedEmail
	err := row.Scan(
		&inv.ID, &inv.OrganizationID, &inv.Email, &inv.InvitedBy, &inv.IsUsed, &inv.UsedAt, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}
