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

var _ repository.MeetingRepository = (*MeetingRepo)(nil)

// MeetingRepo implementación del puerto MeetingRepository sobre PostgreSQL.
type MeetingRepo struct {
	db Querier
}

// NewMeetingRepository construye el adaptador de persistencia para reuniones.
func NewMeetingRepository(db Querier) *MeetingRepo {
	return &MeetingRepo{db: db}
}

const meetingColumns = `id, organization_id, user_id, title, client_name, date, time, type, priority,
	duration_minutes, notes, status, created_at, updated_at`

func (r *MeetingRepo) Create(ctx context.Context, m *entity.Meeting) error {
	query := `
		INSERT INTO meetings (` + meetingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.db.Exec(ctx, query,
		m.ID, m.OrganizationID, m.UserID, m.Title, m.ClientName, m.Date, m.Time, m.Type, m.Priority,
		m.DurationMinutes, m.Notes, m.Status, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert meeting: %w", err)
	}
	return nil
}

func (r *MeetingRepo) GetByID(ctx context.Context, organizationID, id string) (*entity.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings WHERE id = $1 AND organization_id = $2`
	m, err := scanMeeting(r.db.QueryRow(ctx, query, id, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get meeting: %w", err)
	}
	return m, nil
}

// UpdateStatus compare-and-set sobre status: si otra petición lo cambió antes no afecta filas.
func (r *MeetingRepo) UpdateStatus(ctx context.Context, organizationID, id, expected, next string) error {
	query := `
		UPDATE meetings SET status = $1, updated_at = $2
		WHERE id = $3 AND organization_id = $4 AND status = $5`
	tag, err := r.db.Exec(ctx, query, next, time.Now().UTC(), id, organizationID, expected)
	if err != nil {
		return fmt.Errorf("update meeting status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

func (r *MeetingRepo) ListByOrganization(ctx context.Context, organizationID string) ([]*entity.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings WHERE organization_id = $1 ORDER BY date, time, id`
	return r.list(ctx, query, organizationID)
}

func (r *MeetingRepo) ListByUser(ctx context.Context, organizationID, userID string) ([]*entity.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings
		WHERE organization_id = $1 AND user_id = $2 ORDER BY date, time, id`
	return r.list(ctx, query, organizationID, userID)
}

func (r *MeetingRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Meeting, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Meeting, 0)
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, fmt.Errorf("scan meeting: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMeeting(row pgx.Row) (*entity.Meeting, error) {
	var m entity.Meeting
	err := row.Scan(
		&m.ID, &m.OrganizationID, &m.UserID, &m.Title, &m.ClientName, &m.Date, &m.Time, &m.Type, &m.Priority,
		&m.DurationMinutes, &m.Notes, &m.Status, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
