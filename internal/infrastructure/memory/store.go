// Package memory implementa los puertos de repository en memoria.
// Se usa con DB_DRIVER=memory y como store de fixtures en los tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/salesflow-api/internal/domain"
	"github.com/jhoicas/salesflow-api/internal/domain/entity"
	"github.com/jhoicas/salesflow-api/internal/domain/repository"
)

// Store guarda copias de las entidades; nunca entrega punteros internos.
type Store struct {
	mu       sync.RWMutex
	users    map[string]*entity.User
	sales    map[string]*entity.Sale
	meetings map[string]*entity.Meeting
	orgs     map[string]*entity.Organization
	invites  map[string]*entity.InvitedEmail // por email

	txMu sync.Mutex
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		users:    make(map[string]*entity.User),
		sales:    make(map[string]*entity.Sale),
		meetings: make(map[string]*entity.Meeting),
		orgs:     make(map[string]*entity.Organization),
		invites:  make(map[string]*entity.InvitedEmail),
	}
}

func (s *Store) Users() *UserRepo                 { return &UserRepo{s} }
func (s *Store) Sales() *SaleRepo                 { return &SaleRepo{s} }
func (s *Store) Meetings() *MeetingRepo           { return &MeetingRepo{s} }
func (s *Store) Organizations() *OrganizationRepo { return &OrganizationRepo{s} }
func (s *Store) Invites() *InviteRepo             { return &InviteRepo{s} }

// ── Users ─────────────────────────────────────────────────────────────────────

type UserRepo struct{ s *Store }

var _ repository.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.users {
		if x.ExternalID == u.ExternalID || strings.EqualFold(x.Email, u.Email) {
			return domain.ErrDuplicate
		}
	}
	c := *u
	r.s.users[u.ID] = &c
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, organizationID, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok || u.OrganizationID != organizationID {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (r *UserRepo) GetByExternalID(_ context.Context, externalID string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.ExternalID == externalID }), nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return strings.EqualFold(u.Email, email) }), nil
}

func (r *UserRepo) find(match func(*entity.User) bool) *entity.User {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if match(u) {
			c := *u
			return &c
		}
	}
	return nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.users[u.ID]
	if !ok || cur.OrganizationID != u.OrganizationID {
		return domain.ErrUserNotFound
	}
	c := *u
	r.s.users[u.ID] = &c
	return nil
}

func (r *UserRepo) ListByOrganization(_ context.Context, organizationID string) ([]*entity.User, error) {
	r.s.mu.RLock()
	out := make([]*entity.User, 0)
	for _, u := range r.s.users {
		if u.OrganizationID == organizationID {
			c := *u
			out = append(out, &c)
		}
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *UserRepo) Delete(_ context.Context, organizationID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok || u.OrganizationID != organizationID {
		return domain.ErrUserNotFound
	}
	delete(r.s.users, id)
	return nil
}

// ── Sales ─────────────────────────────────────────────────────────────────────

type SaleRepo struct{ s *Store }

var _ repository.SaleRepository = (*SaleRepo)(nil)

func (r *SaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sales[sale.ID]; ok {
		return domain.ErrDuplicate
	}
	c := *sale
	r.s.sales[sale.ID] = &c
	return nil
}

func (r *SaleRepo) ListByOrganization(_ context.Context, organizationID string) ([]*entity.Sale, error) {
	out := r.filter(func(s *entity.Sale) bool { return s.OrganizationID == organizationID })
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *SaleRepo) ListByUser(_ context.Context, organizationID, userID string) ([]*entity.Sale, error) {
	out := r.filter(func(s *entity.Sale) bool { return s.OrganizationID == organizationID && s.UserID == userID })
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *SaleRepo) filter(match func(*entity.Sale) bool) []*entity.Sale {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Sale, 0)
	for _, s := range r.s.sales {
		if match(s) {
			c := *s
			out = append(out, &c)
		}
	}
	return out
}

// ── Meetings ──────────────────────────────────────────────────────────────────

type MeetingRepo struct{ s *Store }

var _ repository.MeetingRepository = (*MeetingRepo)(nil)

func (r *MeetingRepo) Create(_ context.Context, m *entity.Meeting) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.meetings[m.ID]; ok {
		return domain.ErrDuplicate
	}
	c := *m
	r.s.meetings[m.ID] = &c
	return nil
}

func (r *MeetingRepo) GetByID(_ context.Context, organizationID, id string) (*entity.Meeting, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.meetings[id]
	if !ok || m.OrganizationID != organizationID {
		return nil, nil
	}
	c := *m
	return &c, nil
}

func (r *MeetingRepo) UpdateStatus(_ context.Context, organizationID, id, expected, next string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.meetings[id]
	if !ok || m.OrganizationID != organizationID {
		return domain.ErrNotFound
	}
	if m.Status != expected {
		return domain.ErrConflict
	}
	m.Status = next
	m.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *MeetingRepo) ListByOrganization(_ context.Context, organizationID string) ([]*entity.Meeting, error) {
	return r.filter(func(m *entity.Meeting) bool { return m.OrganizationID == organizationID }), nil
}

func (r *MeetingRepo) ListByUser(_ context.Context, organizationID, userID string) ([]*entity.Meeting, error) {
	return r.filter(func(m *entity.Meeting) bool { return m.OrganizationID == organizationID && m.UserID == userID }), nil
}

// filter devuelve en orden de agenda (fecha, hora).
func (r *MeetingRepo) filter(match func(*entity.Meeting) bool) []*entity.Meeting {
	r.s.mu.RLock()
	out := make([]*entity.Meeting, 0)
	for _, m := range r.s.meetings {
		if match(m) {
			c := *m
			out = append(out, &c)
		}
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ── Organizations ─────────────────────────────────────────────────────────────

type OrganizationRepo struct{ s *Store }

var _ repository.OrganizationRepository = (*OrganizationRepo)(nil)

func (r *OrganizationRepo) Create(_ context.Context, org *entity.Organization) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orgs[org.ID]; ok {
		return domain.ErrDuplicate
	}
	c := *org
	r.s.orgs[org.ID] = &c
	return nil
}

func (r *OrganizationRepo) GetByID(_ context.Context, id string) (*entity.Organization, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.orgs[id]
	if !ok {
		return nil, nil
	}
	c := *o
	return &c, nil
}

func (r *OrganizationRepo) Update(_ context.Context, org *entity.Organization) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orgs[org.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *org
	r.s.orgs[org.ID] = &c
	return nil
}

// ── Invites ───────────────────────────────────────────────────────────────────

type InviteRepo struct{ s *Store }

var _ repository.InviteRepository = (*InviteRepo)(nil)

func (r *InviteRepo) Create(_ context.Context, inv *entity.InvitedEmail) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := strings.ToLower(inv.Email)
	if _, ok := r.s.invites[key]; ok {
		return domain.ErrAlreadyInvited
	}
	c := *inv
	r.s.invites[key] = &c
	return nil
}

func (r *InviteRepo) GetByEmail(_ context.Context, email string) (*entity.InvitedEmail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	inv, ok := r.s.invites[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	c := *inv
	return &c, nil
}

func (r *InviteRepo) Rearm(_ context.Context, inv *entity.InvitedEmail) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := strings.ToLower(inv.Email)
	cur, ok := r.s.invites[key]
	if !ok {
		return domain.ErrNotInvited
	}
	if !cur.IsUsed {
		return domain.ErrAlreadyInvited
	}
	c := *inv
	c.IsUsed = false
	c.UsedAt = nil
	r.s.invites[key] = &c
	return nil
}

func (r *InviteRepo) MarkUsed(_ context.Context, email string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invites[strings.ToLower(email)]
	if !ok || inv.IsUsed {
		return domain.ErrNotInvited
	}
	now := time.Now().UTC()
	inv.IsUsed = true
	inv.UsedAt = &now
	inv.UpdatedAt = now
	return nil
}

func (r *InviteRepo) ListPending(_ context.Context, organizationID string) ([]*entity.InvitedEmail, error) {
	r.s.mu.RLock()
	out := make([]*entity.InvitedEmail, 0)
	for _, inv := range r.s.invites {
		if inv.OrganizationID == organizationID && !inv.IsUsed {
			c := *inv
			out = append(out, &c)
		}
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ── Transacciones ─────────────────────────────────────────────────────────────

// TxRunner serializa las transacciones de invitación. Si fn falla restaura solo
// las invitaciones que fn modificó; el resto de la tabla no se toca.
type TxRunner struct{ s *Store }

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner { return &TxRunner{s: s} }

func (t *TxRunner) RunInvite(ctx context.Context, fn func(invites repository.InviteRepository) error) error {
	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()

	tx := &txInvites{InviteRepo: t.s.Invites(), before: make(map[string]*entity.InvitedEmail)}
	if err := fn(tx); err != nil {
		tx.rollback()
		return err
	}
	return nil
}

// txInvites registra el valor previo de cada email antes de la primera escritura.
type txInvites struct {
	*InviteRepo
	before map[string]*entity.InvitedEmail // nil: no existía
}

func (t *txInvites) remember(email string) {
	key := strings.ToLower(email)
	if _, ok := t.before[key]; ok {
		return
	}
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	if cur, ok := t.s.invites[key]; ok {
		c := *cur
		t.before[key] = &c
		return
	}
	t.before[key] = nil
}

func (t *txInvites) Create(ctx context.Context, inv *entity.InvitedEmail) error {
	t.remember(inv.Email)
	return t.InviteRepo.Create(ctx, inv)
}

func (t *txInvites) Rearm(ctx context.Context, inv *entity.InvitedEmail) error {
	t.remember(inv.Email)
	return t.InviteRepo.Rearm(ctx, inv)
}

func (t *txInvites) MarkUsed(ctx context.Context, email string) error {
	t.remember(email)
	return t.InviteRepo.MarkUsed(ctx, email)
}

func (t *txInvites) rollback() {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for key, prev := range t.before {
		if prev == nil {
			delete(t.s.invites, key)
			continue
		}
		t.s.invites[key] = prev
	}
}
