package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/salesflow-api/internal/application/dto"
	"github.com/jhoicas/salesflow-api/internal/domain"
	"github.com/jhoicas/salesflow-api/internal/domain/entity"
	"github.com/jhoicas/salesflow-api/internal/infrastructure/memory"
)

const orgID = "org-1"

var (
	admin    = dto.Principal{ExternalID: "ext-admin", OrganizationID: orgID, Role: "admin", Email: "admin@acme.com"}
	employee = dto.Principal{ExternalID: "ext-emp", OrganizationID: orgID, Role: "employee", Email: "emp@acme.com", Name: "Emp"}
)

// ── Ventas ────────────────────────────────────────────────────────────────────

func TestSaleCreate_Validaciones(t *testing.T) {
	uc := NewSaleUseCase(memory.NewStore().Sales())
	ctx := context.Background()

	base := dto.CreateSaleRequest{Client: "Globex", Amount: json.RawMessage(`100`), Status: "Pending", Date: "2024-01-05"}

	cases := map[string]func(r *dto.CreateSaleRequest){
		"client":   func(r *dto.CreateSaleRequest) { r.Client = " " },
		"amount":   func(r *dto.CreateSaleRequest) { r.Amount = json.RawMessage(`"x"`) },
		"date":     func(r *dto.CreateSaleRequest) { r.Date = "" },
		"status":   func(r *dto.CreateSaleRequest) { r.Status = "Won" },
		"category": func(r *dto.CreateSaleRequest) { r.Category = "food" },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			in := base
			mutate(&in)
			_, err := uc.Create(ctx, employee, in)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, field, ve.Field)
		})
	}

	_, err := uc.Create(ctx, dto.Principal{}, base)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSaleListas_OrdenYAlcance(t *testing.T) {
	store := memory.NewStore()
	uc := NewSaleUseCase(store.Sales())
	ctx := context.Background()

	mk := func(p dto.Principal, client, date string) {
		_, err := uc.Create(ctx, p, dto.CreateSaleRequest{Client: client, Amount: json.RawMessage(`1`), Status: "closed", Date: date})
		require.NoError(t, err)
	}
	mk(employee, "A", "2024-03-01")
	mk(admin, "B", "2024-01-01")
	mk(employee, "C", "2024-02-01")
	other := dto.Principal{ExternalID: "ext-x", OrganizationID: "org-2", Role: "admin"}
	mk(other, "Z", "2024-04-01")

	all, err := uc.ListOrganization(ctx, admin)
	require.NoError(t, err)
	require.Len(t, all, 3, "no mezcla organizaciones")
	assert.Equal(t, []string{"A", "C", "B"}, []string{all[0].Client, all[1].Client, all[2].Client})

	mine, err := uc.ListMine(ctx, employee)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "C", mine[0].Client, "más reciente por createdAt primero")
}

// ── Reuniones ─────────────────────────────────────────────────────────────────

func TestMeetingCreate_ValoresPorDefectoYValidacion(t *testing.T) {
	uc := NewMeetingUseCase(memory.NewStore().Meetings())
	ctx := context.Background()

	m, err := uc.Create(ctx, employee, dto.CreateMeetingRequest{Title: "Demo", ClientName: "Globex", Date: "2024-05-10", Time: "10:00"})
	require.NoError(t, err)
	assert.Equal(t, entity.MeetingStatusScheduled, m.Status)
	assert.Equal(t, 60, m.DurationMinutes)
	assert.Equal(t, "medium", m.Priority)

	_, err = uc.Create(ctx, employee, dto.CreateMeetingRequest{Title: "Demo", ClientName: "Globex", Date: "2024-05-10", Time: "10:00", DurationMinutes: 50})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "durationMinutes", ve.Field)

	_, err = uc.Create(ctx, employee, dto.CreateMeetingRequest{Title: "Demo", ClientName: "Globex", Date: "2024-05-10"})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "time", ve.Field)
}

func TestMeetingUpdateStatus(t *testing.T) {
	uc := NewMeetingUseCase(memory.NewStore().Meetings())
	ctx := context.Background()
	m, err := uc.Create(ctx, employee, dto.CreateMeetingRequest{Title: "Demo", ClientName: "Globex", Date: "2024-05-10", Time: "10:00"})
	require.NoError(t, err)

	_, err = uc.UpdateStatus(ctx, employee, m.ID, dto.UpdateMeetingStatusRequest{Status: "Cancelled"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UpdateStatus(ctx, employee, m.ID, dto.UpdateMeetingStatusRequest{Status: "scheduled"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "Scheduled → Scheduled no es una transición")

	stranger := dto.Principal{ExternalID: "ext-other", OrganizationID: orgID, Role: "employee"}
	_, err = uc.UpdateStatus(ctx, stranger, m.ID, dto.UpdateMeetingStatusRequest{Status: "Success"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := uc.UpdateStatus(ctx, admin, m.ID, dto.UpdateMeetingStatusRequest{Status: "failed"})
	require.NoError(t, err)
	assert.Equal(t, entity.MeetingStatusFailed, out.Status)

	_, err = uc.UpdateStatus(ctx, employee, m.ID, dto.UpdateMeetingStatusRequest{Status: "Success"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = uc.UpdateStatus(ctx, dto.Principal{ExternalID: "ext-emp", OrganizationID: "org-2"}, m.ID, dto.UpdateMeetingStatusRequest{Status: "Success"})
	assert.ErrorIs(t, err, domain.ErrNotFound, "otra organización no ve la reunión")
}

func TestIDsMalformados(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	_, err := NewMeetingUseCase(store.Meetings()).UpdateStatus(ctx, admin, "no-es-uuid", dto.UpdateMeetingStatusRequest{Status: "Success"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	users := NewUserUseCase(store.Users())
	_, err = users.Provision(ctx, admin, dto.ProvisionUserRequest{})
	require.NoError(t, err)
	off := false
	_, err = users.SetActive(ctx, admin, "x' OR '1'='1", dto.UpdateUserStatusRequest{IsActive: &off})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	_, err = users.Delete(ctx, admin, "")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ── Usuarios ──────────────────────────────────────────────────────────────────

func TestUserProvision(t *testing.T) {
	store := memory.NewStore()
	uc := NewUserUseCase(store.Users())
	ctx := context.Background()

	_, err := uc.GetCurrent(ctx, employee)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	u, err := uc.Provision(ctx, employee, dto.ProvisionUserRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Emp", u.Name, "usa el claim name del token")
	assert.Equal(t, entity.RoleEmployee, u.Role)
	assert.True(t, u.IsActive)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), u.JoinDate)

	again, err := uc.Provision(ctx, employee, dto.ProvisionUserRequest{FullName: "Otro"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, again.ID)
	assert.Equal(t, "Emp", again.Name, "no pisa un nombre existente")

	a, err := uc.Provision(ctx, dto.Principal{ExternalID: "ext-a", OrganizationID: orgID, Role: "ADMIN", Email: "a@acme.com"}, dto.ProvisionUserRequest{Name: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, a.Role)
	assert.Equal(t, "Ana", a.Name)

	_, err = uc.Provision(ctx, dto.Principal{ExternalID: "ext-emp", OrganizationID: "org-2", Email: "emp@acme.com"}, dto.ProvisionUserRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUserProvision_CompletaNombreVacio(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Users().Create(ctx, &entity.User{
		ID: "u1", OrganizationID: orgID, ExternalID: "ext-emp", Email: "emp@acme.com", Role: entity.RoleEmployee, IsActive: true,
	}))
	uc := NewUserUseCase(store.Users())

	u, err := uc.Provision(ctx, employee, dto.ProvisionUserRequest{FullName: "Empleada Uno"})
	require.NoError(t, err)
	assert.Equal(t, "Empleada Uno", u.Name)
}

func TestUserSetActiveYDelete(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	uc := NewUserUseCase(store.Users())
	_, err := uc.Provision(ctx, admin, dto.ProvisionUserRequest{})
	require.NoError(t, err)
	emp, err := uc.Provision(ctx, employee, dto.ProvisionUserRequest{})
	require.NoError(t, err)

	_, err = uc.SetActive(ctx, admin, emp.ID, dto.UpdateUserStatusRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	off := false
	out, err := uc.SetActive(ctx, admin, emp.ID, dto.UpdateUserStatusRequest{IsActive: &off})
	require.NoError(t, err)
	assert.False(t, out.IsActive)

	active, err := uc.IsActiveMember(ctx, employee)
	require.NoError(t, err)
	assert.False(t, active)

	active, err = uc.IsActiveMember(ctx, dto.Principal{ExternalID: "sin-registro", OrganizationID: orgID})
	require.NoError(t, err)
	assert.True(t, active, "un usuario no aprovisionado no está desactivado")

	me, err := uc.GetCurrent(ctx, admin)
	require.NoError(t, err)
	_, err = uc.SetActive(ctx, admin, me.ID, dto.UpdateUserStatusRequest{IsActive: &off})
	assert.ErrorIs(t, err, domain.ErrConflict)

	del, err := uc.Delete(ctx, admin, emp.ID)
	require.NoError(t, err)
	assert.True(t, del.Success)

	list, err := uc.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = uc.Delete(ctx, admin, emp.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ── Organización ──────────────────────────────────────────────────────────────

func TestOrganizationUpdate(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Organizations().Create(ctx, &entity.Organization{ID: orgID, Name: "Acme"}))
	uc := NewOrganizationUseCase(store.Organizations())

	blank := " "
	_, err := uc.Update(ctx, admin, dto.UpdateOrganizationRequest{Name: &blank})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bad := "no-email"
	_, err = uc.Update(ctx, admin, dto.UpdateOrganizationRequest{Email: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	name, email := "Acme SAS", "Ventas@Acme.com"
	_, err = uc.Update(ctx, employee, dto.UpdateOrganizationRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := uc.Update(ctx, admin, dto.UpdateOrganizationRequest{Name: &name, Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "Acme SAS", out.Name)
	assert.Equal(t, "ventas@acme.com", out.Email)

	_, err = uc.Get(ctx, dto.Principal{OrganizationID: "org-x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
