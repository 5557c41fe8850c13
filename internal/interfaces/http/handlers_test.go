package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/salesflow-api/internal/application/analytics"
	"github.com/jhoicas/salesflow-api/internal/application/auth"
	"github.com/jhoicas/salesflow-api/internal/application/dto"
	"github.com/jhoicas/salesflow-api/internal/application/usecase"
	"github.com/jhoicas/salesflow-api/internal/domain/entity"
	"github.com/jhoicas/salesflow-api/internal/domain/reporting"
	"github.com/jhoicas/salesflow-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/salesflow-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/salesflow-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: app completa sobre el almacén en memoria
// ──────────────────────────────────────────────────────────────────────────────

const (
	adminExt    = "idp_admin"
	employeeExt = "idp_employee"
	adminPass   = "s3cret-pass"
	adminID     = "00000000-0000-0000-0000-0000000000a1"
	employeeID  = "00000000-0000-0000-0000-0000000000a2"
)

type fakeSender struct {
	err   error
	calls int
}

func (f *fakeSender) SendInvitation(_ context.Context, email string) (*dto.InvitationResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &dto.InvitationResult{ID: "inv_1", Provider: "fake", EmailAddress: email, Status: "pending"}, nil
}

type fakeRenderer struct{}

func (fakeRenderer) RenderTeamReport(context.Context, *entity.Organization, []reporting.MemberRollup, time.Time) ([]byte, error) {
	return []byte("%PDF-1.3 fake"), nil
}

type testServer struct {
	app    *fiber.App
	store  *memory.Store
	sender *fakeSender
}

type serverOption func(*apphttp.RouterDeps)

func newTestServer(t *testing.T, opts ...serverOption) *testServer {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	now := time.Now().UTC()

	require.NoError(t, store.Organizations().Create(ctx, &entity.Organization{
		ID: testOrgID, Name: "Acme", Industry: "Software", CreatedAt: now, UpdatedAt: now,
	}))
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPass), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, store.Users().Create(ctx, &entity.User{
		ID: adminID, OrganizationID: testOrgID, ExternalID: adminExt, Email: "admin@acme.com",
		PasswordHash: string(hash), Name: "Admin", Role: entity.RoleAdmin, IsActive: true,
		JoinDate: now, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, store.Users().Create(ctx, &entity.User{
		ID: employeeID, OrganizationID: testOrgID, ExternalID: employeeExt, Email: "emp@acme.com",
		Name: "Emp", Role: entity.RoleEmployee, IsActive: true,
		JoinDate: now, CreatedAt: now.Add(time.Second), UpdatedAt: now,
	}))

	sender := &fakeSender{}
	userUC := usecase.NewUserUseCase(store.Users())
	dash := analytics.NewDashboardUseCase(store.Users(), store.Sales(), store.Meetings(), store.Organizations())
	deps := apphttp.RouterDeps{
		UserUC:       userUC,
		SaleUC:       usecase.NewSaleUseCase(store.Sales()),
		MeetingUC:    usecase.NewMeetingUseCase(store.Meetings()),
		Organization: usecase.NewOrganizationUseCase(store.Organizations()),
		AuthUC: auth.NewAuthUseCase(store.Users(), store.Invites(), memory.NewTxRunner(store), sender,
			auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		Dashboard:             dash,
		Export:                analytics.NewExportUseCase(dash, fakeRenderer{}),
		Metrics:               apphttp.NewMetrics("salesflow"),
		JWTSecret:             testJWTSecret,
		DefaultOrganizationID: testOrgID,
		LocalLogin:            true,
		PublicRPM:             600,
		PublicBurst:           100,
	}
	for _, o := range opts {
		o(&deps)
	}

	app := fiber.New()
	app.Use(apphttp.RequestID(), deps.Metrics.Middleware())
	apphttp.Router(app, deps)
	return &testServer{app: app, store: store, sender: sender}
}

func adminToken(t *testing.T) string {
	return signToken(t, pkgjwt.Identity{Subject: adminExt, OrganizationID: testOrgID, Role: "admin", Email: "admin@acme.com"})
}

func employeeToken(t *testing.T) string {
	return signToken(t, pkgjwt.Identity{Subject: employeeExt, OrganizationID: testOrgID, Role: "employee", Email: "emp@acme.com"})
}

func (s *testServer) do(t *testing.T, method, path, token, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Invitaciones y registro
// ──────────────────────────────────────────────────────────────────────────────

func TestInvite_DosVecesDevuelveAlreadyInvited(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodPost, "/api/admin/invite", adminToken(t), `{"email":"a@x.com"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.InviteResponse](t, resp)
	assert.True(t, out.Success)
	assert.Equal(t, "a@x.com", out.Invite.Email)
	require.NotNil(t, out.Invitation)
	assert.Equal(t, "pending", out.Invitation.Status)

	resp = s.do(t, http.MethodPost, "/api/admin/invite", adminToken(t), `{"email":"A@X.com"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errBody := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "ALREADY_INVITED", errBody.Code)
	assert.Equal(t, 1, s.sender.calls)
}

func TestInvite_UsuarioActivoExistente(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodPost, "/api/admin/invite", adminToken(t), `{"email":"emp@acme.com"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "USER_EXISTS", decode[dto.ErrorResponse](t, resp).Code)
}

func TestInvite_EmailInvalido(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodPost, "/api/admin/invite", adminToken(t), `{"email":"no-es-email"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Equal(t, "email", body.Field)
}

func TestInvite_FalloDelProveedorRevierteInvitacion(t *testing.T) {
	s := newTestServer(t)
	s.sender.err = errors.New("idp caído")

	resp := s.do(t, http.MethodPost, "/api/admin/invite", adminToken(t), `{"email":"b@x.com"}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INVITATION_FAILED", body.Code)
	assert.NotContains(t, body.Error, "idp caído", "no se filtra el detalle interno")

	list := decode[dto.InviteListResponse](t, s.do(t, http.MethodGet, "/api/admin/invites", adminToken(t), ""))
	assert.Empty(t, list.Invites)

	// Con el proveedor recuperado la misma invitación entra.
	s.sender.err = nil
	resp = s.do(t, http.MethodPost, "/api/admin/invite", adminToken(t), `{"email":"b@x.com"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestInvite_EmployeeNoPuedeInvitar(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodPost, "/api/admin/invite", employeeToken(t), `{"email":"c@x.com"}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestSignup_SinInvitacion_403(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodPost, "/api/auth/signup", "", `{"email":"nadie@x.com"}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "NOT_INVITED", decode[dto.ErrorResponse](t, resp).Code)
}

func TestSignup_UsuarioExistente_403(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodPost, "/api/auth/signup", "", `{"email":"emp@acme.com"}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "USER_EXISTS", decode[dto.ErrorResponse](t, resp).Code)
}

func TestSignup_InvitadoConsumeInvitacion(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/admin/invite", adminToken(t), `{"email":"new@x.com"}`).StatusCode)

	resp := s.do(t, http.MethodPost, "/api/auth/signup", "", `{"email":"new@x.com"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Email invitado, registro permitido", decode[dto.MessageResponse](t, resp).Message)

	// La invitación ya está usada.
	resp = s.do(t, http.MethodPost, "/api/auth/signup", "", `{"email":"new@x.com"}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	list := decode[dto.InviteListResponse](t, s.do(t, http.MethodGet, "/api/admin/invites", adminToken(t), ""))
	assert.Empty(t, list.Invites)
}

func TestSignup_LimitePorIP(t *testing.T) {
	s := newTestServer(t, func(d *apphttp.RouterDeps) {
		d.PublicRPM = 1
		d.PublicBurst = 1
	})
	first := s.do(t, http.MethodPost, "/api/auth/signup", "", `{"email":"x@x.com"}`)
	first.Body.Close()
	assert.NotEqual(t, http.StatusTooManyRequests, first.StatusCode)

	resp := s.do(t, http.MethodPost, "/api/auth/signup", "", `{"email":"x@x.com"}`)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))
	assert.Equal(t, "RATE_LIMITED", decode[dto.ErrorResponse](t, resp).Code)
}

func TestToken_LoginLocal(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodPost, "/api/auth/token", "", `{"email":"admin@acme.com","password":"`+adminPass+`"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.LoginResponse](t, resp)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, "admin", out.User.Role)

	// El token emitido sirve contra rutas de admin.
	resp = s.do(t, http.MethodGet, "/api/admin/users", "Bearer "+out.Token, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.do(t, http.MethodPost, "/api/auth/token", "", `{"email":"admin@acme.com","password":"mala"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_CREDENTIALS", decode[dto.ErrorResponse](t, resp).Code)
}

func TestToken_DeshabilitadoNoRegistraRuta(t *testing.T) {
	s := newTestServer(t, func(d *apphttp.RouterDeps) { d.LocalLogin = false })
	resp := s.do(t, http.MethodPost, "/api/auth/token", "", `{"email":"admin@acme.com","password":"x"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestUser_AprovisionamientoIdempotente(t *testing.T) {
	s := newTestServer(t)
	tok := signToken(t, pkgjwt.Identity{Subject: "idp_new", OrganizationID: testOrgID, Role: "employee", Email: "New@X.com"})

	resp := s.do(t, http.MethodGet, "/api/user", tok, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodPost, "/api/users", tok, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	first := decode[dto.UserResponse](t, resp)
	assert.Equal(t, "new@x.com", first.Email)
	assert.Equal(t, "new@x.com", first.Name, "sin nombre se usa el email")
	assert.Equal(t, "employee", first.Role)

	second := decode[dto.UserResponse](t, s.do(t, http.MethodPost, "/api/users", tok, `{"fullName":"Nueva"}`))
	assert.Equal(t, first.ID, second.ID)

	me := decode[dto.UserResponse](t, s.do(t, http.MethodGet, "/api/user", tok, ""))
	assert.Equal(t, first.ID, me.ID)
}

func TestAdminUsers_DesactivarYBloquearEscrituras(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodPatch, "/api/admin/users/"+employeeID+"/status", adminToken(t), `{"isActive":false}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, decode[dto.UserResponse](t, resp).IsActive)

	resp = s.do(t, http.MethodPost, "/api/sales", employeeToken(t),
		`{"client":"Globex","amount":10,"status":"Pending","date":"2024-01-05"}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "ACCOUNT_INACTIVE", decode[dto.ErrorResponse](t, resp).Code)

	// Las lecturas siguen permitidas.
	resp = s.do(t, http.MethodGet, "/api/sales/mine", employeeToken(t), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminUsers_NoPuedeModificarseASiMismo(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodDelete, "/api/admin/users/"+adminID, adminToken(t), "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = s.do(t, http.MethodDelete, "/api/admin/users/"+employeeID, adminToken(t), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, dto.DeleteUserResponse{Success: true, ID: employeeID}, decode[dto.DeleteUserResponse](t, resp))

	resp = s.do(t, http.MethodDelete, "/api/admin/users/"+employeeID, adminToken(t), "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestSales_MontoNoNumerico_400(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodPost, "/api/sales", employeeToken(t),
		`{"client":"Globex","amount":"abc","status":"Pending","date":"2024-01-05"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Equal(t, "amount", body.Field)
}

func TestSales_MontoFueraDeRango_400(t *testing.T) {
	s := newTestServer(t)
	for _, amount := range []string{`1e200000000`, `"1e-200000000"`, `1000000000000`} {
		resp := s.do(t, http.MethodPost, "/api/sales", employeeToken(t),
			`{"client":"Globex","amount":`+amount+`,"status":"Pending","date":"2024-01-05"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, amount)
		assert.Equal(t, "amount", decode[dto.ErrorResponse](t, resp).Field, amount)
	}
}

func TestSales_SinToken_401(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodPost, "/api/sales", "", `{"client":"Globex","amount":1}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSales_CrearYListar(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodPost, "/api/sales", employeeToken(t),
		`{"client":"Globex","amount":1500,"status":"closed","category":"software","date":"2024-02-10"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	created := decode[dto.CreateSaleResponse](t, resp).Sale
	assert.Equal(t, "Closed", created.Status)
	assert.Equal(t, employeeExt, created.UserID)
	assert.True(t, created.Amount.Equal(decimal.NewFromInt(1500)))

	resp = s.do(t, http.MethodPost, "/api/sales", adminToken(t),
		`{"client":"Initech","amount":"99.5","status":"Pending","date":"2024-03-01"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	mine := decode[[]dto.SaleResponse](t, s.do(t, http.MethodGet, "/api/sales/mine", employeeToken(t), ""))
	require.Len(t, mine, 1)
	assert.Equal(t, "Globex", mine[0].Client)

	all := decode[dto.SaleListResponse](t, s.do(t, http.MethodGet, "/api/sales", employeeToken(t), ""))
	require.Len(t, all.Sales, 2)
	assert.Equal(t, "Initech", all.Sales[0].Client, "más reciente por fecha primero")
}

// ──────────────────────────────────────────────────────────────────────────────
// Reuniones
// ──────────────────────────────────────────────────────────────────────────────

func TestMeetings_TransicionUnica(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodPost, "/api/meetings", employeeToken(t),
		`{"title":"Demo","clientName":"Globex","date":"2030-05-10","time":"10:00","type":"demo"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	m := decode[dto.MeetingResponse](t, resp)
	assert.Equal(t, "Scheduled", m.Status)
	assert.Equal(t, 60, m.DurationMinutes)
	assert.Equal(t, "medium", m.Priority)

	resp = s.do(t, http.MethodPatch, "/api/meetings/"+m.ID+"/status", employeeToken(t), `{"status":"Success"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Success", decode[dto.MeetingResponse](t, resp).Status)

	resp = s.do(t, http.MethodPatch, "/api/meetings/"+m.ID+"/status", employeeToken(t), `{"status":"Failed"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INVALID_TRANSITION", decode[dto.ErrorResponse](t, resp).Code)
}

func TestMeetings_SoloDuenoOAdmin(t *testing.T) {
	s := newTestServer(t)
	m := decode[dto.MeetingResponse](t, s.do(t, http.MethodPost, "/api/meetings", adminToken(t),
		`{"title":"Kickoff","clientName":"Initech","date":"2030-05-11","time":"09:30"}`))

	other := signToken(t, pkgjwt.Identity{Subject: "idp_other", OrganizationID: testOrgID, Role: "employee"})
	resp := s.do(t, http.MethodPatch, "/api/meetings/"+m.ID+"/status", other, `{"status":"Failed"}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = s.do(t, http.MethodPatch, "/api/meetings/no-existe/status", adminToken(t), `{"status":"Failed"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestIDsMalformados_404(t *testing.T) {
	s := newTestServer(t)
	cases := []struct{ method, path, body string }{
		{http.MethodPatch, "/api/admin/users/no-es-uuid/status", `{"isActive":false}`},
		{http.MethodDelete, "/api/admin/users/1%27%20OR%201=1", ""},
		{http.MethodPatch, "/api/meetings/no-es-uuid/status", `{"status":"Failed"}`},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			resp := s.do(t, tc.method, tc.path, adminToken(t), tc.body)
			assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		})
	}
}

func TestOrgNoUUID_401(t *testing.T) {
	s := newTestServer(t)
	tok := signToken(t, pkgjwt.Identity{Subject: adminExt, OrganizationID: "acme", Role: "admin"})
	resp := s.do(t, http.MethodGet, "/api/sales/mine", tok, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_ORGANIZATION", decode[dto.ErrorResponse](t, resp).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Organización, tableros y exportación
// ──────────────────────────────────────────────────────────────────────────────

func TestOrganization_ActualizarSoloAdmin(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodPut, "/api/organization", employeeToken(t), `{"name":"Otra"}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = s.do(t, http.MethodPut, "/api/organization", adminToken(t), `{"phone":"+57 300"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	org := decode[dto.OrganizationResponse](t, resp)
	assert.Equal(t, "Acme", org.Name)
	assert.Equal(t, "+57 300", org.Phone)

	got := decode[dto.OrganizationResponse](t, s.do(t, http.MethodGet, "/api/organization", employeeToken(t), ""))
	assert.Equal(t, "+57 300", got.Phone)
}

func TestDashboards_AdminYVendedor(t *testing.T) {
	s := newTestServer(t)
	today := time.Now().UTC().Format("2006-01-02")
	for _, body := range []string{
		`{"client":"A","amount":100,"status":"Closed","date":"` + today + `"}`,
		`{"client":"B","amount":200,"status":"Pending","date":"` + today + `"}`,
	} {
		resp := s.do(t, http.MethodPost, "/api/sales", employeeToken(t), body)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	resp := s.do(t, http.MethodGet, "/api/admin/dashboard", adminToken(t), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	admin := decode[dto.AdminDashboardDTO](t, resp)
	assert.True(t, admin.TotalSales.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, 2, admin.TotalUsers)
	assert.Equal(t, 2, admin.ActiveUsers)
	require.NotNil(t, admin.Organization)
	assert.Equal(t, "Acme", admin.Organization.Name)
	require.NotEmpty(t, admin.TopPerformers)
	assert.Equal(t, employeeExt, admin.TopPerformers[0].ExternalID)

	resp = s.do(t, http.MethodGet, "/api/dashboard", employeeToken(t), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	mine := decode[dto.UserDashboardDTO](t, resp)
	assert.True(t, mine.TotalSales.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, 1, mine.PendingSales)
	assert.Len(t, mine.RecentSales, 2)

	resp = s.do(t, http.MethodGet, "/api/admin/dashboard", employeeToken(t), "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestExport_CSVUsuarios(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodGet, "/api/admin/reports/export?dataset=users&format=csv", adminToken(t), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `filename="users-`)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,name,email,role,isActive,joinDate", lines[0])
	assert.Contains(t, string(body), `"admin@acme.com"`)
}

func TestExport_PDFEquipoYFormatoInvalido(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodGet, "/api/admin/reports/export?dataset=team&format=pdf", adminToken(t), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	resp.Body.Close()

	resp = s.do(t, http.MethodGet, "/api/admin/reports/export?dataset=sales&format=pdf", adminToken(t), "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "format", decode[dto.ErrorResponse](t, resp).Field)
}

func TestTeamReport(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodGet, "/api/admin/reports/team", adminToken(t), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[dto.TeamReportDTO](t, resp).Members, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Infraestructura HTTP
// ──────────────────────────────────────────────────────────────────────────────

func TestHealthMetricsYRequestID(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(apphttp.HeaderRequestID))
	resp.Body.Close()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(apphttp.HeaderRequestID, "req-123")
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "req-123", resp.Header.Get(apphttp.HeaderRequestID))
	resp.Body.Close()

	resp = s.do(t, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `salesflow_api_requests_total{method="GET",path="/health"} 2`)
}

func TestHealth_AlmacenCaido(t *testing.T) {
	s := newTestServer(t, func(d *apphttp.RouterDeps) {
		d.Ping = func(context.Context) error { return errors.New("sin conexión") }
	})
	resp := s.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
