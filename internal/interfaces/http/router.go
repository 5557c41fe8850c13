package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/salesflow-api/internal/application/analytics"
	"github.com/jhoicas/salesflow-api/internal/application/auth"
	"github.com/jhoicas/salesflow-api/internal/application/dto"
	"github.com/jhoicas/salesflow-api/internal/application/usecase"
	"github.com/jhoicas/salesflow-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	UserUC       *usecase.UserUseCase
	SaleUC       *usecase.SaleUseCase
	MeetingUC    *usecase.MeetingUseCase
	Organization *usecase.OrganizationUseCase
	AuthUC       *auth.AuthUseCase
	Dashboard    *analytics.DashboardUseCase
	Export       *analytics.ExportUseCase
	Metrics      *Metrics // nil: sin /metrics

	JWTSecret             string
	DefaultOrganizationID string
	LocalLogin            bool
	PublicRPM             int
	PublicBurst           int

	// Ping comprueba el almacén para /health. nil: siempre disponible.
	Ping func(ctx context.Context) error
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", healthHandler(deps.Ping))
	if deps.Metrics != nil {
		app.Get("/metrics", deps.Metrics.Handler())
	}

	api := app.Group("/api")
	authn := AuthMiddleware(deps.JWTSecret, deps.DefaultOrganizationID)
	active := RequireActiveMember(deps.UserUC)
	admin := RequireRole(entity.RoleAdmin)

	// Auth (público, con límite por IP)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Metrics)
	public := api.Group("/auth", RateLimitByIP(deps.PublicRPM, deps.PublicBurst))
	public.Post("/signup", authHandler.Signup)
	if deps.LocalLogin {
		public.Post("/token", authHandler.Token)
	}

	// Usuario propio
	userHandler := NewUserHandler(deps.UserUC)
	api.Get("/user", authn, userHandler.Me)
	api.Post("/users", authn, userHandler.Provision)

	// Sales
	saleHandler := NewSaleHandler(deps.SaleUC)
	sales := api.Group("/sales", authn)
	sales.Get("/mine", saleHandler.ListMine)
	sales.Get("/", saleHandler.List)
	sales.Post("/", active, saleHandler.Create)

	// Meetings
	meetingHandler := NewMeetingHandler(deps.MeetingUC)
	meetings := api.Group("/meetings", authn)
	meetings.Get("/mine", meetingHandler.ListMine)
	meetings.Get("/", meetingHandler.List)
	meetings.Post("/", active, meetingHandler.Create)
	meetings.Patch("/:id/status", active, meetingHandler.UpdateStatus)

	// Organization
	orgHandler := NewOrganizationHandler(deps.Organization)
	api.Get("/organization", authn, orgHandler.Get)
	api.Put("/organization", authn, admin, active, orgHandler.Update)

	// Dashboard del vendedor
	dashHandler := NewDashboardHandler(deps.Dashboard, deps.Export)
	api.Get("/dashboard", authn, dashHandler.Mine)

	// Admin (JWT + rol admin + cuenta activa)
	adminGroup := api.Group("/admin", authn, admin, active)
	adminGroup.Post("/invite", authHandler.Invite)
	adminGroup.Get("/invites", authHandler.ListInvites)
	adminGroup.Get("/users", userHandler.List)
	adminGroup.Patch("/users/:id/status", userHandler.SetStatus)
	adminGroup.Delete("/users/:id", userHandler.Delete)
	adminGroup.Get("/dashboard", dashHandler.Admin)
	adminGroup.Get("/reports/team", dashHandler.Team)
	adminGroup.Get("/reports/export", dashHandler.Export)
}

// healthHandler godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /health [get]
func healthHandler(ping func(ctx context.Context) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				logServerError(c, err)
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "UNAVAILABLE", Error: "almacén no disponible"})
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
