// @title                       SalesFlow API
// @version                     1.0
// @description                 Ventas, reuniones, invitaciones y tableros de un equipo comercial.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/salesflow-api/docs"
	"github.com/jhoicas/salesflow-api/internal/application/analytics"
	"github.com/jhoicas/salesflow-api/internal/application/auth"
	"github.com/jhoicas/salesflow-api/internal/application/ports"
	"github.com/jhoicas/salesflow-api/internal/application/usecase"
	"github.com/jhoicas/salesflow-api/internal/domain/entity"
	"github.com/jhoicas/salesflow-api/internal/domain/repository"
	"github.com/jhoicas/salesflow-api/internal/infrastructure/idp"
	"github.com/jhoicas/salesflow-api/internal/infrastructure/mailer"
	"github.com/jhoicas/salesflow-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/salesflow-api/internal/infrastructure/pdf"
	"github.com/jhoicas/salesflow-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/salesflow-api/internal/interfaces/http"
	"github.com/jhoicas/salesflow-api/pkg/config"
	"github.com/jhoicas/salesflow-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// stores puertos de persistencia según DB_DRIVER.
type stores struct {
	users    repository.UserRepository
	sales    repository.SaleRepository
	meetings repository.MeetingRepository
	orgs     repository.OrganizationRepository
	invites  repository.InviteRepository
	tx       auth.InviteTxRunner
	ping     func(ctx context.Context) error
	close    func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacén")
	}
	defer st.close()

	userUC := usecase.NewUserUseCase(st.users)
	dashboardUC := analytics.NewDashboardUseCase(st.users, st.sales, st.meetings, st.orgs)
	exportUC := analytics.NewExportUseCase(dashboardUC, infrapdf.NewTeamReportGenerator())
	authUC := auth.NewAuthUseCase(st.users, st.invites, st.tx, invitationSender(cfg, log), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	// Prometheus solo admite [a-zA-Z0-9_] en el namespace.
	metrics := httpRouter.NewMetrics(strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(cfg.App.Name))
	app.Use(recover.New())
	app.Use(httpRouter.RequestID())
	app.Use(httpRouter.AccessLog(log.Component("http")))
	app.Use(metrics.Middleware())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "SalesFlow API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		UserUC:                userUC,
		SaleUC:                usecase.NewSaleUseCase(st.sales),
		MeetingUC:             usecase.NewMeetingUseCase(st.meetings),
		Organization:          usecase.NewOrganizationUseCase(st.orgs),
		AuthUC:                authUC,
		Dashboard:             dashboardUC,
		Export:                exportUC,
		Metrics:               metrics,
		JWTSecret:             cfg.JWT.Secret,
		DefaultOrganizationID: cfg.App.DefaultOrganizationID,
		LocalLogin:            cfg.App.LocalLogin,
		PublicRPM:             cfg.RateLimit.PublicRPM,
		PublicBurst:           cfg.RateLimit.PublicBurst,
		Ping:                  st.ping,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	if cfg.DB.Driver == "memory" {
		log.Warn().Msg("DB_DRIVER=memory: los datos se pierden al reiniciar")
		s := memory.NewStore()
		if id := cfg.App.DefaultOrganizationID; id != "" {
			now := time.Now().UTC()
			org := &entity.Organization{ID: id, Name: cfg.App.Name, CreatedAt: now, UpdatedAt: now}
			if err := s.Organizations().Create(ctx, org); err != nil {
				return nil, err
			}
		}
		return &stores{
			users:    s.Users(),
			sales:    s.Sales(),
			meetings: s.Meetings(),
			orgs:     s.Organizations(),
			invites:  s.Invites(),
			tx:       memory.NewTxRunner(s),
			close:    func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.Migrate {
		version, err := postgres.ApplyMigrations(pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Uint("version", version).Msg("migraciones aplicadas")
	}
	return &stores{
		users:    postgres.NewUserRepository(pool),
		sales:    postgres.NewSaleRepository(pool),
		meetings: postgres.NewMeetingRepository(pool),
		orgs:     postgres.NewOrganizationRepository(pool),
		invites:  postgres.NewInviteRepository(pool),
		tx:       postgres.NewTxRunner(pool),
		ping:     pool.Ping,
		close:    pool.Close,
	}, nil
}

// invitationSender usa la API del proveedor de identidad si está configurada; si no, SMTP.
func invitationSender(cfg *config.Config, log *logger.Logger) ports.InvitationSender {
	if cfg.IdP.APIURL != "" {
		log.Info().Str("url", cfg.IdP.APIURL).Msg("invitaciones vía proveedor de identidad")
		return idp.NewClient(cfg.IdP.APIURL, cfg.IdP.APIKey, cfg.IdP.InviteRedirectURL)
	}
	if cfg.SMTP.Host == "" {
		log.Warn().Msg("sin IDP_API_URL ni SMTP_HOST: las invitaciones fallarán al enviarse")
	}
	return mailer.NewSMTPSender(cfg.SMTP, cfg.App.Name, cfg.IdP.InviteRedirectURL)
}
