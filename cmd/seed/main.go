// seed prepara una base PostgreSQL para uso local: aplica migraciones, crea la organización
// y la cuenta admin con password local, y carga reuniones de ejemplo.
//
// Uso: go run ./cmd/seed [-email admin@x.com] [-password ...] [-fixtures ./fixtures]
// Es idempotente: lo que ya existe no se vuelve a crear.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/salesflow-api/internal/application/dto"
	"github.com/jhoicas/salesflow-api/internal/application/usecase"
	"github.com/jhoicas/salesflow-api/internal/domain/entity"
	"github.com/jhoicas/salesflow-api/internal/infrastructure/postgres"
	"github.com/jhoicas/salesflow-api/pkg/config"
	"github.com/jhoicas/salesflow-api/pkg/logger"
)

const bcryptCost = 12

// meetingFixture reunión de ejemplo; Status distinto de Scheduled se aplica tras crearla.
type meetingFixture struct {
	dto.CreateMeetingRequest
	Status string `json:"status"`
}

func main() {
	email := flag.String("email", envOr("SEED_ADMIN_EMAIL", "founder@saivyy.example"), "email del admin")
	password := flag.String("password", os.Getenv("SEED_ADMIN_PASSWORD"), "password local del admin")
	name := flag.String("name", "Admin User", "nombre del admin")
	fixtures := flag.String("fixtures", "fixtures", "directorio con organization.json y meetings.json")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})

	if *password == "" {
		log.Fatal().Msg("indique -password o SEED_ADMIN_PASSWORD")
	}
	orgID := cfg.App.DefaultOrganizationID
	if orgID == "" {
		log.Fatal().Msg("DEFAULT_ORGANIZATION_ID es obligatorio para el seed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conectar a PostgreSQL")
	}
	defer pool.Close()

	version, err := postgres.ApplyMigrations(pool)
	if err != nil {
		log.Fatal().Err(err).Msg("aplicar migraciones")
	}
	log.Info().Uint("version", version).Msg("esquema al día")

	orgs := postgres.NewOrganizationRepository(pool)
	users := postgres.NewUserRepository(pool)
	meetings := postgres.NewMeetingRepository(pool)

	// 1. Organización
	existingOrg, err := orgs.GetByID(ctx, orgID)
	if err != nil {
		log.Fatal().Err(err).Msg("consultar organización")
	}
	if existingOrg == nil {
		var org entity.Organization
		if err := readJSON(filepath.Join(*fixtures, "organization.json"), &org); err != nil {
			log.Fatal().Err(err).Msg("leer organization.json")
		}
		now := time.Now().UTC()
		org.ID, org.CreatedAt, org.UpdatedAt = orgID, now, now
		if err := orgs.Create(ctx, &org); err != nil {
			log.Fatal().Err(err).Msg("crear organización")
		}
		log.Info().Str("organization_id", orgID).Str("name", org.Name).Msg("organización creada")
	} else {
		log.Info().Str("organization_id", orgID).Msg("organización existente, se omite")
	}

	// 2. Admin con password local
	admin, err := users.GetByEmail(ctx, usecase.NormalizeEmail(*email))
	if err != nil {
		log.Fatal().Err(err).Msg("consultar admin")
	}
	if admin == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcryptCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hash de password")
		}
		now := time.Now().UTC()
		admin = &entity.User{
			ID:             uuid.New().String(),
			OrganizationID: orgID,
			ExternalID:     uuid.New().String(),
			Email:          usecase.NormalizeEmail(*email),
			PasswordHash:   string(hash),
			Name:           *name,
			Role:           entity.RoleAdmin,
			IsActive:       true,
			JoinDate:       now,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := users.Create(ctx, admin); err != nil {
			log.Fatal().Err(err).Msg("crear admin")
		}
		log.Info().Str("email", admin.Email).Msg("admin creado")
	} else {
		log.Info().Str("email", admin.Email).Msg("admin existente, se omite")
	}

	// 3. Reuniones de ejemplo del admin
	owned, err := meetings.ListByUser(ctx, orgID, admin.ExternalID)
	if err != nil {
		log.Fatal().Err(err).Msg("listar reuniones")
	}
	if len(owned) > 0 {
		log.Info().Int("count", len(owned)).Msg("el admin ya tiene reuniones, se omiten fixtures")
		return
	}
	var fixturesList []meetingFixture
	if err := readJSON(filepath.Join(*fixtures, "meetings.json"), &fixturesList); err != nil {
		log.Fatal().Err(err).Msg("leer meetings.json")
	}

	principal := dto.Principal{
		ExternalID:     admin.ExternalID,
		OrganizationID: orgID,
		Role:           entity.RoleAdmin,
		Email:          admin.Email,
		Name:           admin.Name,
	}
	meetingUC := usecase.NewMeetingUseCase(meetings)
	for i, f := range fixturesList {
		m, err := meetingUC.Create(ctx, principal, f.CreateMeetingRequest)
		if err != nil {
			log.Fatal().Err(err).Int("index", i).Msg("crear reunión")
		}
		if f.Status != "" && f.Status != entity.MeetingStatusScheduled {
			if _, err := meetingUC.UpdateStatus(ctx, principal, m.ID, dto.UpdateMeetingStatusRequest{Status: f.Status}); err != nil {
				log.Fatal().Err(err).Int("index", i).Msg("actualizar estado de reunión")
			}
		}
	}
	log.Info().Int("count", len(fixturesList)).Msg("reuniones de ejemplo cargadas")
}

func readJSON(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
