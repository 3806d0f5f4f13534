// Comando seed: crea el usuario admin inicial si no existe todavía.
// Uso: SEED_ADMIN_PASSWORD=... go run ./cmd/seed
package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"github.com/tu-usuario/mini-crm/internal/domain/entity"
	"github.com/tu-usuario/mini-crm/internal/infrastructure/postgres"
	"github.com/tu-usuario/mini-crm/pkg/config"
	"github.com/tu-usuario/mini-crm/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	v := viper.New()
	v.AutomaticEnv()
	username := v.GetString("SEED_ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	email := v.GetString("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@localhost"
	}
	password := v.GetString("SEED_ADMIN_PASSWORD")
	if password == "" {
		log.Fatal().Msg("SEED_ADMIN_PASSWORD es requerido")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)

	existing, err := userRepo.GetByUsername(username)
	if err != nil {
		log.Fatal().Err(err).Msg("consultar usuario admin")
	}
	if existing != nil {
		log.Info().Str("username", username).Msg("el usuario admin ya existe, nada que hacer")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hashear password")
	}

	now := time.Now()
	admin := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		Enabled:      true,
		Locked:       false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := userRepo.Create(admin); err != nil {
		log.Fatal().Err(err).Msg("crear usuario admin")
	}
	log.Info().Str("username", username).Msg("usuario admin creado")
}
