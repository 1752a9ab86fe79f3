// Command seeduser bootstraps the first Manager account.
// Usage: go run ./cmd/seeduser -email manager@fideliz.local -password s3cret123 -name "Demo Manager"
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"github.com/DiegoMeloCoder/FidelizDiego/internal/config"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/dto"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/infra"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/repository"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	email := flag.String("email", "manager@fideliz.local", "sign-in e-mail")
	password := flag.String("password", "fideliz2026", "initial password (min 8 chars)")
	name := flag.String("name", "Demo Manager", "display name")
	flag.Parse()

	if len(*password) < 8 {
		log.Fatal().Msg("password must be at least 8 characters")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// always migrate: this is usually the first thing run against a new database
	db, err := infra.NewDatabase(cfg.DatabaseURL, true)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	users := service.NewUserService(
		repository.NewCredentialRepository(db),
		repository.NewProfileRepository(db),
		repository.NewTenantRepository(db),
		nil,
	)

	resp, err := users.CreateManager(context.Background(), dto.CreateUserRequest{
		Name:     *name,
		Email:    *email,
		Password: *password,
	})
	var verr *service.ValidationError
	if errors.As(err, &verr) && verr.Field == "email" {
		log.Warn().Str("email", *email).Msg("manager already exists, nothing to do")
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create manager")
	}
	log.Info().Str("user_id", resp.ID).Str("email", resp.Email).Msg("manager created")
}
