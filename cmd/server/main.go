package main

import (
	"context"
	"fmt"

	"recipebox/internal/config"
	"recipebox/internal/handler"
	"recipebox/internal/logger"
	"recipebox/internal/server"
	"recipebox/internal/service"
	"recipebox/internal/store"
	"recipebox/internal/validators"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("recipebox-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	services := service.NewServices(storages, cfg.App, log)

	bootstrapAdmin(ctx, services.AccountService, cfg.App, log)

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, cfg.Storage.Files.UploadDir, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

// bootstrapAdmin creates the configured superuser account on startup. An
// already registered admin email is not an error: restarts must be
// idempotent.
func bootstrapAdmin(ctx context.Context, accounts service.AccountService, cfg config.App, log *logger.Logger) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return
	}

	admin, err := accounts.RegisterPrivileged(ctx, "", "", "admin", cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		if _, ok := validators.AsValidationError(err); ok {
			log.Info().Str("email", cfg.AdminEmail).Msg("admin account already exists")
			return
		}
		log.Fatal().Err(err).Msg("error creating admin account")
	}

	log.Info().Int64("id", admin.UserID).Str("email", admin.Email).Msg("admin account created")
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
