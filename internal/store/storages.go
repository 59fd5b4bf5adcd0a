package store

import (
	"context"
	"fmt"

	"recipebox/internal/config"
	"recipebox/internal/logger"
	"recipebox/models"
)

// Storages aggregates every repository of the application and is passed as
// one unit to the service layer.
type Storages struct {
	AccountRepository    AccountRepository
	TagRepository        CatalogRepository
	IngredientRepository CatalogRepository
	RecipeRepository     RecipeRepository
	ImageStorage         ImageFileStorage
}

// NewStorages connects to the database, applies migrations, and constructs
// all repositories plus the image file storage.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, logger)
	if err != nil {
		logger.Err(err).Msg("connection to database failed")
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		logger.Err(err).Msg("applying migrations failed")
		return nil, fmt.Errorf("applying migrations failed: %w", err)
	}

	imageStorage, err := NewImageFileStorage(cfg.Files, logger)
	if err != nil {
		return nil, err
	}

	return &Storages{
		AccountRepository:    NewAccountRepository(db, logger),
		TagRepository:        NewCatalogRepository(db, models.CatalogTags, logger),
		IngredientRepository: NewCatalogRepository(db, models.CatalogIngredients, logger),
		RecipeRepository:     NewRecipeRepository(db, logger),
		ImageStorage:         imageStorage,
	}, nil
}
