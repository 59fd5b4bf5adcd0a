package service

import (
	"recipebox/internal/config"
	"recipebox/internal/logger"
	"recipebox/internal/store"
	"recipebox/models"
)

// Services bundles every business-logic service of the application.
type Services struct {
	AccountService    AccountService
	TagService        CatalogService
	IngredientService CatalogService
	RecipeService     RecipeService
}

// NewServices wires the services over the given storages.
func NewServices(storages *store.Storages, cfg config.App, logger *logger.Logger) *Services {
	logger.Debug().Msg("creating services")

	return &Services{
		AccountService:    NewAccountService(storages.AccountRepository, cfg, logger),
		TagService:        NewCatalogService(storages.TagRepository, models.CatalogTags, logger),
		IngredientService: NewCatalogService(storages.IngredientRepository, models.CatalogIngredients, logger),
		RecipeService: NewRecipeService(
			storages.RecipeRepository,
			storages.TagRepository,
			storages.IngredientRepository,
			storages.ImageStorage,
			logger,
		),
	}
}
