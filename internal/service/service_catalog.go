package service

import (
	"context"
	"fmt"

	"recipebox/internal/logger"
	"recipebox/internal/store"
	"recipebox/internal/validators"
	"recipebox/models"
)

// catalogService is the concrete implementation of CatalogService. It wraps
// one CatalogRepository instance; the same implementation serves both tags
// and ingredients.
type catalogService struct {
	repository store.CatalogRepository
	kind       models.CatalogKind
	validator  validators.Validator
	logger     *logger.Logger
}

// NewCatalogService constructs a CatalogService over the given repository.
func NewCatalogService(repository store.CatalogRepository, kind models.CatalogKind, logger *logger.Logger) CatalogService {
	return &catalogService{
		repository: repository,
		kind:       kind,
		validator:  validators.NewInputValidator(),
		logger:     logger,
	}
}

// List returns the caller's catalog entries, name-descending. With
// assignedOnly set, entries not referenced by any recipe are excluded and
// multiply-referenced entries appear once.
func (c *catalogService) List(ctx context.Context, ownerID int64, assignedOnly bool) ([]models.CatalogItem, error) {
	log := logger.FromContext(ctx)

	items, err := c.repository.ListOwned(ctx, ownerID, assignedOnly)
	if err != nil {
		log.Err(err).
			Str("kind", string(c.kind)).
			Int64("user_id", ownerID).
			Msg("catalog listing failed")
		return nil, fmt.Errorf("catalog listing failed: %w", err)
	}

	return items, nil
}

// Create stores a new catalog entry. The name must contain at least one
// non-whitespace character; ownership always follows ownerID regardless of
// anything the transport decoded.
func (c *catalogService) Create(ctx context.Context, ownerID int64, name string) (models.CatalogItem, error) {
	log := logger.FromContext(ctx)

	if err := c.validator.Validate(ctx, models.CreateCatalogItemRequest{Name: name}); err != nil {
		log.Err(err).Str("kind", string(c.kind)).Msg("catalog item rejected")
		return models.CatalogItem{}, err
	}

	created, err := c.repository.Create(ctx, models.CatalogItem{
		UserID: ownerID,
		Name:   name,
	})
	if err != nil {
		log.Err(err).
			Str("kind", string(c.kind)).
			Int64("user_id", ownerID).
			Msg("catalog item creation failed")
		return models.CatalogItem{}, fmt.Errorf("catalog item creation failed: %w", err)
	}

	return created, nil
}
