package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipebox/internal/logger"
	"recipebox/internal/validators"
	"recipebox/models"
)

func TestCatalogList_PassesOwnerAndFlag(t *testing.T) {
	repo := &mockCatalogRepository{
		listOwnedFn: func(_ context.Context, ownerID int64, assignedOnly bool) ([]models.CatalogItem, error) {
			assert.Equal(t, int64(7), ownerID)
			assert.True(t, assignedOnly)
			return []models.CatalogItem{{ID: 1, UserID: 7, Name: "Vegan"}}, nil
		},
	}
	svc := NewCatalogService(repo, models.CatalogTags, logger.Nop())

	items, err := svc.List(context.Background(), 7, true)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Vegan", items[0].Name)
}

func TestCatalogList_RepositoryError(t *testing.T) {
	repo := &mockCatalogRepository{
		listOwnedFn: func(_ context.Context, _ int64, _ bool) ([]models.CatalogItem, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := NewCatalogService(repo, models.CatalogIngredients, logger.Nop())

	_, err := svc.List(context.Background(), 7, false)
	require.Error(t, err)
}

func TestCatalogCreate_ForcesOwner(t *testing.T) {
	repo := &mockCatalogRepository{
		createFn: func(_ context.Context, item models.CatalogItem) (models.CatalogItem, error) {
			assert.Equal(t, int64(7), item.UserID)
			item.ID = 1
			return item, nil
		},
	}
	svc := NewCatalogService(repo, models.CatalogTags, logger.Nop())

	created, err := svc.Create(context.Background(), 7, "Dessert")
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, int64(7), created.UserID)
}

func TestCatalogCreate_BlankName(t *testing.T) {
	svc := NewCatalogService(&mockCatalogRepository{}, models.CatalogTags, logger.Nop())

	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := svc.Create(context.Background(), 7, name)

		ve, ok := validators.AsValidationError(err)
		require.True(t, ok, "expected validation error for %q, got %v", name, err)
		assert.Equal(t, "name", ve.Field)
	}
}
