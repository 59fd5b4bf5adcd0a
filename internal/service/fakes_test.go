package service

import (
	"context"
	"io"

	"recipebox/models"
)

// Hand-rolled repository fakes. Each method field can be overridden per test
// case; calling an unset method panics, which surfaces unexpected
// interactions immediately.

type mockAccountRepository struct {
	createUserFn      func(ctx context.Context, user models.User) (models.User, error)
	findUserByEmailFn func(ctx context.Context, email string) (models.User, error)
	findUserByIDFn    func(ctx context.Context, userID int64) (models.User, error)
	updateUserFn      func(ctx context.Context, user models.User) (models.User, error)
}

func (m *mockAccountRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	return m.createUserFn(ctx, user)
}

func (m *mockAccountRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return m.findUserByEmailFn(ctx, email)
}

func (m *mockAccountRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return m.findUserByIDFn(ctx, userID)
}

func (m *mockAccountRepository) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	return m.updateUserFn(ctx, user)
}

type mockCatalogRepository struct {
	listOwnedFn  func(ctx context.Context, ownerID int64, assignedOnly bool) ([]models.CatalogItem, error)
	createFn     func(ctx context.Context, item models.CatalogItem) (models.CatalogItem, error)
	countOwnedFn func(ctx context.Context, ownerID int64, ids []int64) (int, error)
}

func (m *mockCatalogRepository) ListOwned(ctx context.Context, ownerID int64, assignedOnly bool) ([]models.CatalogItem, error) {
	return m.listOwnedFn(ctx, ownerID, assignedOnly)
}

func (m *mockCatalogRepository) Create(ctx context.Context, item models.CatalogItem) (models.CatalogItem, error) {
	return m.createFn(ctx, item)
}

func (m *mockCatalogRepository) CountOwned(ctx context.Context, ownerID int64, ids []int64) (int, error) {
	return m.countOwnedFn(ctx, ownerID, ids)
}

// allOwned is a CountOwned implementation that accepts every id.
func allOwned(ctx context.Context, ownerID int64, ids []int64) (int, error) {
	return len(ids), nil
}

type mockRecipeRepository struct {
	listRecipesFn  func(ctx context.Context, ownerID int64, filter models.RecipeFilter) ([]models.Recipe, error)
	getRecipeFn    func(ctx context.Context, ownerID, recipeID int64) (models.Recipe, error)
	createRecipeFn func(ctx context.Context, recipe models.Recipe) (models.Recipe, error)
	updateRecipeFn func(ctx context.Context, recipe models.Recipe) (models.Recipe, error)
	setImagePathFn func(ctx context.Context, ownerID, recipeID int64, path string) error
}

func (m *mockRecipeRepository) ListRecipes(ctx context.Context, ownerID int64, filter models.RecipeFilter) ([]models.Recipe, error) {
	return m.listRecipesFn(ctx, ownerID, filter)
}

func (m *mockRecipeRepository) GetRecipe(ctx context.Context, ownerID, recipeID int64) (models.Recipe, error) {
	return m.getRecipeFn(ctx, ownerID, recipeID)
}

func (m *mockRecipeRepository) CreateRecipe(ctx context.Context, recipe models.Recipe) (models.Recipe, error) {
	return m.createRecipeFn(ctx, recipe)
}

func (m *mockRecipeRepository) UpdateRecipe(ctx context.Context, recipe models.Recipe) (models.Recipe, error) {
	return m.updateRecipeFn(ctx, recipe)
}

func (m *mockRecipeRepository) SetImagePath(ctx context.Context, ownerID, recipeID int64, path string) error {
	return m.setImagePathFn(ctx, ownerID, recipeID, path)
}

type mockImageStorage struct {
	saveFn   func(ctx context.Context, relPath string, payload io.Reader) error
	removeFn func(ctx context.Context, relPath string) error
}

func (m *mockImageStorage) Save(ctx context.Context, relPath string, payload io.Reader) error {
	return m.saveFn(ctx, relPath, payload)
}

func (m *mockImageStorage) Remove(ctx context.Context, relPath string) error {
	return m.removeFn(ctx, relPath)
}
