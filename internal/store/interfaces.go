package store

import (
	"context"
	"io"

	"recipebox/models"
)

// AccountRepository is the data-access contract for user accounts.
type AccountRepository interface {
	// CreateUser persists a new account and returns it with server-assigned
	// fields (UserID, DateJoined) populated.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail retrieves the account whose email exactly matches the
	// given (already normalized) value.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByID retrieves the account with the given identifier.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)

	// UpdateUser persists profile changes (username, password hash) and
	// returns the updated record.
	UpdateUser(ctx context.Context, user models.User) (models.User, error)
}

// CatalogRepository is the data-access contract shared by tags and
// ingredients. A single implementation is instantiated once per
// [models.CatalogKind].
type CatalogRepository interface {
	// ListOwned returns the owner's catalog entries ordered by name
	// descending. With assignedOnly set, only entries linked to at least
	// one recipe are returned, each at most once.
	ListOwned(ctx context.Context, ownerID int64, assignedOnly bool) ([]models.CatalogItem, error)

	// Create persists a new entry owned by item.UserID.
	Create(ctx context.Context, item models.CatalogItem) (models.CatalogItem, error)

	// CountOwned returns how many of the given identifiers exist and belong
	// to ownerID. Used to reject links to foreign or missing entries.
	CountOwned(ctx context.Context, ownerID int64, ids []int64) (int, error)
}

// RecipeRepository is the data-access contract for recipes and their
// catalog links.
type RecipeRepository interface {
	// ListRecipes returns the owner's recipes matching the filter, newest
	// first, with tag and ingredient links populated.
	ListRecipes(ctx context.Context, ownerID int64, filter models.RecipeFilter) ([]models.Recipe, error)

	// GetRecipe returns a single owned recipe with links populated, or
	// ErrRecipeNotFound for missing and foreign-owned identifiers alike.
	GetRecipe(ctx context.Context, ownerID, recipeID int64) (models.Recipe, error)

	// CreateRecipe persists the recipe and its links in one transaction.
	CreateRecipe(ctx context.Context, recipe models.Recipe) (models.Recipe, error)

	// UpdateRecipe replaces the recipe's scalar fields and rewrites its
	// links to match recipe.Tags and recipe.Ingredients exactly.
	UpdateRecipe(ctx context.Context, recipe models.Recipe) (models.Recipe, error)

	// SetImagePath records the stored image reference on an owned recipe.
	SetImagePath(ctx context.Context, ownerID, recipeID int64, path string) error
}

// ImageFileStorage persists uploaded recipe images outside the relational
// database and serves them back by relative path.
type ImageFileStorage interface {
	// Save writes the payload under the given storage-relative path,
	// creating parent directories as needed.
	Save(ctx context.Context, relPath string, payload io.Reader) error

	// Remove deletes a previously stored file. Removing a missing file is
	// not an error.
	Remove(ctx context.Context, relPath string) error
}
