package service

import (
	"context"
	"io"

	"recipebox/models"
)

// AccountService owns the account lifecycle: registration, credential
// verification, token issuance and parsing, and profile updates.
type AccountService interface {
	// Register creates a new account with default flags. The email domain
	// is normalized to lowercase and the password is stored only as a
	// bcrypt hash.
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)

	// RegisterPrivileged creates an account and grants it the active,
	// staff, and superuser flags.
	RegisterPrivileged(ctx context.Context, firstName, lastName, username, email, password string) (models.User, error)

	// Authenticate verifies credentials against the stored hash. Every
	// failure mode returns ErrWrongPassword.
	Authenticate(ctx context.Context, email, password string) (models.User, error)

	// Profile returns the account of the given id.
	Profile(ctx context.Context, userID int64) (models.User, error)

	// UpdateProfile applies the non-nil fields of req; a new password is
	// re-hashed before persistence.
	UpdateProfile(ctx context.Context, userID int64, req models.UpdateProfileRequest) (models.User, error)

	// CreateToken issues a signed bearer token for the user.
	CreateToken(ctx context.Context, user models.User) (models.Token, error)

	// ParseToken validates a raw bearer token and returns its claims.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// CatalogService is the owned-catalog capability shared by tags and
// ingredients: one implementation, instantiated per catalog kind.
type CatalogService interface {
	// List returns the caller's entries, optionally restricted to those
	// assigned to at least one recipe.
	List(ctx context.Context, ownerID int64, assignedOnly bool) ([]models.CatalogItem, error)

	// Create stores a new entry owned by the caller. The name must be
	// non-blank.
	Create(ctx context.Context, ownerID int64, name string) (models.CatalogItem, error)
}

// RecipeService owns recipe CRUD, relation filtering, and image attachment.
type RecipeService interface {
	List(ctx context.Context, ownerID int64, filter models.RecipeFilter) ([]models.Recipe, error)
	Get(ctx context.Context, ownerID, recipeID int64) (models.Recipe, error)
	Create(ctx context.Context, ownerID int64, input models.RecipeInput) (models.Recipe, error)

	// Update applies input to an owned recipe. With partial set, absent
	// fields and relation lists are left untouched; otherwise the input
	// replaces the recipe wholesale and absent relation lists clear the
	// links.
	Update(ctx context.Context, ownerID, recipeID int64, input models.RecipeInput, partial bool) (models.Recipe, error)

	// AttachImage validates the payload as a decodable image and stores it
	// under a server-generated filename, recording the path on the recipe.
	AttachImage(ctx context.Context, ownerID, recipeID int64, payload io.Reader, originalFilename string) (models.Recipe, error)
}
