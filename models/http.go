package models

// Request and response bodies of the HTTP API. Kept separate from the
// persistence models so that write-only fields (passwords) and partial
// updates (pointer fields) do not leak into the storage layer.

// RegisterRequest is the body of POST /api/users/create.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

// TokenRequest is the body of POST /api/users/token.
type TokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries the issued bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// UpdateProfileRequest is the body of PATCH /api/users/me.
// Nil fields are left untouched.
type UpdateProfileRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

// CreateCatalogItemRequest is the body of POST /api/tags and
// POST /api/ingredients. Any owner reference supplied by the client is
// ignored; ownership always follows the authenticated caller.
type CreateCatalogItemRequest struct {
	Name string `json:"name"`
}

// RecipeInput is the body of POST /api/recipes and PUT/PATCH
// /api/recipes/{id}. Pointer fields distinguish "absent" from zero values:
// a PATCH leaves absent fields untouched, a PUT treats absent relation
// lists as empty (clearing the links) and absent required fields as a
// validation error.
type RecipeInput struct {
	Title       *string  `json:"title"`
	TimeMinutes *int     `json:"time_minutes"`
	Price       *float64 `json:"price"`
	Link        *string  `json:"link"`
	Tags        []int64  `json:"tags"`
	Ingredients []int64  `json:"ingredients"`
}

// RecipeSummary is the list representation of a recipe: relations are
// carried as bare identifiers, the detail endpoint returns nested objects.
type RecipeSummary struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	TimeMinutes int     `json:"time_minutes"`
	Price       float64 `json:"price"`
	Link        string  `json:"link,omitempty"`
	Image       string  `json:"image,omitempty"`
	Tags        []int64 `json:"tags"`
	Ingredients []int64 `json:"ingredients"`
}

// Summary converts a Recipe to its list representation.
func (r Recipe) Summary() RecipeSummary {
	return RecipeSummary{
		ID:          r.RecipeID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		Image:       r.ImagePath,
		Tags:        r.TagIDs(),
		Ingredients: r.IngredientIDs(),
	}
}

// UploadImageResponse carries the stored image reference returned by
// POST /api/recipes/{id}/upload-image.
type UploadImageResponse struct {
	ID    int64  `json:"id"`
	Image string `json:"image"`
}
