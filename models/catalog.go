package models

// CatalogItem is a small named label owned by one account and attachable to
// recipes. Tags and ingredients share this shape; they differ only in the
// tables they are persisted to.
type CatalogItem struct {
	// ID is the internal unique identifier of the catalog entry.
	ID int64 `json:"id"`

	// UserID references the owning account. Never exposed via JSON; the
	// API only ever returns the caller's own entries.
	UserID int64 `json:"-"`

	// Name is the canonical label text. Must be non-empty.
	Name string `json:"name"`
}

// CatalogKind selects which catalog a generic repository or service
// instance operates on.
type CatalogKind string

const (
	CatalogTags        CatalogKind = "tags"
	CatalogIngredients CatalogKind = "ingredients"
)

// Table returns the name of the catalog's own database table.
func (k CatalogKind) Table() string {
	return string(k)
}

// IDColumn returns the primary-key column of the catalog table.
func (k CatalogKind) IDColumn() string {
	switch k {
	case CatalogTags:
		return "tag_id"
	case CatalogIngredients:
		return "ingredient_id"
	}
	return ""
}

// JoinTable returns the recipe link table for the catalog.
func (k CatalogKind) JoinTable() string {
	switch k {
	case CatalogTags:
		return "recipe_tags"
	case CatalogIngredients:
		return "recipe_ingredients"
	}
	return ""
}
