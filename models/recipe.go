package models

// Recipe is the composite entity owned by one account, linking zero or more
// tags and ingredients from the same account.
type Recipe struct {
	// RecipeID is the internal unique identifier of the recipe.
	RecipeID int64 `json:"id"`

	// UserID references the owning account.
	UserID int64 `json:"-"`

	// Title is the display name of the recipe. Must be non-empty.
	Title string `json:"title"`

	// TimeMinutes is the estimated preparation time in minutes.
	TimeMinutes int `json:"time_minutes"`

	// Price is the estimated cost, two decimal places of precision at the
	// persistence layer (NUMERIC(6,2)).
	Price float64 `json:"price"`

	// Link is an optional external URL.
	Link string `json:"link,omitempty"`

	// ImagePath is the storage-relative path of the attached image, empty
	// until an image is uploaded.
	ImagePath string `json:"image,omitempty"`

	// Tags and Ingredients hold the linked catalog entries. List responses
	// carry only IDs; detail responses carry the nested objects.
	Tags        []CatalogItem `json:"tags"`
	Ingredients []CatalogItem `json:"ingredients"`
}

// TableName returns the name of the database table
// associated with the Recipe model.
func (r Recipe) TableName() string {
	return "recipes"
}

// TagIDs returns the identifiers of the linked tags.
func (r Recipe) TagIDs() []int64 {
	return catalogIDs(r.Tags)
}

// IngredientIDs returns the identifiers of the linked ingredients.
func (r Recipe) IngredientIDs() []int64 {
	return catalogIDs(r.Ingredients)
}

func catalogIDs(items []CatalogItem) []int64 {
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}

// RecipeFilter narrows a recipe listing. Zero value means "no filtering
// beyond owner scoping".
type RecipeFilter struct {
	// TagIDs restricts to recipes linked to at least one of these tags.
	TagIDs []int64

	// IngredientIDs restricts to recipes linked to at least one of these
	// ingredients. Combined with TagIDs by logical AND.
	IngredientIDs []int64
}

// Empty reports whether the filter applies no relation restrictions.
func (f RecipeFilter) Empty() bool {
	return len(f.TagIDs) == 0 && len(f.IngredientIDs) == 0
}
