package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"recipebox/models"
)

const (
	createUser = `INSERT INTO users (email, username, first_name, last_name, phone, password_hash, is_active, is_staff, is_superuser)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    RETURNING user_id, email, username, first_name, last_name, phone, password_hash, is_active, is_staff, is_superuser, date_joined;`

	findUserByEmail = `SELECT user_id, email, username, first_name, last_name, phone, password_hash, is_active, is_staff, is_superuser, date_joined
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT user_id, email, username, first_name, last_name, phone, password_hash, is_active, is_staff, is_superuser, date_joined
    FROM users
    WHERE user_id = $1;`

	updateUser = `UPDATE users
    SET username = $1, first_name = $2, last_name = $3, phone = $4, password_hash = $5, is_active = $6, is_staff = $7, is_superuser = $8
    WHERE user_id = $9
    RETURNING user_id, email, username, first_name, last_name, phone, password_hash, is_active, is_staff, is_superuser, date_joined;`

	createRecipe = `INSERT INTO recipes (user_id, title, time_minutes, price, link)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING recipe_id;`

	getRecipe = `SELECT recipe_id, user_id, title, time_minutes, price, link, image_path
    FROM recipes
    WHERE user_id = $1 AND recipe_id = $2;`

	updateRecipe = `UPDATE recipes
    SET title = $1, time_minutes = $2, price = $3, link = $4
    WHERE user_id = $5 AND recipe_id = $6;`

	setRecipeImagePath = `UPDATE recipes
    SET image_path = $1
    WHERE user_id = $2 AND recipe_id = $3;`
)

// psql is the squirrel statement builder configured for PostgreSQL
// placeholders ($1, $2, ...).
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildListCatalogQuery builds the catalog listing query for the given kind.
//
// The query always scopes by owner and orders by name descending (ties broken
// by id descending so results are stable). With assignedOnly set it joins the
// recipe link table and de-duplicates, so every entry referenced by one or
// more recipes appears exactly once and unreferenced entries are excluded.
func buildListCatalogQuery(kind models.CatalogKind, ownerID int64, assignedOnly bool) (string, []any, error) {
	idCol := "t." + kind.IDColumn()

	builder := psql.
		Select(idCol, "t.user_id", "t.name").
		From(kind.Table() + " AS t").
		Where(sq.Eq{"t.user_id": ownerID}).
		OrderBy("t.name DESC", idCol+" DESC")

	if assignedOnly {
		builder = builder.
			Distinct().
			Join(fmt.Sprintf("%s AS l ON l.%s = %s", kind.JoinTable(), kind.IDColumn(), idCol))
	}

	return builder.ToSql()
}

// buildCreateCatalogQuery builds the INSERT for a new catalog entry,
// returning the stored row via a RETURNING clause.
func buildCreateCatalogQuery(kind models.CatalogKind, item models.CatalogItem) (string, []any, error) {
	return psql.
		Insert(kind.Table()).
		Columns("user_id", "name").
		Values(item.UserID, item.Name).
		Suffix(fmt.Sprintf("RETURNING %s, user_id, name", kind.IDColumn())).
		ToSql()
}

// buildCountOwnedCatalogQuery builds the ownership check for catalog links:
// how many of the given ids exist in the kind's table and belong to ownerID.
func buildCountOwnedCatalogQuery(kind models.CatalogKind, ownerID int64, ids []int64) (string, []any, error) {
	return psql.
		Select("COUNT(*)").
		From(kind.Table()).
		Where(sq.Eq{"user_id": ownerID, kind.IDColumn(): ids}).
		ToSql()
}

// buildListRecipesQuery builds the owner-scoped recipe listing.
//
// Each present relation filter joins the corresponding link table and keeps
// recipes referencing at least one of the supplied ids ("any of"); both
// filters together combine by AND. Joins can multiply rows, so the statement
// de-duplicates whenever a filter is applied. Ordering is by recipe id
// descending for stable output.
func buildListRecipesQuery(ownerID int64, filter models.RecipeFilter) (string, []any, error) {
	builder := psql.
		Select("r.recipe_id", "r.user_id", "r.title", "r.time_minutes", "r.price", "r.link", "r.image_path").
		From("recipes AS r").
		Where(sq.Eq{"r.user_id": ownerID}).
		OrderBy("r.recipe_id DESC")

	if len(filter.TagIDs) > 0 {
		builder = builder.
			Join("recipe_tags AS rt ON rt.recipe_id = r.recipe_id").
			Where(sq.Eq{"rt.tag_id": filter.TagIDs})
	}

	if len(filter.IngredientIDs) > 0 {
		builder = builder.
			Join("recipe_ingredients AS ri ON ri.recipe_id = r.recipe_id").
			Where(sq.Eq{"ri.ingredient_id": filter.IngredientIDs})
	}

	if !filter.Empty() {
		builder = builder.Distinct()
	}

	return builder.ToSql()
}

// buildSelectLinksQuery builds the query that loads the linked catalog
// entries of the given recipes in one round trip: every row carries the
// recipe id it belongs to followed by the catalog entry columns.
func buildSelectLinksQuery(kind models.CatalogKind, recipeIDs []int64) (string, []any, error) {
	idCol := kind.IDColumn()

	return psql.
		Select("l.recipe_id", "t."+idCol, "t.user_id", "t.name").
		From(kind.JoinTable() + " AS l").
		Join(fmt.Sprintf("%s AS t ON t.%s = l.%s", kind.Table(), idCol, idCol)).
		Where(sq.Eq{"l.recipe_id": recipeIDs}).
		OrderBy("l.recipe_id DESC", "t.name ASC").
		ToSql()
}

// buildInsertLinksQuery builds a multi-row INSERT linking a recipe to the
// given catalog entries.
func buildInsertLinksQuery(kind models.CatalogKind, recipeID int64, ids []int64) (string, []any, error) {
	builder := psql.
		Insert(kind.JoinTable()).
		Columns("recipe_id", kind.IDColumn())

	for _, id := range ids {
		builder = builder.Values(recipeID, id)
	}

	return builder.ToSql()
}

// buildDeleteLinksQuery builds the DELETE that clears all links of the given
// kind for one recipe.
func buildDeleteLinksQuery(kind models.CatalogKind, recipeID int64) (string, []any, error) {
	return psql.
		Delete(kind.JoinTable()).
		Where(sq.Eq{"recipe_id": recipeID}).
		ToSql()
}
