package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"recipebox/internal/logger"
	"recipebox/models"
)

var recipeColumns = []string{
	"recipe_id", "user_id", "title", "time_minutes", "price", "link", "image_path",
}

var linkColumns = func(kind models.CatalogKind) []string {
	return []string{"recipe_id", kind.IDColumn(), "user_id", "name"}
}

func newTestRecipeRepo(t *testing.T) (*recipeRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &recipeRepository{
		DB:     &DB{DB: db, errorClassificator: NewPostgresErrorClassifier(), logger: l},
		logger: l,
	}
	return repo, mock, db
}

// expectLinkLoad registers the two link-loading queries GetRecipe and
// ListRecipes always issue, in kind order: tags first, then ingredients.
func expectLinkLoad(mock sqlmock.Sqlmock, tagRows, ingredientRows *sqlmock.Rows) {
	mock.ExpectQuery("FROM recipe_tags").WillReturnRows(tagRows)
	mock.ExpectQuery("FROM recipe_ingredients").WillReturnRows(ingredientRows)
}

func emptyLinkRows(kind models.CatalogKind) *sqlmock.Rows {
	return sqlmock.NewRows(linkColumns(kind))
}

func TestGetRecipe_Success(t *testing.T) {
	repo, mock, db := newTestRecipeRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM recipes").
		WithArgs(int64(1), int64(10)).
		WillReturnRows(sqlmock.NewRows(recipeColumns).
			AddRow(10, 1, "Pancakes", 15, 3.50, "", ""))

	tagRows := sqlmock.NewRows(linkColumns(models.CatalogTags)).
		AddRow(10, 2, 1, "Breakfast")
	expectLinkLoad(mock, tagRows, emptyLinkRows(models.CatalogIngredients))

	recipe, err := repo.GetRecipe(ctx, 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recipe.Title != "Pancakes" {
		t.Errorf("expected title Pancakes, got %s", recipe.Title)
	}
	if len(recipe.Tags) != 1 || recipe.Tags[0].Name != "Breakfast" {
		t.Errorf("unexpected tags: %v", recipe.Tags)
	}
	if recipe.Ingredients == nil || len(recipe.Ingredients) != 0 {
		t.Errorf("expected empty (non-nil) ingredients, got %v", recipe.Ingredients)
	}
}

func TestGetRecipe_NotFound(t *testing.T) {
	repo, mock, db := newTestRecipeRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM recipes").
		WithArgs(int64(1), int64(10)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetRecipe(ctx, 1, 10)
	if !errors.Is(err, ErrRecipeNotFound) {
		t.Fatalf("expected ErrRecipeNotFound, got %v", err)
	}
}

func TestListRecipes_Success(t *testing.T) {
	repo, mock, db := newTestRecipeRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM recipes").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(recipeColumns).
			AddRow(11, 1, "Soup", 30, 5.00, "", "").
			AddRow(10, 1, "Pancakes", 15, 3.50, "", ""))

	expectLinkLoad(mock,
		emptyLinkRows(models.CatalogTags),
		emptyLinkRows(models.CatalogIngredients))

	recipes, err := repo.ListRecipes(ctx, 1, models.RecipeFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recipes) != 2 {
		t.Fatalf("expected 2 recipes, got %d", len(recipes))
	}
	if recipes[0].RecipeID != 11 {
		t.Errorf("expected newest recipe first, got %d", recipes[0].RecipeID)
	}
}

func TestListRecipes_EmptySkipsLinkLoading(t *testing.T) {
	repo, mock, db := newTestRecipeRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM recipes").
		WillReturnRows(sqlmock.NewRows(recipeColumns))

	recipes, err := repo.ListRecipes(ctx, 1, models.RecipeFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recipes) != 0 {
		t.Fatalf("expected no recipes, got %d", len(recipes))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateRecipe_WithLinks(t *testing.T) {
	repo, mock, db := newTestRecipeRepo(t)
	defer db.Close()

	ctx := context.Background()
	recipe := models.Recipe{
		UserID:      1,
		Title:       "Pancakes",
		TimeMinutes: 15,
		Price:       3.50,
		Tags:        []models.CatalogItem{{ID: 2}},
		Ingredients: []models.CatalogItem{{ID: 5}},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO recipes").
		WithArgs(recipe.UserID, recipe.Title, recipe.TimeMinutes, recipe.Price, recipe.Link).
		WillReturnRows(sqlmock.NewRows([]string{"recipe_id"}).AddRow(10))
	mock.ExpectExec("INSERT INTO recipe_tags").
		WithArgs(int64(10), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO recipe_ingredients").
		WithArgs(int64(10), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// hydration re-read
	mock.ExpectQuery("SELECT (.+) FROM recipes").
		WithArgs(int64(1), int64(10)).
		WillReturnRows(sqlmock.NewRows(recipeColumns).
			AddRow(10, 1, "Pancakes", 15, 3.50, "", ""))
	tagRows := sqlmock.NewRows(linkColumns(models.CatalogTags)).
		AddRow(10, 2, 1, "Breakfast")
	ingredientRows := sqlmock.NewRows(linkColumns(models.CatalogIngredients)).
		AddRow(10, 5, 1, "Flour")
	expectLinkLoad(mock, tagRows, ingredientRows)

	created, err := repo.CreateRecipe(ctx, recipe)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.RecipeID != 10 {
		t.Errorf("expected RecipeID=10, got %d", created.RecipeID)
	}
	if len(created.Tags) != 1 || len(created.Ingredients) != 1 {
		t.Errorf("expected hydrated links, got tags=%v ingredients=%v", created.Tags, created.Ingredients)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateRecipe_InsertErrorRollsBack(t *testing.T) {
	repo, mock, db := newTestRecipeRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO recipes").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := repo.CreateRecipe(ctx, models.Recipe{UserID: 1, Title: "Pancakes"})
	if !errors.Is(err, ErrRecipeNotSaved) {
		t.Fatalf("expected ErrRecipeNotSaved, got %v", err)
	}
}

func TestUpdateRecipe_RewritesLinks(t *testing.T) {
	repo, mock, db := newTestRecipeRepo(t)
	defer db.Close()

	ctx := context.Background()
	recipe := models.Recipe{
		RecipeID:    10,
		UserID:      1,
		Title:       "Pancakes v2",
		TimeMinutes: 20,
		Price:       4.00,
		Tags:        []models.CatalogItem{{ID: 3}},
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE recipes").
		WithArgs(recipe.Title, recipe.TimeMinutes, recipe.Price, recipe.Link,
			recipe.UserID, recipe.RecipeID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM recipe_tags").
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM recipe_ingredients").
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO recipe_tags").
		WithArgs(int64(10), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectQuery("SELECT (.+) FROM recipes").
		WithArgs(int64(1), int64(10)).
		WillReturnRows(sqlmock.NewRows(recipeColumns).
			AddRow(10, 1, "Pancakes v2", 20, 4.00, "", ""))
	tagRows := sqlmock.NewRows(linkColumns(models.CatalogTags)).
		AddRow(10, 3, 1, "Brunch")
	expectLinkLoad(mock, tagRows, emptyLinkRows(models.CatalogIngredients))

	updated, err := repo.UpdateRecipe(ctx, recipe)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != "Pancakes v2" {
		t.Errorf("expected updated title, got %s", updated.Title)
	}
	if len(updated.Tags) != 1 || updated.Tags[0].ID != 3 {
		t.Errorf("unexpected tags after update: %v", updated.Tags)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateRecipe_NotFound(t *testing.T) {
	repo, mock, db := newTestRecipeRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE recipes").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.UpdateRecipe(ctx, models.Recipe{RecipeID: 99, UserID: 1, Title: "x"})
	if !errors.Is(err, ErrRecipeNotFound) {
		t.Fatalf("expected ErrRecipeNotFound, got %v", err)
	}
}

func TestSetImagePath_Success(t *testing.T) {
	repo, mock, db := newTestRecipeRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("UPDATE recipes").
		WithArgs("recipes/abc.jpg", int64(1), int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SetImagePath(ctx, 1, 10, "recipes/abc.jpg"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSetImagePath_NotFound(t *testing.T) {
	repo, mock, db := newTestRecipeRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("UPDATE recipes").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetImagePath(ctx, 1, 99, "recipes/abc.jpg")
	if !errors.Is(err, ErrRecipeNotFound) {
		t.Fatalf("expected ErrRecipeNotFound, got %v", err)
	}
}
