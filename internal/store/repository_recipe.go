package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"recipebox/internal/logger"
	"recipebox/models"
)

// recipeRepository is the PostgreSQL-backed implementation of
// [RecipeRepository]. It executes recipe CRUD against the "recipes" table
// and keeps the recipe_tags / recipe_ingredients link tables in step with
// the recipe's relations inside a single transaction.
type recipeRepository struct {
	*DB
	logger *logger.Logger
}

// NewRecipeRepository constructs a [RecipeRepository] backed by the provided
// database connection and logger.
func NewRecipeRepository(db *DB, logger *logger.Logger) RecipeRepository {
	logger.Debug().Msg("creating recipe repository")
	return &recipeRepository{
		DB:     db,
		logger: logger,
	}
}

// ListRecipes returns the owner's recipes matching the filter, newest first,
// with both relation lists populated.
func (p *recipeRepository) ListRecipes(ctx context.Context, ownerID int64, filter models.RecipeFilter) ([]models.Recipe, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListRecipesQuery(ownerID, filter)
	if err != nil {
		log.Err(err).
			Str("func", "recipeRepository.ListRecipes").
			Int64("user_id", ownerID).
			Msg("failed to create query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := p.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recipeRepository.ListRecipes").
			Int64("user_id", ownerID).
			Int("tag filter count", len(filter.TagIDs)).
			Int("ingredient filter count", len(filter.IngredientIDs)).
			Msg("failed to execute recipe listing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	recipes := make([]models.Recipe, 0, 20)

	for rows.Next() {
		var recipe models.Recipe

		scanErr := rows.Scan(
			&recipe.RecipeID,
			&recipe.UserID,
			&recipe.Title,
			&recipe.TimeMinutes,
			&recipe.Price,
			&recipe.Link,
			&recipe.ImagePath,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "recipeRepository.ListRecipes").
				Int64("user_id", ownerID).
				Msg("failed to scan recipe row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		recipes = append(recipes, recipe)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "recipeRepository.ListRecipes").
			Int64("user_id", ownerID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	if err := p.populateLinks(ctx, recipes); err != nil {
		return nil, err
	}

	return recipes, nil
}

// GetRecipe returns a single owned recipe with relations populated.
//
// Missing and foreign-owned identifiers are indistinguishable: both return
// [ErrRecipeNotFound], so the existence of other accounts' recipes is never
// leaked.
func (p *recipeRepository) GetRecipe(ctx context.Context, ownerID, recipeID int64) (models.Recipe, error) {
	log := logger.FromContext(ctx)

	var recipe models.Recipe
	row := p.DB.QueryRowContext(ctx, getRecipe, ownerID, recipeID)

	scanErr := row.Scan(
		&recipe.RecipeID,
		&recipe.UserID,
		&recipe.Title,
		&recipe.TimeMinutes,
		&recipe.Price,
		&recipe.Link,
		&recipe.ImagePath,
	)
	if scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return models.Recipe{}, ErrRecipeNotFound
		}

		log.Err(scanErr).
			Str("func", "recipeRepository.GetRecipe").
			Int64("user_id", ownerID).
			Int64("recipe_id", recipeID).
			Msg("failed to scan recipe row")
		return models.Recipe{}, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
	}

	single := []models.Recipe{recipe}
	if err := p.populateLinks(ctx, single); err != nil {
		return models.Recipe{}, err
	}

	return single[0], nil
}

// CreateRecipe persists the recipe and its catalog links in one transaction
// and returns the stored recipe with relations populated.
func (p *recipeRepository) CreateRecipe(ctx context.Context, recipe models.Recipe) (models.Recipe, error) {
	log := logger.FromContext(ctx)

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "recipeRepository.CreateRecipe").Msg("error during opening transaction")
		return models.Recipe{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var recipeID int64
	row := tx.QueryRowContext(ctx, createRecipe,
		recipe.UserID, recipe.Title, recipe.TimeMinutes, recipe.Price, recipe.Link)
	if scanErr := row.Scan(&recipeID); scanErr != nil {
		log.Err(scanErr).
			Str("func", "recipeRepository.CreateRecipe").
			Int64("user_id", recipe.UserID).
			Bool("retryable", p.errorClassificator.Classify(scanErr) == Retryable).
			Msg("failed to insert recipe")
		return models.Recipe{}, fmt.Errorf("%w: %w", ErrRecipeNotSaved, scanErr)
	}

	if err := p.insertLinks(ctx, tx, models.CatalogTags, recipeID, recipe.TagIDs()); err != nil {
		return models.Recipe{}, err
	}
	if err := p.insertLinks(ctx, tx, models.CatalogIngredients, recipeID, recipe.IngredientIDs()); err != nil {
		return models.Recipe{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "recipeRepository.CreateRecipe").Msg("error during committing transaction")
		return models.Recipe{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return p.GetRecipe(ctx, recipe.UserID, recipeID)
}

// UpdateRecipe replaces the recipe's scalar fields and rewrites both link
// tables to match recipe.Tags and recipe.Ingredients exactly, all in one
// transaction. Returns [ErrRecipeNotFound] when the owned recipe does not
// exist.
func (p *recipeRepository) UpdateRecipe(ctx context.Context, recipe models.Recipe) (models.Recipe, error) {
	log := logger.FromContext(ctx)

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "recipeRepository.UpdateRecipe").Msg("error during opening transaction")
		return models.Recipe{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, updateRecipe,
		recipe.Title, recipe.TimeMinutes, recipe.Price, recipe.Link,
		recipe.UserID, recipe.RecipeID)
	if err != nil {
		log.Err(err).
			Str("func", "recipeRepository.UpdateRecipe").
			Int64("user_id", recipe.UserID).
			Int64("recipe_id", recipe.RecipeID).
			Msg("failed to update recipe")
		return models.Recipe{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return models.Recipe{}, ErrRecipeNotFound
	}

	for _, kind := range []models.CatalogKind{models.CatalogTags, models.CatalogIngredients} {
		if err := p.deleteLinks(ctx, tx, kind, recipe.RecipeID); err != nil {
			return models.Recipe{}, err
		}
	}

	if err := p.insertLinks(ctx, tx, models.CatalogTags, recipe.RecipeID, recipe.TagIDs()); err != nil {
		return models.Recipe{}, err
	}
	if err := p.insertLinks(ctx, tx, models.CatalogIngredients, recipe.RecipeID, recipe.IngredientIDs()); err != nil {
		return models.Recipe{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "recipeRepository.UpdateRecipe").Msg("error during committing transaction")
		return models.Recipe{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return p.GetRecipe(ctx, recipe.UserID, recipe.RecipeID)
}

// SetImagePath records the stored image reference on an owned recipe.
// Returns [ErrRecipeNotFound] when the owned recipe does not exist.
func (p *recipeRepository) SetImagePath(ctx context.Context, ownerID, recipeID int64, path string) error {
	log := logger.FromContext(ctx)

	result, err := p.DB.ExecContext(ctx, setRecipeImagePath, path, ownerID, recipeID)
	if err != nil {
		log.Err(err).
			Str("func", "recipeRepository.SetImagePath").
			Int64("user_id", ownerID).
			Int64("recipe_id", recipeID).
			Msg("failed to set recipe image path")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrRecipeNotFound
	}

	return nil
}

// populateLinks fills Tags and Ingredients of every recipe in the slice,
// loading each relation kind in a single query.
func (p *recipeRepository) populateLinks(ctx context.Context, recipes []models.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}

	recipeIDs := make([]int64, 0, len(recipes))
	for i := range recipes {
		recipeIDs = append(recipeIDs, recipes[i].RecipeID)
	}

	tagLinks, err := p.loadLinks(ctx, models.CatalogTags, recipeIDs)
	if err != nil {
		return err
	}
	ingredientLinks, err := p.loadLinks(ctx, models.CatalogIngredients, recipeIDs)
	if err != nil {
		return err
	}

	for i := range recipes {
		id := recipes[i].RecipeID
		recipes[i].Tags = orEmpty(tagLinks[id])
		recipes[i].Ingredients = orEmpty(ingredientLinks[id])
	}

	return nil
}

// loadLinks returns the linked catalog entries of the given recipes grouped
// by recipe id.
func (p *recipeRepository) loadLinks(ctx context.Context, kind models.CatalogKind, recipeIDs []int64) (map[int64][]models.CatalogItem, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectLinksQuery(kind, recipeIDs)
	if err != nil {
		log.Err(err).
			Str("func", "recipeRepository.loadLinks").
			Str("kind", string(kind)).
			Msg("failed to create query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := p.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recipeRepository.loadLinks").
			Str("kind", string(kind)).
			Msg("failed to execute link loading query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	links := make(map[int64][]models.CatalogItem, len(recipeIDs))

	for rows.Next() {
		var recipeID int64
		var item models.CatalogItem

		if scanErr := rows.Scan(&recipeID, &item.ID, &item.UserID, &item.Name); scanErr != nil {
			log.Err(scanErr).
				Str("func", "recipeRepository.loadLinks").
				Str("kind", string(kind)).
				Msg("failed to scan link row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		links[recipeID] = append(links[recipeID], item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "recipeRepository.loadLinks").
			Str("kind", string(kind)).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return links, nil
}

// insertLinks writes link rows for one relation kind inside tx. A nil or
// empty id list inserts nothing.
func (p *recipeRepository) insertLinks(ctx context.Context, tx *sql.Tx, kind models.CatalogKind, recipeID int64, ids []int64) error {
	log := logger.FromContext(ctx)

	if len(ids) == 0 {
		return nil
	}

	query, args, err := buildInsertLinksQuery(kind, recipeID, ids)
	if err != nil {
		log.Err(err).
			Str("func", "recipeRepository.insertLinks").
			Str("kind", string(kind)).
			Msg("failed to create query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "recipeRepository.insertLinks").
			Str("kind", string(kind)).
			Int64("recipe_id", recipeID).
			Msg("failed to insert recipe links")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// deleteLinks clears all link rows of one relation kind inside tx.
func (p *recipeRepository) deleteLinks(ctx context.Context, tx *sql.Tx, kind models.CatalogKind, recipeID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteLinksQuery(kind, recipeID)
	if err != nil {
		log.Err(err).
			Str("func", "recipeRepository.deleteLinks").
			Str("kind", string(kind)).
			Msg("failed to create query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "recipeRepository.deleteLinks").
			Str("kind", string(kind)).
			Int64("recipe_id", recipeID).
			Msg("failed to delete recipe links")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// orEmpty normalises a nil slice to an empty one so that JSON responses
// always carry arrays instead of null.
func orEmpty(items []models.CatalogItem) []models.CatalogItem {
	if items == nil {
		return []models.CatalogItem{}
	}
	return items
}
