package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/disintegration/imaging"

	"recipebox/internal/logger"
	"recipebox/internal/store"
	"recipebox/internal/utils"
	"recipebox/internal/validators"
	"recipebox/models"
)

// imagePathPrefix is prepended to generated image filenames so that recipe
// uploads live in their own subtree of the upload directory.
const imagePathPrefix = "recipes"

// allowedImageExtensions maps lowercased upload extensions to the ones kept
// on the stored filename. Anything else falls back to ".jpg"; the payload
// itself is validated by decoding, not by extension.
var allowedImageExtensions = map[string]string{
	".jpg":  ".jpg",
	".jpeg": ".jpeg",
	".png":  ".png",
	".gif":  ".gif",
	".bmp":  ".bmp",
	".tif":  ".tif",
	".tiff": ".tiff",
}

// recipeService is the concrete implementation of RecipeService. Besides the
// recipe repository it holds both catalog repositories, used to verify that
// linked tag and ingredient identifiers belong to the caller.
type recipeService struct {
	recipes      store.RecipeRepository
	tags         store.CatalogRepository
	ingredients  store.CatalogRepository
	imageStorage store.ImageFileStorage
	validator    validators.Validator
	uuidGen      *utils.UUIDGenerator
	logger       *logger.Logger
}

// NewRecipeService constructs a RecipeService.
func NewRecipeService(
	recipes store.RecipeRepository,
	tags store.CatalogRepository,
	ingredients store.CatalogRepository,
	imageStorage store.ImageFileStorage,
	logger *logger.Logger,
) RecipeService {
	return &recipeService{
		recipes:      recipes,
		tags:         tags,
		ingredients:  ingredients,
		imageStorage: imageStorage,
		validator:    validators.NewInputValidator(),
		uuidGen:      utils.NewUUIDGenerator(),
		logger:       logger,
	}
}

// List returns the caller's recipes matching the filter, newest first.
func (s *recipeService) List(ctx context.Context, ownerID int64, filter models.RecipeFilter) ([]models.Recipe, error) {
	log := logger.FromContext(ctx)

	recipes, err := s.recipes.ListRecipes(ctx, ownerID, filter)
	if err != nil {
		log.Err(err).Int64("user_id", ownerID).Msg("recipe listing failed")
		return nil, fmt.Errorf("recipe listing failed: %w", err)
	}

	return recipes, nil
}

// Get returns one owned recipe with its relations populated.
func (s *recipeService) Get(ctx context.Context, ownerID, recipeID int64) (models.Recipe, error) {
	recipe, err := s.recipes.GetRecipe(ctx, ownerID, recipeID)
	if err != nil {
		return models.Recipe{}, fmt.Errorf("recipe lookup failed: %w", err)
	}

	return recipe, nil
}

// Create validates the input, verifies that every referenced tag and
// ingredient belongs to the caller, and persists the recipe with its links.
func (s *recipeService) Create(ctx context.Context, ownerID int64, input models.RecipeInput) (models.Recipe, error) {
	log := logger.FromContext(ctx)

	recipe := models.Recipe{UserID: ownerID}
	mergeInput(&recipe, input, false)

	if err := s.validator.Validate(ctx, recipe); err != nil {
		log.Err(err).Int64("user_id", ownerID).Msg("recipe rejected")
		return models.Recipe{}, err
	}

	if err := s.checkCatalogOwnership(ctx, ownerID, recipe); err != nil {
		return models.Recipe{}, err
	}

	created, err := s.recipes.CreateRecipe(ctx, recipe)
	if err != nil {
		log.Err(err).Int64("user_id", ownerID).Msg("recipe creation failed")
		return models.Recipe{}, fmt.Errorf("recipe creation failed: %w", err)
	}

	return created, nil
}

// Update applies input to an owned recipe. With partial set, absent scalar
// fields and relation lists keep their stored values; otherwise absent
// relation lists clear the links and absent required fields are rejected.
func (s *recipeService) Update(ctx context.Context, ownerID, recipeID int64, input models.RecipeInput, partial bool) (models.Recipe, error) {
	log := logger.FromContext(ctx)

	recipe, err := s.recipes.GetRecipe(ctx, ownerID, recipeID)
	if err != nil {
		return models.Recipe{}, fmt.Errorf("recipe lookup failed: %w", err)
	}

	mergeInput(&recipe, input, partial)

	if err := s.validator.Validate(ctx, recipe); err != nil {
		log.Err(err).Int64("recipe_id", recipeID).Msg("recipe update rejected")
		return models.Recipe{}, err
	}

	if err := s.checkCatalogOwnership(ctx, ownerID, recipe); err != nil {
		return models.Recipe{}, err
	}

	updated, err := s.recipes.UpdateRecipe(ctx, recipe)
	if err != nil {
		log.Err(err).Int64("user_id", ownerID).Int64("recipe_id", recipeID).Msg("recipe update failed")
		return models.Recipe{}, fmt.Errorf("recipe update failed: %w", err)
	}

	return updated, nil
}

// AttachImage validates the payload as a decodable image, stores it under a
// server-generated filename, and records the path on the recipe. A previously
// attached image is removed once the new path is persisted.
func (s *recipeService) AttachImage(ctx context.Context, ownerID, recipeID int64, payload io.Reader, originalFilename string) (models.Recipe, error) {
	log := logger.FromContext(ctx)

	recipe, err := s.recipes.GetRecipe(ctx, ownerID, recipeID)
	if err != nil {
		return models.Recipe{}, fmt.Errorf("recipe lookup failed: %w", err)
	}

	// The payload has to be read twice: once to validate it decodes as an
	// image, once to persist it.
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, payload); err != nil {
		log.Err(err).Int64("recipe_id", recipeID).Msg("error reading image payload")
		return models.Recipe{}, fmt.Errorf("error reading image payload: %w", err)
	}

	if _, err := imaging.Decode(bytes.NewReader(buf.Bytes())); err != nil {
		return models.Recipe{}, validators.NewValidationError("image", "not a valid image file")
	}

	relPath := path.Join(imagePathPrefix, s.uuidGen.Generate()+imageExtension(originalFilename))

	if err := s.imageStorage.Save(ctx, relPath, &buf); err != nil {
		log.Err(err).Int64("recipe_id", recipeID).Str("path", relPath).Msg("error storing image")
		return models.Recipe{}, fmt.Errorf("error storing image: %w", err)
	}

	if err := s.recipes.SetImagePath(ctx, ownerID, recipeID, relPath); err != nil {
		// The file is orphaned if the row update failed; clean it up.
		if removeErr := s.imageStorage.Remove(ctx, relPath); removeErr != nil {
			log.Err(removeErr).Str("path", relPath).Msg("error removing orphaned image")
		}
		log.Err(err).Int64("recipe_id", recipeID).Msg("error recording image path")
		return models.Recipe{}, fmt.Errorf("error recording image path: %w", err)
	}

	if recipe.ImagePath != "" && recipe.ImagePath != relPath {
		if err := s.imageStorage.Remove(ctx, recipe.ImagePath); err != nil {
			log.Err(err).Str("path", recipe.ImagePath).Msg("error removing replaced image")
		}
	}

	recipe.ImagePath = relPath
	return recipe, nil
}

// mergeInput merges input into recipe. With partial set, nil fields and nil
// relation lists are skipped; otherwise nil relation lists clear the links.
// Validation of the merged result is the caller's responsibility.
func mergeInput(recipe *models.Recipe, input models.RecipeInput, partial bool) {
	if !partial {
		// A full replacement starts from a blank slate so that omitted
		// fields do not inherit stored values.
		recipe.Title, recipe.TimeMinutes, recipe.Price, recipe.Link = "", 0, 0, ""
	}

	if input.Title != nil {
		recipe.Title = strings.TrimSpace(*input.Title)
	}
	if input.TimeMinutes != nil {
		recipe.TimeMinutes = *input.TimeMinutes
	}
	if input.Price != nil {
		recipe.Price = *input.Price
	}
	if input.Link != nil {
		recipe.Link = *input.Link
	}

	if input.Tags != nil || !partial {
		recipe.Tags = catalogRefs(input.Tags)
	}
	if input.Ingredients != nil || !partial {
		recipe.Ingredients = catalogRefs(input.Ingredients)
	}
}

// checkCatalogOwnership verifies that every tag and ingredient referenced by
// the recipe exists and belongs to ownerID.
func (s *recipeService) checkCatalogOwnership(ctx context.Context, ownerID int64, recipe models.Recipe) error {
	if err := s.checkOwnedIDs(ctx, s.tags, ownerID, recipe.TagIDs(), "tags"); err != nil {
		return err
	}

	return s.checkOwnedIDs(ctx, s.ingredients, ownerID, recipe.IngredientIDs(), "ingredients")
}

func (s *recipeService) checkOwnedIDs(ctx context.Context, repo store.CatalogRepository, ownerID int64, ids []int64, field string) error {
	unique := dedupeIDs(ids)
	if len(unique) == 0 {
		return nil
	}

	count, err := repo.CountOwned(ctx, ownerID, unique)
	if err != nil {
		return fmt.Errorf("catalog ownership check failed: %w", err)
	}
	if count != len(unique) {
		return validators.NewValidationError(field, "references unknown entries")
	}

	return nil
}

// catalogRefs converts bare identifiers into link placeholders, dropping
// duplicates while preserving first-seen order.
func catalogRefs(ids []int64) []models.CatalogItem {
	unique := dedupeIDs(ids)
	items := make([]models.CatalogItem, 0, len(unique))
	for _, id := range unique {
		items = append(items, models.CatalogItem{ID: id})
	}
	return items
}

func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	unique := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}

// imageExtension returns a safe storage extension derived from the uploaded
// filename, defaulting to ".jpg" for unrecognized or missing extensions.
func imageExtension(filename string) string {
	ext := strings.ToLower(path.Ext(path.Base(filename)))
	if safe, ok := allowedImageExtensions[ext]; ok {
		return safe
	}
	return ".jpg"
}
