package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"recipebox/internal/logger"
	"recipebox/internal/store"
	"recipebox/internal/utils"
	"recipebox/models"
)

// maxUploadMemory bounds the in-memory part of multipart parsing; larger
// payloads spill to temporary files.
const maxUploadMemory = 32 << 20

func (h *Handler) listRecipes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		utils.WriteJSONError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	query := r.URL.Query()
	filter, err := parseRecipeFilter(query.Get("tags"), query.Get("ingredients"))
	if err != nil {
		log.Err(err).Msg("invalid filter parameters")
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	recipes, err := h.services.RecipeService.List(ctx, userID, filter)
	if err != nil {
		log.Err(err).Msg("recipe listing failed")
		writeError(w, err)
		return
	}

	summaries := make([]models.RecipeSummary, 0, len(recipes))
	for _, recipe := range recipes {
		summaries = append(summaries, recipe.Summary())
	}

	utils.WriteJSON(w, summaries, http.StatusOK)
}

func (h *Handler) getRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		utils.WriteJSONError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	recipeID, err := recipeIDFromURL(r)
	if err != nil {
		log.Err(err).Msg("invalid recipe id")
		writeError(w, store.ErrRecipeNotFound)
		return
	}

	recipe, err := h.services.RecipeService.Get(ctx, userID, recipeID)
	if err != nil {
		log.Err(err).Int64("recipe_id", recipeID).Msg("recipe lookup failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, recipe, http.StatusOK)
}

func (h *Handler) createRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		utils.WriteJSONError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var input models.RecipeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSONError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	created, err := h.services.RecipeService.Create(ctx, userID, input)
	if err != nil {
		log.Err(err).Msg("recipe creation failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

// updateRecipe serves both PUT (full replacement) and PATCH (partial
// update); the method decides the merge semantics.
func (h *Handler) updateRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		utils.WriteJSONError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	recipeID, err := recipeIDFromURL(r)
	if err != nil {
		log.Err(err).Msg("invalid recipe id")
		writeError(w, store.ErrRecipeNotFound)
		return
	}

	var input models.RecipeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSONError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	partial := r.Method == http.MethodPatch

	updated, err := h.services.RecipeService.Update(ctx, userID, recipeID, input, partial)
	if err != nil {
		log.Err(err).Int64("recipe_id", recipeID).Msg("recipe update failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) uploadRecipeImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		utils.WriteJSONError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	recipeID, err := recipeIDFromURL(r)
	if err != nil {
		log.Err(err).Msg("invalid recipe id")
		writeError(w, store.ErrRecipeNotFound)
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		log.Err(err).Msg("invalid multipart form")
		utils.WriteJSONError(w, "expected a multipart form with an `image` file field", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		log.Err(err).Msg("missing image field")
		utils.WriteJSONError(w, "expected a multipart form with an `image` file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	recipe, err := h.services.RecipeService.AttachImage(ctx, userID, recipeID, file, header.Filename)
	if err != nil {
		log.Err(err).Int64("recipe_id", recipeID).Msg("image attachment failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.UploadImageResponse{
		ID:    recipe.RecipeID,
		Image: recipe.ImagePath,
	}, http.StatusOK)
}

// recipeIDFromURL parses the {id} URL parameter. Non-numeric identifiers are
// treated the same as missing recipes.
func recipeIDFromURL(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
