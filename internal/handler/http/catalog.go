package http

import (
	"encoding/json"
	"net/http"

	"recipebox/internal/logger"
	"recipebox/internal/service"
	"recipebox/internal/utils"
	"recipebox/models"
)

// listCatalog returns an http.HandlerFunc serving GET for one catalog kind.
// The same handler body serves both tags and ingredients: the kind only
// decides which service instance is called.
func (h *Handler) listCatalog(svc service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromRequest(r)

		userID, ok := utils.GetUserIDFromContext(ctx)
		if !ok {
			log.Error().Msg("no user id in request context")
			utils.WriteJSONError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		assignedOnly, err := parseAssignedOnly(r.URL.Query().Get("assigned_only"))
		if err != nil {
			log.Err(err).Msg("invalid assigned_only parameter")
			utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}

		items, err := svc.List(ctx, userID, assignedOnly)
		if err != nil {
			log.Err(err).Msg("catalog listing failed")
			writeError(w, err)
			return
		}

		if items == nil {
			items = []models.CatalogItem{}
		}

		utils.WriteJSON(w, items, http.StatusOK)
	}
}

// createCatalog returns an http.HandlerFunc serving POST for one catalog
// kind. Ownership always follows the authenticated caller; any owner value
// in the body is never even decoded.
func (h *Handler) createCatalog(svc service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromRequest(r)

		userID, ok := utils.GetUserIDFromContext(ctx)
		if !ok {
			log.Error().Msg("no user id in request context")
			utils.WriteJSONError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		var req models.CreateCatalogItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Err(err).Msg("Invalid JSON was passed")
			utils.WriteJSONError(w, "Invalid JSON was passed", http.StatusBadRequest)
			return
		}

		created, err := svc.Create(ctx, userID, req.Name)
		if err != nil {
			log.Err(err).Msg("catalog item creation failed")
			writeError(w, err)
			return
		}

		utils.WriteJSON(w, created, http.StatusCreated)
	}
}
