package http

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"recipebox/internal/utils"
)

// Init builds the router. Every route passes through trace-id injection and
// access logging; everything except registration and token issuance sits
// behind the bearer-token auth middleware.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/users/create", h.register)
		r.Post("/api/users/token", h.token)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/users/me", h.profile)
		r.Put("/api/users/me", h.updateProfile)
		r.Patch("/api/users/me", h.updateProfile)

		r.Get("/api/tags", h.listCatalog(h.services.TagService))
		r.Post("/api/tags", h.createCatalog(h.services.TagService))
		r.Get("/api/ingredients", h.listCatalog(h.services.IngredientService))
		r.Post("/api/ingredients", h.createCatalog(h.services.IngredientService))

		r.Get("/api/recipes", h.listRecipes)
		r.Post("/api/recipes", h.createRecipe)
		r.Get("/api/recipes/{id}", h.getRecipe)
		r.Put("/api/recipes/{id}", h.updateRecipe)
		r.Patch("/api/recipes/{id}", h.updateRecipe)
		r.Post("/api/recipes/{id}/upload-image", h.uploadRecipeImage)
	})

	router.MethodNotAllowed(methodNotAllowed)

	return router
}

// InitWithStatic builds the router and additionally serves stored images
// from uploadDir under the /media/ prefix.
func (h *Handler) InitWithStatic(uploadDir string) *chi.Mux {
	router := h.Init()

	fileServer := http.StripPrefix("/media/", http.FileServer(http.Dir(filepath.Clean(uploadDir))))
	router.Get("/media/*", func(w http.ResponseWriter, r *http.Request) {
		// Reject dot-dot segments before they reach the file server.
		if strings.Contains(r.URL.Path, "..") {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		fileServer.ServeHTTP(w, r)
	})

	return router
}

// methodNotAllowed keeps 405 responses in the same JSON envelope as every
// other error the API produces.
func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONError(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
