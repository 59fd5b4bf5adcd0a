package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipebox/internal/service"
	"recipebox/internal/store"
	"recipebox/internal/validators"
	"recipebox/models"
)

func recipeHandler(t *testing.T, recipes *mockRecipeService) *Handler {
	t.Helper()
	return newTestHandler(t, &service.Services{RecipeService: recipes})
}

// withURLID injects a chi route context carrying the {id} parameter, the way
// the router does when dispatching /api/recipes/{id}.
func withURLID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func sampleRecipe() models.Recipe {
	return models.Recipe{
		RecipeID:    10,
		UserID:      testUserID,
		Title:       "Pancakes",
		TimeMinutes: 15,
		Price:       3.50,
		Tags:        []models.CatalogItem{{ID: 2, Name: "Breakfast"}},
		Ingredients: []models.CatalogItem{{ID: 5, Name: "Flour"}},
	}
}

func TestListRecipes_Success(t *testing.T) {
	recipes := &mockRecipeService{
		listFn: func(_ context.Context, ownerID int64, filter models.RecipeFilter) ([]models.Recipe, error) {
			assert.Equal(t, testUserID, ownerID)
			assert.True(t, filter.Empty())
			return []models.Recipe{sampleRecipe()}, nil
		},
	}
	h := recipeHandler(t, recipes)

	req := authedRequest(httptest.NewRequest(http.MethodGet, "/api/recipes", nil))
	rec := serve(h.listRecipes, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var summaries []models.RecipeSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, int64(10), summaries[0].ID)
	assert.Equal(t, []int64{2}, summaries[0].Tags, "listings carry relation ids, not nested objects")
	assert.Equal(t, []int64{5}, summaries[0].Ingredients)
}

func TestListRecipes_Filter(t *testing.T) {
	recipes := &mockRecipeService{
		listFn: func(_ context.Context, _ int64, filter models.RecipeFilter) ([]models.Recipe, error) {
			assert.Equal(t, []int64{1, 2}, filter.TagIDs)
			assert.Equal(t, []int64{5}, filter.IngredientIDs)
			return nil, nil
		},
	}
	h := recipeHandler(t, recipes)

	req := authedRequest(httptest.NewRequest(http.MethodGet, "/api/recipes?tags=1,2&ingredients=5", nil))
	rec := serve(h.listRecipes, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestListRecipes_MalformedFilter(t *testing.T) {
	h := recipeHandler(t, &mockRecipeService{})

	req := authedRequest(httptest.NewRequest(http.MethodGet, "/api/recipes?tags=1,abc", nil))
	rec := serve(h.listRecipes, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "tags")
}

func TestGetRecipe_Success(t *testing.T) {
	recipes := &mockRecipeService{
		getFn: func(_ context.Context, ownerID, recipeID int64) (models.Recipe, error) {
			assert.Equal(t, testUserID, ownerID)
			assert.Equal(t, int64(10), recipeID)
			return sampleRecipe(), nil
		},
	}
	h := recipeHandler(t, recipes)

	req := withURLID(authedRequest(httptest.NewRequest(http.MethodGet, "/api/recipes/10", nil)), "10")
	rec := serve(h.getRecipe, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var recipe models.Recipe
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &recipe))
	require.Len(t, recipe.Tags, 1)
	assert.Equal(t, "Breakfast", recipe.Tags[0].Name, "the detail response nests full catalog objects")
}

func TestGetRecipe_NotFound(t *testing.T) {
	recipes := &mockRecipeService{
		getFn: func(_ context.Context, _, _ int64) (models.Recipe, error) {
			return models.Recipe{}, store.ErrRecipeNotFound
		},
	}
	h := recipeHandler(t, recipes)

	req := withURLID(authedRequest(httptest.NewRequest(http.MethodGet, "/api/recipes/99", nil)), "99")
	rec := serve(h.getRecipe, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetRecipe_NonNumericID(t *testing.T) {
	h := recipeHandler(t, &mockRecipeService{})

	req := withURLID(authedRequest(httptest.NewRequest(http.MethodGet, "/api/recipes/abc", nil)), "abc")
	rec := serve(h.getRecipe, req)

	assert.Equal(t, http.StatusNotFound, rec.Code, "malformed ids look the same as missing recipes")
}

func TestCreateRecipe_Success(t *testing.T) {
	recipes := &mockRecipeService{
		createFn: func(_ context.Context, ownerID int64, input models.RecipeInput) (models.Recipe, error) {
			assert.Equal(t, testUserID, ownerID)
			require.NotNil(t, input.Title)
			assert.Equal(t, "Pancakes", *input.Title)
			assert.Equal(t, []int64{2}, input.Tags)
			return sampleRecipe(), nil
		},
	}
	h := recipeHandler(t, recipes)

	body := `{"title":"Pancakes","time_minutes":15,"price":3.50,"tags":[2]}`
	req := authedRequest(httptest.NewRequest(http.MethodPost, "/api/recipes", strings.NewReader(body)))
	rec := serve(h.createRecipe, req)

	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateRecipe_ValidationFailure(t *testing.T) {
	recipes := &mockRecipeService{
		createFn: func(_ context.Context, _ int64, _ models.RecipeInput) (models.Recipe, error) {
			return models.Recipe{}, validators.NewValidationError(validators.FieldTitle, "must not be blank")
		},
	}
	h := recipeHandler(t, recipes)

	req := authedRequest(httptest.NewRequest(http.MethodPost, "/api/recipes", strings.NewReader(`{"title":"  "}`)))
	rec := serve(h.createRecipe, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "title: must not be blank")
}

func TestUpdateRecipe_MethodDecidesMergeSemantics(t *testing.T) {
	tests := []struct {
		method      string
		wantPartial bool
	}{
		{http.MethodPatch, true},
		{http.MethodPut, false},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			var gotPartial bool
			recipes := &mockRecipeService{
				updateFn: func(_ context.Context, _, recipeID int64, _ models.RecipeInput, partial bool) (models.Recipe, error) {
					assert.Equal(t, int64(10), recipeID)
					gotPartial = partial
					return sampleRecipe(), nil
				},
			}
			h := recipeHandler(t, recipes)

			body := `{"title":"Fluffy pancakes","time_minutes":15,"price":3.50}`
			req := withURLID(authedRequest(httptest.NewRequest(tt.method, "/api/recipes/10", strings.NewReader(body))), "10")
			rec := serve(h.updateRecipe, req)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantPartial, gotPartial)
		})
	}
}

func TestUpdateRecipe_NotFound(t *testing.T) {
	recipes := &mockRecipeService{
		updateFn: func(_ context.Context, _, _ int64, _ models.RecipeInput, _ bool) (models.Recipe, error) {
			return models.Recipe{}, store.ErrRecipeNotFound
		},
	}
	h := recipeHandler(t, recipes)

	req := withURLID(authedRequest(httptest.NewRequest(http.MethodPatch, "/api/recipes/99", strings.NewReader(`{}`))), "99")
	rec := serve(h.updateRecipe, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// multipartImage builds a multipart body with one file field named "image".
func multipartImage(t *testing.T, fieldName, filename string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(fieldName, filename)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}

func TestUploadRecipeImage_Success(t *testing.T) {
	payload := []byte("fake image bytes")

	recipes := &mockRecipeService{
		attachImageFn: func(_ context.Context, ownerID, recipeID int64, r io.Reader, originalFilename string) (models.Recipe, error) {
			assert.Equal(t, testUserID, ownerID)
			assert.Equal(t, int64(10), recipeID)
			assert.Equal(t, "photo.png", originalFilename)

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, payload, got)

			recipe := sampleRecipe()
			recipe.ImagePath = "recipes/generated.png"
			return recipe, nil
		},
	}
	h := recipeHandler(t, recipes)

	body, contentType := multipartImage(t, "image", "photo.png", payload)
	req := withURLID(authedRequest(httptest.NewRequest(http.MethodPost, "/api/recipes/10/upload-image", body)), "10")
	req.Header.Set("Content-Type", contentType)
	rec := serve(h.uploadRecipeImage, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.UploadImageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, "recipes/generated.png", resp.Image)
}

func TestUploadRecipeImage_MissingFileField(t *testing.T) {
	h := recipeHandler(t, &mockRecipeService{})

	body, contentType := multipartImage(t, "attachment", "photo.png", []byte("bytes"))
	req := withURLID(authedRequest(httptest.NewRequest(http.MethodPost, "/api/recipes/10/upload-image", body)), "10")
	req.Header.Set("Content-Type", contentType)
	rec := serve(h.uploadRecipeImage, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "image")
}

func TestUploadRecipeImage_NotMultipart(t *testing.T) {
	h := recipeHandler(t, &mockRecipeService{})

	req := withURLID(authedRequest(httptest.NewRequest(http.MethodPost, "/api/recipes/10/upload-image", strings.NewReader("plain body"))), "10")
	rec := serve(h.uploadRecipeImage, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadRecipeImage_InvalidPayload(t *testing.T) {
	recipes := &mockRecipeService{
		attachImageFn: func(_ context.Context, _, _ int64, _ io.Reader, _ string) (models.Recipe, error) {
			return models.Recipe{}, validators.NewValidationError("image", "not a valid image file")
		},
	}
	h := recipeHandler(t, recipes)

	body, contentType := multipartImage(t, "image", "notes.txt", []byte("not an image"))
	req := withURLID(authedRequest(httptest.NewRequest(http.MethodPost, "/api/recipes/10/upload-image", body)), "10")
	req.Header.Set("Content-Type", contentType)
	rec := serve(h.uploadRecipeImage, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "image: not a valid image file")
}
