package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"recipebox/internal/logger"
	"recipebox/internal/service"
	"recipebox/internal/utils"
	"recipebox/models"
)

// Hand-rolled service fakes. Each method field can be overridden per test
// case; calling an unset method panics, which surfaces unexpected
// interactions immediately.

type mockAccountService struct {
	registerFn           func(ctx context.Context, req models.RegisterRequest) (models.User, error)
	registerPrivilegedFn func(ctx context.Context, firstName, lastName, username, email, password string) (models.User, error)
	authenticateFn       func(ctx context.Context, email, password string) (models.User, error)
	profileFn            func(ctx context.Context, userID int64) (models.User, error)
	updateProfileFn      func(ctx context.Context, userID int64, req models.UpdateProfileRequest) (models.User, error)
	createTokenFn        func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn         func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAccountService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	return m.registerFn(ctx, req)
}

func (m *mockAccountService) RegisterPrivileged(ctx context.Context, firstName, lastName, username, email, password string) (models.User, error) {
	return m.registerPrivilegedFn(ctx, firstName, lastName, username, email, password)
}

func (m *mockAccountService) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	return m.authenticateFn(ctx, email, password)
}

func (m *mockAccountService) Profile(ctx context.Context, userID int64) (models.User, error) {
	return m.profileFn(ctx, userID)
}

func (m *mockAccountService) UpdateProfile(ctx context.Context, userID int64, req models.UpdateProfileRequest) (models.User, error) {
	return m.updateProfileFn(ctx, userID, req)
}

func (m *mockAccountService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAccountService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

type mockCatalogService struct {
	listFn   func(ctx context.Context, ownerID int64, assignedOnly bool) ([]models.CatalogItem, error)
	createFn func(ctx context.Context, ownerID int64, name string) (models.CatalogItem, error)
}

func (m *mockCatalogService) List(ctx context.Context, ownerID int64, assignedOnly bool) ([]models.CatalogItem, error) {
	return m.listFn(ctx, ownerID, assignedOnly)
}

func (m *mockCatalogService) Create(ctx context.Context, ownerID int64, name string) (models.CatalogItem, error) {
	return m.createFn(ctx, ownerID, name)
}

type mockRecipeService struct {
	listFn        func(ctx context.Context, ownerID int64, filter models.RecipeFilter) ([]models.Recipe, error)
	getFn         func(ctx context.Context, ownerID, recipeID int64) (models.Recipe, error)
	createFn      func(ctx context.Context, ownerID int64, input models.RecipeInput) (models.Recipe, error)
	updateFn      func(ctx context.Context, ownerID, recipeID int64, input models.RecipeInput, partial bool) (models.Recipe, error)
	attachImageFn func(ctx context.Context, ownerID, recipeID int64, payload io.Reader, originalFilename string) (models.Recipe, error)
}

func (m *mockRecipeService) List(ctx context.Context, ownerID int64, filter models.RecipeFilter) ([]models.Recipe, error) {
	return m.listFn(ctx, ownerID, filter)
}

func (m *mockRecipeService) Get(ctx context.Context, ownerID, recipeID int64) (models.Recipe, error) {
	return m.getFn(ctx, ownerID, recipeID)
}

func (m *mockRecipeService) Create(ctx context.Context, ownerID int64, input models.RecipeInput) (models.Recipe, error) {
	return m.createFn(ctx, ownerID, input)
}

func (m *mockRecipeService) Update(ctx context.Context, ownerID, recipeID int64, input models.RecipeInput, partial bool) (models.Recipe, error) {
	return m.updateFn(ctx, ownerID, recipeID, input, partial)
}

func (m *mockRecipeService) AttachImage(ctx context.Context, ownerID, recipeID int64, payload io.Reader, originalFilename string) (models.Recipe, error) {
	return m.attachImageFn(ctx, ownerID, recipeID, payload, originalFilename)
}

// newTestHandler builds a Handler over the given fakes; nil fields stay nil
// so accidental use of an unconfigured service panics.
func newTestHandler(t *testing.T, svcs *service.Services) *Handler {
	t.Helper()
	return NewHandler(svcs, logger.Nop())
}

// testUserID is the account id injected by authedRequest.
const testUserID int64 = 7

// authedRequest returns req with testUserID stored in its context, the way
// the auth middleware does for a valid bearer token.
func authedRequest(req *http.Request) *http.Request {
	ctx := context.WithValue(req.Context(), utils.UserIDCtxKey, testUserID)
	return req.WithContext(ctx)
}

// serve runs handler directly against a recorder.
func serve(handler http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}
