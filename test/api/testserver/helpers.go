//go:build api

package testserver

import (
	"context"
	"net/http"
	"testing"

	"recipehub/internal/models"
	"recipehub/pkg/response"
	"recipehub/test/testutil"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthHelper provides authentication helpers for API tests.
type AuthHelper struct {
	server *TestServer
}

// NewAuthHelper creates a new auth helper.
func NewAuthHelper(server *TestServer) *AuthHelper {
	return &AuthHelper{server: server}
}

// RegisterUser registers a new user and returns the auth response data.
func (ah *AuthHelper) RegisterUser(t *testing.T, username, email, password string) map[string]interface{} {
	t.Helper()

	req := models.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	}

	w := testutil.MakeRequest(t, ah.server.Router, http.MethodPost, "/api/v1/auth/register", req)
	require.Equal(t, http.StatusCreated, w.Code, "register should return 201, got: %s", w.Body.String())

	var resp response.Response
	testutil.ParseResponse(t, w, &resp)
	require.True(t, resp.Success, "register response should be successful")

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "response data should be a map")
	return data
}

// Login logs in a user and returns the auth response data.
func (ah *AuthHelper) Login(t *testing.T, email, password string) map[string]interface{} {
	t.Helper()

	req := models.LoginRequest{
		Email:    email,
		Password: password,
	}

	w := testutil.MakeRequest(t, ah.server.Router, http.MethodPost, "/api/v1/auth/login", req)
	require.Equal(t, http.StatusOK, w.Code, "login should return 200, got: %s", w.Body.String())

	var resp response.Response
	testutil.ParseResponse(t, w, &resp)
	require.True(t, resp.Success, "login response should be successful")

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "response data should be a map")
	return data
}

// GetToken logs in and returns just the access token.
func (ah *AuthHelper) GetToken(t *testing.T, email, password string) string {
	t.Helper()

	data := ah.Login(t, email, password)
	token, ok := data["token"].(string)
	require.True(t, ok, "token should be a string")

	return token
}

// CreateAuthenticatedUser creates a user and returns the user data and token.
func (ah *AuthHelper) CreateAuthenticatedUser(t *testing.T, username, email, password string) (userData map[string]interface{}, token string) {
	t.Helper()

	data := ah.RegisterUser(t, username, email, password)

	token, ok := data["token"].(string)
	require.True(t, ok, "token should be a string")

	userData, ok = data["user"].(map[string]interface{})
	require.True(t, ok, "user should be an object")

	return userData, token
}

// CreateDefaultUser creates a user with default test credentials.
func (ah *AuthHelper) CreateDefaultUser(t *testing.T) (userData map[string]interface{}, token string) {
	t.Helper()
	return ah.CreateAuthenticatedUser(t, "testuser", "test@example.com", "password123")
}

// SeedUser directly inserts a user into the database (bypasses API).
func (ah *AuthHelper) SeedUser(t *testing.T, user *models.User) *models.User {
	t.Helper()
	ctx := context.Background()

	err := ah.server.UserRepo.Create(ctx, user)
	require.NoError(t, err, "failed to seed user")

	return user
}

// PromoteToAdmin flips a user's role to admin directly in the database.
// There is no API surface for role changes, so tests reach into MongoDB.
func (ah *AuthHelper) PromoteToAdmin(t *testing.T, userID primitive.ObjectID) {
	t.Helper()
	ctx := context.Background()

	_, err := ah.server.MongoDB.Database.Collection("users").UpdateOne(
		ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"role": models.RoleAdmin}},
	)
	require.NoError(t, err, "failed to promote user to admin")
}

// RecipeHelper provides recipe-related helpers for API tests.
type RecipeHelper struct {
	server *TestServer
}

// NewRecipeHelper creates a new recipe helper.
func NewRecipeHelper(server *TestServer) *RecipeHelper {
	return &RecipeHelper{server: server}
}

// CreateRecipe creates a recipe via API and returns the response data.
func (rh *RecipeHelper) CreateRecipe(t *testing.T, token, name string, public bool) map[string]interface{} {
	t.Helper()

	calories := 500
	req := models.CreateRecipeRequest{
		Name:              name,
		Ingredients:       []string{"flour", "water", "salt"},
		Instructions:      "Mix everything and bake.",
		EstimatedCalories: &calories,
		Public:            public,
	}

	w := testutil.MakeAuthRequest(t, rh.server.Router, http.MethodPost, "/api/v1/recipes", token, req)
	require.Equal(t, http.StatusCreated, w.Code, "create recipe should return 201, got: %s", w.Body.String())

	var resp response.Response
	testutil.ParseResponse(t, w, &resp)
	require.True(t, resp.Success, "create recipe response should be successful")

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "response data should be a map")
	return data
}

// SeedRecipe directly inserts a recipe into the database (bypasses API).
func (rh *RecipeHelper) SeedRecipe(t *testing.T, recipe *models.Recipe) *models.Recipe {
	t.Helper()
	ctx := context.Background()

	err := rh.server.RecipeRepo.Create(ctx, recipe)
	require.NoError(t, err, "failed to seed recipe")

	return recipe
}

// GetIDFromResponse extracts the ID from response data.
// It handles both direct ID fields and nested objects (auth and image
// upload responses nest the entity).
func GetIDFromResponse(t *testing.T, data map[string]interface{}) string {
	t.Helper()

	if id, ok := data["id"].(string); ok {
		return id
	}

	if user, ok := data["user"].(map[string]interface{}); ok {
		if id, ok := user["id"].(string); ok {
			return id
		}
	}

	if recipe, ok := data["recipe"].(map[string]interface{}); ok {
		if id, ok := recipe["id"].(string); ok {
			return id
		}
	}

	t.Fatal("id should be a string in response data (checked: id, user.id, recipe.id)")
	return ""
}

// GetObjectIDFromResponse extracts and parses the ID as ObjectID.
func GetObjectIDFromResponse(t *testing.T, data map[string]interface{}) primitive.ObjectID {
	t.Helper()

	idStr := GetIDFromResponse(t, data)
	oid, err := primitive.ObjectIDFromHex(idStr)
	require.NoError(t, err, "failed to parse ObjectID")

	return oid
}
