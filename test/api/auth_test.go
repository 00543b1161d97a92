//go:build api

package api

import (
	"net/http"
	"testing"

	"recipehub/internal/models"
	"recipehub/test/api/testserver"
	"recipehub/test/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRegister tests the POST /api/v1/auth/register endpoint.
func TestRegister(t *testing.T) {
	testServer.CleanupBetweenTests(t)

	t.Run("success - creates new user and returns token", func(t *testing.T) {
		req := models.RegisterRequest{
			Username: "testuser",
			Email:    "test@example.com",
			Password: "password123",
		}

		w := testutil.MakeRequest(t, testServer.Router, http.MethodPost, "/api/v1/auth/register", req)

		assert.Equal(t, http.StatusCreated, w.Code)

		resp := testutil.ParseAPIResponse(t, w)
		assert.True(t, resp.Success)
		require.NotNil(t, resp.Data)

		token, ok := resp.Data["token"].(string)
		assert.True(t, ok, "token should be a string")
		assert.NotEmpty(t, token)

		user, ok := resp.Data["user"].(map[string]interface{})
		require.True(t, ok, "user should be an object")
		assert.Equal(t, "test@example.com", user["email"])
		assert.Equal(t, "testuser", user["username"])
		assert.Equal(t, models.RoleUser, user["role"])
		assert.NotEmpty(t, user["id"])
		assert.NotContains(t, user, "password")
		assert.NotContains(t, user, "passwordHash")
	})

	t.Run("error - missing required fields", func(t *testing.T) {
		testServer.CleanupBetweenTests(t)

		req := map[string]string{
			"email": "test@example.com",
			// missing username and password
		}

		w := testutil.MakeRequest(t, testServer.Router, http.MethodPost, "/api/v1/auth/register", req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		resp := testutil.ParseAPIResponse(t, w)
		assert.False(t, resp.Success)
	})

	t.Run("error - invalid email format", func(t *testing.T) {
		testServer.CleanupBetweenTests(t)

		req := models.RegisterRequest{
			Username: "testuser",
			Email:    "invalid-email",
			Password: "password123",
		}

		w := testutil.MakeRequest(t, testServer.Router, http.MethodPost, "/api/v1/auth/register", req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("error - password too short", func(t *testing.T) {
		testServer.CleanupBetweenTests(t)

		req := models.RegisterRequest{
			Username: "testuser",
			Email:    "test@example.com",
			Password: "123", // too short, min is 6
		}

		w := testutil.MakeRequest(t, testServer.Router, http.MethodPost, "/api/v1/auth/register", req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("error - duplicate email", func(t *testing.T) {
		testServer.CleanupBetweenTests(t)

		req := models.RegisterRequest{
			Username: "firstuser",
			Email:    "duplicate@example.com",
			Password: "password123",
		}

		w := testutil.MakeRequest(t, testServer.Router, http.MethodPost, "/api/v1/auth/register", req)
		require.Equal(t, http.StatusCreated, w.Code)

		// Second registration with the same email
		req.Username = "seconduser"
		w = testutil.MakeRequest(t, testServer.Router, http.MethodPost, "/api/v1/auth/register", req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		resp := testutil.ParseAPIResponse(t, w)
		assert.False(t, resp.Success)
	})

	t.Run("error - duplicate username", func(t *testing.T) {
		testServer.CleanupBetweenTests(t)

		req := models.RegisterRequest{
			Username: "takenname",
			Email:    "first@example.com",
			Password: "password123",
		}

		w := testutil.MakeRequest(t, testServer.Router, http.MethodPost, "/api/v1/auth/register", req)
		require.Equal(t, http.StatusCreated, w.Code)

		req.Email = "second@example.com"
		w = testutil.MakeRequest(t, testServer.Router, http.MethodPost, "/api/v1/auth/register", req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// TestLogin tests the POST /api/v1/auth/login endpoint.
func TestLogin(t *testing.T) {
	testServer.CleanupBetweenTests(t)

	authHelper := testserver.NewAuthHelper(testServer)
	authHelper.RegisterUser(t, "loginuser", "login@example.com", "password123")

	t.Run("success - returns token and user", func(t *testing.T) {
		req := models.LoginRequest{
			Email:    "login@example.com",
			Password: "password123",
		}

		w := testutil.MakeRequest(t, testServer.Router, http.MethodPost, "/api/v1/auth/login", req)

		assert.Equal(t, http.StatusOK, w.Code)

		resp := testutil.ParseAPIResponse(t, w)
		assert.True(t, resp.Success)

		token, ok := resp.Data["token"].(string)
		assert.True(t, ok, "token should be a string")
		assert.NotEmpty(t, token)

		user, ok := resp.Data["user"].(map[string]interface{})
		require.True(t, ok, "user should be an object")
		assert.Equal(t, "login@example.com", user["email"])
	})

	t.Run("error - wrong password", func(t *testing.T) {
		req := models.LoginRequest{
			Email:    "login@example.com",
			Password: "wrongpassword",
		}

		w := testutil.MakeRequest(t, testServer.Router, http.MethodPost, "/api/v1/auth/login", req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("error - unknown email gets same response as wrong password", func(t *testing.T) {
		req := models.LoginRequest{
			Email:    "nobody@example.com",
			Password: "password123",
		}

		w := testutil.MakeRequest(t, testServer.Router, http.MethodPost, "/api/v1/auth/login", req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// TestMe tests the GET /api/v1/auth/me endpoint.
func TestMe(t *testing.T) {
	testServer.CleanupBetweenTests(t)

	authHelper := testserver.NewAuthHelper(testServer)
	userData, token := authHelper.CreateAuthenticatedUser(t, "meuser", "me@example.com", "password123")

	t.Run("success - returns current user", func(t *testing.T) {
		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodGet, "/api/v1/auth/me", token, nil)

		assert.Equal(t, http.StatusOK, w.Code)

		resp := testutil.ParseAPIResponse(t, w)
		assert.True(t, resp.Success)
		assert.Equal(t, userData["id"], resp.Data["id"])
		assert.Equal(t, "me@example.com", resp.Data["email"])
	})

	t.Run("error - missing token", func(t *testing.T) {
		w := testutil.MakeRequest(t, testServer.Router, http.MethodGet, "/api/v1/auth/me", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("error - malformed token", func(t *testing.T) {
		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodGet, "/api/v1/auth/me", "not-a-token", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// TestChangePassword tests the POST /api/v1/auth/change-password endpoint.
func TestChangePassword(t *testing.T) {
	testServer.CleanupBetweenTests(t)

	authHelper := testserver.NewAuthHelper(testServer)
	_, token := authHelper.CreateAuthenticatedUser(t, "pwuser", "pw@example.com", "oldpassword")

	t.Run("error - wrong current password", func(t *testing.T) {
		req := models.ChangePasswordRequest{
			CurrentPassword: "nottheoldone",
			NewPassword:     "newpassword",
		}

		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodPost, "/api/v1/auth/change-password", token, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("success - changes password and old one stops working", func(t *testing.T) {
		req := models.ChangePasswordRequest{
			CurrentPassword: "oldpassword",
			NewPassword:     "newpassword",
		}

		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodPost, "/api/v1/auth/change-password", token, req)

		assert.Equal(t, http.StatusOK, w.Code)

		// Old password no longer works
		loginReq := models.LoginRequest{Email: "pw@example.com", Password: "oldpassword"}
		w = testutil.MakeRequest(t, testServer.Router, http.MethodPost, "/api/v1/auth/login", loginReq)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		// New password does
		loginReq.Password = "newpassword"
		w = testutil.MakeRequest(t, testServer.Router, http.MethodPost, "/api/v1/auth/login", loginReq)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
