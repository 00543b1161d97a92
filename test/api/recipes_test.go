//go:build api

package api

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"recipehub/internal/models"
	"recipehub/internal/storage"
	"recipehub/test/api/testserver"
	"recipehub/test/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCreateRecipe tests the POST /api/v1/recipes endpoint.
func TestCreateRecipe(t *testing.T) {
	testServer.CleanupBetweenTests(t)

	authHelper := testserver.NewAuthHelper(testServer)
	_, token := authHelper.CreateDefaultUser(t)

	t.Run("success - creates private recipe by default", func(t *testing.T) {
		calories := 640
		req := models.CreateRecipeRequest{
			Name:              "Tomato Basil Pasta",
			Ingredients:       []string{"pasta", "tomatoes", "basil"},
			Instructions:      "Boil the pasta, blend the sauce, combine.",
			EstimatedCalories: &calories,
		}

		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodPost, "/api/v1/recipes", token, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		resp := testutil.ParseAPIResponse(t, w)
		assert.True(t, resp.Success)
		assert.Equal(t, "Tomato Basil Pasta", resp.Data["name"])
		assert.Equal(t, false, resp.Data["public"])
		assert.Equal(t, models.SourceUser, resp.Data["source"])
		assert.Equal(t, float64(640), resp.Data["estimatedCalories"])
		assert.NotEmpty(t, resp.Data["id"])
		assert.NotEmpty(t, resp.Data["createdBy"])
	})

	t.Run("error - missing ingredients", func(t *testing.T) {
		req := map[string]interface{}{
			"name":         "No Ingredients",
			"instructions": "Nothing to cook with.",
		}

		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodPost, "/api/v1/recipes", token, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("error - requires authentication", func(t *testing.T) {
		req := models.CreateRecipeRequest{
			Name:         "Anonymous Dish",
			Ingredients:  []string{"mystery"},
			Instructions: "Unknown.",
		}

		w := testutil.MakeRequest(t, testServer.Router, http.MethodPost, "/api/v1/recipes", req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// TestUpdateRecipe tests the PUT /api/v1/recipes/:id endpoint.
func TestUpdateRecipe(t *testing.T) {
	testServer.CleanupBetweenTests(t)

	authHelper := testserver.NewAuthHelper(testServer)
	recipeHelper := testserver.NewRecipeHelper(testServer)
	_, token := authHelper.CreateDefaultUser(t)

	recipeData := recipeHelper.CreateRecipe(t, token, "Editable Recipe", false)
	recipeID := testserver.GetIDFromResponse(t, recipeData)

	t.Run("success - owner updates fields", func(t *testing.T) {
		newName := "Renamed Recipe"
		public := true
		req := models.UpdateRecipeRequest{
			Name:   &newName,
			Public: &public,
		}

		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodPut, "/api/v1/recipes/"+recipeID, token, req)

		assert.Equal(t, http.StatusOK, w.Code)

		resp := testutil.ParseAPIResponse(t, w)
		assert.Equal(t, "Renamed Recipe", resp.Data["name"])
		assert.Equal(t, true, resp.Data["public"])
	})

	t.Run("error - invalid recipe id", func(t *testing.T) {
		newName := "Whatever"
		req := models.UpdateRecipeRequest{Name: &newName}

		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodPut, "/api/v1/recipes/not-an-id", token, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("error - recipe not found", func(t *testing.T) {
		newName := "Whatever"
		req := models.UpdateRecipeRequest{Name: &newName}

		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodPut, "/api/v1/recipes/507f1f77bcf86cd799439011", token, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

// TestDeleteRecipe tests the DELETE /api/v1/recipes/:id endpoint.
func TestDeleteRecipe(t *testing.T) {
	testServer.CleanupBetweenTests(t)

	authHelper := testserver.NewAuthHelper(testServer)
	recipeHelper := testserver.NewRecipeHelper(testServer)
	_, token := authHelper.CreateDefaultUser(t)

	recipeData := recipeHelper.CreateRecipe(t, token, "Doomed Recipe", false)
	recipeID := testserver.GetIDFromResponse(t, recipeData)

	t.Run("success - owner deletes recipe", func(t *testing.T) {
		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodDelete, "/api/v1/recipes/"+recipeID, token, nil)

		assert.Equal(t, http.StatusOK, w.Code)

		// Gone now
		w = testutil.MakeAuthRequest(t, testServer.Router, http.MethodGet, "/api/v1/recipes/"+recipeID, token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

// TestGenerateRecipe tests the POST /api/v1/recipes/generate endpoint.
// The test server runs without an API key, so the fallback catalog serves
// the response.
func TestGenerateRecipe(t *testing.T) {
	testServer.CleanupBetweenTests(t)

	authHelper := testserver.NewAuthHelper(testServer)
	_, token := authHelper.CreateDefaultUser(t)

	t.Run("success - returns a generated recipe", func(t *testing.T) {
		req := models.GenerateRecipeRequest{
			Ingredients: []string{"chicken", "rice", "lime"},
		}

		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodPost, "/api/v1/recipes/generate", token, req)

		assert.Equal(t, http.StatusOK, w.Code)

		resp := testutil.ParseAPIResponse(t, w)
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.Data["name"])
		assert.NotEmpty(t, resp.Data["instructions"])
		assert.Equal(t, true, resp.Data["generated"])
	})

	t.Run("success - same ingredients give same fallback recipe", func(t *testing.T) {
		req := models.GenerateRecipeRequest{
			Ingredients: []string{"tofu", "noodles"},
		}

		w1 := testutil.MakeAuthRequest(t, testServer.Router, http.MethodPost, "/api/v1/recipes/generate", token, req)
		w2 := testutil.MakeAuthRequest(t, testServer.Router, http.MethodPost, "/api/v1/recipes/generate", token, req)

		require.Equal(t, http.StatusOK, w1.Code)
		require.Equal(t, http.StatusOK, w2.Code)

		resp1 := testutil.ParseAPIResponse(t, w1)
		resp2 := testutil.ParseAPIResponse(t, w2)
		assert.Equal(t, resp1.Data["name"], resp2.Data["name"])
	})

	t.Run("error - empty ingredient list", func(t *testing.T) {
		req := map[string]interface{}{
			"ingredients": []string{},
		}

		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodPost, "/api/v1/recipes/generate", token, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// TestSaveGeneratedRecipe tests the POST /api/v1/recipes/save-generated endpoint.
func TestSaveGeneratedRecipe(t *testing.T) {
	testServer.CleanupBetweenTests(t)

	authHelper := testserver.NewAuthHelper(testServer)
	_, token := authHelper.CreateDefaultUser(t)

	t.Run("success - persists as private ai-sourced recipe", func(t *testing.T) {
		calories := 520
		req := models.SaveGeneratedRequest{
			Name:              "Chicken Lime Rice",
			Ingredients:       []string{"chicken", "rice", "lime"},
			Instructions:      "Season the chicken, cook the rice, squeeze the lime.",
			EstimatedCalories: &calories,
		}

		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodPost, "/api/v1/recipes/save-generated", token, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		resp := testutil.ParseAPIResponse(t, w)
		assert.Equal(t, models.SourceGenerated, resp.Data["source"])
		assert.Equal(t, false, resp.Data["public"])
		assert.NotEmpty(t, resp.Data["id"])
	})
}

// TestRecipeImageUpload tests the POST /api/v1/recipes/:id/image endpoint
// against real MinIO: the pre-signed URL it returns must accept a PUT.
func TestRecipeImageUpload(t *testing.T) {
	testServer.CleanupBetweenTests(t)

	authHelper := testserver.NewAuthHelper(testServer)
	recipeHelper := testserver.NewRecipeHelper(testServer)
	_, token := authHelper.CreateDefaultUser(t)

	recipeData := recipeHelper.CreateRecipe(t, token, "Photogenic Dish", true)
	recipeID := testserver.GetIDFromResponse(t, recipeData)

	t.Run("success - upload URL accepts a PUT and the object lands in the bucket", func(t *testing.T) {
		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodPost, "/api/v1/recipes/"+recipeID+"/image", token, nil)

		require.Equal(t, http.StatusOK, w.Code, "image upload request failed: %s", w.Body.String())

		resp := testutil.ParseAPIResponse(t, w)
		uploadURL, ok := resp.Data["uploadUrl"].(string)
		require.True(t, ok, "uploadUrl should be a string")
		require.NotEmpty(t, uploadURL)

		// Upload a fake image through the pre-signed URL
		imageBytes := []byte("not really a jpeg")
		putReq, err := http.NewRequest(http.MethodPut, uploadURL, bytes.NewReader(imageBytes))
		require.NoError(t, err)
		putReq.Header.Set("Content-Type", "image/jpeg")

		putResp, err := http.DefaultClient.Do(putReq)
		require.NoError(t, err)
		defer putResp.Body.Close()
		require.Equal(t, http.StatusOK, putResp.StatusCode, "pre-signed PUT should succeed")

		// The object exists under the recipe's image key
		oid := testserver.GetObjectIDFromResponse(t, recipeData)
		assert.True(t, testServer.MinIO.ObjectExists(context.Background(), storage.ImageKey(oid)))

		// Subsequent reads carry a download URL
		w = testutil.MakeAuthRequest(t, testServer.Router, http.MethodGet, "/api/v1/recipes/"+recipeID, token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		resp = testutil.ParseAPIResponse(t, w)
		assert.NotEmpty(t, resp.Data["imageUrl"])
	})
}

// TestCalorieEstimationPipeline tests that a recipe created without calories
// gets an estimate filled in by the background processor.
func TestCalorieEstimationPipeline(t *testing.T) {
	testServer.CleanupBetweenTests(t)

	authHelper := testserver.NewAuthHelper(testServer)
	_, token := authHelper.CreateDefaultUser(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	testServer.StartEstimationProcessor(ctx)
	defer testServer.StopEstimationProcessor()

	req := models.CreateRecipeRequest{
		Name:         "Mystery Soup",
		Ingredients:  []string{"water", "bones", "salt"},
		Instructions: "Simmer for hours.",
		// no estimatedCalories: the processor fills them in
	}

	w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodPost, "/api/v1/recipes", token, req)
	require.Equal(t, http.StatusCreated, w.Code)

	resp := testutil.ParseAPIResponse(t, w)
	recipeOID := testserver.GetObjectIDFromResponse(t, resp.Data)

	// The mock estimator charges 150 base + 90 per ingredient
	require.Eventually(t, func() bool {
		recipe, err := testServer.RecipeRepo.FindByID(context.Background(), recipeOID)
		if err != nil || recipe.EstimatedCalories == nil {
			return false
		}
		return *recipe.EstimatedCalories == 150+90*3
	}, 10*time.Second, 200*time.Millisecond, "estimated calories should be persisted by the processor")
}
