package handler

import (
	"errors"

	apperrors "recipehub/internal/errors"
	"recipehub/internal/middleware"
	"recipehub/internal/models"
	"recipehub/internal/service"
	"recipehub/pkg/response"

	"github.com/gin-gonic/gin"
)

// RecipeHandler handles HTTP requests for recipe operations.
//
// Handlers extract the principal, bind the payload, and translate service
// errors to HTTP statuses; every access decision happens in the service's
// authorizer, never here.
type RecipeHandler struct {
	service service.RecipeServicer
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(service service.RecipeServicer) *RecipeHandler {
	return &RecipeHandler{service: service}
}

// ListRecipes godoc
// @Summary      List visible recipes
// @Description  Retrieve all recipes the authenticated user may see (own plus public), newest first
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.Response{data=[]models.Recipe}
// @Failure      401  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Security     BearerAuth
// @Router       /recipes [get]
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Unauthorized(c, "user not authenticated")
		return
	}

	recipes, err := h.service.List(c.Request.Context(), principal)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Success(c, recipes)
}

// GetRecipe godoc
// @Summary      Get recipe by ID
// @Description  Retrieve a single recipe if it is public or owned by the authenticated user
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Recipe ID"
// @Success      200  {object}  response.Response{data=models.Recipe}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Security     BearerAuth
// @Router       /recipes/{id} [get]
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Unauthorized(c, "user not authenticated")
		return
	}

	var params models.RecipeIDParam
	if err := c.ShouldBindUri(&params); err != nil {
		response.BadRequest(c, apperrors.ErrInvalidRecipeID.Error())
		return
	}

	recipe, err := h.service.Get(c.Request.Context(), principal, params.ID)
	if err != nil {
		h.writeRecipeError(c, err)
		return
	}

	response.Success(c, recipe)
}

// CreateRecipe godoc
// @Summary      Create a recipe
// @Description  Store a new recipe owned by the authenticated user; private unless public is set
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Param        request  body      models.CreateRecipeRequest  true  "Recipe details"
// @Success      201      {object}  response.Response{data=models.Recipe}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Security     BearerAuth
// @Router       /recipes [post]
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Unauthorized(c, "user not authenticated")
		return
	}

	var req models.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	recipe, err := h.service.Create(c.Request.Context(), principal, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, recipe)
}

// UpdateRecipe godoc
// @Summary      Update a recipe
// @Description  Apply a partial update to a recipe; only the owner may update
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Param        id       path      string                      true  "Recipe ID"
// @Param        request  body      models.UpdateRecipeRequest  true  "Fields to update"
// @Success      200      {object}  response.Response{data=models.Recipe}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Security     BearerAuth
// @Router       /recipes/{id} [put]
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Unauthorized(c, "user not authenticated")
		return
	}

	var params models.RecipeIDParam
	if err := c.ShouldBindUri(&params); err != nil {
		response.BadRequest(c, apperrors.ErrInvalidRecipeID.Error())
		return
	}

	var req models.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	recipe, err := h.service.Update(c.Request.Context(), principal, params.ID, &req)
	if err != nil {
		h.writeRecipeError(c, err)
		return
	}

	response.Success(c, recipe)
}

// DeleteRecipe godoc
// @Summary      Delete a recipe
// @Description  Remove a recipe; only the owner may delete
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Recipe ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Security     BearerAuth
// @Router       /recipes/{id} [delete]
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Unauthorized(c, "user not authenticated")
		return
	}

	var params models.RecipeIDParam
	if err := c.ShouldBindUri(&params); err != nil {
		response.BadRequest(c, apperrors.ErrInvalidRecipeID.Error())
		return
	}

	if err := h.service.Delete(c.Request.Context(), principal, params.ID); err != nil {
		h.writeRecipeError(c, err)
		return
	}

	response.Message(c, "recipe deleted")
}

// GenerateRecipe godoc
// @Summary      Generate a recipe
// @Description  Produce a recipe suggestion from an ingredient list; the result is not persisted
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Param        request  body      models.GenerateRecipeRequest  true  "Ingredients and preferences"
// @Success      200      {object}  response.Response{data=models.GeneratedRecipe}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Security     BearerAuth
// @Router       /recipes/generate [post]
func (h *RecipeHandler) GenerateRecipe(c *gin.Context) {
	var req models.GenerateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	recipe, err := h.service.Generate(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmptyIngredientList) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.Success(c, recipe)
}

// SaveGeneratedRecipe godoc
// @Summary      Save a generated recipe
// @Description  Persist a previously generated recipe as a private recipe owned by the authenticated user
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Param        request  body      models.SaveGeneratedRequest  true  "Generated recipe to save"
// @Success      201      {object}  response.Response{data=models.Recipe}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Security     BearerAuth
// @Router       /recipes/save-generated [post]
func (h *RecipeHandler) SaveGeneratedRecipe(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Unauthorized(c, "user not authenticated")
		return
	}

	var req models.SaveGeneratedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	recipe, err := h.service.SaveGenerated(c.Request.Context(), principal, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, recipe)
}

// RequestImageUpload godoc
// @Summary      Request a recipe image upload URL
// @Description  Issue a pre-signed PUT URL for the recipe's image; only the owner may attach an image
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Recipe ID"
// @Success      200  {object}  response.Response{data=models.RecipeImageUploadResponse}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Security     BearerAuth
// @Router       /recipes/{id}/image [post]
func (h *RecipeHandler) RequestImageUpload(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Unauthorized(c, "user not authenticated")
		return
	}

	var params models.RecipeIDParam
	if err := c.ShouldBindUri(&params); err != nil {
		response.BadRequest(c, apperrors.ErrInvalidRecipeID.Error())
		return
	}

	result, err := h.service.RequestImageUpload(c.Request.Context(), principal, params.ID)
	if err != nil {
		h.writeRecipeError(c, err)
		return
	}

	response.Success(c, result)
}

// writeRecipeError maps recipe service errors to HTTP statuses. Denials
// keep distinct messages: resource existence is not sensitive here, so
// 404 and 403 are allowed to differ.
func (h *RecipeHandler) writeRecipeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidRecipeID):
		response.BadRequest(c, err.Error())
	case errors.Is(err, apperrors.ErrRecipeNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, apperrors.ErrRecipeForbidden), errors.Is(err, apperrors.ErrRecipeNotOwned):
		response.Forbidden(c, err.Error())
	default:
		response.InternalError(c)
	}
}
