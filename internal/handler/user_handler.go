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

// UserHandler handles HTTP requests for user profile operations.
type UserHandler struct {
	service service.UserServicer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service service.UserServicer) *UserHandler {
	return &UserHandler{service: service}
}

// GetProfile godoc
// @Summary      Get own profile
// @Description  Retrieve the authenticated user's profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.Response{data=models.User}
// @Failure      401  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Security     BearerAuth
// @Router       /users/profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Unauthorized(c, "user not authenticated")
		return
	}

	user, err := h.service.GetProfile(c.Request.Context(), principal)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.Success(c, user)
}

// UpdateProfile godoc
// @Summary      Update own profile
// @Description  Update the authenticated user's username and/or email
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body      models.UpdateProfileRequest  true  "Fields to update"
// @Success      200      {object}  response.Response{data=models.User}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Security     BearerAuth
// @Router       /users/profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Unauthorized(c, "user not authenticated")
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), principal, &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserAlreadyExists) || errors.Is(err, apperrors.ErrUsernameTaken) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.Success(c, user)
}

// SaveRecipe godoc
// @Summary      Save a recipe
// @Description  Add a readable recipe to the authenticated user's saved list
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        recipeId  path      string  true  "Recipe ID"
// @Success      200       {object}  response.Response
// @Failure      400       {object}  response.Response
// @Failure      401       {object}  response.Response
// @Failure      403       {object}  response.Response
// @Failure      404       {object}  response.Response
// @Failure      500       {object}  response.Response
// @Security     BearerAuth
// @Router       /users/saved-recipes/{recipeId} [post]
func (h *UserHandler) SaveRecipe(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Unauthorized(c, "user not authenticated")
		return
	}

	var params models.SavedRecipeIDParam
	if err := c.ShouldBindUri(&params); err != nil {
		response.BadRequest(c, apperrors.ErrInvalidRecipeID.Error())
		return
	}

	if err := h.service.SaveRecipe(c.Request.Context(), principal, params.RecipeID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidRecipeID):
			response.BadRequest(c, err.Error())
		case errors.Is(err, apperrors.ErrRecipeNotFound):
			response.NotFound(c, err.Error())
		case errors.Is(err, apperrors.ErrRecipeForbidden):
			response.Forbidden(c, err.Error())
		case errors.Is(err, apperrors.ErrRecipeAlreadySaved):
			response.Conflict(c, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.Message(c, "recipe saved")
}

// UnsaveRecipe godoc
// @Summary      Unsave a recipe
// @Description  Remove a recipe from the authenticated user's saved list; removing an absent entry is a no-op
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        recipeId  path      string  true  "Recipe ID"
// @Success      200       {object}  response.Response
// @Failure      400       {object}  response.Response
// @Failure      401       {object}  response.Response
// @Failure      500       {object}  response.Response
// @Security     BearerAuth
// @Router       /users/saved-recipes/{recipeId} [delete]
func (h *UserHandler) UnsaveRecipe(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Unauthorized(c, "user not authenticated")
		return
	}

	var params models.SavedRecipeIDParam
	if err := c.ShouldBindUri(&params); err != nil {
		response.BadRequest(c, apperrors.ErrInvalidRecipeID.Error())
		return
	}

	if err := h.service.UnsaveRecipe(c.Request.Context(), principal, params.RecipeID); err != nil {
		if errors.Is(err, apperrors.ErrInvalidRecipeID) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.Message(c, "recipe removed from saved list")
}

// ListSavedRecipes godoc
// @Summary      List saved recipes
// @Description  Retrieve the authenticated user's saved recipes that are still visible to them
// @Tags         users
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.Response{data=[]models.Recipe}
// @Failure      401  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Security     BearerAuth
// @Router       /users/saved-recipes [get]
func (h *UserHandler) ListSavedRecipes(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Unauthorized(c, "user not authenticated")
		return
	}

	recipes, err := h.service.ListSavedRecipes(c.Request.Context(), principal)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Success(c, recipes)
}

// AddCalorieLogEntry godoc
// @Summary      Add a calorie log entry
// @Description  Append a daily entry to the authenticated user's calorie log
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body      models.AddCalorieLogRequest  true  "Log entry"
// @Success      201      {object}  response.Response{data=models.CalorieLogEntry}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Security     BearerAuth
// @Router       /users/calorie-log [post]
func (h *UserHandler) AddCalorieLogEntry(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Unauthorized(c, "user not authenticated")
		return
	}

	var req models.AddCalorieLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	entry, err := h.service.AddCalorieLogEntry(c.Request.Context(), principal, &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidDate) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, entry)
}

// GetCalorieLog godoc
// @Summary      Get the calorie log
// @Description  Retrieve the authenticated user's calorie log, optionally filtered to an inclusive date range
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        startDate  query     string  false  "Range start (YYYY-MM-DD)"
// @Param        endDate    query     string  false  "Range end (YYYY-MM-DD)"
// @Success      200        {object}  response.Response{data=[]models.CalorieLogEntry}
// @Failure      400        {object}  response.Response
// @Failure      401        {object}  response.Response
// @Failure      500        {object}  response.Response
// @Security     BearerAuth
// @Router       /users/calorie-log [get]
func (h *UserHandler) GetCalorieLog(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Unauthorized(c, "user not authenticated")
		return
	}

	var query models.CalorieLogQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	entries, err := h.service.GetCalorieLog(c.Request.Context(), principal, &query)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidDate) || errors.Is(err, apperrors.ErrInvalidDateRange) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.Success(c, entries)
}

// GetAllUsers godoc
// @Summary      List all users
// @Description  Retrieve all user accounts; admin only
// @Tags         users
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.Response{data=[]models.User}
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Security     BearerAuth
// @Router       /users [get]
func (h *UserHandler) GetAllUsers(c *gin.Context) {
	users, err := h.service.GetAllUsers(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Success(c, users)
}
