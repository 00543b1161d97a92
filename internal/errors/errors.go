// Package errors provides custom error types for the application.
package errors

import "errors"

// User errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user with this email already exists")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordMismatch   = errors.New("current password is incorrect")
)

// Auth errors
var (
	ErrUnauthenticated = errors.New("missing or malformed credentials")
	ErrInvalidToken    = errors.New("invalid token")
	ErrTokenExpired    = errors.New("token expired")
	ErrAdminRequired   = errors.New("admin privileges required")
)

// Recipe errors
var (
	ErrRecipeNotFound      = errors.New("recipe not found")
	ErrRecipeForbidden     = errors.New("access denied to this recipe")
	ErrRecipeNotOwned      = errors.New("only the recipe owner can modify it")
	ErrInvalidRecipeID     = errors.New("invalid recipe ID format")
	ErrRecipeAlreadySaved  = errors.New("recipe already saved")
	ErrEmptyIngredientList = errors.New("ingredient list must not be empty")
)

// Calorie log errors
var (
	ErrInvalidDate      = errors.New("invalid date format")
	ErrInvalidDateRange = errors.New("start date must not be after end date")
)
