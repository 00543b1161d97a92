// Package models defines data structures for the application.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// CalorieLogEntry is a single day's entry in a user's calorie log.
type CalorieLogEntry struct {
	Date             time.Time `json:"date" bson:"date" example:"2024-01-15T00:00:00Z"`
	CaloriesConsumed int       `json:"caloriesConsumed" bson:"caloriesConsumed" example:"2100"`
	CaloriesBurned   int       `json:"caloriesBurned" bson:"caloriesBurned" example:"450"`
}

// User represents a user in the system.
type User struct {
	ID           primitive.ObjectID   `json:"id" bson:"_id,omitempty" example:"507f1f77bcf86cd799439011"`
	Username     string               `json:"username" bson:"username" example:"janedoe"`
	Email        string               `json:"email" bson:"email" example:"user@example.com"`
	Password     string               `json:"-" bson:"passwordHash"` // "-" = never include in JSON response
	Role         string               `json:"role" bson:"role" example:"user"`
	SavedRecipes []primitive.ObjectID `json:"savedRecipes" bson:"savedRecipes"`
	CalorieLog   []CalorieLogEntry    `json:"calorieLog" bson:"calorieLog"`
	CreatedAt    time.Time            `json:"createdAt" bson:"createdAt" example:"2024-01-15T09:30:00Z"`
	UpdatedAt    time.Time            `json:"updatedAt" bson:"updatedAt" example:"2024-01-15T09:30:00Z"`
}

// RegisterRequest is the payload for creating an account.
// The 6-character password minimum mirrors the product constant, not a
// security-grade policy.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=2,max=50" example:"janedoe"`
	Email    string `json:"email" binding:"required,email" example:"user@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"secret123"`
}

// LoginRequest is the payload for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"user@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// AuthResponse is the response after successful registration or login.
type AuthResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIs..."`
	User  User   `json:"user"`
}

// ChangePasswordRequest is the payload for changing the account password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required" example:"secret123"`
	NewPassword     string `json:"newPassword" binding:"required,min=6" example:"evenmoresecret"`
}

// UpdateProfileRequest is the payload for updating the user profile.
// Pointer fields distinguish "omitted" from "set to zero value".
type UpdateProfileRequest struct {
	Username *string `json:"username" binding:"omitempty,min=2,max=50" example:"newname"`
	Email    *string `json:"email" binding:"omitempty,email" example:"newemail@example.com"`
}

// AddCalorieLogRequest is the payload for appending a calorie log entry.
type AddCalorieLogRequest struct {
	Date             string `json:"date" binding:"required" example:"2024-01-15"`
	CaloriesConsumed int    `json:"caloriesConsumed" binding:"gte=0" example:"2100"`
	CaloriesBurned   int    `json:"caloriesBurned" binding:"gte=0" example:"450"`
}

// CalorieLogQuery holds the optional date range for listing calorie log entries.
type CalorieLogQuery struct {
	StartDate string `form:"startDate" example:"2024-01-01"`
	EndDate   string `form:"endDate" example:"2024-01-31"`
}
