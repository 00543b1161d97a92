package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	apperrors "recipehub/internal/errors"
	"recipehub/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks recipehub/internal/repository UserRepository,RecipeRepository

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, update *models.UpdateProfileRequest) (*models.User, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error
	AddSavedRecipe(ctx context.Context, userID, recipeID primitive.ObjectID) error
	RemoveSavedRecipe(ctx context.Context, userID, recipeID primitive.ObjectID) error
	AddCalorieLogEntry(ctx context.Context, userID primitive.ObjectID, entry models.CalorieLogEntry) error
}

// userRepository implements UserRepository using MongoDB
type userRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{
		collection: db.Collection("users"),
	}
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	// Check if user with email already exists
	existing, _ := r.FindByEmail(ctx, user.Email)
	if existing != nil {
		return apperrors.ErrUserAlreadyExists
	}

	// Check username uniqueness
	var byUsername models.User
	err := r.collection.FindOne(ctx, bson.M{"username": user.Username}).Decode(&byUsername)
	if err == nil {
		return apperrors.ErrUsernameTaken
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if user.SavedRecipes == nil {
		user.SavedRecipes = []primitive.ObjectID{}
	}
	if user.CalorieLog == nil {
		user.CalorieLog = []models.CalorieLogEntry{}
	}

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		// Backstop for concurrent registrations: the pre-insert checks
		// race, so the unique indexes have the final word.
		return mapDuplicateKeyError(err)
	}

	user.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// mapDuplicateKeyError translates a unique-index violation into the
// matching sentinel error. Other errors pass through unchanged.
func mapDuplicateKeyError(err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return err
	}
	if strings.Contains(err.Error(), "username") {
		return apperrors.ErrUsernameTaken
	}
	return apperrors.ErrUserAlreadyExists
}

// FindByID finds a user by their ID
func (r *userRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

// FindByEmail finds a user by their email
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

// FindAll returns all users
func (r *userRepository) FindAll(ctx context.Context) ([]models.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}

	// Return empty slice instead of nil
	if users == nil {
		users = []models.User{}
	}

	return users, nil
}

// UpdateProfile updates a user's username and/or email
func (r *userRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, update *models.UpdateProfileRequest) (*models.User, error) {
	updateDoc := bson.M{"updatedAt": time.Now()}

	if update.Email != nil {
		// Check if new email is already taken by another user
		existing, _ := r.FindByEmail(ctx, *update.Email)
		if existing != nil && existing.ID != id {
			return nil, apperrors.ErrUserAlreadyExists
		}
		updateDoc["email"] = *update.Email
	}

	if update.Username != nil {
		var existing models.User
		err := r.collection.FindOne(ctx, bson.M{"username": *update.Username}).Decode(&existing)
		if err == nil && existing.ID != id {
			return nil, apperrors.ErrUsernameTaken
		}
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		updateDoc["username"] = *update.Username
	}

	result := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updateDoc},
	)

	if result.Err() != nil {
		if errors.Is(result.Err(), mongo.ErrNoDocuments) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, result.Err()
	}

	// Fetch and return the updated user
	return r.FindByID(ctx, id)
}

// UpdatePassword replaces the user's password hash
func (r *userRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"passwordHash": passwordHash,
			"updatedAt":    time.Now(),
		},
	})
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// AddSavedRecipe appends a recipe reference to the user's saved list.
// Returns ErrRecipeAlreadySaved if the reference is already present.
// No other field is touched here: ModifiedCount == 0 is how we detect
// that $addToSet found the reference already in place.
func (r *userRepository) AddSavedRecipe(ctx context.Context, userID, recipeID primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$addToSet": bson.M{"savedRecipes": recipeID},
	})
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return apperrors.ErrUserNotFound
	}
	if result.ModifiedCount == 0 {
		return apperrors.ErrRecipeAlreadySaved
	}

	return nil
}

// RemoveSavedRecipe removes a recipe reference from the user's saved list.
// Removing a reference that is not present is not an error.
func (r *userRepository) RemoveSavedRecipe(ctx context.Context, userID, recipeID primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$pull": bson.M{"savedRecipes": recipeID},
	})
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// AddCalorieLogEntry appends an entry to the user's calorie log.
func (r *userRepository) AddCalorieLogEntry(ctx context.Context, userID primitive.ObjectID, entry models.CalorieLogEntry) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$push": bson.M{"calorieLog": entry},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}
