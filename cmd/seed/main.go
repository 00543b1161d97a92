package main

import (
	"context"
	"log"
	"time"

	"recipehub/internal/config"
	"recipehub/internal/database"
	"recipehub/internal/models"
	"recipehub/pkg/auth"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// SeedUser represents a user document for seeding.
type SeedUser struct {
	ID           primitive.ObjectID       `bson:"_id,omitempty"`
	Username     string                   `bson:"username"`
	Email        string                   `bson:"email"`
	PasswordHash string                   `bson:"passwordHash"`
	Role         string                   `bson:"role"`
	SavedRecipes []primitive.ObjectID     `bson:"savedRecipes"`
	CalorieLog   []models.CalorieLogEntry `bson:"calorieLog"`
	CreatedAt    time.Time                `bson:"createdAt"`
	UpdatedAt    time.Time                `bson:"updatedAt"`
}

// SeedRecipe represents a recipe document for seeding.
type SeedRecipe struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Name              string             `bson:"name"`
	Ingredients       []string           `bson:"ingredients"`
	Instructions      string             `bson:"instructions"`
	EstimatedCalories *int               `bson:"estimatedCalories,omitempty"`
	CreatedBy         primitive.ObjectID `bson:"createdBy"`
	Public            bool               `bson:"public"`
	Source            string             `bson:"source"`
	CreatedAt         time.Time          `bson:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt"`
}

func main() {
	log.Println("Starting seed...")

	cfg := config.Load()

	mongoDB := database.NewMongoDB(cfg.MongoURI, cfg.MongoDatabase)
	defer mongoDB.Close()

	ctx := context.Background()

	userIDs := seedUsers(ctx, mongoDB.Database)
	seedRecipes(ctx, mongoDB.Database, userIDs)

	log.Println("Seed completed successfully!")
}

func seedUsers(ctx context.Context, db *mongo.Database) []primitive.ObjectID {
	collection := db.Collection("users")

	// Clear existing users
	_, err := collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		log.Fatalf("Failed to clear users: %v", err)
	}

	// Hash passwords
	password1, _ := auth.HashPassword("password123")
	password2, _ := auth.HashPassword("password456")
	adminPassword, _ := auth.HashPassword("adminpass123")

	now := time.Now()

	users := []interface{}{
		SeedUser{
			Username:     "alice",
			Email:        "alice@example.com",
			PasswordHash: password1,
			Role:         models.RoleUser,
			SavedRecipes: []primitive.ObjectID{},
			CalorieLog: []models.CalorieLogEntry{
				{Date: now.Add(-48 * time.Hour).Truncate(24 * time.Hour), CaloriesConsumed: 1950, CaloriesBurned: 400},
				{Date: now.Add(-24 * time.Hour).Truncate(24 * time.Hour), CaloriesConsumed: 2200, CaloriesBurned: 650},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		SeedUser{
			Username:     "bob",
			Email:        "bob@example.com",
			PasswordHash: password2,
			Role:         models.RoleUser,
			SavedRecipes: []primitive.ObjectID{},
			CalorieLog:   []models.CalorieLogEntry{},
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		SeedUser{
			Username:     "admin",
			Email:        "admin@example.com",
			PasswordHash: adminPassword,
			Role:         models.RoleAdmin,
			SavedRecipes: []primitive.ObjectID{},
			CalorieLog:   []models.CalorieLogEntry{},
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}

	result, err := collection.InsertMany(ctx, users)
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	log.Printf("Seeded %d users", len(result.InsertedIDs))

	var userIDs []primitive.ObjectID
	for _, id := range result.InsertedIDs {
		userIDs = append(userIDs, id.(primitive.ObjectID))
	}

	return userIDs
}

func seedRecipes(ctx context.Context, db *mongo.Database, userIDs []primitive.ObjectID) {
	collection := db.Collection("recipes")

	// Clear existing recipes
	_, err := collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		log.Fatalf("Failed to clear recipes: %v", err)
	}

	now := time.Now()

	// Recipes for Alice (userIDs[0])
	aliceRecipes := []SeedRecipe{
		{
			Name:              "Tomato Basil Pasta",
			Ingredients:       []string{"spaghetti", "tomatoes", "basil", "garlic", "olive oil", "parmesan"},
			Instructions:      "Boil the spaghetti until al dente. Saute garlic in olive oil, add chopped tomatoes and simmer 10 minutes. Toss with pasta, torn basil, and parmesan.",
			EstimatedCalories: intPtr(640),
			CreatedBy:         userIDs[0],
			Public:            true,
			Source:            models.SourceUser,
			CreatedAt:         now.Add(-72 * time.Hour),
			UpdatedAt:         now.Add(-72 * time.Hour),
		},
		{
			Name:              "Midnight Chocolate Mug Cake",
			Ingredients:       []string{"flour", "cocoa powder", "sugar", "milk", "butter"},
			Instructions:      "Whisk dry ingredients in a mug, stir in milk and melted butter, microwave 90 seconds.",
			EstimatedCalories: intPtr(410),
			CreatedBy:         userIDs[0],
			Public:            false,
			Source:            models.SourceUser,
			CreatedAt:         now.Add(-36 * time.Hour),
			UpdatedAt:         now.Add(-36 * time.Hour),
		},
		{
			Name:         "Green Smoothie Bowl",
			Ingredients:  []string{"spinach", "banana", "greek yogurt", "honey", "granola"},
			Instructions: "Blend spinach, banana, and yogurt until smooth. Pour into a bowl, drizzle honey, top with granola.",
			CreatedBy:    userIDs[0],
			Public:       true,
			Source:       models.SourceUser,
			CreatedAt:    now.Add(-12 * time.Hour),
			UpdatedAt:    now.Add(-12 * time.Hour),
		},
	}

	// Recipes for Bob (userIDs[1])
	bobRecipes := []SeedRecipe{
		{
			Name:              "Chicken Lime Rice",
			Ingredients:       []string{"chicken", "rice", "lime", "cilantro", "cumin"},
			Instructions:      "Season the chicken with cumin, sear until golden. Cook rice, fold in lime juice and cilantro, serve chicken on top.",
			EstimatedCalories: intPtr(560),
			CreatedBy:         userIDs[1],
			Public:            true,
			Source:            models.SourceGenerated,
			CreatedAt:         now.Add(-48 * time.Hour),
			UpdatedAt:         now.Add(-48 * time.Hour),
		},
		{
			Name:              "Weekend Chili",
			Ingredients:       []string{"ground beef", "kidney beans", "tomatoes", "onion", "chili powder"},
			Instructions:      "Brown the beef with onion, add tomatoes, beans, and chili powder, simmer for an hour.",
			EstimatedCalories: intPtr(720),
			CreatedBy:         userIDs[1],
			Public:            false,
			Source:            models.SourceUser,
			CreatedAt:         now.Add(-6 * time.Hour),
			UpdatedAt:         now.Add(-6 * time.Hour),
		},
	}

	allRecipes := append(aliceRecipes, bobRecipes...)

	var recipesToInsert []interface{}
	for _, recipe := range allRecipes {
		recipesToInsert = append(recipesToInsert, recipe)
	}

	result, err := collection.InsertMany(ctx, recipesToInsert)
	if err != nil {
		log.Fatalf("Failed to seed recipes: %v", err)
	}

	log.Printf("Seeded %d recipes", len(result.InsertedIDs))
}

func intPtr(n int) *int {
	return &n
}
