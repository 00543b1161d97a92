package main

import (
	"context"
	"log"
	"time"

	"recipehub/internal/config"
	"recipehub/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	log.Println("Starting migration...")

	cfg := config.Load()

	mongoDB := database.NewMongoDB(cfg.MongoURI, cfg.MongoDatabase)
	defer mongoDB.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	createIndexes(ctx, mongoDB.Database)

	log.Println("Migration completed successfully!")
}

func createIndexes(ctx context.Context, db *mongo.Database) {
	// Users indexes
	createIndex(ctx, db, "users", bson.D{{Key: "email", Value: 1}}, &options.IndexOptions{
		Unique: ptrBool(true),
	})
	createIndex(ctx, db, "users", bson.D{{Key: "username", Value: 1}}, &options.IndexOptions{
		Unique: ptrBool(true),
	})

	// Recipes indexes
	createIndex(ctx, db, "recipes", bson.D{{Key: "createdBy", Value: 1}}, nil)
	createIndex(ctx, db, "recipes", bson.D{{Key: "public", Value: 1}}, nil)
	// Listing order: newest first, _id as a stable tiebreak
	createIndex(ctx, db, "recipes", bson.D{
		{Key: "createdAt", Value: -1},
		{Key: "_id", Value: 1},
	}, nil)
	// Weighted text search: names match stronger than ingredients
	createIndex(ctx, db, "recipes", bson.D{
		{Key: "name", Value: "text"},
		{Key: "ingredients", Value: "text"},
	}, &options.IndexOptions{
		Weights: bson.D{
			{Key: "name", Value: 10},
			{Key: "ingredients", Value: 5},
		},
	})
}

func createIndex(ctx context.Context, db *mongo.Database, collection string, keys bson.D, opts *options.IndexOptions) {
	indexModel := mongo.IndexModel{
		Keys:    keys,
		Options: opts,
	}

	name, err := db.Collection(collection).Indexes().CreateOne(ctx, indexModel)
	if err != nil {
		log.Printf("Warning: Failed to create index on %s: %v", collection, err)
		return
	}

	log.Printf("Created index %s on %s", name, collection)
}

func ptrBool(b bool) *bool {
	return &b
}
