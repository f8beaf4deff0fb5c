package config

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yoockh/folio/internal/models"
)

func EnsureMongoIndexes(cfg *Config) error {
	if MongoClient == nil {
		return errors.New("MongoClient is nil; call InitMongo() first")
	}
	db := MongoDatabase(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// about + profile: the active lookup runs on every page view
	for _, name := range []string{models.CollectionAbout, models.CollectionProfile} {
		_, err := db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "active", Value: 1}},
			Options: options.Index().SetName("by_active"),
		})
		if err != nil {
			return err
		}
	}

	_, err := db.Collection(models.CollectionProject).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("by_created"),
		},
		{
			Keys:    bson.D{{Key: "technologies", Value: 1}},
			Options: options.Index().SetName("by_technology"),
		},
	})
	return err
}
