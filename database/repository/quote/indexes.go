package quoteRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoQuoteRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	idIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	requesterIdx := mongo.IndexModel{
		Keys: bson.D{
			{Key: "requesterId", Value: 1},
			{Key: "createdAt", Value: -1},
		},
	}
	targetOwnerIdx := mongo.IndexModel{
		Keys: bson.D{{Key: "targets.providerOwnerId", Value: 1}},
	}
	targetProviderIdx := mongo.IndexModel{
		Keys: bson.D{{Key: "targets.providerId", Value: 1}},
	}
	models := []mongo.IndexModel{idIdx, requesterIdx, targetOwnerIdx, targetProviderIdx}
	if _, err := r.coll.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("failed to create quote indexes: %w", err)
	}
	return nil
}
