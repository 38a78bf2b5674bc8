package providerRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates indexes for frequently used fields in queries.
func (r *MongoProviderRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	idIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	// Quote pool and directory queries filter by category + status and
	// sort by rating.
	poolIdx := mongo.IndexModel{
		Keys: bson.D{
			{Key: "category", Value: 1},
			{Key: "status", Value: 1},
			{Key: "rating", Value: -1},
			{Key: "reviewCount", Value: -1},
		},
	}
	suburbIdx := mongo.IndexModel{
		Keys: bson.D{{Key: "suburb", Value: 1}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{idIdx, poolIdx, suburbIdx}); err != nil {
		return fmt.Errorf("failed to create provider indexes: %w", err)
	}

	// One blackout per (provider, date, slot); duplicates surface as a
	// conflict to the caller.
	blackoutIdx := mongo.IndexModel{
		Keys: bson.D{
			{Key: "providerId", Value: 1},
			{Key: "date", Value: 1},
			{Key: "slot", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	}
	if _, err := r.blackouts.Indexes().CreateOne(ctx, blackoutIdx); err != nil {
		return fmt.Errorf("failed to create blackout index: %w", err)
	}
	return nil
}
