package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	idIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	// Slot occupancy checks hit (providerId, date, slot).
	slotIdx := mongo.IndexModel{
		Keys: bson.D{
			{Key: "providerId", Value: 1},
			{Key: "date", Value: 1},
			{Key: "slot", Value: 1},
		},
	}
	ownerIdx := mongo.IndexModel{
		Keys: bson.D{
			{Key: "ownerId", Value: 1},
			{Key: "createdAt", Value: -1},
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{idIdx, slotIdx, ownerIdx}); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
