package providerRepo

import (
	"context"
	"fmt"
	"time"

	"barkwise/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoProviderRepo) CreateBlackout(blackout *models.ProviderBlackout) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := r.blackouts.InsertOne(ctx, blackout); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrBlackoutExists
		}
		return fmt.Errorf("failed to create blackout for provider %s: %w", blackout.ProviderID, err)
	}
	return nil
}

func (r *MongoProviderRepo) ListBlackouts(providerID, date string) ([]models.ProviderBlackout, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	filter := bson.M{"providerId": providerID}
	if date != "" {
		filter["date"] = date
	}
	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: 1},
		{Key: "slot", Value: 1},
	})
	cursor, err := r.blackouts.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list blackouts for provider %s: %w", providerID, err)
	}
	defer cursor.Close(ctx)
	var blackouts []models.ProviderBlackout
	for cursor.Next(ctx) {
		var b models.ProviderBlackout
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("failed to decode blackout: %w", err)
		}
		blackouts = append(blackouts, b)
	}
	return blackouts, nil
}
