package groupRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoGroupRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	groupIdx := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "suburb", Value: 1}, {Key: "official", Value: 1}}},
	}
	if _, err := r.groups.Indexes().CreateMany(ctx, groupIdx); err != nil {
		return fmt.Errorf("failed to create group indexes: %w", err)
	}

	membershipIdx := mongo.IndexModel{
		Keys: bson.D{
			{Key: "groupId", Value: 1},
			{Key: "userId", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	}
	if _, err := r.memberships.Indexes().CreateOne(ctx, membershipIdx); err != nil {
		return fmt.Errorf("failed to create membership index: %w", err)
	}

	contributionIdx := mongo.IndexModel{
		Keys: bson.D{
			{Key: "challengeId", Value: 1},
			{Key: "userId", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	}
	if _, err := r.contributions.Indexes().CreateOne(ctx, contributionIdx); err != nil {
		return fmt.Errorf("failed to create contribution index: %w", err)
	}

	pointsIdx := mongo.IndexModel{
		Keys: bson.D{
			{Key: "groupId", Value: 1},
			{Key: "userId", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	}
	if _, err := r.points.Indexes().CreateOne(ctx, pointsIdx); err != nil {
		return fmt.Errorf("failed to create reward point index: %w", err)
	}

	inviteIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "token", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := r.invites.Indexes().CreateOne(ctx, inviteIdx); err != nil {
		return fmt.Errorf("failed to create invite index: %w", err)
	}
	return nil
}
