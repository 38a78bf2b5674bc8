package groupRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"barkwise/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoGroupRepo) AddContribution(challengeID, groupID, challengeType, userID string, count int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	filter := bson.M{"challengeId": challengeID, "userId": userID}
	update := bson.M{
		"$inc": bson.M{"count": count},
		"$setOnInsert": bson.M{
			"groupId": groupID,
			"type":    challengeType,
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.contributions.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to add contribution for %s: %w", challengeID, err)
	}
	return nil
}

func (r *MongoGroupRepo) ChallengeTotal(challengeID string) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"challengeId": challengeID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$count"},
		}}},
	}
	cursor, err := r.contributions.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to sum contributions for %s: %w", challengeID, err)
	}
	defer cursor.Close(ctx)
	if cursor.Next(ctx) {
		var row struct {
			Total int `bson:"total"`
		}
		if err := cursor.Decode(&row); err != nil {
			return 0, fmt.Errorf("failed to decode contribution total: %w", err)
		}
		return row.Total, nil
	}
	return 0, nil
}

func (r *MongoGroupRepo) UserContribution(challengeID, userID string) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var row struct {
		Count int `bson:"count"`
	}
	filter := bson.M{"challengeId": challengeID, "userId": userID}
	if err := r.contributions.FindOne(ctx, filter).Decode(&row); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to fetch contribution: %w", err)
	}
	return row.Count, nil
}

func (r *MongoGroupRepo) AddRewardPoints(groupID, userID string, growth, cleanup int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	filter := bson.M{"groupId": groupID, "userId": userID}
	update := bson.M{"$inc": bson.M{"growth": growth, "cleanup": cleanup}}
	opts := options.Update().SetUpsert(true)
	if _, err := r.points.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to add reward points for %s/%s: %w", groupID, userID, err)
	}
	return nil
}

func (r *MongoGroupRepo) RewardPointsFor(groupID, userID string) (models.RewardPoints, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	points := models.RewardPoints{GroupID: groupID, UserID: userID}
	filter := bson.M{"groupId": groupID, "userId": userID}
	if err := r.points.FindOne(ctx, filter).Decode(&points); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.RewardPoints{GroupID: groupID, UserID: userID}, nil
		}
		return points, fmt.Errorf("failed to fetch reward points: %w", err)
	}
	return points, nil
}

func (r *MongoGroupRepo) SumRewardPoints(groupID string) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"groupId": groupID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": bson.M{"$add": []string{"$growth", "$cleanup"}}},
		}}},
	}
	cursor, err := r.points.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to sum reward points for group %s: %w", groupID, err)
	}
	defer cursor.Close(ctx)
	if cursor.Next(ctx) {
		var row struct {
			Total int `bson:"total"`
		}
		if err := cursor.Decode(&row); err != nil {
			return 0, fmt.Errorf("failed to decode reward point total: %w", err)
		}
		return row.Total, nil
	}
	return 0, nil
}

func (r *MongoGroupRepo) CreateInvite(invite *models.GroupInvite) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := r.invites.InsertOne(ctx, invite); err != nil {
		return fmt.Errorf("failed to create invite: %w", err)
	}
	return nil
}

func (r *MongoGroupRepo) GetInvite(token string) (*models.GroupInvite, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var invite models.GroupInvite
	if err := r.invites.FindOne(ctx, bson.M{"token": token}).Decode(&invite); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("failed to fetch invite: %w", err)
	}
	return &invite, nil
}
