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

func (r *MongoGroupRepo) UpsertMembership(membership *models.GroupMembership) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	filter := bson.M{"groupId": membership.GroupID, "userId": membership.UserID}
	update := bson.M{"$set": membership}
	opts := options.Update().SetUpsert(true)
	if _, err := r.memberships.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert membership: %w", err)
	}
	return nil
}

func (r *MongoGroupRepo) GetMembership(groupID, userID string) (*models.GroupMembership, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var m models.GroupMembership
	filter := bson.M{"groupId": groupID, "userId": userID}
	if err := r.memberships.FindOne(ctx, filter).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch membership: %w", err)
	}
	return &m, nil
}

func (r *MongoGroupRepo) DeleteMembership(groupID, userID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	filter := bson.M{"groupId": groupID, "userId": userID}
	if _, err := r.memberships.DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("failed to delete membership: %w", err)
	}
	return nil
}

func (r *MongoGroupRepo) ListMemberships(groupID, status string) ([]models.GroupMembership, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	filter := bson.M{"groupId": groupID}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.memberships.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships for group %s: %w", groupID, err)
	}
	defer cursor.Close(ctx)
	var memberships []models.GroupMembership
	for cursor.Next(ctx) {
		var m models.GroupMembership
		if err := cursor.Decode(&m); err != nil {
			return nil, fmt.Errorf("failed to decode membership: %w", err)
		}
		memberships = append(memberships, m)
	}
	return memberships, nil
}

func (r *MongoGroupRepo) CountMemberships(groupID, status string) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	filter := bson.M{"groupId": groupID}
	if status != "" {
		filter["status"] = status
	}
	count, err := r.memberships.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count memberships for group %s: %w", groupID, err)
	}
	return int(count), nil
}

func (r *MongoGroupRepo) MemberGroupIDs(userIDs []string) (map[string][]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	filter := bson.M{
		"userId": bson.M{"$in": userIDs},
		"status": models.MembershipMember,
	}
	cursor, err := r.memberships.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list member groups: %w", err)
	}
	defer cursor.Close(ctx)
	out := make(map[string][]string)
	for cursor.Next(ctx) {
		var m models.GroupMembership
		if err := cursor.Decode(&m); err != nil {
			return nil, fmt.Errorf("failed to decode membership: %w", err)
		}
		out[m.UserID] = append(out[m.UserID], m.GroupID)
	}
	return out, nil
}
