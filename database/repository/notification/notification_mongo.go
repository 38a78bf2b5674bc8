package notificationRepo

import (
	"context"
	"fmt"
	"time"

	"barkwise/database"
	"barkwise/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoNotificationRepo implements NotificationRepository using MongoDB.
type MongoNotificationRepo struct {
	coll   *mongo.Collection
	tokens *mongo.Collection
}

// NewMongoNotificationRepo creates a NotificationRepository backed by the
// "notifications" and "device_tokens" collections.
func NewMongoNotificationRepo() NotificationRepository {
	repo := &MongoNotificationRepo{
		coll:   database.Collection("notifications"),
		tokens: database.Collection("device_tokens"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("notification repo: failed to ensure indexes: %v\n", err)
	}
	return repo
}

func (r *MongoNotificationRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	userIdx := mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "createdAt", Value: -1},
		},
	}
	if _, err := r.coll.Indexes().CreateOne(ctx, userIdx); err != nil {
		return fmt.Errorf("failed to create notification index: %w", err)
	}
	tokenIdx := mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "token", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	}
	if _, err := r.tokens.Indexes().CreateOne(ctx, tokenIdx); err != nil {
		return fmt.Errorf("failed to create device token index: %w", err)
	}
	return nil
}

func (r *MongoNotificationRepo) Create(notification *models.Notification) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, notification); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (r *MongoNotificationRepo) ListByUser(userID string, limit int64) ([]models.Notification, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)
	var notifications []models.Notification
	for cursor.Next(ctx) {
		var n models.Notification
		if err := cursor.Decode(&n); err != nil {
			return nil, fmt.Errorf("failed to decode notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}

func (r *MongoNotificationRepo) MarkRead(userID, notificationID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	filter := bson.M{"id": notificationID, "userId": userID}
	update := bson.M{"$set": bson.M{"read": true}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to mark notification %s read: %w", notificationID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoNotificationRepo) SaveDeviceToken(token *models.DeviceToken) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	filter := bson.M{"userId": token.UserID, "token": token.Token}
	update := bson.M{"$set": token}
	opts := options.Update().SetUpsert(true)
	if _, err := r.tokens.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save device token: %w", err)
	}
	return nil
}

func (r *MongoNotificationRepo) TokensForUser(userID string) ([]models.DeviceToken, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	cursor, err := r.tokens.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list device tokens for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)
	var tokens []models.DeviceToken
	for cursor.Next(ctx) {
		var t models.DeviceToken
		if err := cursor.Decode(&t); err != nil {
			return nil, fmt.Errorf("failed to decode device token: %w", err)
		}
		tokens = append(tokens, t)
	}
	return tokens, nil
}
