package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"barkwise/database"
	"barkwise/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a BookingRepository backed by the
// "bookings" collection.
func NewMongoBookingRepo() BookingRepository {
	repo := &MongoBookingRepo{coll: database.Collection("bookings")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("booking repo: failed to ensure indexes: %v\n", err)
	}
	return repo
}

func (r *MongoBookingRepo) Create(booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) GetByID(id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &booking, nil
}

func (r *MongoBookingRepo) UpdateStatus(id, status, note string, at time.Time) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	update := bson.M{"$set": bson.M{"status": status, "note": note, "updatedAt": at}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update booking %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoBookingRepo) ListByOwner(ownerID string) ([]models.Booking, error) {
	return r.list(bson.M{"ownerId": ownerID})
}

func (r *MongoBookingRepo) ListByProvider(providerID, date string) ([]models.Booking, error) {
	filter := bson.M{"providerId": providerID}
	if date != "" {
		filter["date"] = date
	}
	return r.list(filter)
}

func (r *MongoBookingRepo) list(filter bson.M) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)
	var bookings []models.Booking
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

func (r *MongoBookingRepo) DistinctOwnersSince(providerIDs []string, fromDate string) (map[string]int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"providerId": bson.M{"$in": providerIDs},
			"date":       bson.M{"$gte": fromDate},
			"status":     bson.M{"$nin": cancelledStatuses()},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":    "$providerId",
			"owners": bson.M{"$addToSet": "$ownerId"},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate booking owners: %w", err)
	}
	defer cursor.Close(ctx)
	counts := make(map[string]int)
	for cursor.Next(ctx) {
		var row struct {
			ProviderID string   `bson:"_id"`
			Owners     []string `bson:"owners"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode booking owner row: %w", err)
		}
		counts[row.ProviderID] = len(row.Owners)
	}
	return counts, nil
}

func (r *MongoBookingRepo) ActiveOwnerIDs(providerIDs []string) (map[string][]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"providerId": bson.M{"$in": providerIDs},
			"status":     bson.M{"$nin": cancelledStatuses()},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":    "$providerId",
			"owners": bson.M{"$addToSet": "$ownerId"},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate active booking owners: %w", err)
	}
	defer cursor.Close(ctx)
	owners := make(map[string][]string)
	for cursor.Next(ctx) {
		var row struct {
			ProviderID string   `bson:"_id"`
			Owners     []string `bson:"owners"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode active owner row: %w", err)
		}
		owners[row.ProviderID] = row.Owners
	}
	return owners, nil
}

func cancelledStatuses() []string {
	return []string{models.BookingCancelledByOwner, models.BookingCancelledByProvider}
}
