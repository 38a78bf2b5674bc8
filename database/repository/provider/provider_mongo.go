package providerRepo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"barkwise/database"
	"barkwise/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProviderRepo implements ProviderRepository using MongoDB.
type MongoProviderRepo struct {
	coll      *mongo.Collection
	blackouts *mongo.Collection
}

// NewMongoProviderRepo creates a ProviderRepository backed by the
// "providers" and "provider_blackouts" collections.
func NewMongoProviderRepo() ProviderRepository {
	repo := &MongoProviderRepo{
		coll:      database.Collection("providers"),
		blackouts: database.Collection("provider_blackouts"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("provider repo: failed to ensure indexes: %v\n", err)
	}
	return repo
}

func (r *MongoProviderRepo) Create(provider *models.Provider) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, provider); err != nil {
		return fmt.Errorf("failed to create provider: %w", err)
	}
	return nil
}

func (r *MongoProviderRepo) GetByID(id string) (*models.Provider, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var provider models.Provider
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&provider); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch provider with id %s: %w", id, err)
	}
	return &provider, nil
}

func (r *MongoProviderRepo) Update(provider *models.Provider) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": provider.ID}, provider)
	if err != nil {
		return fmt.Errorf("failed to update provider %s: %w", provider.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoProviderRepo) List(filter ListFilter) ([]models.Provider, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	query := bson.M{}
	if filter.IncludeOwnerID != "" {
		query["$or"] = []bson.M{
			{"status": models.ProviderActive},
			{"ownerId": filter.IncludeOwnerID},
		}
	} else {
		query["status"] = models.ProviderActive
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Suburb != "" {
		query["suburb"] = bson.M{
			"$regex":   "^" + regexp.QuoteMeta(filter.Suburb) + "$",
			"$options": "i",
		}
	}
	if filter.MinRating > 0 {
		query["rating"] = bson.M{"$gte": filter.MinRating}
	}
	if filter.ExcludeOwnerID != "" {
		query["ownerId"] = bson.M{"$ne": filter.ExcludeOwnerID}
	}
	if filter.Query != "" {
		pattern := bson.M{"$regex": regexp.QuoteMeta(filter.Query), "$options": "i"}
		query["$and"] = []bson.M{{"$or": []bson.M{
			{"name": pattern},
			{"description": pattern},
			{"category": pattern},
			{"suburb": pattern},
		}}}
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "rating", Value: -1},
		{Key: "reviewCount", Value: -1},
	})
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}
	defer cursor.Close(ctx)
	var providers []models.Provider
	for cursor.Next(ctx) {
		var p models.Provider
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode provider: %w", err)
		}
		providers = append(providers, p)
	}
	return providers, nil
}

func (r *MongoProviderRepo) SetStatus(id, status string, at time.Time) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": at}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set status for provider %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoProviderRepo) SetReputation(id string, responseMinutes, responseRate, responseStreak int, tier string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	update := bson.M{"$set": bson.M{
		"responseMinutes": responseMinutes,
		"responseRate":    responseRate,
		"responseStreak":  responseStreak,
		"tier":            tier,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set reputation for provider %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoProviderRepo) SetVetVerification(id, vetUserID string, until time.Time) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	update := bson.M{"$set": bson.M{
		"vetChecked":      true,
		"vetCheckedBy":    vetUserID,
		"vetCheckedUntil": until,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set vet verification for provider %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoProviderRepo) AddReview(id string, review models.Review, rating float64, reviewCount int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	update := bson.M{
		"$push": bson.M{"reviews": review},
		"$set":  bson.M{"rating": rating, "reviewCount": reviewCount},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to add review to provider %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
