package quoteRepo

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

// MongoQuoteRepo implements QuoteRepository using MongoDB.
type MongoQuoteRepo struct {
	coll *mongo.Collection
}

// NewMongoQuoteRepo creates a QuoteRepository backed by the
// "quote_requests" collection.
func NewMongoQuoteRepo() QuoteRepository {
	repo := &MongoQuoteRepo{coll: database.Collection("quote_requests")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("quote repo: failed to ensure indexes: %v\n", err)
	}
	return repo
}

func (r *MongoQuoteRepo) Create(quote *models.QuoteRequest) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, quote); err != nil {
		return fmt.Errorf("failed to create quote request: %w", err)
	}
	return nil
}

func (r *MongoQuoteRepo) GetByID(id string) (*models.QuoteRequest, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var quote models.QuoteRequest
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&quote); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch quote request with id %s: %w", id, err)
	}
	return &quote, nil
}

func (r *MongoQuoteRepo) ListByRequester(requesterID string) ([]models.QuoteRequest, error) {
	return r.list(bson.M{"requesterId": requesterID})
}

func (r *MongoQuoteRepo) ListForProviderOwner(ownerID string) ([]models.QuoteRequest, error) {
	return r.list(bson.M{"targets.providerOwnerId": ownerID})
}

func (r *MongoQuoteRepo) list(filter bson.M) ([]models.QuoteRequest, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list quote requests: %w", err)
	}
	defer cursor.Close(ctx)
	var quotes []models.QuoteRequest
	for cursor.Next(ctx) {
		var q models.QuoteRequest
		if err := cursor.Decode(&q); err != nil {
			return nil, fmt.Errorf("failed to decode quote request: %w", err)
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

// RespondTarget relies on a conditional pipeline update: the filter
// matches only while the target is still pending, and the same update
// flips the target and re-derives the aggregate status from the flipped
// targets. A lost race surfaces as ErrTargetNotPending rather than a
// double write, and concurrent responses to sibling targets can never
// leave a stale aggregate behind.
func (r *MongoQuoteRepo) RespondTarget(quoteID, targetID, status, message string, respondedAt time.Time) (*models.QuoteRequest, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	filter := bson.M{
		"id": quoteID,
		"targets": bson.M{"$elemMatch": bson.M{
			"id":     targetID,
			"status": models.TargetPending,
		}},
	}
	flipped := bson.M{"$map": bson.M{
		"input": "$targets",
		"as":    "t",
		"in": bson.M{"$cond": bson.A{
			bson.M{"$eq": bson.A{"$$t.id", targetID}},
			bson.M{"$mergeObjects": bson.A{"$$t", bson.M{
				"status":          status,
				"responseMessage": message,
				"respondedAt":     respondedAt,
			}}},
			"$$t",
		}},
	}}
	aggregate := bson.M{"$switch": bson.M{
		"branches": bson.A{
			bson.M{
				"case": bson.M{"$allElementsTrue": bson.M{"$map": bson.M{
					"input": "$targets",
					"as":    "t",
					"in":    bson.M{"$eq": bson.A{"$$t.status", models.TargetDeclined}},
				}}},
				"then": models.QuoteClosed,
			},
			bson.M{
				"case": bson.M{"$anyElementTrue": bson.M{"$map": bson.M{
					"input": "$targets",
					"as":    "t",
					"in":    bson.M{"$ne": bson.A{"$$t.status", models.TargetPending}},
				}}},
				"then": models.QuoteResponded,
			},
		},
		"default": models.QuotePending,
	}}
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{"targets": flipped}}},
		{{Key: "$set", Value: bson.M{"status": aggregate, "updatedAt": respondedAt}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.QuoteRequest
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTargetNotPending
		}
		return nil, fmt.Errorf("failed to respond to quote target %s: %w", targetID, err)
	}
	return &updated, nil
}

func (r *MongoQuoteRepo) SetReminderFlags(quoteID, targetID string, sent15, sent60 bool) error {
	if !sent15 && !sent60 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	set := bson.M{}
	if sent15 {
		set["targets.$.reminder15Sent"] = true
	}
	if sent60 {
		set["targets.$.reminder60Sent"] = true
	}
	filter := bson.M{
		"id":      quoteID,
		"targets": bson.M{"$elemMatch": bson.M{"id": targetID}},
	}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to set reminder flags on target %s: %w", targetID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoQuoteRepo) TargetsForProvider(providerID string) ([]models.QuoteTarget, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"targets.providerId": providerID}}},
		{{Key: "$unwind", Value: "$targets"}},
		{{Key: "$match", Value: bson.M{"targets.providerId": providerID}}},
		{{Key: "$sort", Value: bson.M{"targets.createdAt": -1}}},
		{{Key: "$replaceRoot", Value: bson.M{"newRoot": "$targets"}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate targets for provider %s: %w", providerID, err)
	}
	defer cursor.Close(ctx)
	var targets []models.QuoteTarget
	for cursor.Next(ctx) {
		var t models.QuoteTarget
		if err := cursor.Decode(&t); err != nil {
			return nil, fmt.Errorf("failed to decode quote target: %w", err)
		}
		targets = append(targets, t)
	}
	return targets, nil
}
