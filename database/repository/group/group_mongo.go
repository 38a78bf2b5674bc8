package groupRepo

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

// MongoGroupRepo implements GroupRepository using MongoDB.
type MongoGroupRepo struct {
	groups        *mongo.Collection
	memberships   *mongo.Collection
	contributions *mongo.Collection
	points        *mongo.Collection
	invites       *mongo.Collection
}

// NewMongoGroupRepo creates a GroupRepository backed by the group
// collections.
func NewMongoGroupRepo() GroupRepository {
	repo := &MongoGroupRepo{
		groups:        database.Collection("groups"),
		memberships:   database.Collection("group_memberships"),
		contributions: database.Collection("challenge_contributions"),
		points:        database.Collection("reward_points"),
		invites:       database.Collection("group_invites"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("group repo: failed to ensure indexes: %v\n", err)
	}
	return repo
}

func (r *MongoGroupRepo) CreateGroup(group *models.Group) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := r.groups.InsertOne(ctx, group); err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}
	return nil
}

func (r *MongoGroupRepo) GetByID(id string) (*models.Group, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var group models.Group
	if err := r.groups.FindOne(ctx, bson.M{"id": id}).Decode(&group); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch group with id %s: %w", id, err)
	}
	return &group, nil
}

func (r *MongoGroupRepo) FindByNameSuburb(name, suburb string) (*models.Group, error) {
	filter := bson.M{
		"name":   caseInsensitiveExact(name),
		"suburb": caseInsensitiveExact(suburb),
	}
	return r.findOne(filter)
}

func (r *MongoGroupRepo) FindOfficialBySuburb(suburb string) (*models.Group, error) {
	filter := bson.M{
		"official": true,
		"suburb":   caseInsensitiveExact(suburb),
	}
	return r.findOne(filter)
}

func (r *MongoGroupRepo) findOne(filter bson.M) (*models.Group, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var group models.Group
	if err := r.groups.FindOne(ctx, filter).Decode(&group); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find group: %w", err)
	}
	return &group, nil
}

func (r *MongoGroupRepo) ListGroups(suburb string) ([]models.Group, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	filter := bson.M{}
	if suburb != "" {
		filter["suburb"] = caseInsensitiveExact(suburb)
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.groups.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer cursor.Close(ctx)
	var groups []models.Group
	for cursor.Next(ctx) {
		var g models.Group
		if err := cursor.Decode(&g); err != nil {
			return nil, fmt.Errorf("failed to decode group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, nil
}

func (r *MongoGroupRepo) IncrementMemberCount(id string, delta int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	update := bson.M{"$inc": bson.M{"memberCount": delta}}
	res, err := r.groups.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to bump member count for group %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoGroupRepo) AddBadge(id, badge string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	update := bson.M{"$addToSet": bson.M{"badges": badge}}
	res, err := r.groups.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to add badge to group %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func caseInsensitiveExact(value string) bson.M {
	return bson.M{
		"$regex":   "^" + regexp.QuoteMeta(value) + "$",
		"$options": "i",
	}
}
