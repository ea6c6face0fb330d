package memberRepo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"clubhouse/database/repository"
	"clubhouse/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoMemberRepo implements MemberRepository using MongoDB.
type MongoMemberRepo struct {
	coll *mongo.Collection
}

// NewMongoMemberRepo creates a MemberRepository backed by the "members" collection.
func NewMongoMemberRepo(client *mongo.Client, dbName string, logger *zap.Logger) *MongoMemberRepo {
	repo := &MongoMemberRepo{coll: client.Database(dbName).Collection("members")}
	if err := repo.ensureIndexes(); err != nil {
		logger.Warn("failed to ensure member indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoMemberRepo) Create(ctx context.Context, member *models.Member) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, member); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("member %s: %w", member.Email, repository.ErrDuplicate)
		}
		return fmt.Errorf("failed to create member: %w", err)
	}
	return nil
}

func (r *MongoMemberRepo) GetByID(ctx context.Context, id string) (*models.Member, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *MongoMemberRepo) GetByEmail(ctx context.Context, email string) (*models.Member, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoMemberRepo) findOne(ctx context.Context, filter bson.M) (*models.Member, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var member models.Member
	if err := r.coll.FindOne(ctx, filter).Decode(&member); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch member: %w", err)
	}
	return &member, nil
}

func (r *MongoMemberRepo) Search(ctx context.Context, term string) ([]models.Member, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if term != "" {
		pattern := regexp.QuoteMeta(term)
		filter["$or"] = bson.A{
			bson.M{"name": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"email": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"phone": bson.M{"$regex": pattern}},
		}
	}

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to search members: %w", err)
	}
	defer cursor.Close(ctx)

	members := []models.Member{}
	if err := cursor.All(ctx, &members); err != nil {
		return nil, fmt.Errorf("failed to decode members: %w", err)
	}
	return members, nil
}

func (r *MongoMemberRepo) IncrementBalance(ctx context.Context, id string, delta float64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$inc": bson.M{"balance": delta}})
	if err != nil {
		return fmt.Errorf("failed to update balance of member %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("member %s: %w", id, repository.ErrNotFound)
	}
	return nil
}
