package statementRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clubhouse/database/repository"
	"clubhouse/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoStatementRepo implements StatementRepository using MongoDB.
type MongoStatementRepo struct {
	coll *mongo.Collection
}

func NewMongoStatementRepo(client *mongo.Client, dbName string, logger *zap.Logger) *MongoStatementRepo {
	repo := &MongoStatementRepo{coll: client.Database(dbName).Collection("statements")}
	if err := repo.ensureIndexes(); err != nil {
		logger.Warn("failed to ensure statement indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoStatementRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "year", Value: -1}, {Key: "month", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoStatementRepo) CreateIfAbsent(ctx context.Context, s *models.Statement) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": s.ID},
		bson.M{"$setOnInsert": s},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, fmt.Errorf("failed to upsert statement %s: %w", s.ID, err)
	}
	return res.UpsertedCount > 0, nil
}

func (r *MongoStatementRepo) GetByID(ctx context.Context, id string) (*models.Statement, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var s models.Statement
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch statement %s: %w", id, err)
	}
	return &s, nil
}

func (r *MongoStatementRepo) List(ctx context.Context, f models.StatementFilter) ([]models.Statement, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if f.Year != 0 {
		filter["year"] = f.Year
	}
	if f.Month != 0 {
		filter["month"] = f.Month
	}
	if f.MemberID != "" {
		filter["member_id"] = f.MemberID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}

	opts := options.Find().SetSort(bson.D{{Key: "year", Value: -1}, {Key: "month", Value: -1}, {Key: "member_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list statements: %w", err)
	}
	defer cursor.Close(ctx)

	statements := []models.Statement{}
	if err := cursor.All(ctx, &statements); err != nil {
		return nil, fmt.Errorf("failed to decode statements: %w", err)
	}
	return statements, nil
}

func (r *MongoStatementRepo) MarkPaid(ctx context.Context, id string, paidAt time.Time) (*models.Statement, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var s models.Statement
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"id": id, "status": models.StatementPending},
		bson.M{"$set": bson.M{"status": models.StatementPaid, "paid_at": paidAt}},
		opts,
	).Decode(&s)
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to mark statement %s paid: %w", id, err)
	}
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, fmt.Errorf("statement %s is not pending: %w", id, repository.ErrConflict)
}
