package bookingRepo

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

const maxAppendAttempts = 5

var errStaleDay = errors.New("booking day changed during append")

// dayLedger is the per-date version document. Every append bumps the
// version so two appends for the same date cannot both commit.
type dayLedger struct {
	Date    string `bson:"date"`
	Version int    `bson:"version"`
}

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	client   *mongo.Client
	bookings *mongo.Collection
	days     *mongo.Collection
	logger   *zap.Logger
}

// NewMongoBookingRepo creates a BookingRepository backed by db.
func NewMongoBookingRepo(client *mongo.Client, dbName string, logger *zap.Logger) *MongoBookingRepo {
	db := client.Database(dbName)
	repo := &MongoBookingRepo{
		client:   client,
		bookings: db.Collection("bookings"),
		days:     db.Collection("booking_days"),
		logger:   logger,
	}
	if err := repo.EnsureIndexes(); err != nil {
		logger.Warn("failed to ensure booking indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoBookingRepo) ListBookingsForDate(ctx context.Context, date string) ([]models.Booking, error) {
	return r.Find(ctx, models.BookingFilter{Date: date})
}

func (r *MongoBookingRepo) Find(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return r.find(ctx, buildFilter(filter))
}

func (r *MongoBookingRepo) find(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start", Value: 1}})
	cursor, err := r.bookings.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

func buildFilter(f models.BookingFilter) bson.M {
	filter := bson.M{}
	if f.Date != "" {
		filter["date"] = f.Date
	} else if f.FromDate != "" || f.ToDate != "" {
		dateRange := bson.M{}
		if f.FromDate != "" {
			dateRange["$gte"] = f.FromDate
		}
		if f.ToDate != "" {
			dateRange["$lte"] = f.ToDate
		}
		filter["date"] = dateRange
	}
	if f.MemberID != "" {
		filter["member_id"] = f.MemberID
	}
	return filter
}

// AppendBooking admits and inserts a booking inside a transaction that also
// bumps the date's ledger version. Losing writers see a stale version (or a
// duplicate ledger upsert) and start over with a fresh snapshot.
func (r *MongoBookingRepo) AppendBooking(ctx context.Context, date string, admit AdmitFunc) (*models.Booking, error) {
	for attempt := 1; attempt <= maxAppendAttempts; attempt++ {
		booking, err := r.tryAppend(ctx, date, admit)
		if errors.Is(err, errStaleDay) {
			r.logger.Debug("booking day changed, retrying append",
				zap.String("date", date), zap.Int("attempt", attempt))
			continue
		}
		return booking, err
	}
	return nil, fmt.Errorf("append booking for %s: %w", date, repository.ErrConflict)
}

func (r *MongoBookingRepo) tryAppend(ctx context.Context, date string, admit AdmitFunc) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	session, err := r.client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var ledger dayLedger
		err := r.days.FindOne(sc, bson.M{"date": date}).Decode(&ledger)
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("failed to read booking day: %w", err)
		}

		existing, err := r.find(sc, bson.M{"date": date})
		if err != nil {
			return nil, err
		}

		booking, err := admit(existing)
		if err != nil {
			return nil, err
		}
		if booking.Date != date {
			return nil, fmt.Errorf("admitted booking dated %s appended to %s", booking.Date, date)
		}

		res, err := r.days.UpdateOne(sc,
			bson.M{"date": date, "version": ledger.Version},
			bson.M{"$inc": bson.M{"version": 1}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, errStaleDay
			}
			return nil, fmt.Errorf("failed to bump booking day: %w", err)
		}
		if res.MatchedCount == 0 && res.UpsertedCount == 0 {
			return nil, errStaleDay
		}

		if _, err := r.bookings.InsertOne(sc, booking); err != nil {
			return nil, fmt.Errorf("failed to insert booking: %w", err)
		}
		return booking, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.Booking), nil
}

func (r *MongoBookingRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, nil)
}
