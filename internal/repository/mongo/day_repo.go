package mongo

import (
	"alcyxob/coach-app/internal/domain"
	"alcyxob/coach-app/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const dayCollectionName = "days"

// mongoDayRepository implements repository.DayRepository
type mongoDayRepository struct {
	collection *mongo.Collection
}

// NewMongoDayRepository creates a new Day repository.
func NewMongoDayRepository(db *mongo.Database) repository.DayRepository {
	return &mongoDayRepository{
		collection: db.Collection(dayCollectionName),
	}
}

// Create inserts a new day.
func (r *mongoDayRepository) Create(ctx context.Context, day *domain.Day) (primitive.ObjectID, error) {
	if day.WeekID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("day requires weekId")
	}
	day.ID = primitive.NewObjectID()

	result, err := r.collection.InsertOne(ctx, day)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted day ID")
	}
	return insertedID, nil
}

// GetByWeekID retrieves all days of a week, sorted by order.
func (r *mongoDayRepository) GetByWeekID(ctx context.Context, weekID primitive.ObjectID) ([]domain.Day, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"weekId": weekID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var days []domain.Day
	if err = cursor.All(ctx, &days); err != nil {
		return nil, err
	}
	return days, nil
}

// DeleteByWeekID removes all days of a week.
func (r *mongoDayRepository) DeleteByWeekID(ctx context.Context, weekID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"weekId": weekID})
	return err
}

// EnsureDayIndexes creates necessary indexes. Call during startup.
func EnsureDayIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "weekId", Value: 1}, {Key: "order", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
