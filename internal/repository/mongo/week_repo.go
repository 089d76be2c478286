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

const weekCollectionName = "weeks"

// mongoWeekRepository implements repository.WeekRepository
type mongoWeekRepository struct {
	collection *mongo.Collection
}

// NewMongoWeekRepository creates a new Week repository.
func NewMongoWeekRepository(db *mongo.Database) repository.WeekRepository {
	return &mongoWeekRepository{
		collection: db.Collection(weekCollectionName),
	}
}

// Create inserts a new week. Exactly one of templateId/planId must be set.
func (r *mongoWeekRepository) Create(ctx context.Context, week *domain.Week) (primitive.ObjectID, error) {
	if !week.HasOneOwner() {
		return primitive.NilObjectID, &domain.ValidationError{
			Field:   "templateId/planId",
			Message: "week must belong to exactly one of a template or a plan",
		}
	}
	week.ID = primitive.NewObjectID()

	result, err := r.collection.InsertOne(ctx, week)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted week ID")
	}
	return insertedID, nil
}

// GetByTemplateID retrieves all weeks of a template, sorted by order.
func (r *mongoWeekRepository) GetByTemplateID(ctx context.Context, templateID primitive.ObjectID) ([]domain.Week, error) {
	return r.find(ctx, bson.M{"templateId": templateID})
}

// GetByPlanID retrieves all weeks of a plan, sorted by order.
func (r *mongoWeekRepository) GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.Week, error) {
	return r.find(ctx, bson.M{"planId": planID})
}

func (r *mongoWeekRepository) find(ctx context.Context, filter bson.M) ([]domain.Week, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var weeks []domain.Week
	if err = cursor.All(ctx, &weeks); err != nil {
		return nil, err
	}
	return weeks, nil
}

// DeleteByTemplateID removes all weeks of a template.
func (r *mongoWeekRepository) DeleteByTemplateID(ctx context.Context, templateID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"templateId": templateID})
	return err
}

// EnsureWeekIndexes creates necessary indexes. Call during startup.
func EnsureWeekIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "templateId", Value: 1}, {Key: "order", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "planId", Value: 1}, {Key: "order", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
