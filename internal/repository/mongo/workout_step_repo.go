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

const workoutStepCollectionName = "workout_steps"

// mongoWorkoutStepRepository implements repository.WorkoutStepRepository
type mongoWorkoutStepRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutStepRepository creates a new WorkoutStep repository.
func NewMongoWorkoutStepRepository(db *mongo.Database) repository.WorkoutStepRepository {
	return &mongoWorkoutStepRepository{
		collection: db.Collection(workoutStepCollectionName),
	}
}

// Create inserts a new workout step.
func (r *mongoWorkoutStepRepository) Create(ctx context.Context, step *domain.WorkoutStep) (primitive.ObjectID, error) {
	if step.WorkoutID == primitive.NilObjectID || step.Name == "" {
		return primitive.NilObjectID, errors.New("step requires workoutId and name")
	}
	if !step.Type.Valid() {
		return primitive.NilObjectID, &domain.ValidationError{Field: "type", Message: "unknown step type"}
	}
	step.ID = primitive.NewObjectID()

	result, err := r.collection.InsertOne(ctx, step)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted step ID")
	}
	return insertedID, nil
}

// GetByWorkoutID retrieves the flat adjacency list of a workout's steps,
// sorted by order. Nested steps are included; callers rebuild the tree
// with domain.BuildStepTree.
func (r *mongoWorkoutStepRepository) GetByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) ([]domain.WorkoutStep, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"workoutId": workoutID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var steps []domain.WorkoutStep
	if err = cursor.All(ctx, &steps); err != nil {
		return nil, err
	}
	return steps, nil
}

// DeleteByWorkoutID removes all steps of a workout, nested ones included.
func (r *mongoWorkoutStepRepository) DeleteByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"workoutId": workoutID})
	return err
}

// EnsureWorkoutStepIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutStepIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "workoutId", Value: 1}, {Key: "order", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "parentStepId", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
