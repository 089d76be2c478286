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

const coachCollectionName = "coaches"

// mongoCoachRepository implements repository.CoachRepository
type mongoCoachRepository struct {
	collection *mongo.Collection
}

// NewMongoCoachRepository creates a new Coach repository.
func NewMongoCoachRepository(db *mongo.Database) repository.CoachRepository {
	return &mongoCoachRepository{
		collection: db.Collection(coachCollectionName),
	}
}

// Create inserts a new coach profile.
func (r *mongoCoachRepository) Create(ctx context.Context, coach *domain.Coach) (primitive.ObjectID, error) {
	if coach.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("coach profile requires userId")
	}
	coach.ID = primitive.NewObjectID()

	result, err := r.collection.InsertOne(ctx, coach)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted coach ID")
	}
	return insertedID, nil
}

// GetByID retrieves a coach profile by its ID.
func (r *mongoCoachRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Coach, error) {
	var coach domain.Coach
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&coach)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &coach, nil
}

// GetByUserID retrieves the coach profile belonging to a user, if any.
func (r *mongoCoachRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Coach, error) {
	var coach domain.Coach
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&coach)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &coach, nil
}

// List retrieves all coach profiles.
func (r *mongoCoachRepository) List(ctx context.Context) ([]domain.Coach, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var coaches []domain.Coach
	if err = cursor.All(ctx, &coaches); err != nil {
		return nil, err
	}
	return coaches, nil
}

// Update replaces the mutable fields of a coach profile.
func (r *mongoCoachRepository) Update(ctx context.Context, coach *domain.Coach) error {
	if coach.ID == primitive.NilObjectID {
		return errors.New("coach ID is required for update")
	}
	update := bson.M{"$set": bson.M{
		"description": coach.Description,
		"settings":    coach.Settings,
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": coach.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureCoachIndexes creates necessary indexes. Call during startup.
func EnsureCoachIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
