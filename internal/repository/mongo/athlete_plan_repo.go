package mongo

import (
	"alcyxob/coach-app/internal/domain"
	"alcyxob/coach-app/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const athletePlanCollectionName = "athlete_plans"

// mongoAthletePlanRepository implements repository.AthletePlanRepository
type mongoAthletePlanRepository struct {
	collection *mongo.Collection
}

// NewMongoAthletePlanRepository creates a new AthletePlan repository.
func NewMongoAthletePlanRepository(db *mongo.Database) repository.AthletePlanRepository {
	return &mongoAthletePlanRepository{
		collection: db.Collection(athletePlanCollectionName),
	}
}

// Create inserts a new athlete-to-plan link. The link is append-only; there
// is intentionally no Update.
func (r *mongoAthletePlanRepository) Create(ctx context.Context, athletePlan *domain.AthletePlan) (primitive.ObjectID, error) {
	if athletePlan.AthleteID == primitive.NilObjectID || athletePlan.PlanID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("athlete plan requires athleteId and planId")
	}
	athletePlan.ID = primitive.NewObjectID()
	if athletePlan.StartedAt.IsZero() {
		athletePlan.StartedAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, athletePlan)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted athlete plan ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single athlete plan by its ID.
func (r *mongoAthletePlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.AthletePlan, error) {
	var athletePlan domain.AthletePlan
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&athletePlan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &athletePlan, nil
}

// GetByAthleteID retrieves all plan instances of an athlete, newest first.
func (r *mongoAthletePlanRepository) GetByAthleteID(ctx context.Context, athleteID primitive.ObjectID) ([]domain.AthletePlan, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "startedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"athleteId": athleteID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var athletePlans []domain.AthletePlan
	if err = cursor.All(ctx, &athletePlans); err != nil {
		return nil, err
	}
	return athletePlans, nil
}

// EnsureAthletePlanIndexes creates necessary indexes. Call during startup.
func EnsureAthletePlanIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "athleteId", Value: 1}, {Key: "startedAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "planId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
