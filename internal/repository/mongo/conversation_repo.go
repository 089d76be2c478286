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

const conversationCollectionName = "conversations"

// mongoConversationRepository implements repository.ConversationRepository
type mongoConversationRepository struct {
	collection *mongo.Collection
}

// NewMongoConversationRepository creates a new Conversation repository.
func NewMongoConversationRepository(db *mongo.Database) repository.ConversationRepository {
	return &mongoConversationRepository{
		collection: db.Collection(conversationCollectionName),
	}
}

// Create inserts a new conversation.
func (r *mongoConversationRepository) Create(ctx context.Context, conversation *domain.Conversation) (primitive.ObjectID, error) {
	if conversation.UserID == primitive.NilObjectID || conversation.RecipientID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("conversation requires userId and recipientId")
	}
	conversation.ID = primitive.NewObjectID()
	conversation.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, conversation)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted conversation ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single conversation by its ID.
func (r *mongoConversationRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Conversation, error) {
	var conversation domain.Conversation
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&conversation)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &conversation, nil
}

// GetByParticipant retrieves all conversations a user takes part in.
func (r *mongoConversationRepository) GetByParticipant(ctx context.Context, userID primitive.ObjectID) ([]domain.Conversation, error) {
	filter := bson.M{"$or": []bson.M{
		{"userId": userID},
		{"recipientId": userID},
	}}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var conversations []domain.Conversation
	if err = cursor.All(ctx, &conversations); err != nil {
		return nil, err
	}
	return conversations, nil
}

// FindBetween returns the conversation between two users regardless of who
// initiated it, or ErrNotFound if none exists yet.
func (r *mongoConversationRepository) FindBetween(ctx context.Context, userID, otherUserID primitive.ObjectID) (*domain.Conversation, error) {
	filter := bson.M{"$or": []bson.M{
		{"userId": userID, "recipientId": otherUserID},
		{"userId": otherUserID, "recipientId": userID},
	}}
	var conversation domain.Conversation
	err := r.collection.FindOne(ctx, filter).Decode(&conversation)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &conversation, nil
}

// EnsureConversationIndexes creates necessary indexes. Call during startup.
func EnsureConversationIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "recipientId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "recipientId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
