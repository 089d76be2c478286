package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Conversation is a two-party message thread between users.
type Conversation struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"` // Initiator
	RecipientID primitive.ObjectID `bson:"recipientId" json:"recipientId"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// Involves reports whether the given user is one of the two parties.
func (c *Conversation) Involves(userID primitive.ObjectID) bool {
	return c.UserID == userID || c.RecipientID == userID
}

// Message is a single message within a Conversation.
type Message struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ConversationID primitive.ObjectID `bson:"conversationId" json:"conversationId"`
	SenderID       primitive.ObjectID `bson:"senderId" json:"senderId"`
	Content        string             `bson:"content" json:"content"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}
