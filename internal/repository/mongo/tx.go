package mongo

import (
	"alcyxob/coach-app/internal/repository"
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// mongoTransactionManager implements repository.TransactionManager on top of
// MongoDB sessions. The session rides in the context handed to fn, so every
// repository call made with that context joins the same transaction; the
// transaction's snapshot also pins reads against concurrent edits.
type mongoTransactionManager struct {
	client *mongo.Client
}

// NewMongoTransactionManager creates a TransactionManager bound to a client.
func NewMongoTransactionManager(client *mongo.Client) repository.TransactionManager {
	return &mongoTransactionManager{client: client}
}

func (m *mongoTransactionManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := m.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
