package service

import (
	"alcyxob/coach-app/internal/domain"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newChatFixture(t *testing.T) (*fixture, ChatService) {
	t.Helper()
	f := newFixture(t)
	chat := NewChatService(&memConversationRepo{s: f.store}, &memMessageRepo{s: f.store})
	return f, chat
}

func TestSendAndReadMessages(t *testing.T) {
	f, chat := newChatFixture(t)
	ctx := context.Background()

	conv := domain.Conversation{ID: primitive.NewObjectID(), UserID: f.coachUser.ID, RecipientID: f.athleteUser.ID}
	f.store.conversations = append(f.store.conversations, conv)

	sent, err := chat.SendMessage(ctx, f.athleteUser.ID, conv.ID, "When does week 2 start?")
	require.NoError(t, err)
	assert.Equal(t, f.athleteUser.ID, sent.SenderID)

	detail, err := chat.GetConversation(ctx, f.coachUser.ID, conv.ID)
	require.NoError(t, err)
	require.Len(t, detail.Messages, 1)
	assert.Equal(t, "When does week 2 start?", detail.Messages[0].Content)
}

func TestConversationAccessDeniedForOutsider(t *testing.T) {
	f, chat := newChatFixture(t)
	ctx := context.Background()

	conv := domain.Conversation{ID: primitive.NewObjectID(), UserID: f.coachUser.ID, RecipientID: f.athleteUser.ID}
	f.store.conversations = append(f.store.conversations, conv)

	outsider := f.store.addUser(domain.User{Username: "lurker", Email: "lurker@example.com", Role: domain.RoleAthlete})

	_, err := chat.GetConversation(ctx, outsider.ID, conv.ID)
	assert.ErrorIs(t, err, ErrConversationAccessDenied)

	_, err = chat.SendMessage(ctx, outsider.ID, conv.ID, "hello?")
	assert.ErrorIs(t, err, ErrConversationAccessDenied)
}

func TestSendMessageRejectsEmptyContent(t *testing.T) {
	f, chat := newChatFixture(t)

	conv := domain.Conversation{ID: primitive.NewObjectID(), UserID: f.coachUser.ID, RecipientID: f.athleteUser.ID}
	f.store.conversations = append(f.store.conversations, conv)

	_, err := chat.SendMessage(context.Background(), f.athleteUser.ID, conv.ID, "")
	var vErr *domain.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestListConversations(t *testing.T) {
	f, chat := newChatFixture(t)

	conv := domain.Conversation{ID: primitive.NewObjectID(), UserID: f.coachUser.ID, RecipientID: f.athleteUser.ID}
	f.store.conversations = append(f.store.conversations, conv)

	mine, err := chat.ListConversations(context.Background(), f.athleteUser.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	outsider := f.store.addUser(domain.User{Username: "lurker", Email: "lurker@example.com", Role: domain.RoleAthlete})
	none, err := chat.ListConversations(context.Background(), outsider.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetConversationNotFound(t *testing.T) {
	f, chat := newChatFixture(t)

	_, err := chat.GetConversation(context.Background(), f.coachUser.ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrConversationNotFound)
}
