package service

import (
	"alcyxob/coach-app/internal/domain"
	"alcyxob/coach-app/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrConversationNotFound     = errors.New("conversation not found")
	ErrConversationAccessDenied = errors.New("access denied to this conversation")
)

// ConversationDetail is one conversation with its messages attached.
type ConversationDetail struct {
	Conversation domain.Conversation `json:"conversation"`
	Messages     []domain.Message    `json:"messages"`
}

// --- Service Interface ---
type ChatService interface {
	ListConversations(ctx context.Context, requestingUserID primitive.ObjectID) ([]domain.Conversation, error)
	GetConversation(ctx context.Context, requestingUserID, conversationID primitive.ObjectID) (*ConversationDetail, error)
	SendMessage(ctx context.Context, requestingUserID, conversationID primitive.ObjectID, content string) (*domain.Message, error)
}

// --- Service Implementation ---

type chatService struct {
	conversationRepo repository.ConversationRepository
	messageRepo      repository.MessageRepository
}

// NewChatService creates a new instance of chatService.
func NewChatService(conversationRepo repository.ConversationRepository, messageRepo repository.MessageRepository) ChatService {
	return &chatService{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
	}
}

// ListConversations retrieves the conversations the user takes part in.
func (s *chatService) ListConversations(ctx context.Context, requestingUserID primitive.ObjectID) ([]domain.Conversation, error) {
	return s.conversationRepo.GetByParticipant(ctx, requestingUserID)
}

// GetConversation retrieves one conversation with its messages. Only a
// participant may read it.
func (s *chatService) GetConversation(ctx context.Context, requestingUserID, conversationID primitive.ObjectID) (*ConversationDetail, error) {
	conversation, err := s.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	if !conversation.Involves(requestingUserID) {
		return nil, ErrConversationAccessDenied
	}

	messages, err := s.messageRepo.GetByConversationID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	return &ConversationDetail{Conversation: *conversation, Messages: messages}, nil
}

// SendMessage appends a message to a conversation the user takes part in.
func (s *chatService) SendMessage(ctx context.Context, requestingUserID, conversationID primitive.ObjectID, content string) (*domain.Message, error) {
	if content == "" {
		return nil, &domain.ValidationError{Field: "content", Message: "message content cannot be empty"}
	}

	conversation, err := s.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	if !conversation.Involves(requestingUserID) {
		return nil, ErrConversationAccessDenied
	}

	message := &domain.Message{
		ConversationID: conversationID,
		SenderID:       requestingUserID,
		Content:        content,
	}
	if _, err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}
