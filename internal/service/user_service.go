package service

import (
	"alcyxob/coach-app/internal/domain"
	"alcyxob/coach-app/internal/repository"
	"alcyxob/coach-app/internal/storage"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrUserNotFound = errors.New("user not found")
)

// AvatarUpload carries the presigned PUT URL the client uploads to and the
// object key it must confirm afterwards.
type AvatarUpload struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// --- Service Interface ---
type UserService interface {
	GetByID(ctx context.Context, userID primitive.ObjectID) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, name, username string) (*domain.User, error)

	// RequestAvatarUpload returns a presigned URL the client PUTs the image
	// to directly; nothing is recorded until ConfirmAvatar.
	RequestAvatarUpload(ctx context.Context, userID primitive.ObjectID, contentType string) (*AvatarUpload, error)
	ConfirmAvatar(ctx context.Context, userID primitive.ObjectID, objectKey string) (*domain.User, error)

	// AvatarURL resolves the stored object key to a short-lived presigned
	// GET URL, or "" when the user has no avatar.
	AvatarURL(ctx context.Context, user *domain.User) string
}

// --- Service Implementation ---

type userService struct {
	userRepo    repository.UserRepository
	fileStorage storage.FileStorage
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo repository.UserRepository, fileStorage storage.FileStorage) UserService {
	return &userService{
		userRepo:    userRepo,
		fileStorage: fileStorage,
	}
}

// GetByID retrieves a user account.
func (s *userService) GetByID(ctx context.Context, userID primitive.ObjectID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// UpdateProfile changes the display name and username.
func (s *userService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, name, username string) (*domain.User, error) {
	if username == "" {
		return nil, &domain.ValidationError{Field: "username", Message: "username cannot be empty"}
	}
	if err := s.userRepo.UpdateProfile(ctx, userID, name, username); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.GetByID(ctx, userID)
}

// RequestAvatarUpload generates the object key and presigned PUT URL for a
// direct-to-S3 avatar upload.
func (s *userService) RequestAvatarUpload(ctx context.Context, userID primitive.ObjectID, contentType string) (*AvatarUpload, error) {
	if contentType == "" {
		contentType = "image/jpeg"
	}
	objectKey := fmt.Sprintf("avatars/%s/%s", userID.Hex(), uuid.NewString())

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, err
	}
	return &AvatarUpload{UploadURL: uploadURL, ObjectKey: objectKey}, nil
}

// ConfirmAvatar records the uploaded object key on the user, removing the
// previous avatar object if there was one.
func (s *userService) ConfirmAvatar(ctx context.Context, userID primitive.ObjectID, objectKey string) (*domain.User, error) {
	if objectKey == "" {
		return nil, &domain.ValidationError{Field: "objectKey", Message: "object key cannot be empty"}
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := s.userRepo.SetAvatar(ctx, userID, objectKey); err != nil {
		return nil, err
	}
	if user.Avatar != "" && user.Avatar != objectKey {
		// Old object is unreachable once the key is replaced; best effort.
		_ = s.fileStorage.DeleteObject(ctx, user.Avatar)
	}
	return s.GetByID(ctx, userID)
}

// AvatarURL resolves the avatar object key to a presigned download URL.
func (s *userService) AvatarURL(ctx context.Context, user *domain.User) string {
	if user == nil || user.Avatar == "" {
		return ""
	}
	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, user.Avatar, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return ""
	}
	return url
}
