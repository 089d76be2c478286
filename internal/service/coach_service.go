package service

import (
	"alcyxob/coach-app/internal/domain"
	"alcyxob/coach-app/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CoachDetail is the public listing view of a coach with their user info.
type CoachDetail struct {
	Coach domain.Coach `json:"coach"`
	User  domain.User  `json:"user"`
}

// --- Service Interface ---
type CoachService interface {
	ListCoaches(ctx context.Context) ([]CoachDetail, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Coach, error)
	// UpdateProfile changes the coach's description and notification
	// settings, including the welcome-message configuration.
	UpdateProfile(ctx context.Context, requestingUserID primitive.ObjectID, description string, settings domain.CoachSettings) (*domain.Coach, error)
}

// --- Service Implementation ---

type coachService struct {
	coachRepo repository.CoachRepository
	userRepo  repository.UserRepository
}

// NewCoachService creates a new instance of coachService.
func NewCoachService(coachRepo repository.CoachRepository, userRepo repository.UserRepository) CoachService {
	return &coachService{
		coachRepo: coachRepo,
		userRepo:  userRepo,
	}
}

// ListCoaches retrieves all coaches with their public user info attached.
func (s *coachService) ListCoaches(ctx context.Context) ([]CoachDetail, error) {
	coaches, err := s.coachRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	details := make([]CoachDetail, 0, len(coaches))
	for _, coach := range coaches {
		user, err := s.userRepo.GetByID(ctx, coach.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue // orphaned profile, skip
			}
			return nil, err
		}
		user.PasswordHash = ""
		details = append(details, CoachDetail{Coach: coach, User: *user})
	}
	return details, nil
}

// GetByUserID retrieves the coach profile of a user.
func (s *coachService) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Coach, error) {
	coach, err := s.coachRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotACoach
		}
		return nil, err
	}
	return coach, nil
}

// UpdateProfile changes the requesting coach's own profile.
func (s *coachService) UpdateProfile(ctx context.Context, requestingUserID primitive.ObjectID, description string, settings domain.CoachSettings) (*domain.Coach, error) {
	coach, err := s.GetByUserID(ctx, requestingUserID)
	if err != nil {
		return nil, err
	}

	coach.Description = description
	coach.Settings = settings
	if err := s.coachRepo.Update(ctx, coach); err != nil {
		return nil, err
	}
	return coach, nil
}
