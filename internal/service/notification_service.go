package service

import (
	"alcyxob/coach-app/internal/domain"
	"alcyxob/coach-app/internal/repository"
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
)

// Placeholder substituted with the athlete's display name in the coach's
// configured welcome message.
const athleteNamePlaceholder = "{athlete_name}"

// NotificationService reacts to a committed plan order. It is best-effort:
// every failure is logged and swallowed, never surfaced to the athlete.
type NotificationService interface {
	PlanOrdered(ctx context.Context, athletePlan *domain.AthletePlan)
}

type notificationService struct {
	planRepo         repository.PlanRepository
	coachRepo        repository.CoachRepository
	athleteRepo      repository.AthleteRepository
	userRepo         repository.UserRepository
	conversationRepo repository.ConversationRepository
	messageRepo      repository.MessageRepository
	logger           *zap.SugaredLogger
}

// NewNotificationService creates a new instance of notificationService.
func NewNotificationService(
	planRepo repository.PlanRepository,
	coachRepo repository.CoachRepository,
	athleteRepo repository.AthleteRepository,
	userRepo repository.UserRepository,
	conversationRepo repository.ConversationRepository,
	messageRepo repository.MessageRepository,
	logger *zap.SugaredLogger,
) NotificationService {
	return &notificationService{
		planRepo:         planRepo,
		coachRepo:        coachRepo,
		athleteRepo:      athleteRepo,
		userRepo:         userRepo,
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		logger:           logger,
	}
}

// PlanOrdered fires once per committed AthletePlan. If the coach has
// messaging enabled and a welcome template configured, it opens (or reuses)
// the coach-athlete conversation and appends the substituted message.
func (s *notificationService) PlanOrdered(ctx context.Context, athletePlan *domain.AthletePlan) {
	if athletePlan == nil {
		return
	}
	if err := s.sendWelcomeMessage(ctx, athletePlan); err != nil {
		s.logger.Warnw("welcome message not sent",
			"athletePlanId", athletePlan.ID.Hex(),
			"planId", athletePlan.PlanID.Hex(),
			"error", err,
		)
	}
}

func (s *notificationService) sendWelcomeMessage(ctx context.Context, athletePlan *domain.AthletePlan) error {
	plan, err := s.planRepo.GetByID(ctx, athletePlan.PlanID)
	if err != nil {
		return err
	}
	coach, err := s.coachRepo.GetByID(ctx, plan.CoachID)
	if err != nil {
		return err
	}

	template := strings.TrimSpace(coach.Settings.WelcomeMessage)
	if !coach.Settings.SendWelcomeMessage || template == "" {
		// Messaging disabled or nothing configured: not an error, no-op.
		return nil
	}

	athlete, err := s.athleteRepo.GetByID(ctx, athletePlan.AthleteID)
	if err != nil {
		return err
	}
	athleteUser, err := s.userRepo.GetByID(ctx, athlete.UserID)
	if err != nil {
		return err
	}

	content := strings.ReplaceAll(template, athleteNamePlaceholder, athleteUser.DisplayName())

	conversation, err := s.conversationRepo.FindBetween(ctx, coach.UserID, athlete.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		conversation = &domain.Conversation{
			UserID:      coach.UserID, // coach initiates
			RecipientID: athlete.UserID,
		}
		if _, err := s.conversationRepo.Create(ctx, conversation); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	_, err = s.messageRepo.Create(ctx, &domain.Message{
		ConversationID: conversation.ID,
		SenderID:       coach.UserID,
		Content:        content,
	})
	return err
}
