package repository

import (
	"alcyxob/coach-app/internal/domain"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// TransactionManager runs a function inside a single store transaction.
// The transaction travels in the context, so repository methods called with
// that context participate automatically. If fn returns an error the
// transaction is aborted and nothing written inside it is retained.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserRepository defines the interface for interacting with user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, name, username string) error
	SetAvatar(ctx context.Context, id primitive.ObjectID, objectKey string) error
}

// CoachRepository defines the interface for coach profiles.
type CoachRepository interface {
	Create(ctx context.Context, coach *domain.Coach) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Coach, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Coach, error)
	List(ctx context.Context) ([]domain.Coach, error)
	Update(ctx context.Context, coach *domain.Coach) error
}

// AthleteRepository defines the interface for athlete profiles.
type AthleteRepository interface {
	Create(ctx context.Context, athlete *domain.Athlete) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Athlete, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Athlete, error)
}

// PlanTemplateRepository defines the interface for coach-authored templates.
type PlanTemplateRepository interface {
	Create(ctx context.Context, template *domain.PlanTemplate) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PlanTemplate, error)
	GetByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.PlanTemplate, error)
	List(ctx context.Context) ([]domain.PlanTemplate, error)
	Update(ctx context.Context, template *domain.PlanTemplate) error
	Delete(ctx context.Context, id, coachID primitive.ObjectID) error
}

// PlanRepository defines the interface for frozen plan instances.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error)
}

// WeekRepository defines the interface for weeks of a template or plan.
type WeekRepository interface {
	Create(ctx context.Context, week *domain.Week) (primitive.ObjectID, error)
	GetByTemplateID(ctx context.Context, templateID primitive.ObjectID) ([]domain.Week, error)
	GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.Week, error)
	DeleteByTemplateID(ctx context.Context, templateID primitive.ObjectID) error
}

// DayRepository defines the interface for days of a week.
type DayRepository interface {
	Create(ctx context.Context, day *domain.Day) (primitive.ObjectID, error)
	GetByWeekID(ctx context.Context, weekID primitive.ObjectID) ([]domain.Day, error)
	DeleteByWeekID(ctx context.Context, weekID primitive.ObjectID) error
}

// WorkoutRepository defines the interface for workouts of a day.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	GetByDayID(ctx context.Context, dayID primitive.ObjectID) ([]domain.Workout, error)
	DeleteByDayID(ctx context.Context, dayID primitive.ObjectID) error
}

// WorkoutStepRepository defines the interface for workout steps. Steps are
// stored as a flat adjacency list keyed by workoutId; the tree shape is
// reconstructed at load time via parentStepId.
type WorkoutStepRepository interface {
	Create(ctx context.Context, step *domain.WorkoutStep) (primitive.ObjectID, error)
	GetByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) ([]domain.WorkoutStep, error)
	DeleteByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) error
}

// AthletePlanRepository defines the interface for athlete-to-plan links.
type AthletePlanRepository interface {
	Create(ctx context.Context, athletePlan *domain.AthletePlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.AthletePlan, error)
	GetByAthleteID(ctx context.Context, athleteID primitive.ObjectID) ([]domain.AthletePlan, error)
}

// ConversationRepository defines the interface for message threads.
type ConversationRepository interface {
	Create(ctx context.Context, conversation *domain.Conversation) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Conversation, error)
	GetByParticipant(ctx context.Context, userID primitive.ObjectID) ([]domain.Conversation, error)
	// FindBetween returns the conversation between two users regardless of
	// which of them initiated it, or ErrNotFound.
	FindBetween(ctx context.Context, userID, otherUserID primitive.ObjectID) (*domain.Conversation, error)
}

// MessageRepository defines the interface for messages of a conversation.
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) (primitive.ObjectID, error)
	GetByConversationID(ctx context.Context, conversationID primitive.ObjectID) ([]domain.Message, error)
}
