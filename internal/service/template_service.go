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
	ErrNotACoach            = errors.New("user has no coach profile")
	ErrTemplateAccessDenied = errors.New("access denied to modify this template")
)

// --- Input Structs ---
// The whole nested tree of a template arrives in one create call. Order
// values are optional: omitted ones get the next free integer within their
// sibling set, supplied ones are validated for uniqueness.

type CreateTemplateInput struct {
	Title       string
	Description string
	Level       domain.PlanLevel
	Type        domain.PlanType
	Price       float64
	Features    []string
	Weeks       []CreateWeekInput
}

type CreateWeekInput struct {
	Order *int
	Days  []CreateDayInput
}

type CreateDayInput struct {
	DayOfWeek int
	Order     *int
	Workouts  []CreateWorkoutInput
}

type CreateWorkoutInput struct {
	Title       string
	Description string
	Type        domain.WorkoutType
	Order       *int
	Steps       []CreateStepInput
}

type CreateStepInput struct {
	Name        string
	Description string
	Type        domain.StepType
	Value       int
	Order       *int
	Repetitions *int
	Steps       []CreateStepInput // nested children of a group step
}

// UpdateTemplateInput carries the mutable plan-level scalars; nil fields
// are left unchanged.
type UpdateTemplateInput struct {
	Title       *string
	Description *string
	Level       *domain.PlanLevel
	Type        *domain.PlanType
	Price       *float64
	Features    []string
}

// TemplatePreview is the read-time aggregate for a template listing page:
// the week count and first ordered week are computed from the live tree,
// not stored.
type TemplatePreview struct {
	Template   domain.PlanTemplate `json:"template"`
	WeeksCount int                 `json:"weeksCount"`
	FirstWeek  *domain.WeekNode    `json:"firstWeek,omitempty"`
}

// --- Service Interface ---
type TemplateService interface {
	CreateTemplate(ctx context.Context, requestingUserID primitive.ObjectID, input CreateTemplateInput) (*domain.PlanTemplate, error)
	ListTemplates(ctx context.Context) ([]domain.PlanTemplate, error)
	// ListMyTemplates returns the templates authored by the requesting coach.
	ListMyTemplates(ctx context.Context, requestingUserID primitive.ObjectID) ([]domain.PlanTemplate, error)
	GetTemplatePreview(ctx context.Context, templateID primitive.ObjectID) (*TemplatePreview, error)
	// GetTemplateTree is the owning coach's editor view; other coaches only
	// get the public preview.
	GetTemplateTree(ctx context.Context, requestingUserID, templateID primitive.ObjectID) (*domain.TemplateTree, error)
	UpdateTemplate(ctx context.Context, requestingUserID, templateID primitive.ObjectID, input UpdateTemplateInput) (*domain.PlanTemplate, error)
	DeleteTemplate(ctx context.Context, requestingUserID, templateID primitive.ObjectID) error
}

// --- Service Implementation ---

type templateService struct {
	templateRepo repository.PlanTemplateRepository
	coachRepo    repository.CoachRepository
	weekRepo     repository.WeekRepository
	dayRepo      repository.DayRepository
	workoutRepo  repository.WorkoutRepository
	stepRepo     repository.WorkoutStepRepository
	loader       *planTreeLoader
	tx           repository.TransactionManager
}

// NewTemplateService creates a new instance of templateService.
func NewTemplateService(
	templateRepo repository.PlanTemplateRepository,
	coachRepo repository.CoachRepository,
	weekRepo repository.WeekRepository,
	dayRepo repository.DayRepository,
	workoutRepo repository.WorkoutRepository,
	stepRepo repository.WorkoutStepRepository,
	tx repository.TransactionManager,
) TemplateService {
	return &templateService{
		templateRepo: templateRepo,
		coachRepo:    coachRepo,
		weekRepo:     weekRepo,
		dayRepo:      dayRepo,
		workoutRepo:  workoutRepo,
		stepRepo:     stepRepo,
		loader:       newPlanTreeLoader(weekRepo, dayRepo, workoutRepo, stepRepo),
		tx:           tx,
	}
}

// CreateTemplate persists the template and its whole nested tree in one
// transaction, parent before child so every child can reference its
// parent's generated identity. Sibling order values are validated (and
// auto-assigned where omitted) before any row of that sibling set is
// written.
func (s *templateService) CreateTemplate(ctx context.Context, requestingUserID primitive.ObjectID, input CreateTemplateInput) (*domain.PlanTemplate, error) {
	coach, err := s.coachRepo.GetByUserID(ctx, requestingUserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotACoach
		}
		return nil, err
	}

	template := &domain.PlanTemplate{
		CoachID:     coach.ID,
		Title:       input.Title,
		Description: input.Description,
		Level:       input.Level,
		Type:        input.Type,
		Price:       input.Price,
		Features:    input.Features,
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		templateID, err := s.templateRepo.Create(ctx, template)
		if err != nil {
			return err
		}

		weekOrders, err := resolveOrders("weeks.order", len(input.Weeks), func(i int) *int { return input.Weeks[i].Order })
		if err != nil {
			return err
		}

		for i, weekInput := range input.Weeks {
			owner := templateID
			week := domain.Week{
				TemplateID: &owner,
				Order:      weekOrders[i],
			}
			weekID, err := s.weekRepo.Create(ctx, &week)
			if err != nil {
				return err
			}
			if err := s.createDays(ctx, weekID, weekInput.Days); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return template, nil
}

func (s *templateService) createDays(ctx context.Context, weekID primitive.ObjectID, inputs []CreateDayInput) error {
	orders, err := resolveOrders("days.order", len(inputs), func(i int) *int { return inputs[i].Order })
	if err != nil {
		return err
	}

	for i, dayInput := range inputs {
		day := domain.Day{
			WeekID:    weekID,
			DayOfWeek: dayInput.DayOfWeek,
			Order:     orders[i],
		}
		dayID, err := s.dayRepo.Create(ctx, &day)
		if err != nil {
			return err
		}
		if err := s.createWorkouts(ctx, dayID, dayInput.Workouts); err != nil {
			return err
		}
	}
	return nil
}

func (s *templateService) createWorkouts(ctx context.Context, dayID primitive.ObjectID, inputs []CreateWorkoutInput) error {
	orders, err := resolveOrders("workouts.order", len(inputs), func(i int) *int { return inputs[i].Order })
	if err != nil {
		return err
	}

	for i, workoutInput := range inputs {
		workout := domain.Workout{
			DayID:       dayID,
			Title:       workoutInput.Title,
			Description: workoutInput.Description,
			Order:       orders[i],
			Type:        workoutInput.Type,
		}
		workoutID, err := s.workoutRepo.Create(ctx, &workout)
		if err != nil {
			return err
		}
		if err := s.createSteps(ctx, workoutID, nil, workoutInput.Steps); err != nil {
			return err
		}
	}
	return nil
}

func (s *templateService) createSteps(ctx context.Context, workoutID primitive.ObjectID, parentStepID *primitive.ObjectID, inputs []CreateStepInput) error {
	orders, err := resolveOrders("steps.order", len(inputs), func(i int) *int { return inputs[i].Order })
	if err != nil {
		return err
	}

	for i, stepInput := range inputs {
		if parentStepID != nil && len(stepInput.Steps) > 0 {
			return &domain.ValidationError{
				Field:   "steps",
				Message: "step groups cannot be nested inside another group",
			}
		}
		step := domain.WorkoutStep{
			WorkoutID:    workoutID,
			ParentStepID: parentStepID,
			Name:         stepInput.Name,
			Description:  stepInput.Description,
			Order:        orders[i],
			Value:        stepInput.Value,
			Type:         stepInput.Type,
			Repetitions:  stepInput.Repetitions,
		}
		stepID, err := s.stepRepo.Create(ctx, &step)
		if err != nil {
			return err
		}
		if len(stepInput.Steps) > 0 {
			parent := stepID
			if err := s.createSteps(ctx, workoutID, &parent, stepInput.Steps); err != nil {
				return err
			}
		}
	}
	return nil
}

// resolveOrders adapts one sibling set's optional orders to the domain
// ordering rules.
func resolveOrders(field string, n int, orderAt func(i int) *int) ([]int, error) {
	supplied := make([]*int, n)
	for i := 0; i < n; i++ {
		supplied[i] = orderAt(i)
	}
	return domain.ResolveSiblingOrders(field, supplied)
}

// ListTemplates retrieves all templates.
func (s *templateService) ListTemplates(ctx context.Context) ([]domain.PlanTemplate, error) {
	return s.templateRepo.List(ctx)
}

// ListMyTemplates retrieves the requesting coach's own templates.
func (s *templateService) ListMyTemplates(ctx context.Context, requestingUserID primitive.ObjectID) ([]domain.PlanTemplate, error) {
	coach, err := s.coachRepo.GetByUserID(ctx, requestingUserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotACoach
		}
		return nil, err
	}
	return s.templateRepo.GetByCoachID(ctx, coach.ID)
}

// GetTemplatePreview computes the aggregate listing view of one template:
// week count plus the first ordered week with its full subtree.
func (s *templateService) GetTemplatePreview(ctx context.Context, templateID primitive.ObjectID) (*TemplatePreview, error) {
	template, err := s.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}

	weeks, err := s.weekRepo.GetByTemplateID(ctx, templateID)
	if err != nil {
		return nil, err
	}

	preview := &TemplatePreview{
		Template:   *template,
		WeeksCount: len(weeks),
	}
	if len(weeks) > 0 {
		// Weeks come back sorted by order; the first is the lowest.
		firstWeek, err := s.loader.LoadWeekNode(ctx, weeks[0])
		if err != nil {
			return nil, err
		}
		preview.FirstWeek = &firstWeek
	}
	return preview, nil
}

// GetTemplateTree loads the template with all descendants. Only the owning
// coach may see the full tree; everyone else is limited to the preview.
func (s *templateService) GetTemplateTree(ctx context.Context, requestingUserID, templateID primitive.ObjectID) (*domain.TemplateTree, error) {
	coach, err := s.coachRepo.GetByUserID(ctx, requestingUserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotACoach
		}
		return nil, err
	}

	template, err := s.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	if template.CoachID != coach.ID {
		return nil, ErrTemplateAccessDenied
	}
	return s.loader.LoadTemplateTree(ctx, template)
}

// UpdateTemplate changes plan-level scalars of a template owned by the
// requesting coach. The nested tree is not touched here.
func (s *templateService) UpdateTemplate(ctx context.Context, requestingUserID, templateID primitive.ObjectID, input UpdateTemplateInput) (*domain.PlanTemplate, error) {
	coach, err := s.coachRepo.GetByUserID(ctx, requestingUserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotACoach
		}
		return nil, err
	}

	template, err := s.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	if template.CoachID != coach.ID {
		return nil, ErrTemplateAccessDenied
	}

	if input.Title != nil {
		template.Title = *input.Title
	}
	if input.Description != nil {
		template.Description = *input.Description
	}
	if input.Level != nil {
		template.Level = *input.Level
	}
	if input.Type != nil {
		template.Type = *input.Type
	}
	if input.Price != nil {
		template.Price = *input.Price
	}
	if input.Features != nil {
		template.Features = input.Features
	}
	if !template.Level.Valid() || !template.Type.Valid() {
		return nil, &domain.ValidationError{Field: "level/type", Message: "unknown enum value"}
	}

	if err := s.templateRepo.Update(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}

// DeleteTemplate removes a template owned by the requesting coach together
// with its whole subtree, in one transaction so the store never holds an
// orphaned week, day, workout, or step. Plans already cloned from it keep
// their own copies of the tree and survive.
func (s *templateService) DeleteTemplate(ctx context.Context, requestingUserID, templateID primitive.ObjectID) error {
	coach, err := s.coachRepo.GetByUserID(ctx, requestingUserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotACoach
		}
		return err
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		weeks, err := s.weekRepo.GetByTemplateID(ctx, templateID)
		if err != nil {
			return err
		}
		for _, week := range weeks {
			days, err := s.dayRepo.GetByWeekID(ctx, week.ID)
			if err != nil {
				return err
			}
			for _, day := range days {
				workouts, err := s.workoutRepo.GetByDayID(ctx, day.ID)
				if err != nil {
					return err
				}
				for _, workout := range workouts {
					if err := s.stepRepo.DeleteByWorkoutID(ctx, workout.ID); err != nil {
						return err
					}
				}
				if err := s.workoutRepo.DeleteByDayID(ctx, day.ID); err != nil {
					return err
				}
			}
			if err := s.dayRepo.DeleteByWeekID(ctx, week.ID); err != nil {
				return err
			}
		}
		if err := s.weekRepo.DeleteByTemplateID(ctx, templateID); err != nil {
			return err
		}

		// The delete filter includes the owning coach; a miss rolls the
		// subtree deletes back.
		err = s.templateRepo.Delete(ctx, templateID, coach.ID)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTemplateNotFound
		}
		return err
	})
}
