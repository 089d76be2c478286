package service

import (
	"alcyxob/coach-app/internal/domain"
	"alcyxob/coach-app/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrTemplateNotFound = errors.New("plan template not found")
	ErrPlanNotFound     = errors.New("plan not found")
	ErrNotAnAthlete     = errors.New("user has no athlete profile")
)

// AthletePlanDetail bundles an athlete's plan instance with the plan itself
// and its weeks for the /me aggregate.
type AthletePlanDetail struct {
	AthletePlan domain.AthletePlan `json:"athletePlan"`
	Plan        domain.Plan        `json:"plan"`
	Weeks       []domain.Week      `json:"weeks"`
}

// --- Service Interface ---
type PlanService interface {
	// OrderTemplate clones the template into a new independent Plan and
	// links it to the requesting user's athlete profile. It is deliberately
	// not idempotent: every call creates a fresh Plan and AthletePlan, so
	// an athlete can repeat the same program.
	OrderTemplate(ctx context.Context, templateID, requestingUserID primitive.ObjectID) (*domain.AthletePlan, error)

	// GetAthletePlans returns the plan instances held by the user's athlete
	// profile, newest first, with each plan's weeks attached.
	GetAthletePlans(ctx context.Context, requestingUserID primitive.ObjectID) ([]AthletePlanDetail, error)

	// GetAthletePlan returns one plan instance owned by the requesting
	// athlete, with its weeks attached.
	GetAthletePlan(ctx context.Context, requestingUserID, athletePlanID primitive.ObjectID) (*AthletePlanDetail, error)
}

// --- Service Implementation ---

type planService struct {
	templateRepo    repository.PlanTemplateRepository
	planRepo        repository.PlanRepository
	athleteRepo     repository.AthleteRepository
	athletePlanRepo repository.AthletePlanRepository
	weekRepo        repository.WeekRepository
	loader          *planTreeLoader
	cloner          *treeCloner
	tx              repository.TransactionManager
	notifier        NotificationService
}

// NewPlanService creates a new instance of planService.
func NewPlanService(
	templateRepo repository.PlanTemplateRepository,
	planRepo repository.PlanRepository,
	athleteRepo repository.AthleteRepository,
	athletePlanRepo repository.AthletePlanRepository,
	weekRepo repository.WeekRepository,
	dayRepo repository.DayRepository,
	workoutRepo repository.WorkoutRepository,
	stepRepo repository.WorkoutStepRepository,
	tx repository.TransactionManager,
	notifier NotificationService,
) PlanService {
	return &planService{
		templateRepo:    templateRepo,
		planRepo:        planRepo,
		athleteRepo:     athleteRepo,
		athletePlanRepo: athletePlanRepo,
		weekRepo:        weekRepo,
		loader:          newPlanTreeLoader(weekRepo, dayRepo, workoutRepo, stepRepo),
		cloner:          newTreeCloner(weekRepo, dayRepo, workoutRepo, stepRepo),
		tx:              tx,
		notifier:        notifier,
	}
}

// OrderTemplate runs the whole instantiation as one transaction: template
// lookup, athlete resolution, tree clone, and the AthletePlan link are only
// durable together. The transaction also pins the template snapshot, so a
// concurrent edit cannot change the tree mid-clone. The welcome-message
// side effect fires only after the transaction is committed and can never
// fail the caller's result.
func (s *planService) OrderTemplate(ctx context.Context, templateID, requestingUserID primitive.ObjectID) (*domain.AthletePlan, error) {
	if templateID == primitive.NilObjectID || requestingUserID == primitive.NilObjectID {
		return nil, errors.New("template ID and requesting user ID are required")
	}

	var athletePlan *domain.AthletePlan
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		// 1. Load the template and its full tree.
		template, err := s.templateRepo.GetByID(ctx, templateID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrTemplateNotFound
			}
			return err
		}
		tree, err := s.loader.LoadTemplateTree(ctx, template)
		if err != nil {
			return err
		}

		// 2. Resolve the requesting user's athlete identity.
		athlete, err := s.athleteRepo.GetByUserID(ctx, requestingUserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrNotAnAthlete
			}
			return err
		}

		// 3. Materialize the new Plan from the template. Plan-level scalars
		// and the coach are copied; the back-reference records the source.
		plan := &domain.Plan{
			CoachID:     template.CoachID,
			TemplateID:  template.ID,
			Title:       template.Title,
			Description: template.Description,
			Level:       template.Level,
			Type:        template.Type,
		}
		planID, err := s.planRepo.Create(ctx, plan)
		if err != nil {
			return err
		}
		if err := s.cloner.CloneTemplateTree(ctx, tree, planID); err != nil {
			return err
		}

		// 4. Link the athlete to the new plan.
		link := &domain.AthletePlan{
			AthleteID: athlete.ID,
			PlanID:    planID,
			StartedAt: time.Now().UTC(),
		}
		if _, err := s.athletePlanRepo.Create(ctx, link); err != nil {
			return err
		}
		athletePlan = link
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Post-commit, best-effort. The notifier logs and swallows its own
	// failures; the athlete-facing result is already durable.
	s.notifier.PlanOrdered(context.WithoutCancel(ctx), athletePlan)

	return athletePlan, nil
}

// GetAthletePlans retrieves the athlete's plan instances with their weeks.
func (s *planService) GetAthletePlans(ctx context.Context, requestingUserID primitive.ObjectID) ([]AthletePlanDetail, error) {
	athlete, err := s.athleteRepo.GetByUserID(ctx, requestingUserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotAnAthlete
		}
		return nil, err
	}

	links, err := s.athletePlanRepo.GetByAthleteID(ctx, athlete.ID)
	if err != nil {
		return nil, err
	}

	details := make([]AthletePlanDetail, 0, len(links))
	for _, link := range links {
		plan, err := s.planRepo.GetByID(ctx, link.PlanID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue // plan deleted out from under the link
			}
			return nil, err
		}
		weeks, err := s.weekRepo.GetByPlanID(ctx, plan.ID)
		if err != nil {
			return nil, err
		}
		details = append(details, AthletePlanDetail{
			AthletePlan: link,
			Plan:        *plan,
			Weeks:       weeks,
		})
	}
	return details, nil
}

// GetAthletePlan retrieves one plan instance. A link held by a different
// athlete is reported as not found rather than revealed.
func (s *planService) GetAthletePlan(ctx context.Context, requestingUserID, athletePlanID primitive.ObjectID) (*AthletePlanDetail, error) {
	athlete, err := s.athleteRepo.GetByUserID(ctx, requestingUserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotAnAthlete
		}
		return nil, err
	}

	link, err := s.athletePlanRepo.GetByID(ctx, athletePlanID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if link.AthleteID != athlete.ID {
		return nil, ErrPlanNotFound
	}

	plan, err := s.planRepo.GetByID(ctx, link.PlanID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	weeks, err := s.weekRepo.GetByPlanID(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	return &AthletePlanDetail{
		AthletePlan: *link,
		Plan:        *plan,
		Weeks:       weeks,
	}, nil
}
