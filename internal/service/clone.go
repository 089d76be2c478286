package service

import (
	"alcyxob/coach-app/internal/domain"
	"alcyxob/coach-app/internal/repository"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// treeCloner materializes a fully independent copy of a template's tree
// under a plan. Traversal is pre-order: every parent is persisted before its
// children so each child can carry the freshly generated parent identity.
// Scalar and enum fields are copied by value; order values are copied
// verbatim and never renumbered. Callers run it inside a transaction, so a
// failure on any node discards everything the clone wrote.
type treeCloner struct {
	weekRepo    repository.WeekRepository
	dayRepo     repository.DayRepository
	workoutRepo repository.WorkoutRepository
	stepRepo    repository.WorkoutStepRepository
}

func newTreeCloner(
	weekRepo repository.WeekRepository,
	dayRepo repository.DayRepository,
	workoutRepo repository.WorkoutRepository,
	stepRepo repository.WorkoutStepRepository,
) *treeCloner {
	return &treeCloner{
		weekRepo:    weekRepo,
		dayRepo:     dayRepo,
		workoutRepo: workoutRepo,
		stepRepo:    stepRepo,
	}
}

// CloneTemplateTree copies every week, day, workout, and step of src under
// the plan identified by planID. An empty template clones to an empty plan.
func (c *treeCloner) CloneTemplateTree(ctx context.Context, src *domain.TemplateTree, planID primitive.ObjectID) error {
	for _, weekNode := range src.Weeks {
		owner := planID
		week := domain.Week{
			PlanID: &owner,
			Order:  weekNode.Week.Order,
		}
		weekID, err := c.weekRepo.Create(ctx, &week)
		if err != nil {
			return err
		}

		for _, dayNode := range weekNode.Days {
			day := domain.Day{
				WeekID:    weekID,
				DayOfWeek: dayNode.Day.DayOfWeek,
				Order:     dayNode.Day.Order,
			}
			dayID, err := c.dayRepo.Create(ctx, &day)
			if err != nil {
				return err
			}

			for _, workoutNode := range dayNode.Workouts {
				workout := domain.Workout{
					DayID:       dayID,
					Title:       workoutNode.Workout.Title,
					Description: workoutNode.Workout.Description,
					Order:       workoutNode.Workout.Order,
					Type:        workoutNode.Workout.Type,
				}
				workoutID, err := c.workoutRepo.Create(ctx, &workout)
				if err != nil {
					return err
				}

				if err := c.cloneSteps(ctx, workoutNode.Steps, workoutID, nil); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// cloneSteps copies a step sub-tree. A group step is persisted first, then
// its children are cloned pointing at the group's new identity, preserving
// repetitions and the parent link.
func (c *treeCloner) cloneSteps(ctx context.Context, nodes []domain.StepNode, workoutID primitive.ObjectID, parentStepID *primitive.ObjectID) error {
	for _, node := range nodes {
		step := domain.WorkoutStep{
			WorkoutID:    workoutID,
			ParentStepID: parentStepID,
			Name:         node.Step.Name,
			Description:  node.Step.Description,
			Order:        node.Step.Order,
			Value:        node.Step.Value,
			Type:         node.Step.Type,
			Repetitions:  node.Step.Repetitions,
		}
		stepID, err := c.stepRepo.Create(ctx, &step)
		if err != nil {
			return err
		}

		if len(node.Children) > 0 {
			parent := stepID
			if err := c.cloneSteps(ctx, node.Children, workoutID, &parent); err != nil {
				return err
			}
		}
	}
	return nil
}
