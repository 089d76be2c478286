package service

import (
	"alcyxob/coach-app/internal/domain"
	"alcyxob/coach-app/internal/repository"
	"context"
)

// planTreeLoader eagerly loads the descendant collections of a template or
// plan into an in-memory tree, rebuilding step nesting from the flat
// parentStepId adjacency list.
type planTreeLoader struct {
	weekRepo    repository.WeekRepository
	dayRepo     repository.DayRepository
	workoutRepo repository.WorkoutRepository
	stepRepo    repository.WorkoutStepRepository
}

func newPlanTreeLoader(
	weekRepo repository.WeekRepository,
	dayRepo repository.DayRepository,
	workoutRepo repository.WorkoutRepository,
	stepRepo repository.WorkoutStepRepository,
) *planTreeLoader {
	return &planTreeLoader{
		weekRepo:    weekRepo,
		dayRepo:     dayRepo,
		workoutRepo: workoutRepo,
		stepRepo:    stepRepo,
	}
}

// LoadTemplateTree returns the template with all of its weeks fully loaded.
func (l *planTreeLoader) LoadTemplateTree(ctx context.Context, template *domain.PlanTemplate) (*domain.TemplateTree, error) {
	weeks, err := l.weekRepo.GetByTemplateID(ctx, template.ID)
	if err != nil {
		return nil, err
	}

	tree := &domain.TemplateTree{Template: template}
	for _, week := range weeks {
		weekNode, err := l.LoadWeekNode(ctx, week)
		if err != nil {
			return nil, err
		}
		tree.Weeks = append(tree.Weeks, weekNode)
	}
	return tree, nil
}

// LoadWeekNode loads one week's days, workouts, and step trees.
func (l *planTreeLoader) LoadWeekNode(ctx context.Context, week domain.Week) (domain.WeekNode, error) {
	weekNode := domain.WeekNode{Week: week}

	days, err := l.dayRepo.GetByWeekID(ctx, week.ID)
	if err != nil {
		return domain.WeekNode{}, err
	}

	for _, day := range days {
		dayNode := domain.DayNode{Day: day}

		workouts, err := l.workoutRepo.GetByDayID(ctx, day.ID)
		if err != nil {
			return domain.WeekNode{}, err
		}

		for _, workout := range workouts {
			steps, err := l.stepRepo.GetByWorkoutID(ctx, workout.ID)
			if err != nil {
				return domain.WeekNode{}, err
			}
			stepTree, err := domain.BuildStepTree(steps)
			if err != nil {
				return domain.WeekNode{}, err
			}
			dayNode.Workouts = append(dayNode.Workouts, domain.WorkoutNode{
				Workout: workout,
				Steps:   stepTree,
			})
		}

		weekNode.Days = append(weekNode.Days, dayNode)
	}
	return weekNode, nil
}
