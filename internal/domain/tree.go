package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TemplateTree is a fully loaded PlanTemplate with all descendant
// collections eagerly attached. It is the input to the clone operation.
type TemplateTree struct {
	Template *PlanTemplate
	Weeks    []WeekNode
}

// WeekNode is a Week with its ordered Days.
type WeekNode struct {
	Week Week
	Days []DayNode
}

// DayNode is a Day with its ordered Workouts.
type DayNode struct {
	Day      Day
	Workouts []WorkoutNode
}

// WorkoutNode is a Workout with its step tree.
type WorkoutNode struct {
	Workout Workout
	Steps   []StepNode
}

// StepNode is a WorkoutStep with its nested children. Leaf steps have no
// children; group steps repeat their children Reps() times.
type StepNode struct {
	Step     WorkoutStep
	Children []StepNode
}

// BuildStepTree reconstructs the step tree of one workout from its flat
// adjacency list. Steps whose ParentStepID is unset are roots; every other
// step must reference a root in the same list.
func BuildStepTree(steps []WorkoutStep) ([]StepNode, error) {
	roots := make([]StepNode, 0, len(steps))
	index := make(map[primitive.ObjectID]int, len(steps))

	for _, s := range steps {
		if s.ParentStepID != nil {
			continue
		}
		index[s.ID] = len(roots)
		roots = append(roots, StepNode{Step: s})
	}

	for _, s := range steps {
		if s.ParentStepID == nil {
			continue
		}
		i, ok := index[*s.ParentStepID]
		if !ok {
			return nil, &ValidationError{
				Field:   "parentStepId",
				Message: "step references a parent outside its workout",
			}
		}
		roots[i].Children = append(roots[i].Children, StepNode{Step: s})
	}

	return roots, nil
}

// CountSteps returns the total number of steps in a workout's step tree,
// group nodes included.
func CountSteps(nodes []StepNode) int {
	n := 0
	for _, node := range nodes {
		n += 1 + CountSteps(node.Children)
	}
	return n
}
