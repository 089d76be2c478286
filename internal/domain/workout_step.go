package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StepType indicates what a workout step's value measures.
type StepType string

const (
	StepTypeDistance StepType = "distance"
	StepTypeTime     StepType = "time"
	StepTypeReps     StepType = "reps"
	StepTypeRest     StepType = "rest"
	StepTypeWarmUp   StepType = "warm_up"
	StepTypeCoolDown StepType = "cool_down"
)

func (t StepType) Valid() bool {
	switch t {
	case StepTypeDistance, StepTypeTime, StepTypeReps, StepTypeRest, StepTypeWarmUp, StepTypeCoolDown:
		return true
	}
	return false
}

// WorkoutStep is one step within a Workout. Steps form a self-referential
// tree stored as an adjacency list: a step with a ParentStepID is nested
// inside a "group" step, and a group step repeats its children Repetitions
// times (e.g. "3x [run 400m, rest 60s]"). One level of nesting is used.
type WorkoutStep struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	WorkoutID    primitive.ObjectID  `bson:"workoutId" json:"workoutId"`
	ParentStepID *primitive.ObjectID `bson:"parentStepId,omitempty" json:"parentStepId,omitempty"`
	Name         string              `bson:"name" json:"name"`
	Description  string              `bson:"description,omitempty" json:"description,omitempty"`
	Order        int                 `bson:"order" json:"order"`
	Value        int                 `bson:"value" json:"value"`
	Type         StepType            `bson:"type" json:"type"`
	Repetitions  *int                `bson:"repetitions,omitempty" json:"repetitions,omitempty"`
}

// Reps returns the effective repetition count: meaningful only on group
// steps, defaulting to 1 when absent.
func (s *WorkoutStep) Reps() int {
	if s.Repetitions == nil || *s.Repetitions < 1 {
		return 1
	}
	return *s.Repetitions
}
