package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutType indicates the kind of session a workout is.
type WorkoutType string

const (
	WorkoutTypeStrength WorkoutType = "strength"
	WorkoutTypeRun      WorkoutType = "run"
	WorkoutTypeHybrid   WorkoutType = "hybrid"
)

func (t WorkoutType) Valid() bool {
	switch t {
	case WorkoutTypeStrength, WorkoutTypeRun, WorkoutTypeHybrid:
		return true
	}
	return false
}

// Workout represents a single session within a Day.
type Workout struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DayID       primitive.ObjectID `bson:"dayId" json:"dayId"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Order       int                `bson:"order" json:"order"`
	Type        WorkoutType        `bson:"type" json:"type"`
}
