package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanLevel indicates the intended experience level of a plan.
type PlanLevel string

const (
	LevelBeginner     PlanLevel = "beginner"
	LevelIntermediate PlanLevel = "intermediate"
	LevelAdvanced     PlanLevel = "advanced"
)

func (l PlanLevel) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// PlanType indicates the discipline a plan targets.
type PlanType string

const (
	PlanTypeRun      PlanType = "run"
	PlanTypeBike     PlanType = "bike"
	PlanTypeStrength PlanType = "strength"
	PlanTypeHybrid   PlanType = "hybrid"
)

func (t PlanType) Valid() bool {
	switch t {
	case PlanTypeRun, PlanTypeBike, PlanTypeStrength, PlanTypeHybrid:
		return true
	}
	return false
}

// PlanTemplate is a coach-authored, reusable plan definition. It is mutable
// and edited only by its owning coach; athletes never see it directly.
type PlanTemplate struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CoachID     primitive.ObjectID `bson:"coachId" json:"coachId"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Level       PlanLevel          `bson:"level" json:"level"`
	Type        PlanType           `bson:"type" json:"type"`
	Price       float64            `bson:"price" json:"price"`
	Features    []string           `bson:"features,omitempty" json:"features,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Plan is a frozen, athlete-facing instance produced only by cloning a
// PlanTemplate. It keeps a back-reference to the template it was cloned
// from and is never mutated after creation.
type Plan struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CoachID     primitive.ObjectID `bson:"coachId" json:"coachId"`
	TemplateID  primitive.ObjectID `bson:"templateId" json:"templateId"` // Originating PlanTemplate
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Level       PlanLevel          `bson:"level" json:"level"`
	Type        PlanType           `bson:"type" json:"type"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
