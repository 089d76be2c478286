package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Week belongs to exactly one of a PlanTemplate or a Plan: exactly one of
// TemplateID/PlanID is set, never both, never neither.
type Week struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	TemplateID *primitive.ObjectID `bson:"templateId,omitempty" json:"templateId,omitempty"`
	PlanID     *primitive.ObjectID `bson:"planId,omitempty" json:"planId,omitempty"`
	Order      int                 `bson:"order" json:"order"`
}

// HasOneOwner reports whether the mutually exclusive owner invariant holds.
func (w *Week) HasOneOwner() bool {
	return (w.TemplateID != nil) != (w.PlanID != nil)
}

// Day belongs to one Week.
type Day struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WeekID    primitive.ObjectID `bson:"weekId" json:"weekId"`
	DayOfWeek int                `bson:"dayOfWeek" json:"dayOfWeek"` // 1 (Mon) - 7 (Sun)
	Order     int                `bson:"order" json:"order"`
}
