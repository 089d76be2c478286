package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AthletePlan links an Athlete to a Plan instance. It is created exactly
// once per order action and never updated. Ordering the same template twice
// deliberately yields two AthletePlans pointing at two independent Plans.
type AthletePlan struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AthleteID primitive.ObjectID `bson:"athleteId" json:"athleteId"`
	PlanID    primitive.ObjectID `bson:"planId" json:"planId"`
	StartedAt time.Time          `bson:"startedAt" json:"startedAt"`
}
