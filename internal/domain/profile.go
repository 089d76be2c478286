package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CoachSettings holds per-coach notification preferences.
// WelcomeMessage may contain the {athlete_name} placeholder, substituted
// with the athlete's display name when the message is sent.
type CoachSettings struct {
	SendWelcomeMessage bool   `bson:"sendWelcomeMessage" json:"sendWelcomeMessage"`
	WelcomeMessage     string `bson:"welcomeMessage,omitempty" json:"welcomeMessage,omitempty"`
}

// Coach is the coach profile attached to a User with the coach role.
type Coach struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Settings    CoachSettings      `bson:"settings" json:"settings"`
}

// Athlete is the athlete profile attached to a User with the athlete role.
// Holding an Athlete profile is what authorizes ordering a plan template.
type Athlete struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
}
