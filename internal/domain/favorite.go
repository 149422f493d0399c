package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FavoriteExercise is a user's bookmark of an exercise from the
// external catalog. The catalog's own identifier is kept so logs can be
// addressed without another round-trip to the API.
type FavoriteExercise struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	ExerciseAPIID string             `bson:"exerciseApiId" json:"exerciseApiId"` // Unique per user
	ExerciseName  string             `bson:"exerciseName" json:"exerciseName"`
	BodyPart      string             `bson:"bodyPart,omitempty" json:"bodyPart,omitempty"`
	Equipment     string             `bson:"equipment,omitempty" json:"equipment,omitempty"`
	Target        string             `bson:"target,omitempty" json:"target,omitempty"` // Primary muscle
	GifURL        string             `bson:"gifUrl,omitempty" json:"gifUrl,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// ExerciseLog is an ad hoc set/rep/weight entry a user records against
// one of their favorite exercises. Independent of enrollments.
type ExerciseLog struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FavoriteID primitive.ObjectID `bson:"favoriteId" json:"favoriteId"`
	Sets       int                `bson:"sets" json:"sets"`
	Reps       int                `bson:"reps" json:"reps"`
	Weight     *float64           `bson:"weight,omitempty" json:"weight,omitempty"`     // Kilograms
	Duration   *int               `bson:"duration,omitempty" json:"duration,omitempty"` // Seconds
	Notes      string             `bson:"notes,omitempty" json:"notes,omitempty"`
	LogDate    time.Time          `bson:"logDate" json:"logDate"`
}
