package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Progress is a periodic body-metric snapshot recorded by a client
// against their enrollment. Records are append-only and gated to the
// plan's review cadence (see CanRecordProgress).
type Progress struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EnrollmentID primitive.ObjectID `bson:"enrollmentId" json:"enrollmentId"`
	RecordDate   time.Time          `bson:"recordDate" json:"recordDate"`
	DayNumber    int                `bson:"dayNumber" json:"dayNumber"` // Days since enrollment start
	Weight       float64            `bson:"weight" json:"weight"`       // Kilograms
	BodyFat      *float64           `bson:"bodyFat,omitempty" json:"bodyFat,omitempty"`       // Percent
	MuscleMass   *float64           `bson:"muscleMass,omitempty" json:"muscleMass,omitempty"` // Percent
	Measurements string             `bson:"measurements,omitempty" json:"measurements,omitempty"`
	Notes        string             `bson:"notes,omitempty" json:"notes,omitempty"`
}

// TrainerComment is a note an admin leaves on an enrollment for the
// client to read on their dashboard.
type TrainerComment struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EnrollmentID primitive.ObjectID `bson:"enrollmentId" json:"enrollmentId"`
	Comment      string             `bson:"comment" json:"comment"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
