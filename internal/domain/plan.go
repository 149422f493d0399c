package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Plan is a named, fixed-duration subscription offering. Plans are
// reference data: admins create them, enrollments point at them.
type Plan struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"` // Unique
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	DurationDays int                `bson:"durationDays" json:"durationDays"`
	Price        int64              `bson:"price" json:"price"` // Smallest currency unit
	Features     []string           `bson:"features,omitempty" json:"features,omitempty"`
	IsActive     bool               `bson:"isActive" json:"isActive"`
	Order        int                `bson:"order" json:"order"` // Display ordering in listings
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
