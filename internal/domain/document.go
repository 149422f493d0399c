package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DocumentType type for document categories
type DocumentType string

const (
	DocumentDiet    DocumentType = "DIET"
	DocumentRoutine DocumentType = "ROUTINE"
	DocumentReport  DocumentType = "REPORT" // Progress report, append-only
)

// IsSingular reports whether at most one document of this type may
// exist per enrollment. Diet and routine PDFs are replaced on
// re-upload; reports accumulate.
func (t DocumentType) IsSingular() bool {
	return t == DocumentDiet || t == DocumentRoutine
}

// Document stores metadata about a file an admin uploaded for an
// enrollment (diet plan, training routine, progress report). The actual
// file resides in object storage under ObjectKey.
type Document struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EnrollmentID primitive.ObjectID `bson:"enrollmentId" json:"enrollmentId"`
	Type         DocumentType       `bson:"type" json:"type"`
	Filename     string             `bson:"filename" json:"filename"` // Original filename provided by the uploader
	URL          string             `bson:"url" json:"url"`           // Retrievable URL for the stored file
	ObjectKey    string             `bson:"objectKey" json:"-"`       // Storage key, internal use
	FileSize     int64              `bson:"fileSize" json:"fileSize"` // Bytes
	UploadedAt   time.Time          `bson:"uploadedAt" json:"uploadedAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
