package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MediaType type for enrollment media slots
type MediaType string

const (
	MediaInitialPhoto MediaType = "INITIAL_PHOTO"
	MediaDay1Video    MediaType = "DAY_1_VIDEO"
	MediaFinalVideo   MediaType = "FINAL_VIDEO"
)

// ClientUploadable reports whether clients may fill this slot
// themselves. The initial photo is taken by the admin at sign-up.
func (t MediaType) ClientUploadable() bool {
	return t == MediaDay1Video || t == MediaFinalVideo
}

// Media is a single photo or video slot on an enrollment. Each
// (enrollment, type) pair holds at most one record; re-uploading
// replaces the previous one.
type Media struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EnrollmentID primitive.ObjectID `bson:"enrollmentId" json:"enrollmentId"`
	Type         MediaType          `bson:"type" json:"type"`
	Filename     string             `bson:"filename" json:"filename"`
	URL          string             `bson:"url" json:"url"`
	ObjectKey    string             `bson:"objectKey,omitempty" json:"-"`
	FileSize     int64              `bson:"fileSize" json:"fileSize"`
	UploadedAt   time.Time          `bson:"uploadedAt" json:"uploadedAt"`
}
