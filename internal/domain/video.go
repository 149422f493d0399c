package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxVideoSize is the largest accepted upload for a user video.
const MaxVideoSize = 100 * 1024 * 1024 // 100MB

// UserVideo stores metadata about a video a user uploaded to their own
// account. Unlike enrollment media slots these are an append-only
// collection. The file itself resides in object storage.
type UserVideo struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	FileName    string             `bson:"fileName" json:"fileName"` // Original filename
	ObjectKey   string             `bson:"objectKey" json:"-"`
	URL         string             `bson:"url" json:"url"`
	FileSize    int64              `bson:"fileSize" json:"fileSize"`
	MimeType    string             `bson:"mimeType" json:"mimeType"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	IsVisible   bool               `bson:"isVisible" json:"isVisible"`
	UploadedAt  time.Time          `bson:"uploadedAt" json:"uploadedAt"`
}

// AllowedVideoMimeTypes lists the video formats accepted for upload.
var AllowedVideoMimeTypes = []string{
	"video/mp4",
	"video/avi",
	"video/mov",
	"video/quicktime",
	"video/x-msvideo",
}

// IsAllowedVideoMimeType checks an upload's content type against the
// accepted formats.
func IsAllowedVideoMimeType(mimeType string) bool {
	for _, t := range AllowedVideoMimeTypes {
		if t == mimeType {
			return true
		}
	}
	return false
}
