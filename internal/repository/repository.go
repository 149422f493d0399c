package repository

import (
	"context"
	"time"

	"entrenador/gym-platform/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate record")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// PlanRepository defines the interface for interacting with plan data.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error)
	ListActive(ctx context.Context) ([]domain.Plan, error)
}

// EnrollmentRepository defines the interface for interacting with
// enrollment data.
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *domain.Enrollment) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Enrollment, error)
	GetLatestByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Enrollment, error)
	ListByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Enrollment, error)
	Update(ctx context.Context, enrollment *domain.Enrollment) error
	// DeleteByUserID removes every enrollment belonging to the user and
	// returns the removed IDs so dependent records can be cascaded.
	DeleteByUserID(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error)
}

// DocumentRepository defines the interface for interacting with
// enrollment document metadata.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Document, error)
	GetByEnrollmentAndType(ctx context.Context, enrollmentID primitive.ObjectID, docType domain.DocumentType) (*domain.Document, error)
	ListByEnrollmentID(ctx context.Context, enrollmentID primitive.ObjectID) ([]domain.Document, error)
	Update(ctx context.Context, doc *domain.Document) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByEnrollmentIDs(ctx context.Context, enrollmentIDs []primitive.ObjectID) error
}

// MediaRepository defines the interface for interacting with enrollment
// media slots.
type MediaRepository interface {
	Create(ctx context.Context, media *domain.Media) (primitive.ObjectID, error)
	GetByEnrollmentAndType(ctx context.Context, enrollmentID primitive.ObjectID, mediaType domain.MediaType) (*domain.Media, error)
	ListByEnrollmentID(ctx context.Context, enrollmentID primitive.ObjectID) ([]domain.Media, error)
	Update(ctx context.Context, media *domain.Media) error
	DeleteByEnrollmentIDs(ctx context.Context, enrollmentIDs []primitive.ObjectID) error
}

// ProgressRepository defines the interface for interacting with
// progress snapshots.
type ProgressRepository interface {
	Create(ctx context.Context, progress *domain.Progress) (primitive.ObjectID, error)
	ListByEnrollmentID(ctx context.Context, enrollmentID primitive.ObjectID) ([]domain.Progress, error)
	// ExistsInRange reports whether a snapshot exists for the enrollment
	// with a record date in [from, to).
	ExistsInRange(ctx context.Context, enrollmentID primitive.ObjectID, from, to time.Time) (bool, error)
	DeleteByEnrollmentIDs(ctx context.Context, enrollmentIDs []primitive.ObjectID) error
}

// CommentRepository defines the interface for interacting with trainer
// comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.TrainerComment) (primitive.ObjectID, error)
	ListByEnrollmentID(ctx context.Context, enrollmentID primitive.ObjectID) ([]domain.TrainerComment, error)
	DeleteByEnrollmentIDs(ctx context.Context, enrollmentIDs []primitive.ObjectID) error
}

// FavoriteRepository defines the interface for interacting with
// favorite exercises and their set/rep logs.
type FavoriteRepository interface {
	Create(ctx context.Context, favorite *domain.FavoriteExercise) (primitive.ObjectID, error)
	GetByUserAndAPIID(ctx context.Context, userID primitive.ObjectID, exerciseAPIID string) (*domain.FavoriteExercise, error)
	ListByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.FavoriteExercise, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByUserID(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error)

	CreateLog(ctx context.Context, log *domain.ExerciseLog) (primitive.ObjectID, error)
	ListLogsByFavoriteID(ctx context.Context, favoriteID primitive.ObjectID, limit int) ([]domain.ExerciseLog, error)
	DeleteLogsByFavoriteIDs(ctx context.Context, favoriteIDs []primitive.ObjectID) error
}

// UserVideoRepository defines the interface for interacting with user
// video metadata.
type UserVideoRepository interface {
	Create(ctx context.Context, video *domain.UserVideo) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.UserVideo, error)
	ListVisibleByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.UserVideo, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.UserVideo, error)
}
