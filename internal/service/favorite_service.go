package service

import (
	"context"
	"errors"
	"time"

	"entrenador/gym-platform/internal/domain"
	"entrenador/gym-platform/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrAlreadyFavorite  = errors.New("exercise is already a favorite")
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrFavoriteRequired = errors.New("exercise id and name are required")
	ErrLogValidation    = errors.New("sets and reps must be positive numbers")
)

// AddFavoriteInput carries the catalog fields copied onto a bookmark.
type AddFavoriteInput struct {
	ExerciseAPIID string
	ExerciseName  string
	BodyPart      string
	Equipment     string
	Target        string
	GifURL        string
}

// LogExerciseInput carries one set/rep entry for a favorite.
type LogExerciseInput struct {
	Sets     int
	Reps     int
	Weight   *float64
	Duration *int
	Notes    string
	LogDate  *time.Time
}

// --- Service Interface ---
type FavoriteService interface {
	Add(ctx context.Context, userID primitive.ObjectID, input AddFavoriteInput) (*domain.FavoriteExercise, error)
	Remove(ctx context.Context, userID primitive.ObjectID, exerciseAPIID string) error
	List(ctx context.Context, userID primitive.ObjectID) ([]domain.FavoriteExercise, error)
	LogExercise(ctx context.Context, userID primitive.ObjectID, exerciseAPIID string, input LogExerciseInput) (*domain.ExerciseLog, error)
	ListLogs(ctx context.Context, userID primitive.ObjectID, exerciseAPIID string, limit int) ([]domain.ExerciseLog, error)
}

type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
}

// NewFavoriteService creates a new instance of favoriteService.
func NewFavoriteService(favoriteRepo repository.FavoriteRepository) FavoriteService {
	return &favoriteService{favoriteRepo: favoriteRepo}
}

// Add bookmarks a catalog exercise for the user.
func (s *favoriteService) Add(ctx context.Context, userID primitive.ObjectID, input AddFavoriteInput) (*domain.FavoriteExercise, error) {
	if input.ExerciseAPIID == "" || input.ExerciseName == "" {
		return nil, ErrFavoriteRequired
	}

	favorite := &domain.FavoriteExercise{
		UserID:        userID,
		ExerciseAPIID: input.ExerciseAPIID,
		ExerciseName:  input.ExerciseName,
		BodyPart:      input.BodyPart,
		Equipment:     input.Equipment,
		Target:        input.Target,
		GifURL:        input.GifURL,
	}

	favoriteID, err := s.favoriteRepo.Create(ctx, favorite)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyFavorite
		}
		return nil, err
	}
	favorite.ID = favoriteID
	return favorite, nil
}

// Remove deletes a bookmark and every log recorded against it.
func (s *favoriteService) Remove(ctx context.Context, userID primitive.ObjectID, exerciseAPIID string) error {
	favorite, err := s.favoriteRepo.GetByUserAndAPIID(ctx, userID, exerciseAPIID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrFavoriteNotFound
		}
		return err
	}

	if err := s.favoriteRepo.Delete(ctx, favorite.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrFavoriteNotFound
		}
		return err
	}
	return s.favoriteRepo.DeleteLogsByFavoriteIDs(ctx, []primitive.ObjectID{favorite.ID})
}

// List returns the user's bookmarks.
func (s *favoriteService) List(ctx context.Context, userID primitive.ObjectID) ([]domain.FavoriteExercise, error) {
	return s.favoriteRepo.ListByUserID(ctx, userID)
}

// LogExercise records a set/rep entry against one of the user's
// favorites.
func (s *favoriteService) LogExercise(ctx context.Context, userID primitive.ObjectID, exerciseAPIID string, input LogExerciseInput) (*domain.ExerciseLog, error) {
	if input.Sets <= 0 || input.Reps <= 0 {
		return nil, ErrLogValidation
	}

	favorite, err := s.favoriteRepo.GetByUserAndAPIID(ctx, userID, exerciseAPIID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFavoriteNotFound
		}
		return nil, err
	}

	logDate := time.Now().UTC()
	if input.LogDate != nil {
		logDate = input.LogDate.UTC()
	}

	entry := &domain.ExerciseLog{
		FavoriteID: favorite.ID,
		Sets:       input.Sets,
		Reps:       input.Reps,
		Weight:     input.Weight,
		Duration:   input.Duration,
		Notes:      input.Notes,
		LogDate:    logDate,
	}
	entryID, err := s.favoriteRepo.CreateLog(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = entryID
	return entry, nil
}

// ListLogs returns the most recent log entries for one favorite.
func (s *favoriteService) ListLogs(ctx context.Context, userID primitive.ObjectID, exerciseAPIID string, limit int) ([]domain.ExerciseLog, error) {
	favorite, err := s.favoriteRepo.GetByUserAndAPIID(ctx, userID, exerciseAPIID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFavoriteNotFound
		}
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 30
	}
	return s.favoriteRepo.ListLogsByFavoriteID(ctx, favorite.ID, limit)
}
