package service

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAddFavoriteDuplicate(t *testing.T) {
	repo := newFakeFavoriteRepo()
	svc := NewFavoriteService(repo)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	input := AddFavoriteInput{ExerciseAPIID: "ex1", ExerciseName: "Squat", Target: "quads"}
	if _, err := svc.Add(ctx, userID, input); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := svc.Add(ctx, userID, input); !errors.Is(err, ErrAlreadyFavorite) {
		t.Fatalf("err = %v, want ErrAlreadyFavorite", err)
	}

	// The same exercise is still addable by a different user.
	if _, err := svc.Add(ctx, primitive.NewObjectID(), input); err != nil {
		t.Fatalf("Add for other user: %v", err)
	}
}

func TestRemoveFavoriteCascadesLogs(t *testing.T) {
	repo := newFakeFavoriteRepo()
	svc := NewFavoriteService(repo)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	if _, err := svc.Add(ctx, userID, AddFavoriteInput{ExerciseAPIID: "ex1", ExerciseName: "Squat"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := svc.LogExercise(ctx, userID, "ex1", LogExerciseInput{Sets: 3, Reps: 10}); err != nil {
		t.Fatalf("LogExercise: %v", err)
	}
	if _, err := svc.LogExercise(ctx, userID, "ex1", LogExerciseInput{Sets: 4, Reps: 8}); err != nil {
		t.Fatalf("LogExercise: %v", err)
	}

	if err := svc.Remove(ctx, userID, "ex1"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if len(repo.favorites) != 0 {
		t.Error("favorite survived removal")
	}
	if len(repo.logs) != 0 {
		t.Error("logs survived favorite removal")
	}

	if err := svc.Remove(ctx, userID, "ex1"); !errors.Is(err, ErrFavoriteNotFound) {
		t.Fatalf("second remove err = %v, want ErrFavoriteNotFound", err)
	}
}

func TestLogExerciseValidation(t *testing.T) {
	repo := newFakeFavoriteRepo()
	svc := NewFavoriteService(repo)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	if _, err := svc.LogExercise(ctx, userID, "ex1", LogExerciseInput{Sets: 0, Reps: 10}); !errors.Is(err, ErrLogValidation) {
		t.Fatalf("err = %v, want ErrLogValidation", err)
	}
	if _, err := svc.LogExercise(ctx, userID, "missing", LogExerciseInput{Sets: 3, Reps: 10}); !errors.Is(err, ErrFavoriteNotFound) {
		t.Fatalf("err = %v, want ErrFavoriteNotFound", err)
	}
}

func TestListLogsLimit(t *testing.T) {
	repo := newFakeFavoriteRepo()
	svc := NewFavoriteService(repo)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	if _, err := svc.Add(ctx, userID, AddFavoriteInput{ExerciseAPIID: "ex1", ExerciseName: "Squat"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	for i := 0; i < 5; i++ {
		if _, err := svc.LogExercise(ctx, userID, "ex1", LogExerciseInput{Sets: 3, Reps: 10}); err != nil {
			t.Fatalf("LogExercise %d: %v", i, err)
		}
	}

	logs, err := svc.ListLogs(ctx, userID, "ex1", 3)
	if err != nil {
		t.Fatalf("ListLogs: %v", err)
	}
	if len(logs) != 3 {
		t.Errorf("got %d logs, want 3", len(logs))
	}
}
