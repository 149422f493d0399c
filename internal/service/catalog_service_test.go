package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"entrenador/gym-platform/internal/catalog"
)

func TestCatalogServiceWithoutCache(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"id":"e1","name":"Squat"}],"total":1,"page":1,"totalPages":1}`))
	}))
	defer srv.Close()

	// A nil cache means every request goes upstream.
	svc := NewCatalogService(catalog.NewClient(srv.URL), nil, time.Hour)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		page, err := svc.ListExercises(ctx, catalog.ExerciseQuery{Page: 1, Limit: 20})
		if err != nil {
			t.Fatalf("ListExercises: %v", err)
		}
		if len(page.Exercises) != 1 {
			t.Errorf("got %d exercises", len(page.Exercises))
		}
	}
	if atomic.LoadInt32(&hits) != 2 {
		t.Errorf("upstream hits = %d, want 2 without a cache", hits)
	}
}

func TestCatalogServiceClampsPaging(t *testing.T) {
	var gotPage, gotLimit string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPage = r.URL.Query().Get("page")
		gotLimit = r.URL.Query().Get("limit")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[],"total":0,"page":1,"totalPages":0}`))
	}))
	defer srv.Close()

	svc := NewCatalogService(catalog.NewClient(srv.URL), nil, time.Hour)
	if _, err := svc.ListExercises(context.Background(), catalog.ExerciseQuery{Page: -3, Limit: 9999}); err != nil {
		t.Fatalf("ListExercises: %v", err)
	}
	if gotPage != "1" {
		t.Errorf("page = %s, want 1", gotPage)
	}
	if gotLimit != "20" {
		t.Errorf("limit = %s, want 20", gotLimit)
	}
}
