package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"entrenador/gym-platform/internal/domain"
	"entrenador/gym-platform/internal/service"

	"github.com/gin-gonic/gin"
)

type stubPlanService struct {
	service.PlanService
	plans []domain.Plan
}

func (s *stubPlanService) ListActivePlans(context.Context) ([]domain.Plan, error) {
	return s.plans, nil
}

func TestListActivePlansIsPublic(t *testing.T) {
	handler := NewPlanHandler(&stubPlanService{plans: []domain.Plan{
		{Name: "Mensual", DurationDays: 30, Price: 4500},
		{Name: "Trimestral", DurationDays: 90, Price: 12000},
	}})
	router := gin.New()
	router.GET("/plans", handler.ListActivePlans)

	req := httptest.NewRequest(http.MethodGet, "/plans", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var plans []domain.Plan
	if err := json.Unmarshal(rec.Body.Bytes(), &plans); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(plans) != 2 || plans[0].Name != "Mensual" {
		t.Errorf("unexpected plan listing: %+v", plans)
	}
}

func TestListActivePlansEmptyIsArray(t *testing.T) {
	handler := NewPlanHandler(&stubPlanService{})
	router := gin.New()
	router.GET("/plans", handler.ListActivePlans)

	req := httptest.NewRequest(http.MethodGet, "/plans", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if body := rec.Body.String(); body != "[]" {
		t.Errorf("body = %q, want empty JSON array", body)
	}
}
