package service

import (
	"context"
	"errors"

	"entrenador/gym-platform/internal/domain"
	"entrenador/gym-platform/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrPlanNotFound   = errors.New("plan not found")
	ErrPlanNameTaken  = errors.New("a plan with this name already exists")
	ErrPlanValidation = errors.New("plan validation failed")
)

// --- Service Interface ---
type PlanService interface {
	CreatePlan(ctx context.Context, name, description string, durationDays int, price int64, features []string) (*domain.Plan, error)
	GetPlanByID(ctx context.Context, planID primitive.ObjectID) (*domain.Plan, error)
	ListActivePlans(ctx context.Context) ([]domain.Plan, error)
}

// --- Service Implementation ---

// planService implements the PlanService interface.
type planService struct {
	planRepo repository.PlanRepository
}

// NewPlanService creates a new instance of planService.
func NewPlanService(planRepo repository.PlanRepository) PlanService {
	return &planService{
		planRepo: planRepo,
	}
}

// CreatePlan handles the creation of a new plan by an admin. Plans are
// created active; deactivation would be a separate admin action.
func (s *planService) CreatePlan(ctx context.Context, name, description string, durationDays int, price int64, features []string) (*domain.Plan, error) {
	if name == "" || durationDays <= 0 || price < 0 {
		return nil, ErrPlanValidation
	}

	plan := &domain.Plan{
		Name:         name,
		Description:  description,
		DurationDays: durationDays,
		Price:        price,
		Features:     features,
		IsActive:     true,
	}

	planID, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrPlanNameTaken
		}
		return nil, err
	}
	plan.ID = planID
	return plan, nil
}

// GetPlanByID retrieves a single plan.
func (s *planService) GetPlanByID(ctx context.Context, planID primitive.ObjectID) (*domain.Plan, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

// ListActivePlans retrieves all active plans in display order.
func (s *planService) ListActivePlans(ctx context.Context) ([]domain.Plan, error) {
	return s.planRepo.ListActive(ctx)
}
