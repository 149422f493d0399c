package api

import (
	"net/http"

	"entrenador/gym-platform/internal/domain"
	"entrenador/gym-platform/internal/service"

	"github.com/gin-gonic/gin"
)

// PlanHandler serves the public plan catalog.
type PlanHandler struct {
	planService service.PlanService
}

func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// ListActivePlans godoc
// @Summary List active membership plans
// @Description Public listing of the plans currently offered, in display order.
// @Tags Plans
// @Produce json
// @Success 200 {array} domain.Plan
// @Router /plans [get]
func (h *PlanHandler) ListActivePlans(c *gin.Context) {
	plans, err := h.planService.ListActivePlans(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list plans.")
		return
	}
	if plans == nil {
		plans = []domain.Plan{}
	}
	c.JSON(http.StatusOK, plans)
}
