package api

import (
	"errors"
	"net/http"
	"strconv"

	"entrenador/gym-platform/internal/catalog"
	"entrenador/gym-platform/internal/domain"
	"entrenador/gym-platform/internal/service"

	"github.com/gin-gonic/gin"
)

// CatalogHandler proxies the external exercise catalog and manages the
// user's favorites and exercise logs.
type CatalogHandler struct {
	catalogService  service.CatalogService
	favoriteService service.FavoriteService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService service.CatalogService, favoriteService service.FavoriteService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, favoriteService: favoriteService}
}

// --- DTOs ---

type AddFavoriteRequest struct {
	ExerciseAPIID string `json:"exerciseApiId" binding:"required"`
	ExerciseName  string `json:"exerciseName" binding:"required"`
	BodyPart      string `json:"bodyPart"`
	Equipment     string `json:"equipment"`
	Target        string `json:"target"`
	GifURL        string `json:"gifUrl"`
}

type LogExerciseRequest struct {
	Sets     int      `json:"sets" binding:"required,min=1"`
	Reps     int      `json:"reps" binding:"required,min=1"`
	Weight   *float64 `json:"weight" binding:"omitempty,gt=0"`
	Duration *int     `json:"duration" binding:"omitempty,gt=0"`
	Notes    string   `json:"notes"`
}

// --- Catalog Proxy ---

// ListExercises godoc
// @Summary Browse the exercise catalog
// @Description Proxies the external catalog with paging and filters; responses are cached.
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param search query string false "Name search"
// @Param difficulty query string false "Difficulty filter"
// @Param muscleId query string false "Muscle group filter"
// @Param equipmentId query string false "Equipment filter"
// @Success 200 {object} domain.CatalogPage
// @Failure 500 {object} gin.H "Catalog unavailable"
// @Router /exercises [get]
func (h *CatalogHandler) ListExercises(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	result, err := h.catalogService.ListExercises(c.Request.Context(), catalog.ExerciseQuery{
		Page:        page,
		Limit:       limit,
		Search:      c.Query("search"),
		Difficulty:  c.Query("difficulty"),
		MuscleID:    c.Query("muscleId"),
		EquipmentID: c.Query("equipmentId"),
		SortBy:      c.Query("sortBy"),
		SortOrder:   c.Query("sortOrder"),
	})
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Exercise catalog is unavailable.")
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListMuscles godoc
// @Summary List muscle groups
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.CatalogMuscle
// @Failure 500 {object} gin.H "Catalog unavailable"
// @Router /muscles [get]
func (h *CatalogHandler) ListMuscles(c *gin.Context) {
	muscles, err := h.catalogService.ListMuscles(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Exercise catalog is unavailable.")
		return
	}
	if muscles == nil {
		muscles = []domain.CatalogMuscle{}
	}
	c.JSON(http.StatusOK, muscles)
}

// ListEquipment godoc
// @Summary List equipment
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.CatalogEquipment
// @Failure 500 {object} gin.H "Catalog unavailable"
// @Router /equipment [get]
func (h *CatalogHandler) ListEquipment(c *gin.Context) {
	equipment, err := h.catalogService.ListEquipment(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Exercise catalog is unavailable.")
		return
	}
	if equipment == nil {
		equipment = []domain.CatalogEquipment{}
	}
	c.JSON(http.StatusOK, equipment)
}

// --- Favorites ---

// ListFavorites godoc
// @Summary List favorite exercises
// @Tags Favorites
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.FavoriteExercise
// @Router /favorites [get]
func (h *CatalogHandler) ListFavorites(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	favorites, err := h.favoriteService.List(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list favorites.")
		return
	}
	if favorites == nil {
		favorites = []domain.FavoriteExercise{}
	}
	c.JSON(http.StatusOK, favorites)
}

// AddFavorite godoc
// @Summary Bookmark a catalog exercise
// @Tags Favorites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param favorite body AddFavoriteRequest true "Catalog exercise fields"
// @Success 201 {object} domain.FavoriteExercise
// @Failure 409 {object} gin.H "Already a favorite"
// @Router /favorites [post]
func (h *CatalogHandler) AddFavorite(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	var req AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	favorite, err := h.favoriteService.Add(c.Request.Context(), userID, service.AddFavoriteInput{
		ExerciseAPIID: req.ExerciseAPIID,
		ExerciseName:  req.ExerciseName,
		BodyPart:      req.BodyPart,
		Equipment:     req.Equipment,
		Target:        req.Target,
		GifURL:        req.GifURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyFavorite):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrFavoriteRequired):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to add favorite.")
		}
		return
	}
	c.JSON(http.StatusCreated, favorite)
}

// RemoveFavorite godoc
// @Summary Remove a favorite and its logs
// @Tags Favorites
// @Security BearerAuth
// @Param exerciseApiId path string true "Catalog exercise ID"
// @Success 204 "Removed"
// @Failure 404 {object} gin.H "Favorite not found"
// @Router /favorites/{exerciseApiId} [delete]
func (h *CatalogHandler) RemoveFavorite(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	if err := h.favoriteService.Remove(c.Request.Context(), userID, c.Param("exerciseApiId")); err != nil {
		if errors.Is(err, service.ErrFavoriteNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to remove favorite.")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// LogExercise godoc
// @Summary Record sets and reps for a favorite
// @Tags Favorites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exerciseApiId path string true "Catalog exercise ID"
// @Param log body LogExerciseRequest true "Set/rep entry"
// @Success 201 {object} domain.ExerciseLog
// @Failure 404 {object} gin.H "Favorite not found"
// @Router /favorites/{exerciseApiId}/logs [post]
func (h *CatalogHandler) LogExercise(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	var req LogExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	entry, err := h.favoriteService.LogExercise(c.Request.Context(), userID, c.Param("exerciseApiId"), service.LogExerciseInput{
		Sets:     req.Sets,
		Reps:     req.Reps,
		Weight:   req.Weight,
		Duration: req.Duration,
		Notes:    req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFavoriteNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrLogValidation):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to record log.")
		}
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ListLogs godoc
// @Summary List recent logs for a favorite
// @Tags Favorites
// @Produce json
// @Security BearerAuth
// @Param exerciseApiId path string true "Catalog exercise ID"
// @Param limit query int false "Max entries (default 30)"
// @Success 200 {array} domain.ExerciseLog
// @Failure 404 {object} gin.H "Favorite not found"
// @Router /favorites/{exerciseApiId}/logs [get]
func (h *CatalogHandler) ListLogs(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))
	logs, err := h.favoriteService.ListLogs(c.Request.Context(), userID, c.Param("exerciseApiId"), limit)
	if err != nil {
		if errors.Is(err, service.ErrFavoriteNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to list logs.")
		}
		return
	}
	if logs == nil {
		logs = []domain.ExerciseLog{}
	}
	c.JSON(http.StatusOK, logs)
}
