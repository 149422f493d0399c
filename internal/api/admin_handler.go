package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"entrenador/gym-platform/internal/domain"
	"entrenador/gym-platform/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// maxDocumentSize bounds admin document uploads (PDFs mostly).
const maxDocumentSize = 25 * 1024 * 1024

// AdminHandler exposes the management surface: users, plans,
// enrollments, documents, media, comments and the dashboard.
type AdminHandler struct {
	adminService service.AdminService
	planService  service.PlanService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService service.AdminService, planService service.PlanService) *AdminHandler {
	return &AdminHandler{adminService: adminService, planService: planService}
}

// --- DTOs ---

type CreateUserRequest struct {
	Name      string     `json:"name" binding:"required"`
	Email     string     `json:"email" binding:"omitempty,email"`
	Username  string     `json:"username" binding:"required,min=3"`
	Password  string     `json:"password" binding:"required,min=6"`
	Phone     string     `json:"phone"`
	PlanID    string     `json:"planId"`
	StartDate *time.Time `json:"startDate"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Username *string `json:"username"`
	Password *string `json:"password" binding:"omitempty,min=6"`
	Phone    *string `json:"phone"`
}

type CreatePlanRequest struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description"`
	DurationDays int      `json:"durationDays" binding:"required,min=1"`
	Price        int64    `json:"price" binding:"min=0"`
	Features     []string `json:"features"`
}

type CreateEnrollmentRequest struct {
	UserID    string     `json:"userId" binding:"required"`
	PlanID    string     `json:"planId" binding:"required"`
	StartDate *time.Time `json:"startDate"`
}

type ChangePlanRequest struct {
	PlanID string `json:"planId" binding:"required"`
}

type AddCommentRequest struct {
	EnrollmentID string `json:"enrollmentId" binding:"required"`
	Comment      string `json:"comment" binding:"required"`
}

type CreateUserResponse struct {
	User       UserResponse       `json:"user"`
	Enrollment *domain.Enrollment `json:"enrollment,omitempty"`
}

// --- User Management ---

// ListUsers godoc
// @Summary List client accounts
// @Description Lists all clients with their latest enrollment; optional ?status=ACTIVE|EXPIRING|EXPIRED filter.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.UserOverview
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	status := domain.EnrollmentStatus(c.Query("status"))
	switch status {
	case "", domain.StatusActive, domain.StatusExpiring, domain.StatusExpired:
	default:
		abortWithError(c, http.StatusBadRequest, "Invalid status filter")
		return
	}

	users, err := h.adminService.ListUsers(c.Request.Context(), status)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list users.")
		return
	}
	c.JSON(http.StatusOK, users)
}

// CreateUser godoc
// @Summary Create a client account
// @Description Creates a client; when planId is set, an enrollment is created in the same call.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body CreateUserRequest true "New client details"
// @Success 201 {object} CreateUserResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 409 {object} gin.H "Username already exists"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /admin/users [post]
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	input := service.CreateUserInput{
		Name:      req.Name,
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
		Phone:     req.Phone,
		StartDate: req.StartDate,
	}
	if req.PlanID != "" {
		planID, err := primitive.ObjectIDFromHex(req.PlanID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid planId format")
			return
		}
		input.PlanID = &planID
	}

	user, enrollment, err := h.adminService.CreateUser(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrUserValidation):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrPlanNotFound):
			// The user may exist already; report the enrollment failure.
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to create user.")
		}
		return
	}

	c.JSON(http.StatusCreated, CreateUserResponse{
		User:       MapUserToResponse(user),
		Enrollment: enrollment,
	})
}

// GetUser godoc
// @Summary Get one client
// @Description Returns the client with their full enrollment history.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} service.UserDetail
// @Failure 404 {object} gin.H "User not found"
// @Router /admin/users/{id} [get]
func (h *AdminHandler) GetUser(c *gin.Context) {
	userID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.adminService.GetUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load user.")
		}
		return
	}
	c.JSON(http.StatusOK, detail)
}

// UpdateUser godoc
// @Summary Update a client account
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param user body UpdateUserRequest true "Fields to change"
// @Success 200 {object} UserResponse
// @Failure 404 {object} gin.H "User not found"
// @Failure 409 {object} gin.H "Username already exists"
// @Router /admin/users/{id} [patch]
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	userID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	user, err := h.adminService.UpdateUser(c.Request.Context(), userID, service.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrUsernameTaken):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update user.")
		}
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// DeleteUser godoc
// @Summary Delete a client account
// @Description Removes the client and everything attached: enrollments, documents, media, progress, comments, favorites and videos.
// @Tags Admin
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 204 "Deleted"
// @Failure 404 {object} gin.H "User not found"
// @Router /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.adminService.DeleteUser(c.Request.Context(), userID); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete user.")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Plan Management ---

// ListPlans godoc
// @Summary List active plans
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Plan
// @Router /admin/plans [get]
func (h *AdminHandler) ListPlans(c *gin.Context) {
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

// CreatePlan godoc
// @Summary Create a membership plan
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param plan body CreatePlanRequest true "Plan details"
// @Success 201 {object} domain.Plan
// @Failure 409 {object} gin.H "Plan name already exists"
// @Router /admin/plans [post]
func (h *AdminHandler) CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	plan, err := h.planService.CreatePlan(c.Request.Context(), req.Name, req.Description, req.DurationDays, req.Price, req.Features)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNameTaken):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrPlanValidation):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to create plan.")
		}
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// --- Enrollment Management ---

// CreateEnrollment godoc
// @Summary Assign a plan to a client
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param enrollment body CreateEnrollmentRequest true "Assignment details"
// @Success 201 {object} domain.Enrollment
// @Failure 404 {object} gin.H "User or plan not found"
// @Router /admin/enrollments [post]
func (h *AdminHandler) CreateEnrollment(c *gin.Context) {
	var req CreateEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid userId format")
		return
	}
	planID, err := primitive.ObjectIDFromHex(req.PlanID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid planId format")
		return
	}

	start := time.Time{}
	if req.StartDate != nil {
		start = *req.StartDate
	}

	enrollment, err := h.adminService.CreateEnrollment(c.Request.Context(), userID, planID, start)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrPlanNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to create enrollment.")
		}
		return
	}
	c.JSON(http.StatusCreated, enrollment)
}

// ChangeEnrollmentPlan godoc
// @Summary Switch an enrollment to another plan
// @Description Keeps the start date; the end date becomes startDate + new duration - 1 day.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Enrollment ID"
// @Param change body ChangePlanRequest true "New plan"
// @Success 200 {object} domain.Enrollment
// @Failure 404 {object} gin.H "Enrollment or plan not found"
// @Router /admin/enrollments/{id} [patch]
func (h *AdminHandler) ChangeEnrollmentPlan(c *gin.Context) {
	enrollmentID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	var req ChangePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	planID, err := primitive.ObjectIDFromHex(req.PlanID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid planId format")
		return
	}

	enrollment, err := h.adminService.ChangeEnrollmentPlan(c.Request.Context(), enrollmentID, planID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEnrollmentNotFound), errors.Is(err, service.ErrPlanNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to change plan.")
		}
		return
	}
	c.JSON(http.StatusOK, enrollment)
}

// --- Documents and Media ---

// UploadDocument godoc
// @Summary Upload a document for an enrollment
// @Description Multipart upload. Diet and routine documents replace the previous one of the same type; reports accumulate.
// @Tags Admin
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Enrollment ID"
// @Param type formData string true "DIET | ROUTINE | REPORT"
// @Param file formData file true "Document file"
// @Success 201 {object} domain.Document
// @Failure 404 {object} gin.H "Enrollment not found"
// @Router /admin/enrollments/{id}/documents [post]
func (h *AdminHandler) UploadDocument(c *gin.Context) {
	enrollmentID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	docType := domain.DocumentType(c.PostForm("type"))
	switch docType {
	case domain.DocumentDiet, domain.DocumentRoutine, domain.DocumentReport:
	default:
		abortWithError(c, http.StatusBadRequest, "type must be DIET, ROUTINE or REPORT")
		return
	}

	file, err := readUploadedFile(c, "file", maxDocumentSize)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := h.adminService.UploadEnrollmentDocument(c.Request.Context(), enrollmentID, docType, file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEnrollmentNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to upload document.")
		}
		return
	}
	c.JSON(http.StatusCreated, doc)
}

// ListDocuments godoc
// @Summary List an enrollment's documents
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Enrollment ID"
// @Success 200 {array} domain.Document
// @Router /admin/enrollments/{id}/documents [get]
func (h *AdminHandler) ListDocuments(c *gin.Context) {
	enrollmentID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	docs, err := h.adminService.ListEnrollmentDocuments(c.Request.Context(), enrollmentID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list documents.")
		return
	}
	if docs == nil {
		docs = []domain.Document{}
	}
	c.JSON(http.StatusOK, docs)
}

// DeleteDocument godoc
// @Summary Delete a document
// @Tags Admin
// @Security BearerAuth
// @Param id path string true "Enrollment ID"
// @Param docId path string true "Document ID"
// @Success 204 "Deleted"
// @Failure 404 {object} gin.H "Document not found"
// @Router /admin/enrollments/{id}/documents/{docId} [delete]
func (h *AdminHandler) DeleteDocument(c *gin.Context) {
	enrollmentID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	documentID, ok := parseObjectIDParam(c, "docId")
	if !ok {
		return
	}

	if err := h.adminService.DeleteEnrollmentDocument(c.Request.Context(), enrollmentID, documentID); err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete document.")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadMedia godoc
// @Summary Upload media for an enrollment slot
// @Description Fills one media slot (INITIAL_PHOTO, DAY_1_VIDEO, FINAL_VIDEO); re-uploading replaces the previous file.
// @Tags Admin
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Enrollment ID"
// @Param type formData string true "INITIAL_PHOTO | DAY_1_VIDEO | FINAL_VIDEO"
// @Param file formData file true "Media file"
// @Success 201 {object} domain.Media
// @Failure 404 {object} gin.H "Enrollment not found"
// @Router /admin/enrollments/{id}/media [post]
func (h *AdminHandler) UploadMedia(c *gin.Context) {
	enrollmentID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	mediaType := domain.MediaType(c.PostForm("type"))
	switch mediaType {
	case domain.MediaInitialPhoto, domain.MediaDay1Video, domain.MediaFinalVideo:
	default:
		abortWithError(c, http.StatusBadRequest, "type must be INITIAL_PHOTO, DAY_1_VIDEO or FINAL_VIDEO")
		return
	}

	file, err := readUploadedFile(c, "file", domain.MaxVideoSize)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	media, err := h.adminService.UploadEnrollmentMedia(c.Request.Context(), enrollmentID, mediaType, file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEnrollmentNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to upload media.")
		}
		return
	}
	c.JSON(http.StatusCreated, media)
}

// --- Trainer Comments ---

// AddComment godoc
// @Summary Leave a trainer comment on an enrollment
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param comment body AddCommentRequest true "Comment"
// @Success 201 {object} domain.TrainerComment
// @Failure 404 {object} gin.H "Enrollment not found"
// @Router /admin/comments [post]
func (h *AdminHandler) AddComment(c *gin.Context) {
	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	enrollmentID, err := primitive.ObjectIDFromHex(req.EnrollmentID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid enrollmentId format")
		return
	}

	comment, err := h.adminService.AddComment(c.Request.Context(), enrollmentID, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEnrollmentNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrCommentValidation):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to add comment.")
		}
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// GetComments godoc
// @Summary List trainer comments for an enrollment
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param enrollmentId query string true "Enrollment ID"
// @Success 200 {array} domain.TrainerComment
// @Router /admin/comments [get]
func (h *AdminHandler) GetComments(c *gin.Context) {
	enrollmentID, err := primitive.ObjectIDFromHex(c.Query("enrollmentId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid enrollmentId format")
		return
	}

	comments, err := h.adminService.GetComments(c.Request.Context(), enrollmentID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list comments.")
		return
	}
	if comments == nil {
		comments = []domain.TrainerComment{}
	}
	c.JSON(http.StatusOK, comments)
}

// --- Dashboard ---

// Dashboard godoc
// @Summary Admin dashboard
// @Description All clients with derived enrollment status, grouped, plus summary counts.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.DashboardReport
// @Router /admin/dashboard [get]
func (h *AdminHandler) Dashboard(c *gin.Context) {
	report, err := h.adminService.Dashboard(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to build dashboard.")
		return
	}
	c.JSON(http.StatusOK, report)
}

// Stats godoc
// @Summary Enrollment status counts
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.StatusCounts
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.Stats(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute stats.")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// readUploadedFile buffers one multipart file into a service.FileUpload.
func readUploadedFile(c *gin.Context, field string, maxSize int64) (service.FileUpload, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return service.FileUpload{}, fmt.Errorf("missing %s upload", field)
	}
	if header.Size > maxSize {
		return service.FileUpload{}, fmt.Errorf("file exceeds the %d byte limit", maxSize)
	}

	f, err := header.Open()
	if err != nil {
		return service.FileUpload{}, errors.New("could not read uploaded file")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxSize+1))
	if err != nil {
		return service.FileUpload{}, errors.New("could not read uploaded file")
	}
	if int64(len(data)) > maxSize {
		return service.FileUpload{}, fmt.Errorf("file exceeds the %d byte limit", maxSize)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	return service.FileUpload{
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        int64(len(data)),
		Data:        data,
	}, nil
}
