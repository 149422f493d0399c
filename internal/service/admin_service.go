package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"entrenador/gym-platform/internal/domain"
	"entrenador/gym-platform/internal/repository"
	"entrenador/gym-platform/internal/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrUserValidation     = errors.New("name, username and password are required")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrDocumentNotFound   = errors.New("document not found")
	ErrCommentValidation  = errors.New("comment cannot be empty")
	ErrUploadFailed       = errors.New("failed to store uploaded file")
)

// CreateUserInput carries the fields for admin user creation. PlanID is
// optional; when set, an enrollment is created in the same operation.
type CreateUserInput struct {
	Name      string
	Email     string
	Username  string
	Password  string
	Phone     string
	PlanID    *primitive.ObjectID
	StartDate *time.Time
}

// UpdateUserInput carries the mutable user fields. Nil pointers leave
// the current value untouched.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Username *string
	Password *string
	Phone    *string
}

// EnrollmentSummary is an enrollment with its plan and freshly derived
// status. The stored status column is never reported directly.
type EnrollmentSummary struct {
	ID            primitive.ObjectID      `json:"id"`
	PlanID        primitive.ObjectID      `json:"planId"`
	PlanName      string                  `json:"planName"`
	StartDate     time.Time               `json:"startDate"`
	EndDate       time.Time               `json:"endDate"`
	Status        domain.EnrollmentStatus `json:"status"`
	DaysRemaining int                     `json:"daysRemaining"`
}

// UserOverview is one dashboard row: a client account plus their most
// recent enrollment, if any.
type UserOverview struct {
	ID         primitive.ObjectID `json:"id"`
	Name       string             `json:"name"`
	Email      string             `json:"email,omitempty"`
	Username   string             `json:"username"`
	Phone      string             `json:"phone,omitempty"`
	CreatedAt  time.Time          `json:"createdAt"`
	Enrollment *EnrollmentSummary `json:"enrollment"`
}

// StatusCounts summarizes enrollments by derived status.
type StatusCounts struct {
	Total        int `json:"total"`
	Active       int `json:"active"`
	Expiring     int `json:"expiring"`
	Expired      int `json:"expired"`
	NoEnrollment int `json:"noEnrollment"`
}

// DashboardReport is the admin landing view: summary counts plus every
// client grouped by derived status.
type DashboardReport struct {
	Summary       StatusCounts   `json:"summary"`
	Users         []UserOverview `json:"users"`
	ActiveUsers   []UserOverview `json:"activeUsers"`
	ExpiringUsers []UserOverview `json:"expiringUsers"`
	ExpiredUsers  []UserOverview `json:"expiredUsers"`
}

// UserDetail is a single client with their full enrollment history.
type UserDetail struct {
	User        *domain.User        `json:"user"`
	Enrollments []EnrollmentSummary `json:"enrollments"`
}

// --- Service Interface ---
type AdminService interface {
	// User management
	ListUsers(ctx context.Context, statusFilter domain.EnrollmentStatus) ([]UserOverview, error)
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, *domain.Enrollment, error)
	GetUser(ctx context.Context, userID primitive.ObjectID) (*UserDetail, error)
	UpdateUser(ctx context.Context, userID primitive.ObjectID, input UpdateUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, userID primitive.ObjectID) error

	// Enrollment management
	CreateEnrollment(ctx context.Context, userID, planID primitive.ObjectID, startDate time.Time) (*domain.Enrollment, error)
	ChangeEnrollmentPlan(ctx context.Context, enrollmentID, planID primitive.ObjectID) (*domain.Enrollment, error)

	// Documents and media
	UploadEnrollmentDocument(ctx context.Context, enrollmentID primitive.ObjectID, docType domain.DocumentType, file FileUpload) (*domain.Document, error)
	ListEnrollmentDocuments(ctx context.Context, enrollmentID primitive.ObjectID) ([]domain.Document, error)
	DeleteEnrollmentDocument(ctx context.Context, enrollmentID, documentID primitive.ObjectID) error
	UploadEnrollmentMedia(ctx context.Context, enrollmentID primitive.ObjectID, mediaType domain.MediaType, file FileUpload) (*domain.Media, error)

	// Trainer comments
	AddComment(ctx context.Context, enrollmentID primitive.ObjectID, text string) (*domain.TrainerComment, error)
	GetComments(ctx context.Context, enrollmentID primitive.ObjectID) ([]domain.TrainerComment, error)

	// Read-side aggregation
	Dashboard(ctx context.Context) (*DashboardReport, error)
	Stats(ctx context.Context) (*StatusCounts, error)
}

// --- Service Implementation ---

// adminService implements the AdminService interface.
type adminService struct {
	userRepo       repository.UserRepository
	planRepo       repository.PlanRepository
	enrollmentRepo repository.EnrollmentRepository
	documentRepo   repository.DocumentRepository
	mediaRepo      repository.MediaRepository
	progressRepo   repository.ProgressRepository
	commentRepo    repository.CommentRepository
	favoriteRepo   repository.FavoriteRepository
	videoRepo      repository.UserVideoRepository
	fileStorage    storage.FileStorage
}

// NewAdminService creates a new instance of adminService.
func NewAdminService(
	userRepo repository.UserRepository,
	planRepo repository.PlanRepository,
	enrollmentRepo repository.EnrollmentRepository,
	documentRepo repository.DocumentRepository,
	mediaRepo repository.MediaRepository,
	progressRepo repository.ProgressRepository,
	commentRepo repository.CommentRepository,
	favoriteRepo repository.FavoriteRepository,
	videoRepo repository.UserVideoRepository,
	fileStorage storage.FileStorage,
) AdminService {
	return &adminService{
		userRepo:       userRepo,
		planRepo:       planRepo,
		enrollmentRepo: enrollmentRepo,
		documentRepo:   documentRepo,
		mediaRepo:      mediaRepo,
		progressRepo:   progressRepo,
		commentRepo:    commentRepo,
		favoriteRepo:   favoriteRepo,
		videoRepo:      videoRepo,
		fileStorage:    fileStorage,
	}
}

// === User Management ===

// ListUsers retrieves all client accounts with their latest enrollment,
// optionally filtered by derived status.
func (s *adminService) ListUsers(ctx context.Context, statusFilter domain.EnrollmentStatus) ([]UserOverview, error) {
	overviews, err := s.collectOverviews(ctx)
	if err != nil {
		return nil, err
	}

	if statusFilter == "" {
		return overviews, nil
	}

	filtered := make([]UserOverview, 0, len(overviews))
	for _, o := range overviews {
		if o.Enrollment != nil && o.Enrollment.Status == statusFilter {
			filtered = append(filtered, o)
		}
	}
	return filtered, nil
}

// CreateUser creates a client account, optionally assigning a plan in
// the same operation.
func (s *adminService) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, *domain.Enrollment, error) {
	if input.Name == "" || input.Username == "" || input.Password == "" {
		return nil, nil, ErrUserValidation
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, nil, ErrHashingFailed
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		Username:     strings.ToLower(input.Username),
		Phone:        input.Phone,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, nil, ErrUsernameTaken
		}
		return nil, nil, err
	}
	user.ID = userID
	user.PasswordHash = ""

	var enrollment *domain.Enrollment
	if input.PlanID != nil {
		start := time.Now().UTC()
		if input.StartDate != nil {
			start = input.StartDate.UTC()
		}
		enrollment, err = s.CreateEnrollment(ctx, userID, *input.PlanID, start)
		if err != nil {
			// The account was created; surface the enrollment failure
			// without rolling the user back.
			return user, nil, err
		}
	}

	return user, enrollment, nil
}

// GetUser retrieves one client with their full enrollment history,
// statuses recomputed as of now.
func (s *adminService) GetUser(ctx context.Context, userID primitive.ObjectID) (*UserDetail, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""

	enrollments, err := s.enrollmentRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	summaries := make([]EnrollmentSummary, 0, len(enrollments))
	for i := range enrollments {
		summary, err := s.summarize(ctx, &enrollments[i], now)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *summary)
	}

	return &UserDetail{User: user, Enrollments: summaries}, nil
}

// UpdateUser patches the mutable fields of a client account.
func (s *adminService) UpdateUser(ctx context.Context, userID primitive.ObjectID, input UpdateUserInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if input.Name != nil && *input.Name != "" {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Username != nil && *input.Username != "" {
		user.Username = strings.ToLower(*input.Username)
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Password != nil && *input.Password != "" {
		hash, err := hashPassword(*input.Password)
		if err != nil {
			return nil, ErrHashingFailed
		}
		user.PasswordHash = hash
	}

	err = s.userRepo.Update(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

// DeleteUser removes a client account and cascades to enrollments,
// documents, media, progress, comments, favorites with their logs, and
// uploaded videos. Storage objects are removed best-effort; metadata
// deletion is what guarantees no orphan rows remain.
func (s *adminService) DeleteUser(ctx context.Context, userID primitive.ObjectID) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	enrollmentIDs, err := s.enrollmentRepo.DeleteByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.documentRepo.DeleteByEnrollmentIDs(ctx, enrollmentIDs); err != nil {
		return err
	}
	if err := s.mediaRepo.DeleteByEnrollmentIDs(ctx, enrollmentIDs); err != nil {
		return err
	}
	if err := s.progressRepo.DeleteByEnrollmentIDs(ctx, enrollmentIDs); err != nil {
		return err
	}
	if err := s.commentRepo.DeleteByEnrollmentIDs(ctx, enrollmentIDs); err != nil {
		return err
	}

	favoriteIDs, err := s.favoriteRepo.DeleteByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.favoriteRepo.DeleteLogsByFavoriteIDs(ctx, favoriteIDs); err != nil {
		return err
	}

	videos, err := s.videoRepo.DeleteByUserID(ctx, userID)
	if err != nil {
		return err
	}
	for _, v := range videos {
		if err := s.fileStorage.DeleteObject(ctx, v.ObjectKey); err != nil {
			log.Printf("WARN: could not delete stored video %s: %v", v.ObjectKey, err)
		}
	}

	return s.userRepo.Delete(ctx, userID)
}

// === Enrollment Management ===

// CreateEnrollment assigns a plan to a user. The end date is the start
// date plus the plan's full duration.
func (s *adminService) CreateEnrollment(ctx context.Context, userID, planID primitive.ObjectID, startDate time.Time) (*domain.Enrollment, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	if startDate.IsZero() {
		startDate = now
	}

	enrollment := &domain.Enrollment{
		UserID:    userID,
		PlanID:    planID,
		StartDate: startDate,
		EndDate:   domain.EndDateFor(startDate, plan.DurationDays),
	}
	enrollment.Refresh(now)

	enrollmentID, err := s.enrollmentRepo.Create(ctx, enrollment)
	if err != nil {
		return nil, err
	}
	enrollment.ID = enrollmentID
	return enrollment, nil
}

// ChangeEnrollmentPlan switches an enrollment to a different plan. The
// start date is untouched; the end date becomes startDate plus the new
// plan's duration minus one day, and the cached status is recomputed in
// the same write.
func (s *adminService) ChangeEnrollmentPlan(ctx context.Context, enrollmentID, planID primitive.ObjectID) (*domain.Enrollment, error) {
	enrollment, err := s.enrollmentRepo.GetByID(ctx, enrollmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, err
	}

	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	enrollment.PlanID = plan.ID
	enrollment.EndDate = domain.ReassignedEndDate(enrollment.StartDate, plan.DurationDays)
	enrollment.Refresh(time.Now().UTC())

	err = s.enrollmentRepo.Update(ctx, enrollment)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, err
	}
	return enrollment, nil
}

// === Documents and Media ===

// UploadEnrollmentDocument stores a document file and records its
// metadata. Diet and routine documents replace any previous one of the
// same type; reports accumulate.
func (s *adminService) UploadEnrollmentDocument(ctx context.Context, enrollmentID primitive.ObjectID, docType domain.DocumentType, file FileUpload) (*domain.Document, error) {
	if _, err := s.enrollmentRepo.GetByID(ctx, enrollmentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, err
	}

	field := strings.ToLower(string(docType))
	objectKey := storage.ObjectKey("documents", enrollmentID.Hex(), field, file.Ext())
	url, err := s.fileStorage.Upload(ctx, objectKey, file.ContentType, file.Reader(), file.Size)
	if err != nil {
		return nil, ErrUploadFailed
	}

	if docType.IsSingular() {
		existing, err := s.documentRepo.GetByEnrollmentAndType(ctx, enrollmentID, docType)
		if err == nil {
			oldKey := existing.ObjectKey
			existing.Filename = file.Filename
			existing.URL = url
			existing.ObjectKey = objectKey
			existing.FileSize = file.Size
			if err := s.documentRepo.Update(ctx, existing); err != nil {
				return nil, err
			}
			if oldKey != "" && oldKey != objectKey {
				if err := s.fileStorage.DeleteObject(ctx, oldKey); err != nil {
					log.Printf("WARN: could not delete replaced document %s: %v", oldKey, err)
				}
			}
			return existing, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	doc := &domain.Document{
		EnrollmentID: enrollmentID,
		Type:         docType,
		Filename:     file.Filename,
		URL:          url,
		ObjectKey:    objectKey,
		FileSize:     file.Size,
	}
	docID, err := s.documentRepo.Create(ctx, doc)
	if err != nil {
		return nil, err
	}
	doc.ID = docID
	return doc, nil
}

// ListEnrollmentDocuments retrieves all documents for an enrollment.
func (s *adminService) ListEnrollmentDocuments(ctx context.Context, enrollmentID primitive.ObjectID) ([]domain.Document, error) {
	return s.documentRepo.ListByEnrollmentID(ctx, enrollmentID)
}

// DeleteEnrollmentDocument removes a document and its stored file.
func (s *adminService) DeleteEnrollmentDocument(ctx context.Context, enrollmentID, documentID primitive.ObjectID) error {
	doc, err := s.documentRepo.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDocumentNotFound
		}
		return err
	}
	if doc.EnrollmentID != enrollmentID {
		return ErrDocumentNotFound
	}

	if err := s.documentRepo.Delete(ctx, documentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDocumentNotFound
		}
		return err
	}

	if doc.ObjectKey != "" {
		if err := s.fileStorage.DeleteObject(ctx, doc.ObjectKey); err != nil {
			log.Printf("WARN: could not delete stored document %s: %v", doc.ObjectKey, err)
		}
	}
	return nil
}

// UploadEnrollmentMedia fills one of the enrollment's media slots.
// Each (enrollment, type) pair holds at most one record: re-uploading
// replaces the previous file instead of accumulating duplicates.
func (s *adminService) UploadEnrollmentMedia(ctx context.Context, enrollmentID primitive.ObjectID, mediaType domain.MediaType, file FileUpload) (*domain.Media, error) {
	if _, err := s.enrollmentRepo.GetByID(ctx, enrollmentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, err
	}
	return upsertMedia(ctx, s.mediaRepo, s.fileStorage, enrollmentID, mediaType, file)
}

// === Trainer Comments ===

// AddComment records a trainer note on an enrollment.
func (s *adminService) AddComment(ctx context.Context, enrollmentID primitive.ObjectID, text string) (*domain.TrainerComment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrCommentValidation
	}
	if _, err := s.enrollmentRepo.GetByID(ctx, enrollmentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, err
	}

	comment := &domain.TrainerComment{
		EnrollmentID: enrollmentID,
		Comment:      text,
	}
	commentID, err := s.commentRepo.Create(ctx, comment)
	if err != nil {
		return nil, err
	}
	comment.ID = commentID
	return comment, nil
}

// GetComments retrieves all trainer comments for an enrollment.
func (s *adminService) GetComments(ctx context.Context, enrollmentID primitive.ObjectID) ([]domain.TrainerComment, error) {
	return s.commentRepo.ListByEnrollmentID(ctx, enrollmentID)
}

// === Read-Side Aggregation ===

// Dashboard builds the admin landing view: every client with their
// latest enrollment, grouped by status derived as of now.
func (s *adminService) Dashboard(ctx context.Context) (*DashboardReport, error) {
	overviews, err := s.collectOverviews(ctx)
	if err != nil {
		return nil, err
	}

	report := &DashboardReport{
		Users:         overviews,
		ActiveUsers:   []UserOverview{},
		ExpiringUsers: []UserOverview{},
		ExpiredUsers:  []UserOverview{},
	}
	report.Summary.Total = len(overviews)
	for _, o := range overviews {
		if o.Enrollment == nil {
			report.Summary.NoEnrollment++
			continue
		}
		switch o.Enrollment.Status {
		case domain.StatusActive:
			report.Summary.Active++
			report.ActiveUsers = append(report.ActiveUsers, o)
		case domain.StatusExpiring:
			report.Summary.Expiring++
			report.ExpiringUsers = append(report.ExpiringUsers, o)
		case domain.StatusExpired:
			report.Summary.Expired++
			report.ExpiredUsers = append(report.ExpiredUsers, o)
		}
	}
	return report, nil
}

// Stats returns the dashboard summary counts alone.
func (s *adminService) Stats(ctx context.Context) (*StatusCounts, error) {
	report, err := s.Dashboard(ctx)
	if err != nil {
		return nil, err
	}
	return &report.Summary, nil
}

// collectOverviews loads all client accounts with their latest
// enrollment, recomputing each status from the end date.
func (s *adminService) collectOverviews(ctx context.Context) ([]UserOverview, error) {
	users, err := s.userRepo.ListByRole(ctx, domain.RoleUser)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	overviews := make([]UserOverview, 0, len(users))
	for i := range users {
		user := &users[i]
		overview := UserOverview{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			Username:  user.Username,
			Phone:     user.Phone,
			CreatedAt: user.CreatedAt,
		}

		enrollment, err := s.enrollmentRepo.GetLatestByUserID(ctx, user.ID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		if enrollment != nil {
			summary, err := s.summarize(ctx, enrollment, now)
			if err != nil {
				return nil, err
			}
			overview.Enrollment = summary
		}

		overviews = append(overviews, overview)
	}
	return overviews, nil
}

// summarize joins an enrollment with its plan name and derives the
// status fields as of now.
func (s *adminService) summarize(ctx context.Context, enrollment *domain.Enrollment, now time.Time) (*EnrollmentSummary, error) {
	planName := ""
	plan, err := s.planRepo.GetByID(ctx, enrollment.PlanID)
	if err == nil {
		planName = plan.Name
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	return &EnrollmentSummary{
		ID:            enrollment.ID,
		PlanID:        enrollment.PlanID,
		PlanName:      planName,
		StartDate:     enrollment.StartDate,
		EndDate:       enrollment.EndDate,
		Status:        domain.StatusAt(enrollment.EndDate, now),
		DaysRemaining: domain.DaysRemaining(enrollment.EndDate, now),
	}, nil
}
