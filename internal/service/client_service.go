package service

import (
	"context"
	"errors"
	"fmt"
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
	ErrNoEnrollment       = errors.New("user has no enrollment")
	ErrEnrollmentExpired  = errors.New("enrollment has expired")
	ErrProgressDuplicate  = errors.New("progress already recorded today")
	ErrMediaTypeForbidden = errors.New("media type cannot be uploaded by clients")
	ErrVideoNotFound      = errors.New("video not found")
	ErrVideoTooLarge      = errors.New("video exceeds the maximum allowed size")
	ErrVideoUnsupported   = errors.New("unsupported video format")
	ErrProgressValidation = errors.New("weight must be a positive number")
)

// ProgressTooEarlyError is returned when a client tries to record a
// snapshot outside the review cadence. NextReviewDay tells the client
// when the next window opens.
type ProgressTooEarlyError struct {
	DayNumber     int
	NextReviewDay int
}

func (e *ProgressTooEarlyError) Error() string {
	return fmt.Sprintf("progress can next be recorded on day %d", e.NextReviewDay)
}

// RecordProgressInput carries one body-metric snapshot from the client.
type RecordProgressInput struct {
	Weight       float64
	BodyFat      *float64
	MuscleMass   *float64
	Measurements string
	Notes        string
}

// ClientDashboard is everything the client landing view needs in one
// payload.
type ClientDashboard struct {
	User          *domain.User            `json:"user"`
	Plan          *domain.Plan            `json:"plan"`
	Enrollment    *domain.Enrollment      `json:"enrollment"`
	Status        domain.EnrollmentStatus `json:"status"`
	DaysRemaining int                     `json:"daysRemaining"`
	DaysElapsed   int                     `json:"daysElapsed"`
	CanLogToday   bool                    `json:"canLogToday"`
	NextReviewDay int                     `json:"nextReviewDay"`
	Diet          *domain.Document        `json:"diet"`
	Routine       *domain.Document        `json:"routine"`
	Reports       []domain.Document       `json:"reports"`
	Media         []domain.Media          `json:"media"`
	Progress      []domain.Progress       `json:"progress"`
	Comments      []domain.TrainerComment `json:"comments"`
}

// --- Service Interface ---
type ClientService interface {
	GetDashboard(ctx context.Context, userID primitive.ObjectID) (*ClientDashboard, error)
	ListProgress(ctx context.Context, userID primitive.ObjectID) ([]domain.Progress, error)
	RecordProgress(ctx context.Context, userID primitive.ObjectID, input RecordProgressInput) (*domain.Progress, error)
	UploadMedia(ctx context.Context, userID primitive.ObjectID, mediaType domain.MediaType, file FileUpload) (*domain.Media, error)
	DocumentDownloadURL(ctx context.Context, userID, documentID primitive.ObjectID) (string, error)

	UploadVideo(ctx context.Context, userID primitive.ObjectID, title, description string, file FileUpload) (*domain.UserVideo, error)
	ListVideos(ctx context.Context, userID primitive.ObjectID) ([]domain.UserVideo, error)
	DeleteVideo(ctx context.Context, userID, videoID primitive.ObjectID) error
}

// clientService implements the ClientService interface.
type clientService struct {
	userRepo       repository.UserRepository
	planRepo       repository.PlanRepository
	enrollmentRepo repository.EnrollmentRepository
	documentRepo   repository.DocumentRepository
	mediaRepo      repository.MediaRepository
	progressRepo   repository.ProgressRepository
	commentRepo    repository.CommentRepository
	videoRepo      repository.UserVideoRepository
	fileStorage    storage.FileStorage
}

// NewClientService creates a new instance of clientService.
func NewClientService(
	userRepo repository.UserRepository,
	planRepo repository.PlanRepository,
	enrollmentRepo repository.EnrollmentRepository,
	documentRepo repository.DocumentRepository,
	mediaRepo repository.MediaRepository,
	progressRepo repository.ProgressRepository,
	commentRepo repository.CommentRepository,
	videoRepo repository.UserVideoRepository,
	fileStorage storage.FileStorage,
) ClientService {
	return &clientService{
		userRepo:       userRepo,
		planRepo:       planRepo,
		enrollmentRepo: enrollmentRepo,
		documentRepo:   documentRepo,
		mediaRepo:      mediaRepo,
		progressRepo:   progressRepo,
		commentRepo:    commentRepo,
		videoRepo:      videoRepo,
		fileStorage:    fileStorage,
	}
}

// GetDashboard assembles the client landing view. An expired
// enrollment still renders, so clients can see what lapsed; other
// client operations reject it.
func (s *clientService) GetDashboard(ctx context.Context, userID primitive.ObjectID) (*ClientDashboard, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""

	enrollment, err := s.enrollmentRepo.GetLatestByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoEnrollment
		}
		return nil, err
	}

	now := time.Now().UTC()
	enrollment.Refresh(now)

	plan, err := s.planRepo.GetByID(ctx, enrollment.PlanID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	docs, err := s.documentRepo.ListByEnrollmentID(ctx, enrollment.ID)
	if err != nil {
		return nil, err
	}
	media, err := s.mediaRepo.ListByEnrollmentID(ctx, enrollment.ID)
	if err != nil {
		return nil, err
	}
	if media == nil {
		media = []domain.Media{}
	}
	comments, err := s.commentRepo.ListByEnrollmentID(ctx, enrollment.ID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []domain.TrainerComment{}
	}
	progress, err := s.progressRepo.ListByEnrollmentID(ctx, enrollment.ID)
	if err != nil {
		return nil, err
	}
	if progress == nil {
		progress = []domain.Progress{}
	}

	dash := &ClientDashboard{
		User:          user,
		Plan:          plan,
		Enrollment:    enrollment,
		Status:        enrollment.Status,
		DaysRemaining: enrollment.DaysRemaining,
		DaysElapsed:   domain.DaysSinceStart(enrollment.StartDate, now),
		Reports:       []domain.Document{},
		Media:         media,
		Progress:      progress,
		Comments:      comments,
	}
	if plan != nil {
		dash.CanLogToday = domain.CanRecordProgress(dash.DaysElapsed, plan.DurationDays)
	}
	dash.NextReviewDay = domain.NextReviewDay(dash.DaysElapsed)

	for i := range docs {
		switch docs[i].Type {
		case domain.DocumentDiet:
			dash.Diet = &docs[i]
		case domain.DocumentRoutine:
			dash.Routine = &docs[i]
		case domain.DocumentReport:
			dash.Reports = append(dash.Reports, docs[i])
		}
	}
	return dash, nil
}

// ListProgress returns the client's progress history for their latest
// enrollment.
func (s *clientService) ListProgress(ctx context.Context, userID primitive.ObjectID) ([]domain.Progress, error) {
	enrollment, err := s.currentEnrollment(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrEnrollmentExpired) {
			// History stays readable after expiry.
			enrollment, err = s.enrollmentRepo.GetLatestByUserID(ctx, userID)
		}
		if err != nil {
			return nil, err
		}
	}
	return s.progressRepo.ListByEnrollmentID(ctx, enrollment.ID)
}

// RecordProgress appends a body-metric snapshot if today falls on the
// plan's review cadence and no snapshot was recorded yet today.
func (s *clientService) RecordProgress(ctx context.Context, userID primitive.ObjectID, input RecordProgressInput) (*domain.Progress, error) {
	if input.Weight <= 0 {
		return nil, ErrProgressValidation
	}

	enrollment, err := s.currentEnrollment(ctx, userID)
	if err != nil {
		return nil, err
	}

	plan, err := s.planRepo.GetByID(ctx, enrollment.PlanID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	dayNumber := domain.DaysSinceStart(enrollment.StartDate, now)
	if !domain.CanRecordProgress(dayNumber, plan.DurationDays) {
		return nil, &ProgressTooEarlyError{
			DayNumber:     dayNumber,
			NextReviewDay: domain.NextReviewDay(dayNumber),
		}
	}

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	exists, err := s.progressRepo.ExistsInRange(ctx, enrollment.ID, startOfDay, startOfDay.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrProgressDuplicate
	}

	progress := &domain.Progress{
		EnrollmentID: enrollment.ID,
		RecordDate:   now,
		DayNumber:    dayNumber,
		Weight:       input.Weight,
		BodyFat:      input.BodyFat,
		MuscleMass:   input.MuscleMass,
		Measurements: input.Measurements,
		Notes:        input.Notes,
	}
	progressID, err := s.progressRepo.Create(ctx, progress)
	if err != nil {
		return nil, err
	}
	progress.ID = progressID
	return progress, nil
}

// UploadMedia lets the client fill their own day-1 or final video slot.
// The initial photo slot stays admin-only.
func (s *clientService) UploadMedia(ctx context.Context, userID primitive.ObjectID, mediaType domain.MediaType, file FileUpload) (*domain.Media, error) {
	if !mediaType.ClientUploadable() {
		return nil, ErrMediaTypeForbidden
	}
	enrollment, err := s.currentEnrollment(ctx, userID)
	if err != nil {
		return nil, err
	}
	return upsertMedia(ctx, s.mediaRepo, s.fileStorage, enrollment.ID, mediaType, file)
}

// DocumentDownloadURL issues a short-lived download link for one of
// the client's own documents.
func (s *clientService) DocumentDownloadURL(ctx context.Context, userID, documentID primitive.ObjectID) (string, error) {
	doc, err := s.documentRepo.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrDocumentNotFound
		}
		return "", err
	}

	enrollment, err := s.enrollmentRepo.GetByID(ctx, doc.EnrollmentID)
	if err != nil {
		return "", ErrDocumentNotFound
	}
	if enrollment.UserID != userID {
		return "", ErrDocumentNotFound
	}

	return s.fileStorage.GeneratePresignedDownloadURL(ctx, doc.ObjectKey, 15*time.Minute)
}

// UploadVideo stores a video on the user's own account after checking
// format and size.
func (s *clientService) UploadVideo(ctx context.Context, userID primitive.ObjectID, title, description string, file FileUpload) (*domain.UserVideo, error) {
	if !domain.IsAllowedVideoMimeType(file.ContentType) {
		return nil, ErrVideoUnsupported
	}
	if file.Size > domain.MaxVideoSize {
		return nil, ErrVideoTooLarge
	}
	if strings.TrimSpace(title) == "" {
		title = file.Filename
	}

	objectKey := storage.ObjectKey("videos", userID.Hex(), "video", file.Ext())
	url, err := s.fileStorage.Upload(ctx, objectKey, file.ContentType, file.Reader(), file.Size)
	if err != nil {
		return nil, ErrUploadFailed
	}

	video := &domain.UserVideo{
		UserID:      userID,
		FileName:    file.Filename,
		ObjectKey:   objectKey,
		URL:         url,
		FileSize:    file.Size,
		MimeType:    file.ContentType,
		Title:       title,
		Description: description,
		IsVisible:   true,
	}
	videoID, err := s.videoRepo.Create(ctx, video)
	if err != nil {
		return nil, err
	}
	video.ID = videoID
	return video, nil
}

// ListVideos returns the user's visible videos.
func (s *clientService) ListVideos(ctx context.Context, userID primitive.ObjectID) ([]domain.UserVideo, error) {
	return s.videoRepo.ListVisibleByUserID(ctx, userID)
}

// DeleteVideo removes one of the user's own videos and its stored file.
func (s *clientService) DeleteVideo(ctx context.Context, userID, videoID primitive.ObjectID) error {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrVideoNotFound
		}
		return err
	}
	if video.UserID != userID {
		return ErrVideoNotFound
	}

	if err := s.videoRepo.Delete(ctx, videoID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrVideoNotFound
		}
		return err
	}

	if err := s.fileStorage.DeleteObject(ctx, video.ObjectKey); err != nil {
		log.Printf("WARN: could not delete stored video %s: %v", video.ObjectKey, err)
	}
	return nil
}

// currentEnrollment loads the user's latest enrollment and rejects it
// once expired.
func (s *clientService) currentEnrollment(ctx context.Context, userID primitive.ObjectID) (*domain.Enrollment, error) {
	enrollment, err := s.enrollmentRepo.GetLatestByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoEnrollment
		}
		return nil, err
	}
	now := time.Now().UTC()
	if !enrollment.IsCurrent(now) {
		return nil, ErrEnrollmentExpired
	}
	enrollment.Refresh(now)
	return enrollment, nil
}
