package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"entrenador/gym-platform/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type clientFixture struct {
	svc         ClientService
	users       *fakeUserRepo
	plans       *fakePlanRepo
	enrollments *fakeEnrollmentRepo
	documents   *fakeDocumentRepo
	media       *fakeMediaRepo
	progress    *fakeProgressRepo
	comments    *fakeCommentRepo
	videos      *fakeVideoRepo
	storage     *fakeStorage
}

func newClientFixture() *clientFixture {
	f := &clientFixture{
		users:       newFakeUserRepo(),
		plans:       newFakePlanRepo(),
		enrollments: newFakeEnrollmentRepo(),
		documents:   newFakeDocumentRepo(),
		media:       newFakeMediaRepo(),
		progress:    newFakeProgressRepo(),
		comments:    newFakeCommentRepo(),
		videos:      newFakeVideoRepo(),
		storage:     newFakeStorage(),
	}
	f.svc = NewClientService(f.users, f.plans, f.enrollments, f.documents, f.media, f.progress, f.comments, f.videos, f.storage)
	return f
}

// seedClient creates a user with a 30-day enrollment whose start date
// is daysAgo days in the past.
func (f *clientFixture) seedClient(t *testing.T, daysAgo int) (primitive.ObjectID, primitive.ObjectID) {
	t.Helper()
	ctx := context.Background()

	planID := f.plans.addPlan("Mensual", 30)
	userID, err := f.users.Create(ctx, &domain.User{Name: "Ana", Username: "ana", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	start := time.Now().UTC().AddDate(0, 0, -daysAgo)
	enrollment := &domain.Enrollment{
		UserID:    userID,
		PlanID:    planID,
		StartDate: start,
		EndDate:   domain.EndDateFor(start, 30),
	}
	enrollmentID, err := f.enrollments.Create(ctx, enrollment)
	if err != nil {
		t.Fatalf("seed enrollment: %v", err)
	}
	return userID, enrollmentID
}

func videoUpload(name, mime string, size int64) FileUpload {
	data := make([]byte, 8)
	return FileUpload{Filename: name, ContentType: mime, Size: size, Data: data}
}

func TestRecordProgressOnCadenceDay(t *testing.T) {
	f := newClientFixture()
	ctx := context.Background()
	userID, enrollmentID := f.seedClient(t, 15)

	progress, err := f.svc.RecordProgress(ctx, userID, RecordProgressInput{Weight: 80.5, Notes: "quincena"})
	if err != nil {
		t.Fatalf("RecordProgress: %v", err)
	}
	if progress.DayNumber != 15 {
		t.Errorf("DayNumber = %d, want 15", progress.DayNumber)
	}
	if progress.EnrollmentID != enrollmentID {
		t.Error("progress attached to the wrong enrollment")
	}

	// A second snapshot the same day is rejected.
	if _, err := f.svc.RecordProgress(ctx, userID, RecordProgressInput{Weight: 80.4}); !errors.Is(err, ErrProgressDuplicate) {
		t.Fatalf("err = %v, want ErrProgressDuplicate", err)
	}
}

func TestRecordProgressOffCadence(t *testing.T) {
	f := newClientFixture()
	ctx := context.Background()
	userID, _ := f.seedClient(t, 7)

	_, err := f.svc.RecordProgress(ctx, userID, RecordProgressInput{Weight: 80})
	var tooEarly *ProgressTooEarlyError
	if !errors.As(err, &tooEarly) {
		t.Fatalf("err = %v, want ProgressTooEarlyError", err)
	}
	if tooEarly.DayNumber != 7 {
		t.Errorf("DayNumber = %d, want 7", tooEarly.DayNumber)
	}
	if tooEarly.NextReviewDay != 15 {
		t.Errorf("NextReviewDay = %d, want 15", tooEarly.NextReviewDay)
	}
}

func TestRecordProgressFinalDay(t *testing.T) {
	f := newClientFixture()
	ctx := context.Background()
	// Day 29 is the final day of a 30-day plan and allowed off-cadence.
	userID, _ := f.seedClient(t, 29)

	if _, err := f.svc.RecordProgress(ctx, userID, RecordProgressInput{Weight: 78}); err != nil {
		t.Fatalf("RecordProgress on final day: %v", err)
	}
}

func TestRecordProgressExpiredEnrollment(t *testing.T) {
	f := newClientFixture()
	ctx := context.Background()
	userID, _ := f.seedClient(t, 45)

	if _, err := f.svc.RecordProgress(ctx, userID, RecordProgressInput{Weight: 80}); !errors.Is(err, ErrEnrollmentExpired) {
		t.Fatalf("err = %v, want ErrEnrollmentExpired", err)
	}
}

func TestRecordProgressRejectsInvalidWeight(t *testing.T) {
	f := newClientFixture()
	ctx := context.Background()
	userID, _ := f.seedClient(t, 0)

	if _, err := f.svc.RecordProgress(ctx, userID, RecordProgressInput{Weight: 0}); !errors.Is(err, ErrProgressValidation) {
		t.Fatalf("err = %v, want ErrProgressValidation", err)
	}
}

func TestClientUploadMedia(t *testing.T) {
	f := newClientFixture()
	ctx := context.Background()
	userID, enrollmentID := f.seedClient(t, 1)

	upload := videoUpload("day1.mp4", "video/mp4", 8)
	media, err := f.svc.UploadMedia(ctx, userID, domain.MediaDay1Video, upload)
	if err != nil {
		t.Fatalf("UploadMedia: %v", err)
	}
	if media.EnrollmentID != enrollmentID {
		t.Error("media attached to the wrong enrollment")
	}

	// The initial photo slot is admin-only.
	if _, err := f.svc.UploadMedia(ctx, userID, domain.MediaInitialPhoto, upload); !errors.Is(err, ErrMediaTypeForbidden) {
		t.Fatalf("err = %v, want ErrMediaTypeForbidden", err)
	}
}

func TestClientDashboard(t *testing.T) {
	f := newClientFixture()
	ctx := context.Background()
	userID, enrollmentID := f.seedClient(t, 24)

	f.documents.Create(ctx, &domain.Document{EnrollmentID: enrollmentID, Type: domain.DocumentDiet, Filename: "diet.pdf"})
	f.documents.Create(ctx, &domain.Document{EnrollmentID: enrollmentID, Type: domain.DocumentReport, Filename: "r1.pdf"})
	f.comments.Create(ctx, &domain.TrainerComment{EnrollmentID: enrollmentID, Comment: "Sigue asi"})
	f.progress.Create(ctx, &domain.Progress{EnrollmentID: enrollmentID, Weight: 82, DayNumber: 15, RecordDate: time.Now().AddDate(0, 0, -9)})

	dash, err := f.svc.GetDashboard(ctx, userID)
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}
	if dash.Status != domain.StatusExpiring {
		t.Errorf("Status = %s, want EXPIRING on day 24 of 30", dash.Status)
	}
	if dash.DaysRemaining != 6 {
		t.Errorf("DaysRemaining = %d, want 6", dash.DaysRemaining)
	}
	if dash.DaysElapsed != 24 {
		t.Errorf("DaysElapsed = %d, want 24", dash.DaysElapsed)
	}
	if dash.CanLogToday {
		t.Error("day 24 is off-cadence; CanLogToday should be false")
	}
	if dash.NextReviewDay != 30 {
		t.Errorf("NextReviewDay = %d, want 30", dash.NextReviewDay)
	}
	if dash.Diet == nil || dash.Diet.Filename != "diet.pdf" {
		t.Error("diet document missing from dashboard")
	}
	if dash.Routine != nil {
		t.Error("unexpected routine document")
	}
	if len(dash.Reports) != 1 {
		t.Errorf("got %d reports, want 1", len(dash.Reports))
	}
	if len(dash.Comments) != 1 {
		t.Errorf("got %d comments, want 1", len(dash.Comments))
	}
	if len(dash.Progress) != 1 || dash.Progress[0].DayNumber != 15 {
		t.Errorf("got %d progress entries, want the day-15 record", len(dash.Progress))
	}
}

func TestDashboardRendersExpiredEnrollment(t *testing.T) {
	f := newClientFixture()
	ctx := context.Background()
	userID, _ := f.seedClient(t, 45)

	dash, err := f.svc.GetDashboard(ctx, userID)
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}
	if dash.Status != domain.StatusExpired {
		t.Errorf("Status = %s, want EXPIRED", dash.Status)
	}
}

func TestUploadVideoValidation(t *testing.T) {
	f := newClientFixture()
	ctx := context.Background()
	userID, _ := f.seedClient(t, 1)

	if _, err := f.svc.UploadVideo(ctx, userID, "", "", videoUpload("x.txt", "text/plain", 8)); !errors.Is(err, ErrVideoUnsupported) {
		t.Fatalf("err = %v, want ErrVideoUnsupported", err)
	}
	if _, err := f.svc.UploadVideo(ctx, userID, "", "", videoUpload("x.mp4", "video/mp4", domain.MaxVideoSize+1)); !errors.Is(err, ErrVideoTooLarge) {
		t.Fatalf("err = %v, want ErrVideoTooLarge", err)
	}

	video, err := f.svc.UploadVideo(ctx, userID, "", "primer dia", videoUpload("sentadilla.mp4", "video/mp4", 8))
	if err != nil {
		t.Fatalf("UploadVideo: %v", err)
	}
	if video.Title != "sentadilla.mp4" {
		t.Errorf("Title = %q, want filename fallback", video.Title)
	}
	if !video.IsVisible {
		t.Error("new videos should be visible")
	}
}

func TestDeleteVideoOwnership(t *testing.T) {
	f := newClientFixture()
	ctx := context.Background()
	userID, _ := f.seedClient(t, 1)

	video, err := f.svc.UploadVideo(ctx, userID, "t", "", videoUpload("v.mp4", "video/mp4", 8))
	if err != nil {
		t.Fatalf("UploadVideo: %v", err)
	}

	otherID := primitive.NewObjectID()
	if err := f.svc.DeleteVideo(ctx, otherID, video.ID); !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("foreign delete err = %v, want ErrVideoNotFound", err)
	}

	if err := f.svc.DeleteVideo(ctx, userID, video.ID); err != nil {
		t.Fatalf("DeleteVideo: %v", err)
	}
	if len(f.storage.deleted) == 0 {
		t.Error("stored object was not removed")
	}
}

func TestDocumentDownloadURLOwnership(t *testing.T) {
	f := newClientFixture()
	ctx := context.Background()
	userID, enrollmentID := f.seedClient(t, 1)

	docID, _ := f.documents.Create(ctx, &domain.Document{
		EnrollmentID: enrollmentID,
		Type:         domain.DocumentDiet,
		ObjectKey:    "documents/x/diet.pdf",
	})

	url, err := f.svc.DocumentDownloadURL(ctx, userID, docID)
	if err != nil {
		t.Fatalf("DocumentDownloadURL: %v", err)
	}
	if url == "" {
		t.Error("empty presigned URL")
	}

	if _, err := f.svc.DocumentDownloadURL(ctx, primitive.NewObjectID(), docID); !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("foreign access err = %v, want ErrDocumentNotFound", err)
	}
}
