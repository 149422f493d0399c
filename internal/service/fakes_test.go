package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"entrenador/gym-platform/internal/domain"
	"entrenador/gym-platform/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes. They mimic the behavior the Mongo
// implementations rely on (ErrNotFound, ErrDuplicate, unique indexes)
// closely enough for service-level tests.

type fakeUserRepo struct {
	users map[primitive.ObjectID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	id := primitive.NewObjectID()
	clone := *user
	clone.ID = id
	clone.CreatedAt = time.Now()
	r.users[id] = &clone
	return id, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email && email != "" {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role domain.Role) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, u := range r.users {
		if id != user.ID && u.Username == user.Username {
			return repository.ErrDuplicate
		}
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type fakePlanRepo struct {
	plans map[primitive.ObjectID]*domain.Plan
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: make(map[primitive.ObjectID]*domain.Plan)}
}

func (r *fakePlanRepo) Create(_ context.Context, plan *domain.Plan) (primitive.ObjectID, error) {
	for _, p := range r.plans {
		if p.Name == plan.Name {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	id := primitive.NewObjectID()
	clone := *plan
	clone.ID = id
	r.plans[id] = &clone
	return id, nil
}

func (r *fakePlanRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Plan, error) {
	p, ok := r.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *fakePlanRepo) ListActive(_ context.Context) ([]domain.Plan, error) {
	var out []domain.Plan
	for _, p := range r.plans {
		if p.IsActive {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

// addPlan seeds a plan directly, bypassing uniqueness checks.
func (r *fakePlanRepo) addPlan(name string, durationDays int) primitive.ObjectID {
	id := primitive.NewObjectID()
	r.plans[id] = &domain.Plan{ID: id, Name: name, DurationDays: durationDays, IsActive: true}
	return id
}

type fakeEnrollmentRepo struct {
	enrollments map[primitive.ObjectID]*domain.Enrollment
}

func newFakeEnrollmentRepo() *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{enrollments: make(map[primitive.ObjectID]*domain.Enrollment)}
}

func (r *fakeEnrollmentRepo) Create(_ context.Context, e *domain.Enrollment) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	clone := *e
	clone.ID = id
	clone.CreatedAt = time.Now()
	r.enrollments[id] = &clone
	return id, nil
}

func (r *fakeEnrollmentRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Enrollment, error) {
	e, ok := r.enrollments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *fakeEnrollmentRepo) GetLatestByUserID(_ context.Context, userID primitive.ObjectID) (*domain.Enrollment, error) {
	var latest *domain.Enrollment
	for _, e := range r.enrollments {
		if e.UserID != userID {
			continue
		}
		if latest == nil || e.StartDate.After(latest.StartDate) {
			latest = e
		}
	}
	if latest == nil {
		return nil, repository.ErrNotFound
	}
	clone := *latest
	return &clone, nil
}

func (r *fakeEnrollmentRepo) ListByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.Enrollment, error) {
	var out []domain.Enrollment
	for _, e := range r.enrollments {
		if e.UserID == userID {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

func (r *fakeEnrollmentRepo) Update(_ context.Context, e *domain.Enrollment) error {
	if _, ok := r.enrollments[e.ID]; !ok {
		return repository.ErrNotFound
	}
	clone := *e
	r.enrollments[e.ID] = &clone
	return nil
}

func (r *fakeEnrollmentRepo) DeleteByUserID(_ context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	var removed []primitive.ObjectID
	for id, e := range r.enrollments {
		if e.UserID == userID {
			removed = append(removed, id)
			delete(r.enrollments, id)
		}
	}
	return removed, nil
}

type fakeDocumentRepo struct {
	docs map[primitive.ObjectID]*domain.Document
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: make(map[primitive.ObjectID]*domain.Document)}
}

func (r *fakeDocumentRepo) Create(_ context.Context, doc *domain.Document) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	clone := *doc
	clone.ID = id
	r.docs[id] = &clone
	return id, nil
}

func (r *fakeDocumentRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Document, error) {
	d, ok := r.docs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *d
	return &clone, nil
}

func (r *fakeDocumentRepo) GetByEnrollmentAndType(_ context.Context, enrollmentID primitive.ObjectID, docType domain.DocumentType) (*domain.Document, error) {
	for _, d := range r.docs {
		if d.EnrollmentID == enrollmentID && d.Type == docType {
			clone := *d
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeDocumentRepo) ListByEnrollmentID(_ context.Context, enrollmentID primitive.ObjectID) ([]domain.Document, error) {
	var out []domain.Document
	for _, d := range r.docs {
		if d.EnrollmentID == enrollmentID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeDocumentRepo) Update(_ context.Context, doc *domain.Document) error {
	if _, ok := r.docs[doc.ID]; !ok {
		return repository.ErrNotFound
	}
	clone := *doc
	r.docs[doc.ID] = &clone
	return nil
}

func (r *fakeDocumentRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.docs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.docs, id)
	return nil
}

func (r *fakeDocumentRepo) DeleteByEnrollmentIDs(_ context.Context, ids []primitive.ObjectID) error {
	for _, eid := range ids {
		for id, d := range r.docs {
			if d.EnrollmentID == eid {
				delete(r.docs, id)
			}
		}
	}
	return nil
}

type fakeMediaRepo struct {
	media map[primitive.ObjectID]*domain.Media
}

func newFakeMediaRepo() *fakeMediaRepo {
	return &fakeMediaRepo{media: make(map[primitive.ObjectID]*domain.Media)}
}

func (r *fakeMediaRepo) Create(_ context.Context, m *domain.Media) (primitive.ObjectID, error) {
	for _, existing := range r.media {
		if existing.EnrollmentID == m.EnrollmentID && existing.Type == m.Type {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	id := primitive.NewObjectID()
	clone := *m
	clone.ID = id
	r.media[id] = &clone
	return id, nil
}

func (r *fakeMediaRepo) GetByEnrollmentAndType(_ context.Context, enrollmentID primitive.ObjectID, mediaType domain.MediaType) (*domain.Media, error) {
	for _, m := range r.media {
		if m.EnrollmentID == enrollmentID && m.Type == mediaType {
			clone := *m
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeMediaRepo) ListByEnrollmentID(_ context.Context, enrollmentID primitive.ObjectID) ([]domain.Media, error) {
	var out []domain.Media
	for _, m := range r.media {
		if m.EnrollmentID == enrollmentID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMediaRepo) Update(_ context.Context, m *domain.Media) error {
	if _, ok := r.media[m.ID]; !ok {
		return repository.ErrNotFound
	}
	clone := *m
	r.media[m.ID] = &clone
	return nil
}

func (r *fakeMediaRepo) DeleteByEnrollmentIDs(_ context.Context, ids []primitive.ObjectID) error {
	for _, eid := range ids {
		for id, m := range r.media {
			if m.EnrollmentID == eid {
				delete(r.media, id)
			}
		}
	}
	return nil
}

type fakeProgressRepo struct {
	records map[primitive.ObjectID]*domain.Progress
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{records: make(map[primitive.ObjectID]*domain.Progress)}
}

func (r *fakeProgressRepo) Create(_ context.Context, p *domain.Progress) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	clone := *p
	clone.ID = id
	r.records[id] = &clone
	return id, nil
}

func (r *fakeProgressRepo) ListByEnrollmentID(_ context.Context, enrollmentID primitive.ObjectID) ([]domain.Progress, error) {
	var out []domain.Progress
	for _, p := range r.records {
		if p.EnrollmentID == enrollmentID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecordDate.Before(out[j].RecordDate) })
	return out, nil
}

func (r *fakeProgressRepo) ExistsInRange(_ context.Context, enrollmentID primitive.ObjectID, from, to time.Time) (bool, error) {
	for _, p := range r.records {
		if p.EnrollmentID == enrollmentID && !p.RecordDate.Before(from) && p.RecordDate.Before(to) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeProgressRepo) DeleteByEnrollmentIDs(_ context.Context, ids []primitive.ObjectID) error {
	for _, eid := range ids {
		for id, p := range r.records {
			if p.EnrollmentID == eid {
				delete(r.records, id)
			}
		}
	}
	return nil
}

type fakeCommentRepo struct {
	comments map[primitive.ObjectID]*domain.TrainerComment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[primitive.ObjectID]*domain.TrainerComment)}
}

func (r *fakeCommentRepo) Create(_ context.Context, c *domain.TrainerComment) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	clone := *c
	clone.ID = id
	clone.CreatedAt = time.Now()
	r.comments[id] = &clone
	return id, nil
}

func (r *fakeCommentRepo) ListByEnrollmentID(_ context.Context, enrollmentID primitive.ObjectID) ([]domain.TrainerComment, error) {
	var out []domain.TrainerComment
	for _, c := range r.comments {
		if c.EnrollmentID == enrollmentID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) DeleteByEnrollmentIDs(_ context.Context, ids []primitive.ObjectID) error {
	for _, eid := range ids {
		for id, c := range r.comments {
			if c.EnrollmentID == eid {
				delete(r.comments, id)
			}
		}
	}
	return nil
}

type fakeFavoriteRepo struct {
	favorites map[primitive.ObjectID]*domain.FavoriteExercise
	logs      map[primitive.ObjectID]*domain.ExerciseLog
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{
		favorites: make(map[primitive.ObjectID]*domain.FavoriteExercise),
		logs:      make(map[primitive.ObjectID]*domain.ExerciseLog),
	}
}

func (r *fakeFavoriteRepo) Create(_ context.Context, f *domain.FavoriteExercise) (primitive.ObjectID, error) {
	for _, existing := range r.favorites {
		if existing.UserID == f.UserID && existing.ExerciseAPIID == f.ExerciseAPIID {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	id := primitive.NewObjectID()
	clone := *f
	clone.ID = id
	r.favorites[id] = &clone
	return id, nil
}

func (r *fakeFavoriteRepo) GetByUserAndAPIID(_ context.Context, userID primitive.ObjectID, apiID string) (*domain.FavoriteExercise, error) {
	for _, f := range r.favorites {
		if f.UserID == userID && f.ExerciseAPIID == apiID {
			clone := *f
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeFavoriteRepo) ListByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.FavoriteExercise, error) {
	var out []domain.FavoriteExercise
	for _, f := range r.favorites {
		if f.UserID == userID {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *fakeFavoriteRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.favorites[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.favorites, id)
	return nil
}

func (r *fakeFavoriteRepo) DeleteByUserID(_ context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	var removed []primitive.ObjectID
	for id, f := range r.favorites {
		if f.UserID == userID {
			removed = append(removed, id)
			delete(r.favorites, id)
		}
	}
	return removed, nil
}

func (r *fakeFavoriteRepo) CreateLog(_ context.Context, l *domain.ExerciseLog) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	clone := *l
	clone.ID = id
	r.logs[id] = &clone
	return id, nil
}

func (r *fakeFavoriteRepo) ListLogsByFavoriteID(_ context.Context, favoriteID primitive.ObjectID, limit int) ([]domain.ExerciseLog, error) {
	var out []domain.ExerciseLog
	for _, l := range r.logs {
		if l.FavoriteID == favoriteID {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LogDate.After(out[j].LogDate) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeFavoriteRepo) DeleteLogsByFavoriteIDs(_ context.Context, ids []primitive.ObjectID) error {
	for _, fid := range ids {
		for id, l := range r.logs {
			if l.FavoriteID == fid {
				delete(r.logs, id)
			}
		}
	}
	return nil
}

type fakeVideoRepo struct {
	videos map[primitive.ObjectID]*domain.UserVideo
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{videos: make(map[primitive.ObjectID]*domain.UserVideo)}
}

func (r *fakeVideoRepo) Create(_ context.Context, v *domain.UserVideo) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	clone := *v
	clone.ID = id
	r.videos[id] = &clone
	return id, nil
}

func (r *fakeVideoRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.UserVideo, error) {
	v, ok := r.videos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *v
	return &clone, nil
}

func (r *fakeVideoRepo) ListVisibleByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.UserVideo, error) {
	var out []domain.UserVideo
	for _, v := range r.videos {
		if v.UserID == userID && v.IsVisible {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *fakeVideoRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.videos[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.videos, id)
	return nil
}

func (r *fakeVideoRepo) DeleteByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.UserVideo, error) {
	var removed []domain.UserVideo
	for id, v := range r.videos {
		if v.UserID == userID {
			removed = append(removed, *v)
			delete(r.videos, id)
		}
	}
	return removed, nil
}

// fakeStorage records uploads and deletes in memory.
type fakeStorage struct {
	objects map[string][]byte
	deleted []string
	nextID  int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (s *fakeStorage) Upload(_ context.Context, objectKey, _ string, body io.Reader, _ int64) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	s.objects[objectKey] = data
	s.nextID++
	return fmt.Sprintf("https://storage.test/%s", objectKey), nil
}

func (s *fakeStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return fmt.Sprintf("https://storage.test/%s?signed=1", objectKey), nil
}

func (s *fakeStorage) DeleteObject(_ context.Context, objectKey string) error {
	delete(s.objects, objectKey)
	s.deleted = append(s.deleted, objectKey)
	return nil
}
