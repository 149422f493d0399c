package mongo

import (
	"context"
	"errors"
	"time"

	"entrenador/gym-platform/internal/domain"
	"entrenador/gym-platform/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const progressCollectionName = "progress"

// mongoProgressRepository implements the repository.ProgressRepository interface using MongoDB.
type mongoProgressRepository struct {
	collection *mongo.Collection
}

// NewMongoProgressRepository creates a new instance of mongoProgressRepository.
func NewMongoProgressRepository(db *mongo.Database) repository.ProgressRepository {
	return &mongoProgressRepository{
		collection: db.Collection(progressCollectionName),
	}
}

// Create inserts a new progress snapshot.
func (r *mongoProgressRepository) Create(ctx context.Context, progress *domain.Progress) (primitive.ObjectID, error) {
	if progress.EnrollmentID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("progress enrollment ID is required")
	}

	progress.ID = primitive.NewObjectID()
	if progress.RecordDate.IsZero() {
		progress.RecordDate = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, progress)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// ListByEnrollmentID retrieves all progress snapshots for an
// enrollment in chronological order.
func (r *mongoProgressRepository) ListByEnrollmentID(ctx context.Context, enrollmentID primitive.ObjectID) ([]domain.Progress, error) {
	opts := options.Find().SetSort(bson.D{{Key: "recordDate", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"enrollmentId": enrollmentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []domain.Progress
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ExistsInRange reports whether a snapshot exists for the enrollment
// with a record date in [from, to).
func (r *mongoProgressRepository) ExistsInRange(ctx context.Context, enrollmentID primitive.ObjectID, from, to time.Time) (bool, error) {
	filter := bson.M{
		"enrollmentId": enrollmentID,
		"recordDate":   bson.M{"$gte": from, "$lt": to},
	}

	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteByEnrollmentIDs removes all snapshots belonging to the given enrollments.
func (r *mongoProgressRepository) DeleteByEnrollmentIDs(ctx context.Context, enrollmentIDs []primitive.ObjectID) error {
	if len(enrollmentIDs) == 0 {
		return nil
	}
	_, err := r.collection.DeleteMany(ctx, bson.M{"enrollmentId": bson.M{"$in": enrollmentIDs}})
	return err
}

// EnsureProgressIndexes creates necessary indexes for the progress collection.
func EnsureProgressIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "enrollmentId", Value: 1}, {Key: "recordDate", Value: 1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
