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

const mediaCollectionName = "media"

// mongoMediaRepository implements the repository.MediaRepository interface using MongoDB.
type mongoMediaRepository struct {
	collection *mongo.Collection
}

// NewMongoMediaRepository creates a new instance of mongoMediaRepository.
func NewMongoMediaRepository(db *mongo.Database) repository.MediaRepository {
	return &mongoMediaRepository{
		collection: db.Collection(mediaCollectionName),
	}
}

// Create inserts a new media record.
func (r *mongoMediaRepository) Create(ctx context.Context, media *domain.Media) (primitive.ObjectID, error) {
	if media.EnrollmentID == primitive.NilObjectID || media.Type == "" {
		return primitive.NilObjectID, errors.New("media enrollment ID and type are required")
	}

	media.ID = primitive.NewObjectID()
	media.UploadedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, media)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByEnrollmentAndType retrieves the media slot of a given type for
// an enrollment.
func (r *mongoMediaRepository) GetByEnrollmentAndType(ctx context.Context, enrollmentID primitive.ObjectID, mediaType domain.MediaType) (*domain.Media, error) {
	var media domain.Media
	filter := bson.M{"enrollmentId": enrollmentID, "type": mediaType}

	err := r.collection.FindOne(ctx, filter).Decode(&media)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &media, nil
}

// ListByEnrollmentID retrieves all media for an enrollment, newest first.
func (r *mongoMediaRepository) ListByEnrollmentID(ctx context.Context, enrollmentID primitive.ObjectID) ([]domain.Media, error) {
	opts := options.Find().SetSort(bson.D{{Key: "uploadedAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"enrollmentId": enrollmentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var media []domain.Media
	if err = cursor.All(ctx, &media); err != nil {
		return nil, err
	}
	return media, nil
}

// Update replaces the URL and object key of an existing media slot.
func (r *mongoMediaRepository) Update(ctx context.Context, media *domain.Media) error {
	if media.ID == primitive.NilObjectID {
		return errors.New("media ID is required for update")
	}

	media.UploadedAt = time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"url":        media.URL,
			"objectKey":  media.ObjectKey,
			"filename":   media.Filename,
			"fileSize":   media.FileSize,
			"uploadedAt": media.UploadedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": media.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByEnrollmentIDs removes all media belonging to the given enrollments.
func (r *mongoMediaRepository) DeleteByEnrollmentIDs(ctx context.Context, enrollmentIDs []primitive.ObjectID) error {
	if len(enrollmentIDs) == 0 {
		return nil
	}
	_, err := r.collection.DeleteMany(ctx, bson.M{"enrollmentId": bson.M{"$in": enrollmentIDs}})
	return err
}

// EnsureMediaIndexes creates necessary indexes for the media collection.
// The unique (enrollmentId, type) index backs the one-slot-per-type rule.
func EnsureMediaIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "enrollmentId", Value: 1}, {Key: "type", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
