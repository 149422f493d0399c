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

const videoCollectionName = "user_videos"

// mongoUserVideoRepository implements the repository.UserVideoRepository interface using MongoDB.
type mongoUserVideoRepository struct {
	collection *mongo.Collection
}

// NewMongoUserVideoRepository creates a new instance of mongoUserVideoRepository.
func NewMongoUserVideoRepository(db *mongo.Database) repository.UserVideoRepository {
	return &mongoUserVideoRepository{
		collection: db.Collection(videoCollectionName),
	}
}

// Create inserts a new user video metadata record.
func (r *mongoUserVideoRepository) Create(ctx context.Context, video *domain.UserVideo) (primitive.ObjectID, error) {
	if video.UserID == primitive.NilObjectID || video.ObjectKey == "" {
		return primitive.NilObjectID, errors.New("video user ID and object key are required")
	}

	video.ID = primitive.NewObjectID()
	video.UploadedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, video)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a video by its ObjectID.
func (r *mongoUserVideoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.UserVideo, error) {
	var video domain.UserVideo
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&video)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &video, nil
}

// ListVisibleByUserID retrieves a user's visible videos, newest first.
func (r *mongoUserVideoRepository) ListVisibleByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.UserVideo, error) {
	filter := bson.M{"userId": userID, "isVisible": true}
	opts := options.Find().SetSort(bson.D{{Key: "uploadedAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var videos []domain.UserVideo
	if err = cursor.All(ctx, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// Delete removes a video metadata record.
func (r *mongoUserVideoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByUserID removes all videos for a user and returns the removed
// records so the caller can clean up storage objects.
func (r *mongoUserVideoRepository) DeleteByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.UserVideo, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}

	var videos []domain.UserVideo
	if err = cursor.All(ctx, &videos); err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		return videos, nil
	}

	_, err = r.collection.DeleteMany(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	return videos, nil
}

// EnsureUserVideoIndexes creates necessary indexes for the user_videos collection.
func EnsureUserVideoIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "uploadedAt", Value: -1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
