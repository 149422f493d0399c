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

const commentCollectionName = "trainer_comments"

// mongoCommentRepository implements the repository.CommentRepository interface using MongoDB.
type mongoCommentRepository struct {
	collection *mongo.Collection
}

// NewMongoCommentRepository creates a new instance of mongoCommentRepository.
func NewMongoCommentRepository(db *mongo.Database) repository.CommentRepository {
	return &mongoCommentRepository{
		collection: db.Collection(commentCollectionName),
	}
}

// Create inserts a new trainer comment.
func (r *mongoCommentRepository) Create(ctx context.Context, comment *domain.TrainerComment) (primitive.ObjectID, error) {
	if comment.EnrollmentID == primitive.NilObjectID || comment.Comment == "" {
		return primitive.NilObjectID, errors.New("comment enrollment ID and text are required")
	}

	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, comment)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// ListByEnrollmentID retrieves all comments for an enrollment, newest first.
func (r *mongoCommentRepository) ListByEnrollmentID(ctx context.Context, enrollmentID primitive.ObjectID) ([]domain.TrainerComment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"enrollmentId": enrollmentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var comments []domain.TrainerComment
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// DeleteByEnrollmentIDs removes all comments belonging to the given enrollments.
func (r *mongoCommentRepository) DeleteByEnrollmentIDs(ctx context.Context, enrollmentIDs []primitive.ObjectID) error {
	if len(enrollmentIDs) == 0 {
		return nil
	}
	_, err := r.collection.DeleteMany(ctx, bson.M{"enrollmentId": bson.M{"$in": enrollmentIDs}})
	return err
}

// EnsureCommentIndexes creates necessary indexes for the trainer_comments collection.
func EnsureCommentIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "enrollmentId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
