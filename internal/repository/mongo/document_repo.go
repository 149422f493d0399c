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

const documentCollectionName = "documents"

// mongoDocumentRepository implements the repository.DocumentRepository interface using MongoDB.
type mongoDocumentRepository struct {
	collection *mongo.Collection
}

// NewMongoDocumentRepository creates a new instance of mongoDocumentRepository.
func NewMongoDocumentRepository(db *mongo.Database) repository.DocumentRepository {
	return &mongoDocumentRepository{
		collection: db.Collection(documentCollectionName),
	}
}

// Create inserts a new document metadata record.
func (r *mongoDocumentRepository) Create(ctx context.Context, doc *domain.Document) (primitive.ObjectID, error) {
	if doc.EnrollmentID == primitive.NilObjectID || doc.Type == "" {
		return primitive.NilObjectID, errors.New("document enrollment ID and type are required")
	}

	doc.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	doc.UploadedAt = now
	doc.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a document by its ObjectID.
func (r *mongoDocumentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Document, error) {
	var doc domain.Document
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// GetByEnrollmentAndType retrieves the document of a given type for an
// enrollment. Used by the upsert-by-type flow for singular types.
func (r *mongoDocumentRepository) GetByEnrollmentAndType(ctx context.Context, enrollmentID primitive.ObjectID, docType domain.DocumentType) (*domain.Document, error) {
	var doc domain.Document
	filter := bson.M{"enrollmentId": enrollmentID, "type": docType}

	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// ListByEnrollmentID retrieves all documents for an enrollment, newest first.
func (r *mongoDocumentRepository) ListByEnrollmentID(ctx context.Context, enrollmentID primitive.ObjectID) ([]domain.Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: "uploadedAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"enrollmentId": enrollmentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []domain.Document
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Update replaces the file metadata of an existing document record.
func (r *mongoDocumentRepository) Update(ctx context.Context, doc *domain.Document) error {
	if doc.ID == primitive.NilObjectID {
		return errors.New("document ID is required for update")
	}

	doc.UpdatedAt = time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"filename":  doc.Filename,
			"url":       doc.URL,
			"objectKey": doc.ObjectKey,
			"fileSize":  doc.FileSize,
			"updatedAt": doc.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": doc.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a document metadata record.
func (r *mongoDocumentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByEnrollmentIDs removes all documents belonging to the given enrollments.
func (r *mongoDocumentRepository) DeleteByEnrollmentIDs(ctx context.Context, enrollmentIDs []primitive.ObjectID) error {
	if len(enrollmentIDs) == 0 {
		return nil
	}
	_, err := r.collection.DeleteMany(ctx, bson.M{"enrollmentId": bson.M{"$in": enrollmentIDs}})
	return err
}

// EnsureDocumentIndexes creates necessary indexes for the documents collection.
func EnsureDocumentIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "enrollmentId", Value: 1}, {Key: "type", Value: 1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
