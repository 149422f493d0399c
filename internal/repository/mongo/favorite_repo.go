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

const (
	favoriteCollectionName    = "favorite_exercises"
	exerciseLogCollectionName = "exercise_logs"
)

// mongoFavoriteRepository implements the repository.FavoriteRepository
// interface using MongoDB. Favorites and their logs live in two
// collections managed together.
type mongoFavoriteRepository struct {
	favorites *mongo.Collection
	logs      *mongo.Collection
}

// NewMongoFavoriteRepository creates a new instance of mongoFavoriteRepository.
func NewMongoFavoriteRepository(db *mongo.Database) repository.FavoriteRepository {
	return &mongoFavoriteRepository{
		favorites: db.Collection(favoriteCollectionName),
		logs:      db.Collection(exerciseLogCollectionName),
	}
}

// Create inserts a new favorite exercise bookmark.
func (r *mongoFavoriteRepository) Create(ctx context.Context, favorite *domain.FavoriteExercise) (primitive.ObjectID, error) {
	if favorite.UserID == primitive.NilObjectID || favorite.ExerciseAPIID == "" {
		return primitive.NilObjectID, errors.New("favorite user ID and exercise API ID are required")
	}

	favorite.ID = primitive.NewObjectID()
	favorite.CreatedAt = time.Now().UTC()

	result, err := r.favorites.InsertOne(ctx, favorite)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByUserAndAPIID retrieves a user's bookmark of a catalog exercise.
func (r *mongoFavoriteRepository) GetByUserAndAPIID(ctx context.Context, userID primitive.ObjectID, exerciseAPIID string) (*domain.FavoriteExercise, error) {
	var favorite domain.FavoriteExercise
	filter := bson.M{"userId": userID, "exerciseApiId": exerciseAPIID}

	err := r.favorites.FindOne(ctx, filter).Decode(&favorite)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &favorite, nil
}

// ListByUserID retrieves a user's favorites, newest first.
func (r *mongoFavoriteRepository) ListByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.FavoriteExercise, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.favorites.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var favorites []domain.FavoriteExercise
	if err = cursor.All(ctx, &favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}

// Delete removes a favorite. Its logs are cascaded by the caller via
// DeleteLogsByFavoriteIDs.
func (r *mongoFavoriteRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.favorites.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByUserID removes all favorites for a user and returns the
// removed IDs so logs can be cascaded.
func (r *mongoFavoriteRepository) DeleteByUserID(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	cursor, err := r.favorites.Find(ctx, bson.M{"userId": userID},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	if len(ids) == 0 {
		return ids, nil
	}

	_, err = r.favorites.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// CreateLog inserts a new set/rep log entry for a favorite.
func (r *mongoFavoriteRepository) CreateLog(ctx context.Context, log *domain.ExerciseLog) (primitive.ObjectID, error) {
	if log.FavoriteID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("log favorite ID is required")
	}

	log.ID = primitive.NewObjectID()
	if log.LogDate.IsZero() {
		log.LogDate = time.Now().UTC()
	}

	result, err := r.logs.InsertOne(ctx, log)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// ListLogsByFavoriteID retrieves log entries for a favorite, newest
// first, capped at limit.
func (r *mongoFavoriteRepository) ListLogsByFavoriteID(ctx context.Context, favoriteID primitive.ObjectID, limit int) ([]domain.ExerciseLog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "logDate", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}

	cursor, err := r.logs.Find(ctx, bson.M{"favoriteId": favoriteID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []domain.ExerciseLog
	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// DeleteLogsByFavoriteIDs removes all logs belonging to the given favorites.
func (r *mongoFavoriteRepository) DeleteLogsByFavoriteIDs(ctx context.Context, favoriteIDs []primitive.ObjectID) error {
	if len(favoriteIDs) == 0 {
		return nil
	}
	_, err := r.logs.DeleteMany(ctx, bson.M{"favoriteId": bson.M{"$in": favoriteIDs}})
	return err
}

// EnsureFavoriteIndexes creates necessary indexes for the favorites and
// exercise_logs collections. The unique (userId, exerciseApiId) index
// backs the one-bookmark-per-exercise rule.
func EnsureFavoriteIndexes(ctx context.Context, favorites, logs *mongo.Collection) {
	_, _ = favorites.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "exerciseApiId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	_, _ = logs.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "favoriteId", Value: 1}, {Key: "logDate", Value: -1}},
			Options: options.Index(),
		},
	})
}
