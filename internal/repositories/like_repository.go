package repositories

import (
	"context"
	"time"

	"github.com/enzogallo/discover-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	// Toggle flips the like for (userID, postID), stamping a new like with
	// `at`. It returns true when the like now exists and false when it was
	// just removed.
	Toggle(ctx context.Context, userID, postID string, at time.Time) (bool, error)
	CountByPostID(ctx context.Context, postID string) (int64, error)
	IsLiked(ctx context.Context, userID, postID string) (bool, error)
	DeleteAllForPost(ctx context.Context, postID string) error
	DeleteAllForUser(ctx context.Context, userID string) error
}

// MongoLikeRepository implements LikeRepository for MongoDB
type MongoLikeRepository struct {
	collection *mongo.Collection
}

// NewMongoLikeRepository creates a new MongoLikeRepository
func NewMongoLikeRepository(db *mongo.Database) *MongoLikeRepository {
	return &MongoLikeRepository{collection: db.Collection("likes")}
}

// Toggle removes the like document keyed by the pair if it exists, else
// inserts it. A duplicate-key error on insert means a concurrent toggle won
// the race; the like exists either way, so that case reports true.
func (r *MongoLikeRepository) Toggle(ctx context.Context, userID, postID string, at time.Time) (bool, error) {
	id := pairKey(userID, postID)

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	if res.DeletedCount > 0 {
		return false, nil
	}

	like := models.Like{
		ID:        id,
		UserID:    userID,
		PostID:    postID,
		Timestamp: at,
	}
	if _, err := r.collection.InsertOne(ctx, like); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

// CountByPostID returns the live like count of a post
func (r *MongoLikeRepository) CountByPostID(ctx context.Context, postID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"postId": postID})
}

// IsLiked checks whether the user currently likes the post
func (r *MongoLikeRepository) IsLiked(ctx context.Context, userID, postID string) (bool, error) {
	filter := bson.M{"_id": pairKey(userID, postID)}
	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteAllForPost removes every like referencing the post
func (r *MongoLikeRepository) DeleteAllForPost(ctx context.Context, postID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"postId": postID})
	return err
}

// DeleteAllForUser removes every like placed by the user
func (r *MongoLikeRepository) DeleteAllForUser(ctx context.Context, userID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID})
	return err
}
