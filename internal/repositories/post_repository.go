package repositories

import (
	"context"
	"time"

	"github.com/enzogallo/discover-backend/internal/apperror"
	"github.com/enzogallo/discover-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	// CreatePost inserts the post. The store enforces one post per
	// (userId, postDay); a same-day duplicate fails with
	// ErrAlreadyPostedToday.
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetAllPosts(ctx context.Context, limit int64) ([]models.Post, error)
	GetPostsByUserID(ctx context.Context, userID string) ([]models.Post, error)
	// ExistsSince reports whether the user owns any post whose timestamp is
	// at or after the given instant. Used by the daily-post gate.
	ExistsSince(ctx context.Context, userID string, since time.Time) (bool, error)
	DeletePost(ctx context.Context, id string) error
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// EnsureIndexes creates the read-path index for the gate query and the
// user-posts listing, plus the unique (userId, postDay) index that makes
// the one-post-per-day rule hold at the store even when two creates race
// past the gate read.
func (r *MongoPostRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "timestamp", Value: -1}},
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "postDay", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return err
}

// CreatePost inserts a new post in MongoDB. The caller is responsible for
// the id, the timestamp and the postDay; they are part of the gating
// semantics. A duplicate-key error means the user already has a post for
// that day, so it surfaces as the gate rejection.
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	_, err := r.collection.InsertOne(ctx, post)
	if mongo.IsDuplicateKeyError(err) {
		return apperror.AlreadyPostedToday()
	}
	return err
}

// GetPostByID retrieves a post by id from MongoDB
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperror.NotFound("post", id)
		}
		return nil, err
	}
	return &post, nil
}

// GetAllPosts retrieves the global feed, newest first
func (r *MongoPostRepository) GetAllPosts(ctx context.Context, limit int64) ([]models.Post, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPostsByUserID retrieves a user's posts, newest first
func (r *MongoPostRepository) GetPostsByUserID(ctx context.Context, userID string) ([]models.Post, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// ExistsSince checks for at least one post by the user at or after `since`
func (r *MongoPostRepository) ExistsSince(ctx context.Context, userID string, since time.Time) (bool, error) {
	filter := bson.M{
		"userId":    userID,
		"timestamp": bson.M{"$gte": since},
	}
	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeletePost deletes a post by id. Absent posts are a no-op so cascade
// re-runs stay idempotent.
func (r *MongoPostRepository) DeletePost(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
