package repositories

import (
	"context"

	"github.com/enzogallo/discover-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CommentRepository defines the interface for comment data operations.
// Comments are append-only; the only deletes are the cascades.
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	// GetCommentsByPostID returns the post's comments oldest first, the
	// chronological display order.
	GetCommentsByPostID(ctx context.Context, postID string) ([]models.Comment, error)
	CountByPostID(ctx context.Context, postID string) (int64, error)
	DeleteAllForPost(ctx context.Context, postID string) error
	DeleteAllForUser(ctx context.Context, userID string) error
}

// MongoCommentRepository implements CommentRepository for MongoDB
type MongoCommentRepository struct {
	collection *mongo.Collection
}

// NewMongoCommentRepository creates a new MongoCommentRepository
func NewMongoCommentRepository(db *mongo.Database) *MongoCommentRepository {
	return &MongoCommentRepository{collection: db.Collection("comments")}
}

// CreateComment inserts a new comment in MongoDB
func (r *MongoCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	_, err := r.collection.InsertOne(ctx, comment)
	return err
}

// GetCommentsByPostID retrieves a post's comments sorted by timestamp ascending
func (r *MongoCommentRepository) GetCommentsByPostID(ctx context.Context, postID string) ([]models.Comment, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"postId": postID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	comments := []models.Comment{}
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// CountByPostID returns the live comment count of a post
func (r *MongoCommentRepository) CountByPostID(ctx context.Context, postID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"postId": postID})
}

// DeleteAllForPost removes every comment referencing the post
func (r *MongoCommentRepository) DeleteAllForPost(ctx context.Context, postID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"postId": postID})
	return err
}

// DeleteAllForUser removes every comment written by the user
func (r *MongoCommentRepository) DeleteAllForUser(ctx context.Context, userID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID})
	return err
}
