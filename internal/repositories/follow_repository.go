package repositories

import (
	"context"
	"time"

	"github.com/enzogallo/discover-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	// Toggle flips the follow relation for the ordered pair, stamping a
	// new relation with `at`. It returns true when the relation now exists
	// and false when it was just removed.
	Toggle(ctx context.Context, followerID, followingID string, at time.Time) (bool, error)
	IsFollowing(ctx context.Context, followerID, followingID string) (bool, error)
	FollowerCount(ctx context.Context, userID string) (int64, error)
	FollowingCount(ctx context.Context, userID string) (int64, error)
	FollowerIDs(ctx context.Context, userID string) ([]string, error)
	FollowingIDs(ctx context.Context, userID string) ([]string, error)
	// DeleteAllForUser removes the user's follow records in both
	// directions.
	DeleteAllForUser(ctx context.Context, userID string) error
}

// MongoFollowRepository implements FollowRepository for MongoDB
type MongoFollowRepository struct {
	collection *mongo.Collection
}

// NewMongoFollowRepository creates a new MongoFollowRepository
func NewMongoFollowRepository(db *mongo.Database) *MongoFollowRepository {
	return &MongoFollowRepository{collection: db.Collection("follows")}
}

// Toggle removes the follow document keyed by the ordered pair if it
// exists, else inserts it. Same duplicate-key treatment as likes.
func (r *MongoFollowRepository) Toggle(ctx context.Context, followerID, followingID string, at time.Time) (bool, error) {
	id := pairKey(followerID, followingID)

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	if res.DeletedCount > 0 {
		return false, nil
	}

	follow := models.Follow{
		ID:          id,
		FollowerID:  followerID,
		FollowingID: followingID,
		Timestamp:   at,
	}
	if _, err := r.collection.InsertOne(ctx, follow); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

// IsFollowing checks whether followerID currently follows followingID
func (r *MongoFollowRepository) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	filter := bson.M{"_id": pairKey(followerID, followingID)}
	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FollowerCount returns how many users follow userID
func (r *MongoFollowRepository) FollowerCount(ctx context.Context, userID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"followingId": userID})
}

// FollowingCount returns how many users userID follows
func (r *MongoFollowRepository) FollowingCount(ctx context.Context, userID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"followerId": userID})
}

// FollowerIDs lists the ids of users following userID
func (r *MongoFollowRepository) FollowerIDs(ctx context.Context, userID string) ([]string, error) {
	return r.collectIDs(ctx, bson.M{"followingId": userID}, "followerId")
}

// FollowingIDs lists the ids of users userID follows
func (r *MongoFollowRepository) FollowingIDs(ctx context.Context, userID string) ([]string, error) {
	return r.collectIDs(ctx, bson.M{"followerId": userID}, "followingId")
}

func (r *MongoFollowRepository) collectIDs(ctx context.Context, filter bson.M, field string) ([]string, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var follows []models.Follow
	if err = cursor.All(ctx, &follows); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(follows))
	for _, f := range follows {
		if field == "followerId" {
			ids = append(ids, f.FollowerID)
		} else {
			ids = append(ids, f.FollowingID)
		}
	}
	return ids, nil
}

// DeleteAllForUser removes follow records where the user is on either side
func (r *MongoFollowRepository) DeleteAllForUser(ctx context.Context, userID string) error {
	filter := bson.M{"$or": []bson.M{
		{"followerId": userID},
		{"followingId": userID},
	}}
	_, err := r.collection.DeleteMany(ctx, filter)
	return err
}
