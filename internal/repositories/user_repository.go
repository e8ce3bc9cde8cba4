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

// UserRepository defines the interface for user data operations
type UserRepository interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByPseudonym(ctx context.Context, pseudonym string) (*models.User, error)
	// UpsertIdentity writes the identity fields of the users-by-pseudonym
	// record without touching streak counters or the profile picture.
	UpsertIdentity(ctx context.Context, id, pseudonym string) error
	// UpdateUser replaces the full user record, conditional on the
	// lastPostDate the caller read. A lost swap fails with ErrConflict;
	// the caller re-reads and retries.
	UpdateUser(ctx context.Context, user *models.User, expectedLastPostDate *time.Time) error
	UpdateProfile(ctx context.Context, id, pseudonym string, profilePictureURL *string) error
	DeleteUser(ctx context.Context, id string) error
}

// MongoUserRepository implements UserRepository for MongoDB
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection("users")}
}

// GetUserByID retrieves a user by id from MongoDB
func (r *MongoUserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperror.NotFound("user", id)
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByPseudonym retrieves a user by pseudonym from MongoDB. The match
// is case-sensitive.
func (r *MongoUserRepository) GetUserByPseudonym(ctx context.Context, pseudonym string) (*models.User, error) {
	var user models.User
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	err := r.collection.FindOne(ctx, bson.M{"pseudonym": pseudonym}, opts).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperror.NotFound("user", pseudonym)
		}
		return nil, err
	}
	return &user, nil
}

// UpsertIdentity creates or refreshes the identity half of a user record.
// Streak fields are only set on first insert so a re-registration cannot
// clobber an existing run.
func (r *MongoUserRepository) UpsertIdentity(ctx context.Context, id, pseudonym string) error {
	update := bson.M{
		"$set": bson.M{"pseudonym": pseudonym},
		"$setOnInsert": bson.M{
			"createdAt":     time.Now(),
			"currentStreak": 0,
			"longestStreak": 0,
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update, opts)
	return err
}

// UpdateUser replaces an existing user record in full, but only while its
// lastPostDate still equals the value the caller read. A nil expected value
// matches a record with no lastPostDate. MatchedCount of zero means the
// record changed underneath the caller (or is gone), reported as a
// conflict so the caller re-reads before deciding.
func (r *MongoUserRepository) UpdateUser(ctx context.Context, user *models.User, expectedLastPostDate *time.Time) error {
	filter := bson.M{"_id": user.ID, "lastPostDate": expectedLastPostDate}
	res, err := r.collection.ReplaceOne(ctx, filter, user)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperror.Conflict("user", user.ID)
	}
	return nil
}

// UpdateProfile sets the pseudonym and, when provided, the profile picture.
// The picture value is stored verbatim whether it is an https URL or a
// base64 data URI.
func (r *MongoUserRepository) UpdateProfile(ctx context.Context, id, pseudonym string, profilePictureURL *string) error {
	set := bson.M{"pseudonym": pseudonym}
	if profilePictureURL != nil {
		set["profilePictureURL"] = *profilePictureURL
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperror.NotFound("user", id)
	}
	return nil
}

// DeleteUser deletes a user record. Deleting an absent record is a no-op,
// so a partially failed account cascade can be re-run safely.
func (r *MongoUserRepository) DeleteUser(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
