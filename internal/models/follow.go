package models

import "time"

// Follow represents a directed follow relationship. The document id is the
// deterministic "followerId:followingId" pair key, so at most one record
// can exist per ordered pair. The relation is not symmetric.
type Follow struct {
	ID          string    `json:"id" bson:"_id"`
	FollowerID  string    `json:"follower_id" bson:"followerId"`
	FollowingID string    `json:"following_id" bson:"followingId"`
	Timestamp   time.Time `json:"timestamp" bson:"timestamp"`
}
