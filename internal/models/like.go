package models

import "time"

// Like represents a like on a post. The document id is the deterministic
// "userId:postId" pair key, so at most one like can exist per pair and a
// toggle is a delete-by-key or insert-by-key, never a query-then-branch.
type Like struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"user_id" bson:"userId"`
	PostID    string    `json:"post_id" bson:"postId"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}
