package models

import "time"

// Comment represents a comment on a post. Comments are append-only: there
// is no edit or delete endpoint, though they are cascade-deleted with their
// post. UserPseudonym is a snapshot, like on Post.
type Comment struct {
	ID            string    `json:"id" bson:"_id"`
	UserID        string    `json:"user_id" bson:"userId"`
	UserPseudonym string    `json:"user_pseudonym" bson:"userPseudonym"`
	PostID        string    `json:"post_id" bson:"postId"`
	Text          string    `json:"text" bson:"text"`
	Timestamp     time.Time `json:"timestamp" bson:"timestamp"`
}

// CreateCommentRequest defines the request body for commenting on a post.
// Text is trimmed by the service and must be non-empty after trimming.
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=500"`
}
