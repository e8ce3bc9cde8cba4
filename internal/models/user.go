package models

import "time"

// User represents a Discover account stored in MongoDB. The document id is
// the Firebase UID of the account. Pseudonyms are unique across users, but
// uniqueness is enforced at write time by the services layer, not by an
// index (the store carries no schema).
type User struct {
	ID                string     `json:"id" bson:"_id"`
	Pseudonym         string     `json:"pseudonym" bson:"pseudonym"`
	CreatedAt         time.Time  `json:"created_at" bson:"createdAt"`
	ProfilePictureURL string     `json:"profile_picture_url,omitempty" bson:"profilePictureURL,omitempty"`
	CurrentStreak     int        `json:"current_streak" bson:"currentStreak"`
	LongestStreak     int        `json:"longest_streak" bson:"longestStreak"`
	LastPostDate      *time.Time `json:"last_post_date,omitempty" bson:"lastPostDate,omitempty"`
}

// RegisterUserRequest defines the request body for creating an account.
// ProfilePictureURL may be a regular URL or a base64 data URI; it is stored
// verbatim either way, so no url validation is applied to it.
type RegisterUserRequest struct {
	Pseudonym         string `json:"pseudonym" validate:"required,min=3,max=15"`
	ProfilePictureURL string `json:"profile_picture_url,omitempty"`
}

// UpdateProfileRequest defines the request body for editing a profile.
type UpdateProfileRequest struct {
	Pseudonym         string  `json:"pseudonym" validate:"required,min=3,max=15"`
	ProfilePictureURL *string `json:"profile_picture_url,omitempty"`
}

// StreakResponse reports both the stored streak counters and the derived
// active streak, which reads as zero once the run is more than a day old
// even though the stored counter is only rewritten on the next post.
type StreakResponse struct {
	UserID        string     `json:"user_id"`
	CurrentStreak int        `json:"current_streak"`
	ActiveStreak  int        `json:"active_streak"`
	LongestStreak int        `json:"longest_streak"`
	LastPostDate  *time.Time `json:"last_post_date,omitempty"`
}
