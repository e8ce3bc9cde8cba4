package models

import "time"

// Post represents one daily music share stored in MongoDB. UserPseudonym is
// a snapshot taken at post time; it is deliberately not kept in sync with
// later pseudonym changes. PostDay is the local calendar day the post
// counts against; together with UserID it forms the unique index that
// enforces one post per user per day at the store.
type Post struct {
	ID            string    `json:"id" bson:"_id"`
	UserID        string    `json:"user_id" bson:"userId"`
	UserPseudonym string    `json:"user_pseudonym" bson:"userPseudonym"`
	Timestamp     time.Time `json:"timestamp" bson:"timestamp"`
	PostDay       string    `json:"-" bson:"postDay"`
	MusicTitle    string    `json:"music_title" bson:"musicTitle"`
	ArtistName    string    `json:"artist_name" bson:"artistName"`
	SpotifyID     string    `json:"spotify_id" bson:"spotifyID"`
	CoverArtURL   string    `json:"cover_art_url" bson:"coverArtURL"`
	SpotifyURL    string    `json:"spotify_url" bson:"spotifyURL"`
	IsAlbum       bool      `json:"is_album" bson:"isAlbum"`
}

// CreatePostRequest defines the request body for sharing a track or album.
type CreatePostRequest struct {
	MusicTitle  string `json:"music_title" validate:"required,min=1,max=200"`
	ArtistName  string `json:"artist_name" validate:"required,min=1,max=200"`
	SpotifyID   string `json:"spotify_id" validate:"required"`
	CoverArtURL string `json:"cover_art_url" validate:"omitempty,url"`
	SpotifyURL  string `json:"spotify_url" validate:"omitempty,url"`
	IsAlbum     bool   `json:"is_album"`
}

// PostStatusResponse reports whether the authenticated user may still post
// today. CanPost and HasPostedToday are complements computed from the same
// day boundary.
type PostStatusResponse struct {
	CanPost        bool `json:"can_post"`
	HasPostedToday bool `json:"has_posted_today"`
}
