package models

import "time"

// MusicItem is a search result from the music catalog API. It carries
// everything a client needs to render and share a track or album.
type MusicItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	CoverArtURL string `json:"cover_art_url"`
	SpotifyURL  string `json:"spotify_url"`
	IsAlbum     bool   `json:"is_album"`
	SpotifyID   string `json:"spotify_id"`
}

// CachedSearch is a PostgreSQL row holding the serialized results of one
// catalog search query, so repeated searches within the TTL skip the
// upstream API.
type CachedSearch struct {
	ID        uint      `gorm:"primaryKey"`
	Query     string    `gorm:"uniqueIndex;size:255"`
	Results   []byte    `gorm:"type:jsonb"`
	FetchedAt time.Time `gorm:"index"`
}
