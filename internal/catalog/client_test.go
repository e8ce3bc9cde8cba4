package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/enzogallo/discover-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchBody = `{
	"albums": {"items": [
		{
			"id": "alb1",
			"name": "The Stranger",
			"artists": [{"name": "Billy Joel"}],
			"images": [{"url": "https://img.example/stranger.jpg"}],
			"external_urls": {"spotify": "https://open.spotify.com/album/alb1"}
		}
	]},
	"tracks": {"items": [
		{
			"id": "trk1",
			"name": "Vienna",
			"artists": [{"name": "Billy Joel"}],
			"album": {"images": [{"url": "https://img.example/vienna.jpg"}]},
			"external_urls": {"spotify": "https://open.spotify.com/track/trk1"}
		}
	]}
}`

func newTestClient(t *testing.T, tokenRequests *int32) *Client {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(tokenRequests, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NotEmpty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token": "tok-123", "expires_in": 3600}`))
	})
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.Equal(t, "billy joel", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchBody))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := NewClient("id", "secret")
	client.authURL = server.URL + "/token"
	client.apiBaseURL = server.URL
	return client
}

func TestSearchParsesAlbumsBeforeTracks(t *testing.T) {
	var tokenRequests int32
	client := newTestClient(t, &tokenRequests)

	results, err := client.Search(context.Background(), "billy joel")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, models.MusicItem{
		ID:          "alb1",
		Title:       "The Stranger",
		Artist:      "Billy Joel",
		CoverArtURL: "https://img.example/stranger.jpg",
		SpotifyURL:  "https://open.spotify.com/album/alb1",
		IsAlbum:     true,
		SpotifyID:   "alb1",
	}, results[0])

	assert.Equal(t, "trk1", results[1].SpotifyID)
	assert.False(t, results[1].IsAlbum)
	assert.Equal(t, "https://img.example/vienna.jpg", results[1].CoverArtURL)
}

func TestTokenIsReusedAcrossSearches(t *testing.T) {
	var tokenRequests int32
	client := newTestClient(t, &tokenRequests)
	ctx := context.Background()

	_, err := client.Search(ctx, "billy joel")
	require.NoError(t, err)
	_, err = client.Search(ctx, "billy joel")
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&tokenRequests))
}

func TestSearchTokenFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	t.Cleanup(server.Close)

	client := NewClient("id", "secret")
	client.authURL = server.URL
	client.apiBaseURL = server.URL

	_, err := client.Search(context.Background(), "billy joel")
	assert.Error(t, err)
}
