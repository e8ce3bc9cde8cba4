// Package catalog talks to the Spotify Web API: a client-credentials token
// flow plus track/album search. Search results are what a client shares as
// a post; the core never calls this package.
package catalog

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/enzogallo/discover-backend/internal/models"
)

const (
	defaultAuthURL    = "https://accounts.spotify.com/api/token"
	defaultAPIBaseURL = "https://api.spotify.com/v1"
	searchLimit       = 20
)

// Client is a music catalog search client. It caches the access token
// until shortly before expiry; token refresh is serialized by a mutex.
type Client struct {
	clientID     string
	clientSecret string
	httpClient   *http.Client
	authURL      string
	apiBaseURL   string

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewClient creates a catalog client with the given API credentials.
func NewClient(clientID, clientSecret string) *Client {
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		authURL:      defaultAuthURL,
		apiBaseURL:   defaultAPIBaseURL,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	body := strings.NewReader("grant_type=client_credentials")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL, body)
	if err != nil {
		return "", err
	}
	credentials := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))
	req.Header.Set("Authorization", "Basic "+credentials)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("requesting catalog token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("catalog token endpoint returned %d", resp.StatusCode)
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("decoding catalog token: %w", err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("catalog token response had no access_token")
	}

	c.accessToken = token.AccessToken
	// Refresh a minute early so an almost-expired token is never used.
	c.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn)*time.Second - time.Minute)
	return c.accessToken, nil
}

type searchResponse struct {
	Albums struct {
		Items []albumItem `json:"items"`
	} `json:"albums"`
	Tracks struct {
		Items []trackItem `json:"items"`
	} `json:"tracks"`
}

type albumItem struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Artists []artistItem `json:"artists"`
	Images  []imageItem  `json:"images"`
	URLs    externalURLs `json:"external_urls"`
}

type trackItem struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Artists []artistItem `json:"artists"`
	Album   struct {
		Images []imageItem `json:"images"`
	} `json:"album"`
	URLs externalURLs `json:"external_urls"`
}

type artistItem struct {
	Name string `json:"name"`
}

type imageItem struct {
	URL string `json:"url"`
}

type externalURLs struct {
	Spotify string `json:"spotify"`
}

// Search queries the catalog for tracks and albums matching the query.
// Albums are listed before tracks, matching the share screen's ordering.
func (c *Client) Search(ctx context.Context, query string) ([]models.MusicItem, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/search?q=%s&type=track,album&limit=%d",
		c.apiBaseURL, url.QueryEscape(query), searchLimit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("searching catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog search returned %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding catalog search: %w", err)
	}

	results := make([]models.MusicItem, 0, len(parsed.Albums.Items)+len(parsed.Tracks.Items))
	for _, album := range parsed.Albums.Items {
		r := models.MusicItem{
			ID:         album.ID,
			Title:      album.Name,
			SpotifyID:  album.ID,
			SpotifyURL: album.URLs.Spotify,
			IsAlbum:    true,
		}
		if len(album.Artists) > 0 {
			r.Artist = album.Artists[0].Name
		}
		if len(album.Images) > 0 {
			r.CoverArtURL = album.Images[0].URL
		}
		results = append(results, r)
	}
	for _, track := range parsed.Tracks.Items {
		r := models.MusicItem{
			ID:         track.ID,
			Title:      track.Name,
			SpotifyID:  track.ID,
			SpotifyURL: track.URLs.Spotify,
			IsAlbum:    false,
		}
		if len(track.Artists) > 0 {
			r.Artist = track.Artists[0].Name
		}
		if len(track.Album.Images) > 0 {
			r.CoverArtURL = track.Album.Images[0].URL
		}
		results = append(results, r)
	}
	return results, nil
}

