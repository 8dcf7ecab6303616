package musicbrainz

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"playlist-enricher/internal/shared"
)

// 1. Constants and types
const (
	defaultBaseURL    = "https://musicbrainz.org/ws/2/"
	defaultUserAgent  = "playlist-enricher/1.0 ( https://github.com/playlist-enricher )"
	defaultTimeout    = 30 * time.Second
	defaultRateLimit  = 1100 * time.Millisecond // MusicBrainz asks for at most 1 request per second
	defaultBurstLimit = 1
)

// Config holds configuration for the MusicBrainz API client
type Config struct {
	BaseURL   string        `json:"base_url"`
	UserAgent string        `json:"user_agent"`
	Timeout   time.Duration `json:"timeout"`
	RateLimit time.Duration `json:"rate_limit"`
	Burst     int           `json:"burst"`
	Debug     bool          `json:"debug"`
}

// Client is a MusicBrainz web service client. Like the Discogs client it
// performs exactly one request per call and leaves retrying to the caller.
type Client struct {
	httpClient  *http.Client
	config      Config
	rateLimiter *rate.Limiter
}

// 2. Constructor and configuration

// DefaultConfig returns sensible defaults for the MusicBrainz client
func DefaultConfig() Config {
	return Config{
		BaseURL:   defaultBaseURL,
		UserAgent: defaultUserAgent,
		Timeout:   defaultTimeout,
		RateLimit: defaultRateLimit,
		Burst:     defaultBurstLimit,
	}
}

// NewClient creates a new MusicBrainz client with default configuration
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new MusicBrainz client with custom configuration
func NewClientWithConfig(config Config) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		config:      config,
		rateLimiter: rate.NewLimiter(rate.Every(config.RateLimit), config.Burst),
	}
}

// GetConfig returns the current client configuration
func (c *Client) GetConfig() Config {
	return c.config
}

// 3. Core HTTP methods (private)

func (c *Client) makeRequest(ctx context.Context, path string) (*http.Response, error) {
	reqURL, err := url.Parse(c.config.BaseURL + path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	shared.DebugPrint(c.config.Debug, "musicbrainz: GET %s", reqURL.String())
	return c.httpClient.Do(req)
}

// get makes a single rate-limited GET request to the MusicBrainz API
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	resp, err := c.makeRequest(ctx, path)
	if err != nil {
		if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
			return nil, &shared.HTTPError{
				StatusCode: http.StatusGatewayTimeout,
				Status:     "Gateway Timeout",
				Message:    err.Error(),
			}
		}
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, shared.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		message := string(body)
		if len(message) > 200 {
			message = message[:200] + "..."
		}
		return nil, &shared.HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Message:    message,
		}
	}

	return body, nil
}

// 4. Public API methods

// SearchRelease searches for releases matching a title and optional artist.
// Returns shared.ErrNotFound when the search comes back empty.
func (c *Client) SearchRelease(ctx context.Context, title, artist string, limit int) ([]shared.CatalogRelease, error) {
	if title == "" {
		return nil, fmt.Errorf("release title cannot be empty")
	}

	query := buildQuery("release", title, artist)
	path := fmt.Sprintf("release/?query=%s&fmt=json&limit=%d", url.QueryEscape(query), limit)
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	var result struct {
		Releases []entity `json:"releases"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal release search result: %w", err)
	}
	return entitiesToReleases(result.Releases)
}

// SearchRecording searches for recordings matching a title and optional
// artist.
func (c *Client) SearchRecording(ctx context.Context, title, artist string, limit int) ([]shared.CatalogRelease, error) {
	if title == "" {
		return nil, fmt.Errorf("recording title cannot be empty")
	}

	query := buildQuery("recording", title, artist)
	path := fmt.Sprintf("recording/?query=%s&fmt=json&limit=%d", url.QueryEscape(query), limit)
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	var result struct {
		Recordings []entity `json:"recordings"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recording search result: %w", err)
	}
	return entitiesToReleases(result.Recordings)
}

// GetArtistTags returns the community tags attached to an artist, most
// popular first. An artist without tags yields an empty slice, not an error.
func (c *Client) GetArtistTags(ctx context.Context, artistID string) ([]string, error) {
	if artistID == "" {
		return nil, fmt.Errorf("artist ID cannot be empty")
	}

	path := fmt.Sprintf("artist/%s?inc=tags&fmt=json", url.PathEscape(artistID))
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	var result struct {
		Tags []struct {
			Name  string `json:"name"`
			Count int    `json:"count"`
		} `json:"tags"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal artist tags: %w", err)
	}

	tags := make([]string, 0, len(result.Tags))
	for _, tag := range result.Tags {
		if tag.Name != "" {
			tags = append(tags, tag.Name)
		}
	}
	return tags, nil
}

// 5. Helpers

// entity is the common shape of release and recording search rows.
type entity struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Date         string `json:"date"`
	ArtistCredit []struct {
		Name   string `json:"name"`
		Artist struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"artist"`
	} `json:"artist-credit"`
}

func entitiesToReleases(entities []entity) ([]shared.CatalogRelease, error) {
	if len(entities) == 0 {
		return nil, shared.ErrNotFound
	}
	releases := make([]shared.CatalogRelease, 0, len(entities))
	for _, e := range entities {
		release := shared.CatalogRelease{
			ID:     e.ID,
			Title:  e.Title,
			Source: shared.SourceMusicBrainz,
		}
		if len(e.Date) >= 4 {
			release.Year = e.Date[:4]
		}
		for _, credit := range e.ArtistCredit {
			release.Artists = append(release.Artists, credit.Artist.Name)
		}
		if len(e.ArtistCredit) > 0 {
			release.ArtistID = e.ArtistCredit[0].Artist.ID
		}
		releases = append(releases, release)
	}
	return releases, nil
}

// buildQuery assembles the field:"value" AND-combination query grammar used
// by the MusicBrainz search endpoints.
func buildQuery(field, title, artist string) string {
	parts := []string{fmt.Sprintf("%s:%q", field, title)}
	if artist != "" {
		parts = append(parts, fmt.Sprintf("artist:%q", artist))
	}
	return strings.Join(parts, " AND ")
}
