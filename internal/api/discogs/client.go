package discogs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"playlist-enricher/internal/shared"
)

// 1. Constants and types
const (
	defaultBaseURL    = "https://api.discogs.com/"
	defaultUserAgent  = "playlist-enricher/1.0 +https://github.com/playlist-enricher"
	defaultTimeout    = 30 * time.Second
	defaultRateLimit  = 1100 * time.Millisecond // Discogs allows ~60 authenticated requests per minute
	defaultBurstLimit = 2
)

// Config holds configuration for the Discogs API client
type Config struct {
	BaseURL   string        `json:"base_url"`
	UserAgent string        `json:"user_agent"`
	Token     string        `json:"token"`
	Timeout   time.Duration `json:"timeout"`
	RateLimit time.Duration `json:"rate_limit"`
	Burst     int           `json:"burst"`
	Debug     bool          `json:"debug"`
}

// Client is a Discogs database API client. It is a pure I/O boundary: one
// request per call, no retries. Callers compose shared.RetryPolicy around it.
type Client struct {
	httpClient  *http.Client
	config      Config
	rateLimiter *rate.Limiter
}

// 2. Constructor and configuration

// DefaultConfig returns sensible defaults for the Discogs API client
func DefaultConfig(token string) Config {
	return Config{
		BaseURL:   defaultBaseURL,
		UserAgent: defaultUserAgent,
		Token:     token,
		Timeout:   defaultTimeout,
		RateLimit: defaultRateLimit,
		Burst:     defaultBurstLimit,
	}
}

// NewClient creates a new Discogs client authenticated with a user token
func NewClient(token string) *Client {
	return NewClientWithConfig(DefaultConfig(token))
}

// NewClientWithConfig creates a new Discogs client with custom configuration
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

func (c *Client) makeRequest(ctx context.Context, path string, params url.Values) (*http.Response, error) {
	reqURL, err := url.Parse(c.config.BaseURL + path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if params != nil {
		reqURL.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")
	if c.config.Token != "" {
		req.Header.Set("Authorization", "Discogs token="+c.config.Token)
	}

	shared.DebugPrint(c.config.Debug, "discogs: GET %s", reqURL.String())
	return c.httpClient.Do(req)
}

// get makes a single rate-limited GET request to the Discogs API
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	resp, err := c.makeRequest(ctx, path, params)
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

// SearchReleases searches the release database by free-text query and
// artist name. Returns shared.ErrNotFound when the search comes back empty.
func (c *Client) SearchReleases(ctx context.Context, query, artist string, limit int) ([]shared.CatalogRelease, error) {
	params := url.Values{}
	if query != "" {
		params.Set("q", query)
	}
	if artist != "" {
		params.Set("artist", artist)
	}
	params.Set("type", "release")
	params.Set("per_page", strconv.Itoa(limit))

	body, err := c.get(ctx, "database/search", params)
	if err != nil {
		return nil, err
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal release search result: %w", err)
	}
	if len(result.Results) == 0 {
		return nil, shared.ErrNotFound
	}

	releases := make([]shared.CatalogRelease, 0, len(result.Results))
	for _, row := range result.Results {
		releases = append(releases, searchRowToRelease(row))
	}
	return releases, nil
}

// SearchArtists searches the artist index by name.
func (c *Client) SearchArtists(ctx context.Context, name string, limit int) ([]shared.CatalogArtist, error) {
	params := url.Values{}
	params.Set("q", name)
	params.Set("type", "artist")
	params.Set("per_page", strconv.Itoa(limit))

	body, err := c.get(ctx, "database/search", params)
	if err != nil {
		return nil, err
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal artist search result: %w", err)
	}
	if len(result.Results) == 0 {
		return nil, shared.ErrNotFound
	}

	artists := make([]shared.CatalogArtist, 0, len(result.Results))
	for _, row := range result.Results {
		artists = append(artists, shared.CatalogArtist{
			ID:   strconv.Itoa(row.ID),
			Name: row.Title, // artist rows carry the name in the title field
		})
	}
	return artists, nil
}

// GetArtistReleases returns releases credited to an artist, most relevant
// first.
func (c *Client) GetArtistReleases(ctx context.Context, artistName string, limit int) ([]shared.CatalogRelease, error) {
	return c.SearchReleases(ctx, "", artistName, limit)
}

// GetRelease fetches the full release record, including the authoritative
// genre and style arrays.
func (c *Client) GetRelease(ctx context.Context, id string) (*shared.CatalogRelease, error) {
	if id == "" {
		return nil, fmt.Errorf("release id cannot be empty")
	}

	body, err := c.get(ctx, "releases/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var release Release
	if err := json.Unmarshal(body, &release); err != nil {
		return nil, fmt.Errorf("failed to unmarshal release %s: %w", id, err)
	}

	out := &shared.CatalogRelease{
		ID:     strconv.Itoa(release.ID),
		Title:  release.Title,
		Genres: release.Genres,
		Styles: release.Styles,
		Source: shared.SourceDiscogs,
	}
	if release.Year > 0 {
		out.Year = strconv.Itoa(release.Year)
	}
	for _, artist := range release.Artists {
		out.Artists = append(out.Artists, artist.Name)
	}
	if len(release.Artists) > 0 {
		out.ArtistID = strconv.Itoa(release.Artists[0].ID)
	}
	return out, nil
}

// searchRowToRelease converts one search row. Release rows use a combined
// "Artist - Title" title, which is split so the verification gate can score
// artist and title independently.
func searchRowToRelease(row searchResult) shared.CatalogRelease {
	release := shared.CatalogRelease{
		ID:     strconv.Itoa(row.ID),
		Title:  row.Title,
		Year:   row.Year,
		Genres: row.Genres,
		Styles: row.Styles,
		Source: shared.SourceDiscogs,
	}
	if artist, title, found := strings.Cut(row.Title, " - "); found {
		release.Title = strings.TrimSpace(title)
		release.Artists = []string{strings.TrimSpace(artist)}
	}
	return release
}
