package discogs

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"playlist-enricher/internal/shared"
)

func newTestClient(server *httptest.Server, token string) *Client {
	config := DefaultConfig(token)
	config.BaseURL = server.URL + "/"
	config.RateLimit = time.Millisecond
	config.Burst = 10
	return NewClientWithConfig(config)
}

func TestNewClient(t *testing.T) {
	client := NewClient("token")
	if client == nil {
		t.Fatal("NewClient() returned nil")
	}
	config := client.GetConfig()
	if config.BaseURL != defaultBaseURL {
		t.Errorf("Expected BaseURL %s, got %s", defaultBaseURL, config.BaseURL)
	}
	if config.Token != "token" {
		t.Errorf("Expected token to be kept, got %q", config.Token)
	}
}

func TestSearchReleases(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/database/search" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != "Kid A" || q.Get("artist") != "Radiohead" {
			t.Errorf("unexpected query %v", q)
		}
		if q.Get("type") != "release" || q.Get("per_page") != "5" {
			t.Errorf("unexpected type/per_page %v", q)
		}
		if got := r.Header.Get("Authorization"); got != "Discogs token=secret" {
			t.Errorf("Authorization = %q", got)
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("missing User-Agent header")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{
			"id": 123,
			"title": "Radiohead - Kid A",
			"year": "2000",
			"genre": ["Electronic", "Rock"],
			"style": ["IDM"]
		}]}`))
	}))
	defer server.Close()

	client := newTestClient(server, "secret")
	releases, err := client.SearchReleases(context.Background(), "Kid A", "Radiohead", 5)
	if err != nil {
		t.Fatalf("SearchReleases failed: %v", err)
	}
	if len(releases) != 1 {
		t.Fatalf("expected 1 release, got %d", len(releases))
	}

	release := releases[0]
	if release.ID != "123" {
		t.Errorf("ID = %q, want %q", release.ID, "123")
	}
	// Combined "Artist - Title" rows are split for independent verification.
	if release.Title != "Kid A" {
		t.Errorf("Title = %q, want %q", release.Title, "Kid A")
	}
	if len(release.Artists) != 1 || release.Artists[0] != "Radiohead" {
		t.Errorf("Artists = %v, want [Radiohead]", release.Artists)
	}
	if len(release.Genres) != 2 || release.Genres[0] != "Electronic" {
		t.Errorf("Genres = %v", release.Genres)
	}
	if release.Source != shared.SourceDiscogs {
		t.Errorf("Source = %q, want %q", release.Source, shared.SourceDiscogs)
	}
}

func TestSearchReleasesEmptyIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	}))
	defer server.Close()

	client := newTestClient(server, "")
	_, err := client.SearchReleases(context.Background(), "nothing", "", 5)
	if !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSearchArtistsUsesTitleField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("type"); got != "artist" {
			t.Errorf("type = %q, want artist", got)
		}
		w.Write([]byte(`{"results":[{"id": 45, "title": "Aphex Twin"}]}`))
	}))
	defer server.Close()

	client := newTestClient(server, "")
	artists, err := client.SearchArtists(context.Background(), "Aphex Twin", 5)
	if err != nil {
		t.Fatalf("SearchArtists failed: %v", err)
	}
	if len(artists) != 1 || artists[0].Name != "Aphex Twin" || artists[0].ID != "45" {
		t.Errorf("artists = %v", artists)
	}
}

func TestGetRelease(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/releases/123" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{
			"id": 123,
			"title": "Kid A",
			"year": 2000,
			"genres": ["Electronic"],
			"styles": ["IDM", "Experimental"],
			"artists": [{"id": 45, "name": "Radiohead"}]
		}`))
	}))
	defer server.Close()

	client := newTestClient(server, "")
	release, err := client.GetRelease(context.Background(), "123")
	if err != nil {
		t.Fatalf("GetRelease failed: %v", err)
	}
	if release.Title != "Kid A" || release.Year != "2000" {
		t.Errorf("unexpected release %+v", release)
	}
	if len(release.Styles) != 2 {
		t.Errorf("Styles = %v", release.Styles)
	}
	if release.ArtistID != "45" {
		t.Errorf("ArtistID = %q, want 45", release.ArtistID)
	}
}

func TestGetReleaseEmptyID(t *testing.T) {
	client := NewClient("")
	if _, err := client.GetRelease(context.Background(), ""); err == nil {
		t.Error("expected an error for empty release id")
	}
}

func TestNotFoundStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server, "")
	_, err := client.GetRelease(context.Background(), "999")
	if !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestServerErrorIsHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("overloaded"))
	}))
	defer server.Close()

	client := newTestClient(server, "")
	_, err := client.SearchReleases(context.Background(), "x", "", 1)

	var httpErr *shared.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("StatusCode = %d, want 503", httpErr.StatusCode)
	}
	if !shared.IsTransient(err) {
		t.Error("a 503 should be transient")
	}
}
