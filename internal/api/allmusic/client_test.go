package allmusic

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"golang.org/x/net/html"

	"playlist-enricher/internal/shared"
)

const searchPage = `<html><body>
<div class="search-result">
  <div class="title"><a href="/album/kid-a-mw0000106343">Kid A</a></div>
  <div class="artist">Radiohead</div>
</div>
<div class="search-result">
  <div class="title"><a href="/album/unrelated">Something Else</a></div>
  <div class="artist">Other Band</div>
</div>
</body></html>`

const detailPage = `<html><body>
<div class="basic-info">
  <div class="genre">Genre: <a href="/genre/pop-rock">Pop/Rock</a></div>
  <div class="styles">
    <a href="/style/alternative">Alternative/Indie Rock</a>
    <a href="/style/experimental">Experimental Rock</a>
  </div>
</div>
</body></html>`

func newTestClient(server *httptest.Server) *Client {
	config := DefaultConfig()
	config.BaseURL = server.URL
	config.RateLimit = time.Millisecond
	return NewClientWithConfig(config)
}

func TestSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/search/all/"):
			if !strings.Contains(r.URL.Path, "Radiohead") {
				t.Errorf("search path %q does not carry the query", r.URL.Path)
			}
			w.Write([]byte(searchPage))
		case r.URL.Path == "/album/kid-a-mw0000106343":
			w.Write([]byte(detailPage))
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := newTestClient(server)
	genres, styles, err := client.Search(context.Background(), "Kid A", "Radiohead")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if want := []string{"Pop/Rock"}; !reflect.DeepEqual(genres, want) {
		t.Errorf("genres = %v, want %v", genres, want)
	}
	if want := []string{"Alternative/Indie Rock", "Experimental Rock"}; !reflect.DeepEqual(styles, want) {
		t.Errorf("styles = %v, want %v", styles, want)
	}
}

func TestSearchNoUsableResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><div class="search-result"><span>No link here</span></div></body></html>`))
	}))
	defer server.Close()

	client := newTestClient(server)
	_, _, err := client.Search(context.Background(), "Kid A", "Radiohead")
	if !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSearchDetailWithoutGenres(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/search/all/") {
			w.Write([]byte(searchPage))
			return
		}
		w.Write([]byte(`<html><body><div class="review">No metadata at all</div></body></html>`))
	}))
	defer server.Close()

	client := newTestClient(server)
	_, _, err := client.Search(context.Background(), "Kid A", "Radiohead")
	if !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSearchNotFoundStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server)
	_, _, err := client.Search(context.Background(), "Anything", "Anyone")
	if !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPickResultLinkMatchesTitleAndArtist(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(searchPage))
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}

	// Title and artist are matched independently of render order.
	if got := pickResultLink(doc, "Kid A", "Radiohead"); got != "/album/kid-a-mw0000106343" {
		t.Errorf("pickResultLink = %q, want the first matching result", got)
	}
	if got := pickResultLink(doc, "Something Else", "Other Band"); got != "/album/unrelated" {
		t.Errorf("pickResultLink = %q, want the second result", got)
	}
	if got := pickResultLink(doc, "Kid A", "Wrong Artist"); got != "" {
		t.Errorf("pickResultLink = %q, want no match for a wrong artist", got)
	}
}

func TestCleanText(t *testing.T) {
	if got := cleanText("  Kid   A \n Radiohead "); got != "kid a radiohead" {
		t.Errorf("cleanText = %q", got)
	}
}
