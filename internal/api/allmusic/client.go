// Package allmusic scrapes genre and style assignments from AllMusic pages.
// It is the last-resort source: an HTML search-results page followed by a
// detail page, both parsed best-effort. Expect it to break before the API
// catalogs do.
package allmusic

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/time/rate"

	"playlist-enricher/internal/shared"
)

const (
	defaultBaseURL   = "https://www.allmusic.com"
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	defaultTimeout   = 10 * time.Second
	defaultRateLimit = 2 * time.Second
)

// Config holds configuration for the AllMusic scraper
type Config struct {
	BaseURL   string        `json:"base_url"`
	UserAgent string        `json:"user_agent"`
	Timeout   time.Duration `json:"timeout"`
	RateLimit time.Duration `json:"rate_limit"`
	Debug     bool          `json:"debug"`
}

// Client fetches and parses AllMusic search and detail pages.
type Client struct {
	httpClient  *http.Client
	config      Config
	rateLimiter *rate.Limiter
}

// DefaultConfig returns sensible defaults for the AllMusic scraper
func DefaultConfig() Config {
	return Config{
		BaseURL:   defaultBaseURL,
		UserAgent: defaultUserAgent,
		Timeout:   defaultTimeout,
		RateLimit: defaultRateLimit,
	}
}

// NewClient creates a new AllMusic scraper with default configuration
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new AllMusic scraper with custom configuration
func NewClientWithConfig(config Config) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		config:      config,
		rateLimiter: rate.NewLimiter(rate.Every(config.RateLimit), 1),
	}
}

// Search looks up genre/style information for a track. The search-results
// page is scanned for a result whose text contains the query; its link is
// followed and the genre/style containers on the detail page are read.
// Returns shared.ErrNotFound when no usable result is on the page.
func (c *Client) Search(ctx context.Context, title, artist string) ([]string, []string, error) {
	query := title
	if artist != "" {
		query = artist + " " + title
	}

	searchURL := c.config.BaseURL + "/search/all/" + url.PathEscape(query)
	doc, err := c.fetch(ctx, searchURL)
	if err != nil {
		return nil, nil, err
	}

	detailURL := pickResultLink(doc, title, artist)
	if detailURL == "" {
		return nil, nil, shared.ErrNotFound
	}
	if strings.HasPrefix(detailURL, "/") {
		detailURL = c.config.BaseURL + detailURL
	}

	detail, err := c.fetch(ctx, detailURL)
	if err != nil {
		return nil, nil, err
	}

	genres := linkTexts(findByClass(detail, "genre"))
	styles := linkTexts(findByClass(detail, "styles"))
	if len(genres) == 0 && len(styles) == 0 {
		return nil, nil, shared.ErrNotFound
	}
	return genres, styles, nil
}

// fetch retrieves one page and parses it into an HTML tree.
func (c *Client) fetch(ctx context.Context, pageURL string) (*html.Node, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)

	shared.DebugPrint(c.config.Debug, "allmusic: GET %s", pageURL)
	resp, err := c.httpClient.Do(req)
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

	if resp.StatusCode == http.StatusNotFound {
		return nil, shared.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &shared.HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Message:    "unexpected status fetching " + pageURL,
		}
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	return doc, nil
}

// pickResultLink scans the search-result blocks for the first one whose
// cleaned text contains both the cleaned title and the cleaned artist, and
// returns its link target. Title and artist are checked independently since
// result blocks render them in varying order.
func pickResultLink(doc *html.Node, title, artist string) string {
	wantTitle := cleanText(title)
	wantArtist := cleanText(artist)
	for _, result := range findAllByClass(doc, "search-result") {
		text := cleanText(nodeText(result))
		if wantTitle != "" && !strings.Contains(text, wantTitle) {
			continue
		}
		if wantArtist != "" && !strings.Contains(text, wantArtist) {
			continue
		}
		if link := firstLink(result); link != "" {
			return link
		}
	}
	return ""
}

// cleanText collapses whitespace and lowercases, mirroring how the result
// blocks render artist and title fragments across nested elements.
func cleanText(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// --- HTML tree helpers ---

func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func findByClass(n *html.Node, class string) *html.Node {
	if hasClass(n, class) {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findByClass(child, class); found != nil {
			return found
		}
	}
	return nil
}

func findAllByClass(n *html.Node, class string) []*html.Node {
	var nodes []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if hasClass(n, class) {
			nodes = append(nodes, n)
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return nodes
}

func nodeText(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		b.WriteString(nodeText(child))
		b.WriteString(" ")
	}
	return b.String()
}

// firstLink returns the href of the first anchor under n.
func firstLink(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.ElementNode && n.Data == "a" {
		for _, attr := range n.Attr {
			if attr.Key == "href" && attr.Val != "" {
				return attr.Val
			}
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if link := firstLink(child); link != "" {
			return link
		}
	}
	return ""
}

// linkTexts collects the trimmed text of every anchor under n.
func linkTexts(n *html.Node) []string {
	if n == nil {
		return nil
	}
	var texts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if text := strings.TrimSpace(strings.Join(strings.Fields(nodeText(n)), " ")); text != "" {
				texts = append(texts, text)
			}
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return texts
}
