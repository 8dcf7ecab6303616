package shared

// CatalogSource identifies which external catalog contributed metadata.
type CatalogSource string

const (
	SourceDiscogs     CatalogSource = "discogs"
	SourceMusicBrainz CatalogSource = "musicbrainz"
	SourceAllMusic    CatalogSource = "allmusic"
	SourceSpotify     CatalogSource = "spotify"
)

// TrackDescriptor is the immutable input to one resolution: the raw,
// inconsistently formatted strings a streaming playlist hands us.
type TrackDescriptor struct {
	TrackName    string `json:"track_name"`
	ArtistCredit string `json:"artist_credit"`
	AlbumName    string `json:"album_name,omitempty"`
	SpotifyID    string `json:"spotify_id,omitempty"`
	IsLocal      bool   `json:"is_local,omitempty"`
}

// CatalogRelease is one candidate release record returned by a catalog
// search or fetch. Discogs search rows carry a combined "Artist - Title"
// title which the adapter splits before building this.
type CatalogRelease struct {
	ID       string
	Title    string
	Artists  []string
	ArtistID string // primary credited artist, when the catalog exposes one
	Genres   []string
	Styles   []string
	Year     string
	Source   CatalogSource
}

// CatalogArtist is one candidate from a catalog's artist index.
type CatalogArtist struct {
	ID   string
	Name string
}

// TagSet is a single source's contribution of genre/style terms, in the
// order that source reported them.
type TagSet struct {
	Source CatalogSource
	Genres []string
	Styles []string
}

// ResolutionResult is the terminal output of one resolution. Genres and
// Styles contain no duplicates and preserve the order in which sources
// contributed them.
type ResolutionResult struct {
	Genres  []string
	Styles  []string
	Matched bool
	Source  CatalogSource
}

// TrackReport is one enriched row of the final artifact.
type TrackReport struct {
	Track         TrackDescriptor
	ArtistNames   []string
	SpotifyGenres []string
	Result        ResolutionResult
	AllGenres     []string
	AllStyles     []string
}

// Playlist holds the retrieved playlist metadata plus its track descriptors.
type Playlist struct {
	ID     string
	Name   string
	Owner  string
	Tracks []TrackDescriptor
}

// PlaylistSummary is one row of a playlist search.
type PlaylistSummary struct {
	ID         string
	Name       string
	Owner      string
	TrackCount int
}

// EnrichStats summarizes one enrichment run.
type EnrichStats struct {
	MatchedCount   int
	UnmatchedCount int
	SkippedCount   int
	SourceCounts   map[CatalogSource]int
}

// NewEnrichStats returns zeroed stats with the source counter initialized.
func NewEnrichStats() *EnrichStats {
	return &EnrichStats{SourceCounts: make(map[CatalogSource]int)}
}

// Record updates the stats with one resolution outcome.
func (s *EnrichStats) Record(result ResolutionResult) {
	if result.Matched {
		s.MatchedCount++
		s.SourceCounts[result.Source]++
	} else {
		s.UnmatchedCount++
	}
}
