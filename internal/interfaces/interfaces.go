package interfaces

import (
	"context"

	"playlist-enricher/internal/shared"
)

// ReleaseCatalog is the primary marketplace catalog (Discogs): release
// search, artist index search and full-record fetch. Search methods report
// an empty result as shared.ErrNotFound, never as a nil error with an empty
// slice.
type ReleaseCatalog interface {
	// SearchReleases searches releases by free-text query and artist name
	SearchReleases(ctx context.Context, query, artist string, limit int) ([]shared.CatalogRelease, error)

	// SearchArtists searches the catalog's artist index by name
	SearchArtists(ctx context.Context, name string, limit int) ([]shared.CatalogArtist, error)

	// GetArtistReleases returns releases credited to an artist, most relevant first
	GetArtistReleases(ctx context.Context, artistName string, limit int) ([]shared.CatalogRelease, error)

	// GetRelease fetches the full release record including genres and styles
	GetRelease(ctx context.Context, id string) (*shared.CatalogRelease, error)
}

// TagCatalog is the encyclopedia catalog (MusicBrainz): entity search plus
// artist tag retrieval. Search methods report an empty result as
// shared.ErrNotFound, never as a nil error with an empty slice.
type TagCatalog interface {
	// SearchRelease searches releases by title and optional artist
	SearchRelease(ctx context.Context, title, artist string, limit int) ([]shared.CatalogRelease, error)

	// SearchRecording searches recordings by title and optional artist
	SearchRecording(ctx context.Context, title, artist string, limit int) ([]shared.CatalogRelease, error)

	// GetArtistTags returns the tags attached to an artist
	GetArtistTags(ctx context.Context, artistID string) ([]string, error)
}

// GenreScraper is the last-resort scraped source (AllMusic).
type GenreScraper interface {
	// Search returns genre and style assignments for a track
	Search(ctx context.Context, title, artist string) (genres []string, styles []string, err error)
}

// PlaylistSource supplies track descriptors from the streaming catalog.
type PlaylistSource interface {
	// Authenticate authenticates against the streaming catalog
	Authenticate(ctx context.Context) error

	// GetPlaylist fetches a playlist and its track descriptors
	GetPlaylist(ctx context.Context, ref string) (*shared.Playlist, error)

	// GetArtistGenres returns the streaming catalog's genres for one artist name
	GetArtistGenres(ctx context.Context, name string) ([]string, error)

	// SearchPlaylists searches public playlists by free-text query
	SearchPlaylists(ctx context.Context, query string, limit int) ([]shared.PlaylistSummary, error)
}

// TrackResolver resolves one track descriptor to genre/style metadata.
type TrackResolver interface {
	// Resolve runs the cascading lookup to a terminal outcome
	Resolve(ctx context.Context, track shared.TrackDescriptor) shared.ResolutionResult
}

// LoggerService defines the interface for logging operations
type LoggerService interface {
	// Info logs an informational message
	Info(message string, args ...interface{})

	// Warning logs a warning message
	Warning(message string, args ...interface{})

	// Error logs an error message
	Error(message string, args ...interface{})

	// Debug logs a debug message
	Debug(message string, args ...interface{})

	// Success logs a success message
	Success(message string, args ...interface{})

	// SetDebugMode enables or disables debug logging
	SetDebugMode(enabled bool)
}

// WarningCollectorService defines the interface for warning collection
type WarningCollectorService interface {
	// AddWarning adds a warning to the collection
	AddWarning(warningType shared.WarningType, context, message, details string)

	// AddDiscogsWarning adds a Discogs release lookup warning
	AddDiscogsWarning(artist, title, details string)

	// AddMusicBrainzWarning adds a MusicBrainz lookup warning
	AddMusicBrainzWarning(artist, title, details string)

	// AddAllMusicWarning adds an AllMusic scrape warning
	AddAllMusicWarning(artist, title, details string)

	// AddSpotifyGenreHintWarning adds a failed artist genre lookup warning
	AddSpotifyGenreHintWarning(artist, details string)

	// AddLocalTrackSkippedWarning adds a skipped local track warning
	AddLocalTrackSkippedWarning(trackName string)

	// HasWarnings returns true if there are any warnings
	HasWarnings() bool

	// GetWarningCount returns the total number of warnings
	GetWarningCount() int

	// PrintSummary prints a formatted summary of all warnings
	PrintSummary()
}
