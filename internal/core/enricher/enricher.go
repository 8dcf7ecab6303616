// Package enricher drives the per-playlist enrichment loop: fetch the
// playlist, resolve every track strictly in order, merge the streaming
// genre hints with the catalog result and pace the outbound requests.
package enricher

import (
	"context"
	"time"

	"github.com/cheggaaa/pb/v3"

	"playlist-enricher/internal/core/resolver"
	"playlist-enricher/internal/interfaces"
	"playlist-enricher/internal/match"
	"playlist-enricher/internal/shared"
)

// Options tunes one enrichment run.
type Options struct {
	// PacingDelay is slept between consecutive tracks, never after the last.
	PacingDelay time.Duration

	// ShowProgress renders a progress bar on the terminal.
	ShowProgress bool

	// Sleep is swapped out in tests.
	Sleep func(time.Duration)
}

// Enricher processes playlists track by track. It holds no per-run state;
// each Run returns its own report and stats.
type Enricher struct {
	playlists interfaces.PlaylistSource
	resolver  interfaces.TrackResolver
	logger    interfaces.LoggerService
	warnings  interfaces.WarningCollectorService
	options   Options
}

// New creates an enricher for the given playlist source and resolver.
func New(playlists interfaces.PlaylistSource, trackResolver interfaces.TrackResolver,
	logger interfaces.LoggerService, warnings interfaces.WarningCollectorService, options Options) *Enricher {
	if options.Sleep == nil {
		options.Sleep = time.Sleep
	}
	return &Enricher{
		playlists: playlists,
		resolver:  trackResolver,
		logger:    logger,
		warnings:  warnings,
		options:   options,
	}
}

// Run fetches the playlist and enriches every track in playlist order.
// Cancellation is honored between tracks only; a track that has started
// resolving runs to completion.
func (e *Enricher) Run(ctx context.Context, playlistID string) (*shared.Playlist, []shared.TrackReport, *shared.EnrichStats, error) {
	playlist, err := e.playlists.GetPlaylist(ctx, playlistID)
	if err != nil {
		return nil, nil, nil, err
	}
	e.logger.Info("Enriching playlist '%s' (%d tracks)", playlist.Name, len(playlist.Tracks))

	var bar *pb.ProgressBar
	if e.options.ShowProgress {
		bar = pb.StartNew(len(playlist.Tracks))
	}

	stats := shared.NewEnrichStats()
	reports := make([]shared.TrackReport, 0, len(playlist.Tracks))

	for i, track := range playlist.Tracks {
		if i > 0 {
			select {
			case <-ctx.Done():
				if bar != nil {
					bar.Finish()
				}
				return playlist, reports, stats, ctx.Err()
			default:
			}
			e.options.Sleep(e.options.PacingDelay)
		}

		if track.IsLocal {
			stats.SkippedCount++
			e.warnings.AddLocalTrackSkippedWarning(track.TrackName)
			if bar != nil {
				bar.Increment()
			}
			continue
		}

		report := e.EnrichTrack(ctx, track)
		stats.Record(report.Result)
		reports = append(reports, report)

		if bar != nil {
			bar.Increment()
		}
	}

	if bar != nil {
		bar.Finish()
	}
	return playlist, reports, stats, nil
}

// EnrichTrack resolves a single track and merges the streaming artist genre
// hints ahead of the catalog tags, so hints lead the combined list.
func (e *Enricher) EnrichTrack(ctx context.Context, track shared.TrackDescriptor) shared.TrackReport {
	artistNames := match.SplitArtists(track.ArtistCredit)
	hints := e.collectGenreHints(ctx, artistNames)

	result := e.resolver.Resolve(ctx, track)
	if result.Matched {
		e.logger.Debug("resolved %q via %s: %v", track.TrackName, result.Source, result.Genres)
	} else {
		e.logger.Debug("no match for %q by %q", track.TrackName, track.ArtistCredit)
	}

	merged := resolver.MergeTagSets([]shared.TagSet{
		{Source: shared.SourceSpotify, Genres: hints},
		{Source: result.Source, Genres: result.Genres, Styles: result.Styles},
	})

	return shared.TrackReport{
		Track:         track,
		ArtistNames:   artistNames,
		SpotifyGenres: hints,
		Result:        result,
		AllGenres:     merged.Genres,
		AllStyles:     merged.Styles,
	}
}

// collectGenreHints asks the playlist source for each split artist's genres.
// Hint failures are advisory and never block the catalog resolution.
func (e *Enricher) collectGenreHints(ctx context.Context, artistNames []string) []string {
	var hints []string
	seen := make(map[string]bool)
	for _, name := range artistNames {
		genres, err := e.playlists.GetArtistGenres(ctx, name)
		if err != nil {
			e.warnings.AddSpotifyGenreHintWarning(name, err.Error())
			continue
		}
		for _, genre := range genres {
			if !seen[genre] {
				seen[genre] = true
				hints = append(hints, genre)
			}
		}
	}
	return hints
}
