// Package resolver implements the cascading metadata lookup: strategies in
// strict priority order, every parsed artist candidate tried in turn, first
// verified match wins. One bad candidate never aborts a resolution.
package resolver

import (
	"context"
	"errors"

	"playlist-enricher/internal/interfaces"
	"playlist-enricher/internal/match"
	"playlist-enricher/internal/shared"
)

const defaultSearchLimit = 5

// Config tunes one resolver instance.
type Config struct {
	Threshold   float64
	SearchLimit int
	Retry       shared.RetryPolicy
}

// Resolver orchestrates the lookup across the release catalog, the tag
// catalog and the scraper. It is stateless with respect to results and safe
// to reuse across every track of a run.
type Resolver struct {
	releases interfaces.ReleaseCatalog
	tags     interfaces.TagCatalog
	scraper  interfaces.GenreScraper
	logger   interfaces.LoggerService
	warnings interfaces.WarningCollectorService
	config   Config
}

// New creates a resolver. Zero config fields get working defaults.
func New(releases interfaces.ReleaseCatalog, tags interfaces.TagCatalog, scraper interfaces.GenreScraper,
	logger interfaces.LoggerService, warnings interfaces.WarningCollectorService, config Config) *Resolver {
	if config.Threshold <= 0 {
		config.Threshold = match.DefaultThreshold
	}
	if config.SearchLimit <= 0 {
		config.SearchLimit = defaultSearchLimit
	}
	if config.Retry.Retryable == nil {
		config.Retry.Retryable = shared.IsTransient
	}
	return &Resolver{
		releases: releases,
		tags:     tags,
		scraper:  scraper,
		logger:   logger,
		warnings: warnings,
		config:   config,
	}
}

// Resolve runs the strategies in order and returns at the first verified
// match. On exhaustion it returns an empty, unmatched result rather than an
// error: batch-level forward progress beats per-item completeness.
func (r *Resolver) Resolve(ctx context.Context, track shared.TrackDescriptor) shared.ResolutionResult {
	candidates := match.ExtractArtistParts(track.ArtistCredit)

	strategies := []func(context.Context, shared.TrackDescriptor, []string) *shared.TagSet{
		r.albumStrategy,
		r.trackStrategy,
		r.artistStrategy,
		r.encyclopediaStrategy,
		r.scrapeStrategy,
	}

	for _, strategy := range strategies {
		if set := strategy(ctx, track, candidates); set != nil {
			result := MergeTagSets([]shared.TagSet{*set})
			result.Matched = true
			result.Source = set.Source
			return result
		}
	}

	return shared.ResolutionResult{}
}

// albumStrategy searches the release catalog by album name and accepts the
// first release whose title matches the album or whose artist matches the
// candidate. Only runs when the track has an album name.
func (r *Resolver) albumStrategy(ctx context.Context, track shared.TrackDescriptor, candidates []string) *shared.TagSet {
	if track.AlbumName == "" {
		return nil
	}
	for _, candidate := range candidates {
		var releases []shared.CatalogRelease
		err := r.config.Retry.Do(func() error {
			var err error
			releases, err = r.releases.SearchReleases(ctx, track.AlbumName, candidate, r.config.SearchLimit)
			return err
		})
		if err != nil {
			r.noteFailure(shared.SourceDiscogs, candidate, track.AlbumName, err)
			continue
		}
		if len(releases) == 0 {
			continue
		}
		release := releases[0]
		if !match.IsSimilar(release.Title, track.AlbumName, r.config.Threshold) &&
			!r.anyArtistSimilar(release.Artists, candidate) {
			r.debugf("album hit %q rejected for candidate %q", release.Title, candidate)
			continue
		}
		return r.releaseTags(ctx, release)
	}
	return nil
}

// trackStrategy searches the release catalog by track name. Release titles
// rarely equal track titles, so only the artist similarity gate applies.
func (r *Resolver) trackStrategy(ctx context.Context, track shared.TrackDescriptor, candidates []string) *shared.TagSet {
	for _, candidate := range candidates {
		var releases []shared.CatalogRelease
		err := r.config.Retry.Do(func() error {
			var err error
			releases, err = r.releases.SearchReleases(ctx, track.TrackName, candidate, r.config.SearchLimit)
			return err
		})
		if err != nil {
			r.noteFailure(shared.SourceDiscogs, candidate, track.TrackName, err)
			continue
		}
		if len(releases) == 0 {
			continue
		}
		release := releases[0]
		if !r.anyArtistSimilar(release.Artists, candidate) {
			r.debugf("track hit %q rejected for candidate %q", release.Title, candidate)
			continue
		}
		return r.releaseTags(ctx, release)
	}
	return nil
}

// artistStrategy searches the artist index; when a similar artist exists,
// their most relevant release supplies the tags unconditionally.
func (r *Resolver) artistStrategy(ctx context.Context, track shared.TrackDescriptor, candidates []string) *shared.TagSet {
	for _, candidate := range candidates {
		var artists []shared.CatalogArtist
		err := r.config.Retry.Do(func() error {
			var err error
			artists, err = r.releases.SearchArtists(ctx, candidate, r.config.SearchLimit)
			return err
		})
		if err != nil {
			r.noteFailure(shared.SourceDiscogs, candidate, track.TrackName, err)
			continue
		}
		if len(artists) == 0 {
			continue
		}
		artist := artists[0]
		if !match.IsSimilar(artist.Name, candidate, r.config.Threshold) {
			continue
		}

		var releases []shared.CatalogRelease
		err = r.config.Retry.Do(func() error {
			var err error
			releases, err = r.releases.GetArtistReleases(ctx, artist.Name, 1)
			return err
		})
		if err != nil || len(releases) == 0 {
			r.noteFailure(shared.SourceDiscogs, artist.Name, track.TrackName, err)
			continue
		}
		return r.releaseTags(ctx, releases[0])
	}
	return nil
}

// encyclopediaStrategy queries the tag catalog by album, then by track, and
// maps the first hit's primary artist to that artist's tags.
func (r *Resolver) encyclopediaStrategy(ctx context.Context, track shared.TrackDescriptor, _ []string) *shared.TagSet {
	if r.tags == nil {
		return nil
	}
	if track.AlbumName != "" {
		if set := r.artistTagLookup(ctx, track, track.AlbumName, r.tags.SearchRelease); set != nil {
			return set
		}
	}
	if track.TrackName != "" {
		if set := r.artistTagLookup(ctx, track, track.TrackName, r.tags.SearchRecording); set != nil {
			return set
		}
	}
	return nil
}

func (r *Resolver) artistTagLookup(ctx context.Context, track shared.TrackDescriptor, title string,
	search func(context.Context, string, string, int) ([]shared.CatalogRelease, error)) *shared.TagSet {
	var entities []shared.CatalogRelease
	err := r.config.Retry.Do(func() error {
		var err error
		entities, err = search(ctx, title, track.ArtistCredit, r.config.SearchLimit)
		return err
	})
	if err != nil {
		r.noteFailure(shared.SourceMusicBrainz, track.ArtistCredit, title, err)
		return nil
	}
	if len(entities) == 0 {
		return nil
	}
	artistID := entities[0].ArtistID
	if artistID == "" {
		return nil
	}

	var tags []string
	err = r.config.Retry.Do(func() error {
		var err error
		tags, err = r.tags.GetArtistTags(ctx, artistID)
		return err
	})
	if err != nil {
		r.noteFailure(shared.SourceMusicBrainz, track.ArtistCredit, title, err)
		return nil
	}
	if len(tags) == 0 {
		return nil
	}
	return &shared.TagSet{Source: shared.SourceMusicBrainz, Genres: tags}
}

// scrapeStrategy is the free-text last resort.
func (r *Resolver) scrapeStrategy(ctx context.Context, track shared.TrackDescriptor, _ []string) *shared.TagSet {
	if r.scraper == nil {
		return nil
	}
	var genres, styles []string
	err := r.config.Retry.Do(func() error {
		var err error
		genres, styles, err = r.scraper.Search(ctx, track.TrackName, track.ArtistCredit)
		return err
	})
	if err != nil {
		r.noteFailure(shared.SourceAllMusic, track.ArtistCredit, track.TrackName, err)
		return nil
	}
	if len(genres) == 0 && len(styles) == 0 {
		return nil
	}
	return &shared.TagSet{Source: shared.SourceAllMusic, Genres: genres, Styles: styles}
}

func (r *Resolver) anyArtistSimilar(artists []string, candidate string) bool {
	for _, artist := range artists {
		if match.IsSimilar(artist, candidate, r.config.Threshold) {
			return true
		}
	}
	return false
}

// releaseTags upgrades a search row to the full release record when an ID
// is available; the coarse search-row tags are the fallback.
func (r *Resolver) releaseTags(ctx context.Context, release shared.CatalogRelease) *shared.TagSet {
	full := release
	if release.ID != "" {
		var fetched *shared.CatalogRelease
		err := r.config.Retry.Do(func() error {
			var err error
			fetched, err = r.releases.GetRelease(ctx, release.ID)
			return err
		})
		if err == nil && fetched != nil {
			full = *fetched
		} else if err != nil {
			r.debugf("falling back to search-row tags for release %s: %v", release.ID, err)
		}
	}
	return &shared.TagSet{Source: shared.SourceDiscogs, Genres: full.Genres, Styles: full.Styles}
}

// noteFailure absorbs one candidate's failure: empty results only get a
// debug line, anything unexpected also lands in the warning summary.
func (r *Resolver) noteFailure(source shared.CatalogSource, artist, title string, err error) {
	if err == nil || errors.Is(err, shared.ErrNotFound) {
		r.debugf("%s: nothing found for %q / %q", source, artist, title)
		return
	}
	r.debugf("%s lookup failed for %q / %q: %v", source, artist, title, err)
	if r.warnings == nil {
		return
	}
	switch source {
	case shared.SourceMusicBrainz:
		r.warnings.AddMusicBrainzWarning(artist, title, err.Error())
	case shared.SourceAllMusic:
		r.warnings.AddAllMusicWarning(artist, title, err.Error())
	default:
		r.warnings.AddDiscogsWarning(artist, title, err.Error())
	}
}

func (r *Resolver) debugf(format string, args ...interface{}) {
	if r.logger != nil {
		r.logger.Debug(format, args...)
	}
}
