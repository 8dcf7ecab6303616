// Package report renders an enrichment run as a CSV artifact and a
// human-readable console summary.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"playlist-enricher/internal/shared"
)

var csvHeader = []string{
	"track_name", "artist_credit", "artist_names", "album_name",
	"matched", "source", "genres", "styles", "spotify_genres", "all_genres",
}

// WriteCSV writes one row per enriched track to path, creating or
// truncating the file.
func WriteCSV(path string, reports []shared.TrackReport) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}
	for _, report := range reports {
		row := []string{
			report.Track.TrackName,
			report.Track.ArtistCredit,
			strings.Join(report.ArtistNames, "; "),
			report.Track.AlbumName,
			strconv.FormatBool(report.Result.Matched),
			string(report.Result.Source),
			strings.Join(report.Result.Genres, "; "),
			strings.Join(report.Result.Styles, "; "),
			strings.Join(report.SpotifyGenres, "; "),
			strings.Join(report.AllGenres, "; "),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write report row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// GenreCount is one entry of a genre frequency ranking.
type GenreCount struct {
	Genre string
	Count int
}

// TopGenres ranks the combined genres across all reports, most frequent
// first with ties broken alphabetically, and returns at most limit entries.
func TopGenres(reports []shared.TrackReport, limit int) []GenreCount {
	counts := make(map[string]int)
	for _, report := range reports {
		for _, genre := range report.AllGenres {
			counts[genre]++
		}
	}

	ranking := make([]GenreCount, 0, len(counts))
	for genre, count := range counts {
		ranking = append(ranking, GenreCount{Genre: genre, Count: count})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Count != ranking[j].Count {
			return ranking[i].Count > ranking[j].Count
		}
		return ranking[i].Genre < ranking[j].Genre
	})

	if limit > 0 && len(ranking) > limit {
		ranking = ranking[:limit]
	}
	return ranking
}

// PrintSummary prints match statistics and the genre ranking for one run.
func PrintSummary(playlist *shared.Playlist, reports []shared.TrackReport, stats *shared.EnrichStats) {
	total := stats.MatchedCount + stats.UnmatchedCount
	shared.ColorHeader.Printf("\n=== Enrichment summary: %s ===\n", playlist.Name)
	fmt.Printf("Tracks processed: %d (skipped %d local)\n", total, stats.SkippedCount)
	if total > 0 {
		fmt.Printf("Matched: %d (%.0f%%), unmatched: %d\n",
			stats.MatchedCount, 100*float64(stats.MatchedCount)/float64(total), stats.UnmatchedCount)
	}

	if len(stats.SourceCounts) > 0 {
		sources := make([]string, 0, len(stats.SourceCounts))
		for source := range stats.SourceCounts {
			sources = append(sources, string(source))
		}
		sort.Strings(sources)
		fmt.Println("Matches by source:")
		for _, source := range sources {
			fmt.Printf("  %-12s %d\n", source, stats.SourceCounts[shared.CatalogSource(source)])
		}
	}

	top := TopGenres(reports, 10)
	if len(top) > 0 {
		fmt.Println("Top genres:")
		for _, entry := range top {
			fmt.Printf("  %-24s %d\n", entry.Genre, entry.Count)
		}
	}
}
