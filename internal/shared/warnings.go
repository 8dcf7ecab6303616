package shared

import (
	"fmt"
	"sort"
	"strings"
)

// WarningType represents different types of warnings
type WarningType int

const (
	DiscogsLookupWarning WarningType = iota
	MusicBrainzLookupWarning
	AllMusicLookupWarning
	SpotifyGenreHintWarning
	LocalTrackSkippedWarning
)

// Warning represents a single warning with context
type Warning struct {
	Type    WarningType
	Message string
	Context string // Track/Album context
	Details string // Additional details like error message
}

// WarningCollector collects non-fatal lookup warnings during an enrichment
// run so they can be reported as one summary instead of interleaving with
// progress output.
type WarningCollector struct {
	warnings []Warning
	enabled  bool
}

// NewWarningCollector creates a new warning collector
func NewWarningCollector(enabled bool) *WarningCollector {
	return &WarningCollector{
		warnings: make([]Warning, 0),
		enabled:  enabled,
	}
}

// AddWarning adds a warning to the collector
func (wc *WarningCollector) AddWarning(warningType WarningType, context, message, details string) {
	if !wc.enabled {
		return
	}
	wc.warnings = append(wc.warnings, Warning{
		Type:    warningType,
		Message: message,
		Context: context,
		Details: details,
	})
}

// AddDiscogsWarning adds a Discogs release lookup warning
func (wc *WarningCollector) AddDiscogsWarning(artist, title, details string) {
	context := fmt.Sprintf("%s - %s", artist, title)
	wc.AddWarning(DiscogsLookupWarning, context, "Discogs lookup failed", details)
}

// AddMusicBrainzWarning adds a MusicBrainz lookup warning
func (wc *WarningCollector) AddMusicBrainzWarning(artist, title, details string) {
	context := fmt.Sprintf("%s - %s", artist, title)
	wc.AddWarning(MusicBrainzLookupWarning, context, "MusicBrainz lookup failed", details)
}

// AddAllMusicWarning adds an AllMusic scrape warning
func (wc *WarningCollector) AddAllMusicWarning(artist, title, details string) {
	context := fmt.Sprintf("%s - %s", artist, title)
	wc.AddWarning(AllMusicLookupWarning, context, "AllMusic scrape failed", details)
}

// AddSpotifyGenreHintWarning adds a warning for a failed artist genre lookup
func (wc *WarningCollector) AddSpotifyGenreHintWarning(artist, details string) {
	wc.AddWarning(SpotifyGenreHintWarning, artist, "Could not fetch Spotify artist genres", details)
}

// AddLocalTrackSkippedWarning adds a warning for a skipped local track
func (wc *WarningCollector) AddLocalTrackSkippedWarning(trackName string) {
	wc.AddWarning(LocalTrackSkippedWarning, trackName, "Local track skipped", "")
}

// HasWarnings returns true if there are any warnings
func (wc *WarningCollector) HasWarnings() bool {
	return len(wc.warnings) > 0
}

// GetWarningCount returns the total number of warnings
func (wc *WarningCollector) GetWarningCount() int {
	return len(wc.warnings)
}

// warningTypeLabel returns the display label for a warning type
func warningTypeLabel(t WarningType) string {
	switch t {
	case DiscogsLookupWarning:
		return "Discogs lookups"
	case MusicBrainzLookupWarning:
		return "MusicBrainz lookups"
	case AllMusicLookupWarning:
		return "AllMusic scrapes"
	case SpotifyGenreHintWarning:
		return "Spotify genre hints"
	case LocalTrackSkippedWarning:
		return "Skipped local tracks"
	default:
		return "Other"
	}
}

// PrintSummary prints a formatted summary of all warnings grouped by type
func (wc *WarningCollector) PrintSummary() {
	if !wc.HasWarnings() {
		return
	}

	grouped := make(map[WarningType][]Warning)
	for _, w := range wc.warnings {
		grouped[w.Type] = append(grouped[w.Type], w)
	}

	types := make([]int, 0, len(grouped))
	for t := range grouped {
		types = append(types, int(t))
	}
	sort.Ints(types)

	ColorWarning.Printf("\n⚠️  %d warning(s) during this run:\n", len(wc.warnings))
	for _, t := range types {
		warnings := grouped[WarningType(t)]
		ColorWarning.Printf("\n%s (%d):\n", warningTypeLabel(WarningType(t)), len(warnings))
		for _, w := range warnings {
			line := fmt.Sprintf("  - %s: %s", w.Context, w.Message)
			if w.Details != "" {
				line += fmt.Sprintf(" (%s)", strings.TrimSpace(w.Details))
			}
			fmt.Println(line)
		}
	}
}
