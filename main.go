package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"playlist-enricher/internal/config"
	"playlist-enricher/internal/core/report"
	"playlist-enricher/internal/services"
	"playlist-enricher/internal/shared"
)

const toolVersion = "1.0.0"

var (
	configFile string
	debug      bool

	outputFile   string
	threshold    float64
	pacingDelay  float64
	searchLimit  int
	lookupTrack  string
	lookupArtist string
	lookupAlbum  string
)

var rootCmd = &cobra.Command{
	Use:     "playlist-enricher",
	Version: toolVersion,
	Short:   "Enrich Spotify playlists with genres from Discogs, MusicBrainz and AllMusic.",
	Long: fmt.Sprintf(`Playlist Enricher (v%s)

Fetches a Spotify playlist and reconciles every track against external music
catalogs to assemble genre and style metadata:
- Discogs release, track and artist searches with fuzzy verification.
- MusicBrainz artist tags as an encyclopedia fallback.
- AllMusic page scraping as a last resort.

Results are written to a CSV report with a per-run summary.`, toolVersion),
}

var enrichCmd = &cobra.Command{
	Use:   "enrich [playlist_url_or_id]",
	Short: "Enrich every track of a playlist and write a CSV report.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, container := initConfigAndServices()
		ctx := context.Background()

		if err := container.Playlists.Authenticate(ctx); err != nil {
			container.Logger.Error("Spotify authentication failed: %v", err)
			os.Exit(1)
		}

		playlist, reports, stats, err := container.Enricher.Run(ctx, args[0])
		if err != nil {
			container.Logger.Error("Enrichment failed: %v", err)
			os.Exit(1)
		}

		report.PrintSummary(playlist, reports, stats)
		container.WarningCollector.PrintSummary()

		out := outputFile
		if out == "" {
			out = filepath.Join(cfg.OutputLocation, sanitizeFileName(playlist.Name)+".csv")
		}
		if err := config.CreateDirIfNotExists(filepath.Dir(out)); err != nil {
			container.Logger.Error("Failed to create output directory: %v", err)
			os.Exit(1)
		}
		if err := report.WriteCSV(out, reports); err != nil {
			container.Logger.Error("Failed to write report: %v", err)
			os.Exit(1)
		}
		shared.ColorSuccess.Println("✅ Report written to", out)
	},
}

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Resolve a single track without touching a playlist.",
	Run: func(cmd *cobra.Command, args []string) {
		if lookupTrack == "" || lookupArtist == "" {
			shared.ColorError.Println("❌ --track and --artist are required")
			os.Exit(1)
		}
		_, container := initConfigAndServices()
		ctx := context.Background()

		if err := container.Playlists.Authenticate(ctx); err != nil {
			container.Logger.Warning("Spotify authentication failed, genre hints disabled: %v", err)
		}

		track := shared.TrackDescriptor{
			TrackName:    lookupTrack,
			ArtistCredit: lookupArtist,
			AlbumName:    lookupAlbum,
		}
		trackReport := container.Enricher.EnrichTrack(ctx, track)

		if trackReport.Result.Matched {
			shared.ColorSuccess.Printf("✅ Matched via %s\n", trackReport.Result.Source)
		} else {
			shared.ColorWarning.Println("⚠️ No match found")
		}
		fmt.Println("Genres:", strings.Join(trackReport.AllGenres, "; "))
		fmt.Println("Styles:", strings.Join(trackReport.AllStyles, "; "))
		container.WarningCollector.PrintSummary()
	},
}

var playlistsCmd = &cobra.Command{
	Use:   "playlists [query]",
	Short: "Search public Spotify playlists by name.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, container := initConfigAndServices()
		ctx := context.Background()

		if err := container.Playlists.Authenticate(ctx); err != nil {
			container.Logger.Error("Spotify authentication failed: %v", err)
			os.Exit(1)
		}
		summaries, err := container.Playlists.SearchPlaylists(ctx, args[0], searchLimit)
		if err != nil {
			container.Logger.Error("Playlist search failed: %v", err)
			os.Exit(1)
		}
		if len(summaries) == 0 {
			shared.ColorWarning.Println("⚠️ No playlists found")
			return
		}
		for i, summary := range summaries {
			fmt.Printf("%d. %s by %s (%d tracks)\n   %s\n", i+1, summary.Name, summary.Owner, summary.TrackCount, summary.ID)
		}
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Create a default config file or show the active configuration.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := &config.Config{}
		if shared.FileExists(configFile) {
			if err := config.LoadConfig(configFile, cfg); err != nil {
				shared.ColorError.Printf("❌ Failed to load config from %s: %v\n", configFile, err)
				os.Exit(1)
			}
			cfg.ApplyDefaults()
			shared.ColorInfo.Println("Active configuration from", configFile)
		} else {
			cfg.ApplyDefaults()
			if err := config.SaveConfig(configFile, cfg); err != nil {
				shared.ColorError.Printf("❌ Failed to save default config: %v\n", err)
				os.Exit(1)
			}
			shared.ColorSuccess.Println("✅ Default configuration written to", configFile)
		}
		fmt.Printf("  SimilarityThreshold: %v\n", cfg.SimilarityThreshold)
		fmt.Printf("  SearchLimit:         %d\n", cfg.SearchLimit)
		fmt.Printf("  MaxRetryAttempts:    %d\n", cfg.MaxRetryAttempts)
		fmt.Printf("  RetryBaseDelayMs:    %d\n", cfg.RetryBaseDelayMs)
		fmt.Printf("  PacingDelayMs:       %d\n", cfg.PacingDelayMs)
		fmt.Printf("  OutputLocation:      %s\n", cfg.OutputLocation)
	},
}

func initConfigAndServices() (*config.Config, *services.ServiceContainer) {
	cfg := &config.Config{}
	if shared.FileExists(configFile) {
		if err := config.LoadConfig(configFile, cfg); err != nil {
			shared.ColorError.Printf("❌ Failed to load config from %s: %v\n", configFile, err)
			os.Exit(1)
		}
	}
	cfg.ApplyDefaults()
	cfg.ApplyEnvOverrides()

	// Command-line flags override config file
	if threshold > 0 {
		cfg.SimilarityThreshold = threshold
	}
	if pacingDelay > 0 {
		cfg.PacingDelayMs = int(pacingDelay * 1000)
	}

	if err := cfg.Validate(); err != nil {
		shared.ColorError.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	shared.InitializeColors()
	container := services.NewServiceContainer(cfg)
	container.Logger.SetDebugMode(debug || shared.IsDebugMode())
	return cfg, container
}

func sanitizeFileName(name string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	cleaned := strings.TrimSpace(replacer.Replace(name))
	if cleaned == "" {
		return "playlist"
	}
	return cleaned
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "config.json", "Path to the config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	enrichCmd.Flags().StringVarP(&outputFile, "output", "o", "", "CSV output path (default: <playlist name>.csv)")
	enrichCmd.Flags().Float64Var(&threshold, "threshold", 0, "Similarity threshold override (0-1)")
	enrichCmd.Flags().Float64Var(&pacingDelay, "delay", 0, "Seconds to wait between tracks")

	lookupCmd.Flags().StringVar(&lookupTrack, "track", "", "Track title")
	lookupCmd.Flags().StringVar(&lookupArtist, "artist", "", "Artist credit as printed on the release")
	lookupCmd.Flags().StringVar(&lookupAlbum, "album", "", "Album title (optional)")

	playlistsCmd.Flags().IntVar(&searchLimit, "limit", 10, "Maximum number of playlists to list")

	rootCmd.AddCommand(enrichCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(playlistsCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
