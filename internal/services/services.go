package services

import (
	"fmt"

	"playlist-enricher/internal/api/allmusic"
	"playlist-enricher/internal/api/discogs"
	"playlist-enricher/internal/api/musicbrainz"
	"playlist-enricher/internal/api/spotify"
	"playlist-enricher/internal/config"
	"playlist-enricher/internal/core/enricher"
	"playlist-enricher/internal/core/resolver"
	"playlist-enricher/internal/interfaces"
	"playlist-enricher/internal/shared"
)

// ServiceContainer holds all application services
type ServiceContainer struct {
	Config           *config.Config
	Releases         interfaces.ReleaseCatalog
	Tags             interfaces.TagCatalog
	Scraper          interfaces.GenreScraper
	Playlists        interfaces.PlaylistSource
	Resolver         interfaces.TrackResolver
	Enricher         *enricher.Enricher
	Logger           interfaces.LoggerService
	WarningCollector interfaces.WarningCollectorService
}

// NewServiceContainer wires every service from one validated config.
func NewServiceContainer(cfg *config.Config) *ServiceContainer {
	// Create logger first as other services may need it
	logger := NewConsoleLogger()

	// Create warning collector
	warningCollector := shared.NewWarningCollector(cfg.WarningBehavior != "silent")

	// Create catalog adapters
	discogsClient := discogs.NewClient(cfg.DiscogsToken)
	musicbrainzClient := musicbrainz.NewClient()
	allmusicClient := allmusic.NewClient()

	// Create playlist source
	spotifyClient := spotify.NewClient(cfg.SpotifyClientID, cfg.SpotifyClientSecret)

	// Create the cascading resolver
	retry := shared.RetryPolicy{
		MaxRetries: cfg.MaxRetryAttempts,
		BaseDelay:  cfg.RetryBaseDelay(),
		Retryable:  shared.IsTransient,
	}
	trackResolver := resolver.New(discogsClient, musicbrainzClient, allmusicClient, logger, warningCollector, resolver.Config{
		Threshold:   cfg.SimilarityThreshold,
		SearchLimit: cfg.SearchLimit,
		Retry:       retry,
	})

	// Create the enrichment loop
	enrichService := enricher.New(spotifyClient, trackResolver, logger, warningCollector, enricher.Options{
		PacingDelay:  cfg.PacingDelay(),
		ShowProgress: true,
	})

	return &ServiceContainer{
		Config:           cfg,
		Releases:         discogsClient,
		Tags:             musicbrainzClient,
		Scraper:          allmusicClient,
		Playlists:        spotifyClient,
		Resolver:         trackResolver,
		Enricher:         enrichService,
		Logger:           logger,
		WarningCollector: warningCollector,
	}
}

// ConsoleLogger implementation
type ConsoleLogger struct {
	debugMode bool
}

func NewConsoleLogger() *ConsoleLogger {
	return &ConsoleLogger{debugMode: false}
}

func (cl *ConsoleLogger) Info(message string, args ...interface{}) {
	shared.ColorInfo.Printf(message+"\n", args...)
}

func (cl *ConsoleLogger) Warning(message string, args ...interface{}) {
	shared.ColorWarning.Printf("⚠️ "+message+"\n", args...)
}

func (cl *ConsoleLogger) Error(message string, args ...interface{}) {
	shared.ColorError.Printf("❌ "+message+"\n", args...)
}

func (cl *ConsoleLogger) Debug(message string, args ...interface{}) {
	if !cl.debugMode {
		return
	}
	fmt.Printf("🐛 DEBUG: "+message+"\n", args...)
}

func (cl *ConsoleLogger) Success(message string, args ...interface{}) {
	shared.ColorSuccess.Printf("✅ "+message+"\n", args...)
}

func (cl *ConsoleLogger) SetDebugMode(enabled bool) {
	cl.debugMode = enabled
}
