// Package spotify retrieves playlists and artist genre hints from the
// Spotify Web API. It only shapes TrackDescriptor values for the resolver;
// the resolution pipeline itself never talks to Spotify.
package spotify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"

	"playlist-enricher/internal/shared"
)

// Client wraps the Spotify Web API using the client-credentials flow. No
// user authorization is needed for public playlist reads.
type Client struct {
	id     string
	secret string
	client *spotify.Client
}

// NewClient creates an unauthenticated Spotify client
func NewClient(id, secret string) *Client {
	return &Client{id: id, secret: secret}
}

// Authenticate authenticates the client with the Spotify API
func (s *Client) Authenticate(ctx context.Context) error {
	config := &clientcredentials.Config{
		ClientID:     s.id,
		ClientSecret: s.secret,
		TokenURL:     spotifyauth.TokenURL,
	}
	token, err := config.Token(ctx)
	if err != nil {
		return fmt.Errorf("spotify authentication failed: %w", err)
	}

	httpClient := spotifyauth.New().Client(ctx, token)
	s.client = spotify.New(httpClient)
	return nil
}

// ParsePlaylistID extracts the playlist ID from a share URL, a spotify:
// URI, or a bare ID.
func ParsePlaylistID(input string) string {
	input = strings.TrimSpace(input)
	switch {
	case strings.Contains(input, "open.spotify.com"):
		rest := input[strings.LastIndex(input, "playlist/")+len("playlist/"):]
		return strings.Split(rest, "?")[0]
	case strings.Contains(input, "spotify:playlist:"):
		parts := strings.Split(input, ":")
		return parts[len(parts)-1]
	default:
		return input
	}
}

// GetPlaylist fetches a playlist with all its tracks, following pagination,
// and shapes each entry into a TrackDescriptor. The first credited artist
// name becomes the raw artist credit; multi-artist credits arrive as one
// comma-joined string there, which is exactly what the splitter expects.
func (s *Client) GetPlaylist(ctx context.Context, ref string) (*shared.Playlist, error) {
	if s.client == nil {
		return nil, fmt.Errorf("spotify client is not authenticated")
	}

	id := spotify.ID(ParsePlaylistID(ref))
	playlist, err := s.client.GetPlaylist(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch playlist %s: %w", id, err)
	}

	out := &shared.Playlist{
		ID:    string(playlist.ID),
		Name:  playlist.Name,
		Owner: playlist.Owner.DisplayName,
	}

	page := &playlist.Tracks
	for {
		for _, item := range page.Tracks {
			track := item.Track
			if track.Name == "" {
				continue
			}
			descriptor := shared.TrackDescriptor{
				TrackName: track.Name,
				AlbumName: track.Album.Name,
				SpotifyID: string(track.ID),
				IsLocal:   item.IsLocal,
			}
			if len(track.Artists) > 0 {
				descriptor.ArtistCredit = track.Artists[0].Name
			}
			out.Tracks = append(out.Tracks, descriptor)
		}

		err = s.client.NextPage(ctx, page)
		if errors.Is(err, spotify.ErrNoMorePages) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to fetch playlist page: %w", err)
		}
	}

	return out, nil
}

// GetArtistGenres looks up one artist by name and returns the genres
// Spotify assigns to them. An unknown artist yields shared.ErrNotFound.
func (s *Client) GetArtistGenres(ctx context.Context, name string) ([]string, error) {
	if s.client == nil {
		return nil, fmt.Errorf("spotify client is not authenticated")
	}

	result, err := s.client.Search(ctx, fmt.Sprintf("artist:%s", name), spotify.SearchTypeArtist, spotify.Limit(1))
	if err != nil {
		return nil, fmt.Errorf("artist search failed for %q: %w", name, err)
	}
	if result.Artists == nil || len(result.Artists.Artists) == 0 {
		return nil, shared.ErrNotFound
	}
	return result.Artists.Artists[0].Genres, nil
}

// SearchPlaylists searches public playlists by free-text query.
func (s *Client) SearchPlaylists(ctx context.Context, query string, limit int) ([]shared.PlaylistSummary, error) {
	if s.client == nil {
		return nil, fmt.Errorf("spotify client is not authenticated")
	}

	result, err := s.client.Search(ctx, query, spotify.SearchTypePlaylist, spotify.Limit(limit))
	if err != nil {
		return nil, fmt.Errorf("playlist search failed for %q: %w", query, err)
	}
	if result.Playlists == nil || len(result.Playlists.Playlists) == 0 {
		return nil, shared.ErrNotFound
	}

	summaries := make([]shared.PlaylistSummary, 0, len(result.Playlists.Playlists))
	for _, playlist := range result.Playlists.Playlists {
		summaries = append(summaries, shared.PlaylistSummary{
			ID:         string(playlist.ID),
			Name:       playlist.Name,
			Owner:      playlist.Owner.DisplayName,
			TrackCount: int(playlist.Tracks.Total),
		})
	}
	return summaries, nil
}
