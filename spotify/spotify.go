// Package spotify wraps the Web API client used as the secondary
// metadata catalog: artist resolution, album listings and track
// listings, with cursor pagination always followed to exhaustion.
package spotify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	envClientID     = "SPOTIFY_ID"
	envClientSecret = "SPOTIFY_KEY"
)

type Client struct {
	*spotify.Client
}

// Authenticate builds a client-credentials session from the
// SPOTIFY_ID/SPOTIFY_KEY environment (usually via a .env file).
func Authenticate(ctx context.Context) (*Client, error) {
	id, secret := os.Getenv(envClientID), os.Getenv(envClientSecret)
	if id == "" || secret == "" {
		return nil, fmt.Errorf("%s and %s must be set", envClientID, envClientSecret)
	}

	config := &clientcredentials.Config{
		ClientID:     id,
		ClientSecret: secret,
		TokenURL:     spotifyauth.TokenURL,
	}
	token, err := config.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	return &Client{spotify.New(spotifyauth.New().Client(ctx, token))}, nil
}

// SearchArtist resolves an artist name to its catalog identifier,
// ranking the first page of hits by edit distance to the query.
func (client *Client) SearchArtist(ctx context.Context, name string) (spotify.ID, string, error) {
	result, err := client.Search(ctx, name, spotify.SearchTypeArtist)
	if err != nil {
		return "", "", err
	}
	if result.Artists == nil || len(result.Artists.Artists) == 0 {
		return "", "", nil
	}

	var (
		best     spotify.FullArtist
		bestCost = -1
	)
	for _, artist := range result.Artists.Artists {
		cost := levenshtein.ComputeDistance(strings.ToLower(name), strings.ToLower(artist.Name))
		if bestCost < 0 || cost < bestCost {
			best, bestCost = artist, cost
		}
	}
	return best.ID, best.Name, nil
}

// SearchTracks returns the first page of track hits for a free
// text query, in result order.
func (client *Client) SearchTracks(ctx context.Context, query string) ([]spotify.FullTrack, error) {
	result, err := client.Search(ctx, query, spotify.SearchTypeTrack)
	if err != nil {
		return nil, err
	}
	if result.Tracks == nil {
		return nil, nil
	}
	return result.Tracks.Tracks, nil
}

// SearchAlbums returns the first page of album hits for a free
// text query, in result order.
func (client *Client) SearchAlbums(ctx context.Context, query string) ([]spotify.SimpleAlbum, error) {
	result, err := client.Search(ctx, query, spotify.SearchTypeAlbum)
	if err != nil {
		return nil, err
	}
	if result.Albums == nil {
		return nil, nil
	}
	return result.Albums.Albums, nil
}

// Albums lists every album and single of an artist, following
// pagination until the API reports no more pages. Compilations
// are deliberately left out.
func (client *Client) Albums(ctx context.Context, artistID spotify.ID) ([]spotify.SimpleAlbum, error) {
	page, err := client.GetArtistAlbums(ctx, artistID,
		[]spotify.AlbumType{spotify.AlbumTypeAlbum, spotify.AlbumTypeSingle})
	if err != nil {
		return nil, err
	}

	var albums []spotify.SimpleAlbum
	for {
		albums = append(albums, page.Albums...)
		if err := client.NextPage(ctx, page); err != nil {
			if errors.Is(err, spotify.ErrNoMorePages) {
				return albums, nil
			}
			return nil, err
		}
	}
}

// AlbumTracks fetches an album with its complete track listing.
func (client *Client) AlbumTracks(ctx context.Context, albumID spotify.ID) (*spotify.FullAlbum, error) {
	album, err := client.GetAlbum(ctx, albumID)
	if err != nil {
		return nil, err
	}

	tracks := append([]spotify.SimpleTrack{}, album.Tracks.Tracks...)
	for {
		if err := client.NextPage(ctx, &album.Tracks); err != nil {
			if errors.Is(err, spotify.ErrNoMorePages) {
				album.Tracks.Tracks = tracks
				return album, nil
			}
			return nil, err
		}
		tracks = append(tracks, album.Tracks.Tracks...)
	}
}
