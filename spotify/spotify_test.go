package spotify

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	spotifyapi "github.com/zmb3/spotify/v2"
)

// roundTripFunc serves canned API payloads keyed by URL substring.
type roundTripFunc func(request *http.Request) string

func (f roundTripFunc) RoundTrip(request *http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader([]byte(f(request)))),
		Request:    request,
	}, nil
}

func testClient(f roundTripFunc) *Client {
	return &Client{spotifyapi.New(&http.Client{Transport: f})}
}

func TestAuthenticateRequiresCredentials(t *testing.T) {
	t.Setenv(envClientID, "")
	t.Setenv(envClientSecret, "")

	_, err := Authenticate(context.Background())
	assert.Error(t, err)
}

func TestSearchArtistRanksByDistance(t *testing.T) {
	client := testClient(func(*http.Request) string {
		return `{"artists": {"items": [
			{"id": "qotsa", "name": "Queens of the Stone Age"},
			{"id": "queen", "name": "Queen"}
		]}}`
	})

	id, name, err := client.SearchArtist(context.Background(), "queen")
	require.NoError(t, err)
	assert.Equal(t, spotifyapi.ID("queen"), id)
	assert.Equal(t, "Queen", name)
}

func TestSearchArtistNotFound(t *testing.T) {
	client := testClient(func(*http.Request) string {
		return `{"artists": {"items": []}}`
	})

	id, _, err := client.SearchArtist(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestAlbumsFollowsPagination(t *testing.T) {
	client := testClient(func(request *http.Request) string {
		switch {
		case strings.Contains(request.URL.String(), "albums-page-2"):
			return `{"items": [{"id": "al2", "name": "Two"}], "next": null}`
		default:
			return `{"items": [{"id": "al1", "name": "One"}],
				"next": "https://api.spotify.com/v1/albums-page-2"}`
		}
	})

	albums, err := client.Albums(context.Background(), "artist-id")
	require.NoError(t, err)
	require.Len(t, albums, 2)
	assert.Equal(t, spotifyapi.ID("al1"), albums[0].ID)
	assert.Equal(t, spotifyapi.ID("al2"), albums[1].ID)
}

func TestAlbumTracksAccumulatesPages(t *testing.T) {
	client := testClient(func(request *http.Request) string {
		switch {
		case strings.Contains(request.URL.String(), "tracks-page-2"):
			return `{"items": [{"name": "Two", "track_number": 2}], "next": null}`
		default:
			return `{"id": "al", "name": "Opera", "release_date": "1975-11-21",
				"tracks": {
					"items": [{"name": "One", "track_number": 1}],
					"next": "https://api.spotify.com/v1/tracks-page-2"
				}}`
		}
	})

	album, err := client.AlbumTracks(context.Background(), "al")
	require.NoError(t, err)
	assert.Equal(t, "Opera", album.Name)

	// earlier pages are not dropped by the pagination cursor
	require.Len(t, album.Tracks.Tracks, 2)
	assert.Equal(t, "One", album.Tracks.Tracks[0].Name)
	assert.Equal(t, "Two", album.Tracks.Tracks[1].Name)
}
