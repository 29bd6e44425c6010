package collector

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/zmb3/spotify/v2"

	"github.com/ezvezdov/musiclib/entity"
	"github.com/ezvezdov/musiclib/entity/index"
	"github.com/ezvezdov/musiclib/ytmusic"
)

// metadata is the slice of the secondary catalog client this
// strategy consumes.
type metadata interface {
	SearchArtist(ctx context.Context, name string) (spotify.ID, string, error)
	SearchTracks(ctx context.Context, query string) ([]spotify.FullTrack, error)
	SearchAlbums(ctx context.Context, query string) ([]spotify.SimpleAlbum, error)
	Albums(ctx context.Context, artistID spotify.ID) ([]spotify.SimpleAlbum, error)
	AlbumTracks(ctx context.Context, albumID spotify.ID) (*spotify.FullAlbum, error)
}

// referencer resolves a "artists - title" query against the
// discovery catalog, to translate records into downloadable ones.
type referencer interface {
	SearchSongs(ctx context.Context, query string) ([]ytmusic.Song, error)
}

// Spotify builds richer track records from the metadata catalog,
// then cross-references each one to a discovery identifier; a
// record that cannot be matched is dropped, as it could never be
// downloaded.
type Spotify struct {
	catalog   metadata
	discovery referencer
	lyrics    Resolver
	renames   index.RenameTable
}

func NewSpotify(catalog metadata, discovery referencer, lyrics Resolver, renames index.RenameTable) *Spotify {
	return &Spotify{catalog: catalog, discovery: discovery, lyrics: lyrics, renames: renames}
}

func (source *Spotify) Artist(ctx context.Context, name string) ([]*entity.Track, error) {
	artistID, artistName, err := source.catalog.SearchArtist(ctx, name)
	if err != nil {
		return nil, err
	}
	if artistID == "" {
		log.Printf("collector: artist %q not found", name)
		return nil, nil
	}
	log.Printf("collector: %q resolved to %s (%s)", name, artistName, artistID)

	albums, err := source.catalog.Albums(ctx, artistID)
	if err != nil {
		return nil, err
	}

	var tracks []*entity.Track
	for _, ref := range albums {
		album, err := source.catalog.AlbumTracks(ctx, ref.ID)
		if err != nil {
			log.Printf("collector: listing %q failed: %s", ref.Name, err)
			continue
		}
		tracks = append(tracks, source.albumTracks(ctx, album)...)
	}
	return tracks, nil
}

func (source *Spotify) Track(ctx context.Context, query string, decide DecideFunc) (*entity.Track, error) {
	hits, err := source.catalog.SearchTracks(ctx, query)
	if err != nil {
		return nil, err
	}

	for _, hit := range hits {
		candidate := fmt.Sprintf("%s - %s", joinArtists(hit.Artists), hit.Name)
		if !accept(decide, candidate) {
			continue
		}

		album, err := source.catalog.AlbumTracks(ctx, hit.Album.ID)
		if err != nil {
			return nil, err
		}
		for _, track := range source.albumTracks(ctx, album) {
			if strings.EqualFold(track.CatalogTitle, hit.Name) {
				return track, nil
			}
		}
	}
	return nil, nil
}

func (source *Spotify) Album(ctx context.Context, query string, decide DecideFunc) ([]*entity.Track, error) {
	hits, err := source.catalog.SearchAlbums(ctx, query)
	if err != nil {
		return nil, err
	}

	for _, hit := range hits {
		candidate := fmt.Sprintf("%s - %s (%s)", joinArtists(hit.Artists), hit.Name, hit.ReleaseDate)
		if !accept(decide, candidate) {
			continue
		}
		album, err := source.catalog.AlbumTracks(ctx, hit.ID)
		if err != nil {
			return nil, err
		}
		return source.albumTracks(ctx, album), nil
	}
	return nil, nil
}

func (source *Spotify) albumTracks(ctx context.Context, album *spotify.FullAlbum) []*entity.Track {
	var (
		tracks       []*entity.Track
		total        = len(album.Tracks.Tracks)
		albumArtists = source.renames.Apply(joinNames(album.Artists))
		artworkURL   string
	)
	if len(album.Images) > 0 {
		artworkURL = album.Images[0].URL
	}

	for _, hit := range album.Tracks.Tracks {
		artists := source.renames.Apply(mergeFeatured(joinNames(hit.Artists), hit.Name))
		track, err := entity.New("", hit.Name, artists, album.ReleaseDate)
		if err != nil {
			log.Printf("collector: skipping %q: %s", hit.Name, err)
			continue
		}
		if total > 1 {
			if err := track.OnAlbum(album.Name, albumArtists, hit.TrackNumber, total); err != nil {
				log.Printf("collector: album grouping for %q: %s", hit.Name, err)
			}
		}
		track.Artwork.URL = artworkURL

		if !source.crossReference(ctx, track) {
			// without a discovery identifier the track cannot be
			// downloaded nor deduplicated
			log.Printf("collector: no discovery match for %s, dropped", track.Description())
			continue
		}
		track.Lyrics = source.lyrics.Resolve(ctx, track.Title, track.Artists, "")
		tracks = append(tracks, track)
	}
	return tracks
}

// crossReference searches the discovery catalog for the track
// and adopts the top song hit's identifier.
func (source *Spotify) crossReference(ctx context.Context, track *entity.Track) bool {
	query := fmt.Sprintf("%s - %s", strings.Join(track.Artists, ", "), track.Title)
	songs, err := source.discovery.SearchSongs(ctx, query)
	if err != nil {
		log.Printf("collector: cross-reference of %s failed: %s", track.Description(), err)
		return false
	}
	if len(songs) == 0 {
		return false
	}
	track.ID = songs[0].ID
	return true
}

func joinNames(artists []spotify.SimpleArtist) []string {
	names := make([]string, len(artists))
	for i, artist := range artists {
		names[i] = artist.Name
	}
	return names
}

func joinArtists(artists []spotify.SimpleArtist) string {
	return strings.Join(joinNames(artists), ", ")
}
