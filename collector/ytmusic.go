package collector

import (
	"context"
	"fmt"
	"log"

	"github.com/ezvezdov/musiclib/entity"
	"github.com/ezvezdov/musiclib/entity/index"
	"github.com/ezvezdov/musiclib/ytmusic"
)

// discovery is the slice of the catalog client this strategy
// consumes.
type discovery interface {
	SearchArtists(ctx context.Context, query string) ([]ytmusic.ArtistRef, error)
	SearchSongs(ctx context.Context, query string) ([]ytmusic.Song, error)
	SearchAlbums(ctx context.Context, query string) ([]ytmusic.AlbumRef, error)
	Artist(ctx context.Context, browseID string) (*ytmusic.Artist, error)
	AlbumTracks(ctx context.Context, browseID string) (*ytmusic.Album, error)
}

// YTMusic builds track records straight from the discovery
// catalog, so every record is born with its ledger key.
type YTMusic struct {
	catalog discovery
	lyrics  Resolver
	renames index.RenameTable
}

func NewYTMusic(catalog discovery, lyrics Resolver, renames index.RenameTable) *YTMusic {
	return &YTMusic{catalog: catalog, lyrics: lyrics, renames: renames}
}

func (source *YTMusic) Artist(ctx context.Context, name string) ([]*entity.Track, error) {
	refs, err := source.catalog.SearchArtists(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		log.Printf("collector: artist %q not found", name)
		return nil, nil
	}

	// fuzzy search, first hit accepted
	artist, err := source.catalog.Artist(ctx, refs[0].BrowseID)
	if err != nil {
		return nil, err
	}
	log.Printf("collector: %q resolved to %s (%s), %d albums, %d singles",
		name, artist.Name, artist.BrowseID, len(artist.Albums), len(artist.Singles))

	var tracks []*entity.Track
	for _, ref := range append(artist.Albums, artist.Singles...) {
		album, err := source.catalog.AlbumTracks(ctx, ref.BrowseID)
		if err != nil {
			log.Printf("collector: listing %q failed: %s", ref.Title, err)
			continue
		}
		tracks = append(tracks, source.albumTracks(ctx, album)...)
	}
	return tracks, nil
}

func (source *YTMusic) Track(ctx context.Context, query string, decide DecideFunc) (*entity.Track, error) {
	songs, err := source.catalog.SearchSongs(ctx, query)
	if err != nil {
		return nil, err
	}

	for _, song := range songs {
		track, err := source.build(song, "")
		if err != nil {
			continue
		}
		if !accept(decide, track.Description()) {
			continue
		}
		track.Lyrics = source.lyrics.Resolve(ctx, track.Title, track.Artists, track.ID)
		return track, nil
	}
	return nil, nil
}

func (source *YTMusic) Album(ctx context.Context, query string, decide DecideFunc) ([]*entity.Track, error) {
	refs, err := source.catalog.SearchAlbums(ctx, query)
	if err != nil {
		return nil, err
	}

	for _, ref := range refs {
		if !accept(decide, fmt.Sprintf("%s (%s)", ref.Title, ref.Year)) {
			continue
		}
		album, err := source.catalog.AlbumTracks(ctx, ref.BrowseID)
		if err != nil {
			return nil, err
		}
		return source.albumTracks(ctx, album), nil
	}
	return nil, nil
}

// albumTracks converts a full album listing, treating lone-track
// albums as singles.
func (source *YTMusic) albumTracks(ctx context.Context, album *ytmusic.Album) []*entity.Track {
	var tracks []*entity.Track
	for _, song := range album.Tracks {
		track, err := source.build(song, album.Year)
		if err != nil {
			log.Printf("collector: skipping %q: %s", song.Title, err)
			continue
		}
		if len(album.Tracks) > 1 {
			if err := track.OnAlbum(album.Title, source.renames.Apply(album.Artists), song.Number, len(album.Tracks)); err != nil {
				log.Printf("collector: album grouping for %q: %s", song.Title, err)
			}
		}
		track.Lyrics = source.lyrics.Resolve(ctx, track.Title, track.Artists, track.ID)
		tracks = append(tracks, track)
	}
	return tracks
}

func (source *YTMusic) build(song ytmusic.Song, releaseDate string) (*entity.Track, error) {
	artists := source.renames.Apply(mergeFeatured(song.Artists, song.Title))
	track, err := entity.New(song.ID, song.Title, artists, releaseDate)
	if err != nil {
		return nil, err
	}
	track.Artwork.URL = song.ArtworkURL
	return track, nil
}
