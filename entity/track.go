package entity

import (
	"errors"
	"strings"
)

const (
	TrackFormat   = "mp3"
	ArtworkFormat = "jpg"
)

type Artwork struct {
	URL  string `json:"url,omitempty"`
	Data []byte `json:"data,omitempty"`
}

// Track is the canonical record for a single track, merged from
// the discovery catalog and, optionally, the metadata catalog.
type Track struct {
	ID           string   `json:"id"`            // discovery-catalog identifier, ledger key
	CatalogTitle string   `json:"catalog_title"` // unnormalized title as seen upstream
	Title        string   `json:"title"`
	Artists      []string `json:"artists"` // primary artist first
	ReleaseDate  string   `json:"release_date"`
	Album        string   `json:"album,omitempty"`
	AlbumArtists []string `json:"album_artists,omitempty"`
	Number       int      `json:"number,omitempty"` // position within the album
	Total        int      `json:"total,omitempty"`  // tracks on the album
	Lyrics       string   `json:"lyrics,omitempty"`
	Artwork      Artwork  `json:"artwork,omitempty"`
	RelativePath string   `json:"relative_path,omitempty"` // set on backup, pins placement on restore
}

var (
	ErrNoArtists    = errors.New("track carries no artists")
	ErrNoTitle      = errors.New("track carries no title")
	ErrPartialAlbum = errors.New("album fields must be set together")
)

// New returns a Track without album grouping. Album fields are
// attached afterwards via OnAlbum, which enforces their
// all-or-nothing convention.
func New(id, title string, artists []string, releaseDate string) (*Track, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrNoTitle
	}
	if len(artists) == 0 {
		return nil, ErrNoArtists
	}
	return &Track{
		ID:           id,
		CatalogTitle: title,
		Title:        NormalizeTitle(title),
		Artists:      artists,
		AlbumArtists: artists,
		ReleaseDate:  releaseDate,
	}, nil
}

// OnAlbum attaches album grouping data. Name and position must
// all be meaningful, otherwise the track stays a single.
func (track *Track) OnAlbum(name string, artists []string, number, total int) error {
	if total == 1 {
		// an album with a lone track is filed as a single
		return nil
	}
	if name == "" || number < 1 || total < 1 {
		return ErrPartialAlbum
	}
	track.Album = name
	track.Number = number
	track.Total = total
	if len(artists) > 0 {
		track.AlbumArtists = artists
	}
	return nil
}

// Grouped reports whether the track belongs to a multi-track album.
func (track *Track) Grouped() bool {
	return track.Total > 1
}

// Valid reports whether the record is filled enough to be
// tagged and filed.
func (track *Track) Valid() error {
	if strings.TrimSpace(track.Title) == "" {
		return ErrNoTitle
	}
	if len(track.Artists) == 0 {
		return ErrNoArtists
	}
	return nil
}

// Description renders the human-readable form recorded in the
// ledger next to the track identifier.
func (track *Track) Description() string {
	return strings.Join(track.Artists, ", ") + " - " + track.Title
}

// Year returns the release year, i.e. the leading segment of the
// possibly fuller release date.
func (track *Track) Year() string {
	return strings.SplitN(track.ReleaseDate, "-", 2)[0]
}
