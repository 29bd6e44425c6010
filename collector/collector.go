// Package collector aggregates catalog metadata into canonical
// track records. Two interchangeable strategies cover the same
// capability set, one backed by the discovery catalog itself,
// one by the secondary metadata catalog with a cross-reference
// step back to discovery identifiers.
package collector

import (
	"context"
	"strings"

	"github.com/ezvezdov/musiclib/entity"
)

// DecideFunc lets the caller accept or reject an ambiguous
// search candidate before its metadata is fully resolved. A nil
// function means top-result mode: the first candidate wins.
type DecideFunc func(description string) bool

// Resolver yields the best available lyrics for a track; an
// empty nativeRef skips the discovery catalog's own store.
type Resolver interface {
	Resolve(ctx context.Context, title string, artists []string, nativeRef string) string
}

// Source is the capability set both strategies implement.
type Source interface {
	// Artist resolves an artist name and returns the complete
	// discography as ready-to-process records.
	Artist(ctx context.Context, name string) ([]*entity.Track, error)
	// Track searches a track by free text.
	Track(ctx context.Context, query string, decide DecideFunc) (*entity.Track, error)
	// Album searches an album by free text and returns its tracks.
	Album(ctx context.Context, query string, decide DecideFunc) ([]*entity.Track, error)
}

func accept(decide DecideFunc, description string) bool {
	return decide == nil || decide(description)
}

// mergeFeatured folds artists credited in the raw title into the
// artist sequence, keeping catalog order and dropping spelling
// duplicates.
func mergeFeatured(artists []string, rawTitle string) []string {
	for _, featured := range entity.FeaturedArtists(rawTitle) {
		known := false
		for _, artist := range artists {
			if strings.EqualFold(artist, featured) {
				known = true
				break
			}
		}
		if !known {
			artists = append(artists, featured)
		}
	}
	return artists
}
