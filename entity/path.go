package entity

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ezvezdov/musiclib/util"
)

// DuplicateDir is the subtree tracks get quarantined into when
// their computed path is already taken.
const DuplicateDir = "DUPLICATE"

// Layout derives on-disk locations within a library root:
// > singles: {root}/{artist}/{artists} - {title}.mp3
// > albums:  {root}/{artist}/[{year}] {album}/{n}. {artists} - {title}.mp3
type Layout struct {
	Root string
}

// TrackPath returns the absolute target path for the given
// track. A pinned relative path (restore case) wins over any
// derivation.
func (layout Layout) TrackPath(track *Track) string {
	if track.RelativePath != "" {
		return filepath.Join(layout.Root, filepath.FromSlash(track.RelativePath))
	}
	return filepath.Join(layout.Root, layout.relative(track))
}

// DuplicatePath returns the quarantine location equivalent to
// the given track's target path.
func (layout Layout) DuplicatePath(track *Track) string {
	relative, err := filepath.Rel(layout.Root, layout.TrackPath(track))
	if err != nil {
		relative = layout.relative(track)
	}
	return filepath.Join(layout.Root, DuplicateDir, relative)
}

// Relative returns the library-relative slash-separated path of
// the track, the form pinned into backup snapshots.
func (layout Layout) Relative(track *Track) string {
	return filepath.ToSlash(layout.relative(track))
}

func (layout Layout) relative(track *Track) string {
	var (
		artist   = component(track.Artists[0])
		filename = fmt.Sprintf("%s - %s.%s",
			component(strings.Join(track.Artists, ", ")),
			component(track.Title),
			TrackFormat,
		)
	)

	if !track.Grouped() {
		return filepath.Join(artist, filename)
	}

	album := component(fmt.Sprintf("[%s] %s", track.Year(), track.Album))
	if track.Number > 0 {
		filename = fmt.Sprintf("%d. %s", track.Number, filename)
	}
	return filepath.Join(artist, album, filename)
}

func component(value string) string {
	return util.LegalizeFilename(util.EscapeSeparator(value))
}
