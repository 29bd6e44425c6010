package id3

import (
	"github.com/ezvezdov/musiclib/entity"
)

// Write maps the given track onto the file's tag set, replacing
// whatever was there before. Album name, album artists and the
// position frame form a single conditional group, written only
// for tracks grouped on a multi-track album.
func Write(path string, track *entity.Track) error {
	tag, err := Open(path)
	if err != nil {
		return err
	}
	defer tag.Close()

	tag.DeleteAllFrames()
	tag.SetCatalogID(track.ID)
	tag.SetTitle(track.Title)
	tag.SetArtists(track.Artists)
	tag.SetReleaseDate(track.ReleaseDate)

	if track.Grouped() {
		tag.SetAlbum(track.Album)
		tag.SetAlbumArtists(track.AlbumArtists)
		tag.SetTrackPosition(track.Number, track.Total)
	}
	if track.Lyrics != "" {
		tag.SetLyrics(track.Lyrics)
	}
	if len(track.Artwork.Data) > 0 {
		tag.SetAttachedPicture(track.Artwork.Data)
	}

	return tag.Save()
}

// Read is the inverse of Write: every missing frame maps to a
// zero field rather than an error, so partially tagged files
// still come back as usable records.
func Read(path string) (*entity.Track, error) {
	tag, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer tag.Close()

	number, total := tag.TrackPosition()
	track := &entity.Track{
		ID:           tag.CatalogID(),
		CatalogTitle: tag.Title(),
		Title:        tag.Title(),
		Artists:      tag.Artists(),
		ReleaseDate:  tag.ReleaseDate(),
		Album:        tag.Album(),
		AlbumArtists: tag.AlbumArtists(),
		Number:       number,
		Total:        total,
		Lyrics:       tag.Lyrics(),
		Artwork:      entity.Artwork{Data: tag.AttachedPicture()},
	}
	if len(track.AlbumArtists) == 0 && !track.Grouped() {
		track.AlbumArtists = track.Artists
	}
	return track, nil
}
