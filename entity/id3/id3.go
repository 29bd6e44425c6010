package id3

import (
	"strconv"
	"strings"

	"github.com/bogem/id3v2/v2"
)

const (
	// TXXX description carrying the discovery-catalog identifier;
	// round-tripping it is what makes ledger reconstruction from
	// on-disk files possible.
	frameCatalogID = "YTM_ID"

	// artists are joined with a character no artist name contains,
	// commas being fair game in names
	artistSeparator = "|"

	frameAlbumArtist = "TPE2"
	artworkMime      = "image/jpeg"
)

type Tag struct {
	*id3v2.Tag
}

func Open(path string) (*Tag, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, err
	}
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	return &Tag{tag}, nil
}

func (tag *Tag) CatalogID() string {
	for _, framer := range tag.GetFrames(tag.CommonID("User defined text information frame")) {
		frame, ok := framer.(id3v2.UserDefinedTextFrame)
		if ok && frame.Description == frameCatalogID {
			return frame.Value
		}
	}
	return ""
}

func (tag *Tag) SetCatalogID(id string) {
	tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
		Encoding:    id3v2.EncodingUTF8,
		Description: frameCatalogID,
		Value:       id,
	})
}

func (tag *Tag) Artists() []string {
	return splitArtists(tag.Artist())
}

func (tag *Tag) SetArtists(artists []string) {
	tag.SetArtist(strings.Join(artists, artistSeparator))
}

func (tag *Tag) AlbumArtists() []string {
	return splitArtists(tag.GetTextFrame(frameAlbumArtist).Text)
}

func (tag *Tag) SetAlbumArtists(artists []string) {
	tag.AddTextFrame(frameAlbumArtist, id3v2.EncodingUTF8, strings.Join(artists, artistSeparator))
}

func (tag *Tag) ReleaseDate() string {
	return tag.GetTextFrame(tag.CommonID("Recording time")).Text
}

func (tag *Tag) SetReleaseDate(date string) {
	tag.AddTextFrame(tag.CommonID("Recording time"), id3v2.EncodingUTF8, date)
}

// TrackPosition returns the "number/total" pair, zero values
// standing for an absent or partial frame.
func (tag *Tag) TrackPosition() (int, int) {
	frame := tag.GetTextFrame(tag.CommonID("Track number/Position in set"))
	if frame.Text == "" {
		return 0, 0
	}

	var (
		parts     = strings.SplitN(frame.Text, "/", 2)
		number, _ = strconv.Atoi(parts[0])
		total     int
	)
	if len(parts) == 2 {
		total, _ = strconv.Atoi(parts[1])
	}
	return number, total
}

func (tag *Tag) SetTrackPosition(number, total int) {
	tag.AddTextFrame(
		tag.CommonID("Track number/Position in set"),
		id3v2.EncodingUTF8,
		strconv.Itoa(number)+"/"+strconv.Itoa(total),
	)
}

func (tag *Tag) Lyrics() string {
	for _, framer := range tag.GetFrames(tag.CommonID("Unsynchronised lyrics/text transcription")) {
		if frame, ok := framer.(id3v2.UnsynchronisedLyricsFrame); ok {
			return frame.Lyrics
		}
	}
	return ""
}

func (tag *Tag) SetLyrics(lyrics string) {
	tag.AddUnsynchronisedLyricsFrame(id3v2.UnsynchronisedLyricsFrame{
		Encoding:          id3v2.EncodingUTF8,
		Language:          "xxx",
		ContentDescriptor: "",
		Lyrics:            lyrics,
	})
}

func (tag *Tag) AttachedPicture() []byte {
	for _, framer := range tag.GetFrames(tag.CommonID("Attached picture")) {
		if frame, ok := framer.(id3v2.PictureFrame); ok {
			return frame.Picture
		}
	}
	return nil
}

func (tag *Tag) SetAttachedPicture(picture []byte) {
	tag.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    artworkMime,
		PictureType: id3v2.PTFrontCover,
		Description: "Cover",
		Picture:     picture,
	})
}

func splitArtists(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, artistSeparator)
}
