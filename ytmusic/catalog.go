package ytmusic

import (
	"context"
	"strconv"
	"strings"
)

type ArtistRef struct {
	BrowseID string
	Name     string
}

type AlbumRef struct {
	BrowseID string
	Title    string
	Year     string
}

type Artist struct {
	BrowseID string
	Name     string
	Albums   []AlbumRef
	Singles  []AlbumRef
}

type Song struct {
	ID         string // videoId, the ledger key
	Title      string
	Artists    []string
	Album      string
	Number     int
	ArtworkURL string
}

type Album struct {
	BrowseID   string
	Title      string
	Year       string
	Artists    []string
	ArtworkURL string
	Tracks     []Song
}

const (
	pageTypeArtist = "MUSIC_PAGE_TYPE_ARTIST"
	pageTypeAlbum  = "MUSIC_PAGE_TYPE_ALBUM"
)

// SearchSongs runs a song-filtered search and returns the hits
// in result order.
func (client *Client) SearchSongs(ctx context.Context, query string) ([]Song, error) {
	response, err := client.call(ctx, "search", map[string]interface{}{
		"query":  query,
		"params": paramsSongs,
	})
	if err != nil {
		return nil, err
	}

	var songs []Song
	for _, item := range searchResults(response) {
		if song := parseListItem(dig(item, "musicResponsiveListItemRenderer")); song.ID != "" {
			songs = append(songs, song)
		}
	}
	return songs, nil
}

// SearchArtists runs an artist-filtered search.
func (client *Client) SearchArtists(ctx context.Context, query string) ([]ArtistRef, error) {
	response, err := client.call(ctx, "search", map[string]interface{}{
		"query":  query,
		"params": paramsArtists,
	})
	if err != nil {
		return nil, err
	}

	var artists []ArtistRef
	for _, item := range searchResults(response) {
		renderer := dig(item, "musicResponsiveListItemRenderer")
		ref := ArtistRef{
			BrowseID: digString(renderer, "navigationEndpoint", "browseEndpoint", "browseId"),
			Name:     runText(renderer, 0, "flexColumns", 0, "musicResponsiveListItemFlexColumnRenderer", "text"),
		}
		if ref.BrowseID != "" {
			artists = append(artists, ref)
		}
	}
	return artists, nil
}

// SearchAlbums runs an album-filtered search.
func (client *Client) SearchAlbums(ctx context.Context, query string) ([]AlbumRef, error) {
	response, err := client.call(ctx, "search", map[string]interface{}{
		"query":  query,
		"params": paramsAlbums,
	})
	if err != nil {
		return nil, err
	}

	var albums []AlbumRef
	for _, item := range searchResults(response) {
		renderer := dig(item, "musicResponsiveListItemRenderer")
		ref := AlbumRef{
			BrowseID: digString(renderer, "navigationEndpoint", "browseEndpoint", "browseId"),
			Title:    runText(renderer, 0, "flexColumns", 0, "musicResponsiveListItemFlexColumnRenderer", "text"),
		}
		for _, run := range digList(renderer, "flexColumns", 1, "musicResponsiveListItemFlexColumnRenderer", "text", "runs") {
			if year := digString(run, "text"); len(year) == 4 && isNumeric(year) {
				ref.Year = year
			}
		}
		if ref.BrowseID != "" {
			albums = append(albums, ref)
		}
	}
	return albums, nil
}

// Artist fetches an artist page and its complete discography.
// Shelves exposing a "more" browse identifier are expanded
// through it, so the result is never capped at the first page.
func (client *Client) Artist(ctx context.Context, browseID string) (*Artist, error) {
	response, err := client.call(ctx, "browse", map[string]interface{}{"browseId": browseID})
	if err != nil {
		return nil, err
	}

	artist := &Artist{
		BrowseID: browseID,
		Name:     runText(response, 0, "header", "musicImmersiveHeaderRenderer", "title"),
	}

	sections := digList(response,
		"contents", "singleColumnBrowseResultsRenderer", "tabs", 0,
		"tabRenderer", "content", "sectionListRenderer", "contents")
	for _, section := range sections {
		shelf := dig(section, "musicCarouselShelfRenderer")
		if shelf == nil {
			continue
		}

		var (
			header   = dig(shelf, "header", "musicCarouselShelfBasicHeaderRenderer")
			label    = strings.ToLower(runText(header, 0, "title"))
			moreID   = digString(header, "title", "runs", 0, "navigationEndpoint", "browseEndpoint", "browseId")
			moreArgs = digString(header, "title", "runs", 0, "navigationEndpoint", "browseEndpoint", "params")
		)

		var refs []AlbumRef
		if moreID != "" {
			if refs, err = client.releases(ctx, moreID, moreArgs); err != nil {
				return nil, err
			}
		} else {
			for _, item := range digList(shelf, "contents") {
				if ref := parseTwoRowItem(dig(item, "musicTwoRowItemRenderer")); ref.BrowseID != "" {
					refs = append(refs, ref)
				}
			}
		}

		switch label {
		case "albums":
			artist.Albums = refs
		case "singles", "singles & eps":
			artist.Singles = refs
		}
	}
	return artist, nil
}

// releases expands a discography shelf, following grid
// continuations to exhaustion.
func (client *Client) releases(ctx context.Context, browseID, params string) ([]AlbumRef, error) {
	body := map[string]interface{}{"browseId": browseID}
	if params != "" {
		body["params"] = params
	}
	response, err := client.call(ctx, "browse", body)
	if err != nil {
		return nil, err
	}

	grid := dig(response,
		"contents", "singleColumnBrowseResultsRenderer", "tabs", 0,
		"tabRenderer", "content", "sectionListRenderer", "contents", 0, "gridRenderer")

	var refs []AlbumRef
	for {
		for _, item := range digList(grid, "items") {
			if ref := parseTwoRowItem(dig(item, "musicTwoRowItemRenderer")); ref.BrowseID != "" {
				refs = append(refs, ref)
			}
		}

		token := digString(grid, "continuations", 0, "nextContinuationData", "continuation")
		if token == "" {
			return refs, nil
		}
		response, err = client.call(ctx, "browse", map[string]interface{}{"continuation": token})
		if err != nil {
			return nil, err
		}
		grid = dig(response, "continuationContents", "gridContinuation")
	}
}

// AlbumTracks fetches an album page and its full track listing.
func (client *Client) AlbumTracks(ctx context.Context, browseID string) (*Album, error) {
	response, err := client.call(ctx, "browse", map[string]interface{}{"browseId": browseID})
	if err != nil {
		return nil, err
	}

	header := dig(response, "header", "musicDetailHeaderRenderer")
	album := &Album{
		BrowseID:   browseID,
		Title:      runsText(header, "title"),
		ArtworkURL: largestThumbnail(header, "thumbnail", "croppedSquareThumbnailRenderer", "thumbnail", "thumbnails"),
	}
	for _, run := range digList(header, "subtitle", "runs") {
		text := digString(run, "text")
		switch {
		case digString(run, "navigationEndpoint", "browseEndpoint", "browseId") != "":
			album.Artists = append(album.Artists, text)
		case len(text) == 4 && isNumeric(text):
			album.Year = text
		}
	}

	items := digList(response,
		"contents", "singleColumnBrowseResultsRenderer", "tabs", 0,
		"tabRenderer", "content", "sectionListRenderer", "contents", 0,
		"musicShelfRenderer", "contents")
	for position, item := range items {
		renderer := dig(item, "musicResponsiveListItemRenderer")
		song := parseListItem(renderer)
		if song.ID == "" {
			continue
		}
		song.Album = album.Title
		song.ArtworkURL = album.ArtworkURL
		if song.Number == 0 {
			song.Number = position + 1
		}
		if number, err := strconv.Atoi(runsText(renderer, "index")); err == nil {
			song.Number = number
		}
		album.Tracks = append(album.Tracks, song)
	}
	return album, nil
}

func searchResults(response interface{}) []interface{} {
	var items []interface{}
	sections := digList(response,
		"contents", "tabbedSearchResultsRenderer", "tabs", 0,
		"tabRenderer", "content", "sectionListRenderer", "contents")
	for _, section := range sections {
		items = append(items, digList(section, "musicShelfRenderer", "contents")...)
	}
	return items
}

func parseListItem(renderer interface{}) Song {
	song := Song{
		ID:    digString(renderer, "playlistItemData", "videoId"),
		Title: runText(renderer, 0, "flexColumns", 0, "musicResponsiveListItemFlexColumnRenderer", "text"),
	}
	if song.ID == "" {
		song.ID = digString(renderer,
			"flexColumns", 0, "musicResponsiveListItemFlexColumnRenderer", "text",
			"runs", 0, "navigationEndpoint", "watchEndpoint", "videoId")
	}

	for _, run := range digList(renderer, "flexColumns", 1, "musicResponsiveListItemFlexColumnRenderer", "text", "runs") {
		var (
			text     = digString(run, "text")
			pageType = digString(run,
				"navigationEndpoint", "browseEndpoint",
				"browseEndpointContextSupportedConfigs", "browseEndpointContextMusicConfig", "pageType")
		)
		switch pageType {
		case pageTypeArtist:
			song.Artists = append(song.Artists, text)
		case pageTypeAlbum:
			song.Album = text
		}
	}
	return song
}

func parseTwoRowItem(renderer interface{}) AlbumRef {
	ref := AlbumRef{
		BrowseID: digString(renderer, "navigationEndpoint", "browseEndpoint", "browseId"),
		Title:    runText(renderer, 0, "title"),
	}
	for _, run := range digList(renderer, "subtitle", "runs") {
		if text := digString(run, "text"); len(text) == 4 && isNumeric(text) {
			ref.Year = text
		}
	}
	return ref
}

func largestThumbnail(value interface{}, path ...interface{}) string {
	thumbnails := digList(value, path...)
	if len(thumbnails) == 0 {
		return ""
	}
	return digString(thumbnails[len(thumbnails)-1], "url")
}

func isNumeric(text string) bool {
	_, err := strconv.Atoi(text)
	return err == nil
}
