package ytmusic

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// TrackLyrics fetches the catalog's own lyrics for a track. The
// boolean reports whether the text carries per-line timestamps;
// timed lines are rendered as "[mm:ss.mmm]text".
func (client *Client) TrackLyrics(ctx context.Context, videoID string) (string, bool, error) {
	browseID, err := client.lyricsBrowseID(ctx, videoID)
	if err != nil {
		return "", false, err
	}
	if browseID == "" {
		return "", false, nil
	}

	response, err := client.callAs(ctx, "browse",
		map[string]interface{}{"browseId": browseID},
		clientAndroid, clientAndroidVersion)
	if err != nil {
		return "", false, err
	}

	lines := digList(response,
		"contents", "elementRenderer", "newElement", "type", "componentType",
		"model", "timedLyricsModel", "lyricsData", "timedLyricsData")
	if len(lines) > 0 {
		rendered := make([]string, 0, len(lines))
		for _, line := range lines {
			start, _ := strconv.Atoi(digString(line, "cueRange", "startTimeMilliseconds"))
			rendered = append(rendered, fmt.Sprintf("[%s]%s", formatOffset(start), digString(line, "lyricLine")))
		}
		return strings.Join(rendered, "\n"), true, nil
	}

	plain := runsText(response,
		"contents", "sectionListRenderer", "contents", 0,
		"musicDescriptionShelfRenderer", "description")
	return plain, false, nil
}

// lyricsBrowseID resolves a track to the browse identifier of
// its lyrics tab, empty when the catalog has none for it.
func (client *Client) lyricsBrowseID(ctx context.Context, videoID string) (string, error) {
	response, err := client.call(ctx, "next", map[string]interface{}{"videoId": videoID})
	if err != nil {
		return "", err
	}

	tabs := digList(response,
		"contents", "singleColumnMusicWatchNextResultsRenderer",
		"tabbedRenderer", "watchNextTabbedResultsRenderer", "tabs")
	for _, tab := range tabs {
		renderer := dig(tab, "tabRenderer")
		if digString(renderer, "title") != "Lyrics" {
			continue
		}
		return digString(renderer, "endpoint", "browseEndpoint", "browseId"), nil
	}
	return "", nil
}

func formatOffset(ms int) string {
	return fmt.Sprintf("%02d:%02d.%03d", ms/60000, ms/1000%60, ms%1000)
}
