package lyrics

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
)

const (
	netEaseSearchEndpoint = "http://music.163.com/api/search/get/web"
	netEaseLyricEndpoint  = "http://music.163.com/api/song/lyric"
)

var lrcTimestamp = regexp.MustCompile(`^\[\d{2}:\d{2}[.:]\d{2,3}\]`)

type netEase struct{}

type netEaseSearchResult struct {
	Result struct {
		Songs []struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"songs"`
	} `json:"result"`
}

type netEaseLyricResult struct {
	Lrc struct {
		Lyric string `json:"lyric"`
	} `json:"lrc"`
}

func (netEase) Name() string {
	return "netease"
}

func (netEase) Search(ctx context.Context, title string, artists []string, synced bool) (string, error) {
	params := url.Values{}
	params.Set("s", query(title, artists))
	params.Set("type", "1")
	params.Set("limit", "5")

	var search netEaseSearchResult
	if err := netEaseGet(ctx, netEaseSearchEndpoint+"?"+params.Encode(), &search); err != nil {
		return "", err
	}
	if len(search.Result.Songs) == 0 {
		return "", nil
	}

	var lyric netEaseLyricResult
	endpoint := fmt.Sprintf("%s?id=%d&lv=1&kv=1&tv=-1", netEaseLyricEndpoint, search.Result.Songs[0].ID)
	if err := netEaseGet(ctx, endpoint, &lyric); err != nil {
		return "", err
	}

	text := lyric.Lrc.Lyric
	if text == "" {
		return "", nil
	}
	if synced {
		if !lrcTimestamp.MatchString(strings.TrimSpace(text)) {
			return "", nil
		}
		return text, nil
	}
	return stripTimestamps(text), nil
}

// stripTimestamps flattens LRC text into plain lines.
func stripTimestamps(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = lrcTimestamp.ReplaceAllString(line, "")
	}
	return strings.Join(lines, "\n")
}

func netEaseGet(ctx context.Context, endpoint string, out interface{}) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	// the api rejects requests lacking a same-site referer
	request.Header.Set("Referer", "http://music.163.com")
	return getJSON(request, out)
}
