package lyrics

import (
	"context"
	"net/http"
	"net/url"

	jsoniter "github.com/json-iterator/go"
	"github.com/ezvezdov/musiclib/util"
)

const lrcLibEndpoint = "https://lrclib.net/api/search"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type lrcLib struct{}

type lrcLibRecord struct {
	TrackName    string `json:"trackName"`
	ArtistName   string `json:"artistName"`
	Instrumental bool   `json:"instrumental"`
	PlainLyrics  string `json:"plainLyrics"`
	SyncedLyrics string `json:"syncedLyrics"`
}

func (lrcLib) Name() string {
	return "lrclib"
}

func (lrcLib) Search(ctx context.Context, title string, artists []string, synced bool) (string, error) {
	endpoint := lrcLibEndpoint + "?q=" + url.QueryEscape(query(title, artists))
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}

	var records []lrcLibRecord
	if err := getJSON(request, &records); err != nil {
		return "", err
	}

	for _, record := range records {
		if record.Instrumental {
			continue
		}
		if synced {
			if record.SyncedLyrics != "" {
				return record.SyncedLyrics, nil
			}
			continue
		}
		if text := util.First(record.SyncedLyrics, record.PlainLyrics); text != "" {
			return text, nil
		}
	}
	return "", nil
}
