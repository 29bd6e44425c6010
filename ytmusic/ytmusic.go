// Package ytmusic is a thin client for the YouTube Music internal
// browse API, covering the handful of calls the pipeline needs:
// search, artist discography, album track listings and the
// catalog's own lyrics store.
package ytmusic

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/ezvezdov/musiclib/util"
)

const (
	endpoint  = "https://music.youtube.com/youtubei/v1"
	origin    = "https://music.youtube.com"
	userAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/115.0"

	clientWeb        = "WEB_REMIX"
	clientWebVersion = "1.20240101.01.00"
	// the android client is the only one serving timed lyrics
	clientAndroid        = "ANDROID_MUSIC"
	clientAndroidVersion = "5.26.1"

	// search filter params, opaque protobuf blobs
	paramsSongs   = "EgWKAQIIAWoKEAkQBRAKEAMQBA%3D%3D"
	paramsAlbums  = "EgWKAQIYAWoKEAkQChAFEAMQBA%3D%3D"
	paramsArtists = "EgWKAQIgAWoKEAkQChAFEAMQBA%3D%3D"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client struct {
	http *http.Client
}

func New() *Client {
	return &Client{
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// call posts a browse-API request and decodes the (loosely
// structured) response into a generic map, left to the parsing
// helpers to navigate.
func (client *Client) call(ctx context.Context, path string, body map[string]interface{}) (map[string]interface{}, error) {
	return client.callAs(ctx, path, body, clientWeb, clientWebVersion)
}

func (client *Client) callAs(ctx context.Context, path string, body map[string]interface{}, name, version string) (map[string]interface{}, error) {
	payload := map[string]interface{}{
		"context": map[string]interface{}{
			"client": map[string]interface{}{
				"clientName":    name,
				"clientVersion": version,
				"hl":            "en",
			},
		},
	}
	for key, value := range body {
		payload[key] = value
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	var parsed map[string]interface{}
	err = util.Retry(3, time.Second, func() error {
		request, err := http.NewRequestWithContext(
			ctx, http.MethodPost,
			fmt.Sprintf("%s/%s?prettyPrint=false", endpoint, path),
			bytes.NewReader(data),
		)
		if err != nil {
			return err
		}
		request.Header.Set("Content-Type", "application/json")
		request.Header.Set("Origin", origin)
		request.Header.Set("User-Agent", userAgent)

		response, err := client.http.Do(request)
		if err != nil {
			return err
		}
		defer response.Body.Close()

		if response.StatusCode != http.StatusOK {
			return fmt.Errorf("%s returned %s", path, response.Status)
		}

		raw, err := io.ReadAll(response.Body)
		if err != nil {
			return err
		}
		return json.Unmarshal(raw, &parsed)
	})
	if err != nil {
		return nil, err
	}
	return parsed, nil
}
