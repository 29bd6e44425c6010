// Package downloader fetches the external payloads of a track:
// the audio stream through yt-dlp and the cover art over HTTP.
package downloader

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/arunsworld/nursery"
	"github.com/gosimple/slug"

	"github.com/ezvezdov/musiclib/entity"
	"github.com/ezvezdov/musiclib/processor"
	"github.com/ezvezdov/musiclib/util"
	"github.com/ezvezdov/musiclib/util/cmd"
)

var httpClient = &http.Client{Timeout: 30 * time.Second}

// Fetch downloads the track's audio into the cache and resolves
// its artwork bytes, both concurrently; tracks themselves are
// still processed one at a time. It returns the cached audio
// path. An artwork failure is logged and tolerated, a missing
// audio stream is not.
func Fetch(ctx context.Context, track *entity.Track) (string, error) {
	path := util.CacheFile(fmt.Sprintf("%s.%s", slug.Make(track.ID), entity.TrackFormat))

	if err := nursery.RunConcurrently(
		func(_ context.Context, ch chan error) {
			if err := cmd.YouTubeDl(track.ID, path); err != nil {
				ch <- fmt.Errorf("fetch audio for %s: %w", track.ID, err)
			}
		},
		func(_ context.Context, _ chan error) {
			if track.Artwork.URL == "" || len(track.Artwork.Data) > 0 {
				return
			}
			data, err := Artwork(ctx, track.Artwork.URL)
			if err != nil {
				log.Printf("downloader: artwork for %s failed: %s", track.ID, err)
				return
			}
			track.Artwork.Data = data
		},
	); err != nil {
		return "", err
	}
	return path, nil
}

// Artwork fetches and normalizes a cover image, retrying
// transient failures with a fixed delay.
func Artwork(ctx context.Context, url string) ([]byte, error) {
	var data []byte
	err := util.Retry(3, time.Second, func() error {
		request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}

		response, err := httpClient.Do(request)
		if err != nil {
			return err
		}
		defer response.Body.Close()

		if response.StatusCode != http.StatusOK {
			return fmt.Errorf("artwork fetch returned %s", response.Status)
		}
		data, err = io.ReadAll(response.Body)
		return err
	})
	if err != nil {
		return nil, err
	}
	return processor.Artwork{}.Process(data)
}
