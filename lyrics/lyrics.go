package lyrics

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/ezvezdov/musiclib/util"
)

// Provider is a single external lyrics source. A provider that
// finds nothing returns an empty string and no error; errors are
// reserved for transport-level failures and never stop the chain.
type Provider interface {
	Name() string
	Search(ctx context.Context, title string, artists []string, synced bool) (string, error)
}

// Native is the discovery catalog's own lyrics store, addressed
// by the catalog's track identifier.
type Native interface {
	TrackLyrics(ctx context.Context, id string) (text string, synced bool, err error)
}

var httpClient = &http.Client{Timeout: 30 * time.Second}

// Composer resolves the best available lyrics for a track,
// preferring synchronized text over plain:
// > native synchronized
// > external synchronized (lrclib, netease)
// > native plain, if the native lookup yielded any
// > external plain (genius, lrclib, netease)
type Composer struct {
	native Native
	synced []Provider
	plain  []Provider
}

func NewComposer(native Native) *Composer {
	return &Composer{
		native: native,
		synced: []Provider{lrcLib{}, netEase{}},
		plain:  []Provider{genius{}, lrcLib{}, netEase{}},
	}
}

// Resolve returns the lyrics text for the given track, or an
// empty string once every source has been exhausted. The native
// store is only consulted when a catalog identifier is supplied.
func (composer *Composer) Resolve(ctx context.Context, title string, artists []string, nativeRef string) string {
	label := strings.Join(artists, ", ") + " - " + title

	var nativePlain string
	if composer.native != nil && nativeRef != "" {
		text, synced, err := composer.native.TrackLyrics(ctx, nativeRef)
		switch {
		case err != nil:
			log.Printf("lyrics: native lookup for %s failed: %s", label, err)
		case synced && text != "":
			log.Printf("lyrics: synchronized lyrics for %s, source: native", label)
			return strings.TrimRight(text, " \t\n")
		default:
			nativePlain = text
		}
	}

	if text := composer.search(ctx, composer.synced, title, artists, true); text != "" {
		log.Printf("lyrics: synchronized lyrics for %s, source: aggregator", label)
		return text
	}

	if nativePlain != "" {
		log.Printf("lyrics: plain lyrics for %s, source: native", label)
		return strings.TrimRight(nativePlain, " \t\n")
	}

	if text := composer.search(ctx, composer.plain, title, artists, false); text != "" {
		log.Printf("lyrics: plain lyrics for %s, source: aggregator", label)
		return text
	}

	log.Printf("lyrics: no lyrics for %s", label)
	return ""
}

func (composer *Composer) search(ctx context.Context, providers []Provider, title string, artists []string, synced bool) string {
	for _, provider := range providers {
		text, err := provider.Search(ctx, title, artists, synced)
		if err != nil {
			log.Printf("lyrics: %s failed: %s", provider.Name(), err)
			continue
		}
		if text != "" {
			log.Printf("lyrics: hit on %s", provider.Name())
			return strings.TrimRight(text, " \t\n")
		}
	}
	return ""
}

func query(title string, artists []string) string {
	return strings.Join(artists, ", ") + " " + title
}

// getJSON runs the prepared request under the shared retry policy
// and decodes the response body. Provider-specific headers belong
// on the request, not here.
func getJSON(request *http.Request, out interface{}) error {
	return util.Retry(3, time.Second, func() error {
		response, err := httpClient.Do(request)
		if err != nil {
			return err
		}
		defer response.Body.Close()

		if response.StatusCode != http.StatusOK {
			return fmt.Errorf("%s returned %s", request.URL.Host, response.Status)
		}

		body, err := io.ReadAll(response.Body)
		if err != nil {
			return err
		}
		return json.Unmarshal(body, out)
	})
}
