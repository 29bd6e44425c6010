package lyrics

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/ezvezdov/musiclib/util"
)

const geniusSearchEndpoint = "https://genius.com/api/search/song"

type genius struct{}

type geniusSearchResult struct {
	Response struct {
		Sections []struct {
			Hits []struct {
				Result struct {
					URL   string `json:"url"`
					Title string `json:"title"`
				} `json:"result"`
			} `json:"hits"`
		} `json:"sections"`
	} `json:"response"`
}

func (genius) Name() string {
	return "genius"
}

// Search scrapes the song page of the first search hit. Genius
// serves plain lyrics only, so synchronized requests short out.
func (genius) Search(ctx context.Context, title string, artists []string, synced bool) (string, error) {
	if synced {
		return "", nil
	}

	endpoint := geniusSearchEndpoint + "?q=" + url.QueryEscape(query(title, artists))
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}

	var search geniusSearchResult
	if err := getJSON(request, &search); err != nil {
		return "", err
	}

	var pageURL string
	for _, section := range search.Response.Sections {
		for _, hit := range section.Hits {
			if hit.Result.URL != "" {
				pageURL = hit.Result.URL
				break
			}
		}
		if pageURL != "" {
			break
		}
	}
	if pageURL == "" {
		return "", nil
	}

	var text string
	err = util.Retry(3, time.Second, func() error {
		request, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return err
		}

		response, err := httpClient.Do(request)
		if err != nil {
			return err
		}
		defer response.Body.Close()

		if response.StatusCode != http.StatusOK {
			return fmt.Errorf("genius returned %s", response.Status)
		}

		document, err := goquery.NewDocumentFromReader(response.Body)
		if err != nil {
			return err
		}
		text = scrapeLyrics(document)
		return nil
	})
	return text, err
}

func scrapeLyrics(document *goquery.Document) string {
	var builder strings.Builder
	document.Find("div[data-lyrics-container='true']").Each(func(_ int, container *goquery.Selection) {
		markup, err := container.Html()
		if err != nil {
			return
		}
		// line breaks survive scraping only as <br> elements
		markup = strings.ReplaceAll(markup, "<br>", "\n")
		markup = strings.ReplaceAll(markup, "<br/>", "\n")

		fragment, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
		if err != nil {
			return
		}
		builder.WriteString(fragment.Text())
		builder.WriteString("\n")
	})
	return strings.TrimSpace(builder.String())
}
