package entity

import (
	"regexp"
	"strings"
)

// certain catalog titles embed crediting annotations which do
// not belong to the song name itself:
// > Title: Name (feat. Someone) [prod. Someone Else]
// > Song:  Name
var (
	bracketedCredit = regexp.MustCompile(`(?i)\s*[(\[]\s*(?:feat|ft|prod)\.?[^)\]]*[)\]]`)
	trailingCredit  = regexp.MustCompile(`(?i)\s+(?:feat|ft|prod)\.?\s+.*$`)
	featuredList    = regexp.MustCompile(`(?i)[(\[]?\s*(?:feat|ft)\.?\s+([^)\]]+)[)\]]?`)
)

// NormalizeTitle strips featuring and producer credits, in either
// bracket style or bare at the end of the title. Titles without
// such annotations come back untouched.
func NormalizeTitle(raw string) string {
	title := bracketedCredit.ReplaceAllString(raw, "")
	title = trailingCredit.ReplaceAllString(title, "")
	return strings.TrimRight(title, " \t")
}

// FeaturedArtists extracts the artist names credited through a
// feat/ft annotation, whether parenthesized or not. It returns
// nil when the title carries no such marker.
func FeaturedArtists(raw string) []string {
	match := featuredList.FindStringSubmatch(raw)
	if match == nil {
		return nil
	}

	var artists []string
	for _, name := range strings.Split(strings.ReplaceAll(match[1], "&", ","), ",") {
		name = strings.Trim(name, " ()[]")
		if name != "" {
			artists = append(artists, name)
		}
	}
	return artists
}
