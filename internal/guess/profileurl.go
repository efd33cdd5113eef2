// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package guess

import (
	"net/url"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pdiddy/contact-finder/pkg/types"
)

// profileMarker precedes the vanity slug in a profile URL.
const profileMarker = "/in/"

// ProfileURL returns the public profile URL for a person identifier.
func ProfileURL(urn string) string {
	return "https://www.linkedin.com" + profileMarker + urn
}

// NameFromURL recovers a display name from a profile URL slug, e.g.
// ".../in/jane-doe-12345/" becomes "Jane Doe". Numeric segments are dropped.
// It returns types.UnknownName when the URL has no profile marker or the slug
// has no usable segments.
func NameFromURL(rawURL string) string {
	_, rest, found := strings.Cut(rawURL, profileMarker)
	if !found {
		return types.UnknownName
	}
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		rest = rest[:i]
	}
	if unescaped, err := url.PathUnescape(rest); err == nil {
		rest = unescaped
	}

	var parts []string
	for _, p := range strings.Split(rest, "-") {
		if p == "" || isDigits(p) {
			continue
		}
		parts = append(parts, p)
	}
	if len(parts) == 0 {
		return types.UnknownName
	}
	return cases.Title(language.Und).String(strings.Join(parts, " "))
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
