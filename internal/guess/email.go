// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package guess derives names and best-guess email addresses for contacts.
//
// The email heuristic is openly approximate: the domain is the company name
// with spaces and punctuation removed plus ".com", and no lookup verifies it.
// Callers should treat the result as a guess, never as a verified address.
package guess

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/pdiddy/contact-finder/pkg/types"
)

// parenthetical matches annotations such as "(she/her)" or "(PMP)".
var parenthetical = regexp.MustCompile(`\([^)]*\)`)

// domainStripper removes the characters dropped when turning a company name
// into a domain label.
var domainStripper = strings.NewReplacer(" ", "", ".", "", ",", "")

// SplitName returns the lowercased first and last name components of a
// display name. Parenthesized text is removed, each token keeps only its
// letters, and middle tokens are discarded. ok is false when fewer than two
// usable tokens remain.
func SplitName(name string) (first, last string, ok bool) {
	if name == "" || name == types.UnknownName {
		return "", "", false
	}
	name = strings.TrimSpace(parenthetical.ReplaceAllString(name, ""))

	tokens := strings.Fields(strings.ToLower(name))
	if len(tokens) < 2 {
		return "", "", false
	}

	parts := tokens[:0]
	for _, tok := range tokens {
		if letters := lettersOnly(tok); letters != "" {
			parts = append(parts, letters)
		}
	}
	if len(parts) < 2 {
		return "", "", false
	}
	return parts[0], parts[len(parts)-1], true
}

// Domain returns the assumed email domain for company: lowercased, with
// spaces, periods and commas removed, followed by ".com".
func Domain(company string) string {
	return domainStripper.Replace(strings.ToLower(company)) + ".com"
}

// Candidates returns the common corporate address formats for name at
// company, most likely first: first.last, firstlast, first, first_last.
// It returns nil when the name does not yield a first and last component.
func Candidates(name, company string) []string {
	first, last, ok := SplitName(name)
	if !ok {
		return nil
	}
	domain := Domain(company)
	return []string{
		first + "." + last + "@" + domain,
		first + last + "@" + domain,
		first + "@" + domain,
		first + "_" + last + "@" + domain,
	}
}

// GenerateEmail returns the single most probable address (first.last@domain)
// or "" when no confident guess can be made.
func GenerateEmail(name, company string) string {
	c := Candidates(name, company)
	if len(c) == 0 {
		return ""
	}
	return c[0]
}

func lettersOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return r
		}
		return -1
	}, s)
}
