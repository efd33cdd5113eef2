// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"strings"
)

// Input caps. They bound the load placed on the paced external search.
const (
	MaxCompanies = 5
	MaxCount     = 20
)

// ValidationError reports input that exceeds a hard cap. No output is
// written when it is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ParseCompanies splits a comma-separated list, trimming blanks.
func ParseCompanies(raw string) []string {
	var out []string
	for _, c := range strings.Split(raw, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// Validate checks the company list, location and total count against the caps.
func Validate(companies []string, location string, total int) error {
	switch {
	case len(companies) == 0:
		return &ValidationError{Field: "companies", Reason: "no companies provided"}
	case len(companies) > MaxCompanies:
		return &ValidationError{Field: "companies", Reason: fmt.Sprintf("you can provide a maximum of %d companies, got %d", MaxCompanies, len(companies))}
	case strings.TrimSpace(location) == "":
		return &ValidationError{Field: "location", Reason: "location is required"}
	case total > MaxCount:
		return &ValidationError{Field: "count", Reason: fmt.Sprintf("count cannot exceed %d, got %d", MaxCount, total)}
	case total < 1:
		return &ValidationError{Field: "count", Reason: fmt.Sprintf("count must be at least 1, got %d", total)}
	}
	return nil
}
