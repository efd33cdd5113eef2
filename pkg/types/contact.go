// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the contact-finder pipeline:
// search queries, raw person hits, labelled contacts and per-company reports,
// plus the configuration structs loaded through viper.
package types

import "time"

// UnknownName is the placeholder display name used when no name can be
// recovered for a person.
const UnknownName = "Unknown"

// MemberName is the display name the network returns for profiles outside the
// searcher's network. It carries no identifying information.
const MemberName = "LinkedIn Member"

// IsSentinelName reports whether name is empty or one of the placeholder names.
func IsSentinelName(name string) bool {
	return name == "" || name == UnknownName || name == MemberName
}

// RoleGroupLabel names one of the three fixed role groups.
type RoleGroupLabel string

const (
	GroupHR                RoleGroupLabel = "HR/Recruiting"
	GroupProductLeadership RoleGroupLabel = "Product Leadership"
	GroupSeniorLeadership  RoleGroupLabel = "Senior Leadership"
)

// SearchQuery is one people search for a (company, role group) pair.
type SearchQuery struct {
	Company      string   `json:"company" yaml:"company"`
	RoleKeywords []string `json:"role_keywords" yaml:"role_keywords"`
	Location     string   `json:"location" yaml:"location"`
	Limit        int      `json:"limit" yaml:"limit"`
}

// PersonHit is a single raw result from a people search.
type PersonHit struct {
	// URN is the opaque person identifier returned by the network.
	URN string `json:"urn_id" yaml:"urn_id"`

	DisplayName string `json:"name" yaml:"name"`
	JobTitle    string `json:"jobtitle" yaml:"jobtitle"`
	Location    string `json:"location" yaml:"location"`
}

// Contact is an accepted person hit enriched with its company, role group
// and inferred email.
type Contact struct {
	Company string `json:"company" yaml:"company"`

	// Group is attached by the orchestrator; the search adapter leaves it empty.
	Group RoleGroupLabel `json:"group" yaml:"group"`

	// RoleType is the first two role keywords of the query joined by "/".
	RoleType string `json:"role_type" yaml:"role_type"`

	ProfileURL string `json:"profile_url" yaml:"profile_url"`

	// TitleSnippet is "<job title> | <location>".
	TitleSnippet string `json:"title_snippet" yaml:"title_snippet"`

	Name          string `json:"name" yaml:"name"`
	InferredEmail string `json:"inferred_email" yaml:"inferred_email"`
}

// CompanyReport is the ordered list of contacts written for one company.
type CompanyReport struct {
	Company  string    `json:"company" yaml:"company"`
	Date     time.Time `json:"date" yaml:"date"`
	Contacts []Contact `json:"contacts" yaml:"contacts"`
}
