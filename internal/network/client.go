// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package network is the session and search adapter for the professional
// network. It owns one lazily authenticated client, resolves company names
// to identifiers, and searches people at a company by role keywords while
// filtering low-information hits and pacing requests.
package network

import (
	"context"
	"errors"
	"fmt"

	"github.com/pdiddy/contact-finder/internal/secrets"
	"github.com/pdiddy/contact-finder/pkg/types"
)

// Client is an authenticated connection to the people-search API. The HTTP
// gateway is the production implementation; tests substitute fakes.
type Client interface {
	SearchCompanies(ctx context.Context, keywords string, limit int) ([]CompanyHit, error)
	SearchPeople(ctx context.Context, q PeopleQuery) ([]types.PersonHit, error)
}

// Dialer authenticates and returns a ready Client.
type Dialer interface {
	Dial(ctx context.Context, creds secrets.Credentials) (Client, error)
}

// DialerFunc adapts a function to the Dialer interface.
type DialerFunc func(ctx context.Context, creds secrets.Credentials) (Client, error)

// Dial calls f.
func (f DialerFunc) Dial(ctx context.Context, creds secrets.Credentials) (Client, error) {
	return f(ctx, creds)
}

// CompanyHit is one result of a company search.
type CompanyHit struct {
	URN  string `json:"urn_id"`
	Name string `json:"name"`
}

// PeopleQuery is a people search constrained to one company.
type PeopleQuery struct {
	Keywords       string
	CurrentCompany string
	Limit          int
}

// ErrCompanyNotFound is returned by ResolveCompany when the search succeeds
// but yields no company.
var ErrCompanyNotFound = errors.New("company not found")

// SearchError wraps a failed API call. Search errors are never fatal: callers
// treat them as fewer results than requested.
type SearchError struct {
	Op      string
	Company string
	Err     error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Company, e.Err)
}

func (e *SearchError) Unwrap() error { return e.Err }

// AuthError reports a rejected login. Dial failures surface as
// *AuthError or transport errors; both abort the run.
type AuthError struct {
	Username string
	Result   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed for %s: %s", e.Username, e.Result)
}
