// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package network

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/contact-finder/internal/guess"
	"github.com/pdiddy/contact-finder/pkg/types"
)

// overfetchFactor is how many raw candidates are requested per wanted
// contact, so that enough survive filtering.
const overfetchFactor = 2

// Searcher resolves companies and finds people through a Session.
type Searcher struct {
	session *Session
	pacer   *Pacer
	logger  *zap.Logger
}

// NewSearcher returns a Searcher. A nil pacer pauses between the default
// bounds; a nil logger discards diagnostics.
func NewSearcher(session *Session, pacer *Pacer, logger *zap.Logger) *Searcher {
	if pacer == nil {
		pacer = &Pacer{Min: DefaultMinDelay, Max: DefaultMaxDelay}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Searcher{session: session, pacer: pacer, logger: logger}
}

// EnsureSession authenticates once; later calls are no-ops.
func (s *Searcher) EnsureSession(ctx context.Context) error {
	_, err := s.session.Ensure(ctx)
	return err
}

// ResolveCompany returns the identifier of the top company match for name
// using a single search with limit 1. No match yields a *SearchError
// wrapping ErrCompanyNotFound. Only session failures are fatal (see IsFatal).
func (s *Searcher) ResolveCompany(ctx context.Context, name string) (string, error) {
	client, err := s.session.Ensure(ctx)
	if err != nil {
		return "", err
	}

	hits, err := client.SearchCompanies(ctx, name, 1)
	if err != nil {
		s.logger.Warn("company lookup failed", zap.String("company", name), zap.Error(err))
		return "", &SearchError{Op: "resolve company", Company: name, Err: err}
	}
	if len(hits) == 0 || hits[0].URN == "" {
		return "", &SearchError{Op: "resolve company", Company: name, Err: ErrCompanyNotFound}
	}
	return hits[0].URN, nil
}

// SearchPeople returns up to count accepted contacts at company whose
// profiles match roleKeywords near location. Contacts carry no group label.
//
// It requests twice count raw candidates, keeps them in returned order,
// rejects hits with a placeholder name or an empty job title, and pauses
// after each accepted hit. A failure returns the contacts accumulated so far
// together with a *SearchError; session failures are returned as-is.
func (s *Searcher) SearchPeople(ctx context.Context, company string, roleKeywords []string, location string, count int) ([]types.Contact, error) {
	if count <= 0 {
		return nil, nil
	}
	logger := s.logger.With(zap.String("company", company), zap.Strings("roles", roleKeywords))

	urn, err := s.ResolveCompany(ctx, company)
	if err != nil {
		if !IsFatal(err) {
			logger.Warn("could not resolve company, skipping", zap.Error(err))
		}
		return nil, err
	}
	logger.Debug("resolved company", zap.String("urn", urn))

	client, err := s.session.Ensure(ctx)
	if err != nil {
		return nil, err
	}

	q := PeopleQuery{
		Keywords:       BuildKeywords(roleKeywords, location),
		CurrentCompany: urn,
		Limit:          count * overfetchFactor,
	}
	hits, err := client.SearchPeople(ctx, q)
	if err != nil {
		logger.Warn("people search failed", zap.Error(err))
		return nil, &SearchError{Op: "search people", Company: company, Err: err}
	}
	if len(hits) > 0 {
		logger.Debug("first hit", zap.Any("hit", hits[0]))
	}

	roleType := strings.Join(roleKeywords[:min(2, len(roleKeywords))], "/")
	var results []types.Contact
	for _, h := range hits {
		if len(results) >= count {
			break
		}
		if !Accept(h) {
			logger.Debug("rejected hit", zap.String("urn", h.URN), zap.String("name", h.DisplayName))
			continue
		}

		results = append(results, types.Contact{
			Company:      company,
			RoleType:     roleType,
			ProfileURL:   guess.ProfileURL(h.URN),
			TitleSnippet: fmt.Sprintf("%s | %s", h.JobTitle, h.Location),
			Name:         h.DisplayName,
		})

		if err := s.pacer.Wait(ctx); err != nil {
			return results, &SearchError{Op: "search people", Company: company, Err: err}
		}
	}

	logger.Info("people search complete", zap.Int("raw", len(hits)), zap.Int("accepted", len(results)))
	return results, nil
}

// Accept reports whether a hit identifies a real person with a job title.
func Accept(h types.PersonHit) bool {
	return !types.IsSentinelName(h.DisplayName) && strings.TrimSpace(h.JobTitle) != ""
}

// BuildKeywords joins role keywords with spaces and appends the location.
func BuildKeywords(roleKeywords []string, location string) string {
	kw := strings.Join(roleKeywords, " ")
	if location != "" {
		kw += " " + location
	}
	return kw
}
