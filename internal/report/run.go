// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report orchestrates a contact-finding run: it validates input,
// splits the requested count across role groups, searches each group per
// company, derives names and emails, and writes one CSV per company.
package report

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/contact-finder/internal/guess"
	"github.com/pdiddy/contact-finder/internal/network"
	"github.com/pdiddy/contact-finder/pkg/types"
)

// PeopleSearcher finds unlabelled contacts at a company. *network.Searcher
// satisfies it.
type PeopleSearcher interface {
	EnsureSession(ctx context.Context) error
	SearchPeople(ctx context.Context, company string, roleKeywords []string, location string, count int) ([]types.Contact, error)
}

// Recorder stores written reports. *ledger.Ledger satisfies it.
type Recorder interface {
	Record(ctx context.Context, report types.CompanyReport, location string, requested int, path string) (int64, error)
}

// Input is one run request.
type Input struct {
	Companies  []string
	Location   string
	TotalCount int
}

// Written describes one report file.
type Written struct {
	Company  string
	Path     string
	Contacts int
	Failures int
}

// Summary holds the outcome of a run.
type Summary struct {
	Reports []Written
}

// Contacts returns the total number of contacts written.
func (s Summary) Contacts() int {
	n := 0
	for _, r := range s.Reports {
		n += r.Contacts
	}
	return n
}

// Failures returns the number of group searches that degraded.
func (s Summary) Failures() int {
	n := 0
	for _, r := range s.Reports {
		n += r.Failures
	}
	return n
}

// Orchestrator runs the pipeline sequentially: one company at a time, one
// role group at a time.
type Orchestrator struct {
	Searcher  PeopleSearcher
	OutputDir string

	// Recorder is optional; nil skips recording.
	Recorder Recorder

	// Now returns the report date. Nil uses time.Now.
	Now func() time.Time

	// Out receives progress lines. Nil discards them.
	Out io.Writer

	Logger *zap.Logger
}

// Run validates in, then writes one report per company. Search failures are
// printed and treated as fewer results; credential and session failures
// abort the run, leaving already written reports in place.
func (o *Orchestrator) Run(ctx context.Context, in Input) (Summary, error) {
	if err := Validate(in.Companies, in.Location, in.TotalCount); err != nil {
		return Summary{}, err
	}

	w := o.Out
	if w == nil {
		w = io.Discard
	}
	logger := o.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := o.Now
	if now == nil {
		now = time.Now
	}

	if err := o.Searcher.EnsureSession(ctx); err != nil {
		return Summary{}, err
	}

	c1, c2, c3 := SplitCount(in.TotalCount)
	counts := [3]int{c1, c2, c3}
	logger.Debug("split count", zap.Int("total", in.TotalCount), zap.Ints("groups", counts[:]))

	fmt.Fprintf(w, "Starting search for %d companies in %s (target: %d profiles/company)...\n",
		len(in.Companies), in.Location, in.TotalCount)

	var summary Summary
	for _, company := range in.Companies {
		fmt.Fprintf(w, "Processing %s...\n", company)

		report := types.CompanyReport{Company: company, Date: now()}
		failures := 0
		for i, group := range RoleGroups {
			if counts[i] == 0 {
				continue
			}
			found, err := o.Searcher.SearchPeople(ctx, company, group.Keywords, in.Location, counts[i])
			if err != nil {
				if network.IsFatal(err) {
					return summary, err
				}
				if ctx.Err() != nil {
					return summary, ctx.Err()
				}
				failures++
				fmt.Fprintf(w, "  warning: %s %s: %v\n", company, group.Label, err)
			}
			for _, c := range found {
				c.Group = group.Label
				report.Contacts = append(report.Contacts, c)
			}
			fmt.Fprintf(w, "  %s: %d/%d\n", group.Label, len(found), counts[i])
		}

		Finalize(report.Contacts)

		path := filepath.Join(o.OutputDir, Filename(company, report.Date))
		if err := WriteFile(path, report.Contacts); err != nil {
			return summary, fmt.Errorf("writing report for %s: %w", company, err)
		}
		fmt.Fprintf(w, "Done! Saved %d profiles to %s\n", len(report.Contacts), path)

		if o.Recorder != nil {
			if _, err := o.Recorder.Record(ctx, report, in.Location, in.TotalCount, path); err != nil {
				logger.Warn("recording report failed", zap.String("company", company), zap.Error(err))
			}
		}

		summary.Reports = append(summary.Reports, Written{
			Company:  company,
			Path:     path,
			Contacts: len(report.Contacts),
			Failures: failures,
		})
	}
	return summary, nil
}

// Finalize backfills missing names from profile URLs and sets each
// contact's inferred email.
func Finalize(contacts []types.Contact) {
	for i := range contacts {
		c := &contacts[i]
		if c.Name == "" {
			c.Name = guess.NameFromURL(c.ProfileURL)
		}
		c.InferredEmail = guess.GenerateEmail(c.Name, c.Company)
	}
}
