// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/contact-finder/pkg/types"
)

func testLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "history", "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func TestRecordAndRecent(t *testing.T) {
	l := testLedger(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	tick := 0
	l.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	acme := types.CompanyReport{
		Company: "Acme",
		Contacts: []types.Contact{
			{Company: "Acme", Name: "Jane Doe", TitleSnippet: "VP | London", InferredEmail: "jane.doe@acme.com",
				ProfileURL: "https://www.linkedin.com/in/a", Group: types.GroupSeniorLeadership},
			{Company: "Acme", Name: "John Roe", TitleSnippet: "Recruiter | London", InferredEmail: "john.roe@acme.com",
				ProfileURL: "https://www.linkedin.com/in/b", Group: types.GroupHR},
		},
	}
	acmeID, err := l.Record(ctx, acme, "London", 10, "Acme_14-03-2026_Contact.csv")
	require.NoError(t, err)

	_, err = l.Record(ctx, types.CompanyReport{Company: "Globex"}, "", 5, "Globex_14-03-2026_Contact.csv")
	require.NoError(t, err)

	runs, err := l.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "Globex", runs[0].Company, "newest first")
	assert.Equal(t, 0, runs[0].Written)
	assert.Equal(t, "Acme", runs[1].Company)
	assert.Equal(t, "London", runs[1].Location)
	assert.Equal(t, 10, runs[1].Requested)
	assert.Equal(t, 2, runs[1].Written)
	assert.Equal(t, base.Add(time.Minute), runs[1].CreatedAt)

	contacts, err := l.Contacts(ctx, acmeID)
	require.NoError(t, err)
	assert.Equal(t, acme.Contacts, contacts)
}

func TestRecentLimit(t *testing.T) {
	l := testLedger(t)
	ctx := context.Background()
	for _, c := range []string{"A", "B", "C"} {
		_, err := l.Record(ctx, types.CompanyReport{Company: c}, "", 1, c+".csv")
		require.NoError(t, err)
	}

	runs, err := l.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "C", runs[0].Company)
	assert.Equal(t, "B", runs[1].Company)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	l, err := Open(path)
	require.NoError(t, err)
	_, err = l.Record(context.Background(), types.CompanyReport{Company: "Acme"}, "", 1, "a.csv")
	require.NoError(t, err)
	require.NoError(t, l.Close())

	l, err = Open(path)
	require.NoError(t, err)
	defer l.Close()
	runs, err := l.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
