// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package network

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/contact-finder/internal/secrets"
	"github.com/pdiddy/contact-finder/pkg/types"
)

const samplePeople = `{
  "results": [
    {"urn_id": "ACoAAA1", "name": "Jane Doe", "jobtitle": "Head of Talent", "location": "London"},
    {"urn_id": "ACoAAA2", "name": "LinkedIn Member", "jobtitle": "", "location": ""}
  ]
}`

// gateway is a fake people-search API that requires a successful login.
func gateway(t *testing.T, loginResult string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/auth", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "jane@example.com", r.PostForm.Get("session_key"))
		assert.Equal(t, "hunter2", r.PostForm.Get("session_password"))
		http.SetCookie(w, &http.Cookie{Name: "JSESSIONID", Value: `"ajax:123"`, Path: "/"})
		w.Write([]byte(`{"login_result": "` + loginResult + `"}`))
	})
	mux.HandleFunc("/search/companies", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("csrf-token") != "ajax:123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Equal(t, "Acme Inc", r.URL.Query().Get("keywords"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"results": [{"urn_id": "1035", "name": "Acme"}]}`))
	})
	mux.HandleFunc("/search/people", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("csrf-token") != "ajax:123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Equal(t, "test/0.1", r.UserAgent())
		assert.Equal(t, "VP London", r.URL.Query().Get("keywords"))
		assert.Equal(t, "1035", r.URL.Query().Get("current_company"))
		assert.Equal(t, "4", r.URL.Query().Get("limit"))
		w.Write([]byte(samplePeople))
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func testDialer(baseURL string) *HTTPDialer {
	return &HTTPDialer{Config: types.NetworkConfig{
		HTTPConfig: types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "test/0.1"},
		BaseURL:    baseURL + "/",
	}}
}

var janeCreds = secrets.Credentials{Username: "jane@example.com", Password: "hunter2"}

func TestHTTPClientSearch(t *testing.T) {
	ts := gateway(t, "PASS")
	ctx := context.Background()

	client, err := testDialer(ts.URL).Dial(ctx, janeCreds)
	require.NoError(t, err)

	companies, err := client.SearchCompanies(ctx, "Acme Inc", 1)
	require.NoError(t, err)
	assert.Equal(t, []CompanyHit{{URN: "1035", Name: "Acme"}}, companies)

	people, err := client.SearchPeople(ctx, PeopleQuery{Keywords: "VP London", CurrentCompany: "1035", Limit: 4})
	require.NoError(t, err)
	require.Len(t, people, 2)
	assert.Equal(t, types.PersonHit{URN: "ACoAAA1", DisplayName: "Jane Doe", JobTitle: "Head of Talent", Location: "London"}, people[0])
}

func TestHTTPDialRejectedLogin(t *testing.T) {
	ts := gateway(t, "CHALLENGE")

	_, err := testDialer(ts.URL).Dial(context.Background(), janeCreds)
	var ae *AuthError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "CHALLENGE", ae.Result)
}

func TestHTTPClientNon200(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"login_result": "PASS"}`))
	})
	mux.HandleFunc("/search/companies", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	client, err := testDialer(ts.URL).Dial(context.Background(), janeCreds)
	require.NoError(t, err)

	_, err = client.SearchCompanies(context.Background(), "Acme", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 502")
	assert.Contains(t, err.Error(), "upstream down")
}

func TestHTTPClientMalformedJSON(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"login_result": "PASS"}`))
	})
	mux.HandleFunc("/search/people", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"results": [`))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	client, err := testDialer(ts.URL).Dial(context.Background(), janeCreds)
	require.NoError(t, err)

	_, err = client.SearchPeople(context.Background(), PeopleQuery{Keywords: "VP", Limit: 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing /search/people response")
}

func TestHTTPSearcherEndToEnd(t *testing.T) {
	ts := gateway(t, "PASS")
	pacer := &Pacer{Sleep: func(context.Context, time.Duration) error { return nil }}
	s := NewSearcher(NewSession(func() (secrets.Credentials, error) { return janeCreds, nil }, testDialer(ts.URL), nil), pacer, nil)

	got, err := s.SearchPeople(context.Background(), "Acme Inc", []string{"VP"}, "London", 2)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Jane Doe", got[0].Name)
	assert.Equal(t, "Head of Talent | London", got[0].TitleSnippet)
	assert.Equal(t, "https://www.linkedin.com/in/ACoAAA1", got[0].ProfileURL)
}
