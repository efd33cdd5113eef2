// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package network

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pdiddy/contact-finder/internal/httputil"
	"github.com/pdiddy/contact-finder/internal/secrets"
	"github.com/pdiddy/contact-finder/pkg/types"
)

const (
	authPath            = "/auth"
	companySearchPath   = "/search/companies"
	peopleSearchPath    = "/search/people"
	csrfCookie          = "JSESSIONID"
	loginResultPass     = "PASS"
	maxErrorBodySnippet = 200
)

// HTTPClient talks to the JSON people-search gateway.
type HTTPClient struct {
	baseURL   string
	userAgent string
	http      *http.Client
	retrier   *httputil.Retrier
	limiter   *rate.Limiter
	logger    *zap.Logger
}

// HTTPDialer builds authenticated HTTPClients from a NetworkConfig.
type HTTPDialer struct {
	Config types.NetworkConfig
	Logger *zap.Logger

	// Transport overrides the HTTP transport (tests). Nil uses the default.
	Transport http.RoundTripper
}

// Dial logs in with creds and returns a client carrying the session cookies.
func (d *HTTPDialer) Dial(ctx context.Context, creds secrets.Credentials) (Client, error) {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}
	hc := &http.Client{
		Timeout:   d.Config.Timeout,
		Jar:       jar,
		Transport: d.Transport,
	}

	var limiter *rate.Limiter
	if d.Config.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(d.Config.RequestsPerSecond), 1)
	}

	c := &HTTPClient{
		baseURL:   strings.TrimRight(d.Config.BaseURL, "/"),
		userAgent: d.Config.UserAgent,
		http:      hc,
		retrier:   &httputil.Retrier{Client: hc, Logger: logger},
		limiter:   limiter,
		logger:    logger,
	}
	if err := c.login(ctx, creds); err != nil {
		return nil, err
	}
	return c, nil
}

type loginResponse struct {
	LoginResult string `json:"login_result"`
}

func (c *HTTPClient) login(ctx context.Context, creds secrets.Credentials) error {
	form := url.Values{
		"session_key":      {creds.Username},
		"session_password": {creds.Password},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+authPath, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("creating login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var lr loginResponse
	if err := c.do(ctx, req, &lr); err != nil {
		return fmt.Errorf("login request: %w", err)
	}
	if lr.LoginResult != loginResultPass {
		return &AuthError{Username: creds.Username, Result: lr.LoginResult}
	}
	return nil
}

type companySearchResponse struct {
	Results []CompanyHit `json:"results"`
}

// SearchCompanies returns up to limit companies matching keywords.
func (c *HTTPClient) SearchCompanies(ctx context.Context, keywords string, limit int) ([]CompanyHit, error) {
	params := url.Values{
		"keywords": {keywords},
		"limit":    {strconv.Itoa(limit)},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+companySearchPath+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating company search request: %w", err)
	}

	var sr companySearchResponse
	if err := c.do(ctx, req, &sr); err != nil {
		return nil, err
	}
	return sr.Results, nil
}

type peopleSearchResponse struct {
	Results []types.PersonHit `json:"results"`
}

// SearchPeople returns up to q.Limit people matching q.
func (c *HTTPClient) SearchPeople(ctx context.Context, q PeopleQuery) ([]types.PersonHit, error) {
	params := url.Values{
		"keywords": {q.Keywords},
		"limit":    {strconv.Itoa(q.Limit)},
	}
	if q.CurrentCompany != "" {
		params.Set("current_company", q.CurrentCompany)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+peopleSearchPath+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating people search request: %w", err)
	}

	var sr peopleSearchResponse
	if err := c.do(ctx, req, &sr); err != nil {
		return nil, err
	}
	return sr.Results, nil
}

// do waits for the rate limiter, sends req with session headers and decodes
// a 200 JSON response into out.
func (c *HTTPClient) do(ctx context.Context, req *http.Request, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if token := c.csrfToken(req.URL); token != "" {
		req.Header.Set("csrf-token", token)
	}

	c.logger.Debug("api request", zap.String("method", req.Method), zap.String("path", req.URL.Path))
	resp, err := c.retrier.Do(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySnippet))
		return fmt.Errorf("%s returned HTTP %d: %s", req.URL.Path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing %s response: %w", req.URL.Path, err)
	}
	return nil
}

func (c *HTTPClient) csrfToken(u *url.URL) string {
	if c.http.Jar == nil {
		return ""
	}
	for _, ck := range c.http.Jar.Cookies(u) {
		if ck.Name == csrfCookie {
			return strings.Trim(ck.Value, `"`)
		}
	}
	return ""
}
