// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers for the network client.
package httputil

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// HTTP 429 responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 10 * time.Second

const defaultMaxRetries = 5

// Retrier executes requests and retries on HTTP 429 (Too Many Requests).
type Retrier struct {
	Client *http.Client

	// MaxRetries is the number of retries after the first attempt.
	// Zero or less uses the default (5).
	MaxRetries int

	// Logger receives one warning per backoff. Nil disables logging.
	Logger *zap.Logger
}

// Do executes req and retries on HTTP 429 with exponential backoff. The delay
// starts at RetryBaseDelay and doubles each attempt. A Retry-After header
// given in seconds replaces the computed delay when it is longer.
//
// Request bodies are replayed through req.GetBody, so requests built with
// http.NewRequest over a strings.Reader or bytes.Reader can be retried. If
// the context is cancelled during a backoff wait Do returns ctx.Err(). After
// exhausting retries the last 429 response is returned so the caller can
// inspect it.
func (r *Retrier) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	maxRetries := r.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	for attempt := 0; ; attempt++ {
		attemptReq := req.Clone(ctx)
		if attempt > 0 && req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, fmt.Errorf("rewinding request body: %w", err)
			}
			attemptReq.Body = body
		}

		resp, err := client.Do(attemptReq)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		if attempt >= maxRetries {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		if ra := retryAfter(resp.Header.Get("Retry-After")); ra > backoff {
			backoff = ra
		}
		logger.Warn("rate limited, backing off",
			zap.String("url", req.URL.Redacted()),
			zap.Duration("backoff", backoff),
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", maxRetries))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

// DoWithRetry is shorthand for a Retrier without logging.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	r := Retrier{Client: client, MaxRetries: maxRetries}
	return r.Do(ctx, req)
}

// retryAfter parses a Retry-After header expressed in whole seconds.
// HTTP-date values and garbage yield zero.
func retryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
