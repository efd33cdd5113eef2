// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package network

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/pdiddy/contact-finder/internal/secrets"
)

// CredentialsLoader supplies the username and password for a session.
type CredentialsLoader func() (secrets.Credentials, error)

// CredentialsFrom returns a loader reading path with secrets.LoadCredentials.
func CredentialsFrom(path string) CredentialsLoader {
	return func() (secrets.Credentials, error) {
		return secrets.LoadCredentials(path)
	}
}

// Session owns the single authenticated Client of a run. The client is
// created on the first successful Ensure and reused afterwards; failed
// attempts are not cached.
type Session struct {
	load   CredentialsLoader
	dialer Dialer
	logger *zap.Logger

	mu     sync.Mutex
	client Client
}

// NewSession returns a session that authenticates lazily.
func NewSession(load CredentialsLoader, dialer Dialer, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{load: load, dialer: dialer, logger: logger}
}

// Ensure authenticates on first use and returns the cached client. Credential
// problems are reported as *secrets.CredentialsError before any network call.
func (s *Session) Ensure(ctx context.Context) (Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return s.client, nil
	}

	creds, err := s.load()
	if err != nil {
		return nil, err
	}

	s.logger.Info("authenticating", zap.String("username", creds.Username))
	client, err := s.dialer.Dial(ctx, creds)
	if err != nil {
		return nil, &SessionError{Username: creds.Username, Err: err}
	}
	s.logger.Info("authentication successful", zap.String("username", creds.Username))

	s.client = client
	return client, nil
}

// SessionError reports a failed login or connection while opening the
// session. Like a CredentialsError it aborts the run.
type SessionError struct {
	Username string
	Err      error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("opening session for %s: %v", e.Username, e.Err)
}

func (e *SessionError) Unwrap() error { return e.Err }

// IsFatal reports whether err must abort the run rather than degrade to an
// empty result: missing credentials or a session that could not be opened.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, secrets.ErrCredentials) {
		return true
	}
	var se *SessionError
	return errors.As(err, &se)
}
