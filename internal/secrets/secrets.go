// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads network credentials from a directory of plain-text
// files or from a JSON credentials file.
//
// In directory form each file is one secret: the filename is the key name and
// the file contents (trimmed) are the value. The keys read are "username" and
// "password".
package secrets

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	usernameKey = "username"
	passwordKey = "password"
)

// ErrCredentials matches every CredentialsError through errors.Is.
var ErrCredentials = errors.New("credentials unavailable")

// CredentialsError reports a missing or incomplete credentials source. It is
// fatal: the pipeline cannot open a session without both fields.
type CredentialsError struct {
	Source string
	Reason string
	Err    error
}

func (e *CredentialsError) Error() string {
	msg := fmt.Sprintf("credentials %s: %s", e.Source, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CredentialsError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrCredentials) succeed for any CredentialsError.
func (e *CredentialsError) Is(target error) bool { return target == ErrCredentials }

// Credentials are the two fields required to authenticate a session.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// String hides the password so credentials can be logged safely.
func (c Credentials) String() string {
	if c.Password == "" {
		return c.Username
	}
	return c.Username + ":<redacted>"
}

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory is not an error; Load returns an empty map.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// LoadCredentials reads username and password from path, which is either a
// secrets directory or a JSON file of the form
// {"username": "...", "password": "..."}. It returns a *CredentialsError when
// the source is missing, unreadable, malformed or lacks either field.
func LoadCredentials(path string) (Credentials, error) {
	if strings.TrimSpace(path) == "" {
		return Credentials{}, &CredentialsError{Source: "(none)", Reason: "no credentials source configured"}
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Credentials{}, &CredentialsError{
				Source: path,
				Reason: "not found; create it with 'username' and 'password' keys",
			}
		}
		return Credentials{}, &CredentialsError{Source: path, Reason: "cannot stat", Err: err}
	}

	var creds Credentials
	if info.IsDir() {
		m, err := Load(path)
		if err != nil {
			return Credentials{}, &CredentialsError{Source: path, Reason: "cannot read directory", Err: err}
		}
		creds = Credentials{Username: m[usernameKey], Password: m[passwordKey]}
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return Credentials{}, &CredentialsError{Source: path, Reason: "cannot read file", Err: err}
		}
		if err := json.Unmarshal(data, &creds); err != nil {
			return Credentials{}, &CredentialsError{Source: path, Reason: "invalid JSON", Err: err}
		}
		creds.Username = strings.TrimSpace(creds.Username)
		creds.Password = strings.TrimSpace(creds.Password)
	}

	if creds.Username == "" || creds.Password == "" {
		return Credentials{}, &CredentialsError{
			Source: path,
			Reason: "must contain 'username' and 'password'",
		}
	}
	return creds, nil
}
