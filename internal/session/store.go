// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/apex/log"
)

// tokenKey is the single key inside the credentials file. It must stay stable
// across reads and writes; older tokens written under it remain readable.
const tokenKey = "token"

// Store persists the bearer token in a small JSON credentials file, the CLI
// counterpart of the browser's local storage entry.
type Store struct {
	path string
}

// NewStore resolves the credentials file location.
// Precedence:
//  1. BLOGCTL_CREDENTIALS, if set and non-empty
//  2. os.UserConfigDir()/blogctl/credentials.json
func NewStore() (*Store, error) {
	if p := os.Getenv("BLOGCTL_CREDENTIALS"); p != "" {
		return &Store{path: p}, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user config directory: %w", err)
	}

	return &Store{path: filepath.Join(dir, "blogctl", "credentials.json")}, nil
}

// NewStoreAt builds a Store over an explicit file path.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Path returns the credentials file location.
func (s *Store) Path() string { return s.path }

// Token returns the stored token, or "" when none is stored. The BLOGCTL_TOKEN
// env variable overrides the file, mirroring how host tokens are usually
// injected in CI.
func (s *Store) Token() (string, error) {
	if tok := os.Getenv("BLOGCTL_TOKEN"); tok != "" {
		return tok, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read credentials file: %w", err)
	}

	var creds map[string]string
	if err := json.Unmarshal(data, &creds); err != nil {
		return "", fmt.Errorf("failed to unmarshal credentials file: %w", err)
	}

	return creds[tokenKey], nil
}

// SetToken writes the token, creating the credentials directory as needed.
func (s *Store) SetToken(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create credentials directory: %w", err)
	}

	data, err := json.Marshal(map[string]string{tokenKey: token})
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	if err := os.WriteFile(s.path, data, os.FileMode(0o600)); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write credentials file: %w", err)
	}

	return nil
}

// DeleteToken removes the stored token. Deleting an absent token is not an
// error.
func (s *Store) DeleteToken() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove credentials file: %w", err)
	}
	log.Debugf("removed credentials file %s", s.path)
	return nil
}
