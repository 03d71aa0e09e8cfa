// Package auth owns the credential lifecycle: storing it, obtaining it from
// the backend, attaching it to requests and gating protected commands.
package auth

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/oauth2"
)

// DefaultTokenType is assumed when the backend does not name one.
const DefaultTokenType = "Bearer"

// Store holds a single credential.
type Store interface {
	// Set replaces the stored credential.
	Set(credential string) error

	// Get returns the stored credential and whether one exists.
	Get() (string, bool)

	// Clear removes the credential. Clearing an empty store is not an error.
	Clear() error
}

// Compose builds the credential sent in the Authorization header.
func Compose(tokenType, token string) string {
	tokenType = strings.TrimSpace(tokenType)
	if tokenType == "" {
		tokenType = DefaultTokenType
	}
	return tokenType + " " + token
}

// FileStore persists the credential as an oauth2 token file.
// The file survives process restarts; there is no expiry tracking.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by path (usually config.TokenPath()).
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the token file path.
func (s *FileStore) Path() string {
	return s.path
}

// Set writes the credential with mode 0600, creating the directory if needed.
func (s *FileStore) Set(credential string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}
	tokenType, value, ok := strings.Cut(credential, " ")
	if !ok {
		tokenType, value = "", credential
	}
	token := &oauth2.Token{
		TokenType:   tokenType,
		AccessToken: value,
	}
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

// Get reads the credential. A missing or unreadable file reads as absent.
func (s *FileStore) Get() (string, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return "", false
	}
	if token.AccessToken == "" {
		return "", false
	}
	if token.TokenType == "" {
		return token.AccessToken, true
	}
	return token.TokenType + " " + token.AccessToken, true
}

// Clear deletes the token file.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// MemoryStore keeps the credential in memory.
type MemoryStore struct {
	mu         sync.RWMutex
	credential string
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Set(credential string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credential = credential
	return nil
}

func (s *MemoryStore) Get() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credential, s.credential != ""
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credential = ""
	return nil
}
