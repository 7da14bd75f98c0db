package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Tokens is the persisted credential pair
type Tokens struct {
	Access   string `json:"access"`
	Refresh  string `json:"refresh"`
	Username string `json:"username,omitempty"`
}

// TokenStore persists the bearer credential between runs
type TokenStore interface {
	Load() (Tokens, error)
	Save(Tokens) error
	Clear() error
}

// FileTokenStore keeps the tokens in a JSON file readable only by the owner
type FileTokenStore struct {
	path string
}

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// Load returns empty tokens when the file does not exist yet
func (s *FileTokenStore) Load() (Tokens, error) {
	var t Tokens
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return t, nil
	}
	if err != nil {
		return t, fmt.Errorf("failed to read token file: %w", err)
	}
	if err := json.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("failed to parse token file: %w", err)
	}
	return t, nil
}

func (s *FileTokenStore) Save(t Tokens) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

func (s *FileTokenStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}

// MemoryTokenStore keeps tokens for the life of the process
type MemoryTokenStore struct {
	mu     sync.Mutex
	tokens Tokens
}

func (s *MemoryTokenStore) Load() (Tokens, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens, nil
}

func (s *MemoryTokenStore) Save(t Tokens) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = t
	return nil
}

func (s *MemoryTokenStore) Clear() error {
	return s.Save(Tokens{})
}
