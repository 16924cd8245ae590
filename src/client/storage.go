package client

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"
)

// Tokens is what a client keeps between calls.
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenStorage persists the session. Implementations must be safe for concurrent use.
type TokenStorage interface {
	Load() (Tokens, error)
	Save(tokens Tokens) error
	// Clear removes everything the storage holds.
	Clear() error
}

type MemoryStorage struct {
	mu     sync.RWMutex
	tokens Tokens
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (s *MemoryStorage) Load() (Tokens, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens, nil
}

func (s *MemoryStorage) Save(tokens Tokens) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = tokens
	return nil
}

func (s *MemoryStorage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = Tokens{}
	return nil
}

// FileStorage keeps the session in a JSON file so it survives restarts.
// A missing file is an empty session.
type FileStorage struct {
	mu   sync.Mutex
	path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (s *FileStorage) Load() (Tokens, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var tokens Tokens
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return tokens, nil
	}
	if err != nil {
		return tokens, fmt.Errorf("read session file: %w", err)
	}
	if err := sonic.Unmarshal(raw, &tokens); err != nil {
		return Tokens{}, fmt.Errorf("decode session file: %w", err)
	}
	return tokens, nil
}

func (s *FileStorage) Save(tokens Tokens) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := sonic.Marshal(tokens)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStorage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
