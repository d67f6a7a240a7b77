// Package file provides a plain-file implementation of the durable storage
// port: each key maps to one JSON file under a root directory. It mirrors
// what a browser's local storage would hold, which makes the persisted
// session trivially inspectable.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/soloquest/soloquest-cli/internal/ports"
)

const (
	storeDirMode  = 0o700
	storeFileMode = 0o600
)

type Store struct {
	root string
	mu   sync.RWMutex
}

var _ ports.KeyValueStore = (*Store)(nil)

func NewStore(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := s.pathForKey(key)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ports.ErrKeyNotFound
		}
		return nil, fmt.Errorf("read storage key %q: %w", key, err)
	}

	return data, nil
}

func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.pathForKey(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), storeDirMode); err != nil {
		return fmt.Errorf("create storage directory: %w", err)
	}

	if err := os.WriteFile(path, value, storeFileMode); err != nil {
		return fmt.Errorf("write storage key %q: %w", key, err)
	}

	return nil
}

// pathForKey maps a storage key to a file under root, rejecting anything
// that would escape it.
func (s *Store) pathForKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("storage key is required")
	}

	path := filepath.Join(s.root, filepath.FromSlash(key)+".json")
	cleaned := filepath.Clean(path)
	if cleaned != path || !strings.HasPrefix(cleaned, s.root+string(os.PathSeparator)) {
		return "", fmt.Errorf("storage key %q resolves outside the store root", key)
	}

	return cleaned, nil
}
