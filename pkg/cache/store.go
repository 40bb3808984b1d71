// Package cache is a small disk-backed key-value store with TTL expiry.
// The TUI uses it to preload the last cognitive snapshot so panels are
// populated before the first poll completes; the watch daemon writes it.
// Writes are atomic via temp-file-then-rename.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// entryMeta is the JSON header persisted with each entry. Data is opaque
// bytes; callers decide the encoding.
type entryMeta struct {
	Key     string `json:"key"`
	Created int64  `json:"created"` // UnixNano
	TTLNS   int64  `json:"ttl_ns"`  // 0 = no TTL
	Data    []byte `json:"data"`
}

// Store persists entries as one JSON file per key under Dir.
type Store struct {
	dir        string
	defaultTTL time.Duration
}

// NewStore creates a cache store rooted at dir, creating the directory if
// needed. defaultTTL of 0 means entries never expire.
func NewStore(dir string, defaultTTL time.Duration) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("cache: empty directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: create directory: %w", err)
	}
	return &Store{dir: dir, defaultTTL: defaultTTL}, nil
}

// Put stores data under key with the default TTL.
func (s *Store) Put(key string, data []byte) error {
	return s.PutWithTTL(key, data, s.defaultTTL)
}

// PutWithTTL stores data under key with an explicit TTL.
func (s *Store) PutWithTTL(key string, data []byte, ttl time.Duration) error {
	meta := entryMeta{
		Key:     key,
		Created: time.Now().UnixNano(),
		TTLNS:   int64(ttl),
		Data:    data,
	}
	blob, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("cache: marshal entry %q: %w", key, err)
	}

	path := s.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o644); err != nil {
		return fmt.Errorf("cache: write temp for %q: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("cache: rename for %q: %w", key, err)
	}
	return nil
}

// Get returns the data for key, or false if missing or expired. Expired
// entries are removed on read.
func (s *Store) Get(key string) ([]byte, bool) {
	blob, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, false
	}

	var meta entryMeta
	if err := json.Unmarshal(blob, &meta); err != nil {
		// Corrupt entry; drop it.
		os.Remove(s.path(key))
		return nil, false
	}

	if meta.TTLNS > 0 {
		age := time.Since(time.Unix(0, meta.Created))
		if age > time.Duration(meta.TTLNS) {
			os.Remove(s.path(key))
			return nil, false
		}
	}
	return meta.Data, true
}

// Delete removes the entry for key. Missing entries are a no-op.
func (s *Store) Delete(key string) {
	os.Remove(s.path(key))
}

// path maps a key to a stable filename; keys are hashed so arbitrary
// strings are safe.
func (s *Store) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(s.dir, hex.EncodeToString(sum[:8])+".cache")
}
