// Package cache provides a file-based JSON cache with per-entry TTLs.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	ErrNotFound = errors.New("not found")
	ErrExpired  = errors.New("expired")
)

// envelope wraps every cached payload with its write time so expiry is
// decided at read time against the caller's TTL.
type envelope struct {
	StoredAt time.Time       `json:"storedAt"`
	Payload  json.RawMessage `json:"payload"`
}

// Cache is a directory of JSON entries, one file per key. Writes are atomic
// (temp file + rename) and guarded by flock so concurrent echoctl
// invocations do not tear each other's entries.
type Cache struct {
	basePath string
	mu       sync.Mutex
	locks    map[string]*FileLock
}

// New creates a cache rooted at basePath.
func New(basePath string) *Cache {
	return &Cache{
		basePath: basePath,
		locks:    make(map[string]*FileLock),
	}
}

func (c *Cache) keyToFile(key string) string {
	return filepath.Join(c.basePath, key+".json")
}

// Get reads the entry for key into v. Entries older than ttl fail with
// ErrExpired; missing entries fail with ErrNotFound. A ttl of 0 disables
// expiry.
func (c *Cache) Get(key string, ttl time.Duration, v any) error {
	data, err := os.ReadFile(c.keyToFile(key))
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to read cache entry: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		// A torn or foreign file is treated as absent, not fatal.
		return ErrNotFound
	}

	if ttl > 0 && time.Since(env.StoredAt) > ttl {
		return ErrExpired
	}

	if err := json.Unmarshal(env.Payload, v); err != nil {
		return fmt.Errorf("failed to unmarshal cache entry: %w", err)
	}
	return nil
}

// Put stores v under key with the current time.
func (c *Cache) Put(key string, v any) error {
	filePath := c.keyToFile(key)

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	lock := c.getLock(filePath)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	defer lock.Unlock()

	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal: %w", err)
	}
	data, err := json.MarshalIndent(envelope{StoredAt: time.Now(), Payload: payload}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}

	// Write to temp file first, then rename (atomic operation)
	tmpPath := filePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, filePath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename file: %w", err)
	}

	return nil
}

// Invalidate removes the entry for key. Removing a missing entry is not an
// error.
func (c *Cache) Invalidate(key string) error {
	filePath := c.keyToFile(key)

	lock := c.getLock(filePath)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	defer lock.Unlock()

	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}

// Age returns how old the entry for key is.
func (c *Cache) Age(key string) (time.Duration, error) {
	data, err := os.ReadFile(c.keyToFile(key))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return 0, ErrNotFound
	}
	return time.Since(env.StoredAt), nil
}

// getLock returns a file lock for a path.
func (c *Cache) getLock(filePath string) *FileLock {
	c.mu.Lock()
	defer c.mu.Unlock()

	lock, ok := c.locks[filePath]
	if !ok {
		lock = NewFileLock(filePath)
		c.locks[filePath] = lock
	}
	return lock
}
