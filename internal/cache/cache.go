// Package cache provides an in-memory cache for query result sets.
// Entries are MessagePack-encoded and ZStandard-compressed, so a cached
// result set costs a fraction of its decoded size.
package cache

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// DefaultMaxEntries is the entry bound used when no limit is configured.
const DefaultMaxEntries = 128

// Cache is a bounded, goroutine-safe result cache. The zstd encoder and
// decoder are created once and reused; EncodeAll/DecodeAll are safe for
// concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[string][]byte
	order   []string
	max     int

	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// New creates a cache bounded to max entries. A non-positive max uses
// DefaultMaxEntries. Caller must call Close when done.
func New(max int) (*Cache, error) {
	if max <= 0 {
		max = DefaultMaxEntries
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		encoder.Close()
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}

	return &Cache{
		entries: make(map[string][]byte),
		max:     max,
		encoder: encoder,
		decoder: decoder,
	}, nil
}

// Key derives a cache key from its parts (dataset hash, SQL text, ...).
func Key(parts ...string) string {
	sum := md5.Sum([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(sum[:])
}

// Put stores v under key, evicting the oldest entry when the bound is
// exceeded.
func (c *Cache) Put(key string, v any) error {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	compressed := c.encoder.EncodeAll(data, make([]byte, 0, len(data)/2))

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		c.order = append(c.order, key)
	}
	c.entries[key] = compressed

	for len(c.order) > c.max {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	return nil
}

// Get loads the entry under key into v. Reports whether the key was
// present.
func (c *Cache) Get(key string, v any) (bool, error) {
	c.mu.Lock()
	compressed, ok := c.entries[key]
	c.mu.Unlock()
	if !ok {
		return false, nil
	}

	data, err := c.decoder.DecodeAll(compressed, nil)
	if err != nil {
		return false, fmt.Errorf("failed to decompress cache entry: %w", err)
	}
	if err := msgpack.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode cache entry: %w", err)
	}
	return true, nil
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Close releases compressor resources.
func (c *Cache) Close() {
	c.encoder.Close()
	c.decoder.Close()
}
