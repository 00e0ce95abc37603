package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/oasedit/node"
	"github.com/erraggy/oasedit/refs"
	"github.com/erraggy/oasedit/specview"
)

// specInput represents the two ways a document can be provided to a tool.
// Exactly one of File or Content must be set. URLs are deliberately not
// supported: references never reach outside the document, and neither does
// the server.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OpenAPI file on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline OpenAPI document content (JSON or YAML)"`
}

// session is a cached read session: a parsed document plus the view and
// resolver derived from it. Tools are read-only, so the generation never
// advances and the derived state never goes stale.
type session struct {
	doc      *node.Document
	view     *specview.View
	resolver *refs.Resolver
}

// cacheEntry holds a cached session with LRU ordering and TTL expiry.
type cacheEntry struct {
	sess      *session
	insertAt  time.Time
	expiresAt time.Time
}

// sessionCacheStore caches parse sessions across tool calls. File inputs are
// keyed by (absolutePath, modTime) so an edited file invalidates itself;
// content inputs are keyed by a SHA-256 hash. Entries have per-type TTLs and
// a background sweeper removes expired entries.
type sessionCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

var sessionCache = &sessionCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns a cached session or nil. Expired entries are lazily removed.
func (c *sessionCacheStore) get(key string) *session {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
			delete(c.entries, key)
			return nil
		}
		// Touch entry for LRU.
		e.insertAt = time.Now()
		return e.sess
	}
	return nil
}

// putWithTTL stores a session with a specific TTL, evicting the oldest entry
// if at capacity.
func (c *sessionCacheStore) putWithTTL(key string, sess *session, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{sess: sess, insertAt: now, expiresAt: now.Add(ttl)}

	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry
		return
	}

	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.insertAt
			}
		}
		if oldestKey != "" {
			delete(c.entries, oldestKey)
		}
	}

	c.entries[key] = entry
}

// sweep removes all expired entries from the cache.
func (c *sessionCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper launches a background goroutine that periodically removes
// expired entries. Safe to call multiple times; only the first call spawns a
// sweeper. It stops when ctx is cancelled.
func (c *sessionCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	if !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *sessionCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// size returns the number of cached entries.
func (c *sessionCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// makeCacheKey creates a cache key for the given spec input.
func makeCacheKey(s specInput) string {
	switch {
	case s.File != "":
		absPath, err := filepath.Abs(s.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return "" // Can't stat, don't cache.
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano())
	case s.Content != "":
		h := sha256.Sum256([]byte(s.Content))
		return "content:" + hex.EncodeToString(h[:])
	default:
		return ""
	}
}

// resolve parses the document from whichever input was provided and builds
// the session's view and resolver, using the cache when enabled.
func (s specInput) resolve() (*session, error) {
	if (s.File == "") == (s.Content == "") {
		return nil, fmt.Errorf("exactly one of file or content must be provided")
	}

	var key string
	var ttl time.Duration
	if cfg.CacheEnabled {
		key = makeCacheKey(s)
		if s.File != "" {
			ttl = cfg.CacheFileTTL
		} else {
			ttl = cfg.CacheContentTTL
		}
	}
	if key != "" {
		if cached := sessionCache.get(key); cached != nil {
			return cached, nil
		}
	}

	var (
		data   []byte
		source string
		err    error
	)
	if s.File != "" {
		data, err = os.ReadFile(s.File)
		if err != nil {
			return nil, err
		}
		source = s.File
	} else {
		data = []byte(s.Content)
		source = "inline"
	}

	doc, err := node.Parse(data, node.FormatAuto, node.WithSource(source))
	if err != nil {
		return nil, err
	}
	sess := &session{
		doc:      doc,
		view:     specview.Build(doc),
		resolver: refs.New(doc),
	}

	if key != "" {
		sessionCache.putWithTTL(key, sess, ttl)
	}
	return sess, nil
}
