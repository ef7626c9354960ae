package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"phpfmt/internal/style"
)

// Bump when the entry format changes; stale entries then read as misses.
const cacheSchemaVersion uint16 = 1

// Cache remembers which content/configuration pairs are already in
// formatted form, so re-running over an unchanged tree skips parse and
// layout entirely. Entries are keyed by SHA-256 of the content plus the
// style fingerprint, so any style change invalidates everything at once.
// Safe for concurrent use; a nil *Cache disables caching.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

type cacheEntry struct {
	Schema    uint16
	CheckedAt int64
}

// OpenCache initializes the cache at the standard user location,
// $XDG_CACHE_HOME/<app> or ~/.cache/<app>.
func OpenCache(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenCacheAt(filepath.Join(base, app))
}

// OpenCacheAt initializes a cache rooted at an explicit directory.
func OpenCacheAt(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) pathFor(key string) string {
	return filepath.Join(c.dir, "fmt", key+".mp")
}

func cacheKey(content []byte, cfg *style.Config) string {
	h := sha256.New()
	h.Write(content)
	h.Write([]byte{0})
	h.Write([]byte(cfg.Fingerprint()))
	return hex.EncodeToString(h.Sum(nil))
}

// Formatted reports whether content is known to already be the formatted
// form under cfg. Any read problem counts as a miss.
func (c *Cache) Formatted(content []byte, cfg *style.Config) bool {
	if c == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(cacheKey(content, cfg)))
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()

	var entry cacheEntry
	if err := msgpack.NewDecoder(f).Decode(&entry); err != nil {
		return false
	}
	return entry.Schema == cacheSchemaVersion
}

// MarkFormatted records content as a formatting fixed point under cfg.
// The entry is written to a temp file and renamed into place.
func (c *Cache) MarkFormatted(content []byte, cfg *style.Config) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(cacheKey(content, cfg))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	entry := cacheEntry{Schema: cacheSchemaVersion, CheckedAt: time.Now().Unix()}
	if err := msgpack.NewEncoder(f).Encode(&entry); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return err
	}
	return os.Rename(f.Name(), p)
}

// DropAll discards every cached entry by renaming the directory aside and
// removing it.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}
