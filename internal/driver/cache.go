package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"meltr/internal/melt"
	"meltr/internal/source"
)

// Current schema version - increment when cachePayload format changes.
const cacheSchemaVersion uint16 = 1

// Cache stores melted tables on disk keyed by source content and the
// options that produced them, so re-running diagnostics on an unchanged
// file skips the scan entirely.
// Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

type cachePayload struct {
	Schema uint16
	Table  melt.TableData
}

// OpenCache initializes the cache at the standard location
// ($XDG_CACHE_HOME/app, falling back to ~/.cache/app).
func OpenCache(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// key mixes the source content hash with everything that changes the melted
// output: format, locale, chunking, and column names.
func (c *Cache) key(src *source.Source, opts Options) [32]byte {
	h := sha256.New()
	h.Write(src.Hash[:])
	fmt.Fprintf(h, "|%+v|%+v|%d|%v",
		opts.Config.Format, opts.Config.Locale, opts.chunkLines(), opts.Names)
	var key [32]byte
	copy(key[:], h.Sum(nil))
	return key
}

func (c *Cache) pathFor(key [32]byte) string {
	// A "tables" subdirectory keeps the cache easy to inspect and wipe.
	return filepath.Join(c.dir, "tables", hex.EncodeToString(key[:])+".mp")
}

// Get returns the cached table for src under opts, if present and valid.
func (c *Cache) Get(src *source.Source, opts Options) (*melt.Table, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(c.key(src, opts)))
	if err != nil {
		return nil, false
	}

	var payload cachePayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return nil, false
	}
	if payload.Schema != cacheSchemaVersion {
		return nil, false
	}

	table, err := melt.FromData(&payload.Table)
	if err != nil {
		return nil, false
	}
	return table, true
}

// Put serializes and writes a melted table to the cache. The write is
// atomic: a temp file renamed into place.
func (c *Cache) Put(src *source.Source, opts Options, table *melt.Table) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(c.key(src, opts))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}

	data, err := msgpack.Marshal(cachePayload{
		Schema: cacheSchemaVersion,
		Table:  *table.Data(),
	})
	if err != nil {
		return err
	}

	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, p)
}

// Clean removes every cached table.
func (c *Cache) Clean() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	err := os.RemoveAll(filepath.Join(c.dir, "tables"))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
