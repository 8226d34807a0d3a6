package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"cfmtlint/internal/diag"
	"cfmtlint/internal/source"
)

// Current schema version - increment when CachedResult format changes
const diskCacheSchemaVersion uint16 = 1

// Cache stores analysis results keyed by file content and options.
type Cache interface {
	Get(key Digest, out *CachedResult) (bool, error)
	Put(key Digest, res *CachedResult) error
}

// CachedResult is the persisted form of a FileResult. Spans are stored with
// FileID zero and rebound to the current FileSet on load.
type CachedResult struct {
	Schema      uint16
	Path        string
	ContentHash Digest
	Calls       int
	Diagnostics []*diag.Diagnostic
}

// DiskCache хранит результаты проверки файлов на диске в msgpack.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenDiskCache initializes a disk cache under $XDG_CACHE_HOME/<app>.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt uses dir as the cache root.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// подкаталог по первому байту, чтобы не складывать всё в одну папку
	return filepath.Join(c.dir, "files", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a result to the disk cache.
func (c *DiskCache) Put(key Digest, res *CachedResult) (err error) {
	if c == nil || res == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	res.Schema = diskCacheSchemaVersion
	if err = msgpack.NewEncoder(f).Encode(res); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads a result from the disk cache. Entries written by another schema
// version are reported as misses.
func (c *DiskCache) Get(key Digest, out *CachedResult) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, fmt.Errorf("decode cache entry: %w", err)
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "files"))
}

// toCached detaches diagnostics from their FileID.
func toCached(path string, hash Digest, calls int, diags []*diag.Diagnostic) *CachedResult {
	out := &CachedResult{Path: path, ContentHash: hash, Calls: calls}
	out.Diagnostics = make([]*diag.Diagnostic, 0, len(diags))
	for _, d := range diags {
		out.Diagnostics = append(out.Diagnostics, rebind(d, 0))
	}
	return out
}

// rebind returns a copy of d with every span moved to file id.
func rebind(d *diag.Diagnostic, id source.FileID) *diag.Diagnostic {
	cp := *d
	cp.Primary.File = id
	if len(d.Notes) > 0 {
		cp.Notes = make([]diag.Note, len(d.Notes))
		for i, n := range d.Notes {
			n.Span.File = id
			cp.Notes[i] = n
		}
	}
	if len(d.Fixes) > 0 {
		cp.Fixes = make([]*diag.Fix, len(d.Fixes))
		for i, f := range d.Fixes {
			fc := *f
			fc.Edits = make([]diag.TextEdit, len(f.Edits))
			for j, e := range f.Edits {
				e.Span.File = id
				fc.Edits[j] = e
			}
			cp.Fixes[i] = &fc
		}
	}
	return &cp
}
