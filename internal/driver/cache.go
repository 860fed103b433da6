package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"tabtidy/internal/ast"
	"tabtidy/internal/diag"
	"tabtidy/internal/source"
)

// Current schema version - increment when CachedResult format changes
const resultCacheSchema uint16 = 1

// CacheKey addresses one cached result.
type CacheKey [32]byte

// String returns the hex form used as file name.
func (k CacheKey) String() string { return hex.EncodeToString(k[:]) }

// CacheKeyFor hashes content, the options fingerprint and the file kind.
// Any change to one of them yields a different key.
func CacheKeyFor(content []byte, fingerprint string, kind ast.FileKind) CacheKey {
	h := sha256.New()
	_, _ = h.Write(content)
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(fingerprint))
	_, _ = h.Write([]byte{0, byte(kind)})
	var out CacheKey
	copy(out[:], h.Sum(nil))
	return out
}

// ResultCache хранит результаты tidy на диске по CacheKey.
// Thread-safe for concurrent access.
type ResultCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedResult is the on-disk payload.
type CachedResult struct {
	Schema      uint16
	Formatted   []byte
	Changed     bool
	Diagnostics []CachedDiagnostic
}

// CachedDiagnostic stores a diagnostic without its file id; spans are
// re-attached to the file being processed on restore.
type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
	Notes    []CachedNote
}

// CachedNote is a diagnostic note.
type CachedNote struct {
	Start uint32
	End   uint32
	Msg   string
}

// OpenResultCache initializes the cache under $XDG_CACHE_HOME/<app>/results
// (~/.cache when unset).
func OpenResultCache(app string) (*ResultCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewResultCache(filepath.Join(base, app))
}

// NewResultCache opens a cache rooted at dir.
func NewResultCache(dir string) (*ResultCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &ResultCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *ResultCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *ResultCache) pathFor(key CacheKey) string {
	return filepath.Join(c.dir, "results", key.String()+".mp")
}

// Put serializes and writes a payload to the cache.
func (c *ResultCache) Put(key CacheKey, payload *CachedResult) (err error) {
	if c == nil || payload == nil {
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

	payload.Schema = resultCacheSchema
	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads a payload. A missing entry or one written by another schema
// version is a miss, not an error.
func (c *ResultCache) Get(key CacheKey, out *CachedResult) (bool, error) {
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
		return false, err
	}
	if out.Schema != resultCacheSchema {
		return false, nil
	}
	return true, nil
}

// DropAll removes every cached result.
func (c *ResultCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	results := filepath.Join(c.dir, "results")
	// сначала переименуем, чтобы параллельный процесс не увидел полупустой каталог
	old := results + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(results, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

func cacheDiagnostics(bag *diag.Bag) []CachedDiagnostic {
	if bag == nil {
		return nil
	}
	out := make([]CachedDiagnostic, 0, bag.Len())
	for _, d := range bag.Items() {
		cd := CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, CachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		out = append(out, cd)
	}
	return out
}

func restoreDiagnostics(bag *diag.Bag, file source.FileID, cached []CachedDiagnostic) {
	for _, cd := range cached {
		d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code),
			source.Span{File: file, Start: cd.Start, End: cd.End}, cd.Message)
		for _, n := range cd.Notes {
			d = d.WithNote(source.Span{File: file, Start: n.Start, End: n.End}, n.Msg)
		}
		bag.Add(d)
	}
}
