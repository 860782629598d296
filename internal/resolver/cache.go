package resolver

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-yaml"
)

// CacheEntry records one previously compiled module, keyed by its
// resolved path, so a rebuild with an unchanged source hash can reuse
// the prior artifact rather than recompiling (spec.md §3 "Module Graph"
// — "the cache persists across session invocations via a
// content-addressed on-disk store").
type CacheEntry struct {
	Path            string `yaml:"path"`
	SourceHash      string `yaml:"source_hash"`
	CompilerVersion string `yaml:"compiler_version"`
	ArtifactPath    string `yaml:"artifact_path"`
}

// manifest is the on-disk shape, one YAML document per build directory.
type manifest struct {
	Entries map[string]CacheEntry `yaml:"entries"`
}

// Cache is the on-disk, content-addressed module cache. It is safe for
// concurrent use from the resolver's parallel remote-fetch fan-out.
type Cache struct {
	mu       sync.Mutex
	dir      string
	manifest manifest
}

const manifestFileName = "lisc-cache.yaml"

// OpenCache loads (or initializes) the manifest stored in dir.
func OpenCache(dir string) (*Cache, error) {
	c := &Cache{dir: dir, manifest: manifest{Entries: make(map[string]CacheEntry)}}
	data, err := os.ReadFile(filepath.Join(dir, manifestFileName))
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, &c.manifest); err != nil {
		return nil, err
	}
	if c.manifest.Entries == nil {
		c.manifest.Entries = make(map[string]CacheEntry)
	}
	return c, nil
}

// HashSource returns the content hash used as the cache key alongside
// the compiler version: `(source_hash, compiler_version)` per spec.md
// §4.9.
func HashSource(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

// Lookup returns the cached entry for path if its source hash and
// compiler version both match, meaning the previous artifact is still
// valid and can be reused without recompiling.
func (c *Cache) Lookup(path, sourceHash, compilerVersion string) (CacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.manifest.Entries[path]
	if !ok || e.SourceHash != sourceHash || e.CompilerVersion != compilerVersion {
		return CacheEntry{}, false
	}
	return e, true
}

// Store records a freshly compiled artifact and persists the manifest.
func (c *Cache) Store(entry CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.manifest.Entries[entry.Path] = entry
	return c.flushLocked()
}

func (c *Cache) flushLocked() error {
	data, err := yaml.Marshal(c.manifest)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, manifestFileName), data, 0o644)
}
