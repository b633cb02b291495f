package build

import (
	_ "crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goplus/recipe/recipe"
	"github.com/opencontainers/go-digest"
)

// Cache directory layout:
//
//	<Layout.CacheDir>/
//	  .cache.json   # maps cache key digest -> buildEntry
//	  .lock         # guards read-modify-write of .cache.json
const cacheFile = ".cache.json"

// buildEntry contains metadata about a single successful build.
type buildEntry struct {
	Recipe    string    `json:"recipe"`
	Dir       string    `json:"dir"`
	Toolchain string    `json:"toolchain"`
	Configure bool      `json:"configure"`
	BuildTime time.Time `json:"build_time"`
}

// buildCache maps cache keys to their build entries.
type buildCache struct {
	Cache map[string]*buildEntry `json:"cache"`
}

func (c *buildCache) get(key digest.Digest) (*buildEntry, bool) {
	entry, ok := c.Cache[key.String()]
	return entry, ok
}

func (c *buildCache) set(key digest.Digest, entry *buildEntry) {
	if c.Cache == nil {
		c.Cache = make(map[string]*buildEntry)
	}
	c.Cache[key.String()] = entry
}

// delete removes key and reports whether it was present.
func (c *buildCache) delete(key digest.Digest) bool {
	if _, ok := c.Cache[key.String()]; !ok {
		return false
	}
	delete(c.Cache, key.String())
	return true
}

// cacheKey identifies a build: the recipe's identity, requirements and
// action together with the absolute source directory.
func cacheKey(r *recipe.Recipe, dir string) digest.Digest {
	d := digest.Canonical.Digester()
	h := d.Hash()
	fmt.Fprintf(h, "%s\x00%s\x00%s\x00", r.ID(), r.FromVer(), r.Command())
	for _, req := range r.BuildRequirements() {
		fmt.Fprintf(h, "%s\x00", req)
	}
	fmt.Fprintf(h, "%s\x00", dir)
	return d.Digest()
}

// loadBuildCache reads a cache file.
func loadBuildCache(path string) (*buildCache, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cache buildCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cache, nil
}

// saveBuildCache writes a cache file, replacing it atomically.
func saveBuildCache(path string, cache *buildCache) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
