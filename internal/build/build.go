// Package build is the host side of a recipe build: it serializes builds
// of the same source tree, resolves the recipe's build-time tools, runs the
// recipe once and records successful builds.
package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/goplus/recipe/internal/env"
	"github.com/goplus/recipe/internal/toolchain"
	"github.com/goplus/recipe/recipe"
	"github.com/goplus/recipe/x/autotools"
	"github.com/opencontainers/go-digest"
)

// Options configures a Builder.
type Options struct {
	Layout env.Layout

	// Path is the search path used to find tools and given to the build.
	// Empty means $PATH.
	Path string

	// AllowMismatch accepts tools whose version differs from the pinned one.
	AllowMismatch bool

	// Force rebuilds even if the cache holds a successful build.
	Force bool

	// Stdout and Stderr receive the build's output; nil means os.Stdout
	// and os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// Builder runs recipe builds.
type Builder struct {
	opts Options
}

// Result describes a finished build.
type Result struct {
	ID        string        // build id
	Recipe    string        // recipe id
	Dir       string        // absolute source directory
	Toolchain string        // resolved tools, e.g. "autoconf/2.71 libtool/2.4.6"
	Cached    bool          // true if the build was skipped as up to date
	Configure bool          // true if the source tree has a configure script
	Duration  time.Duration // time spent running the recipe
}

// NewBuilder creates a Builder and its work directories.
func NewBuilder(opts Options) (*Builder, error) {
	if opts.Layout.Root == "" {
		opts.Layout = env.Default()
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	for _, dir := range []string{opts.Layout.CacheDir(), opts.Layout.LockDir()} {
		if err := env.MkdirAll(dir); err != nil {
			return nil, err
		}
	}
	return &Builder{opts: opts}, nil
}

// Build builds r in dir, which must hold the library's source tree.
//
// Builds of the same directory are serialized across processes. A build
// recorded in the cache whose output is still present is skipped unless
// Options.Force is set. Build requirements are resolved before the recipe
// runs; a failing recipe's error is returned unchanged and the record of
// any earlier success in dir is dropped.
func (b *Builder) Build(ctx context.Context, r *recipe.Recipe, dir string) (*Result, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	res := &Result{ID: uuid.NewString(), Recipe: r.ID(), Dir: abs}
	log := slog.With("build", res.ID, "recipe", r.ID(), "dir", abs)

	lockPath := filepath.Join(b.opts.Layout.LockDir(), digest.FromString(abs).Encoded()+".lock")
	unlock, err := lockFile(lockPath)
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", abs, err)
	}
	defer unlock()

	key := cacheKey(r, abs)
	if !b.opts.Force {
		if entry, ok := b.cached(key); ok && (!entry.Configure || autotools.Generated(abs)) {
			log.Info("up to date", "built", entry.BuildTime.Format(time.RFC3339))
			res.Cached = true
			res.Toolchain = entry.Toolchain
			res.Configure = entry.Configure
			return res, nil
		}
	}

	tc, err := toolchain.Resolve(ctx, r.BuildRequirements(), toolchain.Options{
		StoreDir:      b.opts.Layout.Tools,
		Path:          b.opts.Path,
		AllowMismatch: b.opts.AllowMismatch,
	})
	if err != nil {
		return nil, fmt.Errorf("resolve build requirements of %s: %w", r.ID(), err)
	}
	res.Toolchain = tc.Describe()

	log.Info("building", "toolchain", res.Toolchain, "command", r.Command())
	environ := tc.Environ(withPath(os.Environ(), b.opts.Path))
	start := time.Now()
	err = r.NewSession().Build(ctx, abs,
		recipe.WithEnviron(environ),
		recipe.WithOutput(b.opts.Stdout, b.opts.Stderr),
	)
	res.Duration = time.Since(start)
	if err != nil {
		log.Error("build failed", "error", err, "duration", res.Duration)
		if ferr := b.forget(key); ferr != nil {
			log.Warn("failed to clear build record", "error", ferr)
		}
		return nil, err
	}

	res.Configure = autotools.Generated(abs)
	if !res.Configure {
		log.Warn("bootstrap did not generate " + autotools.Configure)
	}
	log.Info("built", "duration", res.Duration)

	if err := b.record(key, &buildEntry{
		Recipe:    r.ID(),
		Dir:       abs,
		Toolchain: res.Toolchain,
		Configure: res.Configure,
		BuildTime: time.Now(),
	}); err != nil {
		log.Warn("failed to record build", "error", err)
	}
	return res, nil
}

func (b *Builder) cacheFile() string {
	return filepath.Join(b.opts.Layout.CacheDir(), cacheFile)
}

func (b *Builder) cached(key digest.Digest) (*buildEntry, bool) {
	cache, err := loadBuildCache(b.cacheFile())
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("ignoring build cache", "error", err)
		}
		return nil, false
	}
	return cache.get(key)
}

func (b *Builder) record(key digest.Digest, entry *buildEntry) error {
	unlock, err := lockFile(filepath.Join(b.opts.Layout.CacheDir(), ".lock"))
	if err != nil {
		return err
	}
	defer unlock()

	cache, err := loadBuildCache(b.cacheFile())
	if err != nil {
		cache = &buildCache{}
	}
	cache.set(key, entry)
	return saveBuildCache(b.cacheFile(), cache)
}

// forget drops the record of key, so that a failed build is never reported
// as up to date by an earlier success.
func (b *Builder) forget(key digest.Digest) error {
	unlock, err := lockFile(filepath.Join(b.opts.Layout.CacheDir(), ".lock"))
	if err != nil {
		return err
	}
	defer unlock()

	cache, err := loadBuildCache(b.cacheFile())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if !cache.delete(key) {
		return nil
	}
	return saveBuildCache(b.cacheFile(), cache)
}

// withPath returns environ with PATH replaced by path, or environ itself
// if path is empty.
func withPath(environ []string, path string) []string {
	if path == "" {
		return environ
	}
	out := make([]string, 0, len(environ)+1)
	for _, kv := range environ {
		if k, _, ok := strings.Cut(kv, "="); ok && strings.EqualFold(k, "PATH") {
			continue
		}
		out = append(out, kv)
	}
	return append(out, "PATH="+path)
}
