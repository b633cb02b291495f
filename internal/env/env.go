// Package env locates the directories the recipe host works in.
//
// Layout of the work directory:
//
//	<root>/
//	  cache/.cache.json           # build cache
//	  locks/<digest>.lock         # per source tree build locks
//	  recipes/<owner>/<repo>/     # recipe repository (*_recipe.gox, recipe.yaml)
//	  src/<owner>/<repo>@<ref>/   # fetched library sources
//	  tools/<name>/<version>/bin  # tool store for pinned build tools
package env

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/goplus/recipe/mod/module"
)

const appName = "recipe"

// Layout is the directory layout of the host.
type Layout struct {
	Root  string // work directory
	Tools string // tool store, defaults to <Root>/tools
}

// Default returns the layout rooted at $XDG_CACHE_HOME/recipe.
func Default() Layout {
	return New("", "")
}

// New returns a layout rooted at root, or at the default work directory
// when root is empty. An empty tools selects <root>/tools.
func New(root, tools string) Layout {
	if root == "" {
		root = filepath.Join(xdg.CacheHome, appName)
	}
	if tools == "" {
		tools = filepath.Join(root, "tools")
	}
	return Layout{Root: root, Tools: tools}
}

// ConfigFile returns the default path of the config file.
func ConfigFile() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.yaml")
}

// CacheDir returns the directory holding the build cache.
func (l Layout) CacheDir() string {
	return filepath.Join(l.Root, "cache")
}

// LockDir returns the directory holding build lock files.
func (l Layout) LockDir() string {
	return filepath.Join(l.Root, "locks")
}

// RecipeDir returns the root of the local recipe repository.
func (l Layout) RecipeDir() string {
	return filepath.Join(l.Root, "recipes")
}

// SourceDir returns the directory a library's source at mod.Version is
// fetched into.
func (l Layout) SourceDir(mod module.Version) (string, error) {
	escaped, err := module.EscapePath(mod.Path)
	if err != nil {
		return "", fmt.Errorf("invalid module path %q: %w", mod.Path, err)
	}
	return filepath.Join(l.Root, "src", escaped+"@"+mod.Version), nil
}

// MkdirAll creates dir with the host's permissions.
func MkdirAll(dir string) error {
	return os.MkdirAll(dir, 0o700)
}
