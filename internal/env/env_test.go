package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/goplus/recipe/mod/module"
)

func TestDefault(t *testing.T) {
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	l := Default()
	// On macOS/Windows xdg may not honor XDG_CACHE_HOME, so compare
	// against what xdg resolved.
	if want := filepath.Join(xdg.CacheHome, "recipe"); l.Root != want {
		t.Errorf("Root = %q, want %q", l.Root, want)
	}
	if want := filepath.Join(l.Root, "tools"); l.Tools != want {
		t.Errorf("Tools = %q, want %q", l.Tools, want)
	}
}

func TestNew(t *testing.T) {
	root := t.TempDir()
	l := New(root, "/opt/tools")
	if l.Root != root || l.Tools != "/opt/tools" {
		t.Errorf("New() = %+v", l)
	}
	for name, got := range map[string]string{
		"cache":   l.CacheDir(),
		"locks":   l.LockDir(),
		"recipes": l.RecipeDir(),
	} {
		if want := filepath.Join(root, name); got != want {
			t.Errorf("%s dir = %q, want %q", name, got, want)
		}
	}
}

func TestSourceDir(t *testing.T) {
	root := t.TempDir()
	l := New(root, "")

	dir, err := l.SourceDir(module.Version{Path: "libsdl-org/SDL_ttf", Version: "release-2.20.2"})
	if err != nil {
		t.Fatalf("SourceDir: %v", err)
	}
	if want := filepath.Join(root, "src", "libsdl-org", "SDL_ttf@release-2.20.2"); dir != want {
		t.Errorf("SourceDir = %q, want %q", dir, want)
	}

	if _, err := l.SourceDir(module.Version{Path: "../escape", Version: "1"}); err == nil {
		t.Error("SourceDir accepted a path escaping the work dir")
	}
}

func TestMkdirAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	if err := MkdirAll(dir); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !info.IsDir() {
		t.Error("MkdirAll created a file")
	}
}

func TestConfigFile(t *testing.T) {
	if want := filepath.Join(xdg.ConfigHome, "recipe", "config.yaml"); ConfigFile() != want {
		t.Errorf("ConfigFile() = %q, want %q", ConfigFile(), want)
	}
}
