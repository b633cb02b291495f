// Package loader finds and loads recipes stored on disk, either as
// recipe.yaml manifests or as *_recipe.gox classfiles.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/goplus/recipe/internal/ixgo"
	"github.com/goplus/recipe/mod/manifest"
	"github.com/goplus/recipe/mod/module"
	"github.com/goplus/recipe/recipe"
	"github.com/goplus/recipe/x/gnu"
)

// ErrNoRecipe is returned when a directory holds no recipe.
var ErrNoRecipe = errors.New("no recipe found")

// Recipe is a recipe loaded from a file.
type Recipe struct {
	*recipe.Recipe

	File string // file the recipe was loaded from

	class reflect.Value // classfile instance, invalid for manifests
}

// IsClassfile reports whether name is a recipe classfile.
func IsClassfile(name string) bool {
	return strings.HasSuffix(name, ixgo.Ext) && len(name) > len(ixgo.Ext)
}

// Load loads the recipe in the file path, a manifest or a classfile.
func Load(path string) (*Recipe, error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	return loadFS(os.DirFS(dir).(fs.ReadFileFS), name, path)
}

// LoadFS loads the recipe at path in fsys.
func LoadFS(fsys fs.ReadFileFS, path string) (*Recipe, error) {
	return loadFS(fsys, path, path)
}

func loadFS(fsys fs.ReadFileFS, name, display string) (*Recipe, error) {
	switch {
	case IsClassfile(name):
		r, err := loadClassFS(fsys, name)
		if err != nil {
			return nil, err
		}
		r.File = display
		return r, nil
	case filepath.Ext(name) == ".yaml" || filepath.Ext(name) == ".yml":
		data, err := fsys.ReadFile(name)
		if err != nil {
			return nil, err
		}
		m, err := manifest.Parse(display, data)
		if err != nil {
			return nil, err
		}
		r, err := m.Recipe()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", display, err)
		}
		return &Recipe{Recipe: r, File: display}, nil
	}
	return nil, fmt.Errorf("%s: not a recipe file", display)
}

// LoadDir loads the recipe of dir: its recipe.yaml, or else its only
// *_recipe.gox classfile.
func LoadDir(dir string) (*Recipe, error) {
	if _, err := os.Stat(filepath.Join(dir, manifest.FileName)); err == nil {
		return Load(filepath.Join(dir, manifest.FileName))
	}
	classes, err := filepath.Glob(filepath.Join(dir, "*"+ixgo.Ext))
	if err != nil {
		return nil, err
	}
	switch len(classes) {
	case 0:
		return nil, fmt.Errorf("%s: %w", dir, ErrNoRecipe)
	case 1:
		return Load(classes[0])
	}
	return nil, fmt.Errorf("%s: %d recipe classfiles, expected one", dir, len(classes))
}

// candidate is a recipe file of a recipe repository with its fromVer.
type candidate struct {
	path    string
	fromVer string
}

// Find loads the recipe of id from the recipe repository root, laid out as
// <root>/<owner>/<repo>/{recipe.yaml,*_recipe.gox,<sub>/...}. The recipe
// chosen is the one with the greatest fromVer not above version. An empty
// version selects the greatest fromVer.
func Find(root, id, version string) (*Recipe, error) {
	escaped, err := module.EscapePath(id)
	if err != nil {
		return nil, fmt.Errorf("invalid recipe id %q: %w", id, err)
	}
	dir := filepath.Join(root, escaped)
	cands, err := candidates(dir)
	if err != nil {
		return nil, err
	}

	var best *candidate
	for i := range cands {
		c := &cands[i]
		if version != "" && gnu.Compare(gnu.StripPrefix(c.fromVer), gnu.StripPrefix(version)) > 0 {
			continue
		}
		if best == nil || gnu.Compare(gnu.StripPrefix(c.fromVer), gnu.StripPrefix(best.fromVer)) > 0 {
			best = c
		}
	}
	if best == nil {
		return nil, fmt.Errorf("%s@%s: %w", id, version, ErrNoRecipe)
	}
	slog.Debug("found recipe", "recipe", id, "version", version, "file", best.path, "fromVer", best.fromVer)

	r, err := Load(best.path)
	if err != nil {
		return nil, err
	}
	if r.ID() != id {
		return nil, fmt.Errorf("%s: recipe id %q does not match %q", best.path, r.ID(), id)
	}
	return r, nil
}

// candidates lists the recipe files under dir with their fromVer. Files
// whose fromVer cannot be read are skipped with a warning.
func candidates(dir string) ([]candidate, error) {
	var cands []candidate
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir && errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		var fromVer string
		switch name := d.Name(); {
		case IsClassfile(name):
			fromVer, err = FromVerOf(path, nil)
		case name == manifest.FileName:
			fromVer, err = manifestFromVer(path)
		default:
			return nil
		}
		if err != nil {
			slog.Warn("skipping recipe", "file", path, "error", err)
			return nil
		}
		cands = append(cands, candidate{path: path, fromVer: fromVer})
		return nil
	})
	return cands, err
}

func manifestFromVer(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	m, err := manifest.Parse(path, data)
	if err != nil {
		return "", err
	}
	return m.FromVer, nil
}
