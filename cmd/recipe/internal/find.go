package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/goplus/recipe/internal/loader"
	"github.com/goplus/recipe/internal/loader/repo"
	"github.com/goplus/recipe/internal/vcs"
	"github.com/goplus/recipe/recipe"
	"github.com/goplus/recipe/recipes"
)

// lookupRecipe returns the recipe of id serving version, from the recipe
// repository or else the built-in recipes.
func lookupRecipe(ctx context.Context, cfg config, id, version string, stdout, stderr io.Writer) (*recipe.Recipe, error) {
	store := repo.New(cfg.layout.RecipeDir(), vcs.NewGitVCS(), cfg.recipes)
	r, err := store.Find(ctx, id, version)
	if err == nil {
		r.SetStdout(stdout)
		r.SetStderr(stderr)
		return r.Recipe, nil
	}
	if !errors.Is(err, loader.ErrNoRecipe) {
		return nil, err
	}
	if r, ok := recipes.Lookup(id, version); ok {
		slog.Debug("using built-in recipe", "recipe", id, "fromVer", r.FromVer())
		return r, nil
	}
	if version != "" {
		return nil, fmt.Errorf("%s@%s: %w", id, version, loader.ErrNoRecipe)
	}
	return nil, fmt.Errorf("%s: %w", id, loader.ErrNoRecipe)
}

// dirRecipe returns the recipe stored in dir, or the recipe of id when id
// is set or dir holds none.
func dirRecipe(ctx context.Context, cfg config, dir, id string, stdout, stderr io.Writer) (*recipe.Recipe, error) {
	if id == "" {
		r, err := loader.LoadDir(dir)
		if err == nil {
			slog.Debug("using recipe", "file", r.File)
			r.SetStdout(stdout)
			r.SetStderr(stderr)
			return r.Recipe, nil
		}
		if !errors.Is(err, loader.ErrNoRecipe) {
			return nil, err
		}
		id = recipes.DefaultID
	}
	return lookupRecipe(ctx, cfg, id, "", stdout, stderr)
}

func dirArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
