// Package recipes holds the recipes compiled into the recipe binary.
package recipes

import (
	"github.com/goplus/recipe/recipe"
	"github.com/goplus/recipe/x/autotools"
	"github.com/goplus/recipe/x/gnu"
)

// SDL2TTF returns the recipe of SDL_ttf. Its release tarballs ship no
// configure script, so the build bootstraps one with autogen.sh, which
// needs autoconf and libtool.
func SDL2TTF() *recipe.Recipe {
	return recipe.MustNew("libsdl-org/SDL_ttf", "2.0.0",
		recipe.Require("autoconf", "2.71"),
		recipe.Require("libtool", "2.4.6"),
		autotools.Bootstrap(),
	)
}

// DefaultID is the id of the recipe used when none is given.
const DefaultID = "libsdl-org/SDL_ttf"

var builtin = []func() *recipe.Recipe{
	SDL2TTF,
}

// All returns every built-in recipe.
func All() []*recipe.Recipe {
	all := make([]*recipe.Recipe, 0, len(builtin))
	for _, f := range builtin {
		all = append(all, f())
	}
	return all
}

// Lookup returns the built-in recipe for id that serves version: the one
// with the greatest fromVer not above version. An empty version matches the
// newest recipe of id.
func Lookup(id, version string) (*recipe.Recipe, bool) {
	return lookup(All(), id, version)
}

func lookup(all []*recipe.Recipe, id, version string) (*recipe.Recipe, bool) {
	var found *recipe.Recipe
	for _, r := range all {
		if r.ID() != id {
			continue
		}
		if version != "" && gnu.Compare(gnu.StripPrefix(r.FromVer()), gnu.StripPrefix(version)) > 0 {
			continue
		}
		if found == nil || gnu.Compare(gnu.StripPrefix(r.FromVer()), gnu.StripPrefix(found.FromVer())) > 0 {
			found = r
		}
	}
	return found, found != nil
}
