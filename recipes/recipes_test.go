package recipes

import (
	"slices"
	"testing"

	"github.com/goplus/recipe/mod/module"
	"github.com/goplus/recipe/recipe"
)

func TestSDL2TTF(t *testing.T) {
	r := SDL2TTF()
	if r.ID() != "libsdl-org/SDL_ttf" {
		t.Errorf("ID() = %q", r.ID())
	}
	want := []module.Version{
		{Path: "autoconf", Version: "2.71"},
		{Path: "libtool", Version: "2.4.6"},
	}
	for i := 0; i < 2; i++ {
		if got := r.BuildRequirements(); !slices.Equal(got, want) {
			t.Errorf("BuildRequirements() = %v, want %v", got, want)
		}
	}
	if got := r.Command(); got != "./autogen.sh" {
		t.Errorf("Command() = %q, want ./autogen.sh", got)
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		id, version string
		found       bool
	}{
		{"libsdl-org/SDL_ttf", "", true},
		{"libsdl-org/SDL_ttf", "release-2.20.2", true},
		{"libsdl-org/SDL_ttf", "v2.0.18", true},
		{"libsdl-org/SDL_ttf", "1.2.14", false},
		{"libsdl-org/SDL_image", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.id+"@"+tt.version, func(t *testing.T) {
			r, ok := Lookup(tt.id, tt.version)
			if ok != tt.found {
				t.Fatalf("Lookup(%q, %q) found = %v, want %v", tt.id, tt.version, ok, tt.found)
			}
			if ok && r.ID() != tt.id {
				t.Errorf("Lookup returned %q", r.ID())
			}
		})
	}
}

func TestLookupPrefixedFromVer(t *testing.T) {
	newRecipe := func(fromVer string) *recipe.Recipe {
		return recipe.MustNew("libsdl-org/SDL_ttf", fromVer, recipe.Run("./autogen.sh"))
	}
	all := []*recipe.Recipe{
		newRecipe("v1.2.0"),
		newRecipe("release-2.0.0"),
		newRecipe("1.10.0"),
	}
	tests := []struct {
		version string
		fromVer string
	}{
		{"", "release-2.0.0"},
		{"2.20.2", "release-2.0.0"},
		{"v1.12.0", "1.10.0"},
		{"1.9.0", "v1.2.0"},
	}
	for _, tt := range tests {
		r, ok := lookup(all, "libsdl-org/SDL_ttf", tt.version)
		if !ok {
			t.Fatalf("lookup(%q) found nothing", tt.version)
		}
		if r.FromVer() != tt.fromVer {
			t.Errorf("lookup(%q) fromVer = %q, want %q", tt.version, r.FromVer(), tt.fromVer)
		}
	}
}

func TestDefaultIDIsBuiltin(t *testing.T) {
	if _, ok := Lookup(DefaultID, ""); !ok {
		t.Errorf("DefaultID %q has no built-in recipe", DefaultID)
	}
}
