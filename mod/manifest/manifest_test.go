package manifest

import (
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"testing"

	"github.com/goplus/recipe/mod/module"
	"github.com/goplus/recipe/recipe"
)

const sdlManifest = `id: libsdl-org/SDL_ttf
fromVer: 2.0.0
buildRequires:
  - autoconf/2.71
  - libtool/2.4.6
build: ./autogen.sh
`

func TestParse_WithData(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    *Manifest
		wantErr bool
	}{
		{
			name: "sdl recipe",
			data: sdlManifest,
			want: &Manifest{
				ID:            "libsdl-org/SDL_ttf",
				FromVer:       "2.0.0",
				BuildRequires: []string{"autoconf/2.71", "libtool/2.4.6"},
				Build:         "./autogen.sh",
			},
		},
		{
			name: "no requirements",
			data: "id: a/b\nbuild: ./bootstrap --force\n",
			want: &Manifest{ID: "a/b", Build: "./bootstrap --force"},
		},
		{
			name:    "unknown field",
			data:    "id: a/b\nbuild: ./autogen.sh\nrequires: [x]\n",
			wantErr: true,
		},
		{
			name:    "invalid yaml",
			data:    "id: [",
			wantErr: true,
		},
		{
			name:    "empty",
			data:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse("recipe.yaml", []byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParse_WithFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(file, []byte(sdlManifest), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := Parse(file, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if m.ID != "libsdl-org/SDL_ttf" {
		t.Errorf("ID = %q", m.ID)
	}

	if _, err := Parse(filepath.Join(t.TempDir(), "missing.yaml"), nil); !os.IsNotExist(err) {
		t.Errorf("Parse(missing) error = %v, want not exist", err)
	}
}

func TestManifestRecipe(t *testing.T) {
	m, err := Parse("", []byte(sdlManifest))
	if err != nil {
		t.Fatal(err)
	}
	r, err := m.Recipe()
	if err != nil {
		t.Fatalf("Recipe: %v", err)
	}
	want := []module.Version{{Path: "autoconf", Version: "2.71"}, {Path: "libtool", Version: "2.4.6"}}
	if got := r.BuildRequirements(); !slices.Equal(got, want) {
		t.Errorf("BuildRequirements() = %v, want %v", got, want)
	}
	if r.Command() != "./autogen.sh" {
		t.Errorf("Command() = %q", r.Command())
	}

	bad := &Manifest{ID: "a/b", BuildRequires: []string{"autoconf/>=2.69"}, Build: "./autogen.sh"}
	if _, err := bad.Recipe(); err == nil {
		t.Error("Recipe() accepted a version range")
	}
	noBuild := &Manifest{ID: "a/b"}
	if _, err := noBuild.Recipe(); err == nil {
		t.Error("Recipe() accepted a manifest without build")
	}
}

func TestFromRecipeAndWrite(t *testing.T) {
	r := recipe.MustNew("libsdl-org/SDL_ttf", "2.0.0",
		recipe.Require("autoconf", "2.71"),
		recipe.Require("libtool", "2.4.6"),
		recipe.Run("./autogen.sh"),
	)
	m, err := FromRecipe(r)
	if err != nil {
		t.Fatalf("FromRecipe: %v", err)
	}
	file := filepath.Join(t.TempDir(), FileName)
	if err := Write(file, m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Parse(file, nil)
	if err != nil {
		t.Fatalf("Parse written manifest: %v", err)
	}
	want, _ := Parse("", []byte(sdlManifest))
	if !reflect.DeepEqual(got, want) {
		t.Errorf("written manifest = %+v, want %+v", got, want)
	}
	if err := Write(file, m); err == nil {
		t.Error("Write overwrote an existing manifest")
	}

	custom := recipe.MustNew("a/b", "1.0", recipe.OnBuild(func(*recipe.Context) {}))
	if _, err := FromRecipe(custom); err == nil {
		t.Error("FromRecipe accepted a custom build action")
	}
}
