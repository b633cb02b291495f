package autotools

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/goplus/recipe/recipe"
)

func writeAutogen(t *testing.T, dir, body string) {
	t.Helper()
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(filepath.Join(dir, Script), []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
}

func TestBootstrapOption(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not supported on windows")
	}
	dir := t.TempDir()
	writeAutogen(t, dir, `echo "$@" > args.out; touch configure`)

	r := recipe.MustNew("a/b", "1.0", Bootstrap("--no-configure"))
	if got := r.Command(); got != "./autogen.sh --no-configure" {
		t.Errorf("Command() = %q", got)
	}
	if err := r.Build(context.Background(), dir, recipe.WithOutput(io.Discard, io.Discard)); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !Generated(dir) {
		t.Error("Generated() = false after bootstrap")
	}
	data, err := os.ReadFile(filepath.Join(dir, "args.out"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "--no-configure\n" {
		t.Errorf("autogen.sh args = %q", data)
	}
}

func TestAutoToolsBootstrap(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not supported on windows")
	}
	dir := t.TempDir()
	writeAutogen(t, dir, `echo "$NOCONFIGURE" > env.out`)

	r := recipe.MustNew("a/b", "1.0", recipe.OnBuild(func(ctx *recipe.Context) {
		a := New(ctx)
		a.Env("NOCONFIGURE", "1")
		a.Bootstrap()
	}))
	if err := r.Build(context.Background(), dir, recipe.WithOutput(io.Discard, io.Discard)); err != nil {
		t.Fatalf("Build: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "env.out"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "1\n" {
		t.Errorf("NOCONFIGURE = %q, want 1", data)
	}
}

func TestHasScript(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("windows has no executable bit")
	}
	dir := t.TempDir()
	if HasScript(dir) {
		t.Error("HasScript() = true for empty dir")
	}
	if err := os.WriteFile(filepath.Join(dir, Script), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if HasScript(dir) {
		t.Error("HasScript() = true for non-executable script")
	}
	if err := os.Chmod(filepath.Join(dir, Script), 0o755); err != nil {
		t.Fatal(err)
	}
	if !HasScript(dir) {
		t.Error("HasScript() = false for executable script")
	}
}

func TestGenerated(t *testing.T) {
	dir := t.TempDir()
	if Generated(dir) {
		t.Error("Generated() = true for empty dir")
	}
	if err := os.Mkdir(filepath.Join(dir, Configure), 0o755); err != nil {
		t.Fatal(err)
	}
	if Generated(dir) {
		t.Error("Generated() = true when configure is a directory")
	}
}

func TestAutoToolsConfigure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not supported on windows")
	}
	dir := t.TempDir()
	writeAutogen(t, dir, `printf '#!/bin/sh\necho "$@" > configure.out\n' > configure; chmod +x configure`)

	r := recipe.MustNew("a/b", "1.0", recipe.OnBuild(func(ctx *recipe.Context) {
		a := New(ctx)
		if a.Bootstrap() == nil {
			a.Configure("/opt/sdl", "--disable-static")
		}
	}))
	if err := r.Build(context.Background(), dir, recipe.WithOutput(io.Discard, io.Discard)); err != nil {
		t.Fatalf("Build: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "configure.out"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "--prefix=/opt/sdl --disable-static\n" {
		t.Errorf("configure args = %q", data)
	}
}
