// Package toolchain makes a recipe's build-time tool requirements available:
// it finds every pinned tool, checks its version and exposes it on the
// search path of the build.
package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/goplus/recipe/mod/module"
	"github.com/goplus/recipe/x/gnu"
	"golang.org/x/sync/errgroup"
)

// ErrToolUnavailable is matched by every *ToolError.
var ErrToolUnavailable = errors.New("build tool unavailable")

// ToolError reports a build requirement that could not be satisfied.
type ToolError struct {
	Requirement module.Version
	Found       string // version found, if a mismatching tool was found
	Path        string // path of the mismatching tool
	Err         error  // last version query error, if any
}

func (e *ToolError) Error() string {
	switch {
	case e.Found != "":
		return fmt.Sprintf("%s: found version %s at %s", e.Requirement, e.Found, e.Path)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Requirement, e.Err)
	}
	return fmt.Sprintf("%s: %s not found", e.Requirement, binaryOf(e.Requirement.Path))
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrToolUnavailable) hold for any *ToolError.
func (e *ToolError) Is(target error) bool {
	return target == ErrToolUnavailable
}

// binaries maps requirement names to the executable whose --version is
// queried, when they differ.
var binaries = map[string]string{
	"libtool": "libtoolize",
}

func binaryOf(name string) string {
	if bin, ok := binaries[name]; ok {
		name = bin
	}
	if runtime.GOOS == "windows" && filepath.Ext(name) == "" {
		name += ".exe"
	}
	return name
}

// Options configures Resolve.
type Options struct {
	// StoreDir is the tool store, laid out as <StoreDir>/<name>/<version>/bin.
	// It is searched before Path.
	StoreDir string
	// Path is the search path, in the format of $PATH. Empty means $PATH.
	Path string
	// AllowMismatch accepts a tool whose version differs from the pinned one.
	AllowMismatch bool
}

// Tool is a resolved build tool.
type Tool struct {
	Requirement module.Version
	Bin         string // absolute path of the queried executable
	Version     string // version reported by the executable
}

// Dir returns the directory to expose on the search path.
func (t Tool) Dir() string {
	return filepath.Dir(t.Bin)
}

// Toolchain is the set of tools resolved for one build.
type Toolchain struct {
	Tools []Tool
}

// Resolve finds every requirement in reqs. Tools are queried concurrently;
// the first unsatisfied requirement fails the resolution.
func Resolve(ctx context.Context, reqs []module.Version, opts Options) (*Toolchain, error) {
	if opts.Path == "" {
		opts.Path = os.Getenv("PATH")
	}
	tools := make([]Tool, len(reqs))

	g, ctx := errgroup.WithContext(ctx)
	for i, req := range reqs {
		g.Go(func() error {
			tool, err := resolve(ctx, req, opts)
			if err != nil {
				return err
			}
			tools[i] = tool
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Toolchain{Tools: tools}, nil
}

func resolve(ctx context.Context, req module.Version, opts Options) (Tool, error) {
	tErr := &ToolError{Requirement: req}
	for _, bin := range candidates(req, opts) {
		ver, err := queryVersion(ctx, bin)
		if err != nil {
			slog.Debug("query tool version", "tool", req.Path, "bin", bin, "error", err)
			tErr.Err = err
			continue
		}
		if gnu.Equal(ver, req.Version) {
			slog.Debug("resolved tool", "tool", req.Path, "version", ver, "bin", bin)
			return Tool{Requirement: req, Bin: bin, Version: ver}, nil
		}
		if tErr.Found == "" {
			tErr.Found, tErr.Path = ver, bin
		}
	}
	if tErr.Found != "" && opts.AllowMismatch {
		slog.Warn("tool version mismatch", "tool", req.Path, "want", req.Version, "found", tErr.Found, "bin", tErr.Path)
		return Tool{Requirement: req, Bin: tErr.Path, Version: tErr.Found}, nil
	}
	if ctx.Err() != nil {
		return Tool{}, ctx.Err()
	}
	return Tool{}, tErr
}

// candidates lists the executables that may satisfy req, store first.
func candidates(req module.Version, opts Options) []string {
	bin := binaryOf(req.Path)
	var dirs []string
	if opts.StoreDir != "" {
		dirs = append(dirs, filepath.Join(opts.StoreDir, req.Path, req.Version, "bin"))
	}
	dirs = append(dirs, filepath.SplitList(opts.Path)...)

	var found []string
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		path := filepath.Join(dir, bin)
		if !isExecutable(path) {
			continue
		}
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		if !slices.Contains(found, path) {
			found = append(found, path)
		}
	}
	return found
}

func isExecutable(path string) bool {
	fi, err := os.Stat(path)
	if err != nil || !fi.Mode().IsRegular() {
		return false
	}
	return runtime.GOOS == "windows" || fi.Mode().Perm()&0o111 != 0
}

// queryVersion runs "bin --version" and returns the version it reports: the last
// field of the first line, e.g. "2.71" for "autoconf (GNU Autoconf) 2.71".
func queryVersion(ctx context.Context, bin string) (string, error) {
	out, err := exec.CommandContext(ctx, bin, "--version").Output()
	if err != nil {
		return "", err
	}
	return parseVersion(out)
}

func parseVersion(out []byte) (string, error) {
	line, _, _ := bytes.Cut(out, []byte("\n"))
	fields := strings.Fields(string(line))
	if len(fields) == 0 {
		return "", errors.New("empty --version output")
	}
	return strings.TrimRight(fields[len(fields)-1], ")"), nil
}

// Requirements returns the requirements the toolchain satisfies.
func (tc *Toolchain) Requirements() []module.Version {
	reqs := make([]module.Version, len(tc.Tools))
	for i, t := range tc.Tools {
		reqs[i] = t.Requirement
	}
	return reqs
}

// Environ returns a copy of base with the directories of all tools
// prepended to PATH, in requirement order.
func (tc *Toolchain) Environ(base []string) []string {
	var dirs []string
	for _, t := range tc.Tools {
		if d := t.Dir(); !slices.Contains(dirs, d) {
			dirs = append(dirs, d)
		}
	}
	env := slices.Clone(base)
	prefix := strings.Join(dirs, string(os.PathListSeparator))
	for i, kv := range env {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || !isPathKey(k) {
			continue
		}
		if prefix != "" {
			if v != "" {
				v = prefix + string(os.PathListSeparator) + v
			} else {
				v = prefix
			}
		}
		env[i] = k + "=" + v
		return env
	}
	if prefix != "" {
		env = append(env, "PATH="+prefix)
	}
	return env
}

func isPathKey(k string) bool {
	if runtime.GOOS == "windows" {
		return strings.EqualFold(k, "PATH")
	}
	return k == "PATH"
}

// Describe renders the toolchain for logs, e.g. "autoconf/2.71 libtool/2.4.6".
func (tc *Toolchain) Describe() string {
	parts := make([]string, len(tc.Tools))
	for i, t := range tc.Tools {
		parts[i] = t.Requirement.Path + "/" + t.Version
	}
	return strings.Join(parts, " ")
}
