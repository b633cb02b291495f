// Package recipe describes how to prepare a wrapped library's build: the
// build-time tools it needs and the single bootstrap action that turns its
// source tree into something the library's own build system can run.
package recipe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/goplus/recipe/mod/module"
)

// Recipe is the build description of one wrapped library. It is immutable
// once created and holds no state between builds, so the same Recipe may be
// built any number of times on independent directories.
type Recipe struct {
	id       string
	fromVer  string
	requires []module.Version
	command  []string
	onBuild  func(ctx *Context)
}

// An Option configures a Recipe under construction.
type Option func(r *Recipe)

// Require declares a build-time tool requirement pinned to exactly ver.
func Require(name, ver string) Option {
	return func(r *Recipe) {
		r.requires = append(r.requires, module.Version{Path: name, Version: ver})
	}
}

// Run sets the build action to running name with args in the source root.
func Run(name string, args ...string) Option {
	return func(r *Recipe) {
		r.command = append([]string{name}, args...)
		r.onBuild = func(ctx *Context) {
			ctx.Run(name, args...)
		}
	}
}

// OnBuild sets a custom build action. Failures are reported through
// ctx.Run; the first one fails the build.
func OnBuild(f func(ctx *Context)) Option {
	return func(r *Recipe) {
		r.command = nil
		r.onBuild = f
	}
}

// New creates a recipe for the library id (in the form "owner/repo"),
// serving versions from fromVer on.
func New(id, fromVer string, opts ...Option) (*Recipe, error) {
	if id == "" {
		return nil, errors.New("recipe: empty id")
	}
	r := &Recipe{id: id, fromVer: fromVer}
	for _, opt := range opts {
		opt(r)
	}
	seen := make(map[string]bool, len(r.requires))
	for _, req := range r.requires {
		if err := module.CheckPinned(req); err != nil {
			return nil, fmt.Errorf("recipe %s: %w", id, err)
		}
		if seen[req.Path] {
			return nil, fmt.Errorf("recipe %s: duplicate build requirement %s", id, req.Path)
		}
		seen[req.Path] = true
	}
	if r.onBuild == nil {
		return nil, fmt.Errorf("recipe %s: no build action", id)
	}
	return r, nil
}

// MustNew is like New but panics on error. It is meant for recipes
// declared in Go source.
func MustNew(id, fromVer string, opts ...Option) *Recipe {
	r, err := New(id, fromVer, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// ID returns the id of the wrapped library.
func (r *Recipe) ID() string {
	return r.id
}

// FromVer returns the first library version this recipe serves.
func (r *Recipe) FromVer() string {
	return r.fromVer
}

// BuildRequirements returns the build-time tool requirements in declaration
// order. The result is a fresh copy; the call performs no I/O.
func (r *Recipe) BuildRequirements() []module.Version {
	return slices.Clone(r.requires)
}

// Command returns the build action as a command line, or "" when the
// action is a custom OnBuild function.
func (r *Recipe) Command() string {
	return strings.Join(r.command, " ")
}

// CommandArgs returns the build action as name and arguments, or nil when
// the action is a custom OnBuild function.
func (r *Recipe) CommandArgs() []string {
	return slices.Clone(r.command)
}

// Build runs the build action once in dir and waits for it. It is a
// shorthand for r.NewSession().Build(ctx, dir, opts...).
func (r *Recipe) Build(ctx context.Context, dir string, opts ...BuildOption) error {
	return r.NewSession().Build(ctx, dir, opts...)
}

// BuildOption configures a single build.
type BuildOption func(c *Context)

// WithEnviron sets the environment the build action runs with. By default
// it inherits the current process environment.
func WithEnviron(environ []string) BuildOption {
	return func(c *Context) {
		c.environ = environ
	}
}

// WithOutput redirects the build action's standard output and error.
func WithOutput(stdout, stderr io.Writer) BuildOption {
	return func(c *Context) {
		c.stdout = stdout
		c.stderr = stderr
	}
}

func (r *Recipe) newContext(ctx context.Context, dir string, opts []BuildOption) *Context {
	c := &Context{
		ctx:    ctx,
		recipe: r.id,
		dir:    dir,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
