// Package autotools drives the bootstrap step of Autotools-based libraries:
// running the library's autogen.sh to generate configure and its scaffolding.
package autotools

import (
	"os"
	"path/filepath"

	"github.com/goplus/recipe/recipe"
)

const (
	// Script is the conventional name of the bootstrap script.
	Script = "autogen.sh"

	// Configure is the script generated by a successful bootstrap.
	Configure = "configure"
)

// Bootstrap returns a recipe option whose build action runs ./autogen.sh
// with args in the source root.
func Bootstrap(args ...string) recipe.Option {
	return recipe.Run("./"+Script, args...)
}

// AutoTools wraps a recipe build context for use in classfile recipes.
type AutoTools struct {
	ctx *recipe.Context
}

// New returns an AutoTools bound to ctx.
func New(ctx *recipe.Context) *AutoTools {
	return &AutoTools{ctx: ctx}
}

// Env sets key=value for every command run afterwards.
func (a *AutoTools) Env(key, value string) {
	a.ctx.Env(key, value)
}

// Bootstrap runs ./autogen.sh with args in the source root.
func (a *AutoTools) Bootstrap(args ...string) error {
	return a.ctx.Run("./"+Script, args...)
}

// Configure runs ./configure --prefix=prefix with args in the source root.
// It is not part of the bootstrap; recipes that go on to configure the
// library call it after Bootstrap.
func (a *AutoTools) Configure(prefix string, args ...string) error {
	return a.ctx.Run("./"+Configure, append([]string{"--prefix=" + prefix}, args...)...)
}

// HasScript reports whether dir contains an executable bootstrap script.
func HasScript(dir string) bool {
	fi, err := os.Stat(filepath.Join(dir, Script))
	return err == nil && fi.Mode().IsRegular() && fi.Mode().Perm()&0o111 != 0
}

// Generated reports whether dir contains a configure script, i.e. the
// bootstrap produced its scaffolding.
func Generated(dir string) bool {
	fi, err := os.Stat(filepath.Join(dir, Configure))
	return err == nil && fi.Mode().IsRegular()
}
