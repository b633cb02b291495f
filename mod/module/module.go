// Package module defines the module.Version type along with support code.
package module

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
)

// A Version (for clients, a module.Version) represents a specific version
// of a module or build tool identified by its path.
type Version struct {
	Path    string // Module path in the form "owner/repo", or a tool name such as "autoconf"
	Version string // Version string (e.g., "2.71")
}

// String returns the requirement reference form "path/version".
func (v Version) String() string {
	return v.Path + "/" + v.Version
}

// ErrNotPinned is returned by CheckPinned for empty versions and version ranges.
var ErrNotPinned = errors.New("version is not pinned")

// rangeChars are the characters that only appear in version constraints,
// never in a concrete version.
const rangeChars = "<>=^*,|[]() \t"

// CheckPinned reports an error unless v names exactly one version.
func CheckPinned(v Version) error {
	if v.Path == "" {
		return fmt.Errorf("invalid requirement %q: empty name", v.String())
	}
	ver := v.Version
	if ver == "" {
		return fmt.Errorf("%s: %w: empty version", v.Path, ErrNotPinned)
	}
	if strings.ContainsAny(ver, rangeChars) || strings.HasPrefix(ver, "~") {
		return fmt.Errorf("%s: %w: %q is a range", v.Path, ErrNotPinned, ver)
	}
	for _, part := range strings.Split(ver, ".") {
		if part == "x" || part == "X" {
			return fmt.Errorf("%s: %w: %q is a wildcard", v.Path, ErrNotPinned, ver)
		}
	}
	// v-prefixed versions are tags and must be valid semver.
	if len(ver) > 1 && ver[0] == 'v' && ver[1] >= '0' && ver[1] <= '9' && !semver.IsValid(ver) {
		return fmt.Errorf("%s: invalid semantic version %q", v.Path, ver)
	}
	return nil
}

// ParseRef parses a requirement reference of the form "name/version",
// e.g. "autoconf/2.71". The name may itself contain slashes; the version
// is the last path element.
func ParseRef(ref string) (Version, error) {
	i := strings.LastIndexByte(ref, '/')
	if i <= 0 || i == len(ref)-1 {
		return Version{}, fmt.Errorf("invalid requirement reference %q, expected name/version", ref)
	}
	v := Version{Path: ref[:i], Version: ref[i+1:]}
	if err := CheckPinned(v); err != nil {
		return Version{}, err
	}
	return v, nil
}

// ParseVersion parses a module argument in the form "owner/repo@version"
// or "owner/repo". Version is empty when absent.
func ParseVersion(arg string) Version {
	if i := strings.LastIndexByte(arg, '@'); i >= 0 {
		return Version{Path: arg[:i], Version: arg[i+1:]}
	}
	return Version{Path: arg}
}

// EscapePath returns the escaped form of the given module path as a valid
// file system path. It fails if the module path is invalid.
func EscapePath(path string) (escaped string, err error) {
	return filepath.Localize(path)
}
