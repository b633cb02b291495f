package recipe

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// Context is handed to a recipe's build action. It runs commands inside
// the working directory supplied by the host.
type Context struct {
	ctx     context.Context
	recipe  string
	dir     string
	environ []string
	env     map[string]string
	stdout  io.Writer
	stderr  io.Writer

	runs int
	err  error
}

// Context returns the context.Context of the running build.
func (c *Context) Context() context.Context {
	return c.ctx
}

// Dir returns the working directory, i.e. the library's source root.
func (c *Context) Dir() string {
	return c.dir
}

// Env sets key=value for every command run afterwards.
func (c *Context) Env(key, value string) {
	if c.env == nil {
		c.env = make(map[string]string)
	}
	c.env[key] = value
}

// Run executes name with args in the working directory and waits for it.
// A relative name such as "./autogen.sh" is resolved against the working
// directory. After the first failure Run does nothing and returns that
// failure again.
func (c *Context) Run(name string, args ...string) error {
	if c.err != nil {
		return c.err
	}
	cmdline := strings.Join(append([]string{name}, args...), " ")

	cmd := exec.CommandContext(c.ctx, name, args...)
	cmd.Dir = c.dir
	cmd.Stdout = c.stdout
	cmd.Stderr = c.stderr
	if c.environ != nil || len(c.env) > 0 {
		base := c.environ
		if base == nil {
			base = os.Environ()
		}
		cmd.Env = mergeEnv(base, c.env)
	}

	slog.Debug("run", "recipe", c.recipe, "command", cmdline, "dir", c.dir)
	c.runs++
	if err := cmd.Run(); err != nil {
		c.err = &BuildFailure{
			Recipe:   c.recipe,
			Command:  cmdline,
			Dir:      c.dir,
			ExitCode: exitCode(err),
			Err:      err,
		}
		return c.err
	}
	return nil
}

// Err returns the first failure of the build, if any.
func (c *Context) Err() error {
	return c.err
}

func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// mergeEnv returns a copy of base with every key in overrides replaced or appended.
func mergeEnv(base []string, overrides map[string]string) []string {
	out := make([]string, len(base), len(base)+len(overrides))
	copy(out, base)
	idx := make(map[string]int, len(out))
	for i, kv := range out {
		if k, _, ok := strings.Cut(kv, "="); ok {
			idx[k] = i
		}
	}
	for k, v := range overrides {
		if i, ok := idx[k]; ok {
			out[i] = k + "=" + v
		} else {
			out = append(out, k+"="+v)
		}
	}
	return out
}
