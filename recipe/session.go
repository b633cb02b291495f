package recipe

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// State is the state of a Session.
type State int

const (
	Declared State = iota // requirements known, not yet built
	Built                 // build action succeeded
	Failed                // build action failed
)

func (s State) String() string {
	switch s {
	case Declared:
		return "declared"
	case Built:
		return "built"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Session is a single build of a Recipe. It moves from Declared to Built
// or Failed and never back; retrying needs a new Session.
type Session struct {
	recipe *Recipe

	mu    sync.Mutex
	state State
	err   error
}

// NewSession returns a Session in the Declared state.
func (r *Recipe) NewSession() *Session {
	return &Session{recipe: r}
}

// Recipe returns the recipe being built.
func (s *Session) Recipe() *Recipe {
	return s.recipe
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the failure of the build, if it failed.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Build runs the recipe's build action in dir. The action is attempted
// exactly once, and a panic in it fails the session. Any later call
// returns ErrSessionDone.
func (s *Session) Build(ctx context.Context, dir string, opts ...BuildOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Declared {
		return ErrSessionDone
	}
	c := s.recipe.newContext(ctx, dir, opts)
	if err := s.run(c); err != nil {
		s.state, s.err = Failed, err
		slog.Debug("recipe failed", "recipe", s.recipe.id, "dir", dir, "error", err)
		return err
	}
	s.state = Built
	slog.Debug("recipe built", "recipe", s.recipe.id, "dir", dir, "runs", c.runs)
	return nil
}

// run calls the build action. A panic in it is a failure with no exit
// status.
func (s *Session) run(c *Context) (err error) {
	defer func() {
		if p := recover(); p != nil {
			cmd := s.recipe.Command()
			if cmd == "" {
				cmd = "onBuild"
			}
			err = &BuildFailure{
				Recipe:   s.recipe.id,
				Command:  cmd,
				Dir:      c.dir,
				ExitCode: -1,
				Err:      fmt.Errorf("panic: %v", p),
			}
		}
	}()
	s.recipe.onBuild(c)
	return c.Err()
}
