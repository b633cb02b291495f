package recipe

import (
	"errors"
	"fmt"
)

var (
	// ErrBuildFailure is matched by every *BuildFailure.
	ErrBuildFailure = errors.New("build failure")

	// ErrSessionDone is returned when a Session that already ran is built again.
	ErrSessionDone = errors.New("recipe session already built")
)

// BuildFailure is returned when a recipe's build action cannot be started
// or exits with a non-zero status. The raw exit status is kept as is.
type BuildFailure struct {
	Recipe   string // recipe id
	Command  string // command line that failed
	Dir      string // working directory
	ExitCode int    // process exit status, -1 if the process never ran
	Err      error  // underlying error from os/exec
}

func (e *BuildFailure) Error() string {
	if e.ExitCode >= 0 {
		return fmt.Sprintf("build %s: %s: exit status %d", e.Recipe, e.Command, e.ExitCode)
	}
	return fmt.Sprintf("build %s: %s: %v", e.Recipe, e.Command, e.Err)
}

func (e *BuildFailure) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrBuildFailure) hold for any *BuildFailure.
func (e *BuildFailure) Is(target error) bool {
	return target == ErrBuildFailure
}
