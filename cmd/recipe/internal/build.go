package internal

import (
	"context"
	"fmt"
	"io"

	"github.com/goplus/recipe/internal/build"
	"github.com/goplus/recipe/recipe"
	"github.com/spf13/cobra"
)

var buildID string

var buildCmd = &cobra.Command{
	Use:   "build [dir]",
	Short: "Run the recipe in a source tree",
	Long: `Build resolves the recipe's build requirements and runs its bootstrap
action once in dir, the library's source root.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&buildID, "id", "", "library id of the recipe (default is the recipe in dir, then libsdl-org/SDL_ttf)")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	dir := dirArg(args)
	r, err := dirRecipe(cmd.Context(), cfg, dir, buildID, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	return buildIn(cmd.Context(), cfg, r, dir, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// buildIn builds r in dir and reports the result on stdout.
func buildIn(ctx context.Context, cfg config, r *recipe.Recipe, dir string, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	b, err := build.NewBuilder(build.Options{
		Layout:        cfg.layout,
		Path:          cfg.path,
		AllowMismatch: cfg.allowMismatch,
		Force:         cfg.force,
		Stdout:        stdout,
		Stderr:        stderr,
	})
	if err != nil {
		return fmt.Errorf("failed to create builder: %w", err)
	}
	res, err := b.Build(ctx, r, dir)
	if err != nil {
		return err
	}
	state := "built"
	if res.Cached {
		state = "up to date"
	}
	fmt.Fprintf(stdout, "%s %s: %s [%s]\n", res.Recipe, state, res.Dir, res.Toolchain)
	return nil
}
