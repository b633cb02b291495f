package internal

import (
	"fmt"

	"github.com/goplus/recipe/internal/env"
	"github.com/goplus/recipe/internal/vcs"
	"github.com/goplus/recipe/mod/module"
	"github.com/spf13/cobra"
)

var makeCmd = &cobra.Command{
	Use:   "make [owner/repo@ref]",
	Short: "Fetch a library and run its recipe",
	Long: `Make fetches the library's source at ref with git into the work
directory and builds it with the recipe serving ref. Without a ref the
newest release tag is used.`,
	Args: cobra.ExactArgs(1),
	RunE: runMake,
}

func init() {
	rootCmd.AddCommand(makeCmd)
}

func runMake(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := loadConfig()
	mod := module.ParseVersion(args[0])
	if mod.Path == "" {
		return fmt.Errorf("invalid module %q, expected owner/repo@ref", args[0])
	}

	git := vcs.NewGitVCS()
	remote := vcs.Remote(cfg.host, mod.Path)
	ref, err := vcs.ResolveRef(ctx, git, remote, mod.Version)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", args[0], err)
	}
	mod.Version = ref

	r, err := lookupRecipe(ctx, cfg, mod.Path, ref, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	dir, err := cfg.layout.SourceDir(mod)
	if err != nil {
		return err
	}
	if err := env.MkdirAll(dir); err != nil {
		return err
	}
	if err := git.Sync(ctx, remote, ref, dir); err != nil {
		return fmt.Errorf("failed to fetch %s@%s: %w", mod.Path, ref, err)
	}
	return buildIn(ctx, cfg, r, dir, cmd.OutOrStdout(), cmd.ErrOrStderr())
}
