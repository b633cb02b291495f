package internal

import (
	"fmt"
	"path/filepath"

	"github.com/goplus/recipe/mod/manifest"
	"github.com/goplus/recipe/recipes"
	"github.com/spf13/cobra"
)

var initID string

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a recipe manifest",
	Long:  `Init writes a recipe.yaml into dir from a built-in recipe.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

func init() {
	initCmd.Flags().StringVar(&initID, "id", recipes.DefaultID, "library id of the built-in recipe")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	r, ok := recipes.Lookup(initID, "")
	if !ok {
		return fmt.Errorf("no built-in recipe for %s", initID)
	}
	m, err := manifest.FromRecipe(r)
	if err != nil {
		return err
	}
	file := filepath.Join(dirArg(args), manifest.FileName)
	if err := manifest.Write(file, m); err != nil {
		return fmt.Errorf("failed to write %s: %w", file, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Initialized recipe %s in %s\n", r.ID(), file)
	return nil
}
