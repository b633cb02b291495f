package internal

import (
	"fmt"

	"github.com/spf13/cobra"
)

var requiresID string

var requiresCmd = &cobra.Command{
	Use:   "requires [dir]",
	Short: "Print the build requirements of a recipe",
	Long: `Requires prints the build-time tools of the recipe in dir, one
name/version per line. Without a recipe in dir the recipe of --id is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRequires,
}

func init() {
	requiresCmd.Flags().StringVar(&requiresID, "id", "", "library id of the recipe (default is the recipe in dir, then libsdl-org/SDL_ttf)")
	rootCmd.AddCommand(requiresCmd)
}

func runRequires(cmd *cobra.Command, args []string) error {
	r, err := dirRecipe(cmd.Context(), loadConfig(), dirArg(args), requiresID, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	for _, req := range r.BuildRequirements() {
		fmt.Fprintln(cmd.OutOrStdout(), req)
	}
	return nil
}
