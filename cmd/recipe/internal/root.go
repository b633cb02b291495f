package internal

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/goplus/recipe/internal/env"
	"github.com/goplus/recipe/internal/toolchain"
	"github.com/goplus/recipe/recipe"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "recipe",
	Short: "recipe bootstraps Autotools-based libraries",
	Long: `recipe declares the build-time tools a library needs and runs the
library's own bootstrap script (./autogen.sh) with those tools.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/recipe/config.yaml)")
	pf.String("workdir", "", "work directory (default is $XDG_CACHE_HOME/recipe)")
	pf.String("tools", "", "tool store directory (default is <workdir>/tools)")
	pf.String("path", "", "search path for build tools (default is $PATH)")
	pf.String("host", "", "git host library sources are fetched from (default is https://github.com)")
	pf.String("recipes", "", "git remote of the recipe repository mirrored into <workdir>/recipes")
	pf.BoolP("verbose", "v", false, "enable debug logging")
	pf.String("log-level", "info", "log level: debug, info, warn or error")
	pf.Bool("allow-mismatch", false, "accept build tools whose version differs from the pinned one")
	pf.Bool("force", false, "rebuild even if the build is up to date")

	cobra.OnInitialize(initConfig)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetEnvPrefix("recipe")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	viper.BindPFlags(rootCmd.PersistentFlags())
	viper.SetDefault("log-level", "info")

	file := cfgFile
	if file == "" {
		file = env.ConfigFile()
		if _, err := os.Stat(file); err != nil {
			return
		}
	}
	viper.SetConfigFile(file)
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading recipe configuration: %s\n", err)
		os.Exit(2)
	}
}

// config is the effective configuration of a command.
type config struct {
	layout        env.Layout
	path          string
	host          string
	recipes       string
	allowMismatch bool
	force         bool
}

func loadConfig() config {
	return config{
		layout:        env.New(viper.GetString("workdir"), viper.GetString("tools")),
		path:          viper.GetString("path"),
		host:          viper.GetString("host"),
		recipes:       viper.GetString("recipes"),
		allowMismatch: viper.GetBool("allow-mismatch"),
		force:         viper.GetBool("force"),
	}
}

func setupLogging(cmd *cobra.Command, args []string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(viper.GetString("log-level"))); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(h))
	if f := viper.ConfigFileUsed(); f != "" {
		slog.Debug("using config file", "file", f)
	}
	return nil
}

// Exit codes.
const (
	exitError       = 1 // any other error
	exitBuildFailed = 2 // the recipe's build action failed
	exitNoTool      = 3 // a build requirement is not available
)

func exitCode(err error) int {
	switch {
	case errors.Is(err, recipe.ErrBuildFailure):
		return exitBuildFailed
	case errors.Is(err, toolchain.ErrToolUnavailable):
		return exitNoTool
	}
	return exitError
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "recipe:", err)
		os.Exit(exitCode(err))
	}
}
