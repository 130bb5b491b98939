// Package commands implements the command line interface of the backend.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/expensebud/backend/internal/config"
	"github.com/expensebud/backend/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
//
// Before any subcommand runs, the .env file is loaded, the configuration
// is read from the environment and logging is set up.
func NewRootCommand() *cobra.Command {
	var cfg config.Config

	rootCmd := &cobra.Command{
		Use:     "expensebud",
		Short:   "Expense tracking with budgets and transactions imported from linked bank accounts",
		Version: router.Version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			err := config.LoadDotEnv()
			if err != nil {
				return fmt.Errorf("loading .env file: %w", err)
			}

			cfg, err = config.Load()
			if err != nil {
				return err
			}

			return setupLogging(cfg, cmd.ErrOrStderr())
		},
	}

	rootCmd.AddCommand(newServeCommand(&cfg))
	rootCmd.AddCommand(newMigrateCommand(&cfg))
	rootCmd.AddCommand(newSyncCommand(&cfg))

	return rootCmd
}

// setupLogging sets the gin mode and configures the global logger.
func setupLogging(cfg config.Config, out io.Writer) error {
	switch cfg.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return fmt.Errorf("environment variable GIN_MODE must be one of %q, %q or %q, got %q", gin.DebugMode, gin.ReleaseMode, gin.TestMode, cfg.GinMode)
	}
	gin.SetMode(cfg.GinMode)

	if out == nil {
		out = os.Stdout
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	output := out
	if cfg.Human() {
		output = zerolog.ConsoleWriter{Out: out}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	return nil
}
