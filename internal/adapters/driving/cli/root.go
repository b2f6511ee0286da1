// Package cli implements the reqlens command-line interface using cobra.
// Commands wire the driven adapters to the core services at invocation
// time; only the command being run pays its setup cost.
package cli

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/reqlens/reqlens-cli/internal/config"
	"github.com/reqlens/reqlens-cli/internal/logger"
)

// version is overridden at build time via -ldflags.
var version = "dev"

var (
	cfgPath string
	verbose bool

	cfg *config.Config
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "reqlens",
	Short: "Compare requirement documents against existing implementations",
	Long: `ReqLens extracts features from semi-structured requirement documents,
matches them against an existing feature set using embeddings, and reports
what can be reused as-is, what needs adaptation, and what must be built.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		// Optional; provider API keys may come from the environment directly.
		_ = godotenv.Load()

		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}

		log = logger.New(verbose)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultPath, "path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
