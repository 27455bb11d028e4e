package cli

import (
	"fmt"

	"github.com/gkobilansky/shield-study/internal/config"
	"github.com/gkobilansky/shield-study/internal/study"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	dbPath          string
	extensionID     string
	studyFile       string
	permissionsMode string
	verbose         bool

	// Environment seeds flag defaults; envErr is reported before any command runs
	envConfig, envErr = config.LoadEnv()

	// Set by PersistentPreRunE
	base   study.Setup
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "shield-study",
	Short: "Build and serve the setup for a Shield study",
	Long: `shield-study builds the settings object a study framework consumes:
a static study definition plus the enrollment decision and testing
overrides resolved at startup.

The enrollment decision is computed once from data permissions and
cached in the local store for later runs.

Running without a subcommand prints the study setup (same as 'shield-study setup').`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if envErr != nil {
			return fmt.Errorf("invalid environment: %w", envErr)
		}

		var err error
		if cmd.Name() == "init" {
			// init writes the study file, so an existing one may be broken
			base = study.Base(extensionID)
		} else {
			base, err = config.LoadStudy(studyFile, extensionID)
			if err != nil {
				return fmt.Errorf("failed to load study: %w", err)
			}
		}

		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(study.ZapLevel(base.LogLevel))
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runSetup, // Default action is to print the setup
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", envConfig.DBPath, "local store path")
	rootCmd.PersistentFlags().StringVar(&extensionID, "id", envConfig.ExtensionID, "extension id")
	rootCmd.PersistentFlags().StringVar(&studyFile, "study", envConfig.StudyFile, "YAML study definition (defaults to the built-in example)")
	rootCmd.PersistentFlags().StringVar(&permissionsMode, "permissions", envConfig.Permissions, "data permissions source: granted, revoked or prompt")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}
