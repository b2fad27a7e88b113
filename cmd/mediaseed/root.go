package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"mediaseed/pkg/config"
	"mediaseed/pkg/logger"
	"mediaseed/pkg/ui"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile string
	logLevel   string
	outputDir  string
	assumeYes  bool
	noColor    bool
)

// rootCmd downloads the seed images when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mediaseed",
	Short: "Download placeholder travel photos and profile pictures for a sample app",
	Long: `mediaseed fills a local directory with sample media for development:

  - 50 travel/landscape images (800x600) from the placeholder service
  - 100 profile pictures (400x400) from the face generator, with a
    placeholder fallback when it fails

Images are written to uploads/profile-pictures unless --output is given.
Nothing is downloaded until the prompt is answered with "y".`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		ui.SetOutput(cmd.OutOrStdout())
		if noColor {
			ui.SetColorEnabled(false)
		}
	},
	RunE: runSeed,
}

// Execute adds all child commands to the root command and exits non-zero on failure
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Red(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is ./mediaseed.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "output directory (default is "+config.DefaultOutputDirectory+")")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "answer yes to the confirmation prompt")

	rootCmd.SetVersionTemplate(`mediaseed {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// commandLineFlags collects only the flags the user actually set
func commandLineFlags(cmd *cobra.Command) map[string]interface{} {
	flags := make(map[string]interface{})
	if cmd.Flags().Changed("output") {
		flags["output"] = outputDir
	}
	if cmd.Flags().Changed("log-level") {
		flags["log-level"] = logLevel
	}
	if cmd.Flags().Changed("yes") {
		flags["yes"] = assumeYes
	}
	return flags
}

// loadConfig resolves the configuration from all sources
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configFile, commandLineFlags(cmd))
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Close()
	logger.WithField("version", version).Debug("mediaseed starting")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return seed(ctx, cfg, cmd.InOrStdin())
}
