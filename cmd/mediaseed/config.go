package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"mediaseed/pkg/ui"
)

const defaultConfigPath = "mediaseed.yaml"

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
	Long: `Manage mediaseed configuration files.

Configuration can be loaded from:
  - Command line flags (highest priority)
  - Environment variables (MEDIASEED_*)
  - .env files
  - Configuration file
  - Default values (lowest priority)`,
}

// initCmd represents the config init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an example configuration file",
	Long: `Create an example configuration file with all available options.

The file will be created in the current directory as 'mediaseed.yaml'
unless a different path is specified with the --config flag.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

// showCmd represents the config show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Show the effective configuration after merging flags, environment, files and defaults.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(initCmd)
	configCmd.AddCommand(showCmd)
}

const exampleConfig = `# mediaseed configuration file
#
# Every value below is the built-in default. The image counts, sources and
# delays are fixed; run 'mediaseed plan' to list them.
# Environment variables override this file:
#   MEDIASEED_OUTPUT_DIR, MEDIASEED_LOG_LEVEL, MEDIASEED_LOG_FILE, MEDIASEED_ASSUME_YES

output:
  # Directory the images are written to, created if missing
  directory: "uploads/profile-pictures"

prompt:
  # Skip the confirmation prompt
  assume_yes: false

logging:
  # Log level: debug, info, warn, error
  level: "info"
  # Log file path (optional), appended to
  file: ""
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configPath := configFile
	if configPath == "" {
		configPath = defaultConfigPath
	}

	if _, err := os.Stat(configPath); err == nil {
		ui.Println("\nTo overwrite, first remove the existing file:")
		ui.Println(fmt.Sprintf("  rm %s", configPath))
		return fmt.Errorf("configuration file already exists: %s", configPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to check configuration file: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(exampleConfig), 0644); err != nil {
		return fmt.Errorf("failed to create configuration file: %w", err)
	}

	ui.PrintSuccess("Configuration file created: " + configPath)
	ui.Println("\nNext steps:")
	ui.Println("1. Adjust the output directory or log settings if needed")
	ui.Println("2. Run 'mediaseed config show' to check the effective configuration")
	ui.Println("3. Run 'mediaseed plan' to list every image that will be downloaded")
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to format configuration: %w", err)
	}

	ui.PrintHighlight("Current Configuration")
	ui.Println("")
	fmt.Fprint(ui.Output(), string(data))

	ui.Println("\nConfiguration sources (in order of priority):")
	ui.Println("1. Command line flags")
	ui.Println("2. Environment variables (MEDIASEED_*)")
	if configFile != "" {
		ui.Println(fmt.Sprintf("3. Configuration file: %s", configFile))
	} else {
		ui.Println("3. Configuration file: (searched in the current directory)")
	}
	ui.Println("4. Default values")
	ui.Println("\nImage batches are fixed; run 'mediaseed plan' to list them.")
	return nil
}
