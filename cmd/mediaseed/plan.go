package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mediaseed/pkg/seeder"
	"mediaseed/pkg/ui"
)

// planCmd lists the downloads without performing them
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "List every image that would be downloaded",
	Long: `List the filename, source URL and fallback URL of every planned image.

Nothing is downloaded and no directory is created.`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	plan := seeder.BuildPlan(cfg)

	ui.PrintInfo("Output directory", cfg.Output.Directory)
	ui.PrintHighlight(fmt.Sprintf("\nTravel images (%d)", len(plan.Travel)))
	for _, entry := range plan.Travel {
		printEntry(entry)
	}

	ui.PrintHighlight(fmt.Sprintf("\nProfile images (%d)", len(plan.Profile)))
	for _, entry := range plan.Profile {
		printEntry(entry)
	}

	return nil
}

func printEntry(entry seeder.Entry) {
	fallback := "-"
	if entry.HasFallback() {
		fallback = entry.FallbackURL
	}
	ui.Println(fmt.Sprintf("%-22s %s  %s %s", entry.Filename, entry.PrimaryURL, ui.Dim("fallback:"), fallback))
}
