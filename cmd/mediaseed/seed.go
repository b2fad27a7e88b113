package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"mediaseed/pkg/config"
	errs "mediaseed/pkg/errors"
	"mediaseed/pkg/logger"
	"mediaseed/pkg/seeder"
	"mediaseed/pkg/ui"
)

const (
	confirmQuestion = "\nProceed with download? (y/n): "
	estimatedTime   = "5-10 minutes"
)

// seed runs the interactive flow: describe, confirm, download, summarize.
// Only a failure to prepare the output directory is returned; interrupts
// and unexpected failures are reported on the console.
func seed(ctx context.Context, cfg *config.Config, in io.Reader, opts ...seeder.Option) error {
	printPlannedWork(cfg)

	if cfg.Prompt.AssumeYes {
		ui.Println(confirmQuestion + "y (--yes)")
	} else if !confirm(ctx, in) {
		ui.Println("Download cancelled.")
		return nil
	}

	tally, err := seeder.New(cfg, opts...).Run(ctx)
	switch {
	case err == nil:
		printCompletion(cfg, tally)
	case errors.Is(err, seeder.ErrOutputDirectory):
		return err
	case errs.IsCanceled(err):
		logger.Debug("run canceled by signal")
		ui.Println("\nDownload interrupted by user.")
	default:
		logger.WithError(err).Error("Seeding failed")
		ui.PrintError("\nError during download", err)
	}

	return nil
}

// confirm asks the question and gives up when ctx is canceled first.
// A blocked terminal read cannot be interrupted, so after cancellation the
// reader goroutine stays parked on in until the process exits and whatever
// it reads is dropped.
func confirm(ctx context.Context, in io.Reader) bool {
	answer := make(chan bool, 1)
	go func() {
		answer <- ui.Confirm(in, confirmQuestion)
	}()

	select {
	case ok := <-answer:
		return ok
	case <-ctx.Done():
		ui.Println("")
		return false
	}
}

func printPlannedWork(cfg *config.Config) {
	ui.Println("Starting image download process...")
	ui.Println("This will download:")
	ui.Println(fmt.Sprintf("- %d travel/landscape images (%dx%d)", cfg.Travel.Count, cfg.Travel.Width, cfg.Travel.Height))
	ui.Println(fmt.Sprintf("- %d profile pictures (%dx%d)", cfg.Profile.Count, cfg.Profile.FallbackWidth, cfg.Profile.FallbackHeight))
	ui.Println("\nEstimated time: " + estimatedTime)
}

func printCompletion(cfg *config.Config, tally *ui.Tally) {
	plan := seeder.BuildPlan(cfg)

	ui.PrintHighlight("\n=== Download Complete ===")
	ui.PrintInfo("Images saved to", cfg.Output.Directory+"/")
	if r := seeder.FilenameRange(plan.Travel); r != "" {
		ui.PrintInfo("Travel images", r)
	}
	if r := seeder.FilenameRange(plan.Profile); r != "" {
		ui.PrintInfo("Profile images", r)
	}
	tally.PrintBatchSummary()
}
