package seeder

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/afero"

	"mediaseed/internal/downloader"
	"mediaseed/pkg/config"
	errs "mediaseed/pkg/errors"
	"mediaseed/pkg/fetch"
	"mediaseed/pkg/logger"
	"mediaseed/pkg/pacing"
	"mediaseed/pkg/storage"
	"mediaseed/pkg/ui"
)

const (
	travelBatchName  = "Travel images"
	profileBatchName = "Profile images"
)

// ErrOutputDirectory marks a run that could not prepare its output directory
var ErrOutputDirectory = errors.New("cannot prepare output directory")

// Seeder runs the travel and profile batches against one output directory
type Seeder struct {
	config  *config.Config
	fetcher downloader.ImageFetcher
	fs      afero.Fs
	pacer   pacing.Pacer
	logger  logger.Logger
}

// Option customizes a Seeder
type Option func(*Seeder)

// WithFetcher replaces the HTTP client
func WithFetcher(f downloader.ImageFetcher) Option {
	return func(s *Seeder) { s.fetcher = f }
}

// WithFs replaces the OS filesystem
func WithFs(fs afero.Fs) Option {
	return func(s *Seeder) { s.fs = fs }
}

// WithPacer replaces the sleeping pacer
func WithPacer(p pacing.Pacer) Option {
	return func(s *Seeder) { s.pacer = p }
}

// WithLogger replaces the global logger
func WithLogger(l logger.Logger) Option {
	return func(s *Seeder) { s.logger = l }
}

// New creates a Seeder. Nothing touches the network or the filesystem until Run.
func New(cfg *config.Config, opts ...Option) *Seeder {
	s := &Seeder{config: cfg}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.GetLogger()
	}
	if s.fetcher == nil {
		s.fetcher = fetch.NewClient(cfg.HTTP.Timeout, cfg.HTTP.UserAgent, s.logger)
	}
	if s.fs == nil {
		s.fs = afero.NewOsFs()
	}
	if s.pacer == nil {
		s.pacer = pacing.NewTimerPacer()
	}

	return s
}

// Run prepares the output directory and downloads both batches in order.
// The returned tally is never nil. A canceled context yields an error for
// which errs.IsCanceled is true; a directory failure wraps ErrOutputDirectory.
func (s *Seeder) Run(ctx context.Context) (tally *ui.Tally, err error) {
	tally = ui.NewTally()

	defer func() {
		if r := recover(); r != nil {
			s.logger.WithField("panic", fmt.Sprintf("%v", r)).Error("Seeding aborted by panic")
			err = fmt.Errorf("unexpected failure: %v", r)
		}
	}()

	store := storage.NewManager(s.fs, s.config.Output.Directory)
	if err := store.EnsureDir(); err != nil {
		s.logger.WithError(err).Error("Failed to create output directory")
		return tally, fmt.Errorf("%w: %w", ErrOutputDirectory, err)
	}
	ui.Println(fmt.Sprintf("Created directories: %s", store.GetOutputDir()))

	dl := downloader.New(s.fetcher, store, s.pacer, s.logger)
	plan := BuildPlan(s.config)

	s.logger.InfoWithFields("Starting image seeding", map[string]interface{}{
		"output_dir": store.GetOutputDir(),
		"travel":     len(plan.Travel),
		"profile":    len(plan.Profile),
	})

	ui.Println("\n=== Downloading Travel Images ===")
	if err := s.runBatch(ctx, dl, tally.Batch(travelBatchName, len(plan.Travel)), plan.Travel); err != nil {
		return tally, err
	}

	ui.Println("\n=== Downloading Profile Pictures ===")
	if err := s.runBatch(ctx, dl, tally.Batch(profileBatchName, len(plan.Profile)), plan.Profile); err != nil {
		return tally, err
	}

	for _, b := range tally.Batches() {
		s.logger.InfoWithFields("Batch finished", map[string]interface{}{
			"batch":      b.Name,
			"planned":    b.Planned,
			"downloaded": b.Downloaded,
			"failed":     b.Failed,
			"fallbacks":  b.Fallbacks,
		})
	}
	s.logger.InfoWithFields("Image seeding finished", map[string]interface{}{
		"downloaded": tally.TotalDownloaded(),
		"failed":     tally.TotalFailed(),
		"elapsed":    tally.GetElapsedTime(),
	})

	return tally, nil
}

// runBatch downloads entries one after another. Network, status and storage
// failures are counted and skipped; anything else, cancellation included, ends the batch.
func (s *Seeder) runBatch(ctx context.Context, dl *downloader.Downloader, batch *ui.BatchTally, entries []Entry) error {
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return errs.Canceled(err)
		}

		result, usedFallback := s.downloadEntry(ctx, dl, entry)
		if result.Success {
			batch.Downloaded++
			if usedFallback {
				batch.Fallbacks++
			}
			continue
		}

		if err := ctx.Err(); err != nil {
			return errs.Canceled(err)
		}
		if !errs.IsRecoverable(result.Error) {
			return result.Error
		}
		batch.Failed++
	}

	return nil
}

// downloadEntry tries the primary source and, only if that fails with a
// recoverable error, the fallback source into the same filename.
func (s *Seeder) downloadEntry(ctx context.Context, dl *downloader.Downloader, entry Entry) (downloader.Result, bool) {
	result := dl.Download(ctx, downloader.Job{
		URL:      entry.PrimaryURL,
		Filename: entry.Filename,
		Delay:    entry.PrimaryDelay,
		Category: entry.Category,
		Index:    entry.Index,
	})
	if result.Success || !entry.HasFallback() {
		return result, false
	}
	if !errs.IsRecoverable(result.Error) || ctx.Err() != nil {
		return result, false
	}

	s.logger.DebugWithFields("Trying fallback source", map[string]interface{}{
		"filename": entry.Filename,
		"url":      entry.FallbackURL,
	})

	fallback := dl.Download(ctx, downloader.Job{
		URL:      entry.FallbackURL,
		Filename: entry.Filename,
		Delay:    entry.FallbackDelay,
		Category: entry.Category,
		Index:    entry.Index,
	})
	return fallback, fallback.Success
}
