package downloader

import (
	"context"
	"fmt"
	"time"

	errs "mediaseed/pkg/errors"
	"mediaseed/pkg/logger"
	"mediaseed/pkg/pacing"
)

// Job describes one image to fetch and store
type Job struct {
	URL      string
	Filename string
	Delay    time.Duration
	Category string
	Index    int
}

// Result represents the outcome of a download job
type Result struct {
	Job      Job
	Success  bool
	Error    error
	Path     string
	Size     int
	Duration time.Duration
}

// ImageFetcher retrieves the body behind a URL
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// ImageStorage persists image bodies by filename
type ImageStorage interface {
	Save(filename string, data []byte) (string, error)
}

// Downloader performs fetch-and-store for a single job at a time
type Downloader struct {
	fetcher ImageFetcher
	storage ImageStorage
	pacer   pacing.Pacer
	logger  logger.Logger
}

// New creates a Downloader
func New(fetcher ImageFetcher, storage ImageStorage, pacer pacing.Pacer, log logger.Logger) *Downloader {
	if pacer == nil {
		pacer = pacing.NewTimerPacer()
	}
	if log == nil {
		log = logger.GetLogger()
	}

	return &Downloader{
		fetcher: fetcher,
		storage: storage,
		pacer:   pacer,
		logger:  log,
	}
}

// Download fetches job.URL and writes the body to job.Filename.
// It never returns an error: failures are logged and reported through
// Result.Success. The destination is only touched after a complete body
// has been received. The job's delay follows a successful write only.
func (d *Downloader) Download(ctx context.Context, job Job) Result {
	start := time.Now()
	result := Result{Job: job}

	data, err := d.fetcher.Fetch(ctx, job.URL)
	if err != nil {
		result.Error = err
		result.Duration = time.Since(start)
		d.logFailure(result)
		return result
	}
	result.Size = len(data)

	path, err := d.storage.Save(job.Filename, data)
	if err != nil {
		result.Error = errs.Storage(err)
		result.Duration = time.Since(start)
		d.logFailure(result)
		return result
	}

	result.Success = true
	result.Path = path
	result.Duration = time.Since(start)

	d.logger.WithFields(map[string]interface{}{
		"category": job.Category,
		"index":    job.Index,
		"size":     result.Size,
		"duration": result.Duration,
	}).Info(fmt.Sprintf("Downloaded: %s", path))

	if err := d.pacer.Pause(ctx, job.Delay); err != nil {
		d.logger.DebugWithFields("pause interrupted", map[string]interface{}{
			"filename": job.Filename,
			"delay":    job.Delay,
		})
	}

	return result
}

func (d *Downloader) logFailure(result Result) {
	job, err := result.Job, result.Error
	if errs.IsCanceled(err) {
		d.logger.DebugWithFields("download interrupted", map[string]interface{}{
			"url":      job.URL,
			"filename": job.Filename,
		})
		return
	}

	d.logger.WithFields(map[string]interface{}{
		"category":   job.Category,
		"index":      job.Index,
		"error_type": string(errs.TypeOf(err)),
		"duration":   result.Duration,
	}).Error(fmt.Sprintf("Failed to download %s: %v", job.URL, err))
}
