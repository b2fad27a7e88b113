package pacing

import (
	"context"
	"sync"
	"time"
)

// Pacer decides how the run pauses between requests
type Pacer interface {
	// Pause blocks for d or until ctx is done, whichever comes first.
	// It returns ctx.Err() when interrupted.
	Pause(ctx context.Context, d time.Duration) error
}

// TimerPacer sleeps for exactly the requested duration
type TimerPacer struct{}

// NewTimerPacer creates the default pacer
func NewTimerPacer() *TimerPacer {
	return &TimerPacer{}
}

// Pause sleeps for d unless ctx is canceled first
func (TimerPacer) Pause(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Recorder is a Pacer that records requested pauses without sleeping
type Recorder struct {
	mu     sync.Mutex
	pauses []time.Duration
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Pause records d and returns immediately
func (r *Recorder) Pause(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.pauses = append(r.pauses, d)
	return nil
}

// Pauses returns the recorded durations in order
func (r *Recorder) Pauses() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]time.Duration, len(r.pauses))
	copy(out, r.pauses)
	return out
}

// Total returns the sum of all recorded pauses
func (r *Recorder) Total() time.Duration {
	var total time.Duration
	for _, d := range r.Pauses() {
		total += d
	}
	return total
}
