// Package pacing provides the pause policy applied after each saved image.
//
// The seeder does not rate limit; it waits a fixed, per-batch duration after
// every successful download. The wait is behind the Pacer interface so the
// policy can be swapped:
//
//	TimerPacer  sleeps for the requested duration, returning early on cancel
//	Recorder    records the requested durations without sleeping (tests)
//
// Usage:
//
//	pacer := pacing.NewTimerPacer()
//	if err := pacer.Pause(ctx, 500*time.Millisecond); err != nil {
//	    return err // interrupted
//	}
package pacing
