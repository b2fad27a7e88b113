package ui

import (
	"fmt"
	"time"
)

// BatchTally counts outcomes for one batch
type BatchTally struct {
	Name       string
	Planned    int
	Downloaded int
	Failed     int
	Fallbacks  int
}

// Tally keeps track of the whole run
type Tally struct {
	StartTime time.Time
	batches   []*BatchTally
}

// NewTally creates an empty tally
func NewTally() *Tally {
	return &Tally{StartTime: time.Now()}
}

// Batch returns the tally for name, creating it on first use
func (t *Tally) Batch(name string, planned int) *BatchTally {
	for _, b := range t.batches {
		if b.Name == name {
			return b
		}
	}
	b := &BatchTally{Name: name, Planned: planned}
	t.batches = append(t.batches, b)
	return b
}

// Batches returns the batches in creation order
func (t *Tally) Batches() []BatchTally {
	out := make([]BatchTally, 0, len(t.batches))
	for _, b := range t.batches {
		out = append(out, *b)
	}
	return out
}

// TotalDownloaded returns the number of saved images over all batches
func (t *Tally) TotalDownloaded() int {
	total := 0
	for _, b := range t.batches {
		total += b.Downloaded
	}
	return total
}

// TotalFailed returns the number of images that could not be saved
func (t *Tally) TotalFailed() int {
	total := 0
	for _, b := range t.batches {
		total += b.Failed
	}
	return total
}

// GetElapsedTime returns the elapsed time since the run started
func (t *Tally) GetElapsedTime() time.Duration {
	return time.Since(t.StartTime)
}

// PrintBatchSummary prints one line per batch
func (t *Tally) PrintBatchSummary() {
	for _, b := range t.batches {
		line := fmt.Sprintf("%s: %d/%d downloaded, %d failed", b.Name, b.Downloaded, b.Planned, b.Failed)
		if b.Fallbacks > 0 {
			line += fmt.Sprintf(" (%d from fallback)", b.Fallbacks)
		}
		if b.Failed > 0 {
			PrintWarning(line)
		} else {
			PrintSuccess(line)
		}
	}
	fmt.Fprintf(output, "%s %s\n", Dim("Elapsed:"), t.GetElapsedTime().Round(time.Second))
}
