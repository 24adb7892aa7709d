package indexer

import "time"

const (
	// progressInterval is the minimum time between two progress reports.
	progressInterval = 2 * time.Second
	// progressEvery forces a report after this many completed files.
	progressEvery = 100
)

// progressTracker counts file outcomes and decides when to report them.
type progressTracker struct {
	total      int
	processed  int
	skipped    int
	failed     int
	chunks     int
	start      time.Time
	lastReport time.Time
	now        func() time.Time
}

func newProgressTracker(total int, now func() time.Time) *progressTracker {
	start := now()
	return &progressTracker{
		total:      total,
		start:      start,
		lastReport: start,
		now:        now,
	}
}

func (t *progressTracker) completed() int {
	return t.processed + t.skipped + t.failed
}

// due reports whether a progress update should be emitted now.
func (t *progressTracker) due() bool {
	completed := t.completed()
	if completed == t.total || completed%progressEvery == 0 {
		return true
	}
	return t.now().Sub(t.lastReport) >= progressInterval
}

// snapshot returns the current progress and marks it as reported.
func (t *progressTracker) snapshot() Progress {
	now := t.now()
	t.lastReport = now

	elapsed := now.Sub(t.start)
	completed := t.completed()
	return Progress{
		Completed: completed,
		Total:     t.total,
		Processed: t.processed,
		Skipped:   t.skipped,
		Failed:    t.failed,
		Elapsed:   elapsed,
		ETA:       estimateETA(t.total, completed, t.processed, elapsed),
		Done:      completed == t.total,
	}
}

// estimateETA extrapolates the remaining time from the files processed so
// far, assuming the remaining files need processing at the observed ratio.
func estimateETA(total, completed, processed int, elapsed time.Duration) time.Duration {
	if processed == 0 || completed == 0 {
		return -1
	}
	avgPerFile := float64(elapsed) / float64(processed)
	processRatio := float64(processed) / float64(completed)
	remaining := float64(total - completed)
	return time.Duration(remaining * processRatio * avgPerFile)
}

func (t *progressTracker) stats(found, pruned int) *RunStats {
	return &RunStats{
		Found:     found,
		Processed: t.processed,
		Skipped:   t.skipped,
		Failed:    t.failed,
		Chunks:    t.chunks,
		Pruned:    pruned,
		Duration:  t.now().Sub(t.start),
	}
}
