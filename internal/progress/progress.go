// Package progress reports elapsed time and an ETA for a running reduction.
// Reports are throttled so a hot dequeue loop can sample freely.
package progress

import (
	"fmt"
	"io"
	"time"
)

// DefaultInterval is the minimum gap between two printed reports.
const DefaultInterval = 5 * time.Second

// Tracker holds the timing state for one run. It is a plain value owned by
// the pipeline; the worker pool samples it under the queue lock, so no
// internal synchronization is needed.
type Tracker struct {
	out         io.Writer
	interval    time.Duration
	totalPixels int
	taskPixels  int

	start       time.Time
	lastElapsed time.Time
	lastETA     time.Time
}

// NewTracker creates a tracker writing to out. totalPixels is the source
// pixel count; taskPixels is the pixel count of one queued task, used to
// estimate remaining work from the queue length.
func NewTracker(out io.Writer, totalPixels, taskPixels int) *Tracker {
	now := time.Now()
	return &Tracker{
		out:         out,
		interval:    DefaultInterval,
		totalPixels: totalPixels,
		taskPixels:  taskPixels,
		start:       now,
		lastElapsed: now,
		lastETA:     now,
	}
}

// Sample reports elapsed time and the ETA implied by queued pending tasks.
// Called once per dequeue, from inside the queue lock.
func (t *Tracker) Sample(queued int) {
	t.ReportElapsed()
	t.EstimateTimeLeft(queued * t.taskPixels)
}

// ReportElapsed prints the wall-clock time since the tracker was created, at
// most once per interval.
func (t *Tracker) ReportElapsed() {
	now := time.Now()
	if now.Sub(t.lastElapsed) < t.interval {
		return
	}
	t.lastElapsed = now
	fmt.Fprintf(t.out, "[domscale] elapsed %s\n", clock(now.Sub(t.start)))
}

// EstimateTimeLeft prints the projected time to finish pixelsLeft pixels at
// the throughput observed so far, at most once per interval. pixelsLeft is a
// queue-length approximation, not an exact count; the line is informational.
func (t *Tracker) EstimateTimeLeft(pixelsLeft int) {
	now := time.Now()
	if now.Sub(t.lastETA) < t.interval {
		return
	}
	t.lastETA = now

	elapsed := now.Sub(t.start).Seconds()
	done := t.totalPixels - pixelsLeft
	if elapsed <= 0 || done <= 0 {
		return
	}
	perSecond := float64(done) / elapsed
	eta := time.Duration(float64(pixelsLeft) / perSecond * float64(time.Second))
	fmt.Fprintf(t.out, "[domscale] eta %s\n", clock(eta))
}

// clock formats a duration as HH:MM:SS.
func clock(d time.Duration) string {
	s := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s/60)%60, s%60)
}
