// Package pipeline orchestrates a reduction run: partition the source image
// into sections, reduce every section's tiles on a worker pool, then assemble
// the per-section buffers into the output raster.
package pipeline

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/AnyUserName/domscale/internal/partition"
	"github.com/AnyUserName/domscale/internal/pool"
	"github.com/AnyUserName/domscale/internal/progress"
	"github.com/AnyUserName/domscale/internal/raster"
	"github.com/AnyUserName/domscale/internal/reduce"
)

// Config holds all parameters for one reduction run.
type Config struct {
	XFactor  int
	YFactor  int
	Workers  int       // worker-count hint; 0 means runtime.NumCPU()
	Progress io.Writer // destination for elapsed/ETA lines; nil disables them
	Verbose  bool
}

// Pipeline reduces rasters according to its config.
type Pipeline struct {
	cfg Config
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Pipeline{cfg: cfg}
}

// Run reduces src and returns the output raster together with the geometry
// plan used. Sections that fail are collected and reported as one combined
// error after all others have finished; no partial output is returned then.
//
// Degenerate sources (smaller than one tile or one section) return a
// zero-filled output of the computed tile dimensions without scheduling any
// work.
func (p *Pipeline) Run(src *raster.Raster) (*raster.Raster, partition.Plan, error) {
	if src.Channels > reduce.MaxChannels {
		return nil, partition.Plan{}, fmt.Errorf(
			"%d-channel pixels exceed the %d-channel packing limit",
			src.Channels, reduce.MaxChannels)
	}

	plan := partition.Compute(src.Width, src.Height, src.Channels,
		p.cfg.XFactor, p.cfg.YFactor, p.cfg.Workers)
	out := raster.New(plan.TilesX, plan.TilesY, src.Channels)

	if plan.Tasks() == 0 {
		if p.cfg.Verbose {
			fmt.Fprintf(os.Stderr, "[domscale] %dx%d source too small for %dx%d sections, nothing to do\n",
				src.Width, src.Height, plan.SectionW, plan.SectionH)
		}
		return out, plan, nil
	}

	if p.cfg.Verbose {
		fmt.Fprintf(os.Stderr, "[domscale] %d workers, %dx%d sections of %dx%d tiles (%d tasks)\n",
			plan.Workers, plan.SectionsX, plan.SectionsY,
			plan.SectionTilesX, plan.SectionTilesY, plan.Tasks())
	}

	var tracker *progress.Tracker
	if p.cfg.Progress != nil {
		tracker = progress.NewTracker(p.cfg.Progress, plan.TotalPixels, plan.TaskPixels)
	}

	// One pre-sized buffer and one job per section; each job owns its buffer
	// slot, so workers never share destination memory.
	buffers := make([][]byte, plan.Tasks())
	workers := pool.New(plan.Workers, tracker)
	view := src.View()
	for sy := 0; sy < plan.SectionsY; sy++ {
		for sx := 0; sx < plan.SectionsX; sx++ {
			i := sy*plan.SectionsX + sx
			buffers[i] = make([]byte, plan.SectionTilesX*plan.SectionTilesY*src.Channels)
			workers.Push(&sectionJob{
				view: view.Sub(sx*plan.SectionW, sy*plan.SectionH, plan.SectionW, plan.SectionH),
				dst:  buffers[i],
				sx:   sx,
				sy:   sy,
				fx:   p.cfg.XFactor,
				fy:   p.cfg.YFactor,
			})
		}
	}

	if errs := workers.Run(); len(errs) > 0 {
		return nil, plan, fmt.Errorf("%d of %d sections failed: %w",
			len(errs), plan.Tasks(), errors.Join(errs...))
	}

	assemble(out, buffers, plan)
	return out, plan, nil
}

// sectionJob reduces one section of the source into its own output buffer.
// Exactly one worker consumes it.
type sectionJob struct {
	view   raster.View
	dst    []byte
	sx, sy int
	fx, fy int
}

// Run votes every tile of the section and writes the winning colors into the
// section buffer. A panic while reducing (a malformed job) is converted into
// this section's error so the rest of the pool keeps going.
func (j *sectionJob) Run() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("section (%d,%d): %v", j.sx, j.sy, r)
		}
	}()

	c := j.view.Channels()
	tilesX := j.view.Width() / j.fx
	tilesY := j.view.Height() / j.fy
	tilePixels := j.fx * j.fy
	scratch := make([]byte, tilePixels*c)

	for tx := 0; tx < tilesX; tx++ {
		for ty := 0; ty < tilesY; ty++ {
			j.view.CopyRect(scratch, tx*j.fx, ty*j.fy, j.fx, j.fy)
			dom := reduce.DominantColor(scratch, tilePixels, c)
			reduce.Unpack(dom, j.dst[(ty*tilesX+tx)*c:], c)
		}
	}
	return nil
}
