// Package partition computes the geometric decomposition of a source image:
// how many tiles it reduces to, how many workers to run, and how the tile
// grid splits into sections, each section being one schedulable unit of work.
package partition

// Plan is the full geometry of one reduction run. All divisions truncate;
// remainder rows and columns at the right and bottom edges are dropped, first
// at the tile level and again at the section level.
type Plan struct {
	// TilesX and TilesY are the output dimensions in pixels (one per tile).
	TilesX, TilesY int

	// Workers is the number of pool workers, at least 1.
	Workers int

	// SectionTilesX and SectionTilesY are the tiles per section along each
	// axis.
	SectionTilesX, SectionTilesY int

	// SectionW and SectionH are the section dimensions in source pixels.
	SectionW, SectionH int

	// SectionsX and SectionsY count sections along each axis. Either may be
	// zero when the image is smaller than one section; such a plan schedules
	// no work.
	SectionsX, SectionsY int

	// Channels is the pixel channel count, carried for buffer sizing.
	Channels int

	// TaskPixels is the source pixel count of one section, used for the
	// queue-length ETA estimate.
	TaskPixels int

	// TotalPixels is the source pixel count of the whole image.
	TotalPixels int
}

// Tasks returns the number of sections the plan schedules.
func (p Plan) Tasks() int { return p.SectionsX * p.SectionsY }

// Compute builds the plan for a width×height image with the given channel
// count, per-axis reduction factors and worker-count hint (typically the
// host's logical CPU count).
//
// The worker policy: round the hint up to even, then shave pairs off while
// the count exceeds either tile dimension (more workers than tiles along an
// axis would starve), bottoming out at a single worker. Section tile spans
// start at tiles/workers and are halved while they exceed factor² on their
// axis, which keeps any one task from dominating wall-clock time.
func Compute(width, height, channels, fx, fy, hint int) Plan {
	p := Plan{
		TilesX:      width / fx,
		TilesY:      height / fy,
		Channels:    channels,
		TotalPixels: width * height,
	}

	workers := hint
	if workers%2 != 0 {
		workers++
	}
	for workers > p.TilesX || workers > p.TilesY {
		workers -= 2
		if workers <= 0 {
			break
		}
	}
	if workers <= 0 {
		workers = 1
	}
	p.Workers = workers

	p.SectionTilesX = p.TilesX / workers
	for p.SectionTilesX > fx*fx {
		p.SectionTilesX /= 2
	}
	p.SectionTilesY = p.TilesY / workers
	for p.SectionTilesY > fy*fy {
		p.SectionTilesY /= 2
	}

	p.SectionW = p.SectionTilesX * fx
	p.SectionH = p.SectionTilesY * fy
	if p.SectionW > 0 {
		p.SectionsX = width / p.SectionW
	}
	if p.SectionH > 0 {
		p.SectionsY = height / p.SectionH
	}
	p.TaskPixels = p.SectionW * p.SectionH

	return p
}
