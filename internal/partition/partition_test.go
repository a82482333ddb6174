package partition

import "testing"

func TestComputeTileCounts(t *testing.T) {
	p := Compute(1920, 1080, 3, 8, 8, 4)
	if p.TilesX != 240 || p.TilesY != 135 {
		t.Errorf("tiles: got %dx%d, want 240x135", p.TilesX, p.TilesY)
	}
	if p.TotalPixels != 1920*1080 {
		t.Errorf("total pixels: got %d", p.TotalPixels)
	}
	// Truncating division drops the remainder.
	p = Compute(10, 10, 3, 3, 3, 1)
	if p.TilesX != 3 || p.TilesY != 3 {
		t.Errorf("10/3 tiles: got %dx%d, want 3x3", p.TilesX, p.TilesY)
	}
}

func TestComputeWorkerPolicy(t *testing.T) {
	tests := []struct {
		name         string
		w, h, fx, fy int
		hint         int
		wantWorkers  int
	}{
		{"odd hint rounds up", 1000, 1000, 2, 2, 7, 8},
		{"even hint kept", 1000, 1000, 2, 2, 8, 8},
		{"hint of one becomes a pair", 1000, 1000, 2, 2, 1, 2},
		{"zero hint floors to one", 1000, 1000, 2, 2, 0, 1},
		{"shrinks to fit tile grid", 40, 1000, 8, 8, 16, 4}, // tilesX = 5
		{"single tile column", 8, 1000, 8, 8, 8, 1},         // tilesX = 1
		{"no tiles at all", 3, 3, 4, 4, 8, 1},
	}
	for _, tt := range tests {
		p := Compute(tt.w, tt.h, 3, tt.fx, tt.fy, tt.hint)
		if p.Workers != tt.wantWorkers {
			t.Errorf("%s: workers = %d, want %d", tt.name, p.Workers, tt.wantWorkers)
		}
	}
}

func TestComputeWorkerBounds(t *testing.T) {
	for hint := 0; hint <= 64; hint++ {
		for _, dims := range [][2]int{{64, 64}, {640, 480}, {17, 2000}, {8, 8}} {
			p := Compute(dims[0], dims[1], 3, 4, 4, hint)
			if p.Workers < 1 {
				t.Fatalf("dims %v hint %d: workers %d < 1", dims, hint, p.Workers)
			}
			minTiles := p.TilesX
			if p.TilesY < minTiles {
				minTiles = p.TilesY
			}
			if minTiles >= 1 && p.Workers > minTiles {
				t.Fatalf("dims %v hint %d: workers %d > min tiles %d",
					dims, hint, p.Workers, minTiles)
			}
		}
	}
}

func TestComputeSectionHalving(t *testing.T) {
	// fx = fy = 2: section tile spans must be halved until <= 4.
	p := Compute(1024, 1024, 3, 2, 2, 2)
	if p.SectionTilesX > 4 || p.SectionTilesY > 4 {
		t.Errorf("section tiles %dx%d exceed factor^2 = 4",
			p.SectionTilesX, p.SectionTilesY)
	}
	if p.SectionW != p.SectionTilesX*2 || p.SectionH != p.SectionTilesY*2 {
		t.Errorf("section pixels %dx%d inconsistent with tile spans %dx%d",
			p.SectionW, p.SectionH, p.SectionTilesX, p.SectionTilesY)
	}
	if p.TaskPixels != p.SectionW*p.SectionH {
		t.Errorf("task pixels: got %d", p.TaskPixels)
	}
}

func TestComputeDegenerateImage(t *testing.T) {
	// Smaller than one tile: zero tiles, zero sections, nothing scheduled.
	p := Compute(3, 3, 1, 4, 4, 8)
	if p.TilesX != 0 || p.TilesY != 0 {
		t.Errorf("tiles: got %dx%d, want 0x0", p.TilesX, p.TilesY)
	}
	if p.SectionsX != 0 || p.SectionsY != 0 {
		t.Errorf("sections: got %dx%d, want 0x0", p.SectionsX, p.SectionsY)
	}
	if p.Tasks() != 0 {
		t.Errorf("tasks: got %d, want 0", p.Tasks())
	}
	if p.Workers < 1 {
		t.Errorf("workers: got %d, want >= 1", p.Workers)
	}
}

func TestComputeSectionsCoverGrid(t *testing.T) {
	p := Compute(640, 480, 3, 4, 4, 4)
	if p.SectionsX < 1 || p.SectionsY < 1 {
		t.Fatalf("sections: got %dx%d", p.SectionsX, p.SectionsY)
	}
	// Sections never extend past the source image.
	if p.SectionsX*p.SectionW > 640 || p.SectionsY*p.SectionH > 480 {
		t.Errorf("sections %dx%d of %dx%d px overrun the source",
			p.SectionsX, p.SectionsY, p.SectionW, p.SectionH)
	}
	// Covered tiles never exceed the tile grid.
	if p.SectionsX*p.SectionTilesX > p.TilesX || p.SectionsY*p.SectionTilesY > p.TilesY {
		t.Errorf("covered tiles overrun the %dx%d grid", p.TilesX, p.TilesY)
	}
}
