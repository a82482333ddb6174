package pipeline

import (
	"github.com/AnyUserName/domscale/internal/partition"
	"github.com/AnyUserName/domscale/internal/raster"
)

// assemble copies every section buffer into the output raster at its tile
// offset. It runs strictly after the pool's join barrier. Sections write
// disjoint destination ranges, so iteration order only affects trace
// reproducibility, not the result; buffers are indexed row-major by section.
func assemble(out *raster.Raster, buffers [][]byte, plan partition.Plan) {
	c := out.Channels
	rowBytes := plan.SectionTilesX * c
	for i, buf := range buffers {
		sx := i % plan.SectionsX
		sy := i / plan.SectionsX
		for ly := 0; ly < plan.SectionTilesY; ly++ {
			dst := ((sy*plan.SectionTilesY+ly)*plan.TilesX + sx*plan.SectionTilesX) * c
			copy(out.Pix[dst:dst+rowBytes], buf[ly*rowBytes:(ly+1)*rowBytes])
		}
	}
}
