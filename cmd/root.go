package cmd

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/AnyUserName/domscale/internal/encoder"
	"github.com/AnyUserName/domscale/internal/hasher"
	"github.com/AnyUserName/domscale/internal/partition"
	"github.com/AnyUserName/domscale/internal/pipeline"
	"github.com/AnyUserName/domscale/internal/raster"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
	workers int
	quality int
)

var rootCmd = &cobra.Command{
	Use:   "domscale <x_factor> <y_factor> <in_image> <out_image>",
	Short: "Pixel-art downscaler driven by per-tile dominant colors",
	Long: `domscale shrinks an image by an integer factor per axis, replacing each
x_factor×y_factor tile with the color that appears most often inside it —
a majority vote, not an average, so hard pixel-art edges stay hard.

Tiles are grouped into sections and reduced in parallel by a fixed pool of
workers. With both factors at 1 the decoded image is written back unchanged.

Inputs: png, jpg, jpeg, gif, webp, bmp, tiff. The output format follows the
output file extension (png, jpg, webp, pxr); anything else falls back to png.`,
	Version: version,
	Args:    cobra.ExactArgs(4),
	RunE:    runReduce,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.Flags().IntVarP(&workers, "workers", "w", 0, "worker-count hint (0 = NumCPU)")
	rootCmd.Flags().IntVarP(&quality, "quality", "q", 0, "encode quality 1-100 (0 = format default)")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"domscale %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[domscale] "+format+"\n", args...)
	}
}

func runReduce(cmd *cobra.Command, args []string) error {
	fx, err := parseFactor(args[0], "x_factor")
	if err != nil {
		return err
	}
	fy, err := parseFactor(args[1], "y_factor")
	if err != nil {
		return err
	}
	inPath, outPath := args[2], args[3]
	start := time.Now()

	src, err := raster.Load(inPath)
	if err != nil {
		return fmt.Errorf("load image: %w", err)
	}
	logVerbose("input: %s (%dx%d, %d channels)", inPath, src.Width, src.Height, src.Channels)

	registry := encoder.NewRegistry()
	logVerbose("%s", registry)
	enc := registry.ForPath(outPath)

	if fx == 1 && fy == 1 {
		// Nothing to reduce; write the decoded image straight back out.
		if err := writeEncoded(enc, src, outPath); err != nil {
			return err
		}
		logVerbose("pass-through: wrote %s", outPath)
		return nil
	}

	p := pipeline.New(pipeline.Config{
		XFactor:  fx,
		YFactor:  fy,
		Workers:  workers,
		Progress: os.Stderr,
		Verbose:  verbose,
	})
	out, plan, err := p.Run(src)
	if err != nil {
		return fmt.Errorf("reduce: %w", err)
	}

	data, err := enc.Encode(out.Image(), quality)
	if err != nil {
		return fmt.Errorf("encode %s: %w", enc.Format(), err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	printReport(src, out, plan, fx, fy, outPath, data, time.Since(start))
	return nil
}

// parseFactor parses one positional reduction factor, rejecting anything
// below 1.
func parseFactor(s, name string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", name, s)
	}
	if v < 1 {
		return 0, fmt.Errorf("%s must be at least 1 (got %d)", name, v)
	}
	return v, nil
}

func writeEncoded(enc encoder.Encoder, r *raster.Raster, path string) error {
	data, err := enc.Encode(r.Image(), quality)
	if err != nil {
		return fmt.Errorf("encode %s: %w", enc.Format(), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func printReport(src, out *raster.Raster, plan partition.Plan, fx, fy int,
	outPath string, data []byte, elapsed time.Duration) {

	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════╗")
	fmt.Println("║             domscale reduce complete             ║")
	fmt.Println("╚══════════════════════════════════════════════════╝")
	fmt.Println()
	fmt.Printf("  Source:   %dx%d (%d channels)\n", src.Width, src.Height, src.Channels)
	fmt.Printf("  Output:   %dx%d  %s\n", out.Width, out.Height, outPath)
	fmt.Printf("  Factors:  %dx%d\n", fx, fy)
	fmt.Printf("  Workers:  %d\n", plan.Workers)
	fmt.Printf("  Sections: %dx%d (%d tasks)\n", plan.SectionsX, plan.SectionsY, plan.Tasks())
	fmt.Printf("  Size:     %s  (xxh %s)\n",
		formatBytes(int64(len(data))), hasher.ContentHash(data, 16))
	fmt.Printf("  Time:     %s\n", elapsed.Round(time.Millisecond))
	fmt.Println()
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
