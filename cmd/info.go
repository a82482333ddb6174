package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AnyUserName/domscale/internal/encoder"
	"github.com/AnyUserName/domscale/internal/hasher"
	"github.com/AnyUserName/domscale/internal/raster"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <image>",
	Short: "Show image dimensions, channels and content hash",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(_ *cobra.Command, args []string) error {
	path := args[0]

	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	var r *raster.Raster
	if strings.EqualFold(filepath.Ext(path), ".pxr") {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		img, err := encoder.DecodeRaw(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("decode raw %s: %w", path, err)
		}
		r = raster.FromImage(img)
	} else {
		if r, err = raster.Load(path); err != nil {
			return fmt.Errorf("load image: %w", err)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	hash, err := hasher.ContentHashReader(f, 16)
	f.Close()
	if err != nil {
		return fmt.Errorf("hash %s: %w", path, err)
	}

	fmt.Printf("  Path:      %s\n", path)
	fmt.Printf("  Pixels:    %dx%d\n", r.Width, r.Height)
	fmt.Printf("  Channels:  %d (alpha: %v)\n", r.Channels, r.Channels == 4)
	fmt.Printf("  File size: %s\n", formatBytes(st.Size()))
	fmt.Printf("  Hash:      xxh64:%s\n", hash)
	return nil
}
