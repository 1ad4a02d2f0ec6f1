package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/esimov/dicer"
	"github.com/esimov/dicer/utils"
)

const helpBanner = `
Sprite dicing engine: chops directories of 2D sprite textures into atlases
plus per-sprite mesh data.

Usage:
  dicer -in <dir> [flags]

`

func main() {
	var (
		in           = flag.String("in", "", "Input directory containing source textures")
		out          = flag.String("out", "", "Output directory (defaults to the input directory)")
		recursive    = flag.Bool("recursive", false, "Recurse into subdirectories")
		separator    = flag.String("separator", "/", "Separator used to join nested sprite IDs")
		format       = flag.String("format", "png", "Atlas output format: png, jpeg, webp, tga, tiff")
		size         = flag.Uint("size", 64, "Unit size, in pixels")
		pad          = flag.Uint("pad", 2, "Padding sampled around each unit, in pixels")
		inset        = flag.Float64("inset", 0, "UV inset, in 0..0.5")
		trim         = flag.Bool("trim", true, "Drop fully-transparent units")
		limit        = flag.Uint("limit", 2048, "Max atlas side, in pixels")
		square       = flag.Bool("square", false, "Force square atlases")
		pot          = flag.Bool("pot", false, "Force power-of-two atlases")
		ppu          = flag.Float64("ppu", 100, "Pixels per world-space unit")
		pivotX       = flag.Float64("pivot-x", 0, "Fallback pivot X, in 0..1")
		pivotY       = flag.Float64("pivot-y", 0, "Fallback pivot Y, in 0..1")
		conc         = flag.Int("conc", 0, "Decode worker concurrency (defaults to NumCPU)")
		debugPreview = flag.Bool("debug-preview", false, "Write a downscaled JPEG preview alongside each atlas")
	)
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, helpBanner)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, utils.DecorateText("Error: -in is required", utils.ErrorMessage))
		flag.Usage()
		os.Exit(1)
	}

	atlasFormat, err := parseFormat(*format)
	if err != nil {
		exitErr(err)
	}

	fsPrefs := dicer.FsPrefs{
		Out:         *out,
		Recursive:   *recursive,
		Separator:   *separator,
		AtlasFormat: atlasFormat,
		Workers:     *conc,
	}
	outDir := fsPrefs.Out
	if outDir == "" {
		outDir = *in
	}

	spinner := utils.NewSpinner(" Dicing sprites...", 100*time.Millisecond, true)
	spinner.Start()
	start := time.Now()

	prefs := dicer.DefaultPrefs()
	prefs.UnitSize = uint32(*size)
	prefs.Padding = uint32(*pad)
	prefs.UvInset = float32(*inset)
	prefs.TrimTransparent = *trim
	prefs.AtlasSizeLimit = uint32(*limit)
	prefs.AtlasSquare = *square
	prefs.AtlasPot = *pot
	prefs.Ppu = float32(*ppu)
	prefs.Pivot = dicer.Pivot{X: float32(*pivotX), Y: float32(*pivotY)}
	prefs.OnProgress = func(ratio float32, activity string) {
		spinner.StopMsg = fmt.Sprintf(" %s (%.0f%%)", activity, ratio*100)
	}

	sources, err := dicer.CollectSources(*in, fsPrefs)
	if err != nil {
		spinner.Stop()
		exitErr(err)
	}

	artifacts, err := dicer.Dice(sources, prefs)
	if err != nil {
		spinner.Stop()
		exitErr(err)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		spinner.Stop()
		exitErr(err)
	}
	if err := dicer.WriteAtlases(artifacts.Atlases, outDir, atlasFormat); err != nil {
		spinner.Stop()
		exitErr(err)
	}
	if err := dicer.WriteSprites(artifacts.Sprites, outDir); err != nil {
		spinner.Stop()
		exitErr(err)
	}
	if *debugPreview {
		if err := dicer.WriteDebugPreviews(artifacts.Atlases, outDir); err != nil {
			spinner.Stop()
			exitErr(err)
		}
	}

	spinner.Stop()
	elapsed := utils.FormatTime(time.Since(start))
	msg := fmt.Sprintf(
		"Diced %d sprites into %d atlas(es) in %s",
		len(artifacts.Sprites), len(artifacts.Atlases), elapsed,
	)
	fmt.Println(utils.DecorateText(msg, utils.SuccessMessage))
}

func parseFormat(s string) (dicer.AtlasFormat, error) {
	switch strings.ToLower(s) {
	case "png":
		return dicer.Png, nil
	case "jpeg", "jpg":
		return dicer.Jpeg, nil
	case "webp":
		return dicer.Webp, nil
	case "tga":
		return dicer.Tga, nil
	case "tiff", "tif":
		return dicer.Tiff, nil
	default:
		return 0, fmt.Errorf("unrecognized atlas format %q", s)
	}
}

func exitErr(err error) {
	fmt.Fprintln(os.Stderr, utils.DecorateText("Error: "+err.Error(), utils.ErrorMessage))
	os.Exit(1)
}
