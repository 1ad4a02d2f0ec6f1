package dicer

import (
	"image/jpeg"
	"os"
	"path/filepath"
	"strconv"

	"github.com/disintegration/imaging"
)

// previewMaxSide bounds the longest side of a generated debug preview.
const previewMaxSide = 512

// WriteDebugPreviews downscales each atlas to a quick-look JPEG for humans
// inspecting pack quality, written alongside the full-resolution atlases
// as atlas_{index}_preview.jpg.
func WriteDebugPreviews(atlases []Texture, outDir string) error {
	for i, tex := range atlases {
		img := textureToNRGBA(tex)

		width, height := previewDimensions(int(tex.Width), int(tex.Height))
		preview := imaging.Resize(img, width, height, imaging.Lanczos)

		name := filepath.Join(outDir, "atlas_"+strconv.Itoa(i)+"_preview.jpg")
		f, err := os.Create(name)
		if err != nil {
			return ioErr("Failed to create atlas preview file.", err)
		}
		err = jpeg.Encode(f, preview, &jpeg.Options{Quality: 80})
		closeErr := f.Close()
		if err != nil {
			return imageErr("Failed to encode atlas preview.", err)
		}
		if closeErr != nil {
			return ioErr("Failed to close atlas preview file.", closeErr)
		}
	}
	return nil
}

// previewDimensions scales (w, h) down so its longest side is at most
// previewMaxSide, preserving aspect ratio. Atlases already within bounds
// are left untouched (imaging.Resize treats 0 as "keep aspect").
func previewDimensions(w, h int) (int, int) {
	if w <= previewMaxSide && h <= previewMaxSide {
		return w, h
	}
	if w >= h {
		return previewMaxSide, 0
	}
	return 0, previewMaxSide
}
