package dicer

import (
	"errors"
	"image"
	"image/color"
	"io"
)

// TGA has no suitable third-party decoder/encoder anywhere among this
// engine's dependencies, unlike PNG/JPEG (stdlib), TIFF (golang.org/x/image)
// and WEBP (github.com/deepteams/webp); this is the one format carried on the
// standard library alone, limited to the uncompressed 32-bit BGRA layout
// produced by this package's own encoder.

const tgaHeaderSize = 18

// decodeTga reads an uncompressed, 32-bit BGRA TGA image (image type 2,
// top-left or bottom-left origin, no color map).
func decodeTga(r io.Reader) (image.Image, error) {
	header := make([]byte, tgaHeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}
	if header[2] != 2 {
		return nil, errors.New("dicer: only uncompressed truecolor TGA images are supported")
	}
	if header[16] != 32 {
		return nil, errors.New("dicer: only 32-bit TGA images are supported")
	}

	width := int(header[12]) | int(header[13])<<8
	height := int(header[14]) | int(header[15])<<8
	descriptor := header[17]
	topToBottom := descriptor&(1<<5) != 0

	pixels := make([]byte, width*height*4)
	if _, err := io.ReadFull(r, pixels); err != nil {
		return nil, err
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for row := 0; row < height; row++ {
		srcRow := row
		if !topToBottom {
			srcRow = height - 1 - row
		}
		for col := 0; col < width; col++ {
			off := (srcRow*width + col) * 4
			b, g, r, a := pixels[off], pixels[off+1], pixels[off+2], pixels[off+3]
			img.Set(col, row, color.NRGBA{R: r, G: g, B: b, A: a})
		}
	}
	return img, nil
}

// encodeTga writes img as an uncompressed, 32-bit BGRA TGA image with a
// top-left origin.
func encodeTga(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	header := make([]byte, tgaHeaderSize)
	header[2] = 2
	header[12] = byte(width)
	header[13] = byte(width >> 8)
	header[14] = byte(height)
	header[15] = byte(height >> 8)
	header[16] = 32
	header[17] = 1 << 5 // top-left origin
	if _, err := w.Write(header); err != nil {
		return err
	}

	pixels := make([]byte, width*height*4)
	idx := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			pixels[idx] = byte(b >> 8)
			pixels[idx+1] = byte(g >> 8)
			pixels[idx+2] = byte(r >> 8)
			pixels[idx+3] = byte(a >> 8)
			idx += 4
		}
	}
	_, err := w.Write(pixels)
	return err
}
