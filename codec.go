package dicer

import (
	"bufio"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/deepteams/webp"
	"golang.org/x/image/tiff"
)

// AtlasFormat names an image format an atlas texture can be encoded to.
type AtlasFormat int

const (
	Png AtlasFormat = iota
	Jpeg
	Webp
	Tga
	Tiff
)

// Extension returns the format's conventional file extension, without a
// leading dot.
func (f AtlasFormat) Extension() string {
	switch f {
	case Png:
		return "png"
	case Jpeg:
		return "jpg"
	case Webp:
		return "webp"
	case Tga:
		return "tga"
	case Tiff:
		return "tiff"
	default:
		return "png"
	}
}

// DecodeTexture reads a PNG, JPEG or TIFF image (formats that register
// themselves with the stdlib image package) and converts it to a Texture.
// Use DecodeTextureFormat for WEBP and TGA, which don't.
func DecodeTexture(r io.Reader) (Texture, error) {
	img, _, err := image.Decode(bufio.NewReader(r))
	if err != nil {
		return Texture{}, imageErr("Failed to decode source image.", err)
	}
	return imgToTexture(img), nil
}

// DecodeTextureFormat decodes an image of a known format. Images not
// already in an RGBA-family color model are converted; this never fails
// on valid image bytes of the declared format.
func DecodeTextureFormat(r io.Reader, format AtlasFormat) (Texture, error) {
	var (
		img image.Image
		err error
	)
	switch format {
	case Webp:
		img, err = webp.Decode(r)
	case Tga:
		img, err = decodeTga(r)
	default:
		img, _, err = image.Decode(bufio.NewReader(r))
	}
	if err != nil {
		return Texture{}, imageErr("Failed to decode source image.", err)
	}
	return imgToTexture(img), nil
}

// EncodeTexture writes an atlas texture in the given format.
func EncodeTexture(w io.Writer, format AtlasFormat, tex Texture) error {
	img := textureToNRGBA(tex)

	var err error
	switch format {
	case Png:
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		err = enc.Encode(w, img)
	case Jpeg:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: jpeg.DefaultQuality})
	case Webp:
		err = webp.Encode(w, img, nil)
	case Tga:
		err = encodeTga(w, img)
	case Tiff:
		err = tiff.Encode(w, img, nil)
	default:
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		err = enc.Encode(w, img)
	}
	if err != nil {
		return imageErr("Failed to encode atlas image.", err)
	}
	return nil
}

// imgToTexture flattens any image.Image into a Texture, converting through
// the RGBA color model pixel by pixel.
func imgToTexture(img image.Image) Texture {
	bounds := img.Bounds()
	width := uint32(bounds.Dx())
	height := uint32(bounds.Dy())
	tex := newTexture(width, height)

	idx := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			tex.Pixels[idx] = Pixel{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
			idx++
		}
	}
	return tex
}

// textureToNRGBA converts a Texture to a stdlib *image.NRGBA for
// consumption by the format encoders.
func textureToNRGBA(tex Texture) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, int(tex.Width), int(tex.Height)))
	for y := uint32(0); y < tex.Height; y++ {
		for x := uint32(0); x < tex.Width; x++ {
			p := tex.at(int32(x), int32(y))
			off := img.PixOffset(int(x), int(y))
			img.Pix[off] = p.R
			img.Pix[off+1] = p.G
			img.Pix[off+2] = p.B
			img.Pix[off+3] = p.A
		}
	}
	return img
}
