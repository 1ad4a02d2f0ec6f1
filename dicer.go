package dicer

import "github.com/cespare/xxhash/v2"

// dice chops each source sprite's texture into fixed-size square units,
// discards fully-transparent units when requested, and hashes the
// unpadded content of every retained unit.
//
// Preconditions (fail with Spec): prefs.UnitSize >= 1 and prefs.Padding <=
// prefs.UnitSize. Dicing itself is otherwise total: it never fails on a
// well-formed but degenerate texture (1x1, all-transparent, smaller than a
// unit).
func dice(sources []SourceSprite, prefs Prefs) ([]*dicedTexture, error) {
	if prefs.UnitSize == 0 {
		return nil, specErr("Unit size can't be zero.")
	}
	if prefs.Padding > prefs.UnitSize {
		return nil, specErr("Padding can't be larger than unit size.")
	}

	out := make([]*dicedTexture, len(sources))
	for i, src := range sources {
		out[i] = diceOne(&src, prefs)
	}
	return out, nil
}

// diceOne dices a single source sprite's texture, scanning the unit grid
// in column-major (x outer, y inner) order for deterministic output.
func diceOne(src *SourceSprite, prefs Prefs) *dicedTexture {
	size := prefs.UnitSize
	tex := &src.Texture

	countX := ceilDiv(tex.Width, size)
	countY := ceilDiv(tex.Height, size)

	dt := &dicedTexture{
		id:     src.ID,
		pivot:  src.Pivot,
		units:  make([]dicedUnit, 0, countX*countY),
		unique: make(map[uint64]struct{}),
	}

	for gx := uint32(0); gx < countX; gx++ {
		for gy := uint32(0); gy < countY; gy++ {
			unit, ok := diceAt(gx, gy, tex, prefs)
			if !ok {
				continue
			}
			dt.units = append(dt.units, unit)
			dt.unique[unit.hash] = struct{}{}
		}
	}
	return dt
}

// diceAt produces the unit at grid position (gx, gy), or reports ok=false
// when the unit is fully transparent and trimming is enabled.
func diceAt(gx, gy uint32, tex *Texture, prefs Prefs) (dicedUnit, bool) {
	size := int32(prefs.UnitSize)
	pad := int32(prefs.Padding)

	core := IRect{
		X:      int32(gx) * size,
		Y:      int32(gy) * size,
		Width:  uint32(size),
		Height: uint32(size),
	}

	corePixels := samplePixels(core, tex)
	if prefs.TrimTransparent && allTransparent(corePixels) {
		return dicedUnit{}, false
	}

	rect := cropToBounds(core, tex)
	padded := IRect{
		X:      core.X - pad,
		Y:      core.Y - pad,
		Width:  uint32(size + 2*pad),
		Height: uint32(size + 2*pad),
	}
	paddedPixels := samplePixels(padded, tex)

	return dicedUnit{
		rect:   rect,
		pixels: paddedPixels,
		hash:   hashPixels(corePixels),
	}, true
}

// samplePixels reads rect from tex, clamping out-of-bounds coordinates to
// the nearest in-bounds pixel (edge replication). The returned buffer
// always has rect.Width*rect.Height elements regardless of clamping.
func samplePixels(rect IRect, tex *Texture) []Pixel {
	pixels := make([]Pixel, int(rect.Width)*int(rect.Height))
	idx := 0
	endY := rect.Y + int32(rect.Height)
	endX := rect.X + int32(rect.Width)
	for y := rect.Y; y < endY; y++ {
		for x := rect.X; x < endX; x++ {
			pixels[idx] = tex.at(x, y)
			idx++
		}
	}
	return pixels
}

// cropToBounds clamps an integer-space rect to the source texture bounds,
// producing the unit's stored (pixel-space) rect; width/height may be
// smaller than the requested size along the right/bottom edges.
func cropToBounds(rect IRect, tex *Texture) URect {
	x := uint32(0)
	if rect.X > 0 {
		x = uint32(rect.X)
	}
	y := uint32(0)
	if rect.Y > 0 {
		y = uint32(rect.Y)
	}
	width := rect.Width
	if x+width > tex.Width {
		width = tex.Width - x
	}
	height := rect.Height
	if y+height > tex.Height {
		height = tex.Height - y
	}
	return URect{X: x, Y: y, Width: width, Height: height}
}

func allTransparent(pixels []Pixel) bool {
	for _, p := range pixels {
		if !p.transparent() {
			return false
		}
	}
	return true
}

// hashPixels computes a 64-bit content hash over a unit's unpadded core
// pixels. Padding is never hashed, so the same interior content on
// different backgrounds deduplicates identically.
func hashPixels(pixels []Pixel) uint64 {
	d := xxhash.New()
	buf := make([]byte, 4*len(pixels))
	for i, p := range pixels {
		buf[4*i] = p.R
		buf[4*i+1] = p.G
		buf[4*i+2] = p.B
		buf[4*i+3] = p.A
	}
	_, _ = d.Write(buf)
	return d.Sum64()
}

func ceilDiv(a, b uint32) uint32 {
	return (a + b - 1) / b
}
