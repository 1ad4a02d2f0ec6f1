package dicer

// Pixel is a texture pixel represented as four 8-bit RGBA components.
// Equality is componentwise; the zero value is fully transparent black.
type Pixel struct {
	R, G, B, A uint8
}

// transparent reports whether the pixel has zero alpha.
func (p Pixel) transparent() bool {
	return p.A == 0
}

// Texture is a set of pixels forming a sprite or atlas texture, indexed
// row-major with the top-left pixel first.
type Texture struct {
	Width  uint32
	Height uint32
	Pixels []Pixel
}

// at returns the pixel at (x, y), coordinates clamped to the texture
// bounds (edge replication), matching the padding semantics of the dicer.
func (t *Texture) at(x, y int32) Pixel {
	cx := saturate(x, int32(t.Width)-1)
	cy := saturate(y, int32(t.Height)-1)
	return t.Pixels[int(cy)*int(t.Width)+int(cx)]
}

func (t *Texture) set(x, y uint32, p Pixel) {
	t.Pixels[int(y)*int(t.Width)+int(x)] = p
}

func saturate(n, max int32) int32 {
	switch {
	case n < 0:
		return 0
	case n > max:
		return max
	default:
		return n
	}
}

// newTexture allocates a texture of the given dimensions, pixels
// zero-valued (fully transparent black).
func newTexture(width, height uint32) Texture {
	return Texture{
		Width:  width,
		Height: height,
		Pixels: make([]Pixel, width*height),
	}
}

// Pivot is a relative offset from a sprite's top-left corner, expressed as
// fractions of the sprite's width/height. (0,0) is top-left, (0.5,0.5) is
// center, (1,1) is bottom-right. Values outside [0,1] are legal.
type Pivot struct {
	X, Y float32
}

// SourceSprite is an input sprite to a dicing operation.
type SourceSprite struct {
	// ID is the sprite's unique identifier among others in the same call.
	ID string
	// Texture holds all the pixels of the sprite.
	Texture Texture
	// Pivot overrides Prefs.Pivot for this sprite, when non-nil.
	Pivot *Pivot
}

// URect is a pixel-space rectangle on an atlas or source texture.
type URect struct {
	X, Y          uint32
	Width, Height uint32
}

// IRect is a transient pixel-space rectangle permitting negative offsets,
// used during padded-unit math before clamping to source bounds.
type IRect struct {
	X, Y          int32
	Width, Height uint32
}

// FRect is a UV rectangle on an atlas (normalized 0..1), or a unit
// rectangle in world-space units.
type FRect struct {
	X, Y, Width, Height float32
}

// Rect is a sprite's bounding rectangle in world-space units.
type Rect struct {
	X, Y, Width, Height float32
}

// Vertex is a mesh vertex position in local space, in conventional units.
type Vertex struct {
	X, Y float32
}

// UV is a texture coordinate on an atlas, normalized to 0..1.
type UV struct {
	U, V float32
}

// DicedSprite is the per-sprite mesh product of a dicing operation.
type DicedSprite struct {
	// ID equals the originating SourceSprite's ID.
	ID string
	// AtlasIndex indexes into Artifacts.Atlases.
	AtlasIndex uint64
	Vertices   []Vertex
	Uvs        []UV
	// Indices has length 6*quads, two triangles per quad.
	Indices []uint64
	Rect    Rect
	Pivot   Pivot
}

// Artifacts are the final products of a dicing operation.
type Artifacts struct {
	Atlases []Texture
	Sprites []DicedSprite
}

// Progress is invoked synchronously at pipeline checkpoints with a ratio
// in [0,1] and a free-form activity label. Implementations must not block
// indefinitely or mutate the pipeline's inputs.
type Progress func(ratio float32, activity string)

// Prefs configures a dicing operation. Use DefaultPrefs for sane defaults.
type Prefs struct {
	// UnitSize is the side, in pixels, of a diced square unit. Must be >= 1.
	UnitSize uint32
	// Padding is the extra pixel border sampled (with edge clamping) around
	// each unit before it is baked into an atlas. Must be <= UnitSize.
	Padding uint32
	// UvInset is the fractional contraction applied to each unit's UV rect,
	// in 0..0.5.
	UvInset float32
	// TrimTransparent drops fully-transparent units before packing.
	TrimTransparent bool
	// AtlasSizeLimit is the max side, in pixels, of any atlas. Must be >= 1.
	AtlasSizeLimit uint32
	// AtlasSquare forces atlas width == height.
	AtlasSquare bool
	// AtlasPot forces both atlas sides to the same power of two.
	AtlasPot bool
	// Ppu is the pixels-per-world-space-unit ratio. Must be > 0.
	Ppu float32
	// Pivot is the fallback pivot used when a source sprite has none.
	Pivot Pivot
	// OnProgress, when non-nil, is invoked at pipeline checkpoints.
	OnProgress Progress
}

// DefaultPrefs returns the engine's default preferences, matching spec.md:
// 64px units, 2px padding, no UV inset, transparent-unit trimming enabled,
// a 2048px atlas limit, free (non-square, non-POT) atlas sizing, 100 PPU
// and a top-left pivot.
func DefaultPrefs() Prefs {
	return Prefs{
		UnitSize:        64,
		Padding:         2,
		UvInset:         0,
		TrimTransparent: true,
		AtlasSizeLimit:  2048,
		AtlasSquare:     false,
		AtlasPot:        false,
		Ppu:             100,
		Pivot:           Pivot{X: 0, Y: 0},
	}
}

// dicedUnit is a chunk diced from a source texture.
type dicedUnit struct {
	// rect is the unit's position/dimensions inside the source texture,
	// cropped to source bounds.
	rect URect
	// pixels is the unit's padded pixel block, including the border
	// sampled from the source.
	pixels []Pixel
	// hash is the 64-bit content hash of the unpadded core pixels.
	hash uint64
}

// dicedTexture is the diced product of one SourceSprite.
type dicedTexture struct {
	id    string
	pivot *Pivot
	units []dicedUnit
	// unique holds the distinct hashes among this texture's units.
	unique map[uint64]struct{}
}

// atlas is the packed product of a group of dicedTextures.
type atlas struct {
	texture Texture
	// rects maps a unit's content hash to its UV rect on this atlas.
	rects map[uint64]FRect
	// packed holds the diced textures packed into this atlas, in admission
	// order.
	packed []*dicedTexture
}
