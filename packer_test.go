package dicer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPack_TwoDistinctUnitsFitOneAtlasWithLimitTwo(t *testing.T) {
	assert := assert.New(t)

	red1x1 := solidTexture(1, 1, red)
	blue1x1 := solidTexture(1, 1, blue)

	prefs := DefaultPrefs()
	prefs.UnitSize = 1
	prefs.Padding = 0
	prefs.AtlasSizeLimit = 2

	diced, err := dice([]SourceSprite{
		{ID: "r", Texture: red1x1},
		{ID: "b", Texture: blue1x1},
	}, prefs)
	assert.NoError(err)

	atlases, err := pack(diced, prefs)
	assert.NoError(err)
	assert.Len(atlases, 1)
	assert.Len(atlases[0].rects, 2)
}

func TestPack_LimitOneForcesTwoAtlases(t *testing.T) {
	assert := assert.New(t)

	prefs := DefaultPrefs()
	prefs.UnitSize = 1
	prefs.Padding = 0
	prefs.AtlasSizeLimit = 1

	diced, err := dice([]SourceSprite{
		{ID: "r", Texture: solidTexture(1, 1, red)},
		{ID: "b", Texture: solidTexture(1, 1, blue)},
	}, prefs)
	assert.NoError(err)

	atlases, err := pack(diced, prefs)
	assert.NoError(err)
	assert.Len(atlases, 2)
}

func TestPack_SharedPixelsGroupIntoOneAtlasWithThreeUniqueUnits(t *testing.T) {
	assert := assert.New(t)

	// 2x2 B G / R T
	a := newTexture(2, 2)
	a.set(0, 0, blue)
	a.set(1, 0, green)
	a.set(0, 1, red)
	a.set(1, 1, clear)

	// 2x2 B T / G R
	b := newTexture(2, 2)
	b.set(0, 0, blue)
	b.set(1, 0, clear)
	b.set(0, 1, green)
	b.set(1, 1, red)

	prefs := DefaultPrefs()
	prefs.UnitSize = 1
	prefs.Padding = 0

	diced, err := dice([]SourceSprite{
		{ID: "a", Texture: a},
		{ID: "b", Texture: b},
	}, prefs)
	assert.NoError(err)

	atlases, err := pack(diced, prefs)
	assert.NoError(err)
	assert.Len(atlases, 1)
	assert.Len(atlases[0].rects, 3)
}

func TestPack_TotalUniqueCountAcrossAtlas(t *testing.T) {
	assert := assert.New(t)

	// 4x4 of diagonal stripes cycling red, green, blue: 3 unique colors.
	rgb4x4 := newTexture(4, 4)
	palette := []Pixel{red, green, blue}
	for y := uint32(0); y < 4; y++ {
		for x := uint32(0); x < 4; x++ {
			rgb4x4.set(x, y, palette[(x+y)%3])
		}
	}

	// 4x4 with 16 distinct pixels.
	distinct := newTexture(4, 4)
	i := 0
	for y := uint32(0); y < 4; y++ {
		for x := uint32(0); x < 4; x++ {
			distinct.set(x, y, Pixel{R: uint8(i), G: uint8(i + 1), B: uint8(i + 2), A: 255})
			i++
		}
	}

	prefs := DefaultPrefs()
	prefs.UnitSize = 1
	prefs.Padding = 0

	diced, err := dice([]SourceSprite{
		{ID: "rgb", Texture: rgb4x4},
		{ID: "distinct", Texture: distinct},
	}, prefs)
	assert.NoError(err)
	assert.LessOrEqual(len(diced[0].unique), 3)
	assert.Len(diced[1].unique, 16)

	atlases, err := pack(diced, prefs)
	assert.NoError(err)
	if assert.Len(atlases, 1) {
		assert.Equal(len(diced[0].unique)+16, len(atlases[0].rects))
	}
}

func TestPack_ErrsOnZeroAtlasSizeLimit(t *testing.T) {
	assert := assert.New(t)

	prefs := DefaultPrefs()
	prefs.AtlasSizeLimit = 0
	_, err := pack(nil, prefs)
	assert.Error(err)
}

func TestPack_ErrsOnOutOfRangeUvInset(t *testing.T) {
	assert := assert.New(t)

	prefs := DefaultPrefs()
	prefs.UvInset = 0.9
	_, err := pack(nil, prefs)
	assert.Error(err)
}

func TestPack_AtlasBoundsRespectLimit(t *testing.T) {
	assert := assert.New(t)

	prefs := DefaultPrefs()
	prefs.UnitSize = 1
	prefs.Padding = 0
	prefs.AtlasSizeLimit = 4

	diced, err := dice([]SourceSprite{
		{ID: "a", Texture: solidTexture(2, 2, red)},
	}, prefs)
	assert.NoError(err)

	atlases, err := pack(diced, prefs)
	assert.NoError(err)
	for _, a := range atlases {
		assert.LessOrEqual(a.texture.Width, prefs.AtlasSizeLimit)
		assert.LessOrEqual(a.texture.Height, prefs.AtlasSizeLimit)
	}
}

func TestPack_SquareForcesEqualDimensions(t *testing.T) {
	assert := assert.New(t)

	prefs := DefaultPrefs()
	prefs.UnitSize = 1
	prefs.Padding = 0
	prefs.AtlasSquare = true

	diced, err := dice([]SourceSprite{
		{ID: "a", Texture: solidTexture(3, 1, red)},
	}, prefs)
	assert.NoError(err)

	atlases, err := pack(diced, prefs)
	assert.NoError(err)
	assert.Equal(atlases[0].texture.Width, atlases[0].texture.Height)
}

func TestPack_PotForcesPowerOfTwoDimensions(t *testing.T) {
	assert := assert.New(t)

	prefs := DefaultPrefs()
	prefs.UnitSize = 1
	prefs.Padding = 0
	prefs.AtlasPot = true

	diced, err := dice([]SourceSprite{
		{ID: "a", Texture: solidTexture(3, 1, red)},
	}, prefs)
	assert.NoError(err)

	atlases, err := pack(diced, prefs)
	assert.NoError(err)
	assert.True(isPowerOfTwo(atlases[0].texture.Width))
}

func isPowerOfTwo(n uint32) bool {
	return n != 0 && n&(n-1) == 0
}
