package dicer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarshalSprites_MatchesWireShape(t *testing.T) {
	assert := assert.New(t)

	sprites := []DicedSprite{
		{
			ID:         "foo/bar/img",
			AtlasIndex: 0,
			Vertices:   []Vertex{{X: 1, Y: -2}, {X: -3, Y: 4.525}},
			Uvs:        []UV{{U: 0.1, V: 0.2}, {U: 0.3, V: 0.4}},
			Indices:    []uint64{1, 2, 3},
			Rect:       Rect{X: 0.5, Y: 0.5, Width: 100, Height: 50},
		},
	}

	data, err := MarshalSprites(sprites)
	assert.NoError(err)
	assert.Contains(string(data), `"id": "foo/bar/img"`)
	assert.Contains(string(data), `"atlas": 0`)
	assert.Contains(string(data), `"x": 1`)
	assert.Contains(string(data), `"u": 0.1`)
	assert.Contains(string(data), `"width": 100`)
}

func TestMarshalSprites_RoundTripsThroughJSON(t *testing.T) {
	assert := assert.New(t)

	original := []DicedSprite{
		{
			ID:         "img",
			AtlasIndex: 1,
			Vertices:   []Vertex{{X: -1, Y: 2}},
			Uvs:        []UV{{U: 0.01, V: 0.02}},
			Indices:    []uint64{0},
			Rect:       Rect{X: -1.5, Y: 0, Width: 0, Height: 10.1},
		},
	}

	data, err := MarshalSprites(original)
	assert.NoError(err)

	roundTripped, err := UnmarshalSprites(data)
	assert.NoError(err)
	assert.Equal(original, roundTripped)
}
