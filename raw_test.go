package dicer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiceRaw_DecodesEncodesAndDices(t *testing.T) {
	assert := assert.New(t)

	var a, b bytes.Buffer
	assert.NoError(EncodeTexture(&a, Png, solidTexture(2, 2, blue)))
	assert.NoError(EncodeTexture(&b, Png, solidTexture(2, 2, red)))

	prefs := DefaultPrefs()
	prefs.UnitSize = 1
	prefs.Padding = 0
	prefs.Ppu = 1

	artifacts, err := DiceRaw([]RawSprite{
		{ID: "a", Bytes: a.Bytes(), Format: Png},
		{ID: "b", Bytes: b.Bytes(), Format: Png},
	}, prefs, Png)

	assert.NoError(err)
	assert.NotEmpty(artifacts.Atlases)
	assert.Len(artifacts.Sprites, 2)
	for _, encoded := range artifacts.Atlases {
		assert.NotEmpty(encoded)
	}
}
