package dicer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiceOrchestrator_ComposesAllThreeStages(t *testing.T) {
	assert := assert.New(t)

	prefs := DefaultPrefs()
	prefs.UnitSize = 1
	prefs.Padding = 0
	prefs.Ppu = 1

	artifacts, err := Dice([]SourceSprite{
		{ID: "a", Texture: solidTexture(2, 2, blue)},
		{ID: "b", Texture: solidTexture(2, 2, red)},
	}, prefs)

	assert.NoError(err)
	assert.NotEmpty(artifacts.Atlases)
	assert.Len(artifacts.Sprites, 2)
}

func TestDiceOrchestrator_ReportsFourCheckpoints(t *testing.T) {
	assert := assert.New(t)

	var activities []string
	prefs := DefaultPrefs()
	prefs.UnitSize = 1
	prefs.Padding = 0
	prefs.Ppu = 1
	prefs.OnProgress = func(ratio float32, activity string) {
		activities = append(activities, activity)
	}

	_, err := Dice([]SourceSprite{{ID: "a", Texture: solidTexture(1, 1, blue)}}, prefs)
	assert.NoError(err)
	assert.Len(activities, 4)
}

func TestDiceOrchestrator_SurfacesDicerSpecError(t *testing.T) {
	assert := assert.New(t)

	prefs := DefaultPrefs()
	prefs.UnitSize = 0

	_, err := Dice([]SourceSprite{{ID: "a", Texture: solidTexture(1, 1, blue)}}, prefs)
	assert.Error(err)
}

func TestDiceOrchestrator_SurfacesBuilderSpecError(t *testing.T) {
	assert := assert.New(t)

	prefs := DefaultPrefs()
	prefs.Ppu = 0

	_, err := Dice([]SourceSprite{{ID: "a", Texture: solidTexture(1, 1, blue)}}, prefs)
	assert.Error(err)
}

func TestDiceOrchestrator_SpritesFollowAtlasThenPackOrder(t *testing.T) {
	assert := assert.New(t)

	prefs := DefaultPrefs()
	prefs.UnitSize = 1
	prefs.Padding = 0
	prefs.Ppu = 1
	prefs.AtlasSizeLimit = 1 // forces one atlas per sprite

	artifacts, err := Dice([]SourceSprite{
		{ID: "a", Texture: solidTexture(1, 1, blue)},
		{ID: "b", Texture: solidTexture(1, 1, red)},
	}, prefs)

	assert.NoError(err)
	if assert.Len(artifacts.Sprites, 2) {
		assert.Equal("a", artifacts.Sprites[0].ID)
		assert.Equal("b", artifacts.Sprites[1].ID)
		assert.Equal(uint64(0), artifacts.Sprites[0].AtlasIndex)
		assert.Equal(uint64(1), artifacts.Sprites[1].AtlasIndex)
	}
}
