package dicer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvalSpriteID_StripsRootAndExtension(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("img", evalSpriteID("/foo/bar", "/foo/bar/img.png", "/"))
	assert.Equal("bar/img", evalSpriteID("/foo", "/foo/bar/img.png", "/"))
	assert.Equal("foo/bar/img", evalSpriteID("/", "/foo/bar/img.png", "/"))
}

func TestEvalSpriteID_CustomSeparator(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("bar-img", evalSpriteID("/foo", "/foo/bar/img.png", "-"))
}

func TestCollectSources_DecodesSupportedTexturesWithDerivedIDs(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "a.png"), solidTexture(2, 2, blue))

	sub := filepath.Join(dir, "nested")
	assert.NoError(os.Mkdir(sub, 0o755))
	writeTestPNG(t, filepath.Join(sub, "b.png"), solidTexture(2, 2, red))

	sources, err := CollectSources(dir, FsPrefs{Recursive: true, Separator: "/"})
	assert.NoError(err)
	assert.Len(sources, 2)

	ids := map[string]bool{}
	for _, s := range sources {
		ids[s.ID] = true
	}
	assert.True(ids["a"])
	assert.True(ids["nested/b"])
}

func TestCollectSources_NonRecursiveSkipsSubdirectories(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "a.png"), solidTexture(1, 1, blue))
	sub := filepath.Join(dir, "nested")
	assert.NoError(os.Mkdir(sub, 0o755))
	writeTestPNG(t, filepath.Join(sub, "b.png"), solidTexture(1, 1, red))

	sources, err := CollectSources(dir, FsPrefs{Recursive: false, Separator: "/"})
	assert.NoError(err)
	assert.Len(sources, 1)
	assert.Equal("a", sources[0].ID)
}

func writeTestPNG(t *testing.T, path string, tex Texture) {
	t.Helper()
	f, err := os.Create(path)
	assert.NoError(t, err)
	defer f.Close()
	assert.NoError(t, EncodeTexture(f, Png, tex))
}
