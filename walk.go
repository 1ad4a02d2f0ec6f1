package dicer

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/esimov/dicer/utils"
)

// FsPrefs configures directory-based dicing.
type FsPrefs struct {
	// Out is the directory generated atlases and sprites.json are written
	// to; the input directory when empty.
	Out string
	// Recursive walks nested directories, joining nested sprite IDs with
	// Separator.
	Recursive bool
	// Separator joins path components into a sprite ID; "/" by default.
	Separator string
	// AtlasFormat is the format generated atlas textures are encoded in.
	AtlasFormat AtlasFormat
	// Workers bounds the concurrent texture-decoding worker pool; when
	// zero, runtime.NumCPU() is used.
	Workers int
}

var supportedExtensions = map[string]AtlasFormat{
	".png":  Png,
	".jpg":  Jpeg,
	".jpeg": Jpeg,
	".webp": Webp,
	".tga":  Tga,
	".tif":  Tiff,
	".tiff": Tiff,
}

// CollectSources walks dir (recursively, when fsPrefs.Recursive is set)
// for supported texture files and decodes each into a SourceSprite. Decode
// work runs across a bounded worker pool; the returned sprites preserve the
// deterministic path-sorted order regardless of how decoding was scheduled.
func CollectSources(dir string, fsPrefs FsPrefs) ([]SourceSprite, error) {
	paths, err := collectPaths(dir, fsPrefs.Recursive)
	if err != nil {
		return nil, err
	}

	workers := fsPrefs.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	type result struct {
		index  int
		sprite SourceSprite
		err    error
	}

	jobs := make(chan int)
	results := make(chan result)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				path := paths[idx]
				sprite, err := decodeSprite(dir, path, fsPrefs.Separator)
				results <- result{index: idx, sprite: sprite, err: err}
			}
		}()
	}

	go func() {
		for i := range paths {
			jobs <- i
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	sprites := make([]SourceSprite, len(paths))
	for r := range results {
		if r.err != nil {
			return nil, r.err
		}
		sprites[r.index] = r.sprite
	}
	return sprites, nil
}

// collectPaths walks dir and returns supported texture file paths in
// deterministic, lexically sorted order.
func collectPaths(dir string, recursive bool) ([]string, error) {
	var paths []string
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, ioErr("Failed to read directory.", err)
	}

	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if !recursive {
				continue
			}
			nested, err := collectPaths(full, recursive)
			if err != nil {
				return nil, err
			}
			paths = append(paths, nested...)
			continue
		}
		if _, ok := supportedExtensions[strings.ToLower(filepath.Ext(full))]; ok {
			paths = append(paths, full)
		}
	}
	return paths, nil
}

// decodeSprite reads and decodes a single texture file into a SourceSprite
// with an ID derived from its path relative to root.
func decodeSprite(root, path, separator string) (SourceSprite, error) {
	format := supportedExtensions[strings.ToLower(filepath.Ext(path))]

	if contentType, err := utils.DetectFileContentType(path); err == nil {
		if mime, ok := contentType.(string); ok && !strings.HasPrefix(mime, "image/") && mime != "application/octet-stream" {
			return SourceSprite{}, &Error{Kind: Image, Msg: "File extension doesn't match its content: " + path}
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return SourceSprite{}, ioErr("Failed to open source texture.", err)
	}
	defer f.Close()

	tex, err := DecodeTextureFormat(f, format)
	if err != nil {
		return SourceSprite{}, err
	}

	return SourceSprite{ID: evalSpriteID(root, path, separator), Texture: tex}, nil
}

// evalSpriteID derives a sprite ID from path, stripping root's prefix and
// the file extension, then joining the remaining path components with
// separator. evalSpriteID(root="/foo/bar", path="/foo/bar/img.png", "/")
// yields "img"; evalSpriteID(root="/foo", ...) yields "bar/img";
// evalSpriteID(root="/", ...) yields "foo/bar/img".
func evalSpriteID(root, path, separator string) string {
	trimmed := strings.TrimSuffix(path, filepath.Ext(path))

	rootParts := splitPath(root)
	pathParts := splitPath(trimmed)

	skip := len(rootParts)
	if skip > len(pathParts) {
		skip = len(pathParts)
	}
	return strings.Join(pathParts[skip:], separator)
}

func splitPath(p string) []string {
	clean := filepath.Clean(p)
	if clean == "." || clean == string(filepath.Separator) {
		return nil
	}
	parts := strings.Split(clean, string(filepath.Separator))
	var out []string
	for _, part := range parts {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// WriteAtlases encodes atlases to outDir, named atlas_{index}.{ext}.
func WriteAtlases(atlases []Texture, outDir string, format AtlasFormat) error {
	for i, tex := range atlases {
		name := filepath.Join(outDir, "atlas_"+strconv.Itoa(i)+"."+format.Extension())
		f, err := os.Create(name)
		if err != nil {
			return ioErr("Failed to create atlas file.", err)
		}
		err = EncodeTexture(f, format, tex)
		closeErr := f.Close()
		if err != nil {
			return err
		}
		if closeErr != nil {
			return ioErr("Failed to close atlas file.", closeErr)
		}
	}
	return nil
}

