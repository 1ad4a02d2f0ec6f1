package dicer

import "bytes"

// RawSprite is a source sprite supplied as already-loaded bytes rather
// than a filesystem path, for callers embedding textures (asset bundles,
// network payloads) instead of reading a directory.
type RawSprite struct {
	ID     string
	Bytes  []byte
	Format AtlasFormat
	Pivot  *Pivot
}

// RawArtifacts mirrors Artifacts but holds encoded atlas bytes instead of
// decoded Textures, ready to write or transmit as-is.
type RawArtifacts struct {
	Atlases [][]byte
	Sprites []DicedSprite
}

// DiceRaw decodes each RawSprite, runs the pipeline, and re-encodes the
// resulting atlases in the requested format.
func DiceRaw(sprites []RawSprite, prefs Prefs, atlasFormat AtlasFormat) (RawArtifacts, error) {
	total := len(sprites)
	sources := make([]SourceSprite, total)
	for i, rs := range sprites {
		if prefs.OnProgress != nil {
			prefs.OnProgress(checkpointRatio(i, total), "Decoding source textures")
		}
		tex, err := DecodeTextureFormat(bytes.NewReader(rs.Bytes), rs.Format)
		if err != nil {
			return RawArtifacts{}, err
		}
		sources[i] = SourceSprite{ID: rs.ID, Texture: tex, Pivot: rs.Pivot}
	}

	artifacts, err := Dice(sources, prefs)
	if err != nil {
		return RawArtifacts{}, err
	}

	atlases := make([][]byte, len(artifacts.Atlases))
	for i, tex := range artifacts.Atlases {
		if prefs.OnProgress != nil {
			prefs.OnProgress(checkpointRatio(i, len(artifacts.Atlases)), "Encoding atlas textures")
		}
		var buf bytes.Buffer
		if err := EncodeTexture(&buf, atlasFormat, tex); err != nil {
			return RawArtifacts{}, err
		}
		atlases[i] = buf.Bytes()
	}

	return RawArtifacts{Atlases: atlases, Sprites: artifacts.Sprites}, nil
}

// checkpointRatio reports fine-grained progress within a single checkpoint
// band (decoding sources, encoding atlases) as a fraction of 1.
func checkpointRatio(done, total int) float32 {
	if total == 0 {
		return 0
	}
	return float32(done) / float32(total)
}
