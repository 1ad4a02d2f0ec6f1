package dicer

import (
	"encoding/json"
	"os"
	"path/filepath"
)

type jsonVertex struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

type jsonUV struct {
	U float32 `json:"u"`
	V float32 `json:"v"`
}

type jsonRect struct {
	X      float32 `json:"x"`
	Y      float32 `json:"y"`
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
}

type jsonSprite struct {
	ID      string       `json:"id"`
	Atlas   uint64       `json:"atlas"`
	Vertices []jsonVertex `json:"vertices"`
	Uvs     []jsonUV     `json:"uvs"`
	Indices []uint64     `json:"indices"`
	Rect    jsonRect     `json:"rect"`
}

// MarshalSprites serializes diced sprites to the wire format consumed by
// downstream renderers: an array of objects keyed id, atlas,
// vertices[{x,y}], uvs[{u,v}], indices[], rect{x,y,width,height}.
func MarshalSprites(sprites []DicedSprite) ([]byte, error) {
	out := make([]jsonSprite, len(sprites))
	for i, s := range sprites {
		out[i] = toJSONSprite(s)
	}
	return json.MarshalIndent(out, "", "    ")
}

// UnmarshalSprites parses the wire format produced by MarshalSprites.
func UnmarshalSprites(data []byte) ([]DicedSprite, error) {
	var in []jsonSprite
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, err
	}
	out := make([]DicedSprite, len(in))
	for i, s := range in {
		out[i] = fromJSONSprite(s)
	}
	return out, nil
}

func toJSONSprite(s DicedSprite) jsonSprite {
	vertices := make([]jsonVertex, len(s.Vertices))
	for i, v := range s.Vertices {
		vertices[i] = jsonVertex{X: v.X, Y: v.Y}
	}
	uvs := make([]jsonUV, len(s.Uvs))
	for i, uv := range s.Uvs {
		uvs[i] = jsonUV{U: uv.U, V: uv.V}
	}
	return jsonSprite{
		ID:       s.ID,
		Atlas:    s.AtlasIndex,
		Vertices: vertices,
		Uvs:      uvs,
		Indices:  s.Indices,
		Rect: jsonRect{
			X:      s.Rect.X,
			Y:      s.Rect.Y,
			Width:  s.Rect.Width,
			Height: s.Rect.Height,
		},
	}
}

func fromJSONSprite(s jsonSprite) DicedSprite {
	vertices := make([]Vertex, len(s.Vertices))
	for i, v := range s.Vertices {
		vertices[i] = Vertex{X: v.X, Y: v.Y}
	}
	uvs := make([]UV, len(s.Uvs))
	for i, uv := range s.Uvs {
		uvs[i] = UV{U: uv.U, V: uv.V}
	}
	return DicedSprite{
		ID:         s.ID,
		AtlasIndex: s.Atlas,
		Vertices:   vertices,
		Uvs:        uvs,
		Indices:    s.Indices,
		Rect: Rect{
			X:      s.Rect.X,
			Y:      s.Rect.Y,
			Width:  s.Rect.Width,
			Height: s.Rect.Height,
		},
	}
}

// WriteSprites serializes sprites and writes sprites.json into outDir.
func WriteSprites(sprites []DicedSprite, outDir string) error {
	data, err := MarshalSprites(sprites)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outDir, "sprites.json"), data, 0o644); err != nil {
		return ioErr("Failed to write sprites.json.", err)
	}
	return nil
}
