package dicer

// build assembles per-sprite mesh data from packed atlases: one quad per
// retained unit, a bounding rect, and a resolved pivot offset.
//
// Precondition (fails with Spec): prefs.Ppu > 0.
func build(atlases []*atlas, prefs Prefs) ([]DicedSprite, error) {
	if prefs.Ppu <= 0 {
		return nil, specErr("Pixels per unit should be greater than zero.")
	}

	var sprites []DicedSprite
	for atlasIdx, a := range atlases {
		for _, dt := range a.packed {
			sprite, ok := buildSprite(dt, uint64(atlasIdx), a, prefs)
			if !ok {
				continue
			}
			sprites = append(sprites, sprite)
		}
	}
	return sprites, nil
}

// buildSprite builds one sprite's mesh, or reports ok=false when every one
// of its units was trimmed away (an all-transparent source).
func buildSprite(dt *dicedTexture, atlasIdx uint64, a *atlas, prefs Prefs) (DicedSprite, bool) {
	if len(dt.units) == 0 {
		return DicedSprite{}, false
	}

	pivot := prefs.Pivot
	if dt.pivot != nil {
		pivot = *dt.pivot
	}

	sprite := DicedSprite{
		ID:         dt.id,
		AtlasIndex: atlasIdx,
		Pivot:      pivot,
	}

	for _, unit := range dt.units {
		uv := a.rects[unit.hash]
		buildQuad(&sprite, &unit, uv, prefs.Ppu)
	}

	sprite.Rect = evalSpriteRect(&sprite, dt, prefs, pivot)
	offsetForPivot(&sprite, pivot, prefs.TrimTransparent)
	return sprite, true
}

// buildQuad appends one unit's vertices, UVs and indices to sprite. The
// four corners are emitted in a consistent winding (top-left, bottom-left,
// bottom-right, top-right), with vertices and UVs sharing that order so
// index i always refers to the same corner in both arrays.
func buildQuad(sprite *DicedSprite, unit *dicedUnit, uv FRect, ppu float32) {
	xMin := float32(unit.rect.X) / ppu
	yMin := float32(unit.rect.Y) / ppu
	xMax := xMin + float32(unit.rect.Width)/ppu
	yMax := yMin + float32(unit.rect.Height)/ppu

	base := uint64(len(sprite.Vertices))
	sprite.Vertices = append(sprite.Vertices,
		Vertex{X: xMin, Y: yMin},
		Vertex{X: xMin, Y: yMax},
		Vertex{X: xMax, Y: yMax},
		Vertex{X: xMax, Y: yMin},
	)
	sprite.Uvs = append(sprite.Uvs,
		UV{U: uv.X, V: uv.Y},
		UV{U: uv.X, V: uv.Y + uv.Height},
		UV{U: uv.X + uv.Width, V: uv.Y + uv.Height},
		UV{U: uv.X + uv.Width, V: uv.Y},
	)
	sprite.Indices = append(sprite.Indices,
		base, base+1, base+2,
		base+2, base+3, base,
	)
}

// evalSpriteRect computes a sprite's bounding rect. With TrimTransparent
// enabled, the rect is the raw min/max extent of its emitted vertices
// (trimmed units shrink the rect); offsetForPivot later re-anchors it
// alongside the vertices. Otherwise it spans the full, untrimmed source
// texture dimensions with the pivot already baked into its origin, since
// an untrimmed sprite's vertex offset never touches the rect again.
func evalSpriteRect(sprite *DicedSprite, dt *dicedTexture, prefs Prefs, pivot Pivot) Rect {
	if !prefs.TrimTransparent {
		width := spriteSourceWidth(dt) / prefs.Ppu
		height := spriteSourceHeight(dt) / prefs.Ppu
		return Rect{X: -pivot.X * width, Y: -pivot.Y * height, Width: width, Height: height}
	}

	xMin, yMin := sprite.Vertices[0].X, sprite.Vertices[0].Y
	xMax, yMax := xMin, yMin
	for _, v := range sprite.Vertices[1:] {
		if v.X < xMin {
			xMin = v.X
		}
		if v.X > xMax {
			xMax = v.X
		}
		if v.Y < yMin {
			yMin = v.Y
		}
		if v.Y > yMax {
			yMax = v.Y
		}
	}
	return Rect{X: xMin, Y: yMin, Width: xMax - xMin, Height: yMax - yMin}
}

// spriteSourceWidth/Height recover a source texture's full pixel extent
// from its diced units' stored rects, in pixels (not yet divided by Ppu).
func spriteSourceWidth(dt *dicedTexture) float32 {
	var maxX uint32
	for _, u := range dt.units {
		right := u.rect.X + u.rect.Width
		if right > maxX {
			maxX = right
		}
	}
	return float32(maxX)
}

func spriteSourceHeight(dt *dicedTexture) float32 {
	var maxY uint32
	for _, u := range dt.units {
		bottom := u.rect.Y + u.rect.Height
		if bottom > maxY {
			maxY = bottom
		}
	}
	return float32(maxY)
}

// offsetForPivot shifts every vertex so that the pivot fraction of the
// sprite's bounding rect lands at the local origin. When trimming, the raw
// rect computed from the unshifted vertices also shifts along with them
// (it is re-anchored here, for the first and only time). When not
// trimming, the rect was already computed with the pivot baked into its
// origin, so only the vertices move — re-touching the rect here would
// double the offset.
func offsetForPivot(sprite *DicedSprite, pivot Pivot, trimming bool) {
	dx := pivot.X * sprite.Rect.Width
	dy := pivot.Y * sprite.Rect.Height
	if trimming {
		dx += sprite.Rect.X
		dy += sprite.Rect.Y
	}
	for i := range sprite.Vertices {
		sprite.Vertices[i].X -= dx
		sprite.Vertices[i].Y -= dy
	}
	if trimming {
		sprite.Rect.X -= dx
		sprite.Rect.Y -= dy
	}
}
