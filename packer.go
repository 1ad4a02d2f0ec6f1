package dicer

import (
	"math"

	"github.com/esimov/dicer/utils"
)

// pack greedily groups diced textures into atlases, deduplicating units by
// hash and honoring prefs.AtlasSizeLimit / AtlasSquare / AtlasPot.
//
// Preconditions (fail with Spec): 0 <= prefs.UvInset <= 0.5,
// prefs.AtlasSizeLimit >= 1, prefs.UnitSize <= prefs.AtlasSizeLimit.
func pack(diced []*dicedTexture, prefs Prefs) ([]*atlas, error) {
	if prefs.UvInset < 0 || prefs.UvInset > 0.5 {
		return nil, specErr("UV inset should be in 0.0 to 0.5 range.")
	}
	if prefs.AtlasSizeLimit == 0 {
		return nil, specErr("Atlas size limit can't be zero.")
	}
	if prefs.UnitSize > prefs.AtlasSizeLimit {
		return nil, specErr("Unit size can't be above atlas size limit.")
	}

	paddedUnitSize := prefs.UnitSize + 2*prefs.Padding
	capacity := (prefs.AtlasSizeLimit / paddedUnitSize)
	capacity *= capacity

	remaining := diced
	var atlases []*atlas
	for len(remaining) > 0 {
		group, rest, err := packGroup(remaining, capacity)
		if err != nil {
			return nil, err
		}
		atlases = append(atlases, bakeAtlas(group, prefs, paddedUnitSize))
		remaining = rest
	}
	return atlases, nil
}

// packGroup greedily admits textures into a single atlas group: at each
// step it picks, among remaining textures, the one contributing the fewest
// hashes not already in the group (stable tie-break to the first in
// iteration order), and admits it while the group stays within capacity.
// It stops when no remaining texture can be admitted, and fails if the
// group ends up empty (a single texture's unique unit count exceeds
// capacity).
func packGroup(remaining []*dicedTexture, capacity uint32) (group, rest []*dicedTexture, err error) {
	admitted := make([]bool, len(remaining))
	packedHashes := make(map[uint64]struct{})

	for {
		best := -1
		bestNew := -1
		for i, dt := range remaining {
			if admitted[i] {
				continue
			}
			n := countNew(dt.unique, packedHashes)
			if bestNew == -1 || n < bestNew {
				bestNew = n
				best = i
			}
		}
		if best == -1 {
			break
		}
		if uint32(len(packedHashes)+bestNew) > capacity {
			break
		}
		admitted[best] = true
		for h := range remaining[best].unique {
			packedHashes[h] = struct{}{}
		}
	}

	for i, dt := range remaining {
		if admitted[i] {
			group = append(group, dt)
		} else {
			rest = append(rest, dt)
		}
	}
	if len(group) == 0 {
		return nil, nil, specErr("Can't fit any texture; increase atlas size.")
	}
	return group, rest, nil
}

// countNew returns how many of set's hashes are absent from packed.
func countNew(set map[uint64]struct{}, packed map[uint64]struct{}) int {
	n := 0
	for h := range set {
		if _, ok := packed[h]; !ok {
			n++
		}
	}
	return n
}

// bakeAtlas sizes an atlas for the group's unique units, copies each
// unique unit's padded pixels into it, and computes UV rects.
func bakeAtlas(group []*dicedTexture, prefs Prefs, paddedUnitSize uint32) *atlas {
	hashOrder, unitByHash := collectUnique(group)
	n := uint32(len(hashOrder))

	width, height := evalAtlasSize(n, prefs, paddedUnitSize)
	tex := newTexture(width, height)
	rects := make(map[uint64]FRect, len(hashOrder))

	cols := width / paddedUnitSize
	for i, h := range hashOrder {
		col := uint32(i) % cols
		row := uint32(i) / cols
		unit := unitByHash[h]
		bakeUnit(&tex, unit, col, row, paddedUnitSize)
		rects[h] = evalUV(unit, col, row, paddedUnitSize, width, height, prefs)
	}

	return &atlas{texture: tex, rects: rects, packed: group}
}

// collectUnique returns a texture group's unique unit hashes in first-
// encounter order (deterministic per run, per spec.md's open question on
// slot iteration order), along with one representative unit per hash.
func collectUnique(group []*dicedTexture) ([]uint64, map[uint64]*dicedUnit) {
	seen := make(map[uint64]struct{})
	order := make([]uint64, 0)
	byHash := make(map[uint64]*dicedUnit)
	for _, dt := range group {
		for i := range dt.units {
			u := &dt.units[i]
			if _, ok := seen[u.hash]; ok {
				continue
			}
			seen[u.hash] = struct{}{}
			order = append(order, u.hash)
			byHash[u.hash] = u
		}
	}
	return order, byHash
}

// evalAtlasSize computes an atlas's pixel dimensions for n unique units.
//
// When neither AtlasSquare nor AtlasPot is set, this sweeps candidate
// column counts from ceil(sqrt(n)) down to 1, keeping the smallest-area
// (cols, rows) pair whose row count still respects the size limit, with
// ties broken toward the squarer candidate. This is the documented
// resolution of spec.md's open question about the ambiguous sweep
// direction in the original implementation: starting from the squarest
// candidate and widening only as needed minimizes wasted atlas area.
func evalAtlasSize(n uint32, prefs Prefs, paddedUnitSize uint32) (width, height uint32) {
	if n == 0 {
		n = 1
	}

	if prefs.AtlasPot {
		side := nextPowerOfTwo(ceilSqrt(n) * paddedUnitSize)
		return side, side
	}
	if prefs.AtlasSquare {
		side := ceilSqrt(n) * paddedUnitSize
		return side, side
	}

	limit := prefs.AtlasSizeLimit
	maxCols := ceilSqrt(n)
	bestCols, bestRows := maxCols, ceilDiv(n, maxCols)
	bestArea := bestCols * bestRows

	for cols := maxCols; cols >= 1; cols-- {
		rows := ceilDiv(n, cols)
		if rows*paddedUnitSize > limit || cols*paddedUnitSize > limit {
			continue
		}
		area := cols * rows
		if area < bestArea || (area == bestArea && closerToSquare(cols, rows, bestCols, bestRows)) {
			bestArea = area
			bestCols, bestRows = cols, rows
		}
	}
	return bestCols * paddedUnitSize, bestRows * paddedUnitSize
}

func closerToSquare(cols, rows, bestCols, bestRows uint32) bool {
	return absDiff(cols, rows) < absDiff(bestCols, bestRows)
}

func absDiff(a, b uint32) uint32 {
	return utils.Max(a, b) - utils.Min(a, b)
}

func ceilSqrt(n uint32) uint32 {
	if n == 0 {
		return 0
	}
	s := uint32(math.Ceil(math.Sqrt(float64(n))))
	for s*s < n {
		s++
	}
	return s
}

func nextPowerOfTwo(n uint32) uint32 {
	if n == 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	return n + 1
}

// bakeUnit copies a unit's full padded pixel block into the atlas at the
// slot (col, row).
func bakeUnit(atlasTex *Texture, unit *dicedUnit, col, row, paddedUnitSize uint32) {
	blit(atlasTex, unit.pixels, col*paddedUnitSize, row*paddedUnitSize, paddedUnitSize, paddedUnitSize)
}

// evalUV computes a unit's normalized UV rect on an atlas of the given
// dimensions: the unpadded unit-sized rect at its slot, shrunk by
// prefs.UvInset from each side, then scaled down for units whose stored
// rect is smaller than UnitSize (units cropped against a source texture's
// edge) — the position stays anchored to the slot's top-left corner, only
// the far edges retract.
func evalUV(unit *dicedUnit, col, row, paddedUnitSize, atlasWidth, atlasHeight uint32, prefs Prefs) FRect {
	x := float32(col*paddedUnitSize+prefs.Padding) / float32(atlasWidth)
	y := float32(row*paddedUnitSize+prefs.Padding) / float32(atlasHeight)
	w := float32(prefs.UnitSize) / float32(atlasWidth)
	h := float32(prefs.UnitSize) / float32(atlasHeight)

	shrinkX := prefs.UvInset * w / 2
	shrinkY := prefs.UvInset * h / 2
	x += shrinkX
	y += shrinkY
	w -= 2 * shrinkX
	h -= 2 * shrinkY

	w *= float32(unit.rect.Width) / float32(prefs.UnitSize)
	h *= float32(unit.rect.Height) / float32(prefs.UnitSize)

	return FRect{X: x, Y: y, Width: w, Height: h}
}
