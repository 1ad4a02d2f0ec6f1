package dicer

// Dice runs the full pipeline — dice, pack, build — over a set of source
// sprites, producing the atlas textures and per-sprite mesh data needed to
// reconstruct them. It runs synchronously on the caller's goroutine and
// reports progress at four weighted checkpoints when prefs.OnProgress is
// set.
func Dice(sources []SourceSprite, prefs Prefs) (Artifacts, error) {
	report(prefs.OnProgress, 0, 4, "Dicing sources")
	diced, err := dice(sources, prefs)
	if err != nil {
		return Artifacts{}, err
	}

	report(prefs.OnProgress, 1, 4, "Packing atlases")
	atlases, err := pack(diced, prefs)
	if err != nil {
		return Artifacts{}, err
	}

	report(prefs.OnProgress, 2, 4, "Building sprites")
	sprites, err := build(atlases, prefs)
	if err != nil {
		return Artifacts{}, err
	}

	report(prefs.OnProgress, 3, 4, "Finalizing artifacts")
	textures := make([]Texture, len(atlases))
	for i, a := range atlases {
		textures[i] = a.texture
	}

	return Artifacts{Atlases: textures, Sprites: sprites}, nil
}

// report invokes sink, if non-nil, with a checkpoint's ratio and label.
func report(sink Progress, checkpoint, total int, activity string) {
	if sink == nil {
		return
	}
	sink(float32(checkpoint)/float32(total), activity)
}
