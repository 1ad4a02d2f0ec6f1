/*
Package dicer is a sprite dicing engine: it chops a collection of 2D source
sprites into fixed-size pixel units, deduplicates identical units by content
hash, packs the unique units into one or more atlas textures, and emits
per-sprite mesh data (vertices, UVs, triangle indices, bounding rect) that
reconstructs each original sprite by sampling the atlas.

The technique exploits large regions of identical pixel content shared
between sprites — for instance common backgrounds across animation frames —
to substantially shrink VRAM footprint while preserving pixel-perfect
reproduction.

The package provides a command line interface for dicing directories of
texture files. To check the supported commands type:

	$ dicer --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"fmt"
		"github.com/esimov/dicer"
	)

	func main() {
		artifacts, err := dicer.Dice(sources, dicer.DefaultPrefs())
		if err != nil {
			fmt.Printf("Error dicing sprites: %s", err.Error())
		}
	}
*/
package dicer
