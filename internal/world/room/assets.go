package room

import (
	"math/rand/v2"

	"chosenoffset.com/burrow/internal/logging"
	"chosenoffset.com/burrow/internal/resources"
	"chosenoffset.com/burrow/internal/world/material"
	"chosenoffset.com/burrow/internal/world/object"
)

// MaterialSource resolves cell symbols.
type MaterialSource interface {
	Solid(symbol byte) (material.Material, bool)
	Other(symbol byte) (material.Material, bool)
}

// TexturePaths maps texture names from room data to files.
type TexturePaths interface {
	CellTexture(name string) string
}

// Assets bundles what rooms need while loading and caching.
type Assets struct {
	Materials MaterialSource
	Objects   *object.Manager
	Textures  resources.TextureSource
	Paths     TexturePaths
	Rand      *rand.Rand
	Log       *logging.Logger

	// DebugBoxes outlines back objects in the cached room texture.
	DebugBoxes bool
}

func (a *Assets) cellTexture(name string) string {
	return a.Paths.CellTexture(name)
}
