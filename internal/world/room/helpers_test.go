package room

import (
	"bytes"
	"image/color"
	"math/rand/v2"
	"path"
	"strings"
	"testing"

	"chosenoffset.com/burrow/internal/core/geom"
	"chosenoffset.com/burrow/internal/logging"
	"chosenoffset.com/burrow/internal/render/rendertest"
	"chosenoffset.com/burrow/internal/resources"
	"chosenoffset.com/burrow/internal/world/material"
	"chosenoffset.com/burrow/internal/world/object"
)

type testPaths struct{}

func (testPaths) CellTexture(name string) string { return path.Join("cells", name+".png") }

type fixture struct {
	assets *Assets
	mgr    *resources.Manager
	log    *bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mats := material.NewManager()
	mats.Add(material.Material{Symbol: 'A', Type: material.Solid, Texture: "brick"})
	mats.Add(material.Material{Symbol: 'M', Type: material.Solid, Texture: "metal", Mask: "metal_mask"})
	mats.Add(material.Material{Symbol: 'b', Type: material.Background, Texture: "wall"})
	mats.Add(material.Material{Symbol: 'H', Type: material.Ladder, Texture: "ladder", IsRight: true,
		OffsetLeft: 21, TextureDelim: "ladder_delim", DelimOffset: geom.Vec2i{X: 2, Y: -30}})
	mats.Add(material.Material{Symbol: '-', Type: material.Platform, Texture: "shelf"})
	mats.Add(material.Material{Symbol: 'i', Type: material.Stairs, Texture: "stairs", OffsetLeft: -40})
	mats.Add(material.Material{Symbol: '*', Type: material.Liquid, TextureDelim: "water_delim",
		Color: color.RGBA{B: 0xFF, A: material.LiquidOpacity}})

	objs := object.NewManager("objs")
	objs.AddBackObject("door", object.BackObject{MainCount: 1})
	objs.AddBackObject("lamp", object.BackObject{MainCount: 1, LightCount: 1})
	objs.AddBackHole("window", object.BackHoleObject{Count: 1, Blend: true})

	loader := &rendertest.Loader{}
	mgr := resources.NewManager(loader)
	var buf bytes.Buffer
	return &fixture{
		assets: &Assets{
			Materials: mats,
			Objects:   objs,
			Textures:  mgr.NewScope(),
			Paths:     testPaths{},
			Rand:      rand.New(rand.NewPCG(1, 1)),
			Log:       logging.New(&buf, logging.WARN),
		},
		mgr: mgr,
		log: &buf,
	}
}

// row builds a cell row of empty cells with the given groups set.
func row(groups map[int]string) string {
	parts := make([]string, Width)
	for i := range parts {
		parts[i] = "_"
	}
	for x, g := range groups {
		parts[x] = g
	}
	return strings.Join(parts, "|")
}

// walledCells returns rows with a solid border around an empty interior.
func walledCells() []string {
	rows := make([]string, Height)
	full := map[int]string{}
	for x := 0; x < Width; x++ {
		full[x] = "A"
	}
	for y := range rows {
		if y == 0 || y == Height-1 {
			rows[y] = row(full)
			continue
		}
		rows[y] = row(map[int]string{0: "A", Width - 1: "A"})
	}
	return rows
}
