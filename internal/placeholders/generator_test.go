package placeholders

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/burrow/internal/logging"
	"chosenoffset.com/burrow/internal/world/material"
	"chosenoffset.com/burrow/internal/world/object"
	"chosenoffset.com/burrow/internal/world/room"
)

type dirPaths string

func (d dirPaths) CellTexture(name string) string {
	return filepath.Join(string(d), "cells", name+".png")
}

func (d dirPaths) BackgroundTexture(name string) string {
	return filepath.Join(string(d), "backgrounds", name+".png")
}

func decode(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	return img
}

func TestMaterials(t *testing.T) {
	dir := t.TempDir()
	g := &Generator{Paths: dirPaths(dir), Log: logging.Discard()}

	mats := material.NewManager()
	mats.Add(material.Material{Symbol: 'A', Type: material.Solid, Texture: "brick", Mask: "brick_mask"})
	mats.Add(material.Material{Symbol: 'H', Type: material.Ladder, Texture: "ladder", TextureDelim: "ladder_delim"})
	mats.Add(material.Material{Symbol: '-', Type: material.Platform, Texture: "shelf"})
	mats.Add(material.Material{Symbol: 'i', Type: material.Stairs, Texture: "stairs"})
	mats.Add(material.Material{Symbol: '*', Type: material.Liquid, TextureDelim: "water_delim",
		Color: color.RGBA{B: 0xFF, A: material.LiquidOpacity}})

	require.NoError(t, g.Materials(mats))
	assert.Len(t, g.Written(), 7)

	sizes := map[string]image.Point{
		"brick":        {TileSize, TileSize},
		"brick_mask":   {TileSize, TileSize},
		"ladder":       {LadderWidth, TileSize},
		"ladder_delim": {LadderWidth, DelimHeight},
		"shelf":        {TileSize, PlatformHeight},
		"stairs":       {TileSize, TileSize},
		"water_delim":  {TileSize, DelimHeight},
	}
	for name, size := range sizes {
		img := decode(t, dirPaths(dir).CellTexture(name))
		assert.Equal(t, size, img.Bounds().Size(), name)
	}
}

func TestObjects(t *testing.T) {
	dir := t.TempDir()
	g := &Generator{Paths: dirPaths(dir), Log: logging.Discard()}

	objs := object.NewManager(filepath.Join(dir, "objects"))
	objs.AddBackObject("lamp", object.BackObject{MainCount: 2, LightCount: 1})
	objs.AddBackHole("window", object.BackHoleObject{Count: 1})

	require.NoError(t, g.Objects(objs))
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "objects", "lamp_0.png"),
		filepath.Join(dir, "objects", "lamp_1.png"),
		filepath.Join(dir, "objects", "lamp_0_l.png"),
		filepath.Join(dir, "objects", "window_0.png"),
		filepath.Join(dir, "objects", "window_0_e.png"),
	}, g.Written())

	hole := decode(t, filepath.Join(dir, "objects", "window_0_e.png"))
	_, _, _, a := hole.At(10, 10).RGBA()
	assert.Equal(t, uint32(0xFFFF), a)
}

func TestKeepsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	paths := dirPaths(dir)
	existing := paths.BackgroundTexture("canyon")
	require.NoError(t, os.MkdirAll(filepath.Dir(existing), 0o755))
	require.NoError(t, os.WriteFile(existing, []byte("art"), 0o644))

	g := &Generator{Paths: paths, Log: logging.Discard()}
	require.NoError(t, g.Background("canyon"))
	assert.Empty(t, g.Written())
	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "art", string(data))

	g.Overwrite = true
	require.NoError(t, g.Background("canyon"))
	img := decode(t, existing)
	assert.Equal(t, image.Pt(room.GameAreaWidth, room.GameAreaHeight), img.Bounds().Size())
}

func TestCreateStairs(t *testing.T) {
	right := CreateStairs(ColorPalette.Stairs, true)
	assert.Equal(t, ColorPalette.Stairs, right.RGBAAt(TileSize-1, 0))
	assert.Equal(t, color.RGBA{}, right.RGBAAt(0, 0))

	left := CreateStairs(ColorPalette.Stairs, false)
	assert.Equal(t, ColorPalette.Stairs, left.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{}, left.RGBAAt(TileSize-1, 0))
}

func TestBlend(t *testing.T) {
	a := color.RGBA{0, 0, 0, 255}
	b := color.RGBA{200, 100, 50, 255}
	assert.Equal(t, a, Blend(a, b, 0))
	assert.Equal(t, b, Blend(a, b, 1))
	assert.Equal(t, color.RGBA{100, 50, 25, 255}, Blend(a, b, 0.5))
}
