package render_test

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"

	"chosenoffset.com/burrow/internal/render"
	"chosenoffset.com/burrow/internal/render/rendertest"
)

func TestGeoMTranslateAndScale(t *testing.T) {
	var g render.GeoM
	x, y := g.Apply(3, 4)
	assert.Equal(t, 3.0, x)
	assert.Equal(t, 4.0, y)

	g.Translate(10, 20)
	g.Scale(2, 3)
	x, y = g.Apply(1, 1)
	assert.Equal(t, 22.0, x)
	assert.Equal(t, 63.0, y)
	assert.Equal(t, 2.0, g.Element(0, 0))
	assert.Equal(t, 60.0, g.Element(1, 2))

	g.Reset()
	assert.Equal(t, 1.0, g.Element(1, 1))
}

func TestSpriteDraw(t *testing.T) {
	dst := rendertest.NewImage("dst", 100, 100)
	s := render.NewSprite(rendertest.NewImage("tile", 10, 10), 5, 6)
	s.Draw(dst, 1, 2, render.BlendCutout)

	ops := dst.Ops()
	if assert.Len(t, ops, 1) {
		assert.Equal(t, "tile", ops[0].Src)
		assert.Equal(t, 6.0, ops[0].X)
		assert.Equal(t, 8.0, ops[0].Y)
		assert.Equal(t, render.BlendCutout, ops[0].Blend)
	}
	assert.Equal(t, 15.0, s.Bounds().Right())

	var nilSprite *render.Sprite
	nilSprite.Draw(dst, 0, 0, render.BlendAlpha)
	assert.Len(t, dst.Ops(), 1)
}

func TestDrawTiledClipsEdges(t *testing.T) {
	dst := rendertest.NewImage("dst", 100, 100)
	tile := rendertest.NewImage("tile", 40, 40)
	render.DrawTiled(dst, tile, 0, 0, 100, 50, nil)

	ops := dst.Ops()
	assert.Len(t, ops, 6)
	last := ops[len(ops)-1]
	assert.Equal(t, 80.0, last.X)
	assert.Equal(t, 40.0, last.Y)
	assert.Equal(t, 20.0, last.W)
	assert.Equal(t, 10.0, last.H)
	assert.Equal(t, image.Rect(0, 0, 40, 40), tile.Bounds())
}
