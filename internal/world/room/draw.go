package room

import (
	"chosenoffset.com/burrow/internal/render"
)

type cellStage func(c *Cell, r render.Renderer, dst render.Image, offX, offY float64)

// stages drawn after the back objects, in order
var frontStages = []cellStage{
	(*Cell).DrawPlatform,
	(*Cell).DrawStairs,
	(*Cell).DrawLadder,
	(*Cell).DrawLiquidAndSolid,
}

func (r *Room) drawStage(stage cellStage, rr render.Renderer, dst render.Image) {
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			stage(&r.cells[y][x], rr, dst, 0, 0)
		}
	}
}

// Init builds the cached textures of the room. Back object variants are
// picked again, so each visit may look slightly different.
func (r *Room) Init(rr render.Renderer) {
	r.Deinit()
	r.RerollObjVariants(r.assets.Rand)

	cache := rr.NewImage(GameAreaWidth, GameAreaHeight)

	if r.backwall != nil {
		render.DrawTiled(cache, r.backwall, 0, 0, GameAreaWidth, GameAreaHeight, BackwallColor)
	}
	for _, obj := range r.farBackObjs {
		obj.main.Draw(cache, 0, 0, render.BlendAlpha)
		obj.light.Draw(cache, 0, 0, render.BlendAlpha)
	}

	r.drawStage((*Cell).DrawBackground, rr, cache)

	for _, h := range r.holes {
		blend := render.BlendAlpha
		if h.blend {
			blend = render.BlendOverlay
		}
		h.main.Draw(cache, 0, 0, blend)
	}
	for _, h := range r.holes {
		h.hole.Draw(cache, 0, 0, render.BlendCutout)
	}
	for _, obj := range r.backObjs {
		obj.main.Draw(cache, 0, 0, render.BlendAlpha)
		obj.light.Draw(cache, 0, 0, render.BlendAlpha)
	}

	for _, stage := range frontStages {
		r.drawStage(stage, rr, cache)
	}

	if r.assets.DebugBoxes {
		r.drawDebugBoxes(rr, cache)
	}
	r.cellsCache = cache

	if r.liquidLevel > 0 {
		r.liquidCache = r.buildLiquidCache(rr)
	}
}

func (r *Room) drawDebugBoxes(rr render.Renderer, dst render.Image) {
	stroke := func(s *render.Sprite) {
		if s == nil {
			return
		}
		b := s.Bounds()
		rr.StrokeRect(dst, b.X, b.Y, b.W, b.H, 1, DebugBoxColor)
	}
	for _, objs := range [][]backSprite{r.farBackObjs, r.backObjs} {
		for _, obj := range objs {
			stroke(obj.main)
			stroke(obj.light)
		}
	}
	for _, h := range r.holes {
		stroke(h.main)
	}
}

// buildLiquidCache draws the room-wide liquid with its surface. Both are
// copied without blending; the cache is blended once when drawn.
func (r *Room) buildLiquidCache(rr render.Renderer) render.Image {
	cache := rr.NewImage(GameAreaWidth, GameAreaHeight)
	top := Height - r.liquidLevel
	rr.FillRect(cache, 0, float64(top*CellSize), GameAreaWidth, float64(r.liquidLevel*CellSize), r.liquid.Color, render.BlendNone)

	if r.liquidDelim == nil || top == 0 {
		return cache
	}
	for x := 0; x < Width; x++ {
		if r.cells[top-1][x].BlocksBottomCellLiquidDelim() || r.cells[top][x].HasSolid() {
			continue
		}
		opts := &render.DrawImageOptions{Blend: render.BlendNone}
		opts.GeoM.Translate(
			float64(x*CellSize+r.liquid.DelimOffset.X),
			float64(top*CellSize+r.liquid.DelimOffset.Y),
		)
		cache.DrawImage(r.liquidDelim, opts)
	}
	return cache
}

// Deinit releases the cached textures.
func (r *Room) Deinit() {
	if r.cellsCache != nil {
		r.cellsCache.Dispose()
		r.cellsCache = nil
	}
	if r.liquidCache != nil {
		r.liquidCache.Dispose()
		r.liquidCache = nil
	}
}

// Initialized reports whether the cached textures exist.
func (r *Room) Initialized() bool {
	return r.cellsCache != nil
}

// Draw draws the cached room onto target shifted by (offX, offY).
// Does nothing before Init.
func (r *Room) Draw(target render.Image, offX, offY float64) {
	if r.cellsCache == nil {
		return
	}
	// the cache already holds blended pixels; blend it without applying alpha again
	opts := &render.DrawImageOptions{Blend: render.BlendPremultiplied}
	opts.GeoM.Translate(offX, offY)
	target.DrawImage(r.cellsCache, opts)

	if r.liquidCache != nil {
		opts := &render.DrawImageOptions{Blend: render.BlendAlpha}
		opts.GeoM.Translate(offX, offY)
		target.DrawImage(r.liquidCache, opts)
	}
}

// RedrawCell draws the front stages of a single cell onto target. Coordinates
// outside the room are ignored.
func (r *Room) RedrawCell(rr render.Renderer, x, y int, target render.Image, offX, offY float64) {
	cell := r.Cell(x, y)
	if cell == nil {
		return
	}
	for _, stage := range frontStages {
		stage(cell, rr, target, offX, offY)
	}
}
