package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/burrow/internal/core/geom"
	"chosenoffset.com/burrow/internal/render"
	"chosenoffset.com/burrow/internal/render/rendertest"
)

func TestCellSolid(t *testing.T) {
	f := newFixture(t)
	c := NewCell(2, 3)

	require.NoError(t, c.AddSolidSymbol('A', f.assets))
	assert.True(t, c.HasSolid())

	err := c.AddSolidSymbol('M', f.assets)
	assert.ErrorIs(t, err, ErrAlreadyPresent)

	require.NoError(t, c.FinishSetup())
	col, ok := c.Collider()
	require.True(t, ok)
	assert.Equal(t, geom.Rect{X: 80, Y: 120, W: CellSize, H: CellSize}, col)
}

func TestCellSolidWrongTable(t *testing.T) {
	f := newFixture(t)
	c := NewCell(0, 0)
	assert.ErrorIs(t, c.AddSolidSymbol('b', f.assets), ErrWrongType)
	assert.False(t, c.HasSolid())

	assert.ErrorIs(t, c.AddOtherSymbol('A', true, true, f.assets), ErrWrongType)
	assert.ErrorIs(t, c.AddOtherSymbol('Z', true, true, f.assets), ErrUnknownSymbol)
}

func TestCellHeightFlags(t *testing.T) {
	f := newFixture(t)
	for symbol, offset := range map[byte]int{',': 10, ';': 20, ':': 30} {
		c := NewCell(1, 1)
		assert.ErrorIs(t, c.AddOtherSymbol(symbol, true, true, f.assets), ErrHeightWithoutSolid)

		require.NoError(t, c.AddSolidSymbol('A', f.assets))
		require.NoError(t, c.AddOtherSymbol(symbol, true, true, f.assets))
		assert.ErrorIs(t, c.AddOtherSymbol(';', true, true, f.assets), ErrAlreadyPresent)
		assert.Equal(t, offset, c.TopOffset())

		require.NoError(t, c.FinishSetup())
		col, ok := c.Collider()
		require.True(t, ok)
		assert.Equal(t, float64(CellSize-offset), col.H)
		assert.Equal(t, float64(CellSize+offset), col.Y)
	}
}

func TestCellSolidConflicts(t *testing.T) {
	f := newFixture(t)
	for _, symbol := range []byte{'H', '-', 'i'} {
		c := NewCell(0, 0)
		require.NoError(t, c.AddSolidSymbol('A', f.assets))
		assert.ErrorIs(t, c.AddOtherSymbol(symbol, true, true, f.assets), ErrSolidConflict, string(symbol))
		assert.False(t, c.HasLadder() || c.HasPlatform() || c.HasStairs())
	}

	c := NewCell(0, 0)
	require.NoError(t, c.AddOtherSymbol('-', true, true, f.assets))
	assert.ErrorIs(t, c.AddOtherSymbol('i', true, true, f.assets), ErrPlatformStairsConflict)
	assert.ErrorIs(t, c.AddOtherSymbol('-', true, true, f.assets), ErrAlreadyPresent)

	c = NewCell(0, 0)
	require.NoError(t, c.AddOtherSymbol('i', true, true, f.assets))
	assert.ErrorIs(t, c.AddOtherSymbol('-', true, true, f.assets), ErrPlatformStairsConflict)
}

func TestCellLiquidWithSolidNeedsHeight(t *testing.T) {
	f := newFixture(t)
	c := NewCell(0, 0)
	require.NoError(t, c.AddSolidSymbol('A', f.assets))
	require.NoError(t, c.AddOtherSymbol('*', true, true, f.assets))
	assert.ErrorIs(t, c.FinishSetup(), ErrLiquidSolidNoHeight)

	c = NewCell(0, 0)
	require.NoError(t, c.AddSolidSymbol('A', f.assets))
	require.NoError(t, c.AddOtherSymbol('*', true, true, f.assets))
	require.NoError(t, c.AddOtherSymbol(';', true, true, f.assets))
	require.NoError(t, c.FinishSetup())
	assert.True(t, c.BlocksBottomCellLiquidDelim())
}

func TestCellOnlySolidsCollide(t *testing.T) {
	f := newFixture(t)
	for _, symbol := range []byte{'b', 'H', '-', 'i', '*'} {
		c := NewCell(0, 0)
		require.NoError(t, c.AddOtherSymbol(symbol, true, true, f.assets))
		require.NoError(t, c.FinishSetup())
		_, ok := c.Collider()
		assert.False(t, ok, string(symbol))
	}
}

func TestCellBlockingFlags(t *testing.T) {
	f := newFixture(t)
	ladder := NewCell(0, 0)
	require.NoError(t, ladder.AddOtherSymbol('H', true, true, f.assets))
	assert.True(t, ladder.BlocksBottomCellLadderDelim())
	assert.False(t, ladder.BlocksBottomCellLiquidDelim())

	water := NewCell(0, 0)
	require.NoError(t, water.AddOtherSymbol('*', true, true, f.assets))
	assert.False(t, water.BlocksBottomCellLadderDelim())
	assert.True(t, water.BlocksBottomCellLiquidDelim())

	empty := NewCell(0, 0)
	assert.False(t, empty.BlocksBottomCellLadderDelim())
	assert.False(t, empty.BlocksBottomCellLiquidDelim())
}

func TestCellLadderDelimVisibility(t *testing.T) {
	f := newFixture(t)
	rr := &rendertest.Renderer{}

	open := NewCell(3, 5)
	require.NoError(t, open.AddOtherSymbol('H', false, true, f.assets))
	dst := rendertest.NewImage("dst", GameAreaWidth, GameAreaHeight)
	open.DrawLadder(rr, dst, 0, 0)
	ops := dst.Ops()
	require.Len(t, ops, 2)
	assert.Equal(t, "cells/ladder.png", ops[0].Src)
	assert.Equal(t, float64(3*CellSize+21), ops[0].X)
	assert.Equal(t, "cells/ladder_delim.png", ops[1].Src)
	assert.Equal(t, float64(5*CellSize-30), ops[1].Y)

	covered := NewCell(3, 5)
	require.NoError(t, covered.AddOtherSymbol('H', true, true, f.assets))
	dst = rendertest.NewImage("dst", GameAreaWidth, GameAreaHeight)
	covered.DrawLadder(rr, dst, 0, 0)
	assert.Equal(t, []string{"cells/ladder.png"}, dst.Draws())
}

func TestCellDrawLiquidAndSolid(t *testing.T) {
	f := newFixture(t)
	rr := &rendertest.Renderer{}
	c := NewCell(1, 2)
	require.NoError(t, c.AddSolidSymbol('M', f.assets))
	require.NoError(t, c.AddOtherSymbol('*', false, false, f.assets))
	require.NoError(t, c.AddOtherSymbol(':', false, false, f.assets))
	require.NoError(t, c.FinishSetup())

	dst := rendertest.NewImage("dst", GameAreaWidth, GameAreaHeight)
	c.DrawLiquidAndSolid(rr, dst, 100, 0)
	ops := dst.Ops()
	require.Len(t, ops, 4)
	assert.Equal(t, rendertest.OpFill, ops[0].Kind)
	assert.Equal(t, 140.0, ops[0].X)
	assert.Equal(t, "cells/water_delim.png", ops[1].Src)
	assert.Equal(t, "cells/metal.png", ops[2].Src)
	assert.Equal(t, float64(2*CellSize+30), ops[2].Y)
	assert.Equal(t, 10.0, ops[2].H, "solid texture is cut by the height flag")
	assert.Equal(t, "cells/metal_mask.png", ops[3].Src)
	assert.Equal(t, render.BlendAlpha, ops[3].Blend)
}

func TestCellDrawStairsBottomAligned(t *testing.T) {
	f := newFixture(t)
	f.assets.Textures = f.mgr.NewScope()
	c := NewCell(4, 4)
	require.NoError(t, c.AddOtherSymbol('i', true, true, f.assets))
	dst := rendertest.NewImage("dst", GameAreaWidth, GameAreaHeight)
	c.DrawStairs(nil, dst, 0, 0)
	ops := dst.Ops()
	require.Len(t, ops, 1)
	assert.Equal(t, float64(4*CellSize-40), ops[0].X)
	assert.Equal(t, float64(4*CellSize), ops[0].Y)
}
