package room

import (
	"errors"
	"image/color"
)

const (
	CellSize = 40

	// Room size in cells, including the one-cell border.
	Width  = 48
	Height = 25

	GameAreaWidth  = Width * CellSize
	GameAreaHeight = Height * CellSize

	SymbolSeparator = '|'
	SymbolEmpty     = '_'
	SymbolUnknown   = '?'

	// Height flags shrink the solid of a cell from the top.
	SymbolHeightThreeQuarters = ','
	SymbolHeightHalf          = ';'
	SymbolHeightQuarter       = ':'
)

// BackwallColor dims the backwall and cell backgrounds.
var BackwallColor = color.Gray{Y: 80}

// DebugBoxColor outlines back objects when debug boxes are enabled.
var DebugBoxColor = color.RGBA{R: 0xFF, A: 0xFF}

var (
	ErrAlreadyPresent         = errors.New("cell already has this kind of symbol")
	ErrWrongType              = errors.New("symbol has the wrong material type")
	ErrUnknownSymbol          = errors.New("unknown symbol")
	ErrSolidConflict          = errors.New("cannot be combined with a solid")
	ErrPlatformStairsConflict = errors.New("platform and stairs cannot share a cell")
	ErrHeightWithoutSolid     = errors.New("height flag requires a solid")
	ErrLiquidSolidNoHeight    = errors.New("liquid with a solid requires a height flag")
	ErrBadRoom                = errors.New("invalid room")
)

// heightFlagOffset returns the top offset in pixels for a height flag.
func heightFlagOffset(symbol byte) (int, bool) {
	switch symbol {
	case SymbolHeightThreeQuarters:
		return CellSize / 4, true
	case SymbolHeightHalf:
		return CellSize / 2, true
	case SymbolHeightQuarter:
		return CellSize * 3 / 4, true
	}
	return 0, false
}
