package room

import (
	"fmt"
	"image"
	"image/color"

	"chosenoffset.com/burrow/internal/core/geom"
	"chosenoffset.com/burrow/internal/render"
	"chosenoffset.com/burrow/internal/world/material"
)

// Cell is one tile of a room. It holds at most one symbol of each category
// and is fixed once FinishSetup has run.
type Cell struct {
	x, y int

	hasSolid      bool
	hasBackground bool
	hasLadder     bool
	hasPlatform   bool
	hasStairs     bool
	hasLiquid     bool
	hasHeightFlag bool

	// pixels cut from the top of the solid
	topOffset int

	solid       render.Image
	solidMask   render.Image
	solidSrc    image.Rectangle
	background  render.Image
	ladder      *render.Sprite
	ladderDelim *render.Sprite
	platform    *render.Sprite
	stairs      *render.Sprite
	liquidColor color.RGBA
	liquidDelim *render.Sprite

	isCollider bool
	collider   geom.Rect
}

// NewCell creates an empty cell at grid position (x, y).
func NewCell(x, y int) Cell {
	return Cell{x: x, y: y}
}

func (c *Cell) String() string {
	return fmt.Sprintf("cell [%d, %d]", c.x, c.y)
}

func (c *Cell) px() float64 { return float64(c.x * CellSize) }
func (c *Cell) py() float64 { return float64(c.y * CellSize) }

// AddSolidSymbol sets the solid of the cell. The cell is unchanged on error.
func (c *Cell) AddSolidSymbol(symbol byte, a *Assets) error {
	if c.hasSolid {
		return fmt.Errorf("%s: solid %q: %w", c, symbol, ErrAlreadyPresent)
	}
	mat, ok := a.Materials.Solid(symbol)
	if !ok {
		return fmt.Errorf("%s: %q is not a solid: %w", c, symbol, ErrWrongType)
	}

	tex, err := a.Textures.Texture(a.cellTexture(mat.Texture))
	if err != nil {
		return fmt.Errorf("%s: %w", c, err)
	}
	var mask render.Image
	if mat.Mask != "" {
		if mask, err = a.Textures.Texture(a.cellTexture(mat.Mask)); err != nil {
			return fmt.Errorf("%s: %w", c, err)
		}
	}

	c.solid = tex
	c.solidMask = mask
	c.hasSolid = true
	return nil
}

// AddOtherSymbol adds a height flag or a non-solid material. The top flags
// tell whether the cell above hides this cell's ladder and liquid
// delimiters. The cell is unchanged on error.
func (c *Cell) AddOtherSymbol(symbol byte, topBlocksLadderDelim, topBlocksLiquidDelim bool, a *Assets) error {
	if offset, ok := heightFlagOffset(symbol); ok {
		if !c.hasSolid {
			return fmt.Errorf("%s: height flag %q: %w", c, symbol, ErrHeightWithoutSolid)
		}
		if c.hasHeightFlag {
			return fmt.Errorf("%s: height flag %q: %w", c, symbol, ErrAlreadyPresent)
		}
		c.topOffset = offset
		c.hasHeightFlag = true
		return nil
	}

	mat, ok := a.Materials.Other(symbol)
	if !ok {
		if _, isSolid := a.Materials.Solid(symbol); isSolid {
			return fmt.Errorf("%s: solid %q outside the first position: %w", c, symbol, ErrWrongType)
		}
		return fmt.Errorf("%s: %q: %w", c, symbol, ErrUnknownSymbol)
	}

	switch mat.Type {
	case material.Background:
		return c.addBackground(mat, a)
	case material.Ladder:
		return c.addLadder(mat, topBlocksLadderDelim, a)
	case material.Platform:
		return c.addPlatform(mat, a)
	case material.Stairs:
		return c.addStairs(mat, a)
	case material.Liquid:
		return c.addLiquid(mat, topBlocksLiquidDelim, a)
	}
	return fmt.Errorf("%s: %q has type %s: %w", c, symbol, mat.Type, ErrWrongType)
}

func (c *Cell) addBackground(mat material.Material, a *Assets) error {
	if c.hasBackground {
		return fmt.Errorf("%s: background %q: %w", c, mat.Symbol, ErrAlreadyPresent)
	}
	tex, err := a.Textures.Texture(a.cellTexture(mat.Texture))
	if err != nil {
		return fmt.Errorf("%s: %w", c, err)
	}
	c.background = tex
	c.hasBackground = true
	return nil
}

func (c *Cell) addLadder(mat material.Material, topBlocksDelim bool, a *Assets) error {
	if c.hasLadder {
		return fmt.Errorf("%s: ladder %q: %w", c, mat.Symbol, ErrAlreadyPresent)
	}
	if c.hasSolid {
		return fmt.Errorf("%s: ladder %q: %w", c, mat.Symbol, ErrSolidConflict)
	}
	tex, err := a.Textures.Texture(a.cellTexture(mat.Texture))
	if err != nil {
		return fmt.Errorf("%s: %w", c, err)
	}
	var delim *render.Sprite
	if !topBlocksDelim && mat.TextureDelim != "" {
		delimTex, err := a.Textures.Texture(a.cellTexture(mat.TextureDelim))
		if err != nil {
			return fmt.Errorf("%s: %w", c, err)
		}
		delim = render.NewSprite(delimTex, c.px()+float64(mat.DelimOffset.X), c.py()+float64(mat.DelimOffset.Y))
	}
	c.ladder = render.NewSprite(tex, c.px()+float64(mat.OffsetLeft), c.py())
	c.ladderDelim = delim
	c.hasLadder = true
	return nil
}

func (c *Cell) addPlatform(mat material.Material, a *Assets) error {
	if c.hasPlatform {
		return fmt.Errorf("%s: platform %q: %w", c, mat.Symbol, ErrAlreadyPresent)
	}
	if c.hasSolid {
		return fmt.Errorf("%s: platform %q: %w", c, mat.Symbol, ErrSolidConflict)
	}
	if c.hasStairs {
		return fmt.Errorf("%s: platform %q: %w", c, mat.Symbol, ErrPlatformStairsConflict)
	}
	tex, err := a.Textures.Texture(a.cellTexture(mat.Texture))
	if err != nil {
		return fmt.Errorf("%s: %w", c, err)
	}
	c.platform = render.NewSprite(tex, c.px()+float64(mat.OffsetLeft), c.py())
	c.hasPlatform = true
	return nil
}

func (c *Cell) addStairs(mat material.Material, a *Assets) error {
	if c.hasStairs {
		return fmt.Errorf("%s: stairs %q: %w", c, mat.Symbol, ErrAlreadyPresent)
	}
	if c.hasSolid {
		return fmt.Errorf("%s: stairs %q: %w", c, mat.Symbol, ErrSolidConflict)
	}
	if c.hasPlatform {
		return fmt.Errorf("%s: stairs %q: %w", c, mat.Symbol, ErrPlatformStairsConflict)
	}
	tex, err := a.Textures.Texture(a.cellTexture(mat.Texture))
	if err != nil {
		return fmt.Errorf("%s: %w", c, err)
	}
	// stairs textures sit on the cell bottom and may reach into the cells above
	_, h := tex.Size()
	c.stairs = render.NewSprite(tex, c.px()+float64(mat.OffsetLeft), c.py()+float64(CellSize-h))
	c.hasStairs = true
	return nil
}

func (c *Cell) addLiquid(mat material.Material, topBlocksDelim bool, a *Assets) error {
	if c.hasLiquid {
		return fmt.Errorf("%s: liquid %q: %w", c, mat.Symbol, ErrAlreadyPresent)
	}
	var delim *render.Sprite
	if !topBlocksDelim && mat.TextureDelim != "" {
		tex, err := a.Textures.Texture(a.cellTexture(mat.TextureDelim))
		if err != nil {
			return fmt.Errorf("%s: %w", c, err)
		}
		delim = render.NewSprite(tex, c.px()+float64(mat.DelimOffset.X), c.py()+float64(mat.DelimOffset.Y))
	}
	c.liquidColor = mat.Color
	c.liquidDelim = delim
	c.hasLiquid = true
	return nil
}

// FinishSetup validates the symbol combination and computes the solid
// texture area and the collider. Call once after the last symbol.
func (c *Cell) FinishSetup() error {
	if c.hasLiquid && c.hasSolid && c.topOffset == 0 {
		return fmt.Errorf("%s: %w", c, ErrLiquidSolidNoHeight)
	}
	if !c.hasSolid {
		return nil
	}

	// solid textures tile across the room so neighboring cells join up
	b := c.solid.Bounds()
	tw, th := b.Dx(), b.Dy()
	h := CellSize - c.topOffset
	sx := b.Min.X + mod(c.x*CellSize, tw)
	sy := b.Min.Y + mod(c.y*CellSize+c.topOffset, th)
	c.solidSrc = clipTile(image.Rect(sx, sy, sx+CellSize, sy+h), b)

	c.isCollider = true
	c.collider = geom.Rect{
		X: c.px(),
		Y: c.py() + float64(c.topOffset),
		W: CellSize,
		H: float64(h),
	}
	return nil
}

func mod(v, m int) int {
	if m <= 0 {
		return 0
	}
	return v % m
}

// clipTile shifts r back inside b when the texture does not divide evenly
// into cells, and shrinks it when the texture is smaller than a cell.
func clipTile(r, b image.Rectangle) image.Rectangle {
	if r.Max.X > b.Max.X {
		r = r.Sub(image.Pt(min(r.Max.X-b.Max.X, r.Min.X-b.Min.X), 0))
	}
	if r.Max.Y > b.Max.Y {
		r = r.Sub(image.Pt(0, min(r.Max.Y-b.Max.Y, r.Min.Y-b.Min.Y)))
	}
	return r.Intersect(b)
}

// BlocksBottomCellLadderDelim reports whether the ladder delimiter of the
// cell below is hidden by this cell.
func (c *Cell) BlocksBottomCellLadderDelim() bool {
	return c.hasLadder || c.hasSolid
}

// BlocksBottomCellLiquidDelim reports whether the liquid surface of the cell
// below is hidden by this cell.
func (c *Cell) BlocksBottomCellLiquidDelim() bool {
	return c.hasLiquid || c.hasSolid
}

func (c *Cell) HasSolid() bool      { return c.hasSolid }
func (c *Cell) HasBackground() bool { return c.hasBackground }
func (c *Cell) HasLadder() bool     { return c.hasLadder }
func (c *Cell) HasPlatform() bool   { return c.hasPlatform }
func (c *Cell) HasStairs() bool     { return c.hasStairs }
func (c *Cell) HasLiquid() bool     { return c.hasLiquid }
func (c *Cell) TopOffset() int      { return c.topOffset }

// Collider returns the solid area of the cell in room pixels.
func (c *Cell) Collider() (geom.Rect, bool) {
	return c.collider, c.isCollider
}

// Draw stages. A room runs each stage over all cells before the next one so
// that content spilling into neighbor cells layers correctly.

// DrawBackground draws the dimmed background texture.
func (c *Cell) DrawBackground(_ render.Renderer, dst render.Image, offX, offY float64) {
	if !c.hasBackground {
		return
	}
	b := c.background.Bounds()
	sx := b.Min.X + mod(c.x*CellSize, b.Dx())
	sy := b.Min.Y + mod(c.y*CellSize, b.Dy())
	src := c.background.SubImage(clipTile(image.Rect(sx, sy, sx+CellSize, sy+CellSize), b))

	opts := &render.DrawImageOptions{ColorScale: BackwallColor}
	opts.GeoM.Translate(c.px()+offX, c.py()+offY)
	dst.DrawImage(src, opts)
}

// DrawPlatform draws the platform texture.
func (c *Cell) DrawPlatform(_ render.Renderer, dst render.Image, offX, offY float64) {
	c.platform.Draw(dst, offX, offY, render.BlendAlpha)
}

// DrawStairs draws the stairs texture.
func (c *Cell) DrawStairs(_ render.Renderer, dst render.Image, offX, offY float64) {
	c.stairs.Draw(dst, offX, offY, render.BlendAlpha)
}

// DrawLadder draws the ladder and its top piece when nothing covers it.
func (c *Cell) DrawLadder(_ render.Renderer, dst render.Image, offX, offY float64) {
	c.ladder.Draw(dst, offX, offY, render.BlendAlpha)
	c.ladderDelim.Draw(dst, offX, offY, render.BlendAlpha)
}

// DrawLiquidAndSolid draws the cell liquid, then the solid over its lower part.
func (c *Cell) DrawLiquidAndSolid(r render.Renderer, dst render.Image, offX, offY float64) {
	if c.hasLiquid {
		r.FillRect(dst, c.px()+offX, c.py()+offY, CellSize, CellSize, c.liquidColor, render.BlendAlpha)
		c.liquidDelim.Draw(dst, offX, offY, render.BlendAlpha)
	}
	if !c.hasSolid {
		return
	}
	x := c.px() + offX
	y := c.py() + float64(c.topOffset) + offY

	opts := &render.DrawImageOptions{}
	opts.GeoM.Translate(x, y)
	dst.DrawImage(c.solid.SubImage(c.solidSrc), opts)

	if c.solidMask != nil {
		mb := c.solidMask.Bounds()
		maskSrc := clipTile(c.solidSrc.Sub(c.solid.Bounds().Min).Add(mb.Min), mb)
		opts := &render.DrawImageOptions{}
		opts.GeoM.Translate(x, y)
		dst.DrawImage(c.solidMask.SubImage(maskSrc), opts)
	}
}
