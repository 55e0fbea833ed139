// Package room implements a single screen of a location: a fixed grid of
// cells plus backwall, liquid and back objects, pre-rendered into cached
// textures while the room is active.
package room

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"chosenoffset.com/burrow/internal/core/geom"
	"chosenoffset.com/burrow/internal/render"
	"chosenoffset.com/burrow/internal/world/material"
	"chosenoffset.com/burrow/internal/world/object"
)

// Node is the JSON form of a room.
type Node struct {
	Coords       []int           `json:"coords"`
	IsStart      bool            `json:"is_start"`
	Backwall     string          `json:"backwall"`
	LiquidLevel  int             `json:"liquid_level"`
	LiquidSymbol string          `json:"liquid_symbol"`
	SpawnCoords  []int           `json:"spawn_coords"`
	LightsOn     int             `json:"lights_on"`
	Cells        []string        `json:"cells"`
	BackObjs     []PlacementNode `json:"back_objs"`
	FarBackObjs  []PlacementNode `json:"far_back_objs"`
	BackHoles    []PlacementNode `json:"back_holes"`
}

// PlacementNode is the JSON form of a back object placement.
type PlacementNode struct {
	ID      string `json:"id"`
	Coords  []int  `json:"coords"`
	Variant *int   `json:"var"`
}

type backSprite struct {
	main, light *render.Sprite
}

type holeSprite struct {
	main, hole *render.Sprite
	blend      bool
}

// Room is a loaded room. Its content does not change after Load; only the
// back object variants are picked again on every Init.
type Room struct {
	cells [Height][Width]Cell

	backwall    render.Image
	liquidLevel int
	liquid      material.Material
	liquidDelim render.Image
	spawn       geom.Vec2i
	lights      object.LightState

	backPlacements    []object.Placement
	farBackPlacements []object.Placement
	holePlacements    []object.Placement

	backObjs    []backSprite
	farBackObjs []backSprite
	holes       []holeSprite

	assets      *Assets
	cellsCache  render.Image
	liquidCache render.Image
}

// New creates an empty room bound to the given assets.
func New(a *Assets) *Room {
	r := &Room{
		assets: a,
		spawn:  geom.Vec2i{X: Width / 2, Y: Height / 2},
	}
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			r.cells[y][x] = NewCell(x, y)
		}
	}
	return r
}

// Load fills the room from its JSON node. A room that failed to load must
// be discarded.
func (r *Room) Load(n *Node) error {
	a := r.assets
	if n.Backwall != "" {
		tex, err := a.Textures.Texture(a.cellTexture(n.Backwall))
		if err != nil {
			return fmt.Errorf("backwall: %w", err)
		}
		r.backwall = tex
	}

	if err := r.loadLiquid(n); err != nil {
		return err
	}

	if n.SpawnCoords != nil {
		if len(n.SpawnCoords) != 2 {
			return fmt.Errorf("%w: key \"spawn_coords\" must hold 2 numbers", ErrBadRoom)
		}
		spawn := geom.Vec2i{X: n.SpawnCoords[0], Y: n.SpawnCoords[1]}
		if spawn.X < 0 || spawn.X >= Width || spawn.Y < 0 || spawn.Y >= Height {
			return fmt.Errorf("%w: spawn coordinates %s outside the room", ErrBadRoom, spawn)
		}
		r.spawn = spawn
	}

	r.lights = object.LightStateFromInt(n.LightsOn)

	if n.Cells == nil {
		return fmt.Errorf("%w: missing key \"cells\"", ErrBadRoom)
	}
	if len(n.Cells) != Height {
		return fmt.Errorf("%w: %d rows of cells, want %d", ErrBadRoom, len(n.Cells), Height)
	}
	for y, row := range n.Cells {
		if err := r.loadRow(y, row); err != nil {
			return err
		}
	}

	var err error
	if r.backPlacements, err = parsePlacements("back_objs", n.BackObjs); err != nil {
		return err
	}
	if r.farBackPlacements, err = parsePlacements("far_back_objs", n.FarBackObjs); err != nil {
		return err
	}
	if r.holePlacements, err = parsePlacements("back_holes", n.BackHoles); err != nil {
		return err
	}
	r.SetupAllBackObjects(a.Rand)
	return nil
}

func (r *Room) loadLiquid(n *Node) error {
	if n.LiquidLevel < 0 || n.LiquidLevel > Height {
		return fmt.Errorf("%w: liquid level %d outside 0..%d", ErrBadRoom, n.LiquidLevel, Height)
	}
	if n.LiquidLevel == 0 {
		return nil
	}
	if len(n.LiquidSymbol) != 1 {
		return fmt.Errorf("%w: liquid level set without a single character \"liquid_symbol\"", ErrBadRoom)
	}
	mat, ok := r.assets.Materials.Other(n.LiquidSymbol[0])
	if !ok || mat.Type != material.Liquid {
		return fmt.Errorf("%w: liquid symbol %q is not a liquid", ErrBadRoom, n.LiquidSymbol)
	}
	if mat.TextureDelim != "" {
		tex, err := r.assets.Textures.Texture(r.assets.cellTexture(mat.TextureDelim))
		if err != nil {
			return fmt.Errorf("liquid surface: %w", err)
		}
		r.liquidDelim = tex
	}
	r.liquid = mat
	r.liquidLevel = n.LiquidLevel
	return nil
}

// loadRow parses one row of cell groups. Groups are separated by '|'; the
// first character of a group is the solid (or '_' for none), the rest are
// other materials and height flags.
func (r *Room) loadRow(y int, row string) error {
	a := r.assets
	x := 0
	first := true
	for i := 0; i < len(row); i++ {
		symbol := row[i]
		if symbol == SymbolSeparator {
			if err := r.cells[y][x].FinishSetup(); err != nil {
				return err
			}
			x++
			if x >= Width {
				return fmt.Errorf("%w: row %d has more than %d cells", ErrBadRoom, y, Width)
			}
			first = true
			continue
		}

		cell := &r.cells[y][x]
		if symbol == SymbolUnknown {
			a.Log.Warnf("Unknown symbol in %s, ignoring", cell)
			first = false
			continue
		}
		if first {
			first = false
			if symbol == SymbolEmpty {
				continue
			}
			if err := cell.AddSolidSymbol(symbol, a); err != nil {
				return err
			}
			continue
		}

		topBlocksLadder, topBlocksLiquid := true, true
		if y > 0 {
			above := &r.cells[y-1][x]
			topBlocksLadder = above.BlocksBottomCellLadderDelim()
			topBlocksLiquid = above.BlocksBottomCellLiquidDelim()
		}
		if err := cell.AddOtherSymbol(symbol, topBlocksLadder, topBlocksLiquid, a); err != nil {
			return err
		}
	}
	if x != Width-1 {
		return fmt.Errorf("%w: row %d has %d cells, want %d", ErrBadRoom, y, x+1, Width)
	}
	return r.cells[y][x].FinishSetup()
}

func parsePlacements(key string, nodes []PlacementNode) ([]object.Placement, error) {
	placements := make([]object.Placement, 0, len(nodes))
	for i, n := range nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("%w: %s[%d]: missing key \"id\"", ErrBadRoom, key, i)
		}
		if len(n.Coords) != 2 {
			return nil, fmt.Errorf("%w: %s[%d]: key \"coords\" must hold 2 numbers", ErrBadRoom, key, i)
		}
		p := object.Placement{
			ID:      n.ID,
			Coords:  geom.Vec2i{X: n.Coords[0], Y: n.Coords[1]},
			Variant: object.RandomVariant,
		}
		if n.Variant != nil {
			if *n.Variant < 0 {
				return nil, fmt.Errorf("%w: %s[%d]: negative variant", ErrBadRoom, key, i)
			}
			p.Variant = *n.Variant
		}
		placements = append(placements, p)
	}
	return placements, nil
}

// SetupAllBackObjects resolves every placement into sprites, picking random
// variants where none is fixed. Placements that cannot be resolved are
// logged and skipped.
func (r *Room) SetupAllBackObjects(rng *rand.Rand) {
	a := r.assets
	r.backObjs = r.setupBackObjects(r.backPlacements, rng)
	r.farBackObjs = r.setupBackObjects(r.farBackPlacements, rng)

	r.holes = r.holes[:0]
	for _, p := range r.holePlacements {
		main, hole, blend, err := a.Objects.SetupHoleSprites(p, a.Textures, rng)
		if err != nil {
			a.Log.Warnf("Skipping back hole: %v", err)
			continue
		}
		r.holes = append(r.holes, holeSprite{main: main, hole: hole, blend: blend})
	}
}

func (r *Room) setupBackObjects(placements []object.Placement, rng *rand.Rand) []backSprite {
	a := r.assets
	sprites := make([]backSprite, 0, len(placements))
	for _, p := range placements {
		main, light, err := a.Objects.SetupBackSprites(p, r.lights, a.Textures, rng)
		if err != nil {
			if !errors.Is(err, object.ErrUnknownObject) && !errors.Is(err, object.ErrBadVariant) {
				a.Log.Errorf("Back object %q: %v", p.ID, err)
			} else {
				a.Log.Warnf("Skipping back object: %v", err)
			}
			continue
		}
		sprites = append(sprites, backSprite{main: main, light: light})
	}
	return sprites
}

// RerollObjVariants picks new random variants and light states for the back
// objects. Cached textures are rebuilt on the next Init.
func (r *Room) RerollObjVariants(rng *rand.Rand) {
	r.SetupAllBackObjects(rng)
}

// SetLightState changes the light state of the back objects and rerolls
// them.
func (r *Room) SetLightState(s object.LightState, rng *rand.Rand) {
	r.lights = s
	r.RerollObjVariants(rng)
}

// Cell returns the cell at (x, y), or nil outside the room.
func (r *Room) Cell(x, y int) *Cell {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return nil
	}
	return &r.cells[y][x]
}

// SpawnCoords returns the player spawn cell.
func (r *Room) SpawnCoords() geom.Vec2i { return r.spawn }

// LiquidLevel returns the room-wide liquid height in cells.
func (r *Room) LiquidLevel() int { return r.liquidLevel }

// LightState returns the light state of the back objects.
func (r *Room) LightState() object.LightState { return r.lights }

// BackObjectCount returns the number of resolved back objects, far back
// objects and holes.
func (r *Room) BackObjectCount() int {
	return len(r.backObjs) + len(r.farBackObjs) + len(r.holes)
}
