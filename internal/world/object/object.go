// Package object defines back objects: decorations drawn behind the cells of
// a room. Their textures follow a naming convention derived from the object
// id, the variant index and the texture kind, so definitions only store
// counts and offsets.
//
// A variant is an alternative texture of the same object. Rooms pick one at
// random each time they are prepared unless the placement asks for a specific
// variant.
package object

import (
	"fmt"
	"image/color"
	"path/filepath"

	"chosenoffset.com/burrow/internal/core/geom"
)

const (
	mainSuffix  = ".png"
	holeSuffix  = "_e.png"
	lightSuffix = "_l.png"
)

// RandomVariant asks for a random variant at setup time.
const RandomVariant = -1

// DimColor tints back object textures to the brightness of the backwall.
// Objects that are light sources are not dimmed.
var DimColor = color.Gray{Y: 110}

// LightState controls the light sprites of every back object in a room.
type LightState int

const (
	LightsDefault LightState = iota // random per object
	LightsOn
	LightsOff
)

// LightStateFromInt maps the "lights_on" room value: positive forces lights
// on, negative forces them off.
func LightStateFromInt(lon int) LightState {
	switch {
	case lon > 0:
		return LightsOn
	case lon < 0:
		return LightsOff
	}
	return LightsDefault
}

func (s LightState) String() string {
	switch s {
	case LightsOn:
		return "on"
	case LightsOff:
		return "off"
	}
	return "default"
}

// Placement is a back object instance inside a room, as read from room data.
type Placement struct {
	ID      string
	Coords  geom.Vec2i // pixels
	Variant int
}

// BackObject is drawn over the backwall. It may have a main texture, a light
// texture, or both, in each variant.
type BackObject struct {
	MainCount   int
	LightCount  int
	Offset      geom.Vec2f
	OffsetLight geom.Vec2f
}

// Variants returns the number of selectable variants.
func (o BackObject) Variants() int {
	return max(o.MainCount, o.LightCount)
}

// BackHoleObject has a main texture and a hole texture that is cut out of
// everything drawn before it.
type BackHoleObject struct {
	Count  int
	Blend  bool
	Offset geom.Vec2f
}

type backObjectNode struct {
	MainCount   int       `json:"main_cnt"`
	LightCount  int       `json:"light_cnt"`
	Offset      []float64 `json:"offset"`
	OffsetLight []float64 `json:"offset_light"`
}

type backHoleNode struct {
	MainCount *int      `json:"main_cnt"`
	Blend     bool      `json:"blend"`
	Offset    []float64 `json:"offset"`
}

func parseOffset(key string, vals []float64) (geom.Vec2f, error) {
	if vals == nil {
		return geom.Vec2f{}, nil
	}
	if len(vals) != 2 {
		return geom.Vec2f{}, fmt.Errorf("key %q must hold 2 numbers, got %d", key, len(vals))
	}
	return geom.Vec2f{X: vals[0], Y: vals[1]}, nil
}

func (n backObjectNode) toObject(id string) (BackObject, error) {
	if n.MainCount < 0 || n.LightCount < 0 {
		return BackObject{}, fmt.Errorf("back object %q: negative texture count", id)
	}
	obj := BackObject{MainCount: n.MainCount, LightCount: n.LightCount}
	if obj.Variants() == 0 {
		return BackObject{}, fmt.Errorf("back object %q defines no textures", id)
	}
	var err error
	if obj.Offset, err = parseOffset("offset", n.Offset); err != nil {
		return BackObject{}, fmt.Errorf("back object %q: %w", id, err)
	}
	if obj.OffsetLight, err = parseOffset("offset_light", n.OffsetLight); err != nil {
		return BackObject{}, fmt.Errorf("back object %q: %w", id, err)
	}
	return obj, nil
}

func (n backHoleNode) toObject(id string) (BackHoleObject, error) {
	if n.MainCount == nil {
		return BackHoleObject{}, fmt.Errorf("back hole %q: missing key \"main_cnt\"", id)
	}
	if *n.MainCount <= 0 {
		return BackHoleObject{}, fmt.Errorf("back hole %q defines no textures", id)
	}
	offset, err := parseOffset("offset", n.Offset)
	if err != nil {
		return BackHoleObject{}, fmt.Errorf("back hole %q: %w", id, err)
	}
	return BackHoleObject{Count: *n.MainCount, Blend: n.Blend, Offset: offset}, nil
}

func texturePath(dir, id string, variant int, suffix string) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%d%s", id, variant, suffix))
}
