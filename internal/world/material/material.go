// Package material holds the table of cell materials addressed by the
// single-character symbols used in room data.
package material

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"chosenoffset.com/burrow/internal/core/geom"
)

// Type is the kind of cell content a material produces.
type Type int

const (
	Solid      Type = 1
	Background Type = 2
	Ladder     Type = 3
	Platform   Type = 4
	Stairs     Type = 5
	Liquid     Type = 6
)

func (t Type) String() string {
	switch t {
	case Solid:
		return "solid"
	case Background:
		return "background"
	case Ladder:
		return "ladder"
	case Platform:
		return "platform"
	case Stairs:
		return "stairs"
	case Liquid:
		return "liquid"
	}
	return fmt.Sprintf("type(%d)", int(t))
}

// Valid reports whether t is one of the known material types.
func (t Type) Valid() bool {
	return t >= Solid && t <= Liquid
}

// LiquidOpacity is the alpha used for liquids that do not define one.
const LiquidOpacity = 0x9A

// Material describes one symbol. Texture names are relative to the cell
// texture directory and carry no extension.
type Material struct {
	Symbol       byte
	Type         Type
	Texture      string
	TextureDelim string
	Mask         string
	IsRight      bool
	OffsetLeft   int
	DelimOffset  geom.Vec2i
	Color        color.RGBA
}

// materialNode is the JSON form of a material.
type materialNode struct {
	Type         *int   `json:"type"`
	Texture      string `json:"txt"`
	TextureDelim string `json:"txt_delim"`
	DelimOffset  []int  `json:"txt_delim_offset"`
	Mask         string `json:"mask"`
	IsRight      *bool  `json:"is_right"`
	OffsetLeft   int    `json:"offset_left"`
	Color        string `json:"color"`
}

func (n *materialNode) toMaterial(key string) (Material, error) {
	if len(key) != 1 {
		return Material{}, fmt.Errorf("material key %q is not a single character", key)
	}
	if n.Type == nil {
		return Material{}, fmt.Errorf("material %q: missing key \"type\"", key)
	}
	m := Material{
		Symbol:       key[0],
		Type:         Type(*n.Type),
		Texture:      n.Texture,
		TextureDelim: n.TextureDelim,
		Mask:         n.Mask,
		OffsetLeft:   n.OffsetLeft,
		Color:        color.RGBA{R: 0x40, G: 0x60, B: 0xC0, A: LiquidOpacity},
	}
	if !m.Type.Valid() {
		return Material{}, fmt.Errorf("material %q: invalid type %d", key, *n.Type)
	}
	if m.Type != Liquid && m.Texture == "" {
		return Material{}, fmt.Errorf("material %q: missing key \"txt\"", key)
	}
	if m.Type == Ladder || m.Type == Stairs {
		if n.IsRight == nil {
			return Material{}, fmt.Errorf("material %q: missing key \"is_right\"", key)
		}
		m.IsRight = *n.IsRight
	}
	if n.DelimOffset != nil {
		if len(n.DelimOffset) != 2 {
			return Material{}, fmt.Errorf("material %q: \"txt_delim_offset\" must hold 2 numbers", key)
		}
		m.DelimOffset = geom.Vec2i{X: n.DelimOffset[0], Y: n.DelimOffset[1]}
	}
	if n.Color != "" {
		c, err := ParseHexColor(n.Color)
		if err != nil {
			return Material{}, fmt.Errorf("material %q: %w", key, err)
		}
		m.Color = c
	}
	return m, nil
}

// ParseHexColor parses "#RRGGBB" or "#RRGGBBAA". Colors without alpha get
// LiquidOpacity.
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(hex) == 6 {
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: LiquidOpacity}, nil
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
