// Package placeholders draws stand-in textures for every texture the
// material and object tables refer to, so data can be tried out before the
// real art exists.
package placeholders

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"chosenoffset.com/burrow/internal/logging"
	"chosenoffset.com/burrow/internal/world/material"
	"chosenoffset.com/burrow/internal/world/object"
	"chosenoffset.com/burrow/internal/world/room"
)

// TileSize is the size of a cell texture
const TileSize = room.CellSize

// Sizes of the non-square placeholders
const (
	PlatformHeight = 10
	DelimHeight    = 10
	LadderWidth    = 19
	ObjectWidth    = 80
	ObjectHeight   = 120
)

// ColorPalette defines colors for the placeholder textures
var ColorPalette = struct {
	Solid             color.RGBA
	Mask              color.RGBA
	Background        color.RGBA
	BackgroundPattern color.RGBA
	Ladder            color.RGBA
	Platform          color.RGBA
	Stairs            color.RGBA

	Object color.RGBA
	Light  color.RGBA
	Hole   color.RGBA

	SkyTop    color.RGBA
	SkyBottom color.RGBA
}{
	Solid:             color.RGBA{130, 125, 115, 255},
	Mask:              color.RGBA{255, 255, 255, 255},
	Background:        color.RGBA{70, 65, 60, 255},
	BackgroundPattern: color.RGBA{55, 50, 45, 255},
	Ladder:            color.RGBA{140, 100, 60, 255},
	Platform:          color.RGBA{100, 80, 60, 255},
	Stairs:            color.RGBA{120, 100, 80, 255},

	Object: color.RGBA{80, 60, 140, 255},
	Light:  color.RGBA{96, 81, 0, 96}, // premultiplied
	Hole:   color.RGBA{255, 255, 255, 255},

	SkyTop:    color.RGBA{30, 28, 25, 255},
	SkyBottom: color.RGBA{110, 100, 90, 255},
}

// Paths maps texture names to files.
type Paths interface {
	CellTexture(name string) string
	BackgroundTexture(name string) string
}

// Generator writes placeholder PNG files. Existing files are kept unless
// Overwrite is set.
type Generator struct {
	Paths     Paths
	Overwrite bool
	Log       *logging.Logger

	written []string
}

// Written returns the files written so far.
func (g *Generator) Written() []string {
	out := make([]string, len(g.written))
	copy(out, g.written)
	return out
}

// Materials writes the textures, masks and delimiters of every material.
func (g *Generator) Materials(mats *material.Manager) error {
	var errs []error
	mats.Each(func(m material.Material) {
		for name, img := range materialTiles(m) {
			if err := g.save(g.Paths.CellTexture(name), img); err != nil {
				errs = append(errs, err)
			}
		}
	})
	return errors.Join(errs...)
}

func materialTiles(m material.Material) map[string]image.Image {
	tiles := make(map[string]image.Image)
	if m.Texture != "" {
		switch m.Type {
		case material.Solid:
			tiles[m.Texture] = CreateBorderedTile(TileSize, TileSize, ColorPalette.Solid, Darken(ColorPalette.Solid, 0.7), 2)
		case material.Background:
			tiles[m.Texture] = CreatePatternedTile(TileSize, TileSize, ColorPalette.Background, ColorPalette.BackgroundPattern, "dots")
		case material.Ladder:
			tiles[m.Texture] = CreateLadder(ColorPalette.Ladder)
		case material.Platform:
			tiles[m.Texture] = CreateBorderedTile(TileSize, PlatformHeight, ColorPalette.Platform, Darken(ColorPalette.Platform, 0.7), 1)
		case material.Stairs:
			tiles[m.Texture] = CreateStairs(ColorPalette.Stairs, m.IsRight)
		case material.Liquid:
			tiles[m.Texture] = CreateSolidTile(TileSize, TileSize, m.Color)
		}
	}
	if m.Mask != "" {
		tiles[m.Mask] = CreatePatternedTile(TileSize, TileSize, ColorPalette.Mask, color.RGBA{}, "grid")
	}
	if m.TextureDelim != "" {
		delim := ColorPalette.Ladder
		width := LadderWidth
		if m.Type == material.Liquid {
			delim = Lighten(m.Color, 0.4)
			width = TileSize
		}
		tiles[m.TextureDelim] = CreateSolidTile(width, DelimHeight, delim)
	}
	return tiles
}

// Objects writes every variant texture of the back objects and holes.
func (g *Generator) Objects(objs *object.Manager) error {
	paths := objs.TexturePaths()
	sort.Strings(paths)

	var errs []error
	for _, path := range paths {
		if err := g.save(path, objectTile(path)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func objectTile(path string) image.Image {
	switch {
	case strings.HasSuffix(path, "_l.png"):
		return CreateSolidTile(ObjectWidth, ObjectHeight, ColorPalette.Light)
	case strings.HasSuffix(path, "_e.png"):
		return CreateSolidTile(ObjectWidth, ObjectHeight, ColorPalette.Hole)
	}
	return CreateBorderedTile(ObjectWidth, ObjectHeight, ColorPalette.Object, Lighten(ColorPalette.Object, 0.5), 3)
}

// Background writes a full screen background with a vertical gradient.
func (g *Generator) Background(name string) error {
	img := image.NewRGBA(image.Rect(0, 0, room.GameAreaWidth, room.GameAreaHeight))
	for y := 0; y < room.GameAreaHeight; y++ {
		c := Blend(ColorPalette.SkyTop, ColorPalette.SkyBottom, float64(y)/float64(room.GameAreaHeight-1))
		draw.Draw(img, image.Rect(0, y, room.GameAreaWidth, y+1), &image.Uniform{c}, image.Point{}, draw.Src)
	}
	return g.save(g.Paths.BackgroundTexture(name), img)
}

func (g *Generator) save(path string, img image.Image) error {
	if !g.Overwrite {
		if _, err := os.Stat(path); err == nil {
			g.Log.Debugf("Keeping %s", path)
			return nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	if err := SavePNG(img, path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	g.written = append(g.written, path)
	g.Log.Infof("Wrote %s", path)
	return nil
}

// CreateSolidTile creates a simple solid-colored tile
func CreateSolidTile(w, h int, col color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{col}, image.Point{}, draw.Src)
	return img
}

// CreateBorderedTile creates a tile with a border
func CreateBorderedTile(w, h int, fillColor, borderColor color.RGBA, borderWidth int) *image.RGBA {
	img := CreateSolidTile(w, h, fillColor)

	for i := 0; i < borderWidth; i++ {
		for x := 0; x < w; x++ {
			img.Set(x, i, borderColor)
			img.Set(x, h-1-i, borderColor)
		}
		for y := 0; y < h; y++ {
			img.Set(i, y, borderColor)
			img.Set(w-1-i, y, borderColor)
		}
	}

	return img
}

// CreatePatternedTile creates a tile with a simple pattern
func CreatePatternedTile(w, h int, baseColor, patternColor color.RGBA, pattern string) *image.RGBA {
	img := CreateSolidTile(w, h, baseColor)

	switch pattern {
	case "grid":
		for i := 0; i < h; i += 4 {
			for x := 0; x < w; x++ {
				img.Set(x, i, patternColor)
			}
		}
		for i := 0; i < w; i += 4 {
			for y := 0; y < h; y++ {
				img.Set(i, y, patternColor)
			}
		}
	case "dots":
		for _, p := range []image.Point{{w / 4, h / 4}, {3 * w / 4, h / 4}, {w / 4, 3 * h / 4}, {3 * w / 4, 3 * h / 4}} {
			for dy := 0; dy < 2; dy++ {
				for dx := 0; dx < 2; dx++ {
					img.Set(p.X+dx, p.Y+dy, patternColor)
				}
			}
		}
	case "diagonal":
		for i := 0; i < min(w, h); i++ {
			img.Set(i, i, patternColor)
			img.Set(i, h-1-i, patternColor)
		}
	}

	return img
}

// CreateLadder creates a ladder segment: two rails with a rung in the middle.
func CreateLadder(col color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, LadderWidth, TileSize))
	for y := 0; y < TileSize; y++ {
		for x := 0; x < 3; x++ {
			img.Set(x, y, col)
			img.Set(LadderWidth-1-x, y, col)
		}
	}
	for _, rung := range []int{TileSize / 4, 3 * TileSize / 4} {
		for x := 0; x < LadderWidth; x++ {
			img.Set(x, rung, col)
			img.Set(x, rung+1, col)
		}
	}
	return img
}

// CreateStairs creates a staircase rising to the right, or to the left when
// isRight is false.
func CreateStairs(col color.RGBA, isRight bool) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, TileSize, TileSize))
	const steps = 4
	step := TileSize / steps
	for s := 0; s < steps; s++ {
		top := TileSize - (s+1)*step
		x0 := s * step
		if !isRight {
			x0 = TileSize - (s+1)*step
		}
		draw.Draw(img, image.Rect(x0, top, x0+step, TileSize), &image.Uniform{col}, image.Point{}, draw.Src)
	}
	return img
}

// SavePNG saves an image to a PNG file, creating its directory
func SavePNG(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Darken returns a darker version of a color
func Darken(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// Lighten returns a lighter version of a color
func Lighten(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) + (255-float64(c.R))*factor),
		G: uint8(float64(c.G) + (255-float64(c.G))*factor),
		B: uint8(float64(c.B) + (255-float64(c.B))*factor),
		A: c.A,
	}
}

// Blend mixes two colors; t=0 gives a, t=1 gives b
func Blend(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t) }
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
