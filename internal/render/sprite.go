package render

import (
	"image"
	"image/color"

	"chosenoffset.com/burrow/internal/core/geom"
)

// Sprite is an image placed at a pixel position with an optional tint.
type Sprite struct {
	Image Image
	X, Y  float64
	Tint  color.Color
}

// NewSprite places img at (x, y).
func NewSprite(img Image, x, y float64) *Sprite {
	return &Sprite{Image: img, X: x, Y: y}
}

// Draw draws the sprite onto dst shifted by (offX, offY).
func (s *Sprite) Draw(dst Image, offX, offY float64, blend BlendMode) {
	if s == nil || s.Image == nil {
		return
	}
	opts := &DrawImageOptions{ColorScale: s.Tint, Blend: blend}
	opts.GeoM.Translate(s.X+offX, s.Y+offY)
	dst.DrawImage(s.Image, opts)
}

// Bounds returns the area covered by the sprite.
func (s *Sprite) Bounds() geom.Rect {
	if s == nil || s.Image == nil {
		return geom.Rect{}
	}
	w, h := s.Image.Size()
	return geom.Rect{X: s.X, Y: s.Y, W: float64(w), H: float64(h)}
}

// DrawTiled repeats img over a width x height area of dst starting at (x, y).
// Partial tiles at the right and bottom edges are clipped.
func DrawTiled(dst, img Image, x, y float64, width, height int, tint color.Color) {
	tw, th := img.Size()
	if tw <= 0 || th <= 0 {
		return
	}
	for ty := 0; ty < height; ty += th {
		for tx := 0; tx < width; tx += tw {
			src := img
			w, h := tw, th
			if tx+w > width {
				w = width - tx
			}
			if ty+h > height {
				h = height - ty
			}
			if w != tw || h != th {
				b := img.Bounds()
				src = img.SubImage(image.Rect(b.Min.X, b.Min.Y, b.Min.X+w, b.Min.Y+h))
			}
			opts := &DrawImageOptions{ColorScale: tint}
			opts.GeoM.Translate(x+float64(tx), y+float64(ty))
			dst.DrawImage(src, opts)
		}
	}
}
