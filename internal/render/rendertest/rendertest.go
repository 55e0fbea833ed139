// Package rendertest provides an in-memory render backend that records every
// operation, for tests of code that builds cached textures.
package rendertest

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"chosenoffset.com/burrow/internal/render"
)

// OpKind names a recorded operation.
type OpKind string

const (
	OpDraw   OpKind = "draw"
	OpFill   OpKind = "fill"
	OpStroke OpKind = "stroke"
	OpClear  OpKind = "clear"
)

// Op is one recorded operation on an Image.
type Op struct {
	Kind  OpKind
	Src   string // name of the drawn image, for OpDraw
	X, Y  float64
	W, H  float64
	Blend render.BlendMode
	Color color.Color
}

// Image is a recording render.Image.
type Image struct {
	Name     string
	rect     image.Rectangle
	parent   *Image
	ops      []Op
	disposed bool
}

// NewImage creates a named image of the given size.
func NewImage(name string, width, height int) *Image {
	return &Image{Name: name, rect: image.Rect(0, 0, width, height)}
}

func (i *Image) root() *Image {
	if i.parent != nil {
		return i.parent.root()
	}
	return i
}

// Bounds returns the bounds of the image.
func (i *Image) Bounds() image.Rectangle { return i.rect }

// Size returns the width and height of the image.
func (i *Image) Size() (int, int) { return i.rect.Dx(), i.rect.Dy() }

// SubImage returns a view sharing the parent's name and operation log.
func (i *Image) SubImage(r image.Rectangle) render.Image {
	return &Image{Name: i.Name, rect: r.Intersect(i.rect), parent: i}
}

// Fill records a full-image fill.
func (i *Image) Fill(clr color.Color) {
	w, h := i.Size()
	i.record(Op{Kind: OpFill, W: float64(w), H: float64(h), Color: clr, Blend: render.BlendNone})
}

// Clear records a clear.
func (i *Image) Clear() {
	i.record(Op{Kind: OpClear})
}

// DrawImage records a draw of src at the translation of opts.
func (i *Image) DrawImage(src render.Image, opts *render.DrawImageOptions) {
	op := Op{Kind: OpDraw, Src: nameOf(src)}
	w, h := src.Size()
	op.W, op.H = float64(w), float64(h)
	if opts != nil {
		op.X, op.Y = opts.GeoM.Apply(0, 0)
		op.Blend = opts.Blend
		op.Color = opts.ColorScale
	}
	i.record(op)
}

// Dispose marks the image disposed.
func (i *Image) Dispose() {
	i.root().disposed = true
}

// Disposed reports whether Dispose was called.
func (i *Image) Disposed() bool {
	return i.root().disposed
}

// Ops returns a copy of the recorded operations.
func (i *Image) Ops() []Op {
	r := i.root()
	out := make([]Op, len(r.ops))
	copy(out, r.ops)
	return out
}

// Draws returns the names of drawn images in order.
func (i *Image) Draws() []string {
	var names []string
	for _, op := range i.Ops() {
		if op.Kind == OpDraw {
			names = append(names, op.Src)
		}
	}
	return names
}

func (i *Image) record(op Op) {
	r := i.root()
	if r.disposed {
		panic(fmt.Sprintf("rendertest: operation on disposed image %q", r.Name))
	}
	r.ops = append(r.ops, op)
}

func nameOf(img render.Image) string {
	if ti, ok := img.(*Image); ok {
		return ti.Name
	}
	return fmt.Sprintf("%T", img)
}

// Renderer is a recording render.Renderer.
type Renderer struct {
	mu      sync.Mutex
	created []*Image
}

// NewImage creates an offscreen image named "target#n".
func (r *Renderer) NewImage(width, height int) render.Image {
	r.mu.Lock()
	defer r.mu.Unlock()
	img := NewImage(fmt.Sprintf("target#%d", len(r.created)), width, height)
	r.created = append(r.created, img)
	return img
}

// FillRect records a rectangle fill on dst.
func (r *Renderer) FillRect(dst render.Image, x, y, width, height float64, clr color.Color, blend render.BlendMode) {
	dst.(*Image).record(Op{Kind: OpFill, X: x, Y: y, W: width, H: height, Color: clr, Blend: blend})
}

// StrokeRect records a rectangle outline on dst.
func (r *Renderer) StrokeRect(dst render.Image, x, y, width, height, strokeWidth float64, clr color.Color) {
	dst.(*Image).record(Op{Kind: OpStroke, X: x, Y: y, W: width, H: height, Color: clr})
}

// Created returns every image created through NewImage.
func (r *Renderer) Created() []*Image {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Image, len(r.created))
	copy(out, r.created)
	return out
}

// Live counts created images that have not been disposed.
func (r *Renderer) Live() int {
	n := 0
	for _, img := range r.Created() {
		if !img.Disposed() {
			n++
		}
	}
	return n
}

// Loader is a render.ResourceLoader serving images named after their path.
// Every path loads unless listed in Missing.
type Loader struct {
	mu sync.Mutex

	// Sizes overrides the size of specific paths; others are 40x40.
	Sizes   map[string]image.Point
	Missing map[string]bool

	loads map[string]int
}

// LoadImage returns a new image named path.
func (l *Loader) LoadImage(path string) (render.Image, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.Missing[path] {
		return nil, fmt.Errorf("open %s: no such file", path)
	}
	if l.loads == nil {
		l.loads = make(map[string]int)
	}
	l.loads[path]++
	size := image.Pt(40, 40)
	if s, ok := l.Sizes[path]; ok {
		size = s
	}
	return NewImage(path, size.X, size.Y), nil
}

// Loads reports how many times path was loaded.
func (l *Loader) Loads(path string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loads[path]
}
