// Package geom holds the small vector and rectangle types shared by the
// world packages.
package geom

import "fmt"

// Vec2i is an integer 2D vector, used for cell coordinates and pixel offsets.
type Vec2i struct {
	X, Y int
}

func (v Vec2i) String() string {
	return fmt.Sprintf("[%d, %d]", v.X, v.Y)
}

// Vec2f is a float 2D vector in pixels.
type Vec2f struct {
	X, Y float64
}

// Vec3i addresses a room inside a location.
type Vec3i struct {
	X, Y, Z int
}

func (v Vec3i) String() string {
	return fmt.Sprintf("[%d, %d, %d]", v.X, v.Y, v.Z)
}

// Add returns v shifted by o.
func (v Vec3i) Add(o Vec3i) Vec3i {
	return Vec3i{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Rect is an axis aligned rectangle in pixels.
type Rect struct {
	X, Y, W, H float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Intersects reports whether r and o overlap with a non-empty area.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}
