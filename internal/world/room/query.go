package room

import (
	"chosenoffset.com/burrow/internal/core/geom"
)

// IsCellCollider reports whether the cell at (x, y) blocks movement.
// Cells outside the room do not.
func (r *Room) IsCellCollider(x, y int) bool {
	c := r.Cell(x, y)
	return c != nil && c.isCollider
}

// CellCollider returns the collider of the cell at (x, y).
func (r *Room) CellCollider(x, y int) (geom.Rect, bool) {
	c := r.Cell(x, y)
	if c == nil {
		return geom.Rect{}, false
	}
	return c.Collider()
}

// IsCellLiquid reports whether the cell at (x, y) is under liquid, either
// its own or the room-wide level.
func (r *Room) IsCellLiquid(x, y int) bool {
	c := r.Cell(x, y)
	if c == nil {
		return false
	}
	return c.hasLiquid || y >= Height-r.liquidLevel
}

// NeighborCollider returns the collider of the cell next to (x, y) in dir.
func (r *Room) NeighborCollider(x, y int, dir geom.Direction) (geom.Rect, bool) {
	nx, ny, ok := neighbor(x, y, dir)
	if !ok {
		return geom.Rect{}, false
	}
	return r.CellCollider(nx, ny)
}

// NeighborLiquid reports whether the cell next to (x, y) in dir holds liquid.
func (r *Room) NeighborLiquid(x, y int, dir geom.Direction) bool {
	nx, ny, ok := neighbor(x, y, dir)
	return ok && r.IsCellLiquid(nx, ny)
}

func neighbor(x, y int, dir geom.Direction) (int, int, bool) {
	if !dir.Planar() {
		return 0, 0, false
	}
	d := dir.Delta()
	return x + d.X, y + d.Y, true
}

// CollidersIn returns the colliders overlapping area, in row order.
func (r *Room) CollidersIn(area geom.Rect) []geom.Rect {
	x0 := max(int(area.X)/CellSize, 0)
	y0 := max(int(area.Y)/CellSize, 0)
	x1 := min(int(area.Right())/CellSize, Width-1)
	y1 := min(int(area.Bottom())/CellSize, Height-1)

	var out []geom.Rect
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if c, ok := r.cells[y][x].Collider(); ok && c.Intersects(area) {
				out = append(out, c)
			}
		}
	}
	return out
}
