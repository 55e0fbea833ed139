// Package grid stores the rooms of a location by their 3D coordinates and
// tracks which one the player is in.
package grid

import (
	"errors"
	"fmt"
	"sort"

	"chosenoffset.com/burrow/internal/core/geom"
	"chosenoffset.com/burrow/internal/world/room"
)

var (
	// ErrOccupied reports a second room at the same coordinates.
	ErrOccupied = errors.New("coordinates already hold a room")
	// ErrNoRoom reports navigation to coordinates without a room.
	ErrNoRoom = errors.New("no room at coordinates")
)

// Grid is the sparse room map. It owns its rooms; the current room is
// addressed by coordinates.
type Grid struct {
	rooms   map[geom.Vec3i]*room.Room
	current geom.Vec3i
}

// New creates an empty grid.
func New() *Grid {
	return &Grid{rooms: make(map[geom.Vec3i]*room.Room)}
}

// Set stores r at coords. An occupied slot is never overwritten.
func (g *Grid) Set(coords geom.Vec3i, r *room.Room) error {
	if _, ok := g.rooms[coords]; ok {
		return fmt.Errorf("%w: %s", ErrOccupied, coords)
	}
	g.rooms[coords] = r
	return nil
}

// Get returns the room at coords, or nil.
func (g *Grid) Get(coords geom.Vec3i) *room.Room {
	return g.rooms[coords]
}

// MoveTo makes coords current.
func (g *Grid) MoveTo(coords geom.Vec3i) (*room.Room, error) {
	r, ok := g.rooms[coords]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoRoom, coords)
	}
	g.current = coords
	return r, nil
}

// NearExists reports whether a room lies next to the current one in dir and
// returns its coordinates. Coordinates never go below zero.
func (g *Grid) NearExists(dir geom.Direction) (geom.Vec3i, bool) {
	if dir == geom.DirNone {
		return geom.Vec3i{}, false
	}
	next := g.current.Add(dir.Delta())
	if next.X < 0 || next.Y < 0 || next.Z < 0 {
		return geom.Vec3i{}, false
	}
	_, ok := g.rooms[next]
	return next, ok
}

// MoveToNear moves to the room next to the current one in dir.
func (g *Grid) MoveToNear(dir geom.Direction) (*room.Room, error) {
	next, ok := g.NearExists(dir)
	if !ok {
		return nil, fmt.Errorf("%w: %s of %s", ErrNoRoom, dir, g.current)
	}
	return g.MoveTo(next)
}

// Current returns the current room, or nil when the grid is empty.
func (g *Grid) Current() *room.Room {
	return g.rooms[g.current]
}

// CurrentCoords returns the coordinates of the current room.
func (g *Grid) CurrentCoords() geom.Vec3i {
	return g.current
}

// Clear drops every room and resets the current coordinates.
func (g *Grid) Clear() {
	g.rooms = make(map[geom.Vec3i]*room.Room)
	g.current = geom.Vec3i{}
}

// Len returns the number of rooms.
func (g *Grid) Len() int {
	return len(g.rooms)
}

// Each calls fn for every room ordered by z, then y, then x.
func (g *Grid) Each(fn func(coords geom.Vec3i, r *room.Room)) {
	coords := make([]geom.Vec3i, 0, len(g.rooms))
	for c := range g.rooms {
		coords = append(coords, c)
	}
	sort.Slice(coords, func(i, j int) bool {
		a, b := coords[i], coords[j]
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	for _, c := range coords {
		fn(c, g.rooms[c])
	}
}
