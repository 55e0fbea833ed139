package geom

// Direction names a move between neighboring rooms.
type Direction int

const (
	DirNone Direction = iota
	DirLeft
	DirRight
	DirUp
	DirDown
	DirFront
	DirBack
)

var directionNames = map[Direction]string{
	DirNone:  "none",
	DirLeft:  "left",
	DirRight: "right",
	DirUp:    "up",
	DirDown:  "down",
	DirFront: "front",
	DirBack:  "back",
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return "unknown"
}

// Delta returns the room grid step for d. Y grows downwards and Z grows
// towards the back.
func (d Direction) Delta() Vec3i {
	switch d {
	case DirLeft:
		return Vec3i{X: -1}
	case DirRight:
		return Vec3i{X: 1}
	case DirUp:
		return Vec3i{Y: -1}
	case DirDown:
		return Vec3i{Y: 1}
	case DirFront:
		return Vec3i{Z: -1}
	case DirBack:
		return Vec3i{Z: 1}
	}
	return Vec3i{}
}

// Planar reports whether d moves within the XY plane and so can be animated
// as a sliding transition.
func (d Direction) Planar() bool {
	return d == DirLeft || d == DirRight || d == DirUp || d == DirDown
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirFront:
		return DirBack
	case DirBack:
		return DirFront
	}
	return DirNone
}
