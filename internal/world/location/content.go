package location

import (
	"fmt"

	"chosenoffset.com/burrow/internal/core/geom"
	"chosenoffset.com/burrow/internal/jsonfile"
	"chosenoffset.com/burrow/internal/world/room"
)

type contentNode struct {
	APIVersion     int         `json:"api_version"`
	BackgroundFull string      `json:"background_full"`
	Rooms          []room.Node `json:"rooms"`
}

// LoadContent loads every room of the location and enters the start room.
// On failure the location is left unloaded.
func (l *Location) LoadContent() error {
	l.UnloadContent()
	l.env.Log.Debugf("Loading location content from %s", l.roomDataPath)

	if err := l.loadContent(); err != nil {
		l.UnloadContent()
		l.env.Log.Errorf("Failed to load location %s: %v", l.id, err)
		return err
	}

	l.loaded = true
	l.env.Log.Debugf("Loaded location content from %s (%d rooms)", l.roomDataPath, l.rooms.Len())
	return nil
}

func (l *Location) loadContent() error {
	var n contentNode
	if err := jsonfile.Load(l.roomDataPath, &n); err != nil {
		return fmt.Errorf("%w: %w", ErrBadContent, err)
	}
	if n.Rooms == nil {
		return fmt.Errorf("%s: %w: %w", l.roomDataPath, ErrBadContent, jsonfile.Missing("rooms"))
	}

	l.scope = l.env.Resources.NewScope()

	if n.BackgroundFull != "" {
		tex, err := l.scope.Texture(l.env.Paths.BackgroundTexture(n.BackgroundFull))
		if err != nil {
			return fmt.Errorf("%s: background: %w", l.roomDataPath, err)
		}
		l.backgroundFull = tex
	}

	l.assets = &room.Assets{
		Materials:  l.env.Materials,
		Objects:    l.env.Objects,
		Textures:   l.scope,
		Paths:      l.env.Paths,
		Rand:       l.env.Rand,
		Log:        l.env.Log,
		DebugBoxes: l.env.DebugBoxes,
	}

	foundStart := false
	var start geom.Vec3i
	for i := range n.Rooms {
		node := &n.Rooms[i]
		if node.Coords == nil {
			return fmt.Errorf("%s: room %d: %w: %w", l.roomDataPath, i, ErrBadContent, jsonfile.Missing("coords"))
		}
		coords, err := jsonfile.Vec3i("coords", node.Coords)
		if err != nil {
			return fmt.Errorf("%s: room %d: %w: %w", l.roomDataPath, i, ErrBadContent, err)
		}
		if coords.X < 0 || coords.Y < 0 || coords.Z < 0 {
			return fmt.Errorf("%s: room %d: %w: negative coordinates %s", l.roomDataPath, i, ErrBadContent, coords)
		}
		if l.rooms.Get(coords) != nil {
			return fmt.Errorf("%s: %w: %s", l.roomDataPath, ErrDuplicateRoom, coords)
		}

		if node.IsStart {
			if foundStart {
				return fmt.Errorf("%s: %w: second start room at %s", l.roomDataPath, ErrStartRoom, coords)
			}
			start = coords
			foundStart = true
		}

		r := room.New(l.assets)
		if err := r.Load(node); err != nil {
			return fmt.Errorf("%s: room %s: %w", l.roomDataPath, coords, err)
		}

		if !l.grind {
			if err := l.validateRoomGeometry(r, coords); err != nil {
				return fmt.Errorf("%s: %w", l.roomDataPath, err)
			}
		}

		if err := l.rooms.Set(coords, r); err != nil {
			return fmt.Errorf("%s: %w: %w", l.roomDataPath, ErrDuplicateRoom, err)
		}
	}

	if !foundStart {
		return fmt.Errorf("%s: %w: none marked with \"is_start\"", l.roomDataPath, ErrStartRoom)
	}

	current, err := l.rooms.MoveTo(start)
	if err != nil {
		return fmt.Errorf("%s: start room: %w", l.roomDataPath, err)
	}
	current.Init(l.env.Renderer)
	return nil
}

// validateRoomGeometry checks that the border cells of r line up with the
// rooms already loaded to its left, right, top and bottom. Layers are not
// compared.
func (l *Location) validateRoomGeometry(r *room.Room, coords geom.Vec3i) error {
	const lastX, lastY = room.Width - 1, room.Height - 1

	if left := l.rooms.Get(coords.Add(geom.DirLeft.Delta())); left != nil {
		for y := 0; y < room.Height; y++ {
			if r.IsCellCollider(0, y) != left.IsCellCollider(lastX, y) {
				return geometryError(coords, 0, y)
			}
		}
	}
	if right := l.rooms.Get(coords.Add(geom.DirRight.Delta())); right != nil {
		for y := 0; y < room.Height; y++ {
			if r.IsCellCollider(lastX, y) != right.IsCellCollider(0, y) {
				return geometryError(coords, lastX, y)
			}
		}
	}
	if up := l.rooms.Get(coords.Add(geom.DirUp.Delta())); up != nil {
		for x := 0; x < room.Width; x++ {
			if r.IsCellCollider(x, 0) != up.IsCellCollider(x, lastY) {
				return geometryError(coords, x, 0)
			}
		}
	}
	if down := l.rooms.Get(coords.Add(geom.DirDown.Delta())); down != nil {
		for x := 0; x < room.Width; x++ {
			if r.IsCellCollider(x, lastY) != down.IsCellCollider(x, 0) {
				return geometryError(coords, x, lastY)
			}
		}
	}
	return nil
}

func geometryError(coords geom.Vec3i, x, y int) error {
	return fmt.Errorf("%w: room %s, cell [%d, %d]", ErrGeometry, coords, x, y)
}

// SetDebugBoxes switches the back object outlines of the loaded rooms. The
// current room shows the change after Redraw.
func (l *Location) SetDebugBoxes(on bool) {
	if l.assets != nil {
		l.assets.DebugBoxes = on
	}
}

// UnloadContent drops every room and releases the textures they held.
// Metadata stays.
func (l *Location) UnloadContent() {
	l.transition.abort()
	if cur := l.rooms.Current(); cur != nil {
		cur.Deinit()
	}
	l.rooms.Clear()
	l.backgroundFull = nil
	l.assets = nil
	if l.scope != nil {
		l.scope.Release()
		l.scope = nil
	}
	l.loaded = false
}
