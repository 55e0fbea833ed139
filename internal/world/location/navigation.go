package location

import (
	"errors"
	"fmt"
	"time"

	"chosenoffset.com/burrow/internal/core/geom"
	"chosenoffset.com/burrow/internal/entity"
	"chosenoffset.com/burrow/internal/render"
	"chosenoffset.com/burrow/internal/world/grid"
	"chosenoffset.com/burrow/internal/world/room"
)

// Distance from the room edge at which the player appears after walking
// into a neighbor room.
const (
	NewRoomOffsetH       = 60
	NewRoomOffsetVTop    = 40
	NewRoomOffsetVBottom = 80
)

const (
	areaW = float64(room.GameAreaWidth)
	areaH = float64(room.GameAreaHeight)

	playerW2 = entity.PlayerWidth / 2
	playerH2 = entity.PlayerHeight / 2
)

// ErrNoRoom reports a move towards a missing room.
var ErrNoRoom = grid.ErrNoRoom

// ErrInTransition reports a move requested while the rooms are sliding.
var ErrInTransition = errors.New("room transition in progress")

// transition slides from the previous room to the current one. Both rooms
// are rendered into a buffer twice the size of the game area.
type transition struct {
	active  bool
	dir     geom.Direction
	elapsed time.Duration
	buffer  render.Image
	x, y    float64
}

func (t *transition) abort() {
	t.active = false
	t.dir = geom.DirNone
	t.elapsed = 0
	t.x, t.y = 0, 0
	if t.buffer != nil {
		t.buffer.Dispose()
		t.buffer = nil
	}
}

// InTransition reports whether a room transition is running.
func (l *Location) InTransition() bool { return l.transition.active }

// GotoRoom moves to the room next to the current one in dir and puts the
// player's center at newPlayerCenter. Planar moves slide the rooms unless
// the transition duration is zero.
func (l *Location) GotoRoom(dir geom.Direction, newPlayerCenter geom.Vec2f) error {
	if !l.loaded {
		return ErrNotLoaded
	}
	if l.transition.active {
		return fmt.Errorf("location %s: %w", l.id, ErrInTransition)
	}

	old := l.rooms.Current()
	next, err := l.rooms.MoveToNear(dir)
	if err != nil {
		return err
	}

	if l.env.TransitionDuration <= 0 || !dir.Planar() {
		old.Deinit()
		l.player.SetCenter(newPlayerCenter)
		next.Init(l.env.Renderer)
		return nil
	}

	buf := l.env.Renderer.NewImage(2*room.GameAreaWidth, 2*room.GameAreaHeight)
	buf.Clear()

	// right and down keep the old room at the origin; left and up swap roles
	var oldX, oldY, newX, newY float64
	switch dir {
	case geom.DirLeft:
		oldX = areaW
	case geom.DirUp:
		oldY = areaH
	case geom.DirRight:
		newX = areaW
	case geom.DirDown:
		newY = areaH
	}

	old.Draw(buf, oldX, oldY)
	old.Deinit()

	next.Init(l.env.Renderer)
	l.player.SetCenter(newPlayerCenter)
	next.Draw(buf, newX, newY)
	l.player.Draw(l.env.Renderer, buf, newX, newY)

	l.transition = transition{
		active: true,
		dir:    dir,
		buffer: buf,
		x:      -oldX,
		y:      -oldY,
	}
	return nil
}

// GotoRoomCoords jumps to the room at coords without a transition and puts
// the player at its spawn point. Jumping to the current room does nothing.
func (l *Location) GotoRoomCoords(coords geom.Vec3i) error {
	if !l.loaded {
		return ErrNotLoaded
	}
	if coords == l.rooms.CurrentCoords() {
		return nil
	}
	old := l.rooms.Current()
	next, err := l.rooms.MoveTo(coords)
	if err != nil {
		return err
	}

	l.transition.abort()
	old.Deinit()
	next.Init(l.env.Renderer)
	l.player.SetPosition(spawnPosition(next.SpawnCoords()))
	return nil
}

func spawnPosition(spawn geom.Vec2i) geom.Vec2f {
	return geom.Vec2f{X: float64(spawn.X * room.CellSize), Y: float64(spawn.Y * room.CellSize)}
}

// Tick advances the location by d. While stable the player moves and walking
// past the game area edge enters the neighbor room, or stops the player when
// there is none.
func (l *Location) Tick(d time.Duration) {
	if !l.loaded {
		return
	}
	if l.transition.active {
		l.transition.elapsed += d
		l.updateState()
		return
	}

	l.player.Tick(d)

	c := l.player.Center()
	if c.X < playerW2 {
		if l.GotoRoom(geom.DirLeft, geom.Vec2f{X: areaW - NewRoomOffsetH, Y: c.Y}) != nil {
			l.player.SetCenter(geom.Vec2f{X: playerW2, Y: c.Y})
			l.player.StopHorizontal()
		}
	} else if c.X > areaW-playerW2 {
		if l.GotoRoom(geom.DirRight, geom.Vec2f{X: NewRoomOffsetH, Y: c.Y}) != nil {
			l.player.SetCenter(geom.Vec2f{X: areaW - playerW2, Y: c.Y})
			l.player.StopHorizontal()
		}
	}
	if l.transition.active {
		return
	}

	// the horizontal check may have moved the player already
	c = l.player.Center()
	if c.Y < playerH2 {
		if l.GotoRoom(geom.DirUp, geom.Vec2f{X: c.X, Y: areaH - NewRoomOffsetVBottom}) != nil {
			l.player.SetCenter(geom.Vec2f{X: c.X, Y: playerH2})
			l.player.StopVertical()
		}
	} else if c.Y > areaH-playerH2 {
		if l.GotoRoom(geom.DirDown, geom.Vec2f{X: c.X, Y: NewRoomOffsetVTop}) != nil {
			l.player.SetCenter(geom.Vec2f{X: c.X, Y: areaH - playerH2})
			l.player.StopVertical()
		}
	}
}

// updateState positions the transition buffer for the elapsed time and ends
// the transition once the duration has passed.
func (l *Location) updateState() {
	t := &l.transition
	dur := l.env.TransitionDuration
	if dur <= 0 || t.elapsed >= dur {
		t.abort()
		return
	}

	progress := float64(t.elapsed) / float64(dur)
	switch t.dir {
	case geom.DirUp:
		t.x, t.y = 0, float64(int(progress*areaH))-areaH
	case geom.DirDown:
		t.x, t.y = 0, -float64(int(progress*areaH))
	case geom.DirLeft:
		t.x, t.y = float64(int(progress*areaW))-areaW, 0
	case geom.DirRight:
		t.x, t.y = -float64(int(progress*areaW)), 0
	default:
		t.abort()
	}
}

// TransitionOffset returns where the transition buffer is drawn.
func (l *Location) TransitionOffset() (x, y float64) {
	return l.transition.x, l.transition.y
}

// Draw draws the full background, then the current room with the player, or
// the transition buffer while sliding.
func (l *Location) Draw(target render.Image) {
	if !l.loaded {
		return
	}
	if l.backgroundFull != nil {
		target.DrawImage(l.backgroundFull, &render.DrawImageOptions{})
	}

	if l.transition.active {
		opts := &render.DrawImageOptions{Blend: render.BlendPremultiplied}
		opts.GeoM.Translate(l.transition.x, l.transition.y)
		target.DrawImage(l.transition.buffer, opts)
		return
	}

	l.rooms.Current().Draw(target, 0, 0)
	l.player.Draw(l.env.Renderer, target, 0, 0)
}

// Enter makes the location active again after Leave.
func (l *Location) Enter() {
	if !l.loaded {
		return
	}
	if cur := l.rooms.Current(); !cur.Initialized() {
		cur.Init(l.env.Renderer)
	}
}

// Leave stops any transition and frees the cached textures of the current
// room. Loaded content stays.
func (l *Location) Leave() {
	l.transition.abort()
	if cur := l.rooms.Current(); cur != nil {
		cur.Deinit()
	}
}

// Redraw rebuilds the cached textures of the current room.
func (l *Location) Redraw() {
	if !l.loaded {
		return
	}
	l.rooms.Current().Init(l.env.Renderer)
}

// PlayerRoomCoords returns the coordinates of the current room.
func (l *Location) PlayerRoomCoords() geom.Vec3i { return l.rooms.CurrentCoords() }

// SpawnCoords returns the spawn cell of the current room.
func (l *Location) SpawnCoords() geom.Vec2i {
	cur := l.CurrentRoom()
	if cur == nil {
		return geom.Vec2i{}
	}
	return cur.SpawnCoords()
}

// SpawnPosition returns the player position for the spawn cell of the
// current room.
func (l *Location) SpawnPosition() geom.Vec2f { return spawnPosition(l.SpawnCoords()) }
