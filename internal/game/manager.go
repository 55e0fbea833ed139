// Package game adapts the campaign to the frame loop of the render engine:
// it reads input and console commands, advances time and draws.
package game

import (
	"errors"
	"time"

	"chosenoffset.com/burrow/internal/core/geom"
	"chosenoffset.com/burrow/internal/entity"
	"chosenoffset.com/burrow/internal/logging"
	"chosenoffset.com/burrow/internal/render"
	"chosenoffset.com/burrow/internal/world/room"
)

// ErrQuit is returned from Update when the user asks to quit.
var ErrQuit = errors.New("quit requested")

const (
	// AnimationFrame is the time between animation frames.
	AnimationFrame = time.Second / 30

	// Longer frames are cut so a stall does not throw the player across
	// the room.
	maxFrame = 100 * time.Millisecond
)

// World is the part of the campaign the frame loop drives.
type World interface {
	GotoRoom(dir geom.Direction) error
	GotoRoomCoords(coords geom.Vec3i) error
	ChangeLocation(id string) error
	Redraw()
	SetDebugBoxes(on bool)
	DebugBoxes() bool
	Tick(d time.Duration)
	NextFrame()
	Draw(target render.Image)
	LogWhereAmI()
	Player() *entity.Player
}

// Manager implements render.Game for a loaded campaign.
type Manager struct {
	World    World
	InputMgr render.InputManager
	Log      *logging.Logger

	commands  <-chan string
	now       func() time.Time
	last      time.Time
	animation time.Duration
}

// NewManager creates a manager driving w.
func NewManager(w World, input render.InputManager, log *logging.Logger) *Manager {
	return &Manager{
		World:    w,
		InputMgr: input,
		Log:      log,
		now:      time.Now,
	}
}

// SetCommands makes the manager run console commands received on ch.
func (m *Manager) SetCommands(ch <-chan string) {
	m.commands = ch
}

// Update handles input and advances the world by the time since the last call.
func (m *Manager) Update() error {
	now := m.now()
	var dt time.Duration
	if !m.last.IsZero() {
		dt = min(now.Sub(m.last), maxFrame)
	}
	m.last = now

	m.runCommands()

	if m.InputMgr.IsKeyJustPressed(render.KeyEscape) {
		return ErrQuit
	}
	m.handleKeys()

	m.World.Tick(dt)

	m.animation += dt
	for m.animation >= AnimationFrame {
		m.animation -= AnimationFrame
		m.World.NextFrame()
	}
	return nil
}

func (m *Manager) runCommands() {
	for m.commands != nil {
		select {
		case line, ok := <-m.commands:
			if !ok {
				m.commands = nil
				return
			}
			if err := m.Exec(line); err != nil {
				m.Log.Errorf("%s: %v", line, err)
			}
		default:
			return
		}
	}
}

var roomKeys = []struct {
	key render.Key
	dir geom.Direction
}{
	{render.KeyLeft, geom.DirLeft},
	{render.KeyRight, geom.DirRight},
	{render.KeyUp, geom.DirUp},
	{render.KeyDown, geom.DirDown},
	{render.KeyPageUp, geom.DirFront},
	{render.KeyPageDown, geom.DirBack},
}

func (m *Manager) handleKeys() {
	in := m.InputMgr
	for _, rk := range roomKeys {
		if in.IsKeyJustPressed(rk.key) {
			// failures are logged by the campaign
			_ = m.World.GotoRoom(rk.dir)
		}
	}
	if in.IsKeyJustPressed(render.KeyR) {
		m.World.Redraw()
	}
	if in.IsKeyJustPressed(render.KeyF1) {
		m.World.LogWhereAmI()
	}
	if in.IsKeyJustPressed(render.KeyB) {
		m.World.SetDebugBoxes(!m.World.DebugBoxes())
	}

	dx, dy := 0, 0
	if in.IsKeyPressed(render.KeyA) {
		dx--
	}
	if in.IsKeyPressed(render.KeyD) {
		dx++
	}
	if in.IsKeyPressed(render.KeyW) {
		dy--
	}
	if in.IsKeyPressed(render.KeyS) {
		dy++
	}
	m.World.Player().Steer(dx, dy, in.IsKeyPressed(render.KeyShift))
}

// Draw draws the world.
func (m *Manager) Draw(screen render.Image) {
	screen.Clear()
	m.World.Draw(screen)
}

// Layout always reports the game area; the engine scales it to the window.
func (m *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	return room.GameAreaWidth, room.GameAreaHeight
}
