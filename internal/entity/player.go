// Package entity provides the player entity moved between rooms by the
// location that holds it.
package entity

import (
	"image/color"
	"time"

	"chosenoffset.com/burrow/internal/core/geom"
	"chosenoffset.com/burrow/internal/render"
)

const (
	PlayerWidth  = 30
	PlayerHeight = 60

	// Speeds in pixels per second.
	WalkSpeed   = 400
	SprintSpeed = 800

	// PlayerFrames is the length of the idle animation loop.
	PlayerFrames = 24
)

// PlayerColor is used for the placeholder body of the player.
var PlayerColor = color.RGBA{R: 0xE0, G: 0xC0, B: 0x40, A: 0xFF}

// Player is the entity controlled by the user. Position is the top left
// corner of its bounding box in room pixels.
type Player struct {
	pos   geom.Vec2f
	vel   geom.Vec2f // pixels per second
	frame int
}

// NewPlayer creates a player at the origin.
func NewPlayer() *Player {
	return &Player{}
}

// Position returns the top left corner of the player.
func (p *Player) Position() geom.Vec2f { return p.pos }

// SetPosition moves the player without changing its velocity.
func (p *Player) SetPosition(pos geom.Vec2f) { p.pos = pos }

// Velocity returns the current velocity.
func (p *Player) Velocity() geom.Vec2f { return p.vel }

// SetVelocity sets the velocity in pixels per second.
func (p *Player) SetVelocity(v geom.Vec2f) { p.vel = v }

// StopHorizontal zeroes the horizontal velocity.
func (p *Player) StopHorizontal() { p.vel.X = 0 }

// StopVertical zeroes the vertical velocity.
func (p *Player) StopVertical() { p.vel.Y = 0 }

// Bounds returns the bounding box of the player.
func (p *Player) Bounds() geom.Rect {
	return geom.Rect{X: p.pos.X, Y: p.pos.Y, W: PlayerWidth, H: PlayerHeight}
}

// Center returns the middle of the bounding box.
func (p *Player) Center() geom.Vec2f {
	return geom.Vec2f{X: p.pos.X + PlayerWidth/2, Y: p.pos.Y + PlayerHeight/2}
}

// SetCenter moves the player so its bounding box is centered on c.
func (p *Player) SetCenter(c geom.Vec2f) {
	p.pos = geom.Vec2f{X: c.X - PlayerWidth/2, Y: c.Y - PlayerHeight/2}
}

// Steer sets the velocity from a direction on each axis (-1, 0 or 1).
func (p *Player) Steer(dx, dy int, sprint bool) {
	speed := float64(WalkSpeed)
	if sprint {
		speed = SprintSpeed
	}
	p.vel = geom.Vec2f{X: float64(sign(dx)) * speed, Y: float64(sign(dy)) * speed}
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// NextFrame advances the animation by one frame.
func (p *Player) NextFrame() {
	p.frame = (p.frame + 1) % PlayerFrames
}

// Frame returns the current animation frame.
func (p *Player) Frame() int { return p.frame }

// Tick advances the player by its velocity.
func (p *Player) Tick(d time.Duration) {
	s := d.Seconds()
	p.pos.X += p.vel.X * s
	p.pos.Y += p.vel.Y * s
}

// Draw draws the player placeholder onto target shifted by (offX, offY).
func (p *Player) Draw(r render.Renderer, target render.Image, offX, offY float64) {
	r.FillRect(target, p.pos.X+offX, p.pos.Y+offY, PlayerWidth, PlayerHeight, PlayerColor, render.BlendAlpha)
}
