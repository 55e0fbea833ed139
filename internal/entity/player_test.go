package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"chosenoffset.com/burrow/internal/core/geom"
	"chosenoffset.com/burrow/internal/render/rendertest"
)

func TestPlayerTick(t *testing.T) {
	p := NewPlayer()
	p.SetPosition(geom.Vec2f{X: 100, Y: 200})
	p.SetVelocity(geom.Vec2f{X: 60, Y: -30})

	p.Tick(500 * time.Millisecond)
	assert.InDelta(t, 130, p.Position().X, 1e-9)
	assert.InDelta(t, 185, p.Position().Y, 1e-9)

	p.StopHorizontal()
	p.Tick(time.Second)
	assert.InDelta(t, 130, p.Position().X, 1e-9)
	assert.InDelta(t, 155, p.Position().Y, 1e-9)

	p.StopVertical()
	assert.Equal(t, geom.Vec2f{}, p.Velocity())
	assert.Equal(t, geom.Vec2f{X: 145, Y: 185}, p.Center())

	p.SetCenter(geom.Vec2f{X: 60, Y: 40})
	assert.Equal(t, geom.Vec2f{X: 45, Y: 10}, p.Position())
}

func TestPlayerDraw(t *testing.T) {
	p := NewPlayer()
	p.SetPosition(geom.Vec2f{X: 10, Y: 20})
	target := rendertest.NewImage("screen", 100, 100)
	p.Draw(&rendertest.Renderer{}, target, 5, 0)

	ops := target.Ops()
	if assert.Len(t, ops, 1) {
		assert.Equal(t, rendertest.OpFill, ops[0].Kind)
		assert.Equal(t, 15.0, ops[0].X)
		assert.Equal(t, float64(PlayerHeight), ops[0].H)
	}
}

func TestPlayerSteer(t *testing.T) {
	p := NewPlayer()
	p.Steer(-3, 0, false)
	assert.Equal(t, geom.Vec2f{X: -WalkSpeed}, p.Velocity())

	p.Steer(1, 1, true)
	assert.Equal(t, geom.Vec2f{X: SprintSpeed, Y: SprintSpeed}, p.Velocity())

	p.Steer(0, 0, true)
	assert.Equal(t, geom.Vec2f{}, p.Velocity())
}

func TestPlayerNextFrameWraps(t *testing.T) {
	p := NewPlayer()
	for i := 0; i < PlayerFrames-1; i++ {
		p.NextFrame()
	}
	assert.Equal(t, PlayerFrames-1, p.Frame())
	p.NextFrame()
	assert.Zero(t, p.Frame())
}
