// Package render abstracts the graphics engine so the world packages can
// build and draw their cached textures without depending on a backend.
package render

import (
	"image"
	"image/color"
)

// Renderer is the main rendering interface that abstracts the underlying
// graphics engine. This allows swapping rendering backends without changing
// game logic.
type Renderer interface {
	// NewImage creates an offscreen render target.
	NewImage(width, height int) Image

	// FillRect fills a rectangle on dst using the given blend mode.
	FillRect(dst Image, x, y, width, height float64, clr color.Color, blend BlendMode)

	// StrokeRect draws a rectangle outline on dst.
	StrokeRect(dst Image, x, y, width, height, strokeWidth float64, clr color.Color)
}

// Image represents a renderable image surface that can be drawn to or drawn from.
// It abstracts the underlying image implementation.
type Image interface {
	// Properties
	Bounds() image.Rectangle
	Size() (width, height int)

	// Sub-image extraction
	SubImage(r image.Rectangle) Image

	// Fill operations
	Fill(clr color.Color)
	Clear()

	// Drawing operations
	DrawImage(src Image, opts *DrawImageOptions)

	// Resource management
	Dispose()
}

// DrawImageOptions contains options for drawing an image.
type DrawImageOptions struct {
	GeoM GeoM

	// ColorScale multiplies every source pixel. Nil leaves colors untouched.
	ColorScale color.Color

	Blend BlendMode
}

// BlendMode selects how source pixels are combined with the destination.
type BlendMode int

const (
	// BlendAlpha is regular source-over alpha blending.
	BlendAlpha BlendMode = iota
	// BlendPremultiplied adds the source and scales the destination by the
	// inverse source alpha. Used when redrawing textures that were composed
	// with alpha blending so their alpha is not applied twice.
	BlendPremultiplied
	// BlendNone replaces destination pixels with source pixels.
	BlendNone
	// BlendOverlay multiplies the destination by the source color.
	BlendOverlay
	// BlendCutout erases the destination where the source is opaque.
	BlendCutout
)

func (b BlendMode) String() string {
	switch b {
	case BlendAlpha:
		return "alpha"
	case BlendPremultiplied:
		return "premultiplied"
	case BlendNone:
		return "none"
	case BlendOverlay:
		return "overlay"
	case BlendCutout:
		return "cutout"
	}
	return "unknown"
}

// InputManager handles input from the user.
type InputManager interface {
	IsKeyPressed(key Key) bool
	IsKeyJustPressed(key Key) bool
}

// Key represents a keyboard key.
type Key int

// Key constants for the keys the engine reacts to
const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyPageUp   // move to the room in front
	KeyPageDown // move to the room behind
	KeyR        // rebuild room caches
	KeyF1       // log position
	KeyB        // toggle debug boxes
	KeyW
	KeyA
	KeyS
	KeyD
	KeyShift
	KeyEscape
)

// ResourceLoader handles loading resources like images from disk.
type ResourceLoader interface {
	LoadImage(path string) (Image, error)
}

// Game represents the game interface that the engine will call.
// This is typically implemented by the main game struct.
type Game interface {
	// Update updates the game logic. It is called every tick (typically 60 times per second).
	Update() error

	// Draw draws the game screen. It is called every frame.
	Draw(screen Image)

	// Layout accepts the outside size (e.g., window size) and returns the logical screen size.
	// The logical screen size is used for rendering and input coordinates.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine represents the game engine that manages the game loop and window.
type Engine interface {
	// SetWindowSize sets the window size in pixels.
	SetWindowSize(width, height int)

	// SetWindowTitle sets the window title.
	SetWindowTitle(title string)

	// SetWindowResizable enables or disables window resizing.
	SetWindowResizable(resizable bool)

	// RunGame runs the game loop with the provided game.
	// This is a blocking call that runs until the game ends.
	RunGame(game Game) error
}
