package renderer

import (
	"mini-render/internal/config"
	"mini-render/internal/graphics"
	"mini-render/internal/input"
)

// Window is what the renderer needs from its host window.
type Window interface {
	CursorPos() (float64, float64)
	SwapBuffers()
}

// State is the renderer lifecycle: Uninitialized → Initialized → Disposed.
type State int

const (
	Uninitialized State = iota
	Initialized
	Disposed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Initialized:
		return "Initialized"
	case Disposed:
		return "Disposed"
	}
	return "Unknown"
}

// Options configures New.
type Options struct {
	Scene  config.Scene
	Width  int
	Height int
	// Input may be nil, in which case only the cursor moves the camera.
	Input  *input.InputManager
	Loader graphics.ImageLoader
}
