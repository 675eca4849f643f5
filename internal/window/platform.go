// Package window owns the native window, its render loop and the shutdown
// notification sent to observers when the loop ends.
package window

import (
	"mini-render/internal/config"
	"mini-render/internal/input"
)

// Platform opens native windows and pumps their events.
type Platform interface {
	CreateSurface(settings config.WindowSettings) (Surface, error)
	PollEvents()
	Terminate()
}

// Surface is one native window with a current graphics context. All methods
// are called from the render thread.
type Surface interface {
	ShouldClose() bool
	SetShouldClose(bool)
	SwapBuffers()
	KeyDown(key input.Key) bool
	CursorPos() (float64, float64)
	FramebufferSize() (int, int)
	SetFramebufferSizeCallback(func(width, height int))
	Destroy()
}
