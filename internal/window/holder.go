package window

import (
	"sync"

	"mini-render/internal/config"
)

// Holder keeps the process's single RenderWindow.
type Holder struct {
	mu       sync.Mutex
	instance *RenderWindow
}

// GetInstance returns the window, or nil before InitializeInstance.
func (h *Holder) GetInstance() *RenderWindow {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.instance
}

// InitializeInstance creates the window on first use. Later calls return the
// existing window and ignore their arguments.
func (h *Holder) InitializeInstance(settings config.WindowSettings, framerate float64, opts Options) *RenderWindow {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.instance == nil {
		h.instance = newRenderWindow(settings, framerate, opts)
	}
	return h.instance
}
