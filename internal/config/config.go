package config

import "sync"

// RenderSettings holds runtime render tunables shared between the render
// thread and the logic goroutine.
type RenderSettings struct {
	mu               sync.RWMutex
	fpsLimit         int
	mouseSensitivity float64
	lookSpeed        float64
	moveSpeed        float64
}

var globalRenderSettings = &RenderSettings{
	fpsLimit:         60,
	mouseSensitivity: 0.1,
	lookSpeed:        90.0,
	moveSpeed:        2.5,
}

// GetFPSLimit returns the frame cap; 0 means uncapped.
func GetFPSLimit() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.fpsLimit
}

// SetFPSLimit sets the frame cap. Negative values mean uncapped.
func SetFPSLimit(limit int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	if limit < 0 {
		limit = 0
	}
	if limit > 1000 {
		limit = 1000
	}

	globalRenderSettings.fpsLimit = limit
}

// GetMouseSensitivity returns degrees of rotation per pixel of cursor travel.
func GetMouseSensitivity() float64 {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.mouseSensitivity
}

// SetMouseSensitivity sets degrees per pixel, clamped to [0.01, 1].
func SetMouseSensitivity(s float64) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	if s < 0.01 {
		s = 0.01
	}
	if s > 1 {
		s = 1
	}

	globalRenderSettings.mouseSensitivity = s
}

// GetLookSpeed returns degrees per second for keyboard look.
func GetLookSpeed() float64 {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.lookSpeed
}

// GetMoveSpeed returns world units per second for camera movement.
func GetMoveSpeed() float64 {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.moveSpeed
}

// SetMoveSpeed sets world units per second, clamped to [0.1, 50].
func SetMoveSpeed(speed float64) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	if speed < 0.1 {
		speed = 0.1
	}
	if speed > 50 {
		speed = 50
	}

	globalRenderSettings.moveSpeed = speed
}
