// Package glfwplatform opens windows with GLFW and an OpenGL 4.1 core context.
package glfwplatform

import (
	"mini-render/internal/config"
	"mini-render/internal/input"
	"mini-render/internal/logger"
	"mini-render/internal/window"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Platform must be created and used on the main OS thread.
type Platform struct{}

// New initializes GLFW.
func New() (*Platform, error) {
	if err := glfw.Init(); err != nil {
		return nil, errors.Wrap(err, "failed to initialize glfw")
	}
	return &Platform{}, nil
}

func (p *Platform) CreateSurface(settings config.WindowSettings) (window.Surface, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	if settings.WindowState == config.WindowMaximized {
		glfw.WindowHint(glfw.Maximized, glfw.True)
	}

	monitor := glfw.GetPrimaryMonitor()
	width, height := settings.Width, settings.Height
	if (width <= 0 || height <= 0) && monitor != nil {
		mode := monitor.GetVideoMode()
		width, height = mode.Width, mode.Height
	}

	var fullscreen *glfw.Monitor
	if settings.WindowState == config.WindowFullscreen {
		fullscreen = monitor
	}

	win, err := glfw.CreateWindow(width, height, settings.Title, fullscreen, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create glfw window")
	}

	if fullscreen == nil && monitor != nil {
		mode := monitor.GetVideoMode()
		win.SetPos((mode.Width-width)/2, (mode.Height-height)/2)
	}
	if settings.WindowState == config.WindowMinimized {
		win.Iconify()
	}

	win.MakeContextCurrent()
	glfw.SwapInterval(1)
	win.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)

	logger.Log.Info("glfw window created",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Stringer("state", settings.WindowState),
	)
	return &surface{win: win}, nil
}

func (p *Platform) PollEvents() { glfw.PollEvents() }

func (p *Platform) Terminate() { glfw.Terminate() }

type surface struct {
	win *glfw.Window
}

func (s *surface) ShouldClose() bool { return s.win.ShouldClose() }

func (s *surface) SetShouldClose(v bool) { s.win.SetShouldClose(v) }

func (s *surface) SwapBuffers() { s.win.SwapBuffers() }

// KeyDown relies on input.Key sharing GLFW's key codes.
func (s *surface) KeyDown(key input.Key) bool {
	return s.win.GetKey(glfw.Key(key)) == glfw.Press
}

func (s *surface) CursorPos() (float64, float64) { return s.win.GetCursorPos() }

func (s *surface) FramebufferSize() (int, int) { return s.win.GetFramebufferSize() }

func (s *surface) SetFramebufferSizeCallback(f func(width, height int)) {
	s.win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		f(width, height)
	})
}

func (s *surface) Destroy() { s.win.Destroy() }
