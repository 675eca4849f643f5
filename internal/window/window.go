package window

import (
	"sync"
	"sync/atomic"
	"time"

	"mini-render/internal/config"
	"mini-render/internal/graphics/gpu"
	"mini-render/internal/input"
	"mini-render/internal/logger"
	"mini-render/internal/profiling"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const slowFrame = 16 * time.Millisecond

// Renderer is what the window drives each frame.
type Renderer interface {
	Render(dt float64)
	Resize(width, height int)
	Dispose()
}

// LoadEnv is handed to Options.NewRenderer once the context exists.
type LoadEnv struct {
	Context *gpu.Context
	Window  *RenderWindow
	Input   *input.InputManager
	Width   int
	Height  int
}

// Options wires the window to its platform, graphics device and renderer.
type Options struct {
	Platform    Platform
	NewDevice   func() (gpu.Device, error)
	NewRenderer func(env LoadEnv) (Renderer, error)
}

// RenderWindow runs the render loop on the thread that calls Run.
type RenderWindow struct {
	settings  config.WindowSettings
	framerate float64
	opts      Options

	mu               sync.Mutex
	observers        []registration
	nextRegistration Registration
	notifyOnce       sync.Once

	started        atomic.Bool
	running        atomic.Bool
	closeRequested atomic.Bool

	input    *input.InputManager
	surface  Surface
	ctx      *gpu.Context
	renderer Renderer
}

func newRenderWindow(settings config.WindowSettings, framerate float64, opts Options) *RenderWindow {
	return &RenderWindow{
		settings:  settings,
		framerate: framerate,
		opts:      opts,
		input:     input.NewInputManager(),
	}
}

// Run opens the window, loads the renderer and loops until the window is
// closed. Observers are notified when Run returns, including on failure.
// Run may only be called once.
func (w *RenderWindow) Run() error {
	if !w.started.CompareAndSwap(false, true) {
		return errors.New("window has already been run")
	}
	defer w.notifyObservers()

	if err := w.load(); err != nil {
		logger.Log.Error("couldn't load window", zap.Error(err))
		w.unload()
		return err
	}

	w.running.Store(true)
	w.loop()
	w.running.Store(false)

	w.unload()
	return nil
}

func (w *RenderWindow) load() error {
	if w.opts.Platform == nil || w.opts.NewDevice == nil || w.opts.NewRenderer == nil {
		return errors.Wrap(gpu.ErrInvalidArgument, "window options are incomplete")
	}

	surface, err := w.opts.Platform.CreateSurface(w.settings)
	if err != nil {
		return errors.Wrap(err, "create window")
	}
	w.surface = surface

	dev, err := w.opts.NewDevice()
	if err != nil {
		return errors.Wrap(err, "create graphics device")
	}
	w.ctx = gpu.NewContext(dev)

	width, height := surface.FramebufferSize()
	dev.Viewport(0, 0, width, height)

	r, err := w.opts.NewRenderer(LoadEnv{
		Context: w.ctx,
		Window:  w,
		Input:   w.input,
		Width:   width,
		Height:  height,
	})
	if err != nil {
		return errors.Wrap(err, "load renderer")
	}
	w.renderer = r

	surface.SetFramebufferSizeCallback(w.resize)
	logger.Log.Info("window loaded",
		zap.String("title", w.settings.Title),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Stringer("state", w.settings.WindowState),
	)
	return nil
}

func (w *RenderWindow) loop() {
	pacer := NewFramePacer(w.framerate)
	last := time.Now()

	for !w.surface.ShouldClose() {
		if w.closeRequested.Load() {
			w.surface.SetShouldClose(true)
			continue
		}

		profiling.ResetFrame()
		now := time.Now()
		dt := now.Sub(last).Seconds()
		last = now

		stop := profiling.Track("window.PollEvents")
		w.opts.Platform.PollEvents()
		stop()

		w.input.Sample(w.surface.KeyDown)
		w.renderer.Render(dt)
		w.input.PostUpdate()

		if frame := profiling.Elapsed(); frame > slowFrame {
			logger.Log.Debug("slow frame", zap.Duration("frame", frame), zap.String("top", profiling.TopN(5)))
		}

		pacer.Wait()
	}
}

func (w *RenderWindow) unload() {
	if w.renderer != nil {
		w.renderer.Dispose()
	}
	if w.ctx != nil {
		if leaks := w.ctx.Tracker.Report(logger.Log); leaks == 0 {
			logger.Log.Info("all GPU resources released")
		}
	}
	if w.surface != nil {
		w.surface.Destroy()
	}
	if w.opts.Platform != nil {
		w.opts.Platform.Terminate()
	}
}

func (w *RenderWindow) resize(width, height int) {
	w.ctx.Device.Viewport(0, 0, width, height)
	if w.renderer != nil {
		w.renderer.Resize(width, height)
	}
}

// Close asks the loop to end. Safe from any goroutine; the render thread
// applies it on its next iteration.
func (w *RenderWindow) Close() {
	w.closeRequested.Store(true)
}

// Running reports whether the render loop is active.
func (w *RenderWindow) Running() bool { return w.running.Load() }

// Input returns the keyboard state sampled each frame.
func (w *RenderWindow) Input() *input.InputManager { return w.input }

func (w *RenderWindow) Settings() config.WindowSettings { return w.settings }

// SwapBuffers presents the back buffer. Render thread only.
func (w *RenderWindow) SwapBuffers() {
	w.surface.SwapBuffers()
}

// CursorPos is the cursor position in window coordinates. Render thread only.
func (w *RenderWindow) CursorPos() (float64, float64) {
	return w.surface.CursorPos()
}
