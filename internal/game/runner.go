package game

import (
	"sync"
	"sync/atomic"
	"time"

	"mini-render/internal/input"
	"mini-render/internal/logger"
	"mini-render/internal/window"

	"go.uber.org/zap"
)

// DefaultPollInterval is how often the runner samples input.
const DefaultPollInterval = time.Millisecond

// Window is the part of the render window the logic goroutine may touch.
type Window interface {
	Input() *input.InputManager
	Close()
}

// GameRunner is the logic loop. It watches for the quit gesture and stops
// when the window reports that it closed.
type GameRunner struct {
	window       Window
	pollInterval time.Duration

	running  atomic.Bool
	stopped  chan struct{}
	stopOnce sync.Once
}

// NewGameRunner returns a running GameRunner. w may be nil, in which case
// the first ProcessInput stops it.
func NewGameRunner(w Window) *GameRunner {
	g := &GameRunner{
		window:       w,
		pollInterval: DefaultPollInterval,
		stopped:      make(chan struct{}),
	}
	g.running.Store(true)
	return g
}

// Run loops until stopped, processing input once per poll interval.
func (g *GameRunner) Run() {
	ticker := time.NewTicker(g.pollInterval)
	defer ticker.Stop()

	for g.Running() {
		g.ProcessInput()

		select {
		case <-ticker.C:
		case <-g.stopped:
		}
	}
	logger.Log.Info("game runner stopped")
}

// ProcessInput requests a quit on Shift+Escape.
func (g *GameRunner) ProcessInput() {
	if g.window == nil {
		logger.Log.Error("game runner has no window")
		g.Quit()
		return
	}

	im := g.window.Input()
	if im.IsActive(input.ActionQuitModifier) && im.IsActive(input.ActionQuit) {
		g.Quit()
	}
}

// Notify implements window.Observer.
func (g *GameRunner) Notify(message string) {
	if message != window.MessageWindowClose {
		logger.Log.Debug("ignoring window message", zap.String("message", message))
		return
	}
	g.stop()
}

// Quit closes the window, or stops directly when there is none. The runner
// itself stops once the window's close notification arrives.
func (g *GameRunner) Quit() {
	if g.window == nil {
		g.stop()
		return
	}
	g.window.Close()
}

func (g *GameRunner) Running() bool { return g.running.Load() }

func (g *GameRunner) stop() {
	g.stopOnce.Do(func() {
		g.running.Store(false)
		close(g.stopped)
	})
}
