package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"mini-render/internal/config"
	"mini-render/internal/game"
	"mini-render/internal/graphics"
	"mini-render/internal/graphics/gpu"
	"mini-render/internal/graphics/gpu/opengl"
	"mini-render/internal/graphics/renderer"
	"mini-render/internal/logger"
	"mini-render/internal/window"
	"mini-render/internal/window/glfwplatform"

	"github.com/xlab/closer"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func init() {
	// GLFW and GL calls must stay on the main thread
	runtime.LockOSThread()
}

func main() {
	settingsPath := flag.String("settings", "settings.json", "path to the settings file")
	logPath := flag.String("log", logger.DefaultPath, "path to the log file")
	flag.Parse()

	if err := logger.Init(*logPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	settings, err := config.LoadSettings(*settingsPath)
	if err != nil {
		logger.Log.Error("couldn't load settings", zap.String("path", *settingsPath), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	platform, err := glfwplatform.New()
	if err != nil {
		logger.Log.Error("couldn't start platform", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	var holder window.Holder
	win := holder.InitializeInstance(settings.Window(), settings.Framerate, window.Options{
		Platform:  platform,
		NewDevice: newDevice,
		NewRenderer: func(env window.LoadEnv) (window.Renderer, error) {
			return renderer.New(env.Context, env.Window, renderer.Options{
				Scene:  settings.ActiveScene(),
				Width:  env.Width,
				Height: env.Height,
				Input:  env.Input,
				Loader: graphics.FileImageLoader{},
			})
		},
	})

	runner := game.NewGameRunner(win)
	win.AddObserver(runner)

	finished := make(chan struct{})
	closer.Bind(func() {
		// signal path: let the render loop unwind before exiting
		win.Close()
		select {
		case <-finished:
		case <-time.After(2 * time.Second):
			logger.Log.Warn("render loop did not stop in time")
		}
		logger.Sync()
	})

	var logic errgroup.Group
	logic.Go(func() error {
		runner.Run()
		return nil
	})

	runErr := win.Run()
	close(finished)
	_ = logic.Wait()

	if runErr != nil {
		logger.Log.Error("render window failed", zap.Error(runErr))
		closer.Exit(1)
	}
	logger.AppendLine("shutdown complete")
	closer.Close()
}

func newDevice() (gpu.Device, error) {
	dev, err := opengl.New()
	if err != nil {
		return nil, err
	}
	logger.Log.Info("OpenGL initialized", zap.String("version", dev.Version()))
	return dev, nil
}
