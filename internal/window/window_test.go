package window

import (
	"sync"
	"testing"

	"mini-render/internal/config"
	"mini-render/internal/graphics/gpu"
	"mini-render/internal/graphics/gpu/gputest"
	"mini-render/internal/input"
	"mini-render/internal/logger"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeSurface struct {
	closeAfter int
	polls      int
	closed     bool
	swaps      int
	destroyed  int
	keys       map[input.Key]bool
	onResize   func(w, h int)
}

func (s *fakeSurface) ShouldClose() bool {
	return s.closed || (s.closeAfter > 0 && s.polls >= s.closeAfter)
}
func (s *fakeSurface) SetShouldClose(v bool)                       { s.closed = v }
func (s *fakeSurface) SwapBuffers()                                { s.swaps++ }
func (s *fakeSurface) KeyDown(k input.Key) bool                    { return s.keys[k] }
func (s *fakeSurface) CursorPos() (float64, float64)               { return 0, 0 }
func (s *fakeSurface) FramebufferSize() (int, int)                 { return 800, 600 }
func (s *fakeSurface) SetFramebufferSizeCallback(f func(w, h int)) { s.onResize = f }
func (s *fakeSurface) Destroy()                                    { s.destroyed++ }

type fakePlatform struct {
	surface    *fakeSurface
	err        error
	terminated int
}

func (p *fakePlatform) CreateSurface(config.WindowSettings) (Surface, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.surface, nil
}
func (p *fakePlatform) PollEvents() { p.surface.polls++ }
func (p *fakePlatform) Terminate()  { p.terminated++ }

type fakeRenderer struct {
	env      LoadEnv
	frames   int
	resized  [][2]int
	disposed int
	onFrame  func()
	leak     bool
}

func (r *fakeRenderer) Render(dt float64) {
	r.frames++
	if r.onFrame != nil {
		r.onFrame()
	}
}
func (r *fakeRenderer) Resize(w, h int) { r.resized = append(r.resized, [2]int{w, h}) }
func (r *fakeRenderer) Dispose()        { r.disposed++ }

type recordingObserver struct {
	name string
	log  *[]string
	mu   *sync.Mutex
}

func (o recordingObserver) Notify(message string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	*o.log = append(*o.log, o.name+":"+message)
}

type harness struct {
	platform *fakePlatform
	renderer *fakeRenderer
	device   *gputest.Device
	window   *RenderWindow
}

func newHarness(closeAfter int) *harness {
	h := &harness{
		platform: &fakePlatform{surface: &fakeSurface{closeAfter: closeAfter, keys: map[input.Key]bool{}}},
		renderer: &fakeRenderer{},
		device:   gputest.New(),
	}
	h.window = newRenderWindow(config.DefaultWindowSettings, 0, Options{
		Platform:  h.platform,
		NewDevice: func() (gpu.Device, error) { return h.device, nil },
		NewRenderer: func(env LoadEnv) (Renderer, error) {
			h.renderer.env = env
			if h.renderer.leak {
				env.Context.Track(gpu.KindBuffer, env.Context.Device.GenBuffer())
			}
			return h.renderer, nil
		},
	})
	return h
}

func TestHolderKeepsFirstInstance(t *testing.T) {
	var h Holder
	if h.GetInstance() != nil {
		t.Fatalf("Expected no instance before initialization")
	}

	a := config.WindowSettings{Title: "A", Width: 100, Height: 100}
	b := config.WindowSettings{Title: "B", Width: 200, Height: 200}
	w1 := h.InitializeInstance(a, 60, Options{})
	w2 := h.InitializeInstance(b, 30, Options{})

	if w1 != w2 || h.GetInstance() != w1 {
		t.Fatalf("Expected the same instance from every call")
	}
	if w2.Settings().Title != "A" {
		t.Errorf("Expected first settings to be kept, got %q", w2.Settings().Title)
	}
}

func TestRunLoopsUntilSurfaceCloses(t *testing.T) {
	h := newHarness(3)

	if err := h.window.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if h.renderer.frames != 3 {
		t.Errorf("Expected 3 frames, got %d", h.renderer.frames)
	}
	if h.renderer.disposed != 1 {
		t.Errorf("Expected renderer disposed once, got %d", h.renderer.disposed)
	}
	if h.platform.surface.destroyed != 1 || h.platform.terminated != 1 {
		t.Errorf("Expected surface destroyed and platform terminated")
	}
	if h.renderer.env.Width != 800 || h.renderer.env.Height != 600 {
		t.Errorf("Expected renderer to get framebuffer size, got %dx%d", h.renderer.env.Width, h.renderer.env.Height)
	}
	if h.window.Running() {
		t.Errorf("Expected loop to be stopped")
	}
}

func TestObserversNotifiedOnceInOrder(t *testing.T) {
	h := newHarness(0)
	var log []string
	var mu sync.Mutex
	h.window.AddObserver(recordingObserver{"first", &log, &mu})
	h.window.AddObserver(recordingObserver{"second", &log, &mu})
	removed := h.window.AddObserver(recordingObserver{"removed", &log, &mu})
	if !h.window.RemoveObserver(removed) {
		t.Fatalf("Expected registration to be removed")
	}

	h.renderer.onFrame = h.window.Close
	if err := h.window.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if err := h.window.Run(); err == nil {
		t.Errorf("Expected second Run to fail")
	}

	want := []string{"first:" + MessageWindowClose, "second:" + MessageWindowClose}
	if len(log) != len(want) {
		t.Fatalf("Expected %v, got %v", want, log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("notification %d: expected %q, got %q", i, want[i], log[i])
		}
	}
	if h.renderer.frames != 1 {
		t.Errorf("Expected the close request to end the loop after one frame, got %d", h.renderer.frames)
	}
}

func TestCloseFromAnotherGoroutine(t *testing.T) {
	h := newHarness(0)
	var once sync.Once
	done := make(chan struct{})
	h.renderer.onFrame = func() {
		once.Do(func() {
			go func() {
				h.window.Close()
				close(done)
			}()
		})
		<-done
	}

	if err := h.window.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if h.renderer.frames < 1 {
		t.Errorf("Expected at least one frame")
	}
}

func TestRendererFailureIsReturnedAndObserversNotified(t *testing.T) {
	h := newHarness(3)
	loadErr := errors.Wrap(gpu.ErrNotFound, "texture")
	h.window.opts.NewRenderer = func(LoadEnv) (Renderer, error) { return nil, loadErr }

	var log []string
	var mu sync.Mutex
	h.window.AddObserver(recordingObserver{"runner", &log, &mu})

	err := h.window.Run()
	if !errors.Is(err, gpu.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	if len(log) != 1 {
		t.Errorf("Expected one notification on failure, got %v", log)
	}
	if h.platform.surface.destroyed != 1 {
		t.Errorf("Expected surface destroyed after failed load")
	}
	if h.platform.surface.polls != 0 {
		t.Errorf("Loop must not run after a failed load")
	}
}

func TestPlatformFailure(t *testing.T) {
	h := newHarness(1)
	h.platform.err = errors.New("no display")

	if err := h.window.Run(); err == nil {
		t.Fatalf("Expected error from platform")
	}
	if h.platform.terminated != 1 {
		t.Errorf("Expected platform terminated")
	}
}

func TestResizeForwardsViewport(t *testing.T) {
	h := newHarness(2)
	h.renderer.onFrame = func() {
		h.platform.surface.onResize(1024, 768)
	}

	if err := h.window.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	last := h.device.Viewports[len(h.device.Viewports)-1]
	if last != [4]int{0, 0, 1024, 768} {
		t.Errorf("Expected viewport 1024x768, got %v", last)
	}
	if len(h.renderer.resized) == 0 || h.renderer.resized[0] != [2]int{1024, 768} {
		t.Errorf("Expected renderer resize, got %v", h.renderer.resized)
	}
}

func TestKeysAreSampledEachFrame(t *testing.T) {
	h := newHarness(1)
	h.platform.surface.keys[input.KeyEscape] = true
	h.platform.surface.keys[input.KeyLeftShift] = true

	if err := h.window.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	im := h.window.Input()
	if !im.IsActive(input.ActionQuit) || !im.IsActive(input.ActionQuitModifier) {
		t.Errorf("Expected quit actions sampled from the surface")
	}
}

func TestLeaksAreReportedOnUnload(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	defer logger.Replace(zap.New(core))()

	h := newHarness(1)
	h.renderer.leak = true
	if err := h.window.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if n := logs.FilterMessage("GPU resource leak from Buffer").Len(); n != 1 {
		t.Errorf("Expected one leak warning, got %d", n)
	}
}
