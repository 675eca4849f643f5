package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"mini-render/internal/graphics/gpu"

	"github.com/pkg/errors"
)

// WindowState is the initial presentation of the window.
type WindowState int

const (
	WindowNormal WindowState = iota
	WindowMinimized
	WindowMaximized
	WindowFullscreen
)

var windowStateNames = map[string]WindowState{
	"normal":     WindowNormal,
	"minimized":  WindowMinimized,
	"maximized":  WindowMaximized,
	"fullscreen": WindowFullscreen,
}

func (s WindowState) String() string {
	for name, v := range windowStateNames {
		if v == s {
			return strings.ToUpper(name[:1]) + name[1:]
		}
	}
	return "Unknown"
}

// UnmarshalJSON accepts the state name, case-insensitively.
func (s *WindowState) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "WindowState must be a string")
	}
	v, ok := windowStateNames[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return errors.Wrapf(gpu.ErrInvalidArgument, "couldn't parse WindowState %q", raw)
	}
	*s = v
	return nil
}

// WindowSettings describes the native window. Zero Width/Height mean the
// primary monitor's resolution.
type WindowSettings struct {
	Title       string      `json:"Title"`
	Width       int         `json:"Width"`
	Height      int         `json:"Height"`
	WindowState WindowState `json:"WindowState"`
}

// DefaultWindowSettings is used when no settings file is loaded.
var DefaultWindowSettings = WindowSettings{
	Title:       "mini-render",
	Width:       900,
	Height:      600,
	WindowState: WindowNormal,
}

// ObjectSpec places one textured cube in the scene.
type ObjectSpec struct {
	Texture  string     `json:"texture"`
	Position [3]float32 `json:"position"`
	// Spin is degrees per second around the x axis.
	Spin float32 `json:"spin"`
	// Bob is the amplitude of a vertical yoyo animation, 0 for none.
	Bob float32 `json:"bob"`
}

// CameraSpec is the camera's starting state.
type CameraSpec struct {
	Position [3]float32 `json:"position"`
	Yaw      float32    `json:"yaw"`
	Fov      float32    `json:"fov"`
}

// Scene lists the assets the renderer loads at startup.
type Scene struct {
	VertexShader   string       `json:"vertexShader"`
	FragmentShader string       `json:"fragmentShader"`
	Camera         CameraSpec   `json:"camera"`
	Objects        []ObjectSpec `json:"objects"`
}

// DefaultScene renders two crates in front of the camera.
var DefaultScene = Scene{
	VertexShader:   filepath.Join("assets", "shaders", "texture.vert"),
	FragmentShader: filepath.Join("assets", "shaders", "texture.frag"),
	Camera: CameraSpec{
		Position: [3]float32{0, 0, 3},
		Yaw:      -90,
		Fov:      45,
	},
	Objects: []ObjectSpec{
		{Texture: filepath.Join("assets", "textures", "crate.png"), Position: [3]float32{0, 0, 0}, Spin: 36},
		{Texture: filepath.Join("assets", "textures", "crate.png"), Position: [3]float32{2, 0, -2}, Bob: 0.25},
	},
}

// DefaultFramerate is the render loop's target rate in Hz.
const DefaultFramerate = 60.0

// Settings is the parsed settings.json.
type Settings struct {
	Default        WindowSettings  `json:"default"`
	Custom         *WindowSettings `json:"custom"`
	CustomOverride bool            `json:"customOverride"`
	Framerate      float64         `json:"framerate"`
	Scene          *Scene          `json:"scene"`
}

// Window returns the custom block when it exists and customOverride is set,
// the default block otherwise.
func (s *Settings) Window() WindowSettings {
	if s.CustomOverride && s.Custom != nil {
		return *s.Custom
	}
	return s.Default
}

// ActiveScene returns the configured scene or DefaultScene.
func (s *Settings) ActiveScene() Scene {
	if s.Scene == nil {
		return DefaultScene
	}
	return *s.Scene
}

// settingsFile mirrors Settings with a raw default block so a missing one can
// be told apart from an empty one, and customOverride can be a bool or string.
type settingsFile struct {
	Default        json.RawMessage `json:"default"`
	Custom         *WindowSettings `json:"custom"`
	CustomOverride json.RawMessage `json:"customOverride"`
	Framerate      float64         `json:"framerate"`
	Scene          *Scene          `json:"scene"`
}

// LoadSettings reads a settings file. The name must end in .json and a
// "default" block is required.
func LoadSettings(filename string) (*Settings, error) {
	if filename == "" || !strings.HasSuffix(strings.ToLower(filename), ".json") {
		return nil, errors.Wrapf(gpu.ErrInvalidArgument, "invalid settings filename %q", filename)
	}
	info, err := os.Stat(filename)
	if err != nil || info.IsDir() {
		return nil, errors.Wrapf(gpu.ErrNotFound, "settings file %s", filename)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "could not read settings file")
	}

	var raw settingsFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "could not unmarshal settings json")
	}

	if len(raw.Default) == 0 || string(raw.Default) == "null" {
		return nil, errors.Wrap(gpu.ErrInvalidArgument, "settings need a default block")
	}
	s := &Settings{
		Default:   DefaultWindowSettings,
		Custom:    raw.Custom,
		Framerate: raw.Framerate,
		Scene:     raw.Scene,
	}
	if err := json.Unmarshal(raw.Default, &s.Default); err != nil {
		return nil, errors.Wrap(err, "could not parse default block")
	}

	if s.CustomOverride, err = parseOverride(raw.CustomOverride); err != nil {
		return nil, err
	}
	if s.Framerate <= 0 {
		s.Framerate = DefaultFramerate
	}
	return s, nil
}

func parseOverride(raw json.RawMessage) (bool, error) {
	if len(raw) == 0 {
		return false, nil
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b, nil
	}
	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return false, errors.Wrap(gpu.ErrInvalidArgument, "customOverride must be a bool or string")
	}
	return strings.EqualFold(strings.TrimSpace(str), "true"), nil
}
