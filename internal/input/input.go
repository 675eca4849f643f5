package input

import (
	"sync"
)

// Key is a physical keyboard key. Values match GLFW key codes so a platform
// layer can convert with a plain cast.
type Key int

const (
	KeySpace        Key = 32
	KeyA            Key = 65
	KeyD            Key = 68
	KeyE            Key = 69
	KeyQ            Key = 81
	KeyS            Key = 83
	KeyW            Key = 87
	KeyEscape       Key = 256
	KeyRight        Key = 262
	KeyLeft         Key = 263
	KeyDown         Key = 264
	KeyUp           Key = 265
	KeyLeftShift    Key = 340
	KeyLeftControl  Key = 341
	KeyRightShift   Key = 344
	KeyRightControl Key = 345
)

// Action represents a logical action, not a physical key
type Action int

const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionLookLeft
	ActionLookRight
	ActionLookUp
	ActionLookDown
	ActionQuitModifier
	ActionQuit
	ActionCount // Sentinel value for array sizing
)

// KeyQuery reports whether a key is currently held.
type KeyQuery func(Key) bool

// InputManager maps physical keys to logical actions and keeps the sampled
// state of each action. Sample is called on the render thread; any goroutine
// may read.
type InputManager struct {
	mu sync.RWMutex

	// one key can map to multiple actions
	keyToActions map[Key][]Action

	currentState [ActionCount]bool

	// reset by PostUpdate
	justPressed  [ActionCount]bool
	justReleased [ActionCount]bool
}

// NewInputManager creates an InputManager with the default bindings:
// WASD to move, Space/Ctrl up and down, arrows to look, Shift+Escape to quit.
func NewInputManager() *InputManager {
	im := &InputManager{
		keyToActions: make(map[Key][]Action),
	}

	im.BindKey(KeyW, ActionMoveForward)
	im.BindKey(KeyS, ActionMoveBackward)
	im.BindKey(KeyA, ActionMoveLeft)
	im.BindKey(KeyD, ActionMoveRight)
	im.BindKey(KeySpace, ActionMoveUp)
	im.BindKey(KeyLeftControl, ActionMoveDown)

	im.BindKey(KeyLeft, ActionLookLeft)
	im.BindKey(KeyRight, ActionLookRight)
	im.BindKey(KeyUp, ActionLookUp)
	im.BindKey(KeyDown, ActionLookDown)

	im.BindKey(KeyLeftShift, ActionQuitModifier)
	im.BindKey(KeyRightShift, ActionQuitModifier)
	im.BindKey(KeyEscape, ActionQuit)

	return im
}

// BindKey binds a physical key to a logical action.
// Multiple keys can be bound to the same action.
func (im *InputManager) BindKey(key Key, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}

	im.mu.Lock()
	defer im.mu.Unlock()

	im.keyToActions[key] = append(im.keyToActions[key], action)
}

// UnbindKey removes all action bindings for a key
func (im *InputManager) UnbindKey(key Key) {
	im.mu.Lock()
	defer im.mu.Unlock()

	delete(im.keyToActions, key)
}

// BoundKeys returns every key with at least one binding.
func (im *InputManager) BoundKeys() []Key {
	im.mu.RLock()
	defer im.mu.RUnlock()

	keys := make([]Key, 0, len(im.keyToActions))
	for k := range im.keyToActions {
		keys = append(keys, k)
	}
	return keys
}

// Sample polls every bound key through query and updates action state. An
// action is active while any of its keys is held.
func (im *InputManager) Sample(query KeyQuery) {
	im.mu.Lock()
	defer im.mu.Unlock()

	var next [ActionCount]bool
	for key, actions := range im.keyToActions {
		if !query(key) {
			continue
		}
		for _, act := range actions {
			next[act] = true
		}
	}

	for i := Action(0); i < ActionCount; i++ {
		if next[i] && !im.currentState[i] {
			im.justPressed[i] = true
		}
		if !next[i] && im.currentState[i] {
			im.justReleased[i] = true
		}
		im.currentState[i] = next[i]
	}
}

// PostUpdate clears the edge flags. Call once per frame after all checks.
func (im *InputManager) PostUpdate() {
	im.mu.Lock()
	defer im.mu.Unlock()

	im.justPressed = [ActionCount]bool{}
	im.justReleased = [ActionCount]bool{}
}

// IsActive returns true if the action is currently held down
func (im *InputManager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.currentState[action]
}

// JustPressed returns true only in the frame the action became active
func (im *InputManager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.justPressed[action]
}

// JustReleased returns true only in the frame the action became inactive
func (im *InputManager) JustReleased(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.justReleased[action]
}

// Axis returns -1, 0 or 1 from a pair of opposing actions.
func (im *InputManager) Axis(negative, positive Action) float32 {
	var v float32
	if im.IsActive(negative) {
		v--
	}
	if im.IsActive(positive) {
		v++
	}
	return v
}
