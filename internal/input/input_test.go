package input

import "testing"

func held(keys ...Key) KeyQuery {
	set := make(map[Key]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return func(k Key) bool { return set[k] }
}

func TestSampleEdges(t *testing.T) {
	im := NewInputManager()

	im.Sample(held(KeyW))
	if !im.IsActive(ActionMoveForward) || !im.JustPressed(ActionMoveForward) {
		t.Fatalf("Expected MoveForward active and just pressed")
	}
	im.PostUpdate()

	im.Sample(held(KeyW))
	if !im.IsActive(ActionMoveForward) || im.JustPressed(ActionMoveForward) {
		t.Errorf("Held key should stay active without a new press edge")
	}
	im.PostUpdate()

	im.Sample(held())
	if im.IsActive(ActionMoveForward) || !im.JustReleased(ActionMoveForward) {
		t.Errorf("Expected MoveForward released")
	}
	im.PostUpdate()
	if im.JustReleased(ActionMoveForward) {
		t.Errorf("PostUpdate should clear edge flags")
	}
}

func TestQuitGestureNeedsBothKeys(t *testing.T) {
	im := NewInputManager()

	im.Sample(held(KeyEscape))
	if !im.IsActive(ActionQuit) || im.IsActive(ActionQuitModifier) {
		t.Fatalf("Escape alone should only activate Quit")
	}

	im.Sample(held(KeyRightShift, KeyEscape))
	if !im.IsActive(ActionQuit) || !im.IsActive(ActionQuitModifier) {
		t.Errorf("Expected both quit actions active")
	}
}

func TestBindAndUnbind(t *testing.T) {
	im := NewInputManager()
	im.BindKey(KeyUp, ActionMoveForward)
	im.BindKey(KeyQ, ActionCount)

	im.Sample(held(KeyUp))
	if !im.IsActive(ActionMoveForward) || !im.IsActive(ActionLookUp) {
		t.Errorf("Expected one key to drive two actions")
	}

	im.UnbindKey(KeyUp)
	im.Sample(held(KeyUp))
	if im.IsActive(ActionMoveForward) || im.IsActive(ActionLookUp) {
		t.Errorf("Unbound key should not drive actions")
	}
	for _, k := range im.BoundKeys() {
		if k == KeyQ || k == KeyUp {
			t.Errorf("Unexpected bound key %d", k)
		}
	}
}

func TestAxis(t *testing.T) {
	im := NewInputManager()
	im.Sample(held(KeyA))
	if got := im.Axis(ActionMoveLeft, ActionMoveRight); got != -1 {
		t.Errorf("Axis = %v, want -1", got)
	}
	im.Sample(held(KeyA, KeyD))
	if got := im.Axis(ActionMoveLeft, ActionMoveRight); got != 0 {
		t.Errorf("Axis = %v, want 0", got)
	}
	if im.IsActive(Action(-1)) {
		t.Errorf("Out of range action should be inactive")
	}
}
