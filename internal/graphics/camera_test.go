package graphics

import (
	"math"
	"testing"

	"mini-render/internal/graphics/gpu"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

func vecNear(got, want mgl32.Vec3, eps float64) bool {
	for i := range got {
		if math.Abs(float64(got[i]-want[i])) >= eps {
			return false
		}
	}
	return true
}

func newTestCamera(t *testing.T) *Camera {
	t.Helper()
	c, err := NewCamera(mgl32.Vec3{0, 0, 0}, 45, 16.0/9.0)
	if err != nil {
		t.Fatalf("NewCamera failed: %v", err)
	}
	return c
}

func TestPitchStaysClamped(t *testing.T) {
	c := newTestCamera(t)

	deltas := []float32{10, 33.3, 0.7, 45, 90, 500}
	for _, d := range deltas {
		for i := 0; i < 50; i++ {
			c.AddPitch(d)
			if c.Pitch() > PitchLimit || c.Pitch() < -PitchLimit {
				t.Fatalf("pitch %v escaped clamp after +%v", c.Pitch(), d)
			}
		}
		for i := 0; i < 50; i++ {
			c.AddPitch(-d)
			if c.Pitch() > PitchLimit || c.Pitch() < -PitchLimit {
				t.Fatalf("pitch %v escaped clamp after -%v", c.Pitch(), d)
			}
		}
	}

}

func TestPitchIgnoresNonFiniteDeltas(t *testing.T) {
	c := newTestCamera(t)

	nan := float32(math.NaN())
	inf := float32(math.Inf(1))
	for _, d := range []float32{nan, inf, -inf} {
		c.AddPitch(d)
		if !(c.Pitch() >= -PitchLimit && c.Pitch() <= PitchLimit) {
			t.Fatalf("pitch %v escaped clamp after %v", c.Pitch(), d)
		}
	}
	c.AddPitch(10)
	if c.Pitch() != 10 {
		t.Errorf("Expected pitch 10 after non-finite deltas were dropped, got %v", c.Pitch())
	}
}

func TestPitchOvershootIsDropped(t *testing.T) {
	c := newTestCamera(t)
	c.AddPitch(89)
	c.AddPitch(5)
	if c.Pitch() != 89 {
		t.Errorf("Expected overshooting delta to be ignored, pitch is %v", c.Pitch())
	}
	c.AddPitch(-10)
	if c.Pitch() != 79 {
		t.Errorf("Expected pitch 79, got %v", c.Pitch())
	}
}

func TestYawAccumulates(t *testing.T) {
	c := newTestCamera(t)
	for i := 0; i < 10; i++ {
		c.AddYaw(90)
	}
	if c.Yaw() != 900 {
		t.Errorf("Expected unconstrained yaw 900, got %v", c.Yaw())
	}
}

func TestGenerateViewLooksAtPositionPlusFront(t *testing.T) {
	c := newTestCamera(t)

	view := c.GenerateView()
	_ = c.GetProjection()

	if !vecNear(c.Front(), mgl32.Vec3{1, 0, 0}, 1e-6) {
		t.Errorf("Expected front (1,0,0) at yaw=0 pitch=0, got %v", c.Front())
	}
	if c.Target() != c.Position().Add(c.Front()) {
		t.Errorf("Target %v is not position+front", c.Target())
	}

	want := mgl32.LookAtV(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0})
	if !view.ApproxEqualThreshold(want, 1e-6) {
		t.Errorf("View matrix mismatch:\n got %v\nwant %v", view, want)
	}
}

func TestGenerateViewFollowsYaw(t *testing.T) {
	c := newTestCamera(t)
	c.AddYaw(-90)
	c.GenerateView()

	if !vecNear(c.Front(), mgl32.Vec3{0, 0, -1}, 1e-6) {
		t.Errorf("Expected front (0,0,-1) at yaw=-90, got %v", c.Front())
	}
}

func TestSetFovRejectsOutOfRange(t *testing.T) {
	c := newTestCamera(t)
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))
	for _, fov := range []float32{0, 180, -10, 200, nan, inf, -inf} {
		err := c.SetFov(fov)
		if !errors.Is(err, gpu.ErrInvalidArgument) {
			t.Errorf("SetFov(%v): expected ErrInvalidArgument, got %v", fov, err)
		}
	}
	if c.Fov() != 45 {
		t.Errorf("Rejected values must not change fov, got %v", c.Fov())
	}
}

func TestSetFovIsVisibleInProjection(t *testing.T) {
	c := newTestCamera(t)
	if err := c.SetFov(60); err != nil {
		t.Fatalf("SetFov(60) failed: %v", err)
	}

	p := c.GetProjection()
	fov := 2 * math.Atan(1/float64(p[5])) * 180 / math.Pi
	if math.Abs(fov-60) > 1e-3 {
		t.Errorf("Expected projection fov 60, got %v", fov)
	}
}

func TestSetAspectRatio(t *testing.T) {
	c := newTestCamera(t)

	if err := c.SetAspectRatio(0); !errors.Is(err, gpu.ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for ratio 0, got %v", err)
	}
	for _, r := range []float32{float32(math.NaN()), float32(math.Inf(1)), -1} {
		if err := c.SetAspectRatio(r); !errors.Is(err, gpu.ErrInvalidArgument) {
			t.Errorf("Expected ErrInvalidArgument for ratio %v, got %v", r, err)
		}
	}
	if c.AspectRatio() != 16.0/9.0 {
		t.Errorf("Rejected ratios must not change the aspect, got %v", c.AspectRatio())
	}
	if err := c.SetAspectRatioFromSize(0, 600); !errors.Is(err, gpu.ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for width 0, got %v", err)
	}
	if err := c.SetAspectRatioFromSize(900, -1); !errors.Is(err, gpu.ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for negative height, got %v", err)
	}

	if err := c.SetAspectRatioFromSize(900, 600); err != nil {
		t.Fatalf("SetAspectRatioFromSize failed: %v", err)
	}
	if c.AspectRatio() != 1.5 {
		t.Errorf("Expected aspect 1.5, got %v", c.AspectRatio())
	}
	p := c.GetProjection()
	if math.Abs(float64(p[5]/p[0])-1.5) > 1e-4 {
		t.Errorf("Projection does not reflect aspect 1.5: %v", p)
	}
}

func TestNewCameraRejectsBadFov(t *testing.T) {
	if _, err := NewCamera(mgl32.Vec3{}, 180, 1); !errors.Is(err, gpu.ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument, got %v", err)
	}
}

func TestMovement(t *testing.T) {
	c := newTestCamera(t)
	c.GenerateView() // front = +X

	c.AddPosition(2, 0.5)
	if !vecNear(c.Position(), mgl32.Vec3{1, 0, 0}, 1e-6) {
		t.Errorf("Expected (1,0,0) after forward move, got %v", c.Position())
	}

	c.AddPositionAngular(1, 1)
	// right = front x up = (1,0,0) x (0,1,0) = (0,0,1)
	if !vecNear(c.Right(), mgl32.Vec3{0, 0, 1}, 1e-6) {
		t.Errorf("Expected right (0,0,1), got %v", c.Right())
	}
	if !vecNear(c.Position(), mgl32.Vec3{1, 0, 1}, 1e-6) {
		t.Errorf("Expected (1,0,1) after strafe, got %v", c.Position())
	}
}
