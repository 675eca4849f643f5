package graphics

import (
	"math"

	"mini-render/internal/graphics/gpu"
	"mini-render/internal/logger"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

const (
	// PitchLimit bounds the pitch in both directions, in degrees.
	PitchLimit = 89.9

	NearPlane = 0.01
	FarPlane  = 100.0
)

// Camera handles the view and projection matrices.
// Angles are degrees on every exported method and radians internally.
type Camera struct {
	position mgl32.Vec3
	front    mgl32.Vec3
	up       mgl32.Vec3
	right    mgl32.Vec3

	yaw   float32
	pitch float32

	fov         float32
	aspectRatio float32

	view       mgl32.Mat4
	projection mgl32.Mat4
}

// NewCamera places a camera in world space. fov is in degrees.
func NewCamera(position mgl32.Vec3, fov, aspectRatio float32) (*Camera, error) {
	front := mgl32.Vec3{0, 0, -1}
	up := mgl32.Vec3{0, 1, 0}
	c := &Camera{
		position: position,
		front:    front,
		up:       up,
		right:    front.Cross(up).Normalize(),
	}

	if err := c.SetFov(fov); err != nil {
		logger.Log.Error("can't instantiate camera")
		return nil, err
	}
	if err := c.SetAspectRatio(aspectRatio); err != nil {
		logger.Log.Error("can't instantiate camera")
		return nil, err
	}
	return c, nil
}

// MoveToPosition teleports the camera.
func (c *Camera) MoveToPosition(p mgl32.Vec3) {
	c.position = p
}

// AddPosition moves along the viewing direction. Tie deltaTime to the clock,
// not to the frame count.
func (c *Camera) AddPosition(deltaSpeed, deltaTime float32) {
	c.position = c.position.Add(c.front.Mul(deltaSpeed * deltaTime))
}

// AddPositionAngular strafes. right is recomputed here because front may have
// changed since the last frame.
func (c *Camera) AddPositionAngular(deltaSpeed, deltaTime float32) {
	c.right = c.front.Cross(c.up).Normalize()
	c.position = c.position.Add(c.right.Mul(deltaSpeed * deltaTime))
}

// AddYaw rotates around the y axis.
func (c *Camera) AddYaw(delta float32) {
	c.yaw += delta
}

// AddPitch rotates around the x axis. A delta that would leave
// [-PitchLimit, PitchLimit] is dropped for this frame.
func (c *Camera) AddPitch(delta float32) {
	next := c.pitch + delta
	if !(next >= -PitchLimit && next <= PitchLimit) {
		return
	}
	c.pitch = next
}

// SetFov sets the vertical field of view in degrees, within (0, 180).
func (c *Camera) SetFov(fov float32) error {
	if !(fov > 0 && fov < 180) {
		return errors.Wrapf(gpu.ErrInvalidArgument, "camera: fov %v outside (0, 180) degrees", fov)
	}
	c.fov = fov
	c.resetProjection()
	return nil
}

// SetAspectRatio sets width/height directly.
func (c *Camera) SetAspectRatio(aspectRatio float32) error {
	if !(aspectRatio > 0) || math.IsInf(float64(aspectRatio), 1) {
		return errors.Wrapf(gpu.ErrInvalidArgument, "camera: aspect ratio %v must be positive and finite", aspectRatio)
	}
	c.aspectRatio = aspectRatio
	c.resetProjection()
	return nil
}

// SetAspectRatioFromSize derives the aspect ratio from a framebuffer size.
func (c *Camera) SetAspectRatioFromSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.Wrapf(gpu.ErrInvalidArgument, "camera: invalid size %dx%d", width, height)
	}
	return c.SetAspectRatio(float32(width) / float32(height))
}

// GenerateView recomputes front from yaw and pitch and returns the look-at
// matrix towards position+front.
func (c *Camera) GenerateView() mgl32.Mat4 {
	yaw := float64(mgl32.DegToRad(c.yaw))
	pitch := float64(mgl32.DegToRad(c.pitch))

	c.front = mgl32.Vec3{
		float32(math.Cos(pitch) * math.Cos(yaw)),
		float32(math.Sin(pitch)),
		float32(math.Cos(pitch) * math.Sin(yaw)),
	}.Normalize()

	c.view = mgl32.LookAtV(c.position, c.Target(), c.up)
	return c.view
}

// GetProjection returns the cached perspective matrix. It is rebuilt only
// when fov or aspect ratio change.
func (c *Camera) GetProjection() mgl32.Mat4 {
	return c.projection
}

func (c *Camera) resetProjection() {
	if c.fov == 0 || c.aspectRatio == 0 {
		return
	}
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.fov), c.aspectRatio, NearPlane, FarPlane)
}

// Target is the point the camera looks at: position + front.
func (c *Camera) Target() mgl32.Vec3 { return c.position.Add(c.front) }

func (c *Camera) Position() mgl32.Vec3 { return c.position }
func (c *Camera) Front() mgl32.Vec3    { return c.front }
func (c *Camera) Up() mgl32.Vec3       { return c.up }
func (c *Camera) Right() mgl32.Vec3    { return c.right }
func (c *Camera) Yaw() float32         { return c.yaw }
func (c *Camera) Pitch() float32       { return c.pitch }
func (c *Camera) Fov() float32         { return c.fov }
func (c *Camera) AspectRatio() float32 { return c.aspectRatio }
func (c *Camera) View() mgl32.Mat4     { return c.view }
