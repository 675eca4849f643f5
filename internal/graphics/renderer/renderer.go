package renderer

import (
	"mini-render/internal/config"
	"mini-render/internal/graphics"
	"mini-render/internal/graphics/gpu"
	"mini-render/internal/input"
	"mini-render/internal/logger"
	"mini-render/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const defaultFov = 45.0

var requiredUniforms = []string{"model", "view", "projection"}

// sceneObject is a renderable placed in the world.
type sceneObject struct {
	object   *graphics.RenderableObject
	position mgl32.Vec3
	spin     float32
	bob      *bob
}

// Renderer owns the shader, the scene objects, the vertex array and the
// vertex buffer, and draws one frame per Render call.
type Renderer struct {
	ctx    *gpu.Context
	window Window
	input  *input.InputManager

	state  State
	warned bool

	shader  *graphics.ShaderProgram
	objects []sceneObject
	vao     *gpu.Handle
	vbo     *gpu.Handle
	camera  *graphics.Camera

	elapsed    float64
	firstMouse bool
	lastX      float64
	lastY      float64
}

// New loads every scene asset and prepares the GPU pipeline. On error,
// whatever was created is released and the renderer is not returned.
func New(ctx *gpu.Context, win Window, opts Options) (*Renderer, error) {
	if ctx == nil || win == nil {
		return nil, errors.Wrap(gpu.ErrInvalidArgument, "renderer needs a context and a window")
	}
	loader := opts.Loader
	if loader == nil {
		loader = graphics.FileImageLoader{}
	}

	r := &Renderer{
		ctx:        ctx,
		window:     win,
		input:      opts.Input,
		firstMouse: true,
	}
	if err := r.load(opts.Scene, loader, opts.Width, opts.Height); err != nil {
		r.release()
		return nil, err
	}
	r.state = Initialized
	return r, nil
}

func (r *Renderer) load(scene config.Scene, loader graphics.ImageLoader, width, height int) error {
	shader, err := graphics.NewShaderProgram(r.ctx, scene.VertexShader, scene.FragmentShader)
	if err != nil {
		logger.Log.Error("couldn't load shader program", zap.Error(err))
		return err
	}
	r.shader = shader

	for _, name := range requiredUniforms {
		if !shader.HasUniform(name) {
			return errors.Wrapf(gpu.ErrNotFound, "shader is missing uniform %q", name)
		}
	}

	for _, spec := range scene.Objects {
		obj, err := graphics.NewRenderableObject(r.ctx, loader, spec.Texture)
		if err != nil {
			return err
		}
		r.objects = append(r.objects, sceneObject{
			object:   obj,
			position: mgl32.Vec3(spec.Position),
			spin:     spec.Spin,
			bob:      newBob(spec.Bob),
		})
	}

	dev := r.ctx.Device
	r.vao = r.ctx.Track(gpu.KindVertexArray, dev.GenVertexArray())
	r.vbo = r.ctx.Track(gpu.KindBuffer, dev.GenBuffer())
	dev.BindVertexArray(r.vao.ID())
	dev.BindArrayBuffer(r.vbo.ID())

	pos := shader.AttribLocation("aPosition")
	uv := shader.AttribLocation("aTexCoord")
	if pos < 0 || uv < 0 {
		return errors.Wrap(gpu.ErrNotFound, "shader is missing aPosition or aTexCoord")
	}
	dev.VertexAttribFloat(uint32(pos), 3, graphics.FloatsPerVertex, 0)
	dev.VertexAttribFloat(uint32(uv), 2, graphics.FloatsPerVertex, 3)

	if shader.HasUniform("texture0") {
		if err := shader.SetUniformInt("texture0", 0); err != nil {
			return err
		}
	}

	fov := scene.Camera.Fov
	if fov == 0 {
		fov = defaultFov
	}
	if width <= 0 || height <= 0 {
		return errors.Wrapf(gpu.ErrInvalidArgument, "invalid viewport %dx%d", width, height)
	}
	camera, err := graphics.NewCamera(mgl32.Vec3(scene.Camera.Position), fov, float32(width)/float32(height))
	if err != nil {
		return err
	}
	camera.AddYaw(scene.Camera.Yaw)
	r.camera = camera

	dev.ClearColor(0.1, 0.1, 0.1, 1.0)
	dev.Enable(gpu.DepthTest)
	return nil
}

// Render draws one frame and swaps buffers. It does nothing, apart from a
// single warning, unless the renderer is Initialized.
func (r *Renderer) Render(dt float64) {
	if r.state != Initialized {
		if !r.warned {
			logger.Log.Warn("render called on renderer that is not initialized", zap.Stringer("state", r.state))
			r.warned = true
		}
		return
	}
	defer profiling.Track("renderer.Render")()

	dev := r.ctx.Device
	dev.Clear(gpu.ColorBuffer | gpu.DepthBuffer)

	r.updateCamera(float32(dt))
	r.elapsed += dt

	if err := r.shader.SetUniform("view", r.camera.GenerateView()); err != nil {
		logger.Log.Error("couldn't set view", zap.Error(err))
	}
	if err := r.shader.SetUniform("projection", r.camera.GetProjection()); err != nil {
		logger.Log.Error("couldn't set projection", zap.Error(err))
	}

	dev.BindVertexArray(r.vao.ID())
	dev.BindArrayBuffer(r.vbo.ID())
	for _, o := range r.objects {
		offset := o.bob.Update(float32(dt))
		model := mgl32.Translate3D(o.position.X(), o.position.Y()+offset, o.position.Z()).
			Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(o.spin * float32(r.elapsed))))
		if err := r.shader.SetUniform("model", model); err != nil {
			logger.Log.Error("couldn't set model", zap.Error(err))
			continue
		}
		if err := o.object.Draw(r.shader); err != nil {
			logger.Log.Error("draw failed", zap.Error(err))
		}
	}

	r.window.SwapBuffers()
}

func (r *Renderer) updateCamera(dt float32) {
	x, y := r.window.CursorPos()
	if r.firstMouse {
		r.lastX, r.lastY = x, y
		r.firstMouse = false
	}
	sensitivity := config.GetMouseSensitivity()
	dx := (x - r.lastX) * sensitivity
	dy := (r.lastY - y) * sensitivity
	r.lastX, r.lastY = x, y
	r.camera.AddYaw(float32(dx))
	r.camera.AddPitch(float32(dy))

	if r.input == nil {
		return
	}
	look := float32(config.GetLookSpeed()) * dt
	r.camera.AddYaw(r.input.Axis(input.ActionLookLeft, input.ActionLookRight) * look)
	r.camera.AddPitch(r.input.Axis(input.ActionLookDown, input.ActionLookUp) * look)

	speed := float32(config.GetMoveSpeed())
	r.camera.AddPosition(speed*r.input.Axis(input.ActionMoveBackward, input.ActionMoveForward), dt)
	r.camera.AddPositionAngular(speed*r.input.Axis(input.ActionMoveLeft, input.ActionMoveRight), dt)
	if vertical := r.input.Axis(input.ActionMoveDown, input.ActionMoveUp); vertical != 0 {
		r.camera.MoveToPosition(r.camera.Position().Add(r.camera.Up().Mul(speed * vertical * dt)))
	}
}

// Resize updates the projection aspect ratio.
func (r *Renderer) Resize(width, height int) {
	if r.camera == nil {
		return
	}
	if err := r.camera.SetAspectRatioFromSize(width, height); err != nil {
		// minimized windows report 0x0
		logger.Log.Debug("ignoring resize", zap.Int("width", width), zap.Int("height", height))
	}
}

// Dispose releases every GPU resource the renderer owns. Only the first call
// has an effect.
func (r *Renderer) Dispose() {
	if r.state == Disposed {
		return
	}
	r.release()
	r.state = Disposed
}

func (r *Renderer) release() {
	dev := r.ctx.Device
	dev.BindArrayBuffer(0)
	dev.BindVertexArray(0)
	dev.UseProgram(0)

	r.vao.Release()
	r.vbo.Release()
	if r.shader != nil {
		r.shader.Dispose()
	}
	for _, o := range r.objects {
		o.object.Dispose()
	}
}

func (r *Renderer) Camera() *graphics.Camera { return r.camera }

func (r *Renderer) State() State { return r.state }
