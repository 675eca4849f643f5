package graphics

import (
	"os"

	"mini-render/internal/graphics/gpu"
	"mini-render/internal/logger"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ShaderProgram is a linked vertex+fragment program with its active uniform
// locations cached at load time.
type ShaderProgram struct {
	ctx      *gpu.Context
	handle   *gpu.Handle
	uniforms map[string]int32
}

// NewShaderProgram creates a new shader program from vertex and fragment shader source files
func NewShaderProgram(ctx *gpu.Context, vertexPath, fragmentPath string) (*ShaderProgram, error) {
	if !fileExists(vertexPath) || !fileExists(fragmentPath) {
		return nil, errors.Wrapf(gpu.ErrNotFound, "couldn't load %s or %s", vertexPath, fragmentPath)
	}

	vertexSource, err := os.ReadFile(vertexPath)
	if err != nil {
		return nil, errors.Wrap(err, "could not read vertex shader file")
	}
	fragmentSource, err := os.ReadFile(fragmentPath)
	if err != nil {
		return nil, errors.Wrap(err, "could not read fragment shader file")
	}

	vertex, err := compileStage(ctx, gpu.StageVertex, vertexPath, string(vertexSource))
	if err != nil {
		return nil, err
	}
	fragment, err := compileStage(ctx, gpu.StageFragment, fragmentPath, string(fragmentSource))
	if err != nil {
		vertex.Release()
		return nil, err
	}

	program, err := linkProgram(ctx, vertex, fragment)
	if err != nil {
		return nil, err
	}

	s := &ShaderProgram{
		ctx:      ctx,
		handle:   program,
		uniforms: make(map[string]int32),
	}
	for _, name := range ctx.Device.ActiveUniforms(program.ID()) {
		s.uniforms[name] = ctx.Device.UniformLocation(program.ID(), name)
	}
	return s, nil
}

func compileStage(ctx *gpu.Context, stage gpu.Stage, path, source string) (*gpu.Handle, error) {
	h := ctx.Track(gpu.KindShaderStage, ctx.Device.CreateShader(stage))
	if ok, log := ctx.Device.CompileShader(h.ID(), source); !ok {
		h.Release()
		logger.Log.Error("shader compilation failed",
			zap.Stringer("stage", stage), zap.String("path", path), zap.String("log", log))
		return nil, &gpu.CompileError{Stage: stage, Path: path, Log: log}
	}
	return h, nil
}

// linkProgram consumes both stages: they are released on every path.
func linkProgram(ctx *gpu.Context, vertex, fragment *gpu.Handle) (*gpu.Handle, error) {
	dev := ctx.Device
	program := ctx.Track(gpu.KindProgram, dev.CreateProgram())
	dev.AttachShader(program.ID(), vertex.ID())
	dev.AttachShader(program.ID(), fragment.ID())

	ok, log := dev.LinkProgram(program.ID())
	if !ok {
		vertex.Release()
		fragment.Release()
		program.Release()
		logger.Log.Error("GPU program creation failed", zap.String("log", log))
		return nil, &gpu.LinkError{Log: log}
	}

	// Stage objects are not needed once linked.
	dev.DetachShader(program.ID(), vertex.ID())
	dev.DetachShader(program.ID(), fragment.ID())
	vertex.Release()
	fragment.Release()
	return program, nil
}

// Use activates the shader program
func (s *ShaderProgram) Use() {
	s.ctx.Device.UseProgram(s.handle.ID())
}

// HasUniform reports whether name was an active uniform at link time.
func (s *ShaderProgram) HasUniform(name string) bool {
	_, ok := s.uniforms[name]
	return ok
}

// SetUniform uploads a 4x4 matrix. The program is made current first.
func (s *ShaderProgram) SetUniform(name string, m mgl32.Mat4) error {
	if s.handle.Disposed() {
		return errors.Wrapf(gpu.ErrNotInitialized, "set %q on disposed program", name)
	}
	loc, ok := s.uniforms[name]
	if !ok {
		return errors.Wrapf(gpu.ErrNotFound, "uniform %q", name)
	}
	s.Use()
	s.ctx.Device.UniformMatrix4(loc, m)
	return nil
}

// SetUniformInt uploads an integer, typically a sampler's texture unit.
func (s *ShaderProgram) SetUniformInt(name string, v int32) error {
	if s.handle.Disposed() {
		return errors.Wrapf(gpu.ErrNotInitialized, "set %q on disposed program", name)
	}
	loc, ok := s.uniforms[name]
	if !ok {
		return errors.Wrapf(gpu.ErrNotFound, "uniform %q", name)
	}
	s.Use()
	s.ctx.Device.UniformInt(loc, v)
	return nil
}

// AttribLocation looks up a vertex attribute at runtime.
func (s *ShaderProgram) AttribLocation(name string) int32 {
	return s.ctx.Device.AttribLocation(s.handle.ID(), name)
}

// Handle returns the raw program name, 0 after Dispose.
func (s *ShaderProgram) Handle() uint32 { return s.handle.ID() }

// Disposed reports whether the program has been deleted.
func (s *ShaderProgram) Disposed() bool { return s.handle.Disposed() }

// Dispose deletes the GPU program. Safe to call more than once.
func (s *ShaderProgram) Dispose() {
	s.handle.Release()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
