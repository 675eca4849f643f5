// Package gpu owns the lifetime of GPU-resident objects: the capability set a
// graphics backend must provide, the handles that wrap the integer names the
// driver hands out, and the ledger used to prove every handle was released.
//
// Everything in this package must be driven from the thread that owns the
// graphics context.
package gpu

import "github.com/go-gl/mathgl/mgl32"

// Stage identifies a programmable pipeline stage.
type Stage int

const (
	StageVertex Stage = iota
	StageFragment
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	}
	return "unknown"
}

// BufferUsage hints how often buffer contents change.
type BufferUsage int

const (
	StaticDraw BufferUsage = iota
	DynamicDraw
)

// Capability is a server-side feature toggled with Enable.
type Capability int

const (
	DepthTest Capability = iota
)

// ClearMask selects the buffers Clear resets.
type ClearMask uint32

const (
	ColorBuffer ClearMask = 1 << iota
	DepthBuffer
)

// TextureFilter is the sampling filter for minification and magnification.
type TextureFilter int

const (
	FilterNearest TextureFilter = iota
	FilterLinear
)

// TextureWrap is the addressing mode outside [0,1].
type TextureWrap int

const (
	WrapRepeat TextureWrap = iota
	WrapClampToEdge
)

// Device is the graphics capability set driven by textures, shaders and the
// renderer. Object names are the raw integers the driver returns; ownership
// of those names is expressed by Handle, not by Device.
type Device interface {
	// Shader stages and programs
	CreateShader(stage Stage) uint32
	// CompileShader uploads source and compiles it, returning the info log on failure.
	CompileShader(shader uint32, source string) (ok bool, infoLog string)
	DeleteShader(shader uint32)
	CreateProgram() uint32
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32) (ok bool, infoLog string)
	UseProgram(program uint32)
	DeleteProgram(program uint32)
	ActiveUniforms(program uint32) []string
	UniformLocation(program uint32, name string) int32
	AttribLocation(program uint32, name string) int32
	UniformMatrix4(location int32, m mgl32.Mat4)
	UniformInt(location int32, v int32)

	// Textures
	GenTexture() uint32
	BindTexture(unit uint32, texture uint32)
	TexImage2D(width, height int, rgba []byte)
	TexFilter(min, mag TextureFilter)
	TexWrap(s, t TextureWrap)
	DeleteTexture(texture uint32)

	// Buffers and vertex arrays
	GenVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)
	GenBuffer() uint32
	BindArrayBuffer(vbo uint32)
	ArrayBufferData(data []float32, usage BufferUsage)
	DeleteBuffer(vbo uint32)
	// VertexAttribFloat describes a float attribute; stride and offset are in floats.
	VertexAttribFloat(index uint32, size, stride, offset int)

	// Frame state
	ClearColor(r, g, b, a float32)
	Clear(mask ClearMask)
	Enable(c Capability)
	Viewport(x, y, width, height int)
	DrawTriangles(first, count int)
}
