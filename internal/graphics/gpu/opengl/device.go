// Package opengl implements gpu.Device on top of OpenGL 4.1 core.
package opengl

import (
	"strings"

	"mini-render/internal/graphics/gpu"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

const floatSize = 4

// Device issues GL calls on the current context. Must be created and used on
// the thread the context is current on.
type Device struct{}

var _ gpu.Device = (*Device)(nil)

// New loads the GL function pointers for the current context.
func New() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, errors.Wrap(err, "initialize OpenGL bindings")
	}
	return &Device{}, nil
}

// Version reports the driver's GL version string.
func (d *Device) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (d *Device) CreateShader(stage gpu.Stage) uint32 {
	switch stage {
	case gpu.StageFragment:
		return gl.CreateShader(gl.FRAGMENT_SHADER)
	default:
		return gl.CreateShader(gl.VERTEX_SHADER)
	}
}

func (d *Device) CompileShader(shader uint32, source string) (bool, string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		return false, strings.TrimRight(log, "\x00")
	}
	return true, ""
}

func (d *Device) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (d *Device) CreateProgram() uint32 { return gl.CreateProgram() }

func (d *Device) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }

func (d *Device) DetachShader(program, shader uint32) { gl.DetachShader(program, shader) }

func (d *Device) LinkProgram(program uint32) (bool, string) {
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		return false, strings.TrimRight(log, "\x00")
	}
	return true, ""
}

func (d *Device) UseProgram(program uint32) { gl.UseProgram(program) }

func (d *Device) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (d *Device) ActiveUniforms(program uint32) []string {
	var count, maxLen int32
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORMS, &count)
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORM_MAX_LENGTH, &maxLen)
	if count == 0 || maxLen == 0 {
		return nil
	}

	names := make([]string, 0, count)
	buf := make([]uint8, maxLen+1)
	for i := uint32(0); i < uint32(count); i++ {
		var length, size int32
		var xtype uint32
		gl.GetActiveUniform(program, i, maxLen, &length, &size, &xtype, &buf[0])
		names = append(names, string(buf[:length]))
	}
	return names
}

func (d *Device) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *Device) AttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (d *Device) UniformMatrix4(location int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (d *Device) UniformInt(location int32, v int32) { gl.Uniform1i(location, v) }

func (d *Device) GenTexture() uint32 {
	var texture uint32
	gl.GenTextures(1, &texture)
	return texture
}

func (d *Device) BindTexture(unit uint32, texture uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, texture)
}

func (d *Device) TexImage2D(width, height int, rgba []byte) {
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA,
		int32(width),
		int32(height),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(rgba),
	)
}

func (d *Device) TexFilter(min, mag gpu.TextureFilter) {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter(min))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter(mag))
}

func (d *Device) TexWrap(s, t gpu.TextureWrap) {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap(s))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap(t))
}

func (d *Device) DeleteTexture(texture uint32) { gl.DeleteTextures(1, &texture) }

func (d *Device) GenVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (d *Device) BindVertexArray(vao uint32) { gl.BindVertexArray(vao) }

func (d *Device) DeleteVertexArray(vao uint32) { gl.DeleteVertexArrays(1, &vao) }

func (d *Device) GenBuffer() uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	return vbo
}

func (d *Device) BindArrayBuffer(vbo uint32) { gl.BindBuffer(gl.ARRAY_BUFFER, vbo) }

func (d *Device) ArrayBufferData(data []float32, usage gpu.BufferUsage) {
	hint := uint32(gl.STATIC_DRAW)
	if usage == gpu.DynamicDraw {
		hint = gl.DYNAMIC_DRAW
	}
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, hint)
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*floatSize, gl.Ptr(data), hint)
}

func (d *Device) DeleteBuffer(vbo uint32) { gl.DeleteBuffers(1, &vbo) }

func (d *Device) VertexAttribFloat(index uint32, size, stride, offset int) {
	gl.EnableVertexAttribArray(index)
	gl.VertexAttribPointerWithOffset(index, int32(size), gl.FLOAT, false, int32(stride*floatSize), uintptr(offset*floatSize))
}

func (d *Device) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

func (d *Device) Clear(mask gpu.ClearMask) {
	var bits uint32
	if mask&gpu.ColorBuffer != 0 {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&gpu.DepthBuffer != 0 {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	gl.Clear(bits)
}

func (d *Device) Enable(c gpu.Capability) {
	switch c {
	case gpu.DepthTest:
		gl.Enable(gl.DEPTH_TEST)
	}
}

func (d *Device) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (d *Device) DrawTriangles(first, count int) {
	gl.DrawArrays(gl.TRIANGLES, int32(first), int32(count))
}

func filter(f gpu.TextureFilter) int32 {
	if f == gpu.FilterNearest {
		return gl.NEAREST
	}
	return gl.LINEAR
}

func wrap(w gpu.TextureWrap) int32 {
	if w == gpu.WrapClampToEdge {
		return gl.CLAMP_TO_EDGE
	}
	return gl.REPEAT
}
