// Package gputest provides an in-memory gpu.Device that records every call,
// for tests that exercise resource lifetimes without a graphics context.
package gputest

import (
	"fmt"
	"sync"

	"mini-render/internal/graphics/gpu"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultUniforms is what ActiveUniforms reports unless Uniforms is set.
var DefaultUniforms = []string{"model", "view", "projection", "texture0"}

// Device records calls in order. Object names start at 1 and are never reused.
type Device struct {
	mu sync.Mutex

	// FailCompile maps a stage to the compiler log it should fail with.
	FailCompile map[gpu.Stage]string
	// FailLink, when non-empty, makes LinkProgram fail with this log.
	FailLink string
	// Uniforms overrides DefaultUniforms.
	Uniforms []string

	next     uint32
	calls    []string
	deleted  map[string]int
	stages   map[uint32]gpu.Stage
	uniforms map[int32]mgl32.Mat4
	ints     map[int32]int32

	Program     uint32
	Texture     uint32
	VertexArray uint32
	ArrayBuffer uint32
	Uploaded    []float32
	Draws       []int
	Viewports   [][4]int
	Enabled     map[gpu.Capability]bool
}

// New returns an empty recording device.
func New() *Device {
	return &Device{
		deleted:  make(map[string]int),
		stages:   make(map[uint32]gpu.Stage),
		uniforms: make(map[int32]mgl32.Mat4),
		ints:     make(map[int32]int32),
		Enabled:  make(map[gpu.Capability]bool),
	}
}

var _ gpu.Device = (*Device)(nil)

func (d *Device) record(format string, args ...any) {
	d.calls = append(d.calls, fmt.Sprintf(format, args...))
}

func (d *Device) alloc() uint32 {
	d.next++
	return d.next
}

// Calls returns a copy of the recorded call log.
func (d *Device) Calls() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.calls))
	copy(out, d.calls)
	return out
}

// Deleted reports how many times a Delete* call ran for the given call name,
// e.g. "DeleteProgram".
func (d *Device) Deleted(name string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.deleted[name]
}

// Matrix returns the last matrix uploaded to a uniform location.
func (d *Device) Matrix(location int32) (mgl32.Mat4, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	m, ok := d.uniforms[location]
	return m, ok
}

func (d *Device) CreateShader(stage gpu.Stage) uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.alloc()
	d.stages[id] = stage
	d.record("CreateShader %s %d", stage, id)
	return id
}

func (d *Device) CompileShader(shader uint32, source string) (bool, string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("CompileShader %d", shader)
	if msg, ok := d.FailCompile[d.stages[shader]]; ok {
		return false, msg
	}
	return true, ""
}

func (d *Device) DeleteShader(shader uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.deleted["DeleteShader"]++
	d.record("DeleteShader %d", shader)
}

func (d *Device) CreateProgram() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.alloc()
	d.record("CreateProgram %d", id)
	return id
}

func (d *Device) AttachShader(program, shader uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("AttachShader %d %d", program, shader)
}

func (d *Device) DetachShader(program, shader uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("DetachShader %d %d", program, shader)
}

func (d *Device) LinkProgram(program uint32) (bool, string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("LinkProgram %d", program)
	if d.FailLink != "" {
		return false, d.FailLink
	}
	return true, ""
}

func (d *Device) UseProgram(program uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Program = program
	d.record("UseProgram %d", program)
}

func (d *Device) DeleteProgram(program uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.deleted["DeleteProgram"]++
	d.record("DeleteProgram %d", program)
}

func (d *Device) ActiveUniforms(program uint32) []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Uniforms != nil {
		return append([]string(nil), d.Uniforms...)
	}
	return append([]string(nil), DefaultUniforms...)
}

// UniformLocation hands out locations by position in the active uniform list.
func (d *Device) UniformLocation(program uint32, name string) int32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	names := d.Uniforms
	if names == nil {
		names = DefaultUniforms
	}
	for i, n := range names {
		if n == name {
			return int32(i)
		}
	}
	return -1
}

func (d *Device) AttribLocation(program uint32, name string) int32 {
	switch name {
	case "aPosition":
		return 0
	case "aTexCoord":
		return 1
	}
	return -1
}

func (d *Device) UniformMatrix4(location int32, m mgl32.Mat4) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.uniforms[location] = m
	d.record("UniformMatrix4 %d", location)
}

func (d *Device) UniformInt(location int32, v int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ints[location] = v
	d.record("UniformInt %d %d", location, v)
}

func (d *Device) GenTexture() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.alloc()
	d.record("GenTexture %d", id)
	return id
}

func (d *Device) BindTexture(unit uint32, texture uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Texture = texture
	d.record("BindTexture %d %d", unit, texture)
}

func (d *Device) TexImage2D(width, height int, rgba []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("TexImage2D %dx%d %d", width, height, len(rgba))
}

func (d *Device) TexFilter(min, mag gpu.TextureFilter) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("TexFilter %d %d", min, mag)
}

func (d *Device) TexWrap(s, t gpu.TextureWrap) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("TexWrap %d %d", s, t)
}

func (d *Device) DeleteTexture(texture uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.deleted["DeleteTexture"]++
	d.record("DeleteTexture %d", texture)
}

func (d *Device) GenVertexArray() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.alloc()
	d.record("GenVertexArray %d", id)
	return id
}

func (d *Device) BindVertexArray(vao uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.VertexArray = vao
	d.record("BindVertexArray %d", vao)
}

func (d *Device) DeleteVertexArray(vao uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.deleted["DeleteVertexArray"]++
	d.record("DeleteVertexArray %d", vao)
}

func (d *Device) GenBuffer() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.alloc()
	d.record("GenBuffer %d", id)
	return id
}

func (d *Device) BindArrayBuffer(vbo uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ArrayBuffer = vbo
	d.record("BindArrayBuffer %d", vbo)
}

func (d *Device) ArrayBufferData(data []float32, usage gpu.BufferUsage) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Uploaded = append(d.Uploaded[:0], data...)
	d.record("ArrayBufferData %d", len(data))
}

func (d *Device) DeleteBuffer(vbo uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.deleted["DeleteBuffer"]++
	d.record("DeleteBuffer %d", vbo)
}

func (d *Device) VertexAttribFloat(index uint32, size, stride, offset int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("VertexAttribFloat %d %d %d %d", index, size, stride, offset)
}

func (d *Device) ClearColor(r, g, b, a float32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("ClearColor")
}

func (d *Device) Clear(mask gpu.ClearMask) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("Clear %d", mask)
}

func (d *Device) Enable(c gpu.Capability) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Enabled[c] = true
	d.record("Enable %d", c)
}

func (d *Device) Viewport(x, y, width, height int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Viewports = append(d.Viewports, [4]int{x, y, width, height})
	d.record("Viewport %d %d %d %d", x, y, width, height)
}

func (d *Device) DrawTriangles(first, count int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Draws = append(d.Draws, count)
	d.record("DrawTriangles %d %d", first, count)
}
