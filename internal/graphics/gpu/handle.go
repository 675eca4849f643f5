package gpu

// Kind is the closed set of GPU object kinds a Handle can own.
type Kind int

const (
	KindShaderStage Kind = iota
	KindProgram
	KindTexture
	KindBuffer
	KindVertexArray
)

func (k Kind) String() string {
	switch k {
	case KindShaderStage:
		return "ShaderStage"
	case KindProgram:
		return "Shader"
	case KindTexture:
		return "Texture"
	case KindBuffer:
		return "Buffer"
	case KindVertexArray:
		return "VertexArray"
	}
	return "Unknown"
}

// Handle owns one driver-side object name. Handles are not copied or shared:
// the object that allocated one is the only one allowed to release it.
type Handle struct {
	ctx      *Context
	kind     Kind
	id       uint32
	disposed bool
}

// ID returns the raw object name, or 0 once the handle has been released.
func (h *Handle) ID() uint32 {
	if h == nil || h.disposed {
		return 0
	}
	return h.id
}

// Kind reports what the handle owns.
func (h *Handle) Kind() Kind { return h.kind }

// Disposed reports whether Release has run.
func (h *Handle) Disposed() bool { return h == nil || h.disposed }

// Release deletes the object on the device. Only the first call talks to the
// device; it reports whether this call did the delete.
func (h *Handle) Release() bool {
	if h == nil || h.disposed {
		return false
	}

	dev := h.ctx.Device
	switch h.kind {
	case KindShaderStage:
		dev.DeleteShader(h.id)
	case KindProgram:
		dev.DeleteProgram(h.id)
	case KindTexture:
		dev.DeleteTexture(h.id)
	case KindBuffer:
		dev.DeleteBuffer(h.id)
	case KindVertexArray:
		dev.DeleteVertexArray(h.id)
	}

	h.disposed = true
	h.ctx.Tracker.forget(h)
	return true
}
