package graphics

import (
	"mini-render/internal/graphics/gpu"

	"github.com/pkg/errors"
)

// Texture is a 2D RGBA texture resident on the GPU.
type Texture struct {
	ctx    *gpu.Context
	handle *gpu.Handle
	path   string
	width  int
	height int
}

// NewTexture decodes path and uploads it. Nothing is allocated on the GPU
// unless the file exists and decodes.
func NewTexture(ctx *gpu.Context, loader ImageLoader, path string) (*Texture, error) {
	if !fileExists(path) {
		return nil, errors.Wrapf(gpu.ErrNotFound, "couldn't locate texture file: %s", path)
	}

	width, height, pix, err := loader.Decode(path, true)
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(gpu.ErrInvalidArgument, "texture %s has empty size %dx%d", path, width, height)
	}
	if len(pix) != width*height*4 {
		return nil, errors.Wrapf(gpu.ErrInvalidArgument, "texture %s: %d bytes of pixels for %dx%d RGBA", path, len(pix), width, height)
	}

	dev := ctx.Device
	h := ctx.Track(gpu.KindTexture, dev.GenTexture())
	dev.BindTexture(0, h.ID())
	dev.TexImage2D(width, height, pix)
	dev.TexFilter(gpu.FilterLinear, gpu.FilterLinear)
	dev.TexWrap(gpu.WrapRepeat, gpu.WrapRepeat)

	return &Texture{
		ctx:    ctx,
		handle: h,
		path:   path,
		width:  width,
		height: height,
	}, nil
}

// Use binds the texture to unit 0.
func (t *Texture) Use() {
	t.ctx.Device.BindTexture(0, t.handle.ID())
}

func (t *Texture) Handle() uint32   { return t.handle.ID() }
func (t *Texture) Path() string     { return t.path }
func (t *Texture) Size() (int, int) { return t.width, t.height }
func (t *Texture) Disposed() bool   { return t.handle.Disposed() }

// Dispose deletes the GPU texture. Safe to call more than once.
func (t *Texture) Dispose() {
	t.handle.Release()
}
