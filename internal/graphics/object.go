package graphics

import (
	"mini-render/internal/graphics/gpu"
	"mini-render/internal/logger"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// FloatsPerVertex is the interleaved layout: 3 position + 2 UV.
const FloatsPerVertex = 5

// CubeVertices is a unit cube centred on the origin, six faces of two
// triangles each.
var CubeVertices = []float32{
	// Back
	-0.5, -0.5, -0.5, 0.0, 0.0,
	0.5, -0.5, -0.5, 1.0, 0.0,
	0.5, 0.5, -0.5, 1.0, 1.0,
	0.5, 0.5, -0.5, 1.0, 1.0,
	-0.5, 0.5, -0.5, 0.0, 1.0,
	-0.5, -0.5, -0.5, 0.0, 0.0,

	// Front
	-0.5, -0.5, 0.5, 0.0, 0.0,
	0.5, -0.5, 0.5, 1.0, 0.0,
	0.5, 0.5, 0.5, 1.0, 1.0,
	0.5, 0.5, 0.5, 1.0, 1.0,
	-0.5, 0.5, 0.5, 0.0, 1.0,
	-0.5, -0.5, 0.5, 0.0, 0.0,

	// Left
	-0.5, 0.5, 0.5, 1.0, 0.0,
	-0.5, 0.5, -0.5, 1.0, 1.0,
	-0.5, -0.5, -0.5, 0.0, 1.0,
	-0.5, -0.5, -0.5, 0.0, 1.0,
	-0.5, -0.5, 0.5, 0.0, 0.0,
	-0.5, 0.5, 0.5, 1.0, 0.0,

	// Right
	0.5, 0.5, 0.5, 1.0, 0.0,
	0.5, 0.5, -0.5, 1.0, 1.0,
	0.5, -0.5, -0.5, 0.0, 1.0,
	0.5, -0.5, -0.5, 0.0, 1.0,
	0.5, -0.5, 0.5, 0.0, 0.0,
	0.5, 0.5, 0.5, 1.0, 0.0,

	// Bottom
	-0.5, -0.5, -0.5, 0.0, 1.0,
	0.5, -0.5, -0.5, 1.0, 1.0,
	0.5, -0.5, 0.5, 1.0, 0.0,
	0.5, -0.5, 0.5, 1.0, 0.0,
	-0.5, -0.5, 0.5, 0.0, 0.0,
	-0.5, -0.5, -0.5, 0.0, 1.0,

	// Top
	-0.5, 0.5, -0.5, 0.0, 1.0,
	0.5, 0.5, -0.5, 1.0, 1.0,
	0.5, 0.5, 0.5, 1.0, 0.0,
	0.5, 0.5, 0.5, 1.0, 0.0,
	-0.5, 0.5, 0.5, 0.0, 0.0,
	-0.5, 0.5, -0.5, 0.0, 1.0,
}

// RenderableObject is textured geometry that streams its vertices into the
// currently bound array buffer on every draw.
type RenderableObject struct {
	ctx      *gpu.Context
	vertices []float32
	texture  *Texture
}

// NewRenderableObject builds a textured unit cube. The object owns the texture.
func NewRenderableObject(ctx *gpu.Context, loader ImageLoader, texturePath string) (*RenderableObject, error) {
	tex, err := NewTexture(ctx, loader, texturePath)
	if err != nil {
		logger.Log.Error("couldn't load texture for object", zap.String("texture", texturePath), zap.Error(err))
		return nil, err
	}

	vertices := make([]float32, len(CubeVertices))
	copy(vertices, CubeVertices)

	return &RenderableObject{ctx: ctx, vertices: vertices, texture: tex}, nil
}

// Draw binds the texture, activates shader and draws. The caller must have
// set the shader's matrices and bound the vertex array and buffer.
func (o *RenderableObject) Draw(shader *ShaderProgram) error {
	if shader == nil {
		return errors.Wrap(gpu.ErrInvalidArgument, "draw: nil shader program")
	}
	if o.texture.Disposed() || shader.Disposed() {
		return errors.Wrap(gpu.ErrNotInitialized, "draw: object or shader disposed")
	}
	o.texture.Use()
	shader.Use()

	o.ctx.Device.ArrayBufferData(o.vertices, gpu.DynamicDraw)
	o.ctx.Device.DrawTriangles(0, o.VertexCount())
	return nil
}

// VertexCount is the number of vertices issued per draw.
func (o *RenderableObject) VertexCount() int { return len(o.vertices) / FloatsPerVertex }

func (o *RenderableObject) Texture() *Texture { return o.texture }

// Dispose releases the owned texture.
func (o *RenderableObject) Dispose() {
	o.texture.Dispose()
}
