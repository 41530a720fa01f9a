package gpu

import (
	"github.com/dlraster/dlraster/batch"
	"github.com/dlraster/dlraster/rasterr"
	"github.com/dlraster/dlraster/sink"
)

// program holds the compiled/linked shader program and its attribute and
// uniform locations (spec §4.J), a direct port of draw.rs's Program.
type program struct {
	handle uint32

	vertexPositionAttr uint32
	vertexColorAttr    uint32
	bufferGammaAttr    uint32
	textureCoordAttr   uint32
	textureUniform     int32
}

func newProgram(s sink.Shader) (*program, error) {

	vertexShader := s.CreateShader(sink.VERTEX_SHADER)
	if err := s.CompileShader(vertexShader, vertexShaderSource); err != nil {
		return nil, rasterr.New(rasterr.ShaderCompileOrLinkError, "vertex shader: "+err.Error())
	}
	fragmentShader := s.CreateShader(sink.FRAGMENT_SHADER)
	if err := s.CompileShader(fragmentShader, fragmentShaderSource); err != nil {
		return nil, rasterr.New(rasterr.ShaderCompileOrLinkError, "fragment shader: "+err.Error())
	}

	handle := s.CreateProgram()
	s.AttachShader(handle, vertexShader)
	s.AttachShader(handle, fragmentShader)
	if err := s.LinkProgram(handle); err != nil {
		return nil, rasterr.New(rasterr.ShaderCompileOrLinkError, "link: "+err.Error())
	}

	p := &program{
		handle:             handle,
		vertexPositionAttr: uint32(s.GetAttribLocation(handle, "aVertexPosition")),
		vertexColorAttr:    uint32(s.GetAttribLocation(handle, "aVertexColor")),
		bufferGammaAttr:    uint32(s.GetAttribLocation(handle, "aBufferGamma")),
		textureCoordAttr:   uint32(s.GetAttribLocation(handle, "aTextureCoord")),
		textureUniform:     s.GetUniformLocation(handle, "uTexture"),
	}
	s.EnableVertexAttribArray(p.vertexPositionAttr)
	s.EnableVertexAttribArray(p.vertexColorAttr)
	s.EnableVertexAttribArray(p.bufferGammaAttr)
	s.EnableVertexAttribArray(p.textureCoordAttr)
	return p, nil
}

// drawBuffers is the four dynamic VBOs one per attribute array (spec
// §4.J), a port of draw.rs's DrawBuffers.
type drawBuffers struct {
	vertexPosition uint32
	vertexColor    uint32
	bufferGamma    uint32
	textureCoord   uint32
}

func newDrawBuffers(s sink.Buffer) drawBuffers {
	b := s.GenBuffers(4)
	return drawBuffers{vertexPosition: b[0], vertexColor: b[1], bufferGamma: b[2], textureCoord: b[3]}
}

// DrawContext owns the compiled program, its four VBOs, and the GPU
// texture backing the atlas; it is the single thing the main thread
// drives per frame (spec §4.J, §5 "the main thread... owns... the GL
// context").
type DrawContext struct {
	sink    sink.Sink
	program *program
	buffers drawBuffers
	texture uint32
}

// NewDrawContext compiles the shaders, locates attributes/uniforms, and
// allocates the four dynamic VBOs. texture is the atlas's backing GL
// texture (atlas.Atlas keeps its own handle; the draw context binds it
// fresh each DrawBatch).
func NewDrawContext(s sink.Sink, atlasTexture uint32) (*DrawContext, error) {
	p, err := newProgram(s)
	if err != nil {
		return nil, err
	}
	return &DrawContext{
		sink:    s,
		program: p,
		buffers: newDrawBuffers(s),
		texture: atlasTexture,
	}, nil
}

// InitGLState sets up the fixed per-context GL state spec §4.J requires:
// TEXTURE_2D, BLEND(SRC_ALPHA, ONE_MINUS_SRC_ALPHA), DEPTH_TEST, and
// STENCIL_TEST (configured for a two-pass clip scheme reserved for future
// use — see SPEC_FULL §5's Open Question on clipping).
func (c *DrawContext) InitGLState() {
	c.sink.UseProgram(c.program.handle)
	c.sink.Enable(sink.TEXTURE_2D)
	c.sink.Enable(sink.BLEND)
	c.sink.Enable(sink.STENCIL_TEST)
	c.sink.Enable(sink.DEPTH_TEST)
	c.sink.BlendFunc(sink.SRC_ALPHA, sink.ONE_MINUS_SRC_ALPHA)
	c.sink.StencilFunc(sink.ALWAYS, 1, 1)
	c.sink.StencilOp(sink.KEEP, sink.KEEP, sink.KEEP)
}

// Clear clears color, depth (to 0.5, the same value as FarDepthValue), and
// stencil (spec §4.J).
func (c *DrawContext) Clear() {
	c.sink.DepthMask(true)
	c.sink.ClearDepth(0.5)
	c.sink.Clear(sink.COLOR_BUFFER_BIT | sink.DEPTH_BUFFER_BIT | sink.STENCIL_BUFFER_BIT)
	c.sink.DepthMask(false)
}

// DrawBatch binds the atlas texture, uploads b's five attribute arrays,
// and issues one indexed TRIANGLES draw (spec §4.J).
func (c *DrawContext) DrawBatch(b batch.Batch) {
	c.sink.ActiveTexture(sink.TEXTURE0)
	c.sink.BindTexture(c.texture)
	c.sink.Uniform1i(c.program.textureUniform, 0)

	c.bufferDataForBatch(b)

	c.sink.DrawElements(sink.TRIANGLES, int32(len(b.Elements)))
}

func (c *DrawContext) bufferDataForBatch(b batch.Batch) {
	c.sink.BindBuffer(sink.ARRAY_BUFFER, c.buffers.vertexPosition)
	c.sink.BufferData(sink.ARRAY_BUFFER, float32SliceToBytes(vertex3sToFloats(b.Vertices)))
	c.sink.VertexAttribPointerF32(c.program.vertexPositionAttr, 3, 0, 0)

	c.sink.BindBuffer(sink.ARRAY_BUFFER, c.buffers.vertexColor)
	c.sink.BufferData(sink.ARRAY_BUFFER, colorsToBytes(b.Colors))
	c.sink.VertexAttribPointerU8(c.program.vertexColorAttr, 4, 0, 0)

	c.sink.BindBuffer(sink.ARRAY_BUFFER, c.buffers.bufferGamma)
	c.sink.BufferData(sink.ARRAY_BUFFER, float32SliceToBytes(bufferGammasToFloats(b.BufferGamma)))
	c.sink.VertexAttribPointerF32(c.program.bufferGammaAttr, 2, 0, 0)

	c.sink.BindBuffer(sink.ARRAY_BUFFER, c.buffers.textureCoord)
	c.sink.BufferData(sink.ARRAY_BUFFER, float32SliceToBytes(texCoordsToFloats(b.TextureCoord)))
	c.sink.VertexAttribPointerF32(c.program.textureCoordAttr, 2, 0, 0)
}

// Finish issues the abstract sink's finish — glFinish on a real GL_sink
// (spec §4.J).
func (c *DrawContext) Finish() {
	c.sink.Finish()
}
