// Package sink defines the abstract GPU entry points spec §6 requires
// ("GPU sink (abstract)"). It is a leaf package: both atlas (texture
// upload) and gpu (the concrete go-gl-backed implementation plus the draw
// context) depend on it, so it can't live in either without creating an
// import cycle.
package sink

// Texture is the subset of Sink the atlas needs to create and populate its
// backing texture (spec §4.G / §6).
type Texture interface {
	CreateTexture() uint32
	BindTexture(texture uint32)
	TexImage2D(width, height int32, rgba []byte)
	TexSubImage2D(x, y, width, height int32, rgba []byte)
	TexParameter(pname, value int32)
}

// Buffer is the subset of Sink the draw context (package gpu) needs to
// upload a batch's vertex attribute data.
type Buffer interface {
	GenBuffers(n int) []uint32
	BindBuffer(target uint32, buffer uint32)
	BufferData(target uint32, data []byte)
	VertexAttribPointerF32(index uint32, components int32, stride, offset int32)
	VertexAttribPointerU8(index uint32, components int32, stride, offset int32)
	EnableVertexAttribArray(index uint32)
}

// Shader is the subset of Sink needed to compile and link the two GLSL 1.20
// shaders of spec §6.
type Shader interface {
	CreateShader(shaderType uint32) uint32
	CompileShader(shader uint32, source string) error
	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32) error
	GetAttribLocation(program uint32, name string) int32
	GetUniformLocation(program uint32, name string) int32
	UseProgram(program uint32)
	Uniform1i(location, value int32)
}

// Pipeline is the remaining per-frame state spec §6 and §4.J ("Draw
// Context") require: texture unit selection, blend/depth/stencil state,
// clearing, and the final indexed draw.
type Pipeline interface {
	ActiveTexture(unit uint32)
	Enable(capability uint32)
	BlendFunc(sfactor, dfactor uint32)
	DepthMask(flag bool)
	ClearDepth(depth float64)
	StencilFunc(fn int32, ref int32, mask uint32)
	StencilOp(sfail, dpfail, dppass uint32)
	Clear(mask uint32)
	DrawElements(mode uint32, count int32)
	Finish()
}

// Sink is the complete abstract GPU entry-point boundary of spec §6. The
// atlas only needs Texture; the draw context (package gpu) needs all four.
type Sink interface {
	Texture
	Buffer
	Shader
	Pipeline
}
