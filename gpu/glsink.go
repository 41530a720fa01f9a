package gpu

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// GLSink implements sink.Sink against a real OpenGL 2.1/GLSL-1.20-capable
// context. The caller is responsible for having an active GL context
// (e.g. via glfw.MakeContextCurrent) and calling gl.Init() before
// constructing one — ownership of windowing is outside this package's
// concern (spec §6 treats the sink as a pure abstraction).
type GLSink struct{}

// NewGLSink returns a Sink backed by the currently-current GL context.
func NewGLSink() *GLSink { return &GLSink{} }

// --- sink.Texture ---

func (GLSink) CreateTexture() uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	return tex
}

func (GLSink) BindTexture(texture uint32) {
	gl.BindTexture(gl.TEXTURE_2D, texture)
}

func (GLSink) TexImage2D(width, height int32, rgba []byte) {
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba))
}

func (GLSink) TexSubImage2D(x, y, width, height int32, rgba []byte) {
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, x, y, width, height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba))
}

func (GLSink) TexParameter(pname, value int32) {
	gl.TexParameteri(gl.TEXTURE_2D, uint32(pname), value)
}

// --- sink.Buffer ---

func (GLSink) GenBuffers(n int) []uint32 {
	buffers := make([]uint32, n)
	gl.GenBuffers(int32(n), &buffers[0])
	return buffers
}

func (GLSink) BindBuffer(target uint32, buffer uint32) {
	gl.BindBuffer(target, buffer)
}

// BufferData always uploads with DYNAMIC_DRAW usage (spec §4.J: "uploads
// the five attribute arrays via buffer_data(DYNAMIC_DRAW)" — every batch
// is rebuilt and re-uploaded per frame).
func (GLSink) BufferData(target uint32, data []byte) {
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = gl.Ptr(data)
	}
	gl.BufferData(target, len(data), ptr, gl.DYNAMIC_DRAW)
}

func (GLSink) VertexAttribPointerF32(index uint32, components int32, stride, offset int32) {
	gl.VertexAttribPointerWithOffset(index, components, gl.FLOAT, false, stride, uintptr(offset))
}

func (GLSink) VertexAttribPointerU8(index uint32, components int32, stride, offset int32) {
	gl.VertexAttribPointerWithOffset(index, components, gl.UNSIGNED_BYTE, false, stride, uintptr(offset))
}

func (GLSink) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

// --- sink.Shader ---

func (GLSink) CreateShader(shaderType uint32) uint32 {
	return gl.CreateShader(shaderType)
}

// CompileShader is grounded on dantero-ps-mini-mc-go's
// internal/graphics/shader.go compileShader, generalized to report failure
// via error (spec §7 ShaderCompileOrLinkError "include driver log") rather
// than that repo's log.Fatal.
func (GLSink) CompileShader(shader uint32, source string) error {
	csources, free := gl.Strs(source)
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
		return fmt.Errorf("compile shader: %s", log)
	}
	return nil
}

func (GLSink) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (GLSink) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (GLSink) LinkProgram(program uint32) error {
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		return fmt.Errorf("link program: %s", log)
	}
	return nil
}

func (GLSink) GetAttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (GLSink) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (GLSink) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (GLSink) Uniform1i(location, value int32) {
	gl.Uniform1i(location, value)
}

// --- sink.Pipeline ---

func (GLSink) ActiveTexture(unit uint32) {
	gl.ActiveTexture(unit)
}

func (GLSink) Enable(capability uint32) {
	gl.Enable(capability)
}

func (GLSink) BlendFunc(sfactor, dfactor uint32) {
	gl.BlendFunc(sfactor, dfactor)
}

func (GLSink) DepthMask(flag bool) {
	gl.DepthMask(flag)
}

func (GLSink) ClearDepth(depth float64) {
	gl.ClearDepth(depth)
}

func (GLSink) StencilFunc(fn int32, ref int32, mask uint32) {
	gl.StencilFunc(uint32(fn), ref, mask)
}

func (GLSink) StencilOp(sfail, dpfail, dppass uint32) {
	gl.StencilOp(sfail, dpfail, dppass)
}

func (GLSink) Clear(mask uint32) {
	gl.Clear(mask)
}

func (GLSink) DrawElements(mode uint32, count int32) {
	gl.DrawElements(mode, count, gl.UNSIGNED_INT, nil)
}

func (GLSink) Finish() {
	gl.Finish()
}
