package main

import "log"

// recordingSink is a sink.Sink that logs every call instead of touching a
// real GPU (SPEC_FULL §3: "cmd/dlrastdemo exercises the library with an
// in-memory recording Sink instead of a real window", since this module
// drops the teacher's windowing stack — bloeys/nmage, veandco/go-sdl2 — as
// out of scope per spec.md §1). It still tracks enough state (a fake
// texture/buffer name counter, upload and draw counts) to exercise the atlas
// and draw context the same way a real GL driver would.
type recordingSink struct {
	nextName uint32
	uploads  int
	draws    int
}

func newRecordingSink() *recordingSink { return &recordingSink{} }

func (s *recordingSink) CreateTexture() uint32 {
	s.nextName++
	log.Printf("sink: create_texture -> %d", s.nextName)
	return s.nextName
}

func (s *recordingSink) BindTexture(texture uint32) {}

func (s *recordingSink) TexImage2D(width, height int32, rgba []byte) {
	log.Printf("sink: tex_image_2d %dx%d (%d bytes)", width, height, len(rgba))
}

func (s *recordingSink) TexSubImage2D(x, y, width, height int32, rgba []byte) {
	s.uploads++
	log.Printf("sink: tex_sub_image_2d (%d,%d) %dx%d", x, y, width, height)
}

func (s *recordingSink) TexParameter(pname, value int32) {}

func (s *recordingSink) GenBuffers(n int) []uint32 {
	buffers := make([]uint32, n)
	for i := range buffers {
		s.nextName++
		buffers[i] = s.nextName
	}
	return buffers
}

func (s *recordingSink) BindBuffer(target uint32, buffer uint32) {}

func (s *recordingSink) BufferData(target uint32, data []byte) {
	log.Printf("sink: buffer_data target=%#x (%d bytes)", target, len(data))
}

func (s *recordingSink) VertexAttribPointerF32(index uint32, components int32, stride, offset int32) {
}

func (s *recordingSink) VertexAttribPointerU8(index uint32, components int32, stride, offset int32) {
}

func (s *recordingSink) EnableVertexAttribArray(index uint32) {}

func (s *recordingSink) CreateShader(shaderType uint32) uint32 {
	s.nextName++
	return s.nextName
}

func (s *recordingSink) CompileShader(shader uint32, source string) error { return nil }

func (s *recordingSink) CreateProgram() uint32 {
	s.nextName++
	return s.nextName
}

func (s *recordingSink) AttachShader(program, shader uint32)  {}
func (s *recordingSink) LinkProgram(program uint32) error     { return nil }
func (s *recordingSink) GetAttribLocation(program uint32, name string) int32  { return 0 }
func (s *recordingSink) GetUniformLocation(program uint32, name string) int32 { return 0 }
func (s *recordingSink) UseProgram(program uint32)                           {}
func (s *recordingSink) Uniform1i(location, value int32)                    {}

func (s *recordingSink) ActiveTexture(unit uint32)                 {}
func (s *recordingSink) Enable(capability uint32)                  {}
func (s *recordingSink) BlendFunc(sfactor, dfactor uint32)          {}
func (s *recordingSink) DepthMask(flag bool)                       {}
func (s *recordingSink) ClearDepth(depth float64)                  {}
func (s *recordingSink) StencilFunc(fn int32, ref int32, mask uint32) {}
func (s *recordingSink) StencilOp(sfail, dpfail, dppass uint32)    {}
func (s *recordingSink) Clear(mask uint32)                         { log.Printf("sink: clear mask=%#x", mask) }

func (s *recordingSink) DrawElements(mode uint32, count int32) {
	s.draws++
	log.Printf("sink: draw_elements mode=%#x count=%d", mode, count)
}

func (s *recordingSink) Finish() {}
