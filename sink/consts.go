package sink

// GL enum tokens the abstract Sink's parameters are drawn from (spec §6).
// These are the standard OpenGL token values so a concrete Sink (package
// gpu's GLSink) can pass them straight through to the real GL calls without
// any translation table.
const (
	TEXTURE_2D        = 0x0DE1
	TEXTURE_MAG_FILTER = 0x2800
	TEXTURE_MIN_FILTER = 0x2801
	TEXTURE_WRAP_S     = 0x2802
	TEXTURE_WRAP_T     = 0x2803
	LINEAR             = 0x2601
	REPEAT             = 0x2901
	RGBA               = 0x1908
	UNSIGNED_BYTE      = 0x1401
	FLOAT              = 0x1406

	ARRAY_BUFFER    = 0x8892
	DYNAMIC_DRAW    = 0x88E8
	VERTEX_SHADER   = 0x8B31
	FRAGMENT_SHADER = 0x8B30
	TEXTURE0        = 0x84C0

	DEPTH_TEST           = 0x0B71
	BLEND                = 0x0BE2
	STENCIL_TEST         = 0x0B90
	SRC_ALPHA            = 0x0302
	ONE_MINUS_SRC_ALPHA  = 0x0303
	TRIANGLES            = 0x0004
	UNSIGNED_INT         = 0x1405
	COLOR_BUFFER_BIT     = 0x4000
	DEPTH_BUFFER_BIT     = 0x0100
	STENCIL_BUFFER_BIT   = 0x0400
	ALWAYS               = 0x0207
	KEEP                 = 0x1E00
)
