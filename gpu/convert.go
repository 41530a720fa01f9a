package gpu

import (
	"encoding/binary"
	"math"

	"github.com/bloeys/gglm/gglm"
	"github.com/dlraster/dlraster/color"
)

// The sink.Buffer boundary takes raw bytes (spec §6 abstracts the GPU sink
// behind plain data, not GPU-specific vector types), so every gglm vector
// attribute array is flattened to its little-endian wire form here before
// BufferData uploads it.

func vertex3sToFloats(vs []gglm.Vec3) []float32 {
	out := make([]float32, 0, len(vs)*3)
	for _, v := range vs {
		out = append(out, v.X(), v.Y(), v.Z())
	}
	return out
}

func bufferGammasToFloats(bgs []gglm.Vec2) []float32 {
	out := make([]float32, 0, len(bgs)*2)
	for _, bg := range bgs {
		out = append(out, bg.X(), bg.Y())
	}
	return out
}

func texCoordsToFloats(tcs []gglm.Vec2) []float32 {
	out := make([]float32, 0, len(tcs)*2)
	for _, tc := range tcs {
		out = append(out, tc.X(), tc.Y())
	}
	return out
}

func float32SliceToBytes(floats []float32) []byte {
	out := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(f))
	}
	return out
}

func colorsToBytes(cs []color.Color) []byte {
	out := make([]byte, len(cs)*4)
	for i, c := range cs {
		out[i*4+0] = c.R
		out[i*4+1] = c.G
		out[i*4+2] = c.B
		out[i*4+3] = c.A
	}
	return out
}
