// Package blur approximates a Gaussian blur of a signed-distance field by
// treating the field's alpha channel as a 1-D signed distance and looking up
// a precomputed Gaussian prefix sum (spec §4.C). It is a literal port of
// approximate_gaussian_blur_with_distance_field in the original
// implementation, generalized from a fixed BUFFER/scaling pair to
// distfield's exported constants.
package blur

import (
	"math"

	"github.com/dlraster/dlraster/distfield"
)

// Apply blurs an RGBA8 SDF (only the alpha channel carries signed distance;
// RGB is ignored on input and set equal to the output alpha) at the given
// sigma, returning a new RGBA8 buffer of the same size.
func Apply(data []byte, size distfield.Size, sigma float64) []byte {

	blurRadius := int(math.Ceil(sigma * 3.0))
	twoSigmaSquared := 2.0 * sigma * sigma
	a := 1.0 / math.Sqrt(math.Pi*twoSigmaSquared)

	kernel := make([]float64, blurRadius*2+1)
	for i := range kernel {
		x := float64(i - blurRadius)
		kernel[i] = a * math.Exp(-x*x/twoSigmaSquared)
	}

	// precomputed[i] = sum_{j<i} kernel[j], spec §4.C step 2.
	precomputed := make([]float64, len(kernel))
	sum := 0.0
	for i := range kernel {
		precomputed[i] = sum
		sum += kernel[i]
	}

	result := make([]byte, size.W*size.H*4)
	for y := uint32(0); y < size.H; y++ {
		for x := uint32(0); x < size.W; x++ {

			i := (y*size.W + x) * 4
			alpha := float64(data[i+3])
			d := (alpha - distfield.Buffer) / distfield.GlyphDistanceScalingFactor

			var out byte
			switch {
			case d < -float64(blurRadius):
				out = 0
			case d > float64(blurRadius):
				out = 255
			default:
				idx := int(math.Round(d)) + (len(precomputed)-1)/2
				out = byte(math.Round(precomputed[idx] * 255.0))
			}

			result[i+0] = out
			result[i+1] = out
			result[i+2] = out
			result[i+3] = out
		}
	}

	return result
}

// KernelRadius returns ceil(3*sigma), exposed so callers (such as the
// scenario tests) can report the same radius Apply uses without
// duplicating the formula.
func KernelRadius(sigma float64) int {
	return int(math.Ceil(sigma * 3.0))
}
