// Package tga writes the minimal 24-bit TGA debug snapshots the atlas dumps
// (spec §6 "Debug artifacts"), a direct port of write_tga in atlas.rs.
package tga

import (
	"io"

	"github.com/dlraster/dlraster/au"
)

// Write encodes buffer (an RGBA8 image of the given size, alpha channel
// only used) as an 18-byte-header, uncompressed, bottom-up 24-bit TGA and
// writes it to w. Each output pixel is (alpha,alpha,alpha), matching
// write_tga's "dump just the SDF alpha as grayscale" behavior.
func Write(w io.Writer, buffer []byte, size au.SizeU) error {

	header := make([]byte, 18)
	header[2] = 2 // image type 2: uncompressed true-color
	header[12] = byte(size.W)
	header[13] = byte(size.W >> 8)
	header[14] = byte(size.H)
	header[15] = byte(size.H >> 8)
	header[16] = 24

	if _, err := w.Write(header); err != nil {
		return err
	}

	row := make([]byte, size.W*3)
	for y := int64(size.H) - 1; y >= 0; y-- {
		for x := uint32(0); x < size.W; x++ {
			a := buffer[4*(uint32(y)*size.W+x)+3]
			row[x*3+0] = a
			row[x*3+1] = a
			row[x*3+2] = a
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}
