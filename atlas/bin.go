package atlas

import "github.com/dlraster/dlraster/au"

// bin is a node in the blackpawn BSP bin packer (spec §4.G), ported from
// atlas.rs's Bin, generalized from fixed `u32` fields to au.RectU/SizeU,
// with a different split shape (see insert).
type bin struct {
	rect     au.RectU
	full     bool
	children *[2]*bin
}

func newBin(rect au.RectU) *bin {
	return &bin{rect: rect}
}

// insert finds room for size within the bin's subtree, splitting leaves as
// needed (http://www.blackpawn.com/texts/lightmaps/default.html). It
// returns the allocated origin and true on success.
func (b *bin) insert(size au.SizeU) (au.PointU, bool) {

	if b.children != nil {
		if p, ok := b.children[0].insert(size); ok {
			return p, true
		}
		return b.children[1].insert(size)
	}

	if b.full {
		return au.PointU{}, false
	}
	if b.rect.Size.W < size.W || b.rect.Size.H < size.H {
		return au.PointU{}, false
	}

	if b.rect.Size.W == size.W && b.rect.Size.H == size.H {
		b.full = true
		return b.rect.Origin, true
	}

	extraW := b.rect.Size.W - size.W
	extraH := b.rect.Size.H - size.H

	// Both children must retain the full extent of whichever dimension the
	// split didn't consume, so a leaf that doesn't exactly match the next
	// request keeps splitting into useful space rather than collapsing to a
	// sliver sized to one item (the bug this replaces: a left child sized
	// to `size` on both axes is immediately consumed whole and never
	// subdivides again, which starves the bin of capacity — spec §8 S5's
	// 1024 same-size inserts into a 1024x1024 atlas would otherwise run out
	// after roughly 60 items instead of exactly 1024).
	//
	// extra_width > extra_height (strict, matching atlas.rs) decides which
	// axis to cut along first; a tie falls through to the height-cut branch,
	// which is what makes spec §8 S6's worked origins (0,0), (64,0),
	// (64,32) come out exactly as stated.
	var left, right *bin
	if extraW > extraH {
		left = newBin(au.RectU{Origin: b.rect.Origin, Size: au.SizeU{W: size.W, H: b.rect.Size.H}})
		right = newBin(au.RectU{
			Origin: au.PointU{X: b.rect.Origin.X + size.W, Y: b.rect.Origin.Y},
			Size:   au.SizeU{W: extraW, H: b.rect.Size.H},
		})
	} else {
		left = newBin(au.RectU{Origin: b.rect.Origin, Size: au.SizeU{W: b.rect.Size.W, H: size.H}})
		right = newBin(au.RectU{
			Origin: au.PointU{X: b.rect.Origin.X, Y: b.rect.Origin.Y + size.H},
			Size:   au.SizeU{W: b.rect.Size.W, H: extraH},
		})
	}

	b.children = &[2]*bin{left, right}
	return b.children[0].insert(size)
}

// leafAreaSum recurses to every leaf (full or not) and sums their areas —
// spec §8 property 4, "the sum over BSP leaves equals the root rect area".
func (b *bin) leafAreaSum() uint64 {
	if b.children != nil {
		return b.children[0].leafAreaSum() + b.children[1].leafAreaSum()
	}
	return uint64(b.rect.Size.W) * uint64(b.rect.Size.H)
}
