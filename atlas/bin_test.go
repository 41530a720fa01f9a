package atlas

import (
	"testing"

	"github.com/dlraster/dlraster/au"
)

func TestBinPackingOrderScenarioS6(t *testing.T) {

	root := newBin(au.RectU{Size: au.SizeU{W: 128, H: 128}})

	p1, ok := root.insert(au.SizeU{W: 64, H: 64})
	if !ok || p1 != (au.PointU{X: 0, Y: 0}) {
		t.Fatalf("expected (0,0), got %+v ok=%v", p1, ok)
	}

	p2, ok := root.insert(au.SizeU{W: 64, H: 32})
	if !ok || p2 != (au.PointU{X: 64, Y: 0}) {
		t.Fatalf("expected (64,0), got %+v ok=%v", p2, ok)
	}

	p3, ok := root.insert(au.SizeU{W: 32, H: 32})
	if !ok || p3 != (au.PointU{X: 64, Y: 32}) {
		t.Fatalf("expected (64,32), got %+v ok=%v", p3, ok)
	}
}

func TestBinLeafAreaSumEqualsRootArea(t *testing.T) {

	root := newBin(au.RectU{Size: au.SizeU{W: 256, H: 256}})

	for _, sz := range []au.SizeU{{W: 64, H: 64}, {W: 32, H: 96}, {W: 16, H: 16}, {W: 100, H: 50}} {
		if _, ok := root.insert(sz); !ok {
			t.Fatalf("expected insert of %+v to succeed", sz)
		}
	}

	if got, want := root.leafAreaSum(), uint64(256*256); got != want {
		t.Fatalf("expected leaf area sum %d, got %d", want, got)
	}
}

func TestBinExhaustionScenarioS5(t *testing.T) {

	root := newBin(au.RectU{Size: au.SizeU{W: 1024, H: 1024}})

	for i := 0; i < 1024; i++ {
		if _, ok := root.insert(au.SizeU{W: 32, H: 32}); !ok {
			t.Fatalf("item %d: expected a successful insert", i+1)
		}
	}

	if _, ok := root.insert(au.SizeU{W: 32, H: 32}); ok {
		t.Fatalf("expected item 1025 to fail (atlas out of space)")
	}
}
