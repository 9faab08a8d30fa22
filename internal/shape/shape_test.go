package shape

import (
	"math"
	"math/rand/v2"
	"testing"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// TestGenerateLengthAndFinite checks every kind for a spread of counts
func TestGenerateLengthAndFinite(t *testing.T) {
	counts := []int{1, 2, 3, 19, 20, 63, 64, 100, 4000}
	for _, kind := range All() {
		for _, count := range counts {
			pts := Generate(kind, count, 3.5, newRand(1))
			if len(pts) != 3*count {
				t.Fatalf("%s count=%d: expected %d coords, got %d", kind, count, 3*count, len(pts))
			}
			for i, v := range pts {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("%s count=%d: coord %d not finite: %v", kind, count, i, v)
				}
			}
		}
	}
}

func TestGenerateNonPositiveCount(t *testing.T) {
	for _, count := range []int{0, -5} {
		if pts := Generate(Cube, count, 3, newRand(1)); len(pts) != 0 {
			t.Errorf("count=%d: expected empty set, got %d coords", count, len(pts))
		}
	}
}

func TestSphereDeterministic(t *testing.T) {
	a := Generate(Sphere, 500, 4, newRand(1))
	b := Generate(Sphere, 500, 4, newRand(99))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sphere differs at %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestSpherePointsOnSurface(t *testing.T) {
	const radius = 3.5
	pts := Generate(Sphere, 4000, radius, nil)
	for i := 0; i < pts.Len(); i++ {
		x, y, z := pts.At(i)
		d := math.Sqrt(x*x + y*y + z*z)
		if math.Abs(d-radius) > 1e-9 {
			t.Fatalf("point %d at distance %v, expected %v", i, d, radius)
		}
	}
}

func TestDeterministicKindsIgnoreSeed(t *testing.T) {
	for _, kind := range []Kind{Sphere, Mobius} {
		a := Generate(kind, 300, 2, newRand(3))
		b := Generate(kind, 300, 2, newRand(4))
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("%s differs at %d", kind, i)
			}
		}
	}
}

// TestStochasticKindsBounded runs each random generator repeatedly and
// checks no coordinate escapes a small multiple of the radius
func TestStochasticKindsBounded(t *testing.T) {
	const radius = 4.0
	stochastic := []Kind{Cube, Pyramid, Flower, DNA, Spiral, Shell, Tree}
	rng := newRand(7)
	for _, kind := range stochastic {
		for run := 0; run < 20; run++ {
			pts := Generate(kind, 2000, radius, rng)
			for i, v := range pts {
				if math.Abs(v) > 3*radius {
					t.Fatalf("%s run %d: coord %d = %v exceeds %v", kind, run, i, v, 3*radius)
				}
			}
		}
	}
}

func TestStochasticKindsVaryBetweenRuns(t *testing.T) {
	rng := newRand(11)
	for _, kind := range []Kind{Cube, Pyramid, Spiral, Shell, Tree} {
		a := Generate(kind, 200, 3, rng)
		b := Generate(kind, 200, 3, rng)
		same := true
		for i := range a {
			if a[i] != b[i] {
				same = false
				break
			}
		}
		if same {
			t.Errorf("%s: two draws produced identical sets", kind)
		}
	}
}

func TestCubePointsOnFaces(t *testing.T) {
	const half = 2.0
	pts := Generate(Cube, 1000, half, newRand(5))
	for i := 0; i < pts.Len(); i++ {
		x, y, z := pts.At(i)
		onFace := math.Abs(math.Abs(x)-half) < 1e-12 ||
			math.Abs(math.Abs(y)-half) < 1e-12 ||
			math.Abs(math.Abs(z)-half) < 1e-12
		if !onFace {
			t.Fatalf("point %d (%v,%v,%v) not on a face", i, x, y, z)
		}
	}
}

func TestDNARungsNearAxis(t *testing.T) {
	const radius = 3.0
	pts := Generate(DNA, 400, radius, newRand(2))
	for i := 0; i < pts.Len(); i++ {
		x, _, z := pts.At(i)
		d := math.Hypot(x, z)
		if i%20 == 0 {
			if d > radius*0.5 {
				t.Errorf("rung %d too far from axis: %v", i, d)
			}
		} else if math.Abs(d-radius) > 1e-9 {
			t.Errorf("strand point %d off helix: %v", i, d)
		}
	}
}

func TestTreeFillsWholeBudget(t *testing.T) {
	// 63 branches with one point each leaves the rest as foliage
	pts := Generate(Tree, 100, 2, newRand(9))
	if pts.Len() != 100 {
		t.Fatalf("expected 100 points, got %d", pts.Len())
	}
	x, y, z := pts.At(0)
	if x != 0 || y != -2 {
		t.Errorf("expected trunk to start at (0,-2), got (%v,%v,%v)", x, y, z)
	}
}

func TestGenerateRadiusFallback(t *testing.T) {
	pts := Generate(Sphere, 10, 0, nil)
	_, y, _ := pts.At(0)
	if y != DefaultRadius {
		t.Errorf("expected top point at fallback radius %v, got %v", DefaultRadius, y)
	}
}

func TestKindCycle(t *testing.T) {
	k := Sphere
	seen := map[Kind]bool{}
	for i := 0; i < len(All()); i++ {
		seen[k] = true
		k = k.Next()
	}
	if k != Sphere {
		t.Errorf("expected cycle to wrap to sphere, got %s", k)
	}
	if len(seen) != 9 {
		t.Errorf("expected 9 distinct kinds, got %d", len(seen))
	}
	if Sphere.Prev() != Tree {
		t.Errorf("expected sphere.Prev() = tree, got %s", Sphere.Prev())
	}
	if Tree.Next() != Sphere {
		t.Errorf("expected tree.Next() = sphere, got %s", Tree.Next())
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"sphere", Sphere, false},
		{"Mobius", Mobius, false},
		{" dna ", DNA, false},
		{"torus", Sphere, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestCacheMemoizesAndInvalidates(t *testing.T) {
	c := NewCache(50, newRand(1))

	a := c.Get(Cube, 3)
	b := c.Get(Cube, 3)
	if &a[0] != &b[0] {
		t.Error("expected identical slice for repeated lookup")
	}

	c.Get(Sphere, 3)
	if c.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", c.Len())
	}

	d := c.Get(Cube, 4)
	if c.Len() != 1 {
		t.Errorf("expected radius change to drop old entries, got %d", c.Len())
	}
	if &d[0] == &a[0] {
		t.Error("expected regenerated set for new radius")
	}
}

func TestScatterBounds(t *testing.T) {
	pts := Scatter(4000, 60, newRand(1))
	for i, v := range pts {
		if v < -30 || v >= 30 {
			t.Fatalf("coord %d = %v outside scatter cube", i, v)
		}
	}
}

func TestSphericalShellBounds(t *testing.T) {
	pts := SphericalShell(800, 20, 60, newRand(1))
	for i := 0; i < pts.Len(); i++ {
		x, y, z := pts.At(i)
		d := math.Sqrt(x*x + y*y + z*z)
		if d < 20-1e-9 || d > 60 {
			t.Fatalf("point %d at distance %v", i, d)
		}
	}
}
