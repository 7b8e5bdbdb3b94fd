package tilecoder

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestEncodeSetsOneFeaturePerTiling(t *testing.T) {
	tc := New(
		mat.NewVecDense(2, []float64{0, 0}),
		mat.NewVecDense(2, []float64{1, 1}),
		[][]int{{4, 4}, {2, 3}},
		12,
		true,
	)

	if tc.VecLength() != 4*4+2*3+1 {
		t.Errorf("vector length: got %v want %v", tc.VecLength(), 4*4+2*3+1)
	}

	coded := tc.Encode(mat.NewVecDense(2, []float64{0.5, 0.25}))

	nonZero := 0
	for i := 0; i < coded.Len(); i++ {
		switch coded.AtVec(i) {
		case 0.0:
		case 1.0:
			nonZero++
		default:
			t.Fatalf("feature %v is %v, tile-coded features must be "+
				"binary", i, coded.AtVec(i))
		}
	}
	if nonZero != tc.NumTilings()+1 {
		t.Errorf("nonzero features: got %v want %v (one per tiling plus "+
			"bias)", nonZero, tc.NumTilings()+1)
	}
	if coded.AtVec(0) != 1.0 {
		t.Error("bias unit should always be set")
	}
}

func TestEncodeClipsOutOfBounds(t *testing.T) {
	tc := New(
		mat.NewVecDense(1, []float64{0}),
		mat.NewVecDense(1, []float64{1}),
		[][]int{{4}},
		12,
		false,
	)

	low := tc.EncodeIndices(mat.NewVecDense(1, []float64{-100}))
	high := tc.EncodeIndices(mat.NewVecDense(1, []float64{100}))

	if low[0] != 0 {
		t.Errorf("below-range inputs should code into the first tile, "+
			"got index %v", low[0])
	}
	if high[0] != 3 {
		t.Errorf("above-range inputs should code into the last tile, "+
			"got index %v", high[0])
	}
}

func TestEncodeIndicesAreDistinctPerTile(t *testing.T) {
	// Zero offsets pin every tiling to the nominal grid, making the
	// tile of each input exact.
	bins := []int{2, 3, 4}
	tc := &TileCoder{
		numTilings:  1,
		minDims:     mat.NewVecDense(3, nil),
		offsets:     []*mat.Dense{mat.NewDense(1, 3, nil)},
		bins:        [][]int{bins},
		binLengths:  [][]float64{{1.0 / 2, 1.0 / 3, 1.0 / 4}},
		includeBias: false,
	}

	seen := make(map[float64]bool)
	for t0 := 0; t0 < bins[0]; t0++ {
		for t1 := 0; t1 < bins[1]; t1++ {
			for t2 := 0; t2 < bins[2]; t2++ {
				centre := mat.NewVecDense(3, []float64{
					(float64(t0) + 0.5) / float64(bins[0]),
					(float64(t1) + 0.5) / float64(bins[1]),
					(float64(t2) + 0.5) / float64(bins[2]),
				})

				index := tc.EncodeIndices(centre)[0]
				want := float64((t0*bins[1]+t1)*bins[2] + t2)
				if index != want {
					t.Errorf("tile (%v, %v, %v): got index %v want %v",
						t0, t1, t2, index, want)
				}
				if seen[index] {
					t.Errorf("tile (%v, %v, %v) aliases feature index %v",
						t0, t1, t2, index)
				}
				seen[index] = true

				if int(index) >= tc.VecLength() {
					t.Fatalf("index %v outside the %v allocated features",
						index, tc.VecLength())
				}
			}
		}
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	input := mat.NewVecDense(3, []float64{0.1, 0.7, 0.4})

	bounds := mat.NewVecDense(3, nil)
	upper := mat.NewVecDense(3, []float64{1, 1, 1})
	bins := [][]int{{3, 3, 3}, {4, 4, 4}}

	first := New(bounds, upper, bins, 42, true).Encode(input)
	second := New(bounds, upper, bins, 42, true).Encode(input)

	if !mat.Equal(first, second) {
		t.Error("equal seeds must produce equal codings")
	}
}

func BenchmarkTileCoder(b *testing.B) {
	tc := New(
		mat.NewVecDense(8, nil),
		mat.NewVecDense(8, []float64{1, 1, 1, 1, 1, 1, 1, 1}),
		[][]int{{8, 8, 8, 8, 8, 8, 8, 8}},
		12,
		true,
	)

	y := mat.NewVecDense(8, []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5})

	for i := 0; i < b.N; i++ {
		tc.Encode(y)
	}
}
