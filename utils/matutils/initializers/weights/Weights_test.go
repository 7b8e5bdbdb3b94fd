package weights

import (
	"testing"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

func TestZeroUVInitializesToZero(t *testing.T) {
	weights := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})

	NewLinearUV(NewZeroUV()).Initialize(weights)

	rows, cols := weights.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if weights.At(i, j) != 0 {
				t.Errorf("weight (%v, %v): got %v want 0", i, j,
					weights.At(i, j))
			}
		}
	}
}

func TestLinearUVDrawsFromDistribution(t *testing.T) {
	dist := distuv.Uniform{Min: 1, Max: 2, Src: rand.NewSource(42)}
	weights := mat.NewDense(3, 4, nil)

	NewLinearUV(dist).Initialize(weights)

	rows, cols := weights.Dims()
	distinct := false
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			value := weights.At(i, j)
			if value < 1 || value >= 2 {
				t.Errorf("weight (%v, %v) outside distribution support: %v",
					i, j, value)
			}
			if value != weights.At(0, 0) {
				distinct = true
			}
		}
	}
	if !distinct {
		t.Error("every weight should be drawn independently")
	}
}

func TestNewLinearUVRejectsNilDistribution(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil distribution")
		}
	}()
	NewLinearUV(nil)
}
