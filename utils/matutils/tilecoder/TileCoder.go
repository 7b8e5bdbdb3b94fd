// Package tilecoder implements tile coding of vectors
package tilecoder

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/samplemv"

	"github.com/moonsim/golander/utils/floatutils"
)

// OffsetDiv controls tiling offsets. For each dimension, tilings are
// offset from each other by randomly sampling from a uniform
// distribution with support [-tile width/OffsetDiv, tile
// width/OffsetDiv].
const OffsetDiv float64 = 1.5

// TileCoder converts a low-dimensional vector within known bounds into
// a large, sparse binary vector. Each 1 identifies the tile of one
// tiling that the input falls in, so the number of nonzero elements
// equals the number of tilings (plus one if a bias unit is kept).
// Tilings are dense over the whole bounded space; inputs outside the
// bounds are coded into the edge tiles.
type TileCoder struct {
	numTilings  int
	minDims     mat.Vector
	offsets     []*mat.Dense
	bins        [][]int
	binLengths  [][]float64
	includeBias bool
}

// New creates and returns a new TileCoder. The minDims and maxDims
// arguments bound the space to tile and must have the same length as
// the vectors that will be coded.
//
// The bins argument determines both the number of tilings and the
// number of tiles per tiling: len(bins) tilings are used, and tiling j
// places bins[j][i] tiles along input dimension i. For example, with
// bins := [][]int{{2, 2}, {4, 3}} two tilings are used, the first a
// 2x2 grid and the second a 4x3 grid.
//
// If includeBias is true, a constant 1.0 bias unit is kept as the
// first feature of the coded representation.
func New(minDims, maxDims mat.Vector, bins [][]int, seed uint64,
	includeBias bool) *TileCoder {
	if minDims.Len() != maxDims.Len() {
		panic(fmt.Sprintf("cannot specify minimum with fewer dimensions "+
			"than maximum: %d != %d", minDims.Len(), maxDims.Len()))
	}
	if len(bins) == 0 {
		panic("need at least one tiling")
	}
	for j := range bins {
		if len(bins[j]) != minDims.Len() {
			panic(fmt.Sprintf("tiling %d needs one bin count per "+
				"dimension: \n\thave(%d) \n\twant(%d)", j, len(bins[j]),
				minDims.Len()))
		}
	}

	// Tile widths per tiling and dimension, and the bounds from which
	// tiling offsets are sampled
	var bounds []r1.Interval
	numTilings := len(bins)
	binLengths := make([][]float64, numTilings)

	for j := 0; j < numTilings; j++ {
		binLengths[j] = make([]float64, minDims.Len())

		for i := 0; i < minDims.Len(); i++ {
			binLength := (maxDims.AtVec(i) - minDims.AtVec(i)) /
				float64(bins[j][i])
			bound := binLength / OffsetDiv

			binLengths[j][i] = binLength
			bounds = append(bounds, r1.Interval{Min: -bound, Max: bound})
		}
	}

	source := rand.NewSource(seed)
	sampler := samplemv.IID{Dist: distmv.NewUniform(bounds, source)}

	offsets := make([]*mat.Dense, numTilings)
	for j := 0; j < numTilings; j++ {
		samples := mat.NewDense(1, len(bounds), nil)
		sampler.Sample(samples)
		offsets[j] = samples
	}

	return &TileCoder{numTilings, minDims, offsets, bins, binLengths,
		includeBias}
}

// Encode returns the tile-coded representation of v
func (t *TileCoder) Encode(v mat.Vector) *mat.VecDense {
	tileCoded := mat.NewVecDense(t.VecLength(), nil)

	for _, index := range t.EncodeIndices(v) {
		tileCoded.SetVec(int(index), 1.0)
	}
	return tileCoded
}

// EncodeIndices returns the indices of the nonzero features in the
// tile-coded representation of v
func (t *TileCoder) EncodeIndices(v mat.Vector) []float64 {
	bias := 0
	if t.includeBias {
		bias = 1
	}

	indices := make([]float64, t.numTilings+bias)
	for j := 0; j < t.numTilings; j++ {
		indices[j] = float64(t.encodeWithTiling(v, j))
	}
	if t.includeBias {
		indices[len(indices)-1] = 0.0
	}
	return indices
}

// encodeWithTiling returns the index of the single feature that tiling
// number tiling sets to 1.0 when coding v
func (t *TileCoder) encodeWithTiling(v mat.Vector, tiling int) int {
	bias := 0
	if t.includeBias {
		bias = 1
	}

	index := 0
	stride := 1
	for i := len(t.bins[tiling]) - 1; i > -1; i-- {
		data := v.AtVec(i) + t.offsets[tiling].At(0, i)

		// Tile along dimension i in which the offset feature falls,
		// clipped so out-of-bounds inputs use the edge tile
		tile := math.Floor((data - t.minDims.AtVec(i)) /
			t.binLengths[tiling][i])
		tile = floatutils.Clip(tile, 0.0, float64(t.bins[tiling][i]-1))

		// Row-major index of the tile within the tiling. The stride is
		// the product of the bin counts of all later dimensions, so
		// distinct tiles never share a feature index.
		index += int(tile) * stride
		stride *= t.bins[tiling][i]
	}
	return t.featuresBeforeTiling(tiling) + index + bias
}

// featuresBeforeTiling returns how many features the tile-coded
// representation holds before tiling number i
func (t *TileCoder) featuresBeforeTiling(i int) int {
	features := 0
	for j := 0; j < i; j++ {
		features += prod(t.bins[j])
	}
	return features
}

// VecLength returns the number of features in a tile-coded vector
func (t *TileCoder) VecLength() int {
	features := 0
	for i := 0; i < t.numTilings; i++ {
		features += prod(t.bins[i])
	}
	if t.includeBias {
		return features + 1
	}
	return features
}

// NumTilings returns the number of tilings the tile coder uses for
// encoding vectors
func (t *TileCoder) NumTilings() int {
	return t.numTilings
}

// String returns a string representation of a *TileCoder
func (t *TileCoder) String() string {
	return fmt.Sprintf("Tilings %d  |  Tiles: %v", t.numTilings, t.bins)
}

func prod(i []int) int {
	prod := 1
	for _, v := range i {
		prod *= v
	}
	return prod
}
