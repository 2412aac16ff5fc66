package touchstone

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsqrt(t *testing.T) {
	cases := map[int]int{0: 0, 1: 1, 3: 1, 4: 2, 8: 2, 9: 3, 9999: 99, 10000: 100}
	for in, want := range cases {
		assert.Equal(t, want, isqrt(in), "isqrt(%d)", in)
	}
}

func TestInferNumPorts(t *testing.T) {
	n, err := inferNumPorts(9)
	assert.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = inferNumPorts(19)
	assert.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = inferNumPorts(7)
	assert.Error(t, err)
	assert.True(t, IsKind(err, ErrInconsistentMatrixShape))
}

func TestConvertMA(t *testing.T) {
	mag, angle := convertMA(0.9, 180)
	assert.Equal(t, 0.9, mag)
	assert.InDelta(t, math.Pi, angle, 1e-12)
}

func TestConvertRIZero(t *testing.T) {
	mag, angle := convertRI(0, 0)
	assert.Equal(t, 0.0, mag)
	assert.Equal(t, 0.0, angle)
}

func TestConvertDB(t *testing.T) {
	mag, angle := convertDB(20, 90)
	assert.InDelta(t, 10.0, mag, 1e-9)
	assert.InDelta(t, math.Pi/2, angle, 1e-12)
}

func TestPlaceAndMirrorLower(t *testing.T) {
	// 2-port lower-triangular payload: row0 = 1 pair, row1 = 2 pairs.
	payload := []float64{1, 0, 2, 0, 3, 0}
	full := make([]float64, 8)
	placeLower(full, payload, 2)
	// full[0][0]=row0 pair0=(1,0); full[1][0]=row1 pair0=(2,0); full[1][1]=row1 pair1=(3,0)
	assert.Equal(t, []float64{1, 0, 0, 0, 2, 0, 3, 0}, full)
	mirrorUpperFromLower(full, 2)
	assert.Equal(t, []float64{1, 0, 2, 0, 2, 0, 3, 0}, full)
}

func TestSwapTwoPortOrder(t *testing.T) {
	full := []float64{1, 1, 2, 2, 3, 3, 4, 4}
	swapTwoPortOrder(full)
	assert.Equal(t, []float64{1, 1, 3, 3, 2, 2, 4, 4}, full)
}
