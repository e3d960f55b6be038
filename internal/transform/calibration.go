package transform

import (
	"codeberg.org/mutker/hwcaps/internal/errors"
	"gonum.org/v1/gonum/mat"
)

// MatrixSize is the dimension of a display color transform.
const MatrixSize = 4

// ClampCalibration clamps each channel into [minValue, maxValue].
func ClampCalibration(rgb [3]int, minValue, maxValue int) [3]int {
	var out [3]int
	for i, v := range rgb {
		out[i] = clamp(v, minValue, maxValue)
	}
	return out
}

// CalibrationMatrix converts an RGB calibration into the scale-only 4x4
// color matrix used by the display pipeline: diag(r/max, g/max, b/max, 1).
// Channels are clamped into [0, maxValue] first.
func CalibrationMatrix(rgb [3]int, maxValue int) (*mat.Dense, error) {
	if maxValue <= 0 {
		return nil, errors.New().Wrap(errors.ErrInvalidArgument,
			errors.New().WithData(ErrInvalidMax, maxValue))
	}

	clamped := ClampCalibration(rgb, 0, maxValue)
	m := mat.NewDense(MatrixSize, MatrixSize, nil)
	for i, v := range clamped {
		m.Set(i, i, float64(v)/float64(maxValue))
	}
	m.Set(MatrixSize-1, MatrixSize-1, 1)

	return m, nil
}

// IdentityMatrix returns the 4x4 identity color transform.
func IdentityMatrix() *mat.Dense {
	m := mat.NewDense(MatrixSize, MatrixSize, nil)
	for i := 0; i < MatrixSize; i++ {
		m.Set(i, i, 1)
	}
	return m
}

// MatrixValues flattens m row by row into the float32 layout the display
// transform pipeline consumes.
func MatrixValues(m mat.Matrix) []float32 {
	r, c := m.Dims()
	out := make([]float32, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out = append(out, float32(m.At(i, j)))
		}
	}
	return out
}

func clamp(value, minValue, maxValue int) int {
	if value < minValue {
		return minValue
	}
	if value > maxValue {
		return maxValue
	}

	return value
}
