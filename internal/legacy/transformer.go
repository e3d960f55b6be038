package legacy

import (
	"sync"

	"gonum.org/v1/gonum/mat"
)

// Color matrix levels. Higher levels are applied later in the pipeline.
const (
	LevelColorMatrixNightDisplay = 100
	LevelColorMatrixGrayscale    = 200

	LevelColorMatrixCalibration = LevelColorMatrixNightDisplay + 1
	LevelColorMatrixReading     = LevelColorMatrixGrayscale + 1
)

// grayscaleMatrix converts color to luminance (Rec. 709 weights).
var grayscaleMatrix = mat.NewDense(4, 4, []float64{
	.2126, .2126, .2126, 0,
	.7152, .7152, .7152, 0,
	.0722, .0722, .0722, 0,
	0, 0, 0, 1,
})

// DisplayTransformer applies a 4x4 color matrix at a pipeline level.
type DisplayTransformer interface {
	SetColorMatrix(level int, matrix []float32) error
}

// MemoryTransformer keeps the last matrix set at each level.
type MemoryTransformer struct {
	mu       sync.RWMutex
	matrices map[int][]float32
}

func NewMemoryTransformer() *MemoryTransformer {
	return &MemoryTransformer{matrices: make(map[int][]float32)}
}

func (t *MemoryTransformer) SetColorMatrix(level int, matrix []float32) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	m := make([]float32, len(matrix))
	copy(m, matrix)
	t.matrices[level] = m

	return nil
}

// Matrix returns a copy of the matrix at level, or nil if none was set.
func (t *MemoryTransformer) Matrix(level int) []float32 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	m, ok := t.matrices[level]
	if !ok {
		return nil
	}
	out := make([]float32, len(m))
	copy(out, m)

	return out
}
