package backend

import (
	"testing"

	"codeberg.org/mutker/hwcaps/internal/feature"
	"github.com/stretchr/testify/assert"
)

func TestRange(t *testing.T) {
	r := Range[int]{Lower: -100, Upper: 100}

	assert.True(t, r.Contains(0))
	assert.True(t, r.Contains(100))
	assert.False(t, r.Contains(101))
	assert.Equal(t, 100, r.Clamp(250))
	assert.Equal(t, -100, r.Clamp(-250))
	assert.Equal(t, 42, r.Clamp(42))
	assert.False(t, r.IsZero())
	assert.True(t, Range[float32]{}.IsZero())
}

func TestPictureAdjustmentRangesOrder(t *testing.T) {
	r := PictureAdjustmentRanges{
		Hue:                 Range[float32]{-180, 180},
		Saturation:          Range[float32]{0, 2},
		Intensity:           Range[float32]{0, 1},
		Contrast:            Range[float32]{0.5, 1.5},
		SaturationThreshold: Range[float32]{0, 1},
	}

	list := r.List()
	assert.Len(t, list, 5)
	assert.Equal(t, r.Hue, list[0])
	assert.Equal(t, r.Contrast, list[3])
	assert.Equal(t, r.SaturationThreshold, list[4])
}

type toggle struct{ on bool }

func (t *toggle) IsEnabled() (bool, error)        { return t.on, nil }
func (t *toggle) SetEnabled(on bool) (bool, error) { t.on = on; return true, nil }

func TestImplements(t *testing.T) {
	h := &toggle{}

	assert.True(t, Implements(h, feature.KindBoolean))
	assert.False(t, Implements(h, feature.KindDisplayColorCalibration))
	assert.False(t, Implements(h, feature.KindDisplayModeSet))
	assert.False(t, Implements(nil, feature.KindBoolean))
	assert.False(t, Implements(h, feature.Kind(0)))
}
