package backend

import (
	"cmp"
	"fmt"
)

// Indexes into the bulk service's calibration interchange array.
const (
	CalibrationRedIndex = iota
	CalibrationGreenIndex
	CalibrationBlueIndex
	CalibrationMinIndex
	CalibrationMaxIndex
)

// DisplayMode is a device-defined display mode.
type DisplayMode struct {
	ID   int    `yaml:"id" cbor:"1,keyasint"`
	Name string `yaml:"name" cbor:"2,keyasint"`
}

func (m DisplayMode) String() string {
	return fmt.Sprintf("%d:%s", m.ID, m.Name)
}

// HSIC is a hue/saturation/intensity/contrast picture adjustment.
type HSIC struct {
	Hue                 float32 `yaml:"hue" cbor:"1,keyasint"`
	Saturation          float32 `yaml:"saturation" cbor:"2,keyasint"`
	Intensity           float32 `yaml:"intensity" cbor:"3,keyasint"`
	Contrast            float32 `yaml:"contrast" cbor:"4,keyasint"`
	SaturationThreshold float32 `yaml:"saturation_threshold" cbor:"5,keyasint"`
}

// TouchscreenGesture is one gesture a touch panel can recognize.
type TouchscreenGesture struct {
	ID      int    `yaml:"id" cbor:"1,keyasint"`
	Name    string `yaml:"name" cbor:"2,keyasint"`
	KeyCode int    `yaml:"key_code" cbor:"3,keyasint"`
	Enabled bool   `yaml:"enabled" cbor:"4,keyasint"`
}

// Range is an inclusive [Lower, Upper] interval.
type Range[T cmp.Ordered] struct {
	Lower T `yaml:"lower" cbor:"1,keyasint"`
	Upper T `yaml:"upper" cbor:"2,keyasint"`
}

// Contains reports whether v lies within r.
func (r Range[T]) Contains(v T) bool {
	return v >= r.Lower && v <= r.Upper
}

// Clamp returns v moved into r.
func (r Range[T]) Clamp(v T) T {
	return min(max(v, r.Lower), r.Upper)
}

// IsZero reports whether r is the degenerate zero range.
func (r Range[T]) IsZero() bool {
	var zero T
	return r.Lower == zero && r.Upper == zero
}

// PictureAdjustmentRanges holds the valid range for each HSIC component.
type PictureAdjustmentRanges struct {
	Hue                 Range[float32] `yaml:"hue"`
	Saturation          Range[float32] `yaml:"saturation"`
	Intensity           Range[float32] `yaml:"intensity"`
	Contrast            Range[float32] `yaml:"contrast"`
	SaturationThreshold Range[float32] `yaml:"saturation_threshold"`
}

// List returns the ranges in hue, saturation, intensity, contrast,
// saturation threshold order.
func (r PictureAdjustmentRanges) List() []Range[float32] {
	return []Range[float32]{r.Hue, r.Saturation, r.Intensity, r.Contrast, r.SaturationThreshold}
}
