package backend

import "codeberg.org/mutker/hwcaps/internal/feature"

// Handle is a live per-feature backend. Its concrete type implements the
// interface matching the feature's kind.
type Handle interface{}

// Source acquires per-feature backends. Acquire returns (nil, nil) or an
// ErrNotFound error when the device has no backend for id; both mean absent.
type Source interface {
	Acquire(id feature.ID) (Handle, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(id feature.ID) (Handle, error)

func (f SourceFunc) Acquire(id feature.ID) (Handle, error) {
	return f(id)
}

// Boolean is shared by every simple enable/disable capability.
type Boolean interface {
	IsEnabled() (bool, error)
	SetEnabled(enabled bool) (bool, error)
}

// Calibration is the per-feature display color calibration backend.
type Calibration interface {
	Calibration() ([]int, error)
	SetCalibration(rgb [3]int) (bool, error)
	MinValue() (int, error)
	MaxValue() (int, error)
}

// DisplayModes is the per-feature display mode backend. Current and
// default return nil when the device reports no mode.
type DisplayModes interface {
	DisplayModes() ([]DisplayMode, error)
	CurrentDisplayMode() (*DisplayMode, error)
	DefaultDisplayMode() (*DisplayMode, error)
	SetDisplayMode(id int, makeDefault bool) (bool, error)
}

// ColorBalance is the per-feature color temperature backend.
type ColorBalance interface {
	ColorBalanceRange() (Range[int], error)
	ColorBalance() (int, error)
	SetColorBalance(value int) (bool, error)
}

// PictureAdjustment is the per-feature HSIC backend.
type PictureAdjustment interface {
	PictureAdjustment() (HSIC, error)
	DefaultPictureAdjustment() (HSIC, error)
	SetPictureAdjustment(hsic HSIC) (bool, error)
	Ranges() (PictureAdjustmentRanges, error)
}

// TouchscreenGestures is the per-feature gesture backend.
type TouchscreenGestures interface {
	SupportedGestures() ([]TouchscreenGesture, error)
	SetGestureEnabled(gesture TouchscreenGesture, enabled bool) (bool, error)
}

// BulkService is the privileged legacy service. Any call may fail with
// ErrDisconnected; callers treat that as the feature being unsupported.
type BulkService interface {
	SupportedFeatures() (feature.Mask, error)
	Get(id feature.ID) (bool, error)
	Set(id feature.ID, enabled bool) (bool, error)
	// DisplayColorCalibration returns [R, G, B, min, max], or nil.
	DisplayColorCalibration() ([]int, error)
	SetDisplayColorCalibration(rgb []int) (bool, error)
}

// Implements reports whether h satisfies the handle interface for kind.
func Implements(h Handle, kind feature.Kind) bool {
	switch kind {
	case feature.KindBoolean:
		_, ok := h.(Boolean)
		return ok
	case feature.KindDisplayColorCalibration:
		_, ok := h.(Calibration)
		return ok
	case feature.KindDisplayModeSet:
		_, ok := h.(DisplayModes)
		return ok
	case feature.KindColorBalance:
		_, ok := h.(ColorBalance)
		return ok
	case feature.KindPictureAdjustment:
		_, ok := h.(PictureAdjustment)
		return ok
	case feature.KindTouchscreenGestureSet:
		_, ok := h.(TouchscreenGestures)
		return ok
	default:
		return false
	}
}
