package feature

import (
	"fmt"
	"math/bits"
	"sort"
	"strings"

	"codeberg.org/mutker/hwcaps/internal/errors"
)

// ID identifies one hardware capability. Values are distinct single bits.
type ID uint32

// Mask is an OR-combination of IDs.
type Mask uint32

const (
	// AdaptiveBacklight covers technologies like NVIDIA SmartDimmer, QCOM CABL or Samsung CABC
	AdaptiveBacklight ID = 0x1
	ColorEnhancement  ID = 0x2
	// DisplayColorCalibration is the display RGB calibration
	DisplayColorCalibration ID = 0x4
	HighTouchPollingRate    ID = 0x8
	// HighTouchSensitivity is glove mode
	HighTouchSensitivity ID = 0x10
	// KeyDisable turns off hardware navigation keys
	KeyDisable ID = 0x20
	// KeySwap swaps hardware navigation keys
	KeySwap ID = 0x40
	// SunlightEnhancement increases display readability in bright light
	SunlightEnhancement ID = 0x100
	// TouchHovering is stylus hovering
	TouchHovering       ID = 0x800
	AutoContrast        ID = 0x1000
	DisplayModes        ID = 0x2000
	ReadingEnhancement  ID = 0x4000
	ColorBalance        ID = 0x20000
	PictureAdjustment   ID = 0x40000
	TouchscreenGestures ID = 0x80000
	AntiFlicker         ID = 0x200000
)

// Kind tags the shape of the value a capability exposes.
type Kind uint8

const (
	KindBoolean Kind = iota + 1
	KindDisplayColorCalibration
	KindDisplayModeSet
	KindColorBalance
	KindPictureAdjustment
	KindTouchscreenGestureSet
)

func (k Kind) String() string {
	switch k {
	case KindBoolean:
		return "boolean"
	case KindDisplayColorCalibration:
		return "calibration"
	case KindDisplayModeSet:
		return "display-modes"
	case KindColorBalance:
		return "color-balance"
	case KindPictureAdjustment:
		return "picture-adjustment"
	case KindTouchscreenGestureSet:
		return "gestures"
	default:
		return "unknown"
	}
}

// Dispatch tells which backends may answer for a capability.
type Dispatch uint8

const (
	// PerFeatureOnly capabilities have no bulk-service fallback
	PerFeatureOnly Dispatch = iota + 1
	// PerFeatureThenBulk prefers the per-feature backend and falls back to
	// the bulk service when its advertised mask carries the bit
	PerFeatureThenBulk
)

type entry struct {
	name     string
	kind     Kind
	dispatch Dispatch
}

var registry = map[ID]entry{
	AdaptiveBacklight:       {"FEATURE_ADAPTIVE_BACKLIGHT", KindBoolean, PerFeatureThenBulk},
	ColorEnhancement:        {"FEATURE_COLOR_ENHANCEMENT", KindBoolean, PerFeatureThenBulk},
	DisplayColorCalibration: {"FEATURE_DISPLAY_COLOR_CALIBRATION", KindDisplayColorCalibration, PerFeatureThenBulk},
	HighTouchPollingRate:    {"FEATURE_HIGH_TOUCH_POLLING_RATE", KindBoolean, PerFeatureThenBulk},
	HighTouchSensitivity:    {"FEATURE_HIGH_TOUCH_SENSITIVITY", KindBoolean, PerFeatureThenBulk},
	KeyDisable:              {"FEATURE_KEY_DISABLE", KindBoolean, PerFeatureThenBulk},
	KeySwap:                 {"FEATURE_KEY_SWAP", KindBoolean, PerFeatureThenBulk},
	SunlightEnhancement:     {"FEATURE_SUNLIGHT_ENHANCEMENT", KindBoolean, PerFeatureThenBulk},
	TouchHovering:           {"FEATURE_TOUCH_HOVERING", KindBoolean, PerFeatureThenBulk},
	AutoContrast:            {"FEATURE_AUTO_CONTRAST", KindBoolean, PerFeatureThenBulk},
	DisplayModes:            {"FEATURE_DISPLAY_MODES", KindDisplayModeSet, PerFeatureOnly},
	ReadingEnhancement:      {"FEATURE_READING_ENHANCEMENT", KindBoolean, PerFeatureThenBulk},
	ColorBalance:            {"FEATURE_COLOR_BALANCE", KindColorBalance, PerFeatureOnly},
	PictureAdjustment:       {"FEATURE_PICTURE_ADJUSTMENT", KindPictureAdjustment, PerFeatureOnly},
	TouchscreenGestures:     {"FEATURE_TOUCHSCREEN_GESTURES", KindTouchscreenGestureSet, PerFeatureOnly},
	AntiFlicker:             {"FEATURE_ANTI_FLICKER", KindBoolean, PerFeatureThenBulk},
}

const namePrefix = "FEATURE_"

// byName is built once from registry
var byName = func() map[string]ID {
	m := make(map[string]ID, len(registry))
	for id, e := range registry {
		m[e.name] = id
	}
	return m
}()

// all lists every registered ID in ascending bit order
var all = func() []ID {
	ids := make([]ID, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}()

// All returns every registered capability in ascending bit order.
func All() []ID {
	out := make([]ID, len(all))
	copy(out, all)
	return out
}

// Valid reports whether id is a registered capability.
func (id ID) Valid() bool {
	_, ok := registry[id]
	return ok
}

// String returns the symbolic FEATURE_* name, or the hex value if unknown.
func (id ID) String() string {
	if e, ok := registry[id]; ok {
		return e.name
	}
	return fmt.Sprintf("0x%x", uint32(id))
}

// KindOf classifies id. Unknown IDs are a caller error.
func KindOf(id ID) (Kind, error) {
	e, ok := registry[id]
	if !ok {
		return 0, errors.New().Wrap(errors.ErrInvalidArgument,
			errors.New().WithData(ErrUnknownFeature, id.String()))
	}
	return e.kind, nil
}

// DispatchOf returns the backend dispatch rule for id.
func DispatchOf(id ID) (Dispatch, error) {
	e, ok := registry[id]
	if !ok {
		return 0, errors.New().Wrap(errors.ErrInvalidArgument,
			errors.New().WithData(ErrUnknownFeature, id.String()))
	}
	return e.dispatch, nil
}

// IsBoolean reports whether id is a simple enable/disable capability.
func IsBoolean(id ID) bool {
	e, ok := registry[id]
	return ok && e.kind == KindBoolean
}

// RequireBoolean fails with an invalid-argument error unless id is boolean.
func RequireBoolean(id ID) error {
	if IsBoolean(id) {
		return nil
	}
	return errors.New().Wrap(errors.ErrInvalidArgument,
		errors.New().WithData(ErrNotBoolean, fmt.Sprintf("%s is not a boolean", id)))
}

// Lookup resolves a symbolic FEATURE_* name. Anything else, including
// names without the FEATURE_ prefix, is rejected as invalid.
func Lookup(name string) (ID, error) {
	if !strings.HasPrefix(name, namePrefix) {
		return 0, errors.New().Wrap(errors.ErrInvalidArgument,
			errors.New().WithData(ErrUnknownName, name))
	}
	id, ok := byName[name]
	if !ok {
		return 0, errors.New().Wrap(errors.ErrInvalidArgument,
			errors.New().WithData(ErrUnknownName, name))
	}
	return id, nil
}

// Parse is the lenient form of Lookup used for command-line input: it
// accepts "key-swap", "key_swap", "KEY_SWAP" and "FEATURE_KEY_SWAP".
func Parse(s string) (ID, error) {
	name := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	if !strings.HasPrefix(name, namePrefix) {
		name = namePrefix + name
	}
	return Lookup(name)
}

// Short returns the lowercase name without prefix, e.g. "key_swap".
func (id ID) Short() string {
	return strings.ToLower(strings.TrimPrefix(id.String(), namePrefix))
}

// Has reports whether every bit of id is set in m.
func (m Mask) Has(id ID) bool {
	return id != 0 && Mask(id)&m == Mask(id)
}

// With returns m with id's bit set.
func (m Mask) With(id ID) Mask {
	return m | Mask(id)
}

// IDs lists the registered capabilities set in m, in ascending bit order.
func (m Mask) IDs() []ID {
	var out []ID
	for rest := uint32(m); rest != 0; rest &= rest - 1 {
		id := ID(uint32(1) << bits.TrailingZeros32(rest))
		if id.Valid() {
			out = append(out, id)
		}
	}
	return out
}

func (m Mask) String() string {
	ids := m.IDs()
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.String()
	}
	return strings.Join(names, "|")
}
