// Package sim emulates per-feature vendor backends from a YAML device
// profile.
package sim

import (
	"os"

	"codeberg.org/mutker/hwcaps/internal/backend"
	"codeberg.org/mutker/hwcaps/internal/errors"
	"codeberg.org/mutker/hwcaps/internal/feature"
	"gopkg.in/yaml.v3"
)

const (
	ErrReadProfile    = errors.ErrorCode("sim_read_profile_failed")
	ErrParseProfile   = errors.ErrorCode("sim_parse_profile_failed")
	ErrInvalidProfile = errors.ErrorCode("sim_invalid_profile")
	ErrWriteProfile   = errors.ErrorCode("sim_write_profile_failed")
)

const profileFilePerm = 0o644

// Profile declares which per-feature backends a device has and their
// state. Omitted sections are absent backends.
type Profile struct {
	Name string `yaml:"name,omitempty"`
	// Booleans maps a feature name (e.g. key_swap) to its enabled state
	Booleans            map[string]bool              `yaml:"booleans,omitempty"`
	Calibration         *CalibrationProfile          `yaml:"calibration,omitempty"`
	DisplayModes        *DisplayModesProfile         `yaml:"display_modes,omitempty"`
	ColorBalance        *ColorBalanceProfile         `yaml:"color_balance,omitempty"`
	PictureAdjustment   *PictureAdjustmentProfile    `yaml:"picture_adjustment,omitempty"`
	TouchscreenGestures []backend.TouchscreenGesture `yaml:"touchscreen_gestures,omitempty"`
	// Legacy is the persisted state of the bulk legacy service. The
	// simulator carries it but does not interpret it.
	Legacy *LegacyState `yaml:"legacy,omitempty"`
}

type LegacyState struct {
	Calibration        *[3]int `yaml:"calibration,omitempty,flow"`
	ReadingEnhancement bool    `yaml:"reading_enhancement"`
}

type CalibrationProfile struct {
	RGB [3]int `yaml:"rgb,flow"`
	Min int    `yaml:"min"`
	Max int    `yaml:"max"`
}

type DisplayModesProfile struct {
	Modes   []backend.DisplayMode `yaml:"modes"`
	Current *int                  `yaml:"current,omitempty"`
	Default *int                  `yaml:"default,omitempty"`
}

type ColorBalanceProfile struct {
	Range backend.Range[int] `yaml:"range"`
	Value int                `yaml:"value"`
}

type PictureAdjustmentProfile struct {
	Current backend.HSIC                    `yaml:"current"`
	Default backend.HSIC                    `yaml:"default"`
	Ranges  backend.PictureAdjustmentRanges `yaml:"ranges"`
}

// LoadProfile reads and validates a profile file.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New().Wrap(ErrReadProfile, err)
	}
	return ParseProfile(data)
}

// ParseProfile decodes and validates a YAML profile.
func ParseProfile(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, errors.New().Wrap(ErrParseProfile, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks that every boolean entry names a boolean feature and
// that declared ranges are ordered.
func (p *Profile) Validate() error {
	errFactory := errors.New()

	for name := range p.Booleans {
		id, err := feature.Parse(name)
		if err != nil {
			return errFactory.Wrap(ErrInvalidProfile, err)
		}
		if !feature.IsBoolean(id) {
			return errFactory.WithData(ErrInvalidProfile, name+" is not a boolean feature")
		}
	}
	if c := p.Calibration; c != nil && c.Min > c.Max {
		return errFactory.WithData(ErrInvalidProfile, "calibration min exceeds max")
	}
	if b := p.ColorBalance; b != nil && b.Range.Lower > b.Range.Upper {
		return errFactory.WithData(ErrInvalidProfile, "color balance range is inverted")
	}
	return nil
}

// Save writes p to path as YAML.
func (p *Profile) Save(path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return errors.New().Wrap(ErrWriteProfile, err)
	}
	if err := os.WriteFile(path, data, profileFilePerm); err != nil {
		return errors.New().Wrap(ErrWriteProfile, err)
	}
	return nil
}
