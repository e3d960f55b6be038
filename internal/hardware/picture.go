package hardware

import (
	"codeberg.org/mutker/hwcaps/internal/backend"
	"codeberg.org/mutker/hwcaps/internal/feature"
	"codeberg.org/mutker/hwcaps/internal/journal"
)

// PictureAdjustment returns the current HSIC, or nil when unsupported.
func (m *Manager) PictureAdjustment() (*backend.HSIC, error) {
	return m.hsic("get_picture", backend.PictureAdjustment.PictureAdjustment)
}

// DefaultPictureAdjustment returns the device default HSIC, or nil.
func (m *Manager) DefaultPictureAdjustment() (*backend.HSIC, error) {
	return m.hsic("default_picture", backend.PictureAdjustment.DefaultPictureAdjustment)
}

func (m *Manager) hsic(op string, get func(backend.PictureAdjustment) (backend.HSIC, error)) (*backend.HSIC, error) {
	if err := m.authorize(); err != nil {
		return nil, err
	}

	h, ok := handleAs[backend.PictureAdjustment](m, feature.PictureAdjustment)
	if !ok {
		m.unsupported(feature.PictureAdjustment, op)
		return nil, nil
	}
	v, err := get(h)
	if err != nil {
		m.backendFailed(err, feature.PictureAdjustment, op)
		return nil, nil
	}
	return &v, nil
}

// SetPictureAdjustment writes hsic as given. Range checking is left to
// the caller and the backend; see transform.ClampHSIC.
func (m *Manager) SetPictureAdjustment(hsic backend.HSIC) (bool, error) {
	if err := m.authorize(); err != nil {
		return false, err
	}

	ok := false
	if h, live := handleAs[backend.PictureAdjustment](m, feature.PictureAdjustment); live {
		done, err := h.SetPictureAdjustment(hsic)
		if err != nil {
			m.backendFailed(err, feature.PictureAdjustment, "set_picture")
		} else {
			ok = done
		}
	} else {
		m.unsupported(feature.PictureAdjustment, "set_picture")
	}

	m.record(feature.PictureAdjustment, journal.OpSetPictureAdjustment, hsic, ok)
	return ok, nil
}

// PictureAdjustmentRanges returns the hue, saturation, intensity,
// contrast and saturation threshold ranges, or nil when unsupported.
func (m *Manager) PictureAdjustmentRanges() ([]backend.Range[float32], error) {
	if err := m.authorize(); err != nil {
		return nil, err
	}

	h, ok := handleAs[backend.PictureAdjustment](m, feature.PictureAdjustment)
	if !ok {
		m.unsupported(feature.PictureAdjustment, "picture_ranges")
		return nil, nil
	}
	ranges, err := h.Ranges()
	if err != nil {
		m.backendFailed(err, feature.PictureAdjustment, "picture_ranges")
		return nil, nil
	}
	return ranges.List(), nil
}
