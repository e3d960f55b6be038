package hardware

import (
	"codeberg.org/mutker/hwcaps/internal/backend"
	"codeberg.org/mutker/hwcaps/internal/feature"
	"codeberg.org/mutker/hwcaps/internal/journal"
)

// DisplayModes lists the device's display modes after remapping and
// filtering. It returns nil when unsupported.
func (m *Manager) DisplayModes() ([]backend.DisplayMode, error) {
	if err := m.authorize(); err != nil {
		return nil, err
	}

	h, ok := handleAs[backend.DisplayModes](m, feature.DisplayModes)
	if !ok {
		m.unsupported(feature.DisplayModes, "list_modes")
		return nil, nil
	}
	modes, err := h.DisplayModes()
	if err != nil {
		m.backendFailed(err, feature.DisplayModes, "list_modes")
		return nil, nil
	}
	return m.modes.RemapAll(modes), nil
}

// CurrentDisplayMode returns the active mode, or nil.
func (m *Manager) CurrentDisplayMode() (*backend.DisplayMode, error) {
	return m.singleMode("current_mode", backend.DisplayModes.CurrentDisplayMode)
}

// DefaultDisplayMode returns the boot default mode, or nil.
func (m *Manager) DefaultDisplayMode() (*backend.DisplayMode, error) {
	return m.singleMode("default_mode", backend.DisplayModes.DefaultDisplayMode)
}

func (m *Manager) singleMode(op string, get func(backend.DisplayModes) (*backend.DisplayMode, error)) (*backend.DisplayMode, error) {
	if err := m.authorize(); err != nil {
		return nil, err
	}

	h, ok := handleAs[backend.DisplayModes](m, feature.DisplayModes)
	if !ok {
		m.unsupported(feature.DisplayModes, op)
		return nil, nil
	}
	mode, err := get(h)
	if err != nil {
		m.backendFailed(err, feature.DisplayModes, op)
		return nil, nil
	}
	return m.modes.RemapPtr(mode), nil
}

// SetDisplayMode activates mode by id; names are not consulted.
func (m *Manager) SetDisplayMode(mode backend.DisplayMode, makeDefault bool) (bool, error) {
	if err := m.authorize(); err != nil {
		return false, err
	}

	ok := false
	if h, live := handleAs[backend.DisplayModes](m, feature.DisplayModes); live {
		done, err := h.SetDisplayMode(mode.ID, makeDefault)
		if err != nil {
			m.backendFailed(err, feature.DisplayModes, "set_mode")
		} else {
			ok = done
		}
	} else {
		m.unsupported(feature.DisplayModes, "set_mode")
	}

	m.record(feature.DisplayModes, journal.OpSetDisplayMode, mode, ok)
	return ok, nil
}
