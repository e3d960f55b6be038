package hardware

import (
	"codeberg.org/mutker/hwcaps/internal/backend"
	"codeberg.org/mutker/hwcaps/internal/feature"
	"codeberg.org/mutker/hwcaps/internal/journal"
)

// ColorBalanceRange returns the valid color balance range, or the zero
// range when unsupported.
func (m *Manager) ColorBalanceRange() (backend.Range[int], error) {
	if err := m.authorize(); err != nil {
		return backend.Range[int]{}, err
	}

	h, ok := handleAs[backend.ColorBalance](m, feature.ColorBalance)
	if !ok {
		m.unsupported(feature.ColorBalance, "balance_range")
		return backend.Range[int]{}, nil
	}
	r, err := h.ColorBalanceRange()
	if err != nil {
		m.backendFailed(err, feature.ColorBalance, "balance_range")
		return backend.Range[int]{}, nil
	}
	return r, nil
}

func (m *Manager) ColorBalance() (int, error) {
	if err := m.authorize(); err != nil {
		return 0, err
	}

	h, ok := handleAs[backend.ColorBalance](m, feature.ColorBalance)
	if !ok {
		m.unsupported(feature.ColorBalance, "get_balance")
		return 0, nil
	}
	v, err := h.ColorBalance()
	if err != nil {
		m.backendFailed(err, feature.ColorBalance, "get_balance")
		return 0, nil
	}
	return v, nil
}

func (m *Manager) SetColorBalance(value int) (bool, error) {
	if err := m.authorize(); err != nil {
		return false, err
	}

	ok := false
	if h, live := handleAs[backend.ColorBalance](m, feature.ColorBalance); live {
		done, err := h.SetColorBalance(value)
		if err != nil {
			m.backendFailed(err, feature.ColorBalance, "set_balance")
		} else {
			ok = done
		}
	} else {
		m.unsupported(feature.ColorBalance, "set_balance")
	}

	m.record(feature.ColorBalance, journal.OpSetColorBalance, value, ok)
	return ok, nil
}
