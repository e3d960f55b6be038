package hardware

import (
	"codeberg.org/mutker/hwcaps/internal/backend"
	"codeberg.org/mutker/hwcaps/internal/feature"
	"codeberg.org/mutker/hwcaps/internal/journal"
)

func (m *Manager) TouchscreenGestures() ([]backend.TouchscreenGesture, error) {
	if err := m.authorize(); err != nil {
		return nil, err
	}

	h, ok := handleAs[backend.TouchscreenGestures](m, feature.TouchscreenGestures)
	if !ok {
		m.unsupported(feature.TouchscreenGestures, "list_gestures")
		return nil, nil
	}
	gestures, err := h.SupportedGestures()
	if err != nil {
		m.backendFailed(err, feature.TouchscreenGestures, "list_gestures")
		return nil, nil
	}
	return gestures, nil
}

func (m *Manager) SetTouchscreenGestureEnabled(gesture backend.TouchscreenGesture, state bool) (bool, error) {
	if err := m.authorize(); err != nil {
		return false, err
	}

	ok := false
	if h, live := handleAs[backend.TouchscreenGestures](m, feature.TouchscreenGestures); live {
		done, err := h.SetGestureEnabled(gesture, state)
		if err != nil {
			m.backendFailed(err, feature.TouchscreenGestures, "set_gesture")
		} else {
			ok = done
		}
	} else {
		m.unsupported(feature.TouchscreenGestures, "set_gesture")
	}

	gesture.Enabled = state
	m.record(feature.TouchscreenGestures, journal.OpSetGestureEnabled, gesture, ok)
	return ok, nil
}
