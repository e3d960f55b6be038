package hardware

import (
	"codeberg.org/mutker/hwcaps/internal/access"
	"codeberg.org/mutker/hwcaps/internal/journal"
	"codeberg.org/mutker/hwcaps/internal/logger"
	"codeberg.org/mutker/hwcaps/internal/transform"
)

type Option func(*Manager)

// WithModeMapping sets the display mode rename table and filter flag.
func WithModeMapping(mapping transform.ModeMapping) Option {
	return func(m *Manager) {
		m.modes = mapping
	}
}

// WithAuthorizer installs the access check run before every operation.
func WithAuthorizer(checker access.Checker) Option {
	return func(m *Manager) {
		m.authorizer = checker
	}
}

// WithJournal records every write through rec.
func WithJournal(rec journal.Recorder) Option {
	return func(m *Manager) {
		if rec != nil {
			m.journal = rec
		}
	}
}

func WithLogger(log logger.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.logger = log.With("hardware")
		}
	}
}
