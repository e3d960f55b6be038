package hardware

import (
	"context"
	"time"

	"codeberg.org/mutker/hwcaps/internal/access"
	"codeberg.org/mutker/hwcaps/internal/backend"
	"codeberg.org/mutker/hwcaps/internal/feature"
	"codeberg.org/mutker/hwcaps/internal/journal"
	"codeberg.org/mutker/hwcaps/internal/logger"
	"codeberg.org/mutker/hwcaps/internal/resolver"
	"codeberg.org/mutker/hwcaps/internal/transform"
)

const journalTimeout = 2 * time.Second

type Manager struct {
	resolver   *resolver.Resolver
	modes      transform.ModeMapping
	authorizer access.Checker
	journal    journal.Recorder
	logger     logger.Logger
}

func New(res *resolver.Resolver, opts ...Option) *Manager {
	m := &Manager{
		resolver: res,
		journal:  journal.Noop(),
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.resolver == nil {
		m.resolver = resolver.New(nil, nil, m.logger)
	}
	return m
}

// handleAs returns id's per-feature backend as T when one is live.
func handleAs[T any](m *Manager, id feature.ID) (T, bool) {
	var zero T
	h, ok := m.resolver.Resolve(id)
	if !ok {
		return zero, false
	}
	t, ok := h.(T)
	return t, ok
}

// bulkFor returns the bulk service when id may fall back to it and the
// service currently advertises id.
func (m *Manager) bulkFor(id feature.ID) backend.BulkService {
	dispatch, err := feature.DispatchOf(id)
	if err != nil || dispatch != feature.PerFeatureThenBulk {
		return nil
	}
	if !m.resolver.IsSupportedBulk(id) {
		return nil
	}
	return m.resolver.Bulk()
}

func (m *Manager) authorize() error {
	return access.Enforce(m.authorizer)
}

func (m *Manager) backendFailed(err error, id feature.ID, op string) {
	m.logger.Warn().Err(err).Str("feature", id.String()).Str("operation", op).Msg("Hardware backend call failed")
}

func (m *Manager) unsupported(id feature.ID, op string) {
	m.logger.Debug().Str("feature", id.String()).Str("operation", op).Msg("Feature not supported")
}

// record journals a write. Journal failures never change the result.
func (m *Manager) record(id feature.ID, op journal.Operation, value any, ok bool) {
	ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
	defer cancel()

	if err := m.journal.Record(ctx, journal.NewEntry(id, op, value, ok)); err != nil {
		m.logger.Warn().Err(err).Str("operation", string(op)).Msg("Failed to journal hardware write")
	}
}

// SupportedFeatures returns the bulk service's advertised mask, if
// connected, combined with every feature whose per-feature backend has
// already been resolved as live.
func (m *Manager) SupportedFeatures() (feature.Mask, error) {
	if err := m.authorize(); err != nil {
		return 0, err
	}

	mask := m.resolver.Resolved()
	if bulk, ok := m.resolver.BulkMask(); ok {
		mask |= bulk
	}
	return mask, nil
}

// IsSupported reports whether any backend implements id.
func (m *Manager) IsSupported(id feature.ID) (bool, error) {
	if err := m.authorize(); err != nil {
		return false, err
	}
	if _, err := feature.KindOf(id); err != nil {
		return false, err
	}
	return m.resolver.IsSupported(id), nil
}

// IsSupportedName is IsSupported for a symbolic FEATURE_* name.
func (m *Manager) IsSupportedName(name string) (bool, error) {
	id, err := feature.Lookup(name)
	if err != nil {
		return false, err
	}
	return m.IsSupported(id)
}

// Get returns whether a boolean feature is enabled.
func (m *Manager) Get(id feature.ID) (bool, error) {
	if err := m.authorize(); err != nil {
		return false, err
	}
	if err := feature.RequireBoolean(id); err != nil {
		return false, err
	}

	if h, ok := handleAs[backend.Boolean](m, id); ok {
		enabled, err := h.IsEnabled()
		if err != nil {
			m.backendFailed(err, id, "get")
			return false, nil
		}
		return enabled, nil
	}

	if bulk := m.bulkFor(id); bulk != nil {
		enabled, err := bulk.Get(id)
		if err != nil {
			m.backendFailed(err, id, "get")
			return false, nil
		}
		return enabled, nil
	}

	m.unsupported(id, "get")
	return false, nil
}

// Set enables or disables a boolean feature and reports success.
func (m *Manager) Set(id feature.ID, enable bool) (bool, error) {
	if err := m.authorize(); err != nil {
		return false, err
	}
	if err := feature.RequireBoolean(id); err != nil {
		return false, err
	}

	ok := m.set(id, enable)
	m.record(id, journal.OpSetEnabled, enable, ok)
	return ok, nil
}

func (m *Manager) set(id feature.ID, enable bool) bool {
	if h, ok := handleAs[backend.Boolean](m, id); ok {
		done, err := h.SetEnabled(enable)
		if err != nil {
			m.backendFailed(err, id, "set")
			return false
		}
		return done
	}

	if bulk := m.bulkFor(id); bulk != nil {
		done, err := bulk.Set(id, enable)
		if err != nil {
			m.backendFailed(err, id, "set")
			return false
		}
		return done
	}

	m.unsupported(id, "set")
	return false
}
