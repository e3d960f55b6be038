// Package resolver finds and remembers the backend behind each feature.
//
// A per-feature backend is acquired at most once per process lifetime:
// whichever outcome the first attempt produces, a live handle or absence,
// is cached and returned forever after. Backend availability is a boot-time
// property and acquisition costs a discovery round trip.
package resolver

import (
	"strconv"
	"sync"

	"codeberg.org/mutker/hwcaps/internal/backend"
	"codeberg.org/mutker/hwcaps/internal/errors"
	"codeberg.org/mutker/hwcaps/internal/feature"
	"codeberg.org/mutker/hwcaps/internal/logger"
	"golang.org/x/sync/singleflight"
)

// slot is a settled resolution: handle is nil when the backend is absent.
type slot struct {
	handle backend.Handle
}

type Resolver struct {
	source backend.Source
	bulk   backend.BulkService
	logger logger.Logger

	mu    sync.RWMutex
	slots map[feature.ID]slot
	group singleflight.Group
}

// New creates a resolver. Either source or bulk may be nil.
func New(source backend.Source, bulk backend.BulkService, log logger.Logger) *Resolver {
	if log == nil {
		log = logger.Nop()
	}
	return &Resolver{
		source: source,
		bulk:   bulk,
		logger: log.With("resolver"),
		slots:  make(map[feature.ID]slot),
	}
}

// Bulk returns the bulk legacy service, or nil when not connected.
func (r *Resolver) Bulk() backend.BulkService {
	return r.bulk
}

// Resolve returns the per-feature handle for id, acquiring it on first use.
func (r *Resolver) Resolve(id feature.ID) (backend.Handle, bool) {
	if s, ok := r.cached(id); ok {
		return s.handle, s.handle != nil
	}

	v, _, _ := r.group.Do(strconv.FormatUint(uint64(id), 16), func() (interface{}, error) {
		if s, ok := r.cached(id); ok {
			return s, nil
		}
		return r.store(id, slot{handle: r.acquire(id)}), nil
	})

	s := v.(slot)
	return s.handle, s.handle != nil
}

// IsSupportedBulk asks the bulk service for its advertised mask. The mask is
// read fresh on every call.
func (r *Resolver) IsSupportedBulk(id feature.ID) bool {
	mask, ok := r.BulkMask()
	return ok && mask.Has(id)
}

// BulkMask returns the bulk service's advertised mask; ok is false when the
// service is not connected or the call failed.
func (r *Resolver) BulkMask() (feature.Mask, bool) {
	if r.bulk == nil {
		r.logger.Debug().Msg("Bulk hardware service not connected")
		return 0, false
	}

	mask, err := r.bulk.SupportedFeatures()
	if err != nil {
		r.logger.Warn().Err(err).Msg("Failed to read bulk supported features")
		return 0, false
	}

	return mask, true
}

// IsSupported reports whether any backend can answer for id. Per-feature
// resolution always runs first so its outcome is cached for later calls.
func (r *Resolver) IsSupported(id feature.ID) bool {
	_, live := r.Resolve(id)
	return live || r.IsSupportedBulk(id)
}

// Resolved returns the mask of features whose per-feature backend has been
// resolved as live. Features never resolved do not contribute.
func (r *Resolver) Resolved() feature.Mask {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var mask feature.Mask
	for id, s := range r.slots {
		if s.handle != nil {
			mask = mask.With(id)
		}
	}
	return mask
}

func (r *Resolver) cached(id feature.ID) (slot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.slots[id]
	return s, ok
}

// store settles id's slot. The first writer wins; later writers get the
// settled value back.
func (r *Resolver) store(id feature.ID, s slot) slot {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.slots[id]; ok {
		return existing
	}
	r.slots[id] = s
	return s
}

func (r *Resolver) acquire(id feature.ID) backend.Handle {
	if r.source == nil {
		return nil
	}

	h, err := r.source.Acquire(id)
	if err != nil {
		if errors.HasCode(err, backend.ErrNotFound) {
			r.logger.Debug().Str("feature", id.String()).Msg("No per-feature backend")
		} else {
			r.logger.Warn().Err(err).Str("feature", id.String()).Msg("Failed to acquire per-feature backend")
		}
		return nil
	}
	if h == nil {
		r.logger.Debug().Str("feature", id.String()).Msg("No per-feature backend")
		return nil
	}

	kind, err := feature.KindOf(id)
	if err != nil || !backend.Implements(h, kind) {
		r.logger.Warn().
			Str("feature", id.String()).
			Str("kind", kind.String()).
			Msg("Per-feature backend does not implement the capability interface")
		return nil
	}

	r.logger.Debug().Str("feature", id.String()).Msg("Per-feature backend resolved")

	return h
}
