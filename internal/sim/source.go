package sim

import (
	"slices"
	"sync"

	"codeberg.org/mutker/hwcaps/internal/backend"
	"codeberg.org/mutker/hwcaps/internal/errors"
	"codeberg.org/mutker/hwcaps/internal/feature"
)

// Source hands out the in-memory backends a profile declares. Handles are
// built once; repeated acquisitions return the same handle.
type Source struct {
	name     string
	legacy   *LegacyState
	handles  map[feature.ID]backend.Handle
	mu       sync.Mutex
	acquired map[feature.ID]int
}

var _ backend.Source = (*Source)(nil)

// NewSource builds the backends declared by p. A nil profile declares
// none.
func NewSource(p *Profile) (*Source, error) {
	s := &Source{
		handles:  make(map[feature.ID]backend.Handle),
		acquired: make(map[feature.ID]int),
	}
	if p == nil {
		return s, nil
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	s.name = p.Name
	if p.Legacy != nil {
		l := *p.Legacy
		s.legacy = &l
	}
	for name, enabled := range p.Booleans {
		id, _ := feature.Parse(name)
		s.handles[id] = &toggle{enabled: enabled}
	}
	if p.Calibration != nil {
		s.handles[feature.DisplayColorCalibration] = &calibration{profile: *p.Calibration}
	}
	if p.DisplayModes != nil {
		dm := *p.DisplayModes
		dm.Modes = slices.Clone(dm.Modes)
		s.handles[feature.DisplayModes] = &displayModes{profile: dm}
	}
	if p.ColorBalance != nil {
		s.handles[feature.ColorBalance] = &colorBalance{profile: *p.ColorBalance}
	}
	if p.PictureAdjustment != nil {
		s.handles[feature.PictureAdjustment] = &pictureAdjustment{profile: *p.PictureAdjustment}
	}
	if p.TouchscreenGestures != nil {
		s.handles[feature.TouchscreenGestures] = &gestures{list: slices.Clone(p.TouchscreenGestures)}
	}

	return s, nil
}

func (s *Source) Acquire(id feature.ID) (backend.Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.acquired[id]++
	h, ok := s.handles[id]
	if !ok {
		return nil, errors.New().WithData(backend.ErrNotFound, id.String())
	}
	return h, nil
}

// Acquisitions returns how many times id was acquired.
func (s *Source) Acquisitions(id feature.ID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.acquired[id]
}

// Declared returns the mask of features the profile declares.
func (s *Source) Declared() feature.Mask {
	var mask feature.Mask
	for id := range s.handles {
		mask = mask.With(id)
	}
	return mask
}

// Profile snapshots the current backend state as a profile.
func (s *Source) Profile() *Profile {
	p := &Profile{Name: s.name}
	if s.legacy != nil {
		l := *s.legacy
		p.Legacy = &l
	}

	for id, h := range s.handles {
		switch h := h.(type) {
		case *toggle:
			if p.Booleans == nil {
				p.Booleans = make(map[string]bool)
			}
			enabled, _ := h.IsEnabled()
			p.Booleans[id.Short()] = enabled
		case *calibration:
			h.mu.Lock()
			c := h.profile
			h.mu.Unlock()
			p.Calibration = &c
		case *displayModes:
			h.mu.Lock()
			dm := h.profile
			dm.Modes = slices.Clone(dm.Modes)
			h.mu.Unlock()
			p.DisplayModes = &dm
		case *colorBalance:
			h.mu.Lock()
			b := h.profile
			h.mu.Unlock()
			p.ColorBalance = &b
		case *pictureAdjustment:
			h.mu.Lock()
			pa := h.profile
			h.mu.Unlock()
			p.PictureAdjustment = &pa
		case *gestures:
			p.TouchscreenGestures, _ = h.SupportedGestures()
		}
	}

	return p
}
