package transform

import (
	"strings"

	"codeberg.org/mutker/hwcaps/internal/backend"
)

// RemapDisplayMode renames mode through table. Unmapped modes pass through
// unchanged unless filter is set, in which case they are dropped (ok=false).
func RemapDisplayMode(mode backend.DisplayMode, table map[string]string, filter bool) (backend.DisplayMode, bool) {
	if renamed, found := table[mode.Name]; found {
		return backend.DisplayMode{ID: mode.ID, Name: renamed}, true
	}
	if !filter {
		return mode, true
	}
	return backend.DisplayMode{}, false
}

// ModeMapping is the immutable rename table plus the filter flag.
type ModeMapping struct {
	table  map[string]string
	filter bool
}

// NewModeMapping copies table so later changes by the caller have no effect.
func NewModeMapping(table map[string]string, filter bool) ModeMapping {
	copied := make(map[string]string, len(table))
	for k, v := range table {
		copied[k] = v
	}
	return ModeMapping{table: copied, filter: filter}
}

// ParseModeMappings builds a table from "name:renamed" entries. Trailing
// empty parts are dropped before splitting is judged, so "a:b:" maps a to b
// and "vivid:" is rejected. Entries that do not split into exactly two
// parts are returned as rejected.
func ParseModeMappings(entries []string) (table map[string]string, rejected []string) {
	table = make(map[string]string, len(entries))
	for _, entry := range entries {
		parts := strings.Split(entry, ":")
		for len(parts) > 0 && parts[len(parts)-1] == "" {
			parts = parts[:len(parts)-1]
		}
		if len(parts) != 2 {
			rejected = append(rejected, entry)
			continue
		}
		table[parts[0]] = parts[1]
	}
	return table, rejected
}

// Filtering reports whether unmapped modes are dropped.
func (m ModeMapping) Filtering() bool {
	return m.filter
}

// Len returns the number of rename entries.
func (m ModeMapping) Len() int {
	return len(m.table)
}

// Remap applies RemapDisplayMode with this mapping.
func (m ModeMapping) Remap(mode backend.DisplayMode) (backend.DisplayMode, bool) {
	return RemapDisplayMode(mode, m.table, m.filter)
}

// RemapPtr is Remap for single-mode queries; nil in, or a dropped mode,
// yields nil.
func (m ModeMapping) RemapPtr(mode *backend.DisplayMode) *backend.DisplayMode {
	if mode == nil {
		return nil
	}
	out, ok := m.Remap(*mode)
	if !ok {
		return nil
	}
	return &out
}

// RemapAll remaps every mode, dropping the suppressed ones. The result is
// never nil for a non-nil input.
func (m ModeMapping) RemapAll(modes []backend.DisplayMode) []backend.DisplayMode {
	if modes == nil {
		return nil
	}
	out := make([]backend.DisplayMode, 0, len(modes))
	for _, mode := range modes {
		if r, ok := m.Remap(mode); ok {
			out = append(out, r)
		}
	}
	return out
}
