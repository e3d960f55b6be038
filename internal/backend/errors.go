package backend

import "codeberg.org/mutker/hwcaps/internal/errors"

const (
	// ErrNotFound is returned by a Source when no backend exists for a feature
	ErrNotFound = errors.ErrorCode("backend_not_found")
	// ErrDisconnected is returned by a BulkService whose remote end went away
	ErrDisconnected = errors.ErrorCode("backend_disconnected")
)
