// Package backend declares the contracts hwcaps needs from the components
// that actually drive hardware: per-feature vendor backends obtained from a
// Source, and the bulk legacy BulkService that answers for a bitmask of
// boolean features plus display color calibration.
//
// Implementations live elsewhere (see internal/legacy and internal/sim);
// nothing in this package performs I/O.
package backend
