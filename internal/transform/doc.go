// Package transform contains the pure value conversions applied between
// callers and hardware backends: RGB calibration to a display color matrix,
// calibration clamping, display mode renaming/filtering and HSIC range
// clamping. Nothing here performs I/O or keeps state beyond the immutable
// ModeMapping table.
package transform
