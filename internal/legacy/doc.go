// Package legacy implements the bulk hardware service used when a device
// ships no per-feature vendor backends.
//
// Hardware realizes display color calibration and reading enhancement on
// top of the display pipeline's accelerated color transform. Service is the
// privileged entry point in front of it: it enforces capability access and
// refuses features the implementation does not advertise.
package legacy
