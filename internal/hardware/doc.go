// Package hardware is the client-facing hardware abstraction: one Manager
// that answers capability queries and drives optional device features
// without callers knowing whether a per-feature vendor backend or the bulk
// legacy service implements each one.
//
// Every operation returns (value, error). The error is reserved for API
// misuse (invalid-argument) and authorization denial; a device lacking a
// feature, a disconnected service or a failed backend call yields
// false, nil or a zero value and is logged.
package hardware
