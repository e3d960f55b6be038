// Package feature holds the static registry of hardware capabilities.
//
// Every capability is identified by an ID that occupies its own bit, so the
// bulk legacy service can advertise support for many boolean toggles in a
// single Mask. Each ID maps to exactly one Kind, and the Kind decides which
// backend paths may answer for it (see Dispatch).
package feature
