package journal

import (
	"context"
	"time"

	"codeberg.org/mutker/hwcaps/internal/feature"
	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
)

// Recorder is the journal as seen by the hardware manager.
type Recorder interface {
	Record(ctx context.Context, entry *Entry) error
	// Entries returns up to limit entries, newest first. A limit <= 0
	// returns every entry.
	Entries(ctx context.Context, limit int) ([]*Entry, error)
	Close() error
}

// Repository stores entries.
type Repository interface {
	Record(entry *Entry) error
	Entries(limit int) ([]*Entry, error)
	Close() error
}

// Operation names a mutating hardware call.
type Operation string

const (
	OpSetEnabled           Operation = "set_enabled"
	OpSetCalibration       Operation = "set_calibration"
	OpSetDisplayMode       Operation = "set_display_mode"
	OpSetColorBalance      Operation = "set_color_balance"
	OpSetPictureAdjustment Operation = "set_picture_adjustment"
	OpSetGestureEnabled    Operation = "set_gesture_enabled"
)

// Entry is one mutation attempt.
type Entry struct {
	ID        uuid.UUID
	Timestamp time.Time
	Feature   feature.ID
	Operation Operation
	// Value is the argument of the call. It is stored as canonical CBOR;
	// entries read back carry the raw encoding in Raw and a generic
	// decoding in Value.
	Value   any
	Raw     cbor.RawMessage
	Success bool
}

// NewEntry stamps a fresh entry with an id and the current time.
func NewEntry(id feature.ID, op Operation, value any, success bool) *Entry {
	return &Entry{
		ID:        uuid.New(),
		Timestamp: time.Now().UTC(),
		Feature:   id,
		Operation: op,
		Value:     value,
		Success:   success,
	}
}

// Decode unmarshals the stored value into v.
func (e *Entry) Decode(v any) error {
	return decMode.Unmarshal(e.Raw, v)
}
