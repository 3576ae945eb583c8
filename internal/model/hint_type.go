package model

import "time"

// HintType is a category of hint (definition, synonym, ...).
type HintType struct {
	ID          int64         `db:"id"`
	Code        string        `db:"code"`
	DisplayName string        `db:"display_name"`
	State       HintTypeState `db:"-"`
	Base
}

// IsActive reports whether the type is usable for new days and players.
func (h *HintType) IsActive() bool {
	_, ok := h.State.(Active)
	return ok
}

// DeletedAt returns the soft-delete time, or nil when the type is active.
func (h *HintType) DeletedAt() *time.Time {
	if d, ok := h.State.(Deleted); ok {
		at := d.At
		return &at
	}
	return nil
}

// HintTypeState is the lifecycle state of a hint type: Active or Deleted.
// The set of implementations is closed to this package.
type HintTypeState interface {
	hintTypeState()
}

// Active marks a hint type that can be used.
type Active struct{}

// Deleted marks a soft-deleted hint type.
type Deleted struct {
	At time.Time
}

func (Active) hintTypeState()  {}
func (Deleted) hintTypeState() {}

// StateFromDeletedAt maps a nullable deletion timestamp to a lifecycle state.
func StateFromDeletedAt(at *time.Time) HintTypeState {
	if at == nil {
		return Active{}
	}
	return Deleted{At: *at}
}
