package domain

import "time"

// HabitType selects the completion semantics applied to a habit.
type HabitType string

const (
	HabitTypeBoolean         HabitType = "boolean"
	HabitTypeCounter         HabitType = "counter"
	HabitTypeNegativeBoolean HabitType = "negative_boolean"
	HabitTypeNegativeCounter HabitType = "negative_counter"
	HabitTypeTask            HabitType = "task"
)

// HabitTypes lists every supported type in a stable order.
func HabitTypes() []HabitType {
	return []HabitType{
		HabitTypeBoolean,
		HabitTypeCounter,
		HabitTypeNegativeBoolean,
		HabitTypeNegativeCounter,
		HabitTypeTask,
	}
}

var habitTypeLabels = map[HabitType]string{
	HabitTypeBoolean:         "Boolean",
	HabitTypeCounter:         "Counter",
	HabitTypeNegativeBoolean: "Negative Boolean",
	HabitTypeNegativeCounter: "Negative Counter",
	HabitTypeTask:            "Task",
}

// Label returns the display name for the type, or an empty string for unknown types.
func (t HabitType) Label() string {
	return habitTypeLabels[t]
}

// Valid reports whether the type is one of the supported variants.
func (t HabitType) Valid() bool {
	_, ok := habitTypeLabels[t]
	return ok
}

// RequiresTarget reports whether the type needs a positive target counter.
func (t HabitType) RequiresTarget() bool {
	return t == HabitTypeCounter || t == HabitTypeNegativeCounter
}

// HabitColor is the hex color shown next to the habit in clients.
type HabitColor string

const (
	ColorRed    HabitColor = "#e57373"
	ColorBlue   HabitColor = "#64b5f6"
	ColorGreen  HabitColor = "#81c784"
	ColorYellow HabitColor = "#ffd54f"
	ColorPurple HabitColor = "#ba68c8"
	ColorOrange HabitColor = "#ffb74d"
	ColorPink   HabitColor = "#f06292"
	ColorTeal   HabitColor = "#4db6ac"
)

// Habit is a user-owned record tracked per calendar day. CompletedDates is
// the sparse ledger: a missing day is equivalent to a value of zero, and
// values are never negative. CurrentStreak and LongestStreak are a derived
// cache over the ledger; they are recomputed on every mutation.
type Habit struct {
	ID             string         `json:"id"`
	OwnerID        string         `json:"owner_id"`
	Name           string         `json:"name"`
	Type           HabitType      `json:"type"`
	Color          HabitColor     `json:"color"`
	Description    string         `json:"description,omitempty"`
	Deadline       *time.Time     `json:"deadline,omitempty"`
	TargetCounter  int            `json:"target_counter,omitempty"`
	CompletedDates map[string]int `json:"completed_dates"`
	CurrentStreak  int            `json:"current_streak"`
	LongestStreak  int            `json:"longest_streak"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// LedgerValue returns the tracked value for a day key, defaulting to zero.
func (h *Habit) LedgerValue(day string) int {
	if h == nil || h.CompletedDates == nil {
		return 0
	}
	return h.CompletedDates[day]
}

// SetLedger stores a value for a day key, allocating the ledger if needed.
func (h *Habit) SetLedger(day string, value int) {
	if h.CompletedDates == nil {
		h.CompletedDates = make(map[string]int)
	}
	h.CompletedDates[day] = value
}

// ClearLedger removes a day key from the ledger.
func (h *Habit) ClearLedger(day string) {
	delete(h.CompletedDates, day)
}

// Validate checks the creation-time invariants of the record.
func (h *Habit) Validate() error {
	if h == nil {
		return ErrInvalidPayload
	}
	if h.Name == "" {
		return NewError(ErrCodeInvalid, "habit name is required")
	}
	if !h.Type.Valid() {
		return ErrInvalidHabitType
	}
	if h.Type.RequiresTarget() && h.TargetCounter <= 0 {
		return NewError(ErrCodeInvalid, "target counter must be greater than 0 for counter type habits")
	}
	return nil
}
