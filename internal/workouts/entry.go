package workouts

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"time"
)

var (
	ErrEntryNotFound = errors.New("entry not found")
	ErrInvalidEntry  = errors.New("invalid entry")
	ErrInvalidTarget = errors.New("streak target days must be at least 1")
)

// Entry is one logged measurement. Entries are never edited in place:
// an edit is a new entry with a fresh RecordedAt, so the log doubles as history.
type Entry struct {
	ID         int       `json:"id"`
	Exercise   string    `json:"exercise"`
	User       string    `json:"user"`
	RecordedAt time.Time `json:"recordedAt"`
	Value      float64   `json:"value"`

	// PreviousValue is only carried by bulk updates and only used to describe
	// the old -> new transition in notifications.
	PreviousValue *float64 `json:"previousValue,omitempty"`
}

var runningExerciseRegex = regexp.MustCompile(`(?i)run`)

// UnitFor returns "mi" for running-type exercises and "lbs" for everything else.
func UnitFor(exercise string) string {
	if runningExerciseRegex.MatchString(exercise) {
		return "mi"
	}
	return "lbs"
}

type ValidationError struct {
	Index  int
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("entry %d: invalid %s: %s", e.Index, e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidEntry
}

func (e Entry) validate(index int) error {
	switch {
	case e.Exercise == "":
		return &ValidationError{Index: index, Field: "exercise", Reason: "empty"}
	case e.User == "":
		return &ValidationError{Index: index, Field: "user", Reason: "empty"}
	case e.RecordedAt.IsZero():
		return &ValidationError{Index: index, Field: "recordedAt", Reason: "missing"}
	case math.IsNaN(e.Value) || math.IsInf(e.Value, 0):
		return &ValidationError{Index: index, Field: "value", Reason: "not a finite number"}
	}
	return nil
}

// Validate checks a single entry before it is stored.
func (e Entry) Validate() error {
	return e.validate(-1)
}

// ValidateEntries fails on the first malformed entry; it never coerces values.
func ValidateEntries(entries []Entry) error {
	for i := range entries {
		if err := entries[i].validate(i); err != nil {
			return err
		}
	}
	return nil
}
