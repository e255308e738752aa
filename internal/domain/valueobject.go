package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Name length bounds. Transaction descriptions and reopening
// justifications carry their own bounds.
const (
	MinNameLength          = 2
	MaxNameLength          = 50
	MinDescriptionLength   = 3
	MaxDescriptionLength   = 100
	MinJustificationLength = 10
	MaxJustificationLength = 500
)

// EntityID is a validated v4 UUID identifying an aggregate or a
// cross-aggregate reference. Equality is value-based.
type EntityID struct {
	value string
}

// NewEntityID generates a fresh valid id.
func NewEntityID() EntityID {
	return EntityID{value: uuid.NewString()}
}

// ParseEntityID validates raw as a canonical v4 UUID. The original
// string is preserved, so mixed-case input round-trips unchanged.
func ParseEntityID(field, raw string) (EntityID, error) {
	if len(raw) != 36 {
		return EntityID{}, NewInvalidIDError(field, raw)
	}
	u, err := uuid.Parse(raw)
	if err != nil || u.Version() != 4 || u.Variant() != uuid.RFC4122 {
		return EntityID{}, NewInvalidIDError(field, raw)
	}
	return EntityID{value: raw}, nil
}

// restoredID wraps an id already validated before persistence.
func restoredID(value string) EntityID {
	return EntityID{value: value}
}

func (id EntityID) String() string { return id.value }

func (id EntityID) IsZero() bool { return id.value == "" }

func (id EntityID) Equal(o EntityID) bool { return id.value == o.value }

// EntityName is a trimmed, length-bounded string.
type EntityName struct {
	value string
}

// NewEntityName validates raw against the default 2-50 bound.
func NewEntityName(field, raw string) (EntityName, error) {
	return NewBoundedName(field, raw, MinNameLength, MaxNameLength)
}

// NewBoundedName validates raw against an entity-specific bound.
// Whitespace-only input always fails.
func NewBoundedName(field, raw string, minLen, maxLen int) (EntityName, error) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) < minLen || len(trimmed) > maxLen {
		return EntityName{}, NewInvalidNameError(field, raw, minLen, maxLen)
	}
	return EntityName{value: trimmed}, nil
}

func (n EntityName) String() string { return n.value }

// DayOfMonth is a day in the 1-31 range, used for credit card closing
// and due days.
type DayOfMonth struct {
	day int
}

// NewDayOfMonth validates value as a day of month.
func NewDayOfMonth(field string, value int) (DayOfMonth, error) {
	if value < 1 || value > 31 {
		return DayOfMonth{}, NewInvalidDayError(field, value)
	}
	return DayOfMonth{day: value}, nil
}

func (d DayOfMonth) Int() int { return d.day }

// Justification is the mandatory explanation for reopening a paid bill.
type Justification struct {
	value string
}

// NewJustification validates raw against the 10-500 bound.
func NewJustification(raw string) (Justification, error) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) < MinJustificationLength || len(trimmed) > MaxJustificationLength {
		return Justification{}, NewInvalidNameError("justification", raw, MinJustificationLength, MaxJustificationLength)
	}
	return Justification{value: trimmed}, nil
}

func (j Justification) String() string { return j.value }
