package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestParseEntityID(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		expectError bool
	}{
		{name: "valid v4", raw: "9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d"},
		{name: "uppercase v4", raw: "9B1DEB4D-3B7D-4BAD-9BDD-2B0D7B3DCB6D"},
		{name: "empty", raw: "", expectError: true},
		{name: "not a uuid", raw: "not-a-uuid", expectError: true},
		{name: "v1 uuid", raw: "c2d29867-3d0b-11eb-adc1-0242ac120002", expectError: true},
		{name: "wrong variant", raw: "9b1deb4d-3b7d-4bad-1bdd-2b0d7b3dcb6d", expectError: true},
		{name: "urn form", raw: "urn:uuid:9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseEntityID("id", tt.raw)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id.String() != tt.raw {
				t.Errorf("id should round-trip unchanged: got %s", id.String())
			}
		})
	}
}

func TestNewEntityID_GeneratesValidID(t *testing.T) {
	id := NewEntityID()

	parsed, err := ParseEntityID("id", id.String())
	if err != nil {
		t.Fatalf("generated id should be valid: %v", err)
	}
	if !parsed.Equal(id) {
		t.Error("parsed id should equal the generated one")
	}
}

func TestNewEntityName(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		expectError bool
		expect      string
	}{
		{name: "valid", raw: "Groceries", expect: "Groceries"},
		{name: "trimmed", raw: "  Rent  ", expect: "Rent"},
		{name: "minimum length", raw: "ab", expect: "ab"},
		{name: "empty", raw: "", expectError: true},
		{name: "whitespace only", raw: "   ", expectError: true},
		{name: "too short", raw: "a", expectError: true},
		{name: "too long", raw: strings.Repeat("x", 51), expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := NewEntityName("name", tt.raw)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				var domainErr *Error
				if !errors.As(err, &domainErr) || domainErr.Kind != KindInvalidName {
					t.Errorf("expected invalid name error, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if n.String() != tt.expect {
				t.Errorf("expected %q, got %q", tt.expect, n.String())
			}
		})
	}
}

func TestNewDayOfMonth(t *testing.T) {
	for _, valid := range []int{1, 15, 31} {
		if _, err := NewDayOfMonth("closing_day", valid); err != nil {
			t.Errorf("day %d should be valid: %v", valid, err)
		}
	}
	for _, invalid := range []int{0, -1, 32, 100} {
		if _, err := NewDayOfMonth("closing_day", invalid); err == nil {
			t.Errorf("day %d should be rejected", invalid)
		}
	}
}

func TestNewJustification(t *testing.T) {
	if _, err := NewJustification("short"); err == nil {
		t.Error("justification under 10 characters should be rejected")
	}
	if _, err := NewJustification(strings.Repeat("x", 501)); err == nil {
		t.Error("justification over 500 characters should be rejected")
	}
	j, err := NewJustification("disputed charge on the statement")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if j.String() != "disputed charge on the statement" {
		t.Errorf("unexpected value %q", j.String())
	}
}
