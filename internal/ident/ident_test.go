package ident

import (
	"regexp"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"id123", "id123"},
		{" id123 ", "id123"},
		{`"id123"`, "id123"},
		{`'id123'`, "id123"},
		{`'"id123"'`, "id123"},
		{` "id123" `, "id123"},
		{`" id123 "`, "id123"},
		{"", ""},
		{`""`, ""},
		{"   ", ""},
		{"42", "42"},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

var jobIDPattern = regexp.MustCompile(`^\d+_[0-9a-z]{7}$`)

func TestNewJobID(t *testing.T) {
	id := NewJobID()
	if !jobIDPattern.MatchString(id) {
		t.Errorf("NewJobID() = %q, want {millis}_{7 base36 chars}", id)
	}
}

func TestNewApplicationID(t *testing.T) {
	id := NewApplicationID()
	if !strings.HasPrefix(id, "app_") {
		t.Fatalf("NewApplicationID() = %q, want app_ prefix", id)
	}
	if !jobIDPattern.MatchString(strings.TrimPrefix(id, "app_")) {
		t.Errorf("NewApplicationID() = %q, want app_{millis}_{7 base36 chars}", id)
	}
}

func TestIDsAreUnlikelyToCollide(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewApplicationID()
		if seen[id] {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = true
	}
}
