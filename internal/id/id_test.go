package id

import (
	"regexp"
	"testing"
)

func TestAssignment(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "OUCAG001"},
		{6, "OUCAG006"},
		{42, "OUCAG042"},
		{999, "OUCAG999"},
		{1000, "OUCAG1000"},
	}

	for _, tt := range tests {
		if got := Assignment(tt.n); got != tt.want {
			t.Errorf("Assignment(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestSequential_CustomWidth(t *testing.T) {
	if got := Sequential("REQ", 7, 5); got != "REQ00007" {
		t.Errorf("Sequential = %q", got)
	}
}

func TestUUID_Format(t *testing.T) {
	id := UUID()

	uuidRegex := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
	if !uuidRegex.MatchString(id) {
		t.Errorf("UUID() = %q, does not match UUID v4 format", id)
	}
	if !IsUUID(id) {
		t.Errorf("IsUUID(%q) = false", id)
	}
}

func TestUUID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		id := UUID()
		if seen[id] {
			t.Fatalf("duplicate UUID %q after %d iterations", id, i)
		}
		seen[id] = true
	}
}

func TestIsUUID_Rejects(t *testing.T) {
	for _, s := range []string{"", "OU001", "not-a-uuid"} {
		if IsUUID(s) {
			t.Errorf("IsUUID(%q) = true", s)
		}
	}
}
