package id

import (
	"fmt"

	"github.com/google/uuid"
)

// AssignmentPrefix prefixes every operation-unit/CAG assignment id.
const AssignmentPrefix = "OUCAG"

// assignmentWidth is the minimum digit count of an assignment id.
const assignmentWidth = 3

// Sequential formats n as prefix followed by n zero-padded to width digits.
// Numbers wider than width are written in full.
func Sequential(prefix string, n, width int) string {
	return fmt.Sprintf("%s%0*d", prefix, width, n)
}

// Assignment formats the n-th assignment id, e.g. Assignment(6) == "OUCAG006".
func Assignment(n int) string {
	return Sequential(AssignmentPrefix, n, assignmentWidth)
}

// UUID returns a random v4 UUID string.
func UUID() string {
	return uuid.NewString()
}

// IsUUID reports whether s parses as a UUID.
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
