package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty(" x "))
}

func TestIsValidUUID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"v4", "9b2f6a1e-3c4d-4e5f-8a9b-0c1d2e3f4a5b", true},
		{"v7", "0191b3a2-1f00-7abc-8def-0123456789ab", true},
		{"uppercase", "9B2F6A1E-3C4D-4E5F-8A9B-0C1D2E3F4A5B", true},
		{"missing dashes", "9b2f6a1e3c4d4e5f8a9b0c1d2e3f4a5b", false},
		{"too short", "9b2f6a1e-3c4d-4e5f-8a9b", false},
		{"not hex", "9b2f6a1e-3c4d-4e5f-8a9b-0c1d2e3f4a5z", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsValidUUID(tt.input))
		})
	}
}

func TestIsValidDate(t *testing.T) {
	d, ok := IsValidDate("2025-03-10")
	assert.True(t, ok)
	assert.Equal(t, 10, d.Day())

	_, ok = IsValidDate("10-03-2025")
	assert.False(t, ok)

	_, ok = IsValidDate("2025-13-40")
	assert.False(t, ok)
}

func TestIsValidMonth(t *testing.T) {
	m, ok := IsValidMonth("2025-03")
	assert.True(t, ok)
	assert.Equal(t, 2025, m.Year())

	_, ok = IsValidMonth("2025-3")
	assert.False(t, ok)

	_, ok = IsValidMonth("2025-03-10")
	assert.False(t, ok)
}

func TestIsValidName(t *testing.T) {
	assert.True(t, IsValidName("Eid Holiday"))
	assert.True(t, IsValidName("New Year's Day (Observed)"))
	assert.True(t, IsValidName("Q1 Review, 2025!"))
	assert.False(t, IsValidName("bad#name"))
	assert.False(t, IsValidName(""))
}

func TestIsValidReason(t *testing.T) {
	assert.True(t, IsValidReason("family emergency"))
	assert.False(t, IsValidReason("sick on 3rd"))
	assert.False(t, IsValidReason(""))
}

func TestIsInSlice(t *testing.T) {
	statuses := []string{"Pending", "Approved", "Rejected"}
	assert.True(t, IsInSlice("Approved", statuses))
	assert.False(t, IsInSlice("approved", statuses))
	assert.False(t, IsInSlice("Cancelled", statuses))
}
