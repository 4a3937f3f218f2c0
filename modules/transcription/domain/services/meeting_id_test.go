package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeriveMeetingID_StableForSameDay(t *testing.T) {
	at := time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)
	later := time.Date(2026, 3, 5, 23, 59, 0, 0, time.UTC)

	a := DeriveMeetingID("zoom", "https://zoom.us/j/123", at)
	b := DeriveMeetingID("zoom", "https://zoom.us/j/123", later)

	assert.Equal(t, a, b)
	assert.Len(t, a, 16)
}

func TestDeriveMeetingID_DiffersAcrossDayBoundary(t *testing.T) {
	day1 := time.Date(2026, 3, 5, 23, 59, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 6, 0, 0, 1, 0, time.UTC)

	a := DeriveMeetingID("zoom", "https://zoom.us/j/123", day1)
	b := DeriveMeetingID("zoom", "https://zoom.us/j/123", day2)

	assert.NotEqual(t, a, b)
}

func TestDeriveMeetingID_DiffersByPlatformAndURL(t *testing.T) {
	at := time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)

	base := DeriveMeetingID("zoom", "https://zoom.us/j/123", at)
	diffPlatform := DeriveMeetingID("teams", "https://zoom.us/j/123", at)
	diffURL := DeriveMeetingID("zoom", "https://zoom.us/j/456", at)

	assert.NotEqual(t, base, diffPlatform)
	assert.NotEqual(t, base, diffURL)
}
