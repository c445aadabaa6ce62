package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty defaults to UTC", "", false},
		{"UTC literal", "UTC", false},
		{"valid zone", "America/New_York", false},
		{"another valid zone", "Asia/Shanghai", false},
		{"invalid zone", "Invalid/Zone", true},
		{"garbage", "not-a-zone", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := Parse(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, time.UTC, loc)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, loc)
		})
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid(""))
	assert.True(t, IsValid("UTC"))
	assert.True(t, IsValid("Europe/London"))
	assert.False(t, IsValid("Mars/OlympusMons"))
}

func TestFromUnix(t *testing.T) {
	ny := MustParse("America/New_York")

	// 1704085200 is 2024-01-01 05:00 UTC, midnight Eastern.
	got := FromUnix(1704085200, ny)
	assert.Equal(t, 2024, got.Year())
	assert.Equal(t, time.January, got.Month())
	assert.Equal(t, 1, got.Day())
	assert.Equal(t, 0, got.Hour())

	// nil location falls back to UTC.
	utc := FromUnix(1704085200, nil)
	assert.Equal(t, 5, utc.Hour())
}

func TestFormatEventTime(t *testing.T) {
	got := FormatEventTime(1704085200, time.UTC)
	assert.Equal(t, "Mon, Jan 1 2024 at 05:00", got)
}
