package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTime_SortsLexically(t *testing.T) {
	earlier := time.Date(2025, 3, 1, 9, 0, 0, 5, time.FixedZone("IST", 5*3600+1800))
	later := earlier.Add(time.Millisecond)

	a, b := FormatTime(earlier), FormatTime(later)
	assert.Len(t, a, len(b))
	assert.Less(t, a, b)
	assert.Equal(t, "2025-03-01T03:30:00.000000005Z", a)
}

func TestParseTime(t *testing.T) {
	want := time.Date(2025, 3, 1, 3, 30, 0, 0, time.UTC)

	got, err := ParseTime(FormatTime(want))
	require.NoError(t, err)
	assert.True(t, want.Equal(got))

	got, err = ParseTime("2025-03-01T09:00:00+05:30")
	require.NoError(t, err)
	assert.True(t, want.Equal(got))

	_, err = ParseTime("yesterday")
	assert.Error(t, err)
}

func TestNullTime(t *testing.T) {
	assert.Nil(t, FormatNullTime(nil))
	parsed, err := ParseNullTime(nil)
	require.NoError(t, err)
	assert.Nil(t, parsed)

	now := time.Now()
	s := FormatNullTime(&now).(string)
	parsed, err = ParseNullTime(&s)
	require.NoError(t, err)
	assert.True(t, now.Equal(*parsed))
}
