package spreadsheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlexibleDate(t *testing.T) {
	now := time.Date(2025, time.March, 15, 10, 30, 0, 0, time.UTC)

	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"iso", "2024-10-22", "2024-10-22"},
		{"iso unpadded", "2024-1-5", "2024-01-05"},
		{"iso with time", "2024-10-22T14:30:00", "2024-10-22"},
		{"excel serial", "45587", "2024-10-22"},
		{"excel serial fractional", "45587.5", "2024-10-22"},
		{"slash day first", "22/10/2024", "2024-10-22"},
		{"slash month first", "10/22/2024", "2024-10-22"},
		{"dash", "22-10-2024", "2024-10-22"},
		{"dot", "22.10.2024", "2024-10-22"},
		{"month name", "22 Oct 2024", "2024-10-22"},
		{"month name full", "22 October 2024", "2024-10-22"},
		{"month first name", "Oct 22, 2024", "2024-10-22"},
		{"month first name full", "October 22, 2024", "2024-10-22"},
		{"abbrev with dash", "22-Oct-2024", "2024-10-22"},
		{"two digit year", "22/10/24", "2024-10-22"},
		{"extra whitespace", "  22  October  2024 ", "2024-10-22"},
		{"today", "today", "2025-03-15"},
		{"now", "now", "2025-03-15"},
		{"yesterday", "yesterday", "2025-03-14"},
		{"tomorrow", "Tomorrow", "2025-03-16"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseFlexibleDate(tc.input, now)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.Format("2006-01-02"))
		})
	}
}

// Every representation of the same real-world date must normalize to
// the same stored value.
func TestParseFlexibleDateEquivalence(t *testing.T) {
	now := time.Now()
	representations := []string{"45587", "2024-10-22", "22/10/2024", "October 22, 2024"}

	first, err := ParseFlexibleDate(representations[0], now)
	require.NoError(t, err)
	for _, rep := range representations[1:] {
		got, err := ParseFlexibleDate(rep, now)
		require.NoError(t, err)
		assert.Equal(t, first.Format("2006-01-02"), got.Format("2006-01-02"), "input %q", rep)
	}
}

func TestParseFlexibleDateAmbiguous(t *testing.T) {
	now := time.Now()

	// Day-first wins when both readings are possible.
	got, err := ParseFlexibleDate("03/04/2024", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-04-03", got.Format("2006-01-02"))

	// Month-first is the fallback when day-first is impossible.
	got, err = ParseFlexibleDate("10/22/2024", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-10-22", got.Format("2006-01-02"))
}

func TestParseFlexibleDateErrors(t *testing.T) {
	now := time.Now()
	for _, input := range []string{"", "   ", "not a date", "-5", "99/99/2024"} {
		_, err := ParseFlexibleDate(input, now)
		assert.Error(t, err, "input %q", input)
	}
}
