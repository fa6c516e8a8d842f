package interval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMinute(t *testing.T) {
	cases := map[string]int{
		"00:00": 0,
		"09:30": 570,
		"18:00": 1080,
		"23:59": 1439,
		"24:00": 1440,
	}
	for input, want := range cases {
		got, err := ParseMinute(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got, "input %q", input)
	}
}

func TestParseMinute_Rejections(t *testing.T) {
	for _, input := range []string{"", "18", "25:00", "18:60", "24:30", "late"} {
		_, err := ParseMinute(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestFormatMinute(t *testing.T) {
	assert.Equal(t, "00:00", FormatMinute(0))
	assert.Equal(t, "09:05", FormatMinute(545))
	assert.Equal(t, "21:00", FormatMinute(1260))
}
