package duration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := map[string]time.Duration{
		"7d":    7 * day,
		"4w":    28 * day,
		"3m":    90 * day,
		"0d":    0,
		"36h":   36 * time.Hour,
		"90m0s": 90 * time.Minute,
	}
	for in, want := range tests {
		got, err := Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "7", "d", "-1d", "-2h", "1.5d", "7y"} {
		_, err := Parse(bad)
		assert.Error(t, err, bad)
	}
}
