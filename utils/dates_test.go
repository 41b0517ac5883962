package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseActivityDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{" 2024-05-01 ", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-05-01T09:30", time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)},
		{"2024-05-01T09:30:00+09:00", time.Date(2024, 5, 1, 0, 30, 0, 0, time.UTC)},
		{"2024-05-01T00:00:00.000Z", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := ParseActivityDate(tt.in)
		require.NoError(t, err, tt.in)
		assert.True(t, tt.want.Equal(got), "%s: got %s", tt.in, got)
	}

	for _, bad := range []string{"", "yesterday", "2024/03/01", "2024-13-01"} {
		_, err := ParseActivityDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestCleanOptional(t *testing.T) {
	assert.Nil(t, CleanOptional(nil))

	blank := "   "
	assert.Nil(t, CleanOptional(&blank))

	script := "봄 소풍<script>alert(1)</script>"
	got := CleanOptional(&script)
	require.NotNil(t, got)
	assert.Equal(t, "봄 소풍", *got)
}
