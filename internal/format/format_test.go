package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    time.Duration
		expected string
	}{
		{name: "microseconds", input: 250 * time.Microsecond, expected: "250µs"},
		{name: "milliseconds", input: 42 * time.Millisecond, expected: "42ms"},
		{name: "seconds", input: 1500 * time.Millisecond, expected: "1.5s"},
		{name: "minutes", input: 2*time.Minute + 5*time.Second, expected: "2m05s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Duration(tt.input))
		})
	}
}

func TestBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "512 B", Bytes(512))
	assert.Equal(t, "1.0 KiB", Bytes(1024))
	assert.Equal(t, "1.5 MiB", Bytes(1536*1024))
}

func TestPlural(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1 case", Plural(1, "case"))
	assert.Equal(t, "0 cases", Plural(0, "case"))
	assert.Equal(t, "61 cases", Plural(61, "case"))
}
