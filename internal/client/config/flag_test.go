package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	// Test cases
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd", "-a", "http://127.0.0.1:9090", "-t", "/tmp/t", "-w", "10", "contacts"},
			expected: &Config{ServerURL: "http://127.0.0.1:9090", TokenFile: "/tmp/t", RequestTimeout: 10 * time.Second}},
		{name: "timeout kept when not set", args: []string{"cmd", "-a", "http://x"},
			expected: &Config{ServerURL: "http://x", RequestTimeout: 1500 * time.Millisecond}},
		{name: "flags after the command belong to it", args: []string{"cmd", "show", "-a", "http://ignored"},
			expected: &Config{RequestTimeout: 1500 * time.Millisecond}},
		{name: "incorrect timeout", args: []string{"cmd", "-a", "http://x", "-w", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{RequestTimeout: 1500 * time.Millisecond}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
