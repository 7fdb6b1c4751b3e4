package rest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCredentials(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		want     []string
	}{
		{"ok", "ann@example.com", "pw", nil},
		{"empty", "", "", []string{"email", "password"}},
		{"display name", "Ann <ann@example.com>", "pw", []string{"email"}},
		{"no at", "ann.example.com", "pw", []string{"email"}},
		{"72 bytes", "ann@example.com", strings.Repeat("p", 72), nil},
		{"73 bytes", "ann@example.com", strings.Repeat("p", 73), []string{"password"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validateCredentials(tt.email, tt.password)
			assert.Len(t, v, len(tt.want))
			for _, f := range tt.want {
				assert.Contains(t, v, f)
			}
		})
	}
}

func TestValidatePatch(t *testing.T) {
	blank := "  "
	name := "Ann"

	assert.Empty(t, validatePatch(patchRequest{}))
	assert.Empty(t, validatePatch(patchRequest{Name: &name}))
	assert.Contains(t, validatePatch(patchRequest{Phone: &blank}), "phone")
}

func TestParseID(t *testing.T) {
	id, ok := parseID("6F1C3C43-8D3E-4F0E-9A1D-3B2C1A000000")
	assert.True(t, ok)
	assert.Equal(t, "6f1c3c43-8d3e-4f0e-9a1d-3b2c1a000000", id)

	for _, bad := range []string{"", "42", "not-a-uuid", "../etc"} {
		_, ok := parseID(bad)
		assert.False(t, ok, bad)
	}
}
