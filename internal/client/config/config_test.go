package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080", c.ServerURL)
	assert.Equal(t, tokenFileName, filepath.Base(c.TokenFile))
	assert.Equal(t, 30*time.Second, c.RequestTimeout)
}

func TestLoadConfig_SplitsFlagsAndCommand(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"cli", "-a", "http://api.test", "-t", "/tmp/tok", "upload", "c1", "cat.png"}
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://api.test", cfg.ServerURL)
	assert.Equal(t, "/tmp/tok", cfg.TokenFile)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"upload", "c1", "cat.png"}, cfg.Args)
}

func TestLoadConfig_NoArgs(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"cli"}
	cfg := LoadConfig()

	assert.Equal(t, "http://127.0.0.1:8080", cfg.ServerURL)
	assert.Empty(t, cfg.Args)
}
