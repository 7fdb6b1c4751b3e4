package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/contactbook/internal/flagx"
)

const tokenFileName = ".contactbook_token"

// Config holds runtime settings for the ContactBook CLI.
//
// Fields:
//   - ServerURL: base URL of the REST API.
//   - TokenFile: where the session token is kept between invocations.
//   - RequestTimeout: per-request HTTP timeout.
//   - Args: the command and its arguments, i.e. everything after the flags.
type Config struct {
	ServerURL      string
	TokenFile      string
	RequestTimeout time.Duration
	Args           []string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.TokenFile = defaultTokenFile()
	c.RequestTimeout = 30 * time.Second
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return tokenFileName
	}
	return filepath.Join(home, tokenFileName)
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	cfg.Args = flagx.RemainingArgs(os.Args[1:], knownFlags)
	return cfg
}
