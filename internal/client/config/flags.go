package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/contactbook/internal/flagx"
)

var knownFlags = []string{"-a", "-t", "-w", "-c", "-config"}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the server (default from Config)
//	-t string   session token file (default from Config)
//	-w int      request timeout in seconds (default from Config)
//
// Only the leading flags are considered; anything after the command name
// belongs to the command.
func parseFlags(cfg *Config) {
	lead := os.Args[1:]
	lead = lead[:len(lead)-len(flagx.RemainingArgs(lead, knownFlags))]
	args := flagx.FilterArgs(lead, []string{"-a", "-t", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the server")
	fs.StringVar(&cfg.TokenFile, "t", cfg.TokenFile, "session token file")
	timeout := fs.Int("w", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "w" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
