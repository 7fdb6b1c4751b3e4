// Package config loads runtime configuration for the ContactBook CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the server
//	-t string   session token file (default ~/.contactbook_token)
//	-w int      request timeout (seconds)
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "token_file": "/home/me/.contactbook_token",
//	  "request_timeout": "30s"
//	}
//
// Flags must precede the command; the command and its arguments end up in
// Config.Args.
package config
