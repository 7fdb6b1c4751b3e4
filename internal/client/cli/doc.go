// Package cli implements the ContactBook command-line client.
//
// Each invocation runs one command against the REST API, e.g.
//
//	contactbook-cli register ann@example.com
//	contactbook-cli login ann@example.com
//	contactbook-cli add-contact
//	contactbook-cli contacts
//	contactbook-cli upload <contact-id> ./avatar.png
//
// Passwords are read without echo. The session token returned by login is
// stored in the token file (see config.Config.TokenFile) and sent with every
// command that needs authentication.
package cli
