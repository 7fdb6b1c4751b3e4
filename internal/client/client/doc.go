// Package client is the HTTP client of the contact manager API used by the
// CLI.
//
// # Overview
//
// HTTPClient implements the Client interface over the REST endpoints:
// registration and login, owner-scoped contacts, and the single image
// attached to each contact. Uploads are streamed as multipart bodies via
// netx.NewMultipartRequest.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable. Non-2xx responses are returned as
// *APIError, which unwraps to the shared sentinels in internal/common
// (ErrValidation, ErrUnauthorized, ErrNotFound, ErrAlreadyExists) so callers
// can match them with errors.Is.
//
// # Session tokens
//
// LoadToken, SaveToken and ClearToken persist the bearer token between CLI
// invocations in a file readable only by the current user.
package client
