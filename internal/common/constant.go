package common

const (
	// AuthorizationHeaderName carries the session token on protected requests.
	AuthorizationHeaderName = "Authorization"

	// BearerScheme is the only accepted authorization scheme.
	BearerScheme = "Bearer"

	// DateLayout names the per-day upload directories (YYYY-MM-DD).
	DateLayout = "2006-01-02"
)
