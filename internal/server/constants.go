package server

// Error messages
const (
	ErrMsgUnauthorized = "Unauthorized"
)

// Log messages
const (
	LogMsgAuthFailed = "Authentication failed"
)

// Headers
const (
	HeaderAPIKey = "X-API-Key"
)

// PublicPaths do not require an API key. Health probes, metrics scraping and
// the API docs stay reachable without credentials.
var PublicPaths = []string{
	"/healthz",
	"/readyz",
	"/version",
	"/metrics",
	"/swagger",
}
