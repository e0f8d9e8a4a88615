// Package api provides the HTTP API server for querying and ingesting CVs.
package api

// Config is the API server configuration.
type Config struct {
	// ListenAddr is the address to listen on (e.g., ":8080")
	ListenAddr string

	// AuthToken, when non-empty, requires callers to present it as a
	// bearer token on every route except /ping.
	AuthToken string
}
