// Package api provides the HTTP surface of the memory service: the memory
// read API, the agent chat webhook, and the observer WebSocket endpoint.
package api

// Config is the API server configuration.
type Config struct {
	// ListenAddr is the address to listen on (e.g., ":8080")
	ListenAddr string
}
