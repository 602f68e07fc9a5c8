package config

// Config is the persistent mnemo configuration, stored as config.toml in the
// .mnemo/ directory.
type Config struct {
	Version int          `toml:"version"`
	API     APIConfig    `toml:"api"`
	Memory  MemoryConfig `toml:"memory"`
	Agent   AgentConfig  `toml:"agent"`
	Events  EventsConfig `toml:"events"`
}

// APIConfig configures the HTTP server.
type APIConfig struct {
	// Listen is the address the API server listens on.
	Listen string `toml:"listen"`
}

// MemoryConfig configures the document store.
type MemoryConfig struct {
	// Dir is the directory holding one <key>_memory.json file per user.
	Dir string `toml:"dir"`
}

// AgentConfig configures the outbound conversational-agent call.
type AgentConfig struct {
	// Provider selects the agent backend ("http" or "mock").
	Provider string `toml:"provider"`

	// Upstream is the base URL of the agent service.
	Upstream string `toml:"upstream"`

	// TimeoutMS bounds each agent call, in milliseconds.
	TimeoutMS int `toml:"timeout_ms"`
}

// EventsConfig configures the optional Kafka mirror of memory operation
// events. The WebSocket observer channel is always on.
type EventsConfig struct {
	// Provider selects the mirror backend ("none" or "kafka").
	Provider string `toml:"provider"`

	// Brokers is the list of Kafka bootstrap brokers.
	Brokers []string `toml:"brokers"`

	// Topic is the Kafka topic memory operation events are mirrored to.
	Topic string `toml:"topic"`
}
