package config

// NewDefaultConfig returns a fully-populated Config with sane defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		API: APIConfig{
			Listen: ":8080",
		},
		Memory: MemoryConfig{
			Dir: "memory",
		},
		Agent: AgentConfig{
			Provider:  "http",
			Upstream:  "http://localhost:8000",
			TimeoutMS: 15000,
		},
		Events: EventsConfig{
			Provider: "none",
			Brokers:  []string{"localhost:9092"},
			Topic:    "mnemo.memory.operations",
		},
	}
}
