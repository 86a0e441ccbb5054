package config

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseDir:   DefaultBaseDir(),
		Principal: defaultPrincipal(),
		Debug:     false,

		MCP: MCPConfig{
			RateLimit: 60,
			Burst:     10,
		},
	}
}
