package config

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	return &Config{
		Concurrency: 5,
		Reporters:   []string{"console"},
		HistoryDB:   "",
	}
}
