// internal/workers/matching/analyze-skill-gaps/config.go
package analyzeskillgaps

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
