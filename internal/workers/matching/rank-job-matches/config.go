// internal/workers/matching/rank-job-matches/config.go
package rankjobmatches

import "time"

type Config struct {
	Timeout     time.Duration
	DefaultTopK int
	SearchLimit int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:     30 * time.Second,
		DefaultTopK: 10,
		SearchLimit: 50,
	}
}
