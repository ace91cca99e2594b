// internal/workers/matching/validate-candidate-profile/config.go
package validatecandidateprofile

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
