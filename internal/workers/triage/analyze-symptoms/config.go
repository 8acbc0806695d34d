// internal/workers/triage/analyze-symptoms/config.go
package analyzesymptoms

import "time"

type Config struct {
	Timeout time.Duration
	// SaveByDefault applies when the job carries no saveRecord variable.
	SaveByDefault bool
}

func LoadConfig() *Config {
	return &Config{
		Timeout:       30 * time.Second,
		SaveByDefault: true,
	}
}
