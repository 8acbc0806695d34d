// internal/workers/triage/get-medicine-recommendations/config.go
package getmedicinerecommendations

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
