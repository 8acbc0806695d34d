// internal/workers/records/deactivate-reminder/config.go
package deactivatereminder

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
