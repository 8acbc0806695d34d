// internal/workers/pharmacy/search-medicine/config.go
package searchmedicine

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
