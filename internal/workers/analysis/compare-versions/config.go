// internal/workers/analysis/compare-versions/config.go
package compareversions

import "time"

type Config struct {
	Timeout     time.Duration
	InputSchema map[string]interface{}
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
