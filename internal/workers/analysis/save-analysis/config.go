// internal/workers/analysis/save-analysis/config.go
package saveanalysis

import "time"

type Config struct {
	Timeout     time.Duration
	InputSchema map[string]interface{}
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 15 * time.Second,
	}
}
