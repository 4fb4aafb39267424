// internal/workers/workshop/generate-mission/config.go
package generatemission

import "time"

type Config struct {
	Timeout     time.Duration
	Profile     string
	InputSchema map[string]interface{}
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
		Profile: "simple",
	}
}
