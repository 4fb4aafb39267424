// internal/workers/analysis/score-mission/config.go
package scoremission

import "time"

type Config struct {
	Timeout       time.Duration
	Profile       string
	Aggregation   string
	MinTextLength int
	MaxTextLength int
	CacheTTL      time.Duration
	// InputSchema comes from the activity registry; nil skips validation.
	InputSchema map[string]interface{}
}

func LoadConfig() *Config {
	return &Config{
		Timeout:       10 * time.Second,
		Profile:       "simple",
		Aggregation:   "weighted",
		MinTextLength: 10,
		MaxTextLength: 500,
		CacheTTL:      10 * time.Minute,
	}
}
