// internal/workers/communication/send-analysis-report/config.go
package sendanalysisreport

import "time"

type Config struct {
	Timeout     time.Duration
	InputSchema map[string]interface{}
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
