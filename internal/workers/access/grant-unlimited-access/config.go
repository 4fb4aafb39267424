// internal/workers/access/grant-unlimited-access/config.go
package grantunlimitedaccess

import (
	"time"

	"mission-analyzer/internal/common/config"
)

type Config struct {
	Timeout     time.Duration
	Paywall     config.PaywallConfig
	InputSchema map[string]interface{}
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
		Paywall: config.PaywallConfig{
			ProductPermalink:      "mission-mastery-framework",
			FreeAnalyses:          1,
			FreeAnalysesWithEmail: 2,
			UsageTTLHours:         24 * 30,
		},
	}
}
