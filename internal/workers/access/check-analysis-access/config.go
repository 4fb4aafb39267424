// internal/workers/access/check-analysis-access/config.go
package checkanalysisaccess

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
		Timeout: 5 * time.Second,
		Paywall: config.PaywallConfig{
			ProductPermalink:      "mission-mastery-framework",
			FreeAnalyses:          1,
			FreeAnalysesWithEmail: 2,
			UsageTTLHours:         24 * 30,
		},
	}
}
