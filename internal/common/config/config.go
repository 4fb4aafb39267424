// internal/common/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the application configuration shared by the API, the worker
// manager and the CLI.
type Config struct {
	App          AppConfig               `mapstructure:"app"`
	Camunda      CamundaConfig           `mapstructure:"camunda"`
	Database     DatabaseConfig          `mapstructure:"database"`
	Workers      map[string]WorkerConfig `mapstructure:"workers"`
	Server       ServerConfig            `mapstructure:"server"`
	Paywall      PaywallConfig           `mapstructure:"paywall"`
	Scoring      ScoringConfig           `mapstructure:"scoring"`
	Registry     RegistryConfig          `mapstructure:"registry"`
	Integrations IntegrationConfig       `mapstructure:"integrations"`
	Logging      LoggingConfig           `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
	// ReportProcessID, when set, makes the API start this BPMN process for
	// report delivery instead of sending the email itself.
	ReportProcessID string `mapstructure:"report_process_id"`
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
	// AutoMigrate creates the tables on start-up when they are missing.
	AutoMigrate bool `mapstructure:"auto_migrate"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	URL       string   `mapstructure:"url"`
	Index     string   `mapstructure:"index"`
}

// GetURL returns the URL field or the first address.
func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

// Enabled reports whether a search cluster is configured.
func (e ElasticsearchConfig) Enabled() bool {
	return e.GetURL() != ""
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// WorkerConfig holds the settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
}

// --- HTTP API ---

type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	MetricsPort    int      `mapstructure:"metrics_port"`
	JWTSecret      string   `mapstructure:"jwt_secret"`
	TokenTTLHours  int      `mapstructure:"token_ttl_hours"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	CookieSecure   bool     `mapstructure:"cookie_secure"`
}

func (s ServerConfig) TokenTTL() time.Duration {
	return time.Duration(s.TokenTTLHours) * time.Hour
}

// PaywallConfig controls free analyses and the purchase webhook.
type PaywallConfig struct {
	ProductPermalink      string `mapstructure:"product_permalink"`
	FreeAnalyses          int    `mapstructure:"free_analyses"`
	FreeAnalysesWithEmail int    `mapstructure:"free_analyses_with_email"`
	MinTextLength         int    `mapstructure:"min_text_length"`
	MaxTextLength         int    `mapstructure:"max_text_length"`
	UsageTTLHours         int    `mapstructure:"usage_ttl_hours"`
}

func (p PaywallConfig) UsageTTL() time.Duration {
	return time.Duration(p.UsageTTLHours) * time.Hour
}

// Limit returns the number of free analyses for a caller.
func (p PaywallConfig) Limit(hasEmail bool) int {
	if hasEmail {
		return p.FreeAnalysesWithEmail
	}
	return p.FreeAnalyses
}

type ScoringConfig struct {
	Profile     string `mapstructure:"profile"`
	Aggregation string `mapstructure:"aggregation"`
	CacheTTL    int    `mapstructure:"cache_ttl"` // milliseconds
}

type RegistryConfig struct {
	Path string `mapstructure:"path"`
}

// IntegrationConfig holds settings for AWS delivery channels.
type IntegrationConfig struct {
	AWS struct {
		Region string `mapstructure:"region"`
		SES    struct {
			Enabled   bool   `mapstructure:"enabled"`
			FromEmail string `mapstructure:"from_email"`
		} `mapstructure:"ses"`
		SNS struct {
			Enabled          bool   `mapstructure:"enabled"`
			PurchaseTopicARN string `mapstructure:"purchase_topic_arn"`
		} `mapstructure:"sns"`
	} `mapstructure:"aws"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// Environment returns the lower-cased environment name.
func (c *Config) Environment() string {
	return strings.ToLower(c.App.Environment)
}
