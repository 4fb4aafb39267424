package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
app:
  name: mission-analyzer
camunda:
  broker_address: localhost:26500
  report_process_id: mission-report
database:
  postgres:
    host: localhost
    database: missions
    user: ${TEST_DB_USER}
  redis:
    address: localhost:6379
  elasticsearch:
    addresses: ["http://localhost:9200"]
scoring:
  profile: extended
workers:
  score-mission:
    enabled: true
  send-analysis-report:
    enabled: false
    timeout: 5000
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("TEST_DB_USER", "analyst")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := LoadFromFile(writeConfig(t, testYAML))
	require.NoError(t, err)

	assert.Equal(t, "analyst", cfg.Database.Postgres.User)
	assert.Equal(t, "s3cret", cfg.Server.JWTSecret)
	assert.Equal(t, "mission-report", cfg.Camunda.ReportProcessID)
	assert.Equal(t, "http://localhost:9200", cfg.Database.Elasticsearch.GetURL())
	assert.True(t, cfg.Database.Elasticsearch.Enabled())
	assert.Equal(t, "mission-analyses", cfg.Database.Elasticsearch.Index)

	assert.Equal(t, "extended", cfg.Scoring.Profile)
	assert.Equal(t, "weighted", cfg.Scoring.Aggregation)
	assert.Equal(t, "mission-mastery-framework", cfg.Paywall.ProductPermalink)
	assert.Equal(t, 1, cfg.Paywall.Limit(false))
	assert.Equal(t, 2, cfg.Paywall.Limit(true))
	assert.Equal(t, 7*24*time.Hour, cfg.Server.TokenTTL())

	assert.True(t, IsWorkerEnabled(cfg, "score-mission"))
	assert.False(t, IsWorkerEnabled(cfg, "send-analysis-report"))
	assert.True(t, IsWorkerEnabled(cfg, "unknown-worker"))
	assert.Equal(t, 5000, GetWorkerConfig(cfg, "send-analysis-report").Timeout)
	assert.Equal(t, 3, GetWorkerConfig(cfg, "score-mission").MaxRetries)
	assert.Equal(t, 5, GetWorkerConfig(cfg, "missing").MaxJobsActive)

	assert.NoError(t, ValidateForWorkers(cfg))
	assert.NoError(t, ValidateForAPI(cfg))
}

func TestLoadFromFile_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{
			name:    "missing postgres host",
			body:    "database:\n  redis:\n    address: x\n",
			message: "database.postgres.host is required",
		},
		{
			name: "bad profile",
			body: `
database:
  postgres: {host: h, database: d, user: u}
  redis: {address: r}
scoring:
  profile: nine
`,
			message: "scoring.profile",
		},
		{
			name: "inverted text limits",
			body: `
database:
  postgres: {host: h, database: d, user: u}
  redis: {address: r}
paywall:
  min_text_length: 600
`,
			message: "paywall.min_text_length",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestValidateForBinaries(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, ValidateForWorkers(cfg))
	assert.Error(t, ValidateForAPI(cfg))
}

func TestGetDSNAndDuration(t *testing.T) {
	p := PostgresConfig{Host: "db", Port: 5432, User: "u", Password: "p", Database: "missions", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=missions sslmode=disable", p.GetDSN())
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
}
