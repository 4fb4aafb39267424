// test/e2e/e2e_test.go
package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"mission-analyzer/internal/api"
	"mission-analyzer/internal/common/config"
	"mission-analyzer/internal/common/database"
	"mission-analyzer/internal/common/logger"
	"mission-analyzer/internal/models"
	"mission-analyzer/internal/paywall"
	"mission-analyzer/internal/report"
	"mission-analyzer/internal/scoring"
	"mission-analyzer/internal/store"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	checkaccess "mission-analyzer/internal/workers/access/check-analysis-access"
	grantaccess "mission-analyzer/internal/workers/access/grant-unlimited-access"
	compareversions "mission-analyzer/internal/workers/analysis/compare-versions"
	saveanalysis "mission-analyzer/internal/workers/analysis/save-analysis"
	scoremission "mission-analyzer/internal/workers/analysis/score-mission"
	sendreport "mission-analyzer/internal/workers/communication/send-analysis-report"
	generatemission "mission-analyzer/internal/workers/workshop/generate-mission"
)

// These tests need Postgres, Redis, Elasticsearch and Zeebe on localhost
// (see docker-compose in the deployment repo). Set E2E_ENABLED=1 to run.

const mission = "We empower 10,000 local farmers to grow sustainable food for their communities by 2030."

var (
	cfg   *config.Config
	conns *database.Connections
)

func TestMain(m *testing.M) {
	if os.Getenv("E2E_ENABLED") == "" {
		fmt.Println("E2E_ENABLED not set, skipping end-to-end tests")
		os.Exit(0)
	}

	var err error
	cfg, err = config.Load()
	if err != nil {
		panic(fmt.Sprintf("❌ Failed to load config: %v", err))
	}

	// Force localhost for e2e runs
	cfg.Database.Postgres.Host = "localhost"
	cfg.Database.Postgres.AutoMigrate = true
	cfg.Database.Redis.Address = "localhost:6379"
	cfg.Database.Elasticsearch.URL = "http://localhost:9200"
	cfg.Database.Elasticsearch.Addresses = []string{"http://localhost:9200"}
	cfg.Database.Elasticsearch.Index = "mission-analyses-e2e"

	conns, err = database.Connect(context.Background(), cfg, logger.NewNoOpLogger())
	if err != nil {
		panic(fmt.Sprintf("❌ Failed to connect datastores: %v", err))
	}

	code := m.Run()
	conns.Close()
	os.Exit(code)
}

func TestServiceConnectivity(t *testing.T) {
	ctx := context.Background()
	for name, check := range conns.Checks() {
		assert.NoError(t, check(ctx), "❌ %s not reachable", name)
	}

	client, err := zbc.NewClient(&zbc.ClientConfig{
		GatewayAddress:         "localhost:26500",
		UsePlaintextConnection: true,
	})
	require.NoError(t, err)
	defer client.Close()

	_, err = client.NewTopologyCommand().Send(ctx)
	assert.NoError(t, err, "❌ Zeebe topology request failed")
}

// ==========================
// Workers against real datastores
// ==========================

func TestWorkers(t *testing.T) {
	ctx := context.Background()
	log := logger.NewTestLogger(t)
	db := conns.Postgres.DB
	rdb := conns.Redis.Client
	index := store.NewAnalysisIndex(conns.Elasticsearch.Client, cfg.Database.Elasticsearch.Index)

	var scores scoring.Scores

	t.Run("score-mission", func(t *testing.T) {
		handler := scoremission.NewHandler(scoremission.LoadConfig(), rdb, nil, log)
		out, err := handler.Execute(ctx, &scoremission.Input{MissionText: mission, Industry: "agriculture"})
		require.NoError(t, err)
		scores = out.Report.Scores

		again, err := handler.Execute(ctx, &scoremission.Input{MissionText: mission, Industry: "agriculture"})
		require.NoError(t, err)
		assert.True(t, again.Cached)
		assert.Equal(t, scores, again.Report.Scores)
	})

	t.Run("compare-versions", func(t *testing.T) {
		handler := compareversions.NewHandler(compareversions.LoadConfig(), log)
		out, err := handler.Execute(ctx, &compareversions.Input{Versions: []scoring.Version{
			{ID: "A", Text: mission},
			{ID: "B", Text: "We help people."},
		}})
		require.NoError(t, err)
		assert.True(t, out.Comparable)
	})

	t.Run("generate-mission", func(t *testing.T) {
		handler := generatemission.NewHandler(generatemission.LoadConfig(), log)
		out, err := handler.Execute(ctx, &generatemission.Input{
			Industry: "agriculture",
			Answers:  scoring.WorkshopAnswers{Purpose: "regenerative farming", Audience: "smallholder farmers", ActionVerb: "Equip"},
		})
		require.NoError(t, err)
		assert.NotEmpty(t, out.MissionText)
	})

	t.Run("save-analysis", func(t *testing.T) {
		handler := saveanalysis.NewHandler(saveanalysis.LoadConfig(), db, index, log)
		out, err := handler.Execute(ctx, &saveanalysis.Input{MissionText: mission, Industry: "agriculture", Scores: &scores})
		require.NoError(t, err)
		assert.NotEmpty(t, out.AnalysisID)
		assert.True(t, out.Indexed)
	})

	email := fmt.Sprintf("e2e-%s@example.com", uuid.NewString()[:8])

	t.Run("access", func(t *testing.T) {
		check := checkaccess.LoadConfig()
		check.Paywall = cfg.Paywall
		checker := checkaccess.NewHandler(check, rdb, log)

		out, err := checker.Execute(ctx, &checkaccess.Input{ClientID: uuid.NewString(), Consume: true})
		require.NoError(t, err)
		assert.True(t, out.Allowed)

		grant := grantaccess.LoadConfig()
		grant.Paywall = cfg.Paywall
		granter := grantaccess.NewHandler(grant, rdb, nil, log)
		granted, err := granter.Execute(ctx, &grantaccess.Input{
			ProductPermalink: cfg.Paywall.ProductPermalink,
			SaleID:           uuid.NewString(),
			PurchaserEmail:   email,
		})
		require.NoError(t, err)
		assert.True(t, granted.Granted)

		out, err = checker.Execute(ctx, &checkaccess.Input{Email: email})
		require.NoError(t, err)
		assert.True(t, out.HasUnlimitedAccess)
	})

	t.Run("send-analysis-report", func(t *testing.T) {
		require.NoError(t, store.NewEmailCaptureRepository(db).Upsert(ctx, &models.EmailCapture{Email: email, MissionText: mission}))

		handler := sendreport.NewHandler(sendreport.LoadConfig(), db, report.NewSender(nil, "", log), log)
		out, err := handler.Execute(ctx, &sendreport.Input{Email: email, MissionText: mission, Industry: "agriculture", Scores: scores})
		require.NoError(t, err)
		assert.Equal(t, models.StatusDisabled, out.Status)
	})
}

// ==========================
// HTTP API against real datastores
// ==========================

func TestAPI(t *testing.T) {
	log := logger.NewTestLogger(t)
	db := conns.Postgres.DB
	rdb := conns.Redis.Client

	apiCfg := *cfg
	apiCfg.Server.JWTSecret = "e2e-secret"
	deps := api.Deps{
		Analyses: store.NewAnalysisRepository(db),
		Users:    store.NewUserRepository(db),
		Captures: store.NewEmailCaptureRepository(db),
		Search:   store.NewAnalysisIndex(conns.Elasticsearch.Client, cfg.Database.Elasticsearch.Index),
		Paywall: paywall.NewService(cfg.Paywall, store.NewRedisAccessStore(rdb),
			store.NewUsageCounter(rdb, cfg.Paywall.UsageTTL()), nil, log),
		Reports: report.NewSender(nil, "", log),
		Checks:  conns.Checks(),
	}
	srv := httptest.NewServer(api.New(&apiCfg, deps, log).Handler())
	defer srv.Close()

	post := func(path string, body interface{}) *http.Response {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		res, err := http.Post(srv.URL+path, "application/json", bytes.NewReader(b))
		require.NoError(t, err)
		return res
	}

	res := post("/api/analyze", map[string]string{"missionText": mission, "industry": "agriculture", "clientId": uuid.NewString()})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	res.Body.Close()

	res = post("/api/analyses", map[string]interface{}{
		"missionText": mission,
		"industry":    "agriculture",
		"scores":      scoring.Score(mission, scoring.SimpleProfile).Scores,
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	res.Body.Close()

	// give the index a moment to refresh
	time.Sleep(1500 * time.Millisecond)
	res, err := http.Get(srv.URL + "/api/analyses/search?q=farmers&industry=agriculture")
	require.NoError(t, err)
	var found struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&found))
	res.Body.Close()
	assert.Greater(t, found.Total, 0)

	res, err = http.Get(srv.URL + "/api/analytics")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	res.Body.Close()

	res, err = http.Get(srv.URL + "/ready")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	res.Body.Close()
}
