package api

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mission-analyzer/internal/common/config"
	"mission-analyzer/internal/common/logger"
	"mission-analyzer/internal/models"
	"mission-analyzer/internal/paywall"
	"mission-analyzer/internal/report"
	"mission-analyzer/internal/store"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ==========================
// Fakes
// ==========================

type fakeAnalyses struct {
	created  []*models.Analysis
	listFn   func(userID string, limit int) ([]models.Analysis, error)
	analytic *models.Analytics
}

func (f *fakeAnalyses) Create(_ context.Context, a *models.Analysis) error {
	a.ID = "analysis-1"
	f.created = append(f.created, a)
	return nil
}

func (f *fakeAnalyses) ListByUser(_ context.Context, userID string, limit int) ([]models.Analysis, error) {
	if f.listFn == nil {
		return nil, nil
	}
	return f.listFn(userID, limit)
}

func (f *fakeAnalyses) Analytics(_ context.Context, _ time.Time) (*models.Analytics, error) {
	if f.analytic == nil {
		return nil, stderrors.New("db down")
	}
	return f.analytic, nil
}

type fakeUsers struct {
	users map[string]*models.User
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, store.ErrNotFound
}

type fakeCaptures struct {
	upserted []*models.EmailCapture
	marked   []string
}

func (f *fakeCaptures) Upsert(_ context.Context, c *models.EmailCapture) error {
	f.upserted = append(f.upserted, c)
	return nil
}

func (f *fakeCaptures) MarkReportSent(_ context.Context, email string, _ time.Time) error {
	f.marked = append(f.marked, email)
	return nil
}

type fakeReports struct {
	sendFn func(recipient string, d report.Data) (*models.Notification, error)
}

func (f *fakeReports) SendReport(_ context.Context, recipient string, d report.Data) (*models.Notification, error) {
	return f.sendFn(recipient, d)
}

type fakeProcesses struct {
	processID string
	vars      interface{}
}

func (f *fakeProcesses) StartProcess(_ context.Context, processID string, variables interface{}) (int64, error) {
	f.processID = processID
	f.vars = variables
	return 42, nil
}

// ==========================
// Helpers
// ==========================

func createTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Environment = "test"
	cfg.Server.JWTSecret = "test-secret"
	cfg.Server.TokenTTLHours = 168
	cfg.Server.AllowedOrigins = []string{"http://localhost:5173"}
	cfg.Paywall = config.PaywallConfig{
		ProductPermalink:      "mission-mastery-framework",
		FreeAnalyses:          1,
		FreeAnalysesWithEmail: 2,
		MinTextLength:         10,
		MaxTextLength:         500,
		UsageTTLHours:         720,
	}
	cfg.Scoring.Profile = "simple"
	cfg.Scoring.Aggregation = "weighted"
	return cfg
}

type testEnv struct {
	server    *Server
	analyses  *fakeAnalyses
	captures  *fakeCaptures
	reports   *fakeReports
	users     *fakeUsers
	processes *fakeProcesses
}

func setupServer(t *testing.T, mutate func(cfg *config.Config, deps *Deps)) *testEnv {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cfg := createTestConfig()
	log := logger.NewTestLogger(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	env := &testEnv{
		analyses: &fakeAnalyses{},
		captures: &fakeCaptures{},
		reports: &fakeReports{sendFn: func(recipient string, _ report.Data) (*models.Notification, error) {
			return &models.Notification{ID: "n-1", Recipient: recipient, Status: models.StatusSent, SentAt: time.Now()}, nil
		}},
		users: &fakeUsers{users: map[string]*models.User{
			"jane@example.com": {ID: "user-1", Email: "jane@example.com", HashedPassword: string(hash), FirstName: "Jane"},
		}},
		processes: &fakeProcesses{},
	}

	deps := Deps{
		Analyses: env.analyses,
		Users:    env.users,
		Captures: env.captures,
		Reports:  env.reports,
		Paywall: paywall.NewService(cfg.Paywall, store.NewRedisAccessStore(client),
			store.NewUsageCounter(client, cfg.Paywall.UsageTTL()), nil, log),
	}
	if mutate != nil {
		mutate(cfg, &deps)
	}
	env.server = New(cfg, deps, log)
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

const goodMission = "We empower 10,000 local farmers to grow sustainable food for their communities."

// ==========================
// Analysis Routes
// ==========================

func TestAnalyze_ScoresAndConsumesFreeAnalysis(t *testing.T) {
	env := setupServer(t, nil)
	body := map[string]interface{}{"missionText": goodMission, "industry": "agriculture", "clientId": "client-1"}

	rec := env.do(t, http.MethodPost, "/api/analyze", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	out := decode(t, rec)
	reportOut := out["report"].(map[string]interface{})
	assert.Greater(t, reportOut["overall"].(float64), 0.0)
	assert.Equal(t, "simple", reportOut["profile"])
	assert.Equal(t, "agriculture", out["benchmark"].(map[string]interface{})["industry"])
	assert.Contains(t, out, "suggestions")
	assert.Equal(t, 1.0, out["access"].(map[string]interface{})["analysesUsed"])

	rec = env.do(t, http.MethodPost, "/api/analyze", body)
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
	assert.Equal(t, "ANALYSIS_LIMIT_REACHED", decode(t, rec)["code"])
}

func TestAnalyze_Validation(t *testing.T) {
	tests := []struct {
		name     string
		body     map[string]interface{}
		wantCode string
	}{
		{name: "short text", body: map[string]interface{}{"missionText": "  too short ", "clientId": "c"}, wantCode: "TEXT_TOO_SHORT"},
		{name: "non-string text", body: map[string]interface{}{"missionText": 42, "clientId": "c"}, wantCode: "INVALID_ARGUMENT"},
		{name: "unknown profile", body: map[string]interface{}{"missionText": goodMission, "profile": "fancy", "clientId": "c"}, wantCode: "INVALID_ARGUMENT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupServer(t, nil)
			rec := env.do(t, http.MethodPost, "/api/analyze", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantCode, decode(t, rec)["code"])
		})
	}
}

func TestCompare(t *testing.T) {
	env := setupServer(t, nil)

	rec := env.do(t, http.MethodPost, "/api/compare", map[string]interface{}{
		"versions": []map[string]interface{}{
			{"id": "A", "text": goodMission},
			{"id": "B", "text": "We help people."},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	comparison := decode(t, rec)["comparison"].(map[string]interface{})
	assert.Contains(t, []interface{}{"A", "B"}, comparison["winner"])

	rec = env.do(t, http.MethodPost, "/api/compare", map[string]interface{}{
		"versions": []map[string]interface{}{{"id": "A", "text": goodMission}},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decode(t, rec)["comparison"])
}

func TestWorkshop(t *testing.T) {
	env := setupServer(t, nil)

	rec := env.do(t, http.MethodPost, "/api/workshop", map[string]interface{}{
		"answers": map[string]string{"purpose": "teaching coding"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "WORKSHOP_INCOMPLETE", decode(t, rec)["code"])

	rec = env.do(t, http.MethodPost, "/api/workshop", map[string]interface{}{
		"industry": "education",
		"answers": map[string]string{
			"purpose":    "hands-on coding courses",
			"audience":   "high school students",
			"actionVerb": "Empower",
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	out := decode(t, rec)
	assert.Equal(t, "To empower high school students by hands-on coding courses.", out["missionText"])
	assert.NotNil(t, out["report"])
}

func TestBenchmark(t *testing.T) {
	env := setupServer(t, nil)

	rec := env.do(t, http.MethodGet, "/api/benchmarks/technology", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	out := decode(t, rec)
	assert.Equal(t, "Technology", out["label"])
	assert.Equal(t, 78.0, out["benchmark"].(map[string]interface{})["average"])

	rec = env.do(t, http.MethodGet, "/api/benchmarks/unknown?score=95", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "other", decode(t, rec)["industry"])

	rec = env.do(t, http.MethodGet, "/api/benchmarks/technology?score=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ==========================
// Saved Analyses
// ==========================

func TestListAnalyses_AnonymousGetsEmptyList(t *testing.T) {
	env := setupServer(t, nil)
	env.analyses.listFn = func(string, int) ([]models.Analysis, error) {
		t.Fatal("anonymous request must not hit the store")
		return nil, nil
	}

	rec := env.do(t, http.MethodGet, "/api/analyses", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"analyses":[]}`, rec.Body.String())
}

func TestSaveAnalysis(t *testing.T) {
	env := setupServer(t, nil)

	rec := env.do(t, http.MethodPost, "/api/analyses", map[string]interface{}{
		"missionText":     goodMission,
		"industry":        "Agriculture",
		"scores":          map[string]int{"overall": 81, "clarity": 90, "specificity": 70, "impact": 80, "authenticity": 75, "memorability": 85},
		"analysis":        "Strong and specific",
		"recommendations": []string{"Name the timeframe"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"success":true,"analysisId":"analysis-1"}`, rec.Body.String())

	require.Len(t, env.analyses.created, 1)
	saved := env.analyses.created[0]
	assert.Nil(t, saved.UserID)
	assert.Equal(t, "agriculture", saved.Industry)
	assert.Equal(t, 81, saved.OverallScore)
	assert.Equal(t, 12, saved.WordCount)
	assert.True(t, saved.IsAIAnalysis)
	assert.JSONEq(t, `{"analysis":"Strong and specific","weaknesses":null}`, string(saved.FullAnalysis))
}

func TestSaveAnalysis_MissingScores(t *testing.T) {
	env := setupServer(t, nil)
	rec := env.do(t, http.MethodPost, "/api/analyses", map[string]interface{}{"missionText": goodMission})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchAnalyses_NotConfigured(t *testing.T) {
	env := setupServer(t, nil)
	rec := env.do(t, http.MethodGet, "/api/analyses/search?q=farmers", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAnalytics(t *testing.T) {
	env := setupServer(t, nil)

	rec := env.do(t, http.MethodGet, "/api/analytics", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to fetch analytics", decode(t, rec)["error"])

	env.analyses.analytic = &models.Analytics{}
	env.analyses.analytic.Overview.TotalAnalyses = 3
	rec = env.do(t, http.MethodGet, "/api/analytics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3.0, decode(t, rec)["overview"].(map[string]interface{})["totalAnalyses"])
}

// ==========================
// Authentication
// ==========================

func TestLogin(t *testing.T) {
	env := setupServer(t, nil)

	rec := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "jane@example.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email and password are required", decode(t, rec)["error"])

	rec = env.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "jane@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", decode(t, rec)["error"])

	rec = env.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "nobody@example.com", "password": "x"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "jane@example.com", "password": "correct horse"})
	require.Equal(t, http.StatusOK, rec.Code)
	user := decode(t, rec)["user"].(map[string]interface{})
	assert.Equal(t, "user-1", user["id"])
	assert.Equal(t, "Jane", user["firstName"])

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == authCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 7*24*60*60, cookie.MaxAge)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

	var gotUser string
	env.analyses.listFn = func(userID string, limit int) ([]models.Analysis, error) {
		gotUser = userID
		assert.Equal(t, store.DefaultListLimit, limit)
		return []models.Analysis{{ID: "a-1", MissionText: goodMission}}, nil
	}
	rec = env.do(t, http.MethodGet, "/api/analyses", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", gotUser)
	assert.Len(t, decode(t, rec)["analyses"], 1)
}

func TestParseToken_RejectsForeignSecret(t *testing.T) {
	env := setupServer(t, nil)
	token, err := env.server.issueToken("user-1", "jane@example.com")
	require.NoError(t, err)

	claims, err := env.server.parseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.userID)

	other := setupServer(t, func(cfg *config.Config, _ *Deps) { cfg.Server.JWTSecret = "other" })
	_, err = other.server.parseToken(token)
	assert.Error(t, err)
}

// ==========================
// Access and Purchases
// ==========================

func TestPurchaseWebhook_GrantsAccess(t *testing.T) {
	env := setupServer(t, nil)

	rec := env.do(t, http.MethodPost, "/api/gumroad-webhook", map[string]string{
		"product_permalink": "mission-mastery-framework",
		"sale_id":           "sale-9",
		"purchaser_email":   "Buyer@Example.com",
		"created_at":        "2026-05-01T10:00:00Z",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Unlimited access granted","email":"buyer@example.com"}`, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/gumroad-webhook?email=buyer@example.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"hasUnlimitedAccess":true,"purchaseDate":"2026-05-01T10:00:00Z","orderId":"sale-9"}`, rec.Body.String())

	rec = env.do(t, http.MethodPost, "/api/verify-access", map[string]string{"email": "BUYER@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["hasUnlimitedAccess"])

	// unlimited access skips the free limit
	for i := 0; i < 3; i++ {
		rec = env.do(t, http.MethodPost, "/api/analyze", map[string]interface{}{"missionText": goodMission, "email": "buyer@example.com"})
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestPurchaseWebhook_EdgeCases(t *testing.T) {
	env := setupServer(t, nil)

	rec := env.do(t, http.MethodPost, "/api/gumroad-webhook", map[string]string{
		"product_permalink": "mission-mastery-framework",
		"sale_id":           "sale-9",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"No purchaser email found"}`, rec.Body.String())

	rec = env.do(t, http.MethodPost, "/api/gumroad-webhook", map[string]string{
		"product_permalink": "another-product",
		"sale_id":           "sale-10",
		"purchaser_email":   "buyer@example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Webhook processed (no action needed)"}`, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/gumroad-webhook", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"hasUnlimitedAccess":false,"error":"Email required"}`, rec.Body.String())

	rec = env.do(t, http.MethodPost, "/api/verify-access", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"hasUnlimitedAccess":false,"error":"Valid email required"}`, rec.Body.String())

	rec = env.do(t, http.MethodPost, "/api/verify-access", map[string]string{"email": "nobody@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"hasUnlimitedAccess":false,"purchaseDate":null,"orderId":null}`, rec.Body.String())
}

// ==========================
// Email Reports
// ==========================

var fullCapture = map[string]interface{}{
	"email":           "Jane@Example.com",
	"firstName":       "Jane",
	"missionText":     goodMission,
	"industry":        "agriculture",
	"scores":          map[string]int{"overall": 81, "clarity": 90, "specificity": 70, "impact": 80, "authenticity": 75, "memorability": 85},
	"recommendations": []map[string]string{{"category": "Specificity", "issue": "Vague", "suggestion": "Add numbers"}},
	"alternatives":    map[string]string{"actionFocused": "We grow food.", "problemSolution": "Farms fail.", "visionDriven": "A fed world."},
}

func TestEmailCapture(t *testing.T) {
	env := setupServer(t, nil)

	rec := env.do(t, http.MethodPost, "/api/email-capture", map[string]string{"firstName": "Jane"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email is required", decode(t, rec)["error"])

	rec = env.do(t, http.MethodPost, "/api/email-capture", map[string]string{"email": "jane@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Report request saved successfully","emailSent":false}`, rec.Body.String())

	var got report.Data
	env.reports.sendFn = func(recipient string, d report.Data) (*models.Notification, error) {
		got = d
		return &models.Notification{ID: "n-1", Recipient: recipient, Status: models.StatusSent, SentAt: time.Now()}, nil
	}
	rec = env.do(t, http.MethodPost, "/api/email-capture", fullCapture)
	require.Equal(t, http.StatusOK, rec.Code)
	out := decode(t, rec)
	assert.Equal(t, true, out["emailSent"])
	assert.Equal(t, msgReportSent, out["message"])
	assert.Equal(t, []string{"jane@example.com"}, env.captures.marked)
	require.Len(t, got.Recommendations, 1)
	assert.Equal(t, "Add numbers", got.Recommendations[0].Suggestion)

	last := env.captures.upserted[len(env.captures.upserted)-1]
	require.NotNil(t, last.OverallScore)
	assert.Equal(t, 81, *last.OverallScore)
}

func TestEmailCapture_SendFailureIsReported(t *testing.T) {
	env := setupServer(t, nil)
	env.reports.sendFn = func(string, report.Data) (*models.Notification, error) {
		return nil, stderrors.New("ses unavailable")
	}

	rec := env.do(t, http.MethodPost, "/api/email-capture", fullCapture)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Request saved, but email could not be sent at this time.","emailSent":false}`, rec.Body.String())
	assert.Empty(t, env.captures.marked)
}

func TestEmailCapture_StartsReportProcess(t *testing.T) {
	var processes *fakeProcesses
	env := setupServer(t, func(cfg *config.Config, deps *Deps) {
		cfg.Camunda.ReportProcessID = "mission-report"
		processes = &fakeProcesses{}
		deps.Processes = processes
	})
	env.reports.sendFn = func(string, report.Data) (*models.Notification, error) {
		t.Fatal("report must be delivered by the process")
		return nil, nil
	}

	rec := env.do(t, http.MethodPost, "/api/email-capture", fullCapture)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 42.0, decode(t, rec)["processInstanceKey"])
	assert.Equal(t, "mission-report", processes.processID)
	vars := processes.vars.(map[string]interface{})
	assert.Equal(t, "jane@example.com", vars["email"])
	assert.Contains(t, vars, "alternatives")
}

func TestEmailReport(t *testing.T) {
	env := setupServer(t, nil)

	rec := env.do(t, http.MethodPost, "/api/email-report", map[string]string{"email": "nope"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Valid email address is required", decode(t, rec)["error"])

	rec = env.do(t, http.MethodPost, "/api/email-report", map[string]string{"email": "jane@example.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Mission text and scores are required", decode(t, rec)["error"])

	rec = env.do(t, http.MethodPost, "/api/email-report", map[string]interface{}{
		"email":       "jane@example.com",
		"missionText": goodMission,
		"scores":      map[string]int{"overall": 81},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Email sent successfully", decode(t, rec)["message"])
}

func TestEmailReport_DisabledSender(t *testing.T) {
	env := setupServer(t, func(_ *config.Config, deps *Deps) {
		deps.Reports = report.NewSender(nil, "", logger.NewNoOpLogger())
	})

	rec := env.do(t, http.MethodPost, "/api/email-report", map[string]interface{}{
		"email":       "jane@example.com",
		"missionText": goodMission,
		"scores":      map[string]int{"overall": 81},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.StatusDisabled, decode(t, rec)["status"])
}

// ==========================
// Health
// ==========================

func TestReady(t *testing.T) {
	env := setupServer(t, func(_ *config.Config, deps *Deps) {
		deps.Checks = map[string]Check{
			"postgres": func(context.Context) error { return nil },
			"redis":    func(context.Context) error { return stderrors.New("connection refused") },
		}
	})

	rec := env.do(t, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	checks := decode(t, rec)["checks"].(map[string]interface{})
	assert.Equal(t, "ok", checks["postgres"])
	assert.Equal(t, "connection refused", checks["redis"])

	rec = env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	env := setupServer(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/analyze", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}
