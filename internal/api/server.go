// internal/api/server.go

// Package api serves the mission analyzer over HTTP with gin.
package api

import (
	"context"
	"net/http"
	"time"

	"mission-analyzer/internal/common/config"
	"mission-analyzer/internal/common/logger"
	"mission-analyzer/internal/common/observability"
	"mission-analyzer/internal/models"
	"mission-analyzer/internal/paywall"
	"mission-analyzer/internal/report"
	"mission-analyzer/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type AnalysisStore interface {
	Create(ctx context.Context, a *models.Analysis) error
	ListByUser(ctx context.Context, userID string, limit int) ([]models.Analysis, error)
	Analytics(ctx context.Context, now time.Time) (*models.Analytics, error)
}

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type CaptureStore interface {
	Upsert(ctx context.Context, c *models.EmailCapture) error
	MarkReportSent(ctx context.Context, email string, at time.Time) error
}

// SearchIndex is satisfied by store.AnalysisIndex.
type SearchIndex interface {
	Index(ctx context.Context, doc models.AnalysisDocument) error
	Search(ctx context.Context, q store.SearchQuery) ([]models.AnalysisDocument, int, error)
}

// ReportSender is satisfied by report.Sender.
type ReportSender interface {
	SendReport(ctx context.Context, recipient string, d report.Data) (*models.Notification, error)
}

// ProcessStarter is satisfied by camunda.Client.
type ProcessStarter interface {
	StartProcess(ctx context.Context, processID string, variables interface{}) (int64, error)
}

// Check is a readiness check for one dependency.
type Check = func(ctx context.Context) error

// Deps are the collaborators behind the routes. Search and Processes may be
// nil; routes that need them then answer 503 or fall back.
type Deps struct {
	Analyses  AnalysisStore
	Users     UserStore
	Captures  CaptureStore
	Search    SearchIndex
	Paywall   *paywall.Service
	Reports   ReportSender
	Processes ProcessStarter
	Obs       *observability.Observability
	Checks    map[string]Check
}

type Server struct {
	cfg    *config.Config
	deps   Deps
	logger logger.Logger
	engine *gin.Engine
	now    func() time.Time
}

func New(cfg *config.Config, deps Deps, log logger.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		deps:   deps,
		logger: log.WithFields(map[string]interface{}{"component": "api"}),
		engine: gin.New(),
		now:    time.Now,
	}
	s.routes()
	return s
}

// Handler returns the gin engine.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() {
	r := s.engine
	r.Use(gin.Recovery(), s.requestLogger(), requestMetrics())
	r.Use(cors.New(corsConfig(s.cfg.Server.AllowedOrigins)))

	r.GET("/health", s.health)
	r.GET("/ready", s.ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(s.optionalAuth())
	{
		api.POST("/analyze", s.analyze)
		api.POST("/compare", s.compare)
		api.POST("/workshop", s.workshop)
		api.GET("/benchmarks/:industry", s.benchmark)

		api.GET("/analyses", s.listAnalyses)
		api.POST("/analyses", s.saveAnalysis)
		api.GET("/analyses/search", s.searchAnalyses)
		api.GET("/analytics", s.analytics)

		api.POST("/email-capture", s.emailCapture)
		api.POST("/email-report", s.emailReport)

		api.POST("/gumroad-webhook", s.purchaseWebhook)
		api.GET("/gumroad-webhook", s.accessStatus)
		api.POST("/verify-access", s.verifyAccess)

		api.POST("/auth/login", s.login)
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
