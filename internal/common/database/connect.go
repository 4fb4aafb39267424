// internal/common/database/connect.go
package database

import (
	"context"
	"fmt"
	"time"

	"mission-analyzer/internal/common/config"
	"mission-analyzer/internal/common/errors"
	"mission-analyzer/internal/common/logger"
	"mission-analyzer/internal/store"
)

// Connections holds every datastore client a process uses. Elasticsearch is
// nil when no addresses are configured.
type Connections struct {
	Postgres      *PostgresClient
	Elasticsearch *ElasticsearchClient
	Redis         *RedisClient
}

// RetryWithBackoff runs operation until it succeeds, doubling the delay
// after each failure.
func RetryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
				"error":       err,
				"attempt":     i + 1,
				"maxRetries":  maxRetries,
				"nextRetryIn": delay.String(),
			})
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

// Connect dials Postgres, Redis and (when configured) Elasticsearch with
// retries, runs migrations when enabled and makes sure the search index
// exists.
func Connect(ctx context.Context, cfg *config.Config, log logger.Logger) (*Connections, error) {
	conns := &Connections{}

	err := RetryWithBackoff(func() error {
		pg, err := NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		if err := pg.Ping(ctx); err != nil {
			pg.Close()
			return err
		}
		conns.Postgres = pg
		return nil
	}, 15, 2*time.Second, log, "PostgreSQL connection")
	if err != nil {
		return nil, errors.NewDatabaseConnectionFailedError(err)
	}
	log.Info("PostgreSQL connected successfully", nil)

	if cfg.Database.Postgres.AutoMigrate {
		if err := conns.Postgres.Migrate(ctx); err != nil {
			conns.Close()
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		log.Info("database schema is up to date", nil)
	}

	err = RetryWithBackoff(func() error {
		rdb, err := NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		if err := rdb.Ping(ctx); err != nil {
			rdb.Close()
			return err
		}
		conns.Redis = rdb
		return nil
	}, 10, 2*time.Second, log, "Redis connection")
	if err != nil {
		conns.Close()
		return nil, err
	}
	log.Info("Redis connected successfully", nil)

	if !cfg.Database.Elasticsearch.Enabled() {
		log.Info("elasticsearch not configured, search disabled", nil)
		return conns, nil
	}

	err = RetryWithBackoff(func() error {
		es, err := NewElasticsearch(cfg.Database.Elasticsearch, nil)
		if err != nil {
			return err
		}
		if err := es.Ping(ctx); err != nil {
			return err
		}
		conns.Elasticsearch = es
		return nil
	}, 15, 2*time.Second, log, "Elasticsearch connection")
	if err != nil {
		conns.Close()
		return nil, err
	}
	if err := conns.Elasticsearch.EnsureIndex(ctx, cfg.Database.Elasticsearch.Index, store.AnalysisMapping); err != nil {
		conns.Close()
		return nil, err
	}
	log.Info("Elasticsearch connected successfully", map[string]interface{}{"index": cfg.Database.Elasticsearch.Index})

	return conns, nil
}

// Checks returns a readiness check per connected datastore.
func (c *Connections) Checks() map[string]func(context.Context) error {
	checks := map[string]func(context.Context) error{}
	if c.Postgres != nil {
		checks["postgres"] = c.Postgres.Ping
	}
	if c.Redis != nil {
		checks["redis"] = c.Redis.Ping
	}
	if c.Elasticsearch != nil {
		checks["elasticsearch"] = c.Elasticsearch.Ping
	}
	return checks
}

func (c *Connections) Close() {
	if c.Postgres != nil {
		c.Postgres.Close()
	}
	if c.Redis != nil {
		c.Redis.Close()
	}
}
