// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown cleanly tears down the store clients. Each close is attempted
// even when an earlier one fails; the first error is reported.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	var firstErr error

	if deps.Redis != nil {
		logger.Info("closing Redis client")
		if err := deps.Redis.Close(); err != nil {
			logger.Error("Redis close failed", zap.Error(err))
			firstErr = err
		}
	}

	if deps.MongoClient != nil {
		logger.Info("disconnecting MongoDB client")
		if err := deps.MongoClient.Disconnect(ctx); err != nil {
			logger.Error("MongoDB disconnect failed", zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	if deps.Neo4j != nil {
		logger.Info("closing Neo4j driver")
		if err := deps.Neo4j.Close(ctx); err != nil {
			logger.Error("Neo4j close failed", zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	if deps.Postgres != nil {
		if sqlDB, err := deps.Postgres.DB(); err == nil {
			logger.Info("closing PostgreSQL pool")
			if err := sqlDB.Close(); err != nil {
				logger.Error("PostgreSQL close failed", zap.Error(err))
				if firstErr == nil {
					firstErr = err
				}
			}
		}
	}

	return firstErr
}
