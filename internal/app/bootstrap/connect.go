// internal/app/bootstrap/connect.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/MirzaKrupic/CampusConnect/internal/app/system/timeouts"
)

// ConnectDB opens the four store clients and verifies each with a ping.
//
// Startup is strict even though request handling is not: a service that
// boots with a dead backend would degrade every request from the first
// one, so any unreachable store aborts here. TranslateError lets the
// store layer match gorm.ErrDuplicatedKey and friends instead of parsing
// driver-specific messages.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	var deps DBDeps

	pg, err := gorm.Open(postgres.Open(appCfg.PostgresDSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return deps, fmt.Errorf("connect postgres: %w", err)
	}
	deps.Postgres = pg
	logger.Info("connected to PostgreSQL")

	rdb := redis.NewClient(&redis.Options{
		Addr:     appCfg.RedisAddr,
		Password: appCfg.RedisPassword,
		DB:       appCfg.RedisDB,
	})
	if err := pinged(ctx, func(pc context.Context) error {
		return rdb.Ping(pc).Err()
	}); err != nil {
		return deps, fmt.Errorf("connect redis: %w", err)
	}
	deps.Redis = rdb
	logger.Info("connected to Redis", zap.String("addr", appCfg.RedisAddr))

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(appCfg.MongoURI))
	if err != nil {
		return deps, fmt.Errorf("connect mongo: %w", err)
	}
	if err := pinged(ctx, func(pc context.Context) error {
		return mongoClient.Ping(pc, readpref.Primary())
	}); err != nil {
		return deps, fmt.Errorf("ping mongo: %w", err)
	}
	deps.MongoClient = mongoClient
	deps.MongoDatabase = mongoClient.Database(appCfg.MongoDatabase)
	logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))

	driver, err := neo4j.NewDriverWithContext(appCfg.Neo4jURI,
		neo4j.BasicAuth(appCfg.Neo4jUser, appCfg.Neo4jPassword, ""))
	if err != nil {
		return deps, fmt.Errorf("connect neo4j: %w", err)
	}
	if err := pinged(ctx, driver.VerifyConnectivity); err != nil {
		return deps, fmt.Errorf("verify neo4j: %w", err)
	}
	deps.Neo4j = driver
	deps.Neo4jDatabase = appCfg.Neo4jDatabase
	logger.Info("connected to Neo4j", zap.String("uri", appCfg.Neo4jURI))

	return deps, nil
}

// pinged runs one connectivity check under its own ping timeout.
func pinged(ctx context.Context, check func(context.Context) error) error {
	pc, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	return check(pc)
}
