// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for CampusConnect.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: postgres_dsn, redis_addr, etc.
//   - Environment variables: CAMPUSCONNECT_POSTGRES_DSN, CAMPUSCONNECT_REDIS_ADDR, etc.
//   - Command-line flags: --postgres_dsn, --redis_addr, etc.
var appConfigKeys = []config.AppKey{
	{Name: "postgres_dsn", Default: "host=localhost user=campusconnect password=campusconnect dbname=campusconnect port=5432 sslmode=disable", Desc: "PostgreSQL DSN for the system of record"},

	{Name: "redis_addr", Default: "localhost:6379", Desc: "Redis address for the cache and scoring store"},
	{Name: "redis_password", Default: "", Desc: "Redis password"},
	{Name: "redis_db", Default: 0, Desc: "Redis logical database number"},

	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI for the document store"},
	{Name: "mongo_database", Default: "campus_connect", Desc: "MongoDB database name"},

	{Name: "neo4j_uri", Default: "bolt://localhost:7687", Desc: "Neo4j bolt URI for the graph store"},
	{Name: "neo4j_user", Default: "neo4j", Desc: "Neo4j username"},
	{Name: "neo4j_password", Default: "password", Desc: "Neo4j password"},
	{Name: "neo4j_database", Default: "neo4j", Desc: "Neo4j database name"},

	{Name: "cache_ttl", Default: "1h", Desc: "TTL for cached user and group entries (e.g. 30m, 1h)"},
	{Name: "rate_limit_max", Default: 100, Desc: "Requests allowed per rate-limit window per client"},
	{Name: "rate_limit_window", Default: "60s", Desc: "Rate-limit window (e.g. 60s, 1m)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// CoreConfig comes from the shared WAFFLE layer; AppConfig is specific
// to this app.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, CAMPUSCONNECT_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "CAMPUSCONNECT", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		PostgresDSN: appValues.String("postgres_dsn"),

		RedisAddr:     appValues.String("redis_addr"),
		RedisPassword: appValues.String("redis_password"),
		RedisDB:       appValues.Int("redis_db"),

		MongoURI:      appValues.String("mongo_uri"),
		MongoDatabase: appValues.String("mongo_database"),

		Neo4jURI:      appValues.String("neo4j_uri"),
		Neo4jUser:     appValues.String("neo4j_user"),
		Neo4jPassword: appValues.String("neo4j_password"),
		Neo4jDatabase: appValues.String("neo4j_database"),

		CacheTTL:        appValues.Duration("cache_ttl", time.Hour),
		RateLimitMax:    appValues.Int("rate_limit_max"),
		RateLimitWindow: appValues.Duration("rate_limit_window", 60*time.Second),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// Connection strings are checked here so a typo fails fast instead of
// surfacing as a confusing dial error mid-startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if appCfg.PostgresDSN == "" {
		return fmt.Errorf("postgres_dsn must be set")
	}
	if appCfg.RedisAddr == "" {
		return fmt.Errorf("redis_addr must be set")
	}
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.Neo4jURI == "" {
		return fmt.Errorf("neo4j_uri must be set")
	}
	if appCfg.CacheTTL <= 0 {
		return fmt.Errorf("cache_ttl must be positive")
	}
	if appCfg.RateLimitMax <= 0 || appCfg.RateLimitWindow <= 0 {
		return fmt.Errorf("rate_limit_max and rate_limit_window must be positive")
	}
	return nil
}
