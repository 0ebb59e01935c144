// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - CORS settings
//   - Request body size limits
//
// AppConfig is where everything specific to CampusConnect lives: the
// connection settings for the four backing stores and the coordination
// tunables (cache TTL, activity cap, rate limits).
type AppConfig struct {
	// PostgreSQL, the system of record for users, groups, and memberships.
	PostgresDSN string

	// Redis, the cache and scoring store.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// MongoDB, the document store for posts and comments.
	MongoURI      string
	MongoDatabase string

	// Neo4j, the social graph store.
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string
	Neo4jDatabase string

	// Coordination tunables.
	CacheTTL        time.Duration // TTL for cached user/group entries
	RateLimitMax    int           // requests allowed per window per client
	RateLimitWindow time.Duration // fixed rate-limit window
}
