// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	groupsfeature "github.com/MirzaKrupic/CampusConnect/internal/app/features/groups"
	healthfeature "github.com/MirzaKrupic/CampusConnect/internal/app/features/health"
	leaderboardfeature "github.com/MirzaKrupic/CampusConnect/internal/app/features/leaderboard"
	postsfeature "github.com/MirzaKrupic/CampusConnect/internal/app/features/posts"
	recsfeature "github.com/MirzaKrupic/CampusConnect/internal/app/features/recommendations"
	usersfeature "github.com/MirzaKrupic/CampusConnect/internal/app/features/users"
	"github.com/MirzaKrupic/CampusConnect/internal/app/services/groupsvc"
	"github.com/MirzaKrupic/CampusConnect/internal/app/services/leaderboard"
	"github.com/MirzaKrupic/CampusConnect/internal/app/services/postsvc"
	"github.com/MirzaKrupic/CampusConnect/internal/app/services/recsvc"
	"github.com/MirzaKrupic/CampusConnect/internal/app/services/usersvc"
	cachestore "github.com/MirzaKrupic/CampusConnect/internal/app/store/cache"
	graphstore "github.com/MirzaKrupic/CampusConnect/internal/app/store/graph"
	groupstore "github.com/MirzaKrupic/CampusConnect/internal/app/store/groups"
	membershipstore "github.com/MirzaKrupic/CampusConnect/internal/app/store/memberships"
	poststore "github.com/MirzaKrupic/CampusConnect/internal/app/store/posts"
	userstore "github.com/MirzaKrupic/CampusConnect/internal/app/store/users"
	"github.com/MirzaKrupic/CampusConnect/internal/app/system/ratelimit"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. The wiring runs store adapters up
// through coordination services to the feature routers: each service
// receives only the store slices it needs, so a test can swap any backend
// for an in-memory fake.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Store adapters, one per backend.
	users := userstore.New(deps.Postgres)
	groups := groupstore.New(deps.Postgres)
	memberships := membershipstore.New(deps.Postgres)
	cache := cachestore.New(deps.Redis)
	posts := poststore.New(deps.MongoDatabase)
	graph := graphstore.New(deps.Neo4j, deps.Neo4jDatabase)

	// Coordination services. The leaderboard resolves names through the
	// user service; group and post coordination award points through the
	// leaderboard.
	userSvc := usersvc.New(users, memberships, graph, cache, appCfg.CacheTTL, logger)
	scoreSvc := leaderboard.New(cache, userSvc, logger)
	groupSvc := groupsvc.New(groups, memberships, posts, graph, cache, scoreSvc, appCfg.CacheTTL, logger)
	postSvc := postsvc.New(posts, memberships, cache, groupSvc, scoreSvc, userSvc, groupSvc, logger)
	recSvc := recsvc.New(graph)

	limiter := ratelimit.New(cache, appCfg.RateLimitMax, appCfg.RateLimitWindow, logger)

	r := chi.NewRouter()
	r.Use(limiter.Middleware)

	pgPing := healthfeature.PingerFunc(func(ctx context.Context) error {
		sqlDB, err := deps.Postgres.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	})
	mongoPing := healthfeature.PingerFunc(func(ctx context.Context) error {
		return deps.MongoClient.Ping(ctx, readpref.Primary())
	})
	healthHandler := healthfeature.NewHandler(pgPing, cache, mongoPing, graph, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	usersHandler := usersfeature.NewHandler(userSvc, postSvc, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler))

	groupsHandler := groupsfeature.NewHandler(groupSvc, postSvc, logger)
	r.Mount("/groups", groupsfeature.Routes(groupsHandler))

	postsHandler := postsfeature.NewHandler(postSvc, logger)
	r.Mount("/posts", postsfeature.Routes(postsHandler))

	recsHandler := recsfeature.NewHandler(recSvc, logger)
	r.Mount("/recommendations", recsfeature.Routes(recsHandler))

	leaderboardHandler := leaderboardfeature.NewHandler(scoreSvc, logger)
	r.Mount("/leaderboard", leaderboardfeature.Routes(leaderboardHandler))

	return r, nil
}
