// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	graphstore "github.com/MirzaKrupic/CampusConnect/internal/app/store/graph"
	"github.com/MirzaKrupic/CampusConnect/internal/app/system/indexes"
	"github.com/MirzaKrupic/CampusConnect/internal/domain/models"
)

// EnsureSchema creates the relational tables, Mongo indexes, and graph
// constraints. All three are idempotent, so a restart is safe.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := deps.Postgres.WithContext(ctx).AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.GroupMembership{},
	); err != nil {
		return fmt.Errorf("migrate postgres schema: %w", err)
	}
	logger.Info("postgres schema up to date")

	if err := indexes.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		return fmt.Errorf("ensure mongo indexes: %w", err)
	}
	logger.Info("mongo indexes up to date")

	graph := graphstore.New(deps.Neo4j, deps.Neo4jDatabase)
	if err := graph.EnsureConstraints(ctx); err != nil {
		return fmt.Errorf("ensure graph constraints: %w", err)
	}
	logger.Info("graph constraints up to date")

	return nil
}
