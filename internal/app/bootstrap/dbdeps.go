// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// DBDeps holds the connected clients for the four backing stores. It is
// built once in ConnectDB and threaded through the remaining lifecycle
// hooks.
type DBDeps struct {
	Postgres *gorm.DB

	Redis *redis.Client

	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	Neo4j         neo4j.DriverWithContext
	Neo4jDatabase string
}
