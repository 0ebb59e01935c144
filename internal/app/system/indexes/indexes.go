// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureAll is called at startup. CreateMany is idempotent for unchanged
// definitions, and errors are aggregated so any problem is visible and
// startup can fail fast.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensurePosts(ctx, db); err != nil {
		problems = append(problems, "posts: "+err.Error())
	}
	if err := ensureComments(ctx, db); err != nil {
		problems = append(problems, "comments: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensurePosts(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("posts").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "group_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("group_recent"),
		},
		{
			Keys:    bson.D{{Key: "author_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("author_recent"),
		},
		{
			Keys:    bson.D{{Key: "tags", Value: 1}},
			Options: options.Index().SetName("tags"),
		},
	})
	return err
}

func ensureComments(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("comments").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "post_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("post_thread"),
		},
	})
	return err
}
