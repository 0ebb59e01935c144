// internal/app/store/posts/poststore.go
package poststore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MirzaKrupic/CampusConnect/internal/domain/models"
)

// ErrNotFound is returned when no post document matches the id. A malformed
// id hex string is reported the same way; callers never see it as a store
// failure.
var ErrNotFound = errors.New("post not found")

// Store reads and writes post and comment documents in MongoDB, the sole
// store for content. There is no relational mirror: if Mongo is down,
// post operations fail outright.
type Store struct {
	posts    *mongo.Collection
	comments *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		posts:    db.Collection("posts"),
		comments: db.Collection("comments"),
	}
}

// Create inserts a post document and returns it with the generated id and
// timestamps set.
func (s *Store) Create(ctx context.Context, p models.Post) (models.Post, error) {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if _, err := s.posts.InsertOne(ctx, p); err != nil {
		return models.Post{}, fmt.Errorf("insert post: %w", err)
	}
	return p, nil
}

// GetByID loads a post by its hex id.
func (s *Store) GetByID(ctx context.Context, id string) (*models.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var p models.Post
	if err := s.posts.FindOne(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get post %s: %w", id, err)
	}
	return &p, nil
}

// UpdateByAuthor applies title/body/tags changes to a post, but only when
// authorID matches the stored author. Returns ErrNotFound when no document
// matches, which covers both a missing post and a non-author caller.
func (s *Store) UpdateByAuthor(ctx context.Context, id string, authorID int64, set bson.M) (*models.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	set["updated_at"] = time.Now().UTC()
	after := options.After
	var p models.Post
	err = s.posts.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "author_id": authorID},
		bson.M{"$set": set},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update post %s: %w", id, err)
	}
	return &p, nil
}

// ListByGroup returns a group's posts newest first, with skip/limit paging.
func (s *Store) ListByGroup(ctx context.Context, groupID int64, limit, skip int64) ([]models.Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cur, err := s.posts.Find(ctx, bson.M{"group_id": groupID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list group posts: %w", err)
	}
	defer cur.Close(ctx)

	var posts []models.Post
	if err := cur.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("decode group posts: %w", err)
	}
	return posts, nil
}

// ListByAuthor returns a user's posts newest first.
func (s *Store) ListByAuthor(ctx context.Context, authorID int64, limit int64) ([]models.Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	cur, err := s.posts.Find(ctx, bson.M{"author_id": authorID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list author posts: %w", err)
	}
	defer cur.Close(ctx)

	var posts []models.Post
	if err := cur.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("decode author posts: %w", err)
	}
	return posts, nil
}

// SearchByTags returns posts carrying any of the given tags, newest first.
func (s *Store) SearchByTags(ctx context.Context, tags []string, limit int64) ([]models.Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	cur, err := s.posts.Find(ctx, bson.M{"tags": bson.M{"$in": tags}}, opts)
	if err != nil {
		return nil, fmt.Errorf("search posts: %w", err)
	}
	defer cur.Close(ctx)

	var posts []models.Post
	if err := cur.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("decode search posts: %w", err)
	}
	return posts, nil
}

// CountByGroup returns the total number of posts in a group.
func (s *Store) CountByGroup(ctx context.Context, groupID int64) (int64, error) {
	n, err := s.posts.CountDocuments(ctx, bson.M{"group_id": groupID})
	if err != nil {
		return 0, fmt.Errorf("count group posts: %w", err)
	}
	return n, nil
}

// CreateComment inserts a comment on the given post.
func (s *Store) CreateComment(ctx context.Context, postID string, authorID int64, body string) (models.Comment, error) {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return models.Comment{}, ErrNotFound
	}
	c := models.Comment{
		ID:        primitive.NewObjectID(),
		PostID:    oid,
		AuthorID:  authorID,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.comments.InsertOne(ctx, c); err != nil {
		return models.Comment{}, fmt.Errorf("insert comment: %w", err)
	}
	return c, nil
}

// ListComments returns a post's comments oldest first.
func (s *Store) ListComments(ctx context.Context, postID string, limit int64) ([]models.Comment, error) {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, ErrNotFound
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(limit)
	cur, err := s.comments.Find(ctx, bson.M{"post_id": oid}, opts)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer cur.Close(ctx)

	var comments []models.Comment
	if err := cur.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("decode comments: %w", err)
	}
	return comments, nil
}
