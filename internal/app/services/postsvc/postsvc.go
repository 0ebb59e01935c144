// internal/app/services/postsvc/postsvc.go

// Package postsvc coordinates content operations. MongoDB is the sole
// store for posts and comments; Redis carries the hot-posts ranking,
// activity streams, and scores; PostgreSQL supplies the membership check
// and author/group names for enrichment.
package postsvc

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/MirzaKrupic/CampusConnect/internal/app/services/fanout"
	"github.com/MirzaKrupic/CampusConnect/internal/app/services/leaderboard"
	cachestore "github.com/MirzaKrupic/CampusConnect/internal/app/store/cache"
	poststore "github.com/MirzaKrupic/CampusConnect/internal/app/store/posts"
	"github.com/MirzaKrupic/CampusConnect/internal/app/system/normalize"
	"github.com/MirzaKrupic/CampusConnect/internal/domain/models"
)

var (
	// ErrNotMember is returned when the author has no membership row for
	// the group. The check always hits PostgreSQL: a stale cached summary
	// must never grant posting rights.
	ErrNotMember = errors.New("user is not a member of this group")

	// ErrNotFound is returned when a referenced post does not exist.
	ErrNotFound = errors.New("post not found")

	// ErrInvalidType is returned for a post type outside question|note|resource.
	ErrInvalidType = errors.New(`post type must be "question", "note", or "resource"`)
)

// PostStore is the document store holding posts and comments.
type PostStore interface {
	Create(ctx context.Context, p models.Post) (models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	UpdateByAuthor(ctx context.Context, id string, authorID int64, set bson.M) (*models.Post, error)
	ListByGroup(ctx context.Context, groupID int64, limit, skip int64) ([]models.Post, error)
	ListByAuthor(ctx context.Context, authorID int64, limit int64) ([]models.Post, error)
	SearchByTags(ctx context.Context, tags []string, limit int64) ([]models.Post, error)
	CreateComment(ctx context.Context, postID string, authorID int64, body string) (models.Comment, error)
	ListComments(ctx context.Context, postID string, limit int64) ([]models.Comment, error)
}

// MembershipChecker is the authoritative membership check.
type MembershipChecker interface {
	Exists(ctx context.Context, userID, groupID int64) (bool, error)
}

// Cache is the slice of the cache store post coordination needs.
type Cache interface {
	SetScore(ctx context.Context, set, member string, score float64) error
	TopRange(ctx context.Context, set string, count int64) ([]cachestore.ScoredMember, error)
	Invalidate(ctx context.Context, key string) error
}

// ActivityAppender records post events on the group's activity stream.
type ActivityAppender interface {
	AppendActivity(ctx context.Context, groupID int64, ev models.ActivityEvent) error
}

// Scores awards participation points.
type Scores interface {
	IncrementScore(ctx context.Context, userID int64, delta float64) (float64, error)
}

// Users resolves author names for enriched views.
type Users interface {
	GetUser(ctx context.Context, id int64) (models.User, error)
}

// Groups resolves group names for enriched views.
type Groups interface {
	GetGroup(ctx context.Context, id int64) (models.GroupSummary, error)
}

type Service struct {
	posts       PostStore
	memberships MembershipChecker
	cache       Cache
	activity    ActivityAppender
	scores      Scores
	users       Users
	groups      Groups
	log         *zap.Logger
}

func New(posts PostStore, memberships MembershipChecker, cache Cache, activity ActivityAppender, scores Scores, users Users, groups Groups, log *zap.Logger) *Service {
	return &Service{
		posts:       posts,
		memberships: memberships,
		cache:       cache,
		activity:    activity,
		scores:      scores,
		users:       users,
		groups:      groups,
		log:         log,
	}
}

// CreateInput carries the caller-supplied post fields.
type CreateInput struct {
	AuthorID    int64
	GroupID     int64
	Type        string
	Title       string
	Body        string
	Tags        []string
	Attachments []models.Attachment
}

// CreatePost validates type and membership, inserts the document, then
// fans out: hot-posts ranking keyed by recency, activity event, post
// points, and invalidation of the group's cached summary (its post count
// changed). The membership check and the document insert are the only
// fatal steps.
func (s *Service) CreatePost(ctx context.Context, in CreateInput) (models.Post, *fanout.Result, error) {
	if !models.ValidPostType(in.Type) {
		return models.Post{}, nil, ErrInvalidType
	}

	member, err := s.memberships.Exists(ctx, in.AuthorID, in.GroupID)
	if err != nil {
		return models.Post{}, nil, err
	}
	if !member {
		return models.Post{}, nil, ErrNotMember
	}

	p, err := s.posts.Create(ctx, models.Post{
		AuthorID:    in.AuthorID,
		GroupID:     in.GroupID,
		Type:        in.Type,
		Title:       in.Title,
		Body:        in.Body,
		Tags:        normalize.Tags(in.Tags),
		Attachments: in.Attachments,
	})
	if err != nil {
		return models.Post{}, nil, err
	}

	fo := fanout.New(s.log, "create post")
	fo.Do("hot posts entry", func() error {
		return s.cache.SetScore(ctx, cachestore.HotPostsSet, p.ID.Hex(), float64(p.CreatedAt.Unix()))
	})
	fo.Do("activity event", func() error {
		return s.activity.AppendActivity(ctx, in.GroupID, models.ActivityEvent{
			ID:      uuid.NewString(),
			Type:    models.ActivityPost,
			UserID:  in.AuthorID,
			GroupID: in.GroupID,
			PostID:  p.ID.Hex(),
			Title:   p.Title,
			At:      time.Now().UTC(),
		})
	})
	fo.Do("award post points", func() error {
		_, err := s.scores.IncrementScore(ctx, in.AuthorID, leaderboard.PostPoints)
		return err
	})
	fo.Do("invalidate group summary", func() error {
		return s.cache.Invalidate(ctx, cachestore.GroupKey(in.GroupID))
	})
	return p, fo, nil
}

// GetPost loads a single post from the document store.
func (s *Service) GetPost(ctx context.Context, id string) (models.Post, error) {
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, poststore.ErrNotFound) {
			return models.Post{}, ErrNotFound
		}
		return models.Post{}, err
	}
	return *p, nil
}

// GroupFeed returns a group's posts newest first, enriched with author and
// group names through the cache-aside readers. Missing authors degrade to
// "Unknown" rather than failing the feed.
func (s *Service) GroupFeed(ctx context.Context, groupID int64, limit, skip int64) ([]models.FeedPost, error) {
	posts, err := s.posts.ListByGroup(ctx, groupID, limit, skip)
	if err != nil {
		return nil, err
	}

	groupName := "Unknown Group"
	if g, err := s.groups.GetGroup(ctx, groupID); err == nil {
		groupName = g.Name
	}

	feed := make([]models.FeedPost, 0, len(posts))
	for _, p := range posts {
		fp := models.FeedPost{
			Post:        p,
			AuthorName:  "Unknown",
			AuthorEmail: "unknown@example.com",
			GroupName:   groupName,
		}
		if u, err := s.users.GetUser(ctx, p.AuthorID); err == nil {
			fp.AuthorName = u.FullName
			fp.AuthorEmail = u.Email
		}
		feed = append(feed, fp)
	}
	return feed, nil
}

// HotPosts returns the most recent posts by hot-ranking order. The ranking
// lives only in the cache store, so its unavailability fails the read;
// ids whose documents have since vanished are skipped.
func (s *Service) HotPosts(ctx context.Context, limit int) ([]models.FeedPost, error) {
	top, err := s.cache.TopRange(ctx, cachestore.HotPostsSet, int64(limit))
	if err != nil {
		return nil, err
	}

	hot := make([]models.FeedPost, 0, len(top))
	for _, m := range top {
		p, err := s.posts.GetByID(ctx, m.Member)
		if err != nil {
			if errors.Is(err, poststore.ErrNotFound) {
				continue
			}
			return nil, err
		}
		fp := models.FeedPost{Post: *p, AuthorName: "Unknown"}
		if u, err := s.users.GetUser(ctx, p.AuthorID); err == nil {
			fp.AuthorName = u.FullName
			fp.AuthorEmail = u.Email
		}
		hot = append(hot, fp)
	}
	return hot, nil
}

// UpdateInput carries the editable post fields. Nil pointers leave the
// stored value unchanged.
type UpdateInput struct {
	Title *string
	Body  *string
	Tags  []string
}

// UpdatePost applies edits to a post. Only the original author may edit;
// anyone else gets ErrNotFound, same as a missing post.
func (s *Service) UpdatePost(ctx context.Context, id string, authorID int64, in UpdateInput) (models.Post, error) {
	set := bson.M{}
	if in.Title != nil {
		set["title"] = *in.Title
	}
	if in.Body != nil {
		set["body"] = *in.Body
	}
	if in.Tags != nil {
		set["tags"] = normalize.Tags(in.Tags)
	}
	p, err := s.posts.UpdateByAuthor(ctx, id, authorID, set)
	if err != nil {
		if errors.Is(err, poststore.ErrNotFound) {
			return models.Post{}, ErrNotFound
		}
		return models.Post{}, err
	}
	return *p, nil
}

// PostsByAuthor returns a user's posts newest first.
func (s *Service) PostsByAuthor(ctx context.Context, authorID int64, limit int64) ([]models.Post, error) {
	return s.posts.ListByAuthor(ctx, authorID, limit)
}

// SearchByTags returns posts matching any of the given tags, newest first.
func (s *Service) SearchByTags(ctx context.Context, tags []string, limit int64) ([]models.Post, error) {
	return s.posts.SearchByTags(ctx, normalize.Tags(tags), limit)
}

// CreateComment adds a comment to an existing post and awards comment
// points best-effort.
func (s *Service) CreateComment(ctx context.Context, postID string, authorID int64, body string) (models.Comment, *fanout.Result, error) {
	if _, err := s.GetPost(ctx, postID); err != nil {
		return models.Comment{}, nil, err
	}
	c, err := s.posts.CreateComment(ctx, postID, authorID, body)
	if err != nil {
		if errors.Is(err, poststore.ErrNotFound) {
			return models.Comment{}, nil, ErrNotFound
		}
		return models.Comment{}, nil, err
	}

	fo := fanout.New(s.log, "create comment")
	fo.Do("award comment points", func() error {
		_, err := s.scores.IncrementScore(ctx, authorID, leaderboard.CommentPoints)
		return err
	})
	return c, fo, nil
}

// Comments returns a post's comments oldest first, with author names.
func (s *Service) Comments(ctx context.Context, postID string, limit int64) ([]models.CommentView, error) {
	comments, err := s.posts.ListComments(ctx, postID, limit)
	if err != nil {
		if errors.Is(err, poststore.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	views := make([]models.CommentView, 0, len(comments))
	for _, c := range comments {
		v := models.CommentView{Comment: c, AuthorName: "Unknown"}
		if u, err := s.users.GetUser(ctx, c.AuthorID); err == nil {
			v.AuthorName = u.FullName
		}
		views = append(views, v)
	}
	return views, nil
}
