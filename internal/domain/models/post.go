// internal/domain/models/post.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post types. Anything else is rejected at the service layer.
const (
	PostTypeQuestion = "question"
	PostTypeNote     = "note"
	PostTypeResource = "resource"
)

// ValidPostType reports whether t is one of the allowed post types.
func ValidPostType(t string) bool {
	return t == PostTypeQuestion || t == PostTypeNote || t == PostTypeResource
}

// Post lives only in MongoDB; there is no relational mirror. AuthorID and
// GroupID reference PostgreSQL rows.
type Post struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AuthorID    int64              `bson:"author_id" json:"author_id"`
	GroupID     int64              `bson:"group_id" json:"group_id"`
	Type        string             `bson:"type" json:"type"`
	Title       string             `bson:"title" json:"title"`
	Body        string             `bson:"body" json:"body"`
	Tags        []string           `bson:"tags" json:"tags"`
	Attachments []Attachment       `bson:"attachments,omitempty" json:"attachments,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// Attachment is a typed link or file descriptor attached to a post.
type Attachment struct {
	Kind string `bson:"kind" json:"kind"` // "link" | "file"
	Name string `bson:"name" json:"name"`
	URL  string `bson:"url" json:"url"`
}

// FeedPost is a post enriched with author and group names for feed views.
type FeedPost struct {
	Post
	AuthorName  string `json:"author_name"`
	AuthorEmail string `json:"author_email"`
	GroupName   string `json:"group_name"`
}

// Comment is a reply to a post, stored alongside posts in MongoDB.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PostID    primitive.ObjectID `bson:"post_id" json:"post_id"`
	AuthorID  int64              `bson:"author_id" json:"author_id"`
	Body      string             `bson:"body" json:"body"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// CommentView is a comment enriched with the author's display name.
type CommentView struct {
	Comment
	AuthorName string `json:"author_name"`
}
