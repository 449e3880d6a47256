package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blog represents a blog post. Posts are never physically removed: deletion
// flips isDeleted and stamps deletedAt, and every default read path filters
// on those fields.
type Blog struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Body        string             `bson:"body" json:"body"`
	AuthorID    primitive.ObjectID `bson:"authorId" json:"authorId"`
	Category    string             `bson:"category" json:"category"`
	Tags        []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Subcategory []string           `bson:"subcategory,omitempty" json:"subcategory,omitempty"`
	IsPublished bool               `bson:"isPublished" json:"isPublished"`
	PublishedAt *time.Time         `bson:"publishedAt" json:"publishedAt"`
	IsDeleted   bool               `bson:"isDeleted" json:"isDeleted"`
	DeletedAt   *time.Time         `bson:"deletedAt" json:"deletedAt"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
