package blogs

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Filter describes a query over blog posts. Every query
// excludes soft-deleted posts; the remaining fields are optional predicates
// added one per recognized filter key and folded into a single conjunction
// by BSON(). A nil slice or pointer means the key was not supplied.
type Filter struct {
	Published   *bool
	AuthorID    *primitive.ObjectID
	Category    *string
	Title       *string
	Tags        []string
	Subcategory []string
}

// NewFilter returns the base filter: not soft-deleted, nothing else.
func NewFilter() Filter {
	return Filter{}
}

// WithPublished narrows to posts whose publication flag equals v.
func (f Filter) WithPublished(v bool) Filter {
	f.Published = &v
	return f
}

// WithAuthor narrows to posts owned by the given author.
func (f Filter) WithAuthor(id primitive.ObjectID) Filter {
	f.AuthorID = &id
	return f
}

// WithCategory narrows to posts in the given category.
func (f Filter) WithCategory(c string) Filter {
	f.Category = &c
	return f
}

// WithTitle narrows to posts with the exact title.
func (f Filter) WithTitle(t string) Filter {
	f.Title = &t
	return f
}

// WithTags narrows to posts carrying any of the given tags.
func (f Filter) WithTags(tags []string) Filter {
	f.Tags = tags
	return f
}

// WithSubcategory narrows to posts carrying any of the given subcategories.
func (f Filter) WithSubcategory(sub []string) Filter {
	f.Subcategory = sub
	return f
}

// BSON folds the optional predicates into one Mongo conjunction.
func (f Filter) BSON() bson.M {
	q := bson.M{"isDeleted": false, "deletedAt": nil}
	if f.Published != nil {
		q["isPublished"] = *f.Published
		if !*f.Published {
			q["publishedAt"] = nil
		}
	}
	if f.AuthorID != nil {
		q["authorId"] = *f.AuthorID
	}
	if f.Category != nil {
		q["category"] = *f.Category
	}
	if f.Title != nil {
		q["title"] = *f.Title
	}
	if p := anyOf(f.Tags); p != nil {
		q["tags"] = p
	}
	if p := anyOf(f.Subcategory); p != nil {
		q["subcategory"] = p
	}
	return q
}

// anyOf builds the predicate for a multi-valued key: plain equality for one
// value, $in for several. A post matches when its collection field contains
// any supplied value.
func anyOf(vals []string) interface{} {
	switch len(vals) {
	case 0:
		return nil
	case 1:
		return vals[0]
	default:
		return bson.M{"$in": vals}
	}
}
