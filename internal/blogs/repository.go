package blogs

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/blogmint/blogmint/internal/models"
)

// Update describes a blog mutation. Title and Body replace
// the stored values; AddTags and AddSubcategory are unioned into the
// existing collections (set semantics, nothing is removed). Every applied
// update also republishes the post.
type Update struct {
	Title          *string
	Body           *string
	AddTags        []string
	AddSubcategory []string
}

// Repository defines persistence operations for blog posts. Soft-deleted
// posts are invisible to every method except Create; lookups return
// (nil, nil) when no active document matches.
type Repository interface {
	Create(ctx context.Context, b *models.Blog) (*models.Blog, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error)
	Find(ctx context.Context, f Filter) ([]*models.Blog, error)
	FindAndUpdate(ctx context.Context, id primitive.ObjectID, u Update) (*models.Blog, error)
	SoftDelete(ctx context.Context, id primitive.ObjectID) (bool, error)
	SoftDeleteMany(ctx context.Context, ids []primitive.ObjectID) (int64, error)
}

// MongoRepository implements Repository using MongoDB.
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

// activeByID is the conjunction every single-document operation is scoped
// by: the target id AND not soft-deleted.
func activeByID(id primitive.ObjectID) bson.M {
	return bson.M{"_id": id, "isDeleted": false, "deletedAt": nil}
}

func (r *MongoRepository) Create(ctx context.Context, b *models.Blog) (*models.Blog, error) {
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	res, err := r.col.InsertOne(ctx, b)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		b.ID = oid
	}
	return b, nil
}

func (r *MongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error) {
	var b models.Blog
	if err := r.col.FindOne(ctx, activeByID(id)).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *MongoRepository) Find(ctx context.Context, f Filter) ([]*models.Blog, error) {
	cur, err := r.col.Find(ctx, f.BSON())
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*models.Blog{}
	for cur.Next(ctx) {
		var b models.Blog
		if err := cur.Decode(&b); err != nil {
			return nil, err
		}
		out = append(out, &b)
	}
	return out, cur.Err()
}

func (r *MongoRepository) FindAndUpdate(ctx context.Context, id primitive.ObjectID, u Update) (*models.Blog, error) {
	now := time.Now().UTC()
	set := bson.M{"isPublished": true, "publishedAt": now, "updatedAt": now}
	if u.Title != nil {
		set["title"] = *u.Title
	}
	if u.Body != nil {
		set["body"] = *u.Body
	}
	update := bson.M{"$set": set}
	addToSet := bson.M{}
	if len(u.AddTags) > 0 {
		addToSet["tags"] = bson.M{"$each": u.AddTags}
	}
	if len(u.AddSubcategory) > 0 {
		addToSet["subcategory"] = bson.M{"$each": u.AddSubcategory}
	}
	if len(addToSet) > 0 {
		update["$addToSet"] = addToSet
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var b models.Blog
	if err := r.col.FindOneAndUpdate(ctx, activeByID(id), update, opts).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *MongoRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	now := time.Now().UTC()
	res, err := r.col.UpdateOne(ctx, activeByID(id),
		bson.M{"$set": bson.M{"isDeleted": true, "deletedAt": now, "updatedAt": now}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *MongoRepository) SoftDeleteMany(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	now := time.Now().UTC()
	res, err := r.col.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$set": bson.M{"isDeleted": true, "deletedAt": now, "updatedAt": now}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
