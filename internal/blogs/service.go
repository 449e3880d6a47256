package blogs

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/blogmint/blogmint/internal/models"
)

// Service wraps repository operations with the soft-delete business rules.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service { return &Service{repo: r} }

func (s *Service) Create(ctx context.Context, b *models.Blog) (*models.Blog, error) {
	return s.repo.Create(ctx, b)
}

// GetActive returns the non-deleted post with the given id, or nil.
func (s *Service) GetActive(ctx context.Context, id primitive.ObjectID) (*models.Blog, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter) ([]*models.Blog, error) {
	return s.repo.Find(ctx, f)
}

// Update applies the mutation and republishes the post. Returns nil when the
// post does not exist or is soft-deleted.
func (s *Service) Update(ctx context.Context, id primitive.ObjectID, u Update) (*models.Blog, error) {
	return s.repo.FindAndUpdate(ctx, id, u)
}

// SoftDelete marks a single post deleted. Returns false when no active post
// matched.
func (s *Service) SoftDelete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return s.repo.SoftDelete(ctx, id)
}

// SoftDeleteOwned soft-deletes, in one batched update, those of the given
// posts that belong to owner. Posts owned by anyone else are skipped no
// matter how they were selected.
func (s *Service) SoftDeleteOwned(ctx context.Context, posts []*models.Blog, owner primitive.ObjectID) (int64, error) {
	ids := make([]primitive.ObjectID, 0, len(posts))
	for _, b := range posts {
		if b.AuthorID == owner {
			ids = append(ids, b.ID)
		}
	}
	return s.repo.SoftDeleteMany(ctx, ids)
}
