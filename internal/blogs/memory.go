package blogs

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/blogmint/blogmint/internal/models"
)

// MemoryRepository is an in-memory Repository used by unit tests. It mirrors
// the Mongo implementation's semantics: soft-deleted posts are invisible,
// filters are conjunctions, multi-valued keys match any element, and
// $addToSet-style updates are set unions.
type MemoryRepository struct {
	mu    sync.RWMutex
	store map[primitive.ObjectID]*models.Blog
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: map[primitive.ObjectID]*models.Blog{}}
}

func (m *MemoryRepository) Create(ctx context.Context, b *models.Blog) (*models.Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	cp := *b
	m.store[b.ID] = &cp
	return b, nil
}

func (m *MemoryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.store[id]
	if !ok || b.IsDeleted {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (m *MemoryRepository) Find(ctx context.Context, f Filter) ([]*models.Blog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*models.Blog{}
	for _, b := range m.store {
		if matches(b, f) {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MemoryRepository) FindAndUpdate(ctx context.Context, id primitive.ObjectID, u Update) (*models.Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.store[id]
	if !ok || b.IsDeleted {
		return nil, nil
	}
	now := time.Now().UTC()
	b.IsPublished = true
	b.PublishedAt = &now
	b.UpdatedAt = now
	if u.Title != nil {
		b.Title = *u.Title
	}
	if u.Body != nil {
		b.Body = *u.Body
	}
	b.Tags = union(b.Tags, u.AddTags)
	b.Subcategory = union(b.Subcategory, u.AddSubcategory)
	cp := *b
	return &cp, nil
}

func (m *MemoryRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.store[id]
	if !ok || b.IsDeleted {
		return false, nil
	}
	now := time.Now().UTC()
	b.IsDeleted = true
	b.DeletedAt = &now
	b.UpdatedAt = now
	return true, nil
}

func (m *MemoryRepository) SoftDeleteMany(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	now := time.Now().UTC()
	for _, id := range ids {
		if b, ok := m.store[id]; ok && !b.IsDeleted {
			b.IsDeleted = true
			b.DeletedAt = &now
			b.UpdatedAt = now
			n++
		}
	}
	return n, nil
}

// Raw returns the stored document regardless of its deleted flag. Tests use
// it to assert that soft-deleted posts are retained at the store level.
func (m *MemoryRepository) Raw(id primitive.ObjectID) *models.Blog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store[id]
}

func matches(b *models.Blog, f Filter) bool {
	if b.IsDeleted {
		return false
	}
	if f.Published != nil && b.IsPublished != *f.Published {
		return false
	}
	if f.AuthorID != nil && b.AuthorID != *f.AuthorID {
		return false
	}
	if f.Category != nil && b.Category != *f.Category {
		return false
	}
	if f.Title != nil && b.Title != *f.Title {
		return false
	}
	if len(f.Tags) > 0 && !containsAny(b.Tags, f.Tags) {
		return false
	}
	if len(f.Subcategory) > 0 && !containsAny(b.Subcategory, f.Subcategory) {
		return false
	}
	return true
}

func containsAny(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

func union(base, add []string) []string {
	out := base
	for _, v := range add {
		seen := false
		for _, b := range out {
			if b == v {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, v)
		}
	}
	return out
}
