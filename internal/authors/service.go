package authors

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/blogmint/blogmint/internal/models"
)

// bcryptCost matches the work factor used when the system first hashed
// passwords; changing it only affects newly registered authors.
const bcryptCost = 13

// Service encapsulates author-related business logic: registration with
// password hashing and credential checks for login.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// Register hashes the plaintext password and persists a new author. Field
// values are trimmed and the email lowercased before storage.
func (s *Service) Register(ctx context.Context, a *models.Author, password string) (*models.Author, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}
	a.Title = strings.TrimSpace(a.Title)
	a.Fname = strings.TrimSpace(a.Fname)
	a.Lname = strings.TrimSpace(a.Lname)
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	a.Password = string(hash)
	return s.repo.Create(ctx, a)
}

// GetByEmail returns the author registered with email, or nil when none is.
func (s *Service) GetByEmail(ctx context.Context, email string) (*models.Author, error) {
	return s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// GetByID returns the author with the given id, or nil when none exists.
func (s *Service) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Author, error) {
	return s.repo.FindByID(ctx, id)
}

// CheckPassword reports whether the plaintext password matches the author's
// stored hash.
func (s *Service) CheckPassword(a *models.Author, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(password)) == nil
}
