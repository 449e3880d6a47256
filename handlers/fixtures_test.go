package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/blogmint/blogmint/internal/authors"
	"github.com/blogmint/blogmint/internal/blogs"
	"github.com/blogmint/blogmint/internal/config"
	"github.com/blogmint/blogmint/internal/models"
	"github.com/blogmint/blogmint/internal/tokens"
	"github.com/blogmint/blogmint/pkg/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fake author repo backed by maps
type fakeAuthorRepo struct {
	byEmail map[string]*models.Author
	byID    map[primitive.ObjectID]*models.Author
}

func newFakeAuthorRepo() *fakeAuthorRepo {
	return &fakeAuthorRepo{
		byEmail: map[string]*models.Author{},
		byID:    map[primitive.ObjectID]*models.Author{},
	}
}

func (f *fakeAuthorRepo) Create(ctx context.Context, a *models.Author) (*models.Author, error) {
	a.ID = primitive.NewObjectID()
	a.CreatedAt = time.Now().UTC()
	a.UpdatedAt = a.CreatedAt
	f.byEmail[a.Email] = a
	f.byID[a.ID] = a
	return a, nil
}

func (f *fakeAuthorRepo) FindByEmail(ctx context.Context, email string) (*models.Author, error) {
	return f.byEmail[email], nil
}

func (f *fakeAuthorRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Author, error) {
	return f.byID[id], nil
}

// testApp bundles the router and collaborators handler tests need.
type testApp struct {
	cfg       *config.Config
	router    *gin.Engine
	authorSvc *authors.Service
	blogSvc   *blogs.Service
	blogRepo  *blogs.MemoryRepository
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Secret = "handlers-test-secret-32-bytes-xxx"
	cfg.JWT.TokenTTL = 6000 * time.Second

	authorSvc := authors.NewService(newFakeAuthorRepo())
	blogRepo := blogs.NewMemoryRepository()
	blogSvc := blogs.NewService(blogRepo)

	r := gin.New()
	RegisterStatus(r)
	rg := r.Group("/")
	NewAuthorHandler(cfg, authorSvc).Register(rg)
	NewBlogHandler(cfg, authorSvc, blogSvc).Register(rg)

	return &testApp{cfg: cfg, router: r, authorSvc: authorSvc, blogSvc: blogSvc, blogRepo: blogRepo}
}

// registerAuthor persists an author directly through the service.
func (a *testApp) registerAuthor(t *testing.T, email string) *models.Author {
	t.Helper()
	author, err := a.authorSvc.Register(context.Background(), &models.Author{
		Title: "Mr", Fname: "Jo", Lname: "Doe", Email: email,
	}, "p1")
	require.NoError(t, err)
	return author
}

// tokenFor issues a session token for the author.
func (a *testApp) tokenFor(t *testing.T, author *models.Author) string {
	t.Helper()
	tok, err := tokens.Generate(a.cfg, author.ID.Hex())
	require.NoError(t, err)
	return tok
}

// do performs a request with an optional JSON body and token.
func (a *testApp) do(method, path, body, token string) *httptest.ResponseRecorder {
	var req = httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(middleware.TokenHeader, token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}
