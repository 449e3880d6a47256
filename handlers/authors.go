package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blogmint/blogmint/internal/authors"
	"github.com/blogmint/blogmint/internal/config"
	"github.com/blogmint/blogmint/internal/models"
	"github.com/blogmint/blogmint/internal/tokens"
	"github.com/blogmint/blogmint/internal/validate"
	"github.com/blogmint/blogmint/pkg/middleware"
)

// the author document has exactly five client-settable fields
const maxAuthorKeys = 5

// AuthorHandler serves registration and login.
type AuthorHandler struct {
	cfg     *config.Config
	authors *authors.Service
}

func NewAuthorHandler(cfg *config.Config, svc *authors.Service) *AuthorHandler {
	return &AuthorHandler{cfg: cfg, authors: svc}
}

// Register wires the unauthenticated author routes.
func (h *AuthorHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/authors", h.RegisterAuthor)
	rg.GET("/login", h.Login)
}

// RegisterAuthor creates a new author record. Validation failures are
// reported one at a time, first failure wins, in a fixed field order.
func (h *AuthorHandler) RegisterAuthor(c *gin.Context) {
	if len(c.Request.URL.Query()) > 0 {
		fail(c, http.StatusBadRequest, "invalid request")
		return
	}

	body, err := decodeBody(c)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validate.IsNonEmptyMap(body) {
		fail(c, http.StatusBadRequest, "author data is required")
		return
	}
	if len(body) > maxAuthorKeys {
		fail(c, http.StatusBadRequest, "invalid data entry inside request body")
		return
	}

	title := body["title"]
	if !validate.IsPresent(title) {
		fail(c, http.StatusBadRequest, "Title is required")
		return
	}
	if !models.IsValidTitle(title.(string)) {
		fail(c, http.StatusBadRequest, "Title must be from these values [Mr, Mrs, Miss]")
		return
	}
	if !validate.IsPresent(body["fname"]) {
		fail(c, http.StatusBadRequest, "First Name is required")
		return
	}
	if !validate.IsPresent(body["lname"]) {
		fail(c, http.StatusBadRequest, "Last Name is required")
		return
	}
	if !validate.IsPresent(body["email"]) {
		fail(c, http.StatusBadRequest, "email is required")
		return
	}
	email := body["email"].(string)
	if !validate.IsEmail(email) {
		fail(c, http.StatusBadRequest, "Enter a valid email address")
		return
	}

	existing, err := h.authors.GetByEmail(c.Request.Context(), email)
	if err != nil {
		serverError(c, err)
		return
	}
	if existing != nil {
		fail(c, http.StatusBadRequest, "Email already exist")
		return
	}

	if !validate.IsPresent(body["password"]) {
		fail(c, http.StatusBadRequest, "password is required")
		return
	}

	author := &models.Author{
		Title: title.(string),
		Fname: body["fname"].(string),
		Lname: body["lname"].(string),
		Email: email,
	}
	created, err := h.authors.Register(c.Request.Context(), author, body["password"].(string))
	if err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  true,
		"message": "author registered successfully",
		"data":    created,
	})
}

// Login checks credentials and issues a session token. The token is echoed
// in both the response body and the x-api-key response header.
func (h *AuthorHandler) Login(c *gin.Context) {
	if len(c.Request.URL.Query()) > 0 {
		fail(c, http.StatusBadRequest, "invalid request")
		return
	}

	body, err := decodeBody(c)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validate.IsNonEmptyMap(body) {
		fail(c, http.StatusBadRequest, "author data is required")
		return
	}

	if !validate.IsPresent(body["email"]) {
		fail(c, http.StatusBadRequest, "Please provide email address")
		return
	}
	email := body["email"].(string)
	if !validate.IsEmail(email) {
		fail(c, http.StatusBadRequest, "Enter a valid email address")
		return
	}
	if !validate.IsPresent(body["password"]) {
		fail(c, http.StatusBadRequest, "Password is required")
		return
	}

	author, err := h.authors.GetByEmail(c.Request.Context(), email)
	if err != nil {
		serverError(c, err)
		return
	}
	if author == nil {
		fail(c, http.StatusNotFound, "No author found: Invalid email")
		return
	}

	if !h.authors.CheckPassword(author, body["password"].(string)) {
		fail(c, http.StatusBadRequest, "enter a valid password")
		return
	}

	token, err := tokens.Generate(h.cfg, author.ID.Hex())
	if err != nil {
		serverError(c, fmt.Errorf("token generation failed: %w", err))
		return
	}

	c.Header(middleware.TokenHeader, token)
	c.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "Author login successful",
		"data":    token,
	})
}
