package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/blogmint/blogmint/internal/blogs"
	"github.com/blogmint/blogmint/internal/config"
	"github.com/blogmint/blogmint/internal/tokens"
)

// TokenHeader carries the session token on requests and the issued token on
// login responses.
const TokenHeader = "x-api-key"

// ContextAuthorID is the gin context key holding the authenticated author's
// id (hex string) after Authentication has run.
const ContextAuthorID = "authorId"

// Authentication verifies the session token from the request header. The
// signature is checked first with expiry validation disabled, then the
// expiry instant is compared against the current time so an expired session
// gets its own message.
func Authentication(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(TokenHeader)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"status": false, "message": "please provide token"})
			return
		}

		claims, err := tokens.Verify(cfg, raw)
		if err != nil {
			if errors.Is(err, tokens.ErrExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": false, "message": "Session expired, please login"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": false, "message": "authentication failed, please login"})
			return
		}

		c.Set(ContextAuthorID, claims.AuthorID)
		c.Next()
	}
}

// Authorization gates single-resource mutation routes: the target post must
// exist, not be soft-deleted, and belong to the authenticated author.
func Authorization(blogSvc *blogs.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		blogID := c.Param("blogId")

		id, err := primitive.ObjectIDFromHex(blogID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"status": false, "message": fmt.Sprintf("%s is not a valid blogId", blogID)})
			return
		}

		blog, err := blogSvc.GetActive(c.Request.Context(), id)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if blog == nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"status": false, "message": fmt.Sprintf("no blog found by %s", blogID)})
			return
		}

		if blog.AuthorID.Hex() != c.GetString(ContextAuthorID) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"status": false, "message": "unauthorized access"})
			return
		}

		c.Next()
	}
}
